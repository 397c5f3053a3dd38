package main

import (
	"fmt"
	"math"
	"math/cmplx"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/neurlang/spectra/audio"
	"github.com/neurlang/spectra/internal/cli"
	"github.com/neurlang/spectra/internal/logging"
	"github.com/neurlang/spectra/phase"
	"github.com/neurlang/spectra/render"
	"github.com/neurlang/spectra/report"
	"github.com/neurlang/spectra/spectrum"
)

type CLI struct {
	cli.Options `embed:""`
	cli.Output  `embed:""`

	ConfigFile kong.ConfigFlag `name:"config" short:"c" help:"JSON configuration file."`
	Verbose    bool            `short:"v" help:"Debug logging."`
	Data       bool            `help:"Save the run as JSON and append it to the report."`
	Files      []string        `arg:"" name:"files" type:"existingfile" help:"Audio files to process."`
}

func main() {
	var c CLI
	kong.Parse(&c,
		kong.Name("tophase"),
		kong.Description("STFT/ISTFT round trip of WAV/FLAC audio."),
		kong.Configuration(kong.JSON),
		kong.UsageOnError(),
	)

	log, err := logging.New("tophase", c.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	p, err := c.Options.Config().Phase()
	if err != nil {
		log.Error("invalid configuration", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}

	failed := false
	for i, filename := range c.Files {
		if err := c.process(p, filename, i, log); err != nil {
			log.Error("round trip failed", zap.String("file", filename), zap.Error(err))
			failed = true
		}
	}
	if failed {
		log.Sync()
		os.Exit(1)
	}
}

func (c CLI) process(p *phase.Phase, filename string, index int, log *zap.Logger) error {
	buf, rate, err := audio.Load(filename)
	if err != nil {
		return err
	}
	frames, err := p.STFT(buf)
	if err != nil {
		return err
	}
	out, err := p.ISTFT(frames)
	if err != nil {
		return err
	}
	snr, err := phase.SNR(buf, out)
	if err != nil {
		return err
	}

	outName := filename + ".istft.wav"
	if err := audio.SaveWav(outName, out, int(rate)); err != nil {
		return err
	}

	meta := c.Output.Metadata()
	meta.ID += index
	db := magnitudeDB(frames, p.FrameLen)
	bins, n := db.Dims()
	imageName := meta.Name("STFT_Spectrogram", ".png")
	imagePath, err := c.Path(imageName)
	if err != nil {
		return err
	}
	if err := writeImage(imagePath, db); err != nil {
		return err
	}
	log.Info("round trip done",
		zap.String("file", outName),
		zap.String("image", imagePath),
		zap.Int("frames", n),
		zap.Float64("snr_db", snr))

	if !c.Data {
		return nil
	}
	dataName := meta.Name("STFT_Data", ".json")
	dataPath, err := c.Path(dataName)
	if err != nil {
		return err
	}
	if err := report.SaveJSON(dataPath, report.STFTData{
		Metadata:   meta,
		WindowSize: p.FrameLen,
		HopLength:  p.HopLength,
		WindowType: string(p.Window),
		SNR:        snr,
		Frames:     n,
		Shape:      [2]int{bins, n},
	}); err != nil {
		return err
	}
	return c.Append(report.Entry{
		Metadata: meta,
		Title:    "STFT round trip",
		Fields: []report.Field{
			{Label: "Source", Value: filename},
			{Label: "Window", Value: fmt.Sprintf("%s, %d samples, hop %d", p.Window, p.FrameLen, p.HopLength)},
			{Label: "STFT shape", Value: fmt.Sprintf("%d bins x %d frames", bins, n)},
			{Label: "SNR", Value: fmt.Sprintf("%.2f dB", snr)},
		},
		Image: imageName,
		Data:  dataName,
	})
}

// magnitudeDB returns 20*log10(|X|+1e-10) of the one-sided bins, bins x frames.
func magnitudeDB(frames [][]complex128, frameLen int) *mat.Dense {
	bins := spectrum.OneSidedLen(frameLen)
	db := mat.NewDense(bins, len(frames), nil)
	for i, frame := range frames {
		for k := 0; k < bins; k++ {
			db.Set(k, i, 20*math.Log10(cmplx.Abs(frame[k])+1e-10))
		}
	}
	return db
}

func writeImage(name string, m render.Matrix) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := render.Spectrogram(f, m, true); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
