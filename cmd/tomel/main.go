package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/neurlang/spectra/audio"
	"github.com/neurlang/spectra/internal/cli"
	"github.com/neurlang/spectra/internal/logging"
	"github.com/neurlang/spectra/mel"
	"github.com/neurlang/spectra/render"
	"github.com/neurlang/spectra/report"
)

type CLI struct {
	cli.Options `embed:""`
	cli.Output  `embed:""`

	ConfigFile kong.ConfigFlag `name:"config" short:"c" help:"JSON configuration file."`
	Verbose    bool            `short:"v" help:"Debug logging."`
	Data       bool            `help:"Also write the spectrogram as JSON and append to the report."`
	F16        bool            `name:"f16" help:"Also write the spectrogram as raw float16 (<audio_file>.f16)."`
	Top        bool            `help:"Draw low frequencies at the top."`
	Files      []string        `arg:"" name:"files" type:"existingfile" help:"Audio files to convert."`
}

func main() {
	var c CLI
	kong.Parse(&c,
		kong.Name("tomel"),
		kong.Description("Convert WAV/FLAC audio to mel spectrogram images."),
		kong.Configuration(kong.JSON),
		kong.UsageOnError(),
	)

	log, err := logging.New("tomel", c.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := c.Options.Config()
	m, err := cfg.Mel()
	if err != nil {
		log.Error("invalid configuration", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}

	failed := false
	for i, filename := range c.Files {
		if err := c.convert(m, filename, i, log); err != nil {
			log.Error("conversion failed", zap.String("file", filename), zap.Error(err))
			failed = true
		}
	}
	if failed {
		log.Sync()
		os.Exit(1)
	}
}

func (c CLI) convert(m *mel.Mel, filename string, index int, log *zap.Logger) error {
	buf, rate, err := audio.Load(filename)
	if err != nil {
		return err
	}
	log.Debug("audio loaded", zap.String("file", filename), zap.Int("samples", len(buf)), zap.Float64("rate", rate))

	spec, err := m.Spectrogram(buf, rate)
	if err != nil {
		return err
	}
	bands, frames := spec.Dims()

	f, err := os.Create(filename + ".png")
	if err != nil {
		return err
	}
	if err := render.Spectrogram(f, spec, !c.Top); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if c.F16 {
		if err := writeF16(filename+".f16", render.Float16(spec)); err != nil {
			return err
		}
	}

	if c.Data {
		meta := c.Output.Metadata()
		meta.ID += index
		rows := make([][]float64, bands)
		for b := range rows {
			rows[b] = spec.Band(b)
		}
		fmin, fmax := m.MelFmin, m.MelFmax
		if fmax == 0 {
			fmax = rate / 2
		}
		dataName := meta.Name("Mel_Data", ".json")
		dataPath, err := c.Path(dataName)
		if err != nil {
			return err
		}
		if err := report.SaveJSON(dataPath, report.MelData{
			Metadata:       meta,
			NMels:          bands,
			Fmin:           fmin,
			Fmax:           fmax,
			SamplingRate:   rate,
			Decibels:       spec.Decibels(),
			MelSpectrogram: rows,
		}); err != nil {
			return err
		}
		if err := c.Append(report.Entry{
			Metadata: meta,
			Title:    "Mel spectrogram",
			Fields: []report.Field{
				{Label: "Source", Value: filename},
				{Label: "Mel bands", Value: fmt.Sprint(bands)},
				{Label: "Frequency range", Value: fmt.Sprintf("%gHz - %gHz", fmin, fmax)},
			},
			Image: filename + ".png",
			Data:  dataName,
		}); err != nil {
			return err
		}
	}

	log.Info("mel spectrogram written",
		zap.String("file", filename+".png"),
		zap.Int("bands", bands),
		zap.Int("frames", frames))
	return nil
}

func writeF16(name string, bits []uint16) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, bits); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
