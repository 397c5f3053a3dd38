package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/neurlang/spectra/internal/cli"
	"github.com/neurlang/spectra/internal/logging"
	"github.com/neurlang/spectra/render"
	"github.com/neurlang/spectra/report"
	"github.com/neurlang/spectra/spectrum"
)

type CLI struct {
	cli.Options `embed:""`
	cli.Output  `embed:""`

	ConfigFile kong.ConfigFlag `name:"config" short:"c" help:"JSON configuration file."`
	Verbose    bool            `short:"v" help:"Debug logging."`
	Width      int             `default:"1200" help:"Image width in pixels."`
	Height     int             `default:"400" help:"Image height in pixels."`
}

func main() {
	var c CLI
	kong.Parse(&c,
		kong.Name("fftdemo"),
		kong.Description("FFT and inverse FFT of a synthesized test signal."),
		kong.Configuration(kong.JSON),
		kong.UsageOnError(),
	)

	log, err := logging.New("fftdemo", c.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(c, log); err != nil {
		log.Error("fftdemo failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(c CLI, log *zap.Logger) error {
	cfg := c.Options.Config()
	sig, err := cfg.Generate()
	if err != nil {
		return err
	}
	log.Debug("signal generated",
		zap.Int("samples", sig.Len()),
		zap.Float64s("frequencies", sig.Frequencies()))

	samples := sig.Samples()
	spec, err := spectrum.Analyze(samples, sig.SampleRate())
	if err != nil {
		return err
	}
	rebuilt, err := spec.Reconstruct()
	if err != nil {
		return err
	}
	mae, err := spectrum.MeanAbsError(samples, rebuilt)
	if err != nil {
		return err
	}
	peak, err := spectrum.Peak(spec.Magnitudes)
	if err != nil {
		return err
	}
	log.Info("transform done",
		zap.Int("bins", len(spec.Frequencies)),
		zap.Float64("peak_hz", spec.Frequencies[peak]),
		zap.Float64("reconstruction_error", mae))

	meta := c.Output.Metadata()
	plot := meta.Name("FFT_Example", "_plot_results.png")
	if err := c.image(plot, func(f *os.File) error {
		return render.Stems(f, spec.Frequencies, spec.Magnitudes, sig.Frequencies(), c.Width, c.Height)
	}); err != nil {
		return err
	}
	if err := c.image(meta.Name("FFT_Example", "_signal.png"), func(f *os.File) error {
		return render.Waveform(f, samples, c.Width, c.Height)
	}); err != nil {
		return err
	}
	if err := c.image(meta.Name("FFT_Example", "_reconstructed.png"), func(f *os.File) error {
		return render.Waveform(f, rebuilt, c.Width, c.Height)
	}); err != nil {
		return err
	}

	dataName := meta.Name("FFT_Data", "_save_data.json")
	dataPath, err := c.Path(dataName)
	if err != nil {
		return err
	}
	if err := report.SaveJSON(dataPath, report.FFTData{
		Metadata:            meta,
		TargetFrequencies:   sig.Frequencies(),
		TimeSeries:          sig.Time(),
		OriginalSignal:      samples,
		ReconstructedSignal: rebuilt,
		FFTFrequencies:      spec.Frequencies,
		FFTMagnitude:        spec.Magnitudes,
		ReconstructionError: mae,
	}); err != nil {
		return err
	}

	if err := c.Append(report.Entry{
		Metadata: meta,
		Title:    "FFT and inverse FFT",
		Fields: []report.Field{
			{Label: "Target frequencies", Value: fmt.Sprint(sig.Frequencies())},
			{Label: "Reconstruction error", Value: fmt.Sprintf("%.6f", mae)},
		},
		Image: plot,
		Data:  dataName,
	}); err != nil {
		return err
	}
	log.Info("results written", zap.String("dir", c.OutDir), zap.String("data", dataName))
	return nil
}

func (c CLI) image(name string, draw func(*os.File) error) error {
	path, err := c.Path(name)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := draw(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", name, err)
	}
	return f.Close()
}
