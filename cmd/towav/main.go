package main

import (
	"fmt"
	"math"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/neurlang/spectra/audio"
	"github.com/neurlang/spectra/internal/cli"
	"github.com/neurlang/spectra/internal/logging"
)

type CLI struct {
	cli.Options `embed:""`

	ConfigFile kong.ConfigFlag `name:"config" short:"c" help:"JSON configuration file."`
	Verbose    bool            `short:"v" help:"Debug logging."`
	Peak       float64         `default:"0.9" help:"Peak amplitude of the written samples (0 keeps them unscaled)."`
	File       string          `arg:"" name:"wav_file" help:"Output WAV file."`
}

func main() {
	var c CLI
	kong.Parse(&c,
		kong.Name("towav"),
		kong.Description("Synthesize a test signal into a WAV file."),
		kong.Configuration(kong.JSON),
		kong.UsageOnError(),
	)

	log, err := logging.New("towav", c.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(c, log); err != nil {
		log.Error("towav failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(c CLI, log *zap.Logger) error {
	cfg := c.Options.Config()
	if cfg.SamplingRate != math.Trunc(cfg.SamplingRate) {
		return fmt.Errorf("sampling rate must be a whole number of Hz for WAV output: %g", cfg.SamplingRate)
	}
	sig, err := cfg.Generate()
	if err != nil {
		return err
	}

	samples := sig.Samples()
	if c.Peak > 0 {
		samples = normalize(samples, c.Peak)
	}
	if err := audio.SaveWav(c.File, samples, int(cfg.SamplingRate)); err != nil {
		return err
	}
	log.Info("signal written",
		zap.String("file", c.File),
		zap.Int("samples", len(samples)),
		zap.Float64s("frequencies", sig.Frequencies()))
	return nil
}

// normalize scales samples to the given peak and returns a new slice.
func normalize(samples []float64, peak float64) []float64 {
	var maxAbs float64
	for _, v := range samples {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}
	out := make([]float64, len(samples))
	if maxAbs == 0 {
		return out
	}
	for i, v := range samples {
		out[i] = v * peak / maxAbs
	}
	return out
}
