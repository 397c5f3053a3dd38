// Package cli holds the command-line surface shared by the tools under cmd/.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/neurlang/spectra/config"
	"github.com/neurlang/spectra/report"
)

// Options mirrors config.Config as flags. Keys of a --config JSON file use
// the snake_case form of the flag names, e.g. "sampling_rate".
type Options struct {
	SamplingRate        float64   `name:"sampling-rate" default:"1000" help:"Sampling rate in Hz."`
	Duration            float64   `default:"1" help:"Signal duration in seconds."`
	TargetFrequencies   []float64 `name:"target-frequencies" default:"5,10,15" help:"Sinusoid frequencies in Hz."`
	Amplitudes          []float64 `default:"1,0.5,0.25" help:"Amplitude of each target frequency."`
	NoiseLevel          float64   `name:"noise-level" default:"0" help:"Standard deviation of added Gaussian noise."`
	Seed                int64     `default:"1" help:"Noise seed."`
	NFFT                int       `name:"n-fft" default:"2048" help:"FFT size / frame length."`
	HopLength           int       `name:"hop-length" default:"512" help:"Samples between frames."`
	NMels               int       `name:"n-mels" default:"128" help:"Number of mel bands."`
	Fmin                float64   `default:"0" help:"Lowest mel frequency in Hz."`
	Fmax                float64   `default:"0" help:"Highest mel frequency in Hz (0 = Nyquist)."`
	WindowType          string    `name:"window-type" default:"hann" enum:"hann,hamming,blackman,bartlett,rectangular,none" help:"Analysis window."`
	NormalizeFilterbank string    `name:"normalize-filterbank" default:"none" enum:"none,area,slaney" help:"Filterbank row normalization."`
	LogScale            bool      `name:"log-scale" default:"true" negatable:"" help:"Convert mel energies to dB."`
}

// Config converts the flags into a configuration.
func (o Options) Config() config.Config {
	return config.Config{
		SamplingRate:        o.SamplingRate,
		Duration:            o.Duration,
		TargetFrequencies:   o.TargetFrequencies,
		Amplitudes:          o.Amplitudes,
		NoiseLevel:          o.NoiseLevel,
		Seed:                o.Seed,
		NFFT:                o.NFFT,
		HopLength:           o.HopLength,
		NMels:               o.NMels,
		Fmin:                o.Fmin,
		Fmax:                o.Fmax,
		WindowType:          o.WindowType,
		NormalizeFilterbank: o.NormalizeFilterbank,
		LogScale:            o.LogScale,
	}
}

// Output holds where and under which experiment id results are written.
type Output struct {
	OutDir     string `name:"out-dir" type:"path" default:"." help:"Directory for images, data files and the report."`
	Experiment int    `short:"e" default:"1" help:"Experiment number used in output names."`
	Report     string `default:"REPORT.md" help:"Cumulative report file name inside out-dir."`
	NoReport   bool   `name:"no-report" help:"Do not append to the report."`
}

// Metadata stamps the run.
func (o Output) Metadata() report.Metadata {
	return report.NewMetadata(o.Experiment, time.Now())
}

// Path joins name onto the output directory, creating it if needed.
func (o Output) Path(name string) (string, error) {
	if err := os.MkdirAll(o.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return filepath.Join(o.OutDir, name), nil
}

// Append adds entry to the report unless disabled.
func (o Output) Append(entry report.Entry) error {
	if o.NoReport {
		return nil
	}
	path, err := o.Path(o.Report)
	if err != nil {
		return err
	}
	return report.Append(path, entry)
}
