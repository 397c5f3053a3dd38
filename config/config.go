// Package config holds the options recognized by the analysis tools and
// builds validated core components from them.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/neurlang/spectra/dsperr"
	"github.com/neurlang/spectra/mel"
	"github.com/neurlang/spectra/phase"
	"github.com/neurlang/spectra/signal"
	"github.com/neurlang/spectra/window"
)

// Config is the recognized configuration surface.
type Config struct {
	SamplingRate        float64   `json:"sampling_rate"`
	Duration            float64   `json:"duration"`
	TargetFrequencies   []float64 `json:"target_frequencies"`
	Amplitudes          []float64 `json:"amplitudes,omitempty"`
	NoiseLevel          float64   `json:"noise_level"`
	Seed                int64     `json:"seed"`
	NFFT                int       `json:"n_fft"`
	HopLength           int       `json:"hop_length"`
	NMels               int       `json:"n_mels"`
	Fmin                float64   `json:"fmin"`
	Fmax                float64   `json:"fmax"`
	WindowType          string    `json:"window_type"`
	NormalizeFilterbank string    `json:"normalize_filterbank"`
	LogScale            bool      `json:"log_scale"`
}

// Default returns the configuration of the bundled examples: a 5 Hz harmonic
// test signal at 1000 Hz and librosa-like mel settings.
func Default() Config {
	freqs, amps := signal.Harmonics(5)
	return Config{
		SamplingRate:        1000,
		Duration:            1,
		TargetFrequencies:   freqs,
		Amplitudes:          amps,
		Seed:                1,
		NFFT:                2048,
		HopLength:           512,
		NMels:               128,
		Fmin:                0,
		Fmax:                0,
		WindowType:          string(window.Hann),
		NormalizeFilterbank: mel.NormNone.String(),
		LogScale:            true,
	}
}

// Load reads a JSON file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every option independently of any signal.
func (c Config) Validate() error {
	if !(c.SamplingRate > 0) || math.IsInf(c.SamplingRate, 0) {
		return dsperr.Parameter("sampling_rate", c.SamplingRate, "must be a finite value > 0")
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return dsperr.Parameter("duration", c.Duration, "must be a finite value > 0")
	}
	if len(c.TargetFrequencies) == 0 {
		return dsperr.Parameter("target_frequencies", c.TargetFrequencies, "must not be empty")
	}
	for _, f := range c.TargetFrequencies {
		if !(f > 0) || f >= c.SamplingRate/2 {
			return dsperr.Parameter("target_frequencies", f, "must be in (0, sampling_rate/2)")
		}
	}
	if c.Amplitudes != nil && len(c.Amplitudes) != len(c.TargetFrequencies) {
		return dsperr.Parameter("amplitudes", len(c.Amplitudes), "length must match target_frequencies")
	}
	if !(c.NoiseLevel >= 0) {
		return dsperr.Parameter("noise_level", c.NoiseLevel, "must be >= 0")
	}
	if c.NFFT < 2 {
		return dsperr.Parameter("n_fft", c.NFFT, "must be >= 2")
	}
	if c.HopLength <= 0 {
		return dsperr.Parameter("hop_length", c.HopLength, "must be > 0")
	}
	if _, err := window.Parse(c.WindowType); err != nil {
		return err
	}
	norm, err := mel.ParseNorm(c.NormalizeFilterbank)
	if err != nil {
		return err
	}
	_, err = mel.NewFilterbank(c.SamplingRate, c.NFFT, c.NMels, c.Fmin, c.Fmax, norm)
	return err
}

// Generator returns the signal generator for this configuration.
func (c Config) Generator() *signal.Generator {
	return signal.NewGenerator(c.SamplingRate, signal.WithSeed(c.Seed))
}

// Generate synthesizes the configured test signal.
func (c Config) Generate() (*signal.Signal, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.Generator().Generate(c.Duration, c.TargetFrequencies, c.Amplitudes, c.NoiseLevel)
}

// Mel returns the mel spectrogram analyzer for this configuration.
func (c Config) Mel() (*mel.Mel, error) {
	wt, err := window.Parse(c.WindowType)
	if err != nil {
		return nil, err
	}
	norm, err := mel.ParseNorm(c.NormalizeFilterbank)
	if err != nil {
		return nil, err
	}
	m := mel.NewMel()
	m.NumMels = c.NMels
	m.MelFmin = c.Fmin
	m.MelFmax = c.Fmax
	m.NFFT = c.NFFT
	m.HopLength = c.HopLength
	m.Window = wt
	m.Norm = norm
	m.LogScale = c.LogScale
	return m, nil
}

// Phase returns the STFT analyzer sharing the framing options.
func (c Config) Phase() (*phase.Phase, error) {
	wt, err := window.Parse(c.WindowType)
	if err != nil {
		return nil, err
	}
	p := phase.NewPhase()
	p.FrameLen = c.NFFT
	p.HopLength = c.HopLength
	p.Window = wt
	return p, nil
}
