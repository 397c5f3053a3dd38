package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/neurlang/spectra/internal/cli"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	c := CLI{
		Options: cli.Options{
			SamplingRate:        1000,
			Duration:            1,
			TargetFrequencies:   []float64{5, 10, 15},
			Amplitudes:          []float64{1, 0.5, 0.25},
			Seed:                1,
			NFFT:                256,
			HopLength:           64,
			NMels:               16,
			WindowType:          "hann",
			NormalizeFilterbank: "none",
		},
		Output: cli.Output{OutDir: dir, Experiment: 4, Report: "REPORT.md"},
		Width:  200,
		Height: 80,
	}
	require.NoError(t, run(c, zap.NewNop()))

	meta := c.Output.Metadata()
	raw, err := os.ReadFile(filepath.Join(dir, meta.Name("FFT_Data", "_save_data.json")))
	require.NoError(t, err)

	var data struct {
		FFTFrequencies      []float64 `json:"fft_frequencies"`
		ReconstructionError float64   `json:"reconstruction_error"`
	}
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Len(t, data.FFTFrequencies, 501)
	assert.Less(t, data.ReconstructionError, 1e-9)

	for _, suffix := range []string{"_plot_results.png", "_signal.png", "_reconstructed.png"} {
		_, err := os.Stat(filepath.Join(dir, meta.Name("FFT_Example", suffix)))
		assert.NoError(t, err, suffix)
	}
	_, err = os.Stat(filepath.Join(dir, "REPORT.md"))
	assert.NoError(t, err)
}

func TestRunInvalid(t *testing.T) {
	c := CLI{
		Options: cli.Options{SamplingRate: 1000, Duration: -1, TargetFrequencies: []float64{5}},
		Output:  cli.Output{OutDir: t.TempDir()},
	}
	assert.Error(t, run(c, zap.NewNop()))
}
