package main

import (
	"encoding/json"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/neurlang/spectra/audio"
	"github.com/neurlang/spectra/internal/cli"
	"github.com/neurlang/spectra/mel"
)

func tone(n int, freq, rate, amp float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
	return x
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	in := tone(8000, 440, 8000, 0.5)
	require.NoError(t, audio.SaveWav(path, in, 8000))

	c := CLI{
		Options: cli.Options{
			NFFT:                512,
			HopLength:           128,
			NMels:               20,
			WindowType:          "hann",
			NormalizeFilterbank: "none",
		},
		Output: cli.Output{OutDir: dir, Experiment: 2, Report: "REPORT.md"},
		Data:   true,
		F16:    true,
	}
	m, err := c.Options.Config().Mel()
	require.NoError(t, err)
	require.NoError(t, c.convert(m, path, 0, zap.NewNop()))

	frames := mel.FrameCount(len(in), 512, 128)

	f, err := os.Open(path + ".png")
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, frames, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())

	st, err := os.Stat(path + ".f16")
	require.NoError(t, err)
	assert.Equal(t, int64(2*20*frames), st.Size())

	meta := c.Output.Metadata()
	raw, err := os.ReadFile(filepath.Join(dir, meta.Name("Mel_Data", ".json")))
	require.NoError(t, err)
	var data struct {
		NMels          int         `json:"n_mels"`
		Fmax           float64     `json:"fmax"`
		Decibels       bool        `json:"decibels"`
		MelSpectrogram [][]float64 `json:"mel_spectrogram"`
	}
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Equal(t, 20, data.NMels)
	assert.Equal(t, 4000.0, data.Fmax)
	assert.False(t, data.Decibels)
	require.Len(t, data.MelSpectrogram, 20)
	require.Len(t, data.MelSpectrogram[0], frames)

	// Energies of the file match those of the signal it was written from.
	want, err := m.Spectrogram(in, 8000)
	require.NoError(t, err)
	mid := frames / 2
	band := 0
	for b := 1; b < 20; b++ {
		if want.At(b, mid) > want.At(band, mid) {
			band = b
		}
	}
	assert.InEpsilon(t, want.At(band, mid), data.MelSpectrogram[band][mid], 1e-2)

	_, err = os.Stat(filepath.Join(dir, "REPORT.md"))
	assert.NoError(t, err)
}

func TestConvertUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.ogg")
	require.NoError(t, os.WriteFile(path, []byte("OggS"), 0o644))

	c := CLI{Options: cli.Options{NFFT: 512, HopLength: 128, NMels: 20}}
	m, err := c.Options.Config().Mel()
	require.NoError(t, err)
	assert.ErrorIs(t, c.convert(m, path, 0, zap.NewNop()), audio.ErrUnsupportedFormat)
}
