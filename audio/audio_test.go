package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWavRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	in := make([]float64, 800)
	for i := range in {
		in[i] = 0.5 * math.Sin(2*math.Pi*50*float64(i)/8000)
	}
	in[10] = 3 // clipped on save

	require.NoError(t, SaveWav(path, in, 8000))

	out, rate, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8000.0, rate)
	require.Len(t, out, len(in))
	for i := range in {
		want := math.Max(-1, math.Min(1, in[i]))
		assert.InDelta(t, want, out[i], 1e-3, "sample %d", i)
	}
}

func TestWavLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dc.wav")
	require.NoError(t, SaveWav(path, []float64{0.5, 0.5, -0.5, -1, 1}, 8000))

	out, _, err := LoadWav(path)
	require.NoError(t, err)
	require.Len(t, out, 5)
	assert.InDelta(t, 0.5, out[0], 1e-4)
	assert.InDelta(t, 0.5, out[1], 1e-4)
	assert.InDelta(t, -0.5, out[2], 1e-4)
	assert.InDelta(t, -1, out[3], 1e-4)
	assert.InDelta(t, 1, out[4], 1e-4)
}

func TestPCMGain(t *testing.T) {
	assert.Equal(t, 1.0, pcmGain(1))
	assert.InDelta(t, 65535.0/32768, pcmGain(2), 1e-12)
	assert.InDelta(t, 16777215.0/8388608, pcmGain(3), 1e-12)
}

func TestLoadErrors(t *testing.T) {
	_, _, err := Load("song.ogg")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, _, err = LoadWav(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.wav")
	require.NoError(t, os.WriteFile(bad, []byte("not a wave file"), 0o644))
	_, _, err = LoadWav(bad)
	assert.Error(t, err)

	_, _, err = LoadFlac(bad)
	assert.Error(t, err)

	assert.Error(t, SaveWav(filepath.Join(t.TempDir(), "x.wav"), []float64{0}, 0))
}
