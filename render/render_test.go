package render

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
	"gonum.org/v1/gonum/mat"

	"github.com/neurlang/spectra/mel"
)

func TestSpectrogramImage(t *testing.T) {
	m := mat.NewDense(3, 5, []float64{
		0, 1, 2, 3, 4,
		5, 6, 7, 8, 9,
		10, 11, 12, 13, 14,
	})
	var buf bytes.Buffer
	require.NoError(t, Spectrogram(&buf, m, true))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 5, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())

	// reversed: the largest value (band 2) is the top row
	top, _, _, _ := img.At(4, 0).RGBA()
	bottom, _, _, _ := img.At(0, 2).RGBA()
	assert.Greater(t, top, bottom)
}

func TestMelSpectrogramImage(t *testing.T) {
	x := make([]float64, 4096)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / 16000)
	}
	m := mel.NewMel()
	m.NumMels = 32
	s, err := m.Spectrogram(x, 16000)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Spectrogram(&buf, s, false))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	bands, frames := s.Dims()
	assert.Equal(t, frames, img.Bounds().Dx())
	assert.Equal(t, bands, img.Bounds().Dy())
}

func TestStemsAndWaveform(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Stems(&buf, []float64{0, 1, 2, 3}, []float64{0, 4, 1, 0}, []float64{1}, 40, 20))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())

	buf.Reset()
	require.NoError(t, Waveform(&buf, []float64{0, 1, 0, -1}, 16, 8))
	_, err = png.Decode(&buf)
	require.NoError(t, err)

	assert.ErrorIs(t, Stems(&buf, nil, nil, nil, 10, 10), ErrEmpty)
	assert.ErrorIs(t, Waveform(&buf, nil, 10, 10), ErrEmpty)
	assert.ErrorIs(t, Spectrogram(&buf, &mat.Dense{}, false), ErrEmpty)
}

func TestFloat16(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{0, 1, -2, 0.5})
	bits := Float16(m)
	require.Len(t, bits, 4)
	want := []float32{0, 1, -2, 0.5}
	for i, b := range bits {
		assert.Equal(t, want[i], float16.Frombits(b).Float32())
	}
}
