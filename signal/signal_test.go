package signal

import (
	"math"
	"testing"

	"github.com/neurlang/spectra/dsperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateHarmonics(t *testing.T) {
	freqs, amps := Harmonics(5)
	s, err := NewGenerator(1000).Generate(1, freqs, amps, 0)
	require.NoError(t, err)

	assert.Equal(t, 1000, s.Len())
	assert.Equal(t, []float64{5, 10, 15}, s.Frequencies())
	assert.Equal(t, 1000.0, s.SampleRate())

	tm := s.Time()
	assert.Equal(t, 0.0, tm[0])
	assert.InDelta(t, 0.999, tm[len(tm)-1], 1e-12)

	samples := s.Samples()
	for _, i := range []int{0, 17, 250, 999} {
		ti := float64(i) / 1000
		want := math.Sin(2*math.Pi*5*ti) + 0.5*math.Sin(2*math.Pi*10*ti) + 0.25*math.Sin(2*math.Pi*15*ti)
		assert.InDelta(t, want, samples[i], 1e-12, "sample %d", i)
	}
}

func TestGenerateDefaultAmplitudes(t *testing.T) {
	s, err := NewGenerator(40).Generate(0.5, []float64{10}, nil, 0)
	require.NoError(t, err)
	require.Equal(t, 20, s.Len())
	samples := s.Samples()
	assert.InDelta(t, 1.0, samples[1], 1e-12) // sin(2*pi*10*0.025)
}

func TestGenerateFloorsLength(t *testing.T) {
	s, err := NewGenerator(100).Generate(0.29, []float64{10}, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 29, s.Len())

	s, err = NewGenerator(1000).Generate(0.0125, []float64{10}, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, s.Len())
}

func TestNoiseDeterministic(t *testing.T) {
	a, err := NewGenerator(1000, WithSeed(42)).Generate(0.1, []float64{50}, nil, 0.3)
	require.NoError(t, err)
	b, err := NewGenerator(1000, WithSeed(42)).Generate(0.1, []float64{50}, nil, 0.3)
	require.NoError(t, err)
	assert.Equal(t, a.Samples(), b.Samples())

	c, err := NewGenerator(1000, WithSeed(43)).Generate(0.1, []float64{50}, nil, 0.3)
	require.NoError(t, err)
	assert.NotEqual(t, a.Samples(), c.Samples())

	clean, err := NewGenerator(1000).Generate(0.1, []float64{50}, nil, 0)
	require.NoError(t, err)
	assert.NotEqual(t, clean.Samples(), a.Samples())
}

func TestGenerateInvalid(t *testing.T) {
	cases := []struct {
		name     string
		rate     float64
		duration float64
		freqs    []float64
		amps     []float64
		noise    float64
	}{
		{"negative duration", 1000, -1, []float64{5}, nil, 0},
		{"zero duration", 1000, 0, []float64{5}, nil, 0},
		{"zero rate", 0, 1, []float64{5}, nil, 0},
		{"nyquist", 1000, 1, []float64{500}, nil, 0},
		{"above nyquist", 1000, 1, []float64{5, 700}, nil, 0},
		{"non-positive frequency", 1000, 1, []float64{0}, nil, 0},
		{"no frequencies", 1000, 1, nil, nil, 0},
		{"amplitude mismatch", 1000, 1, []float64{5, 10}, []float64{1}, 0},
		{"negative noise", 1000, 1, []float64{5}, nil, -0.1},
		{"sub-sample duration", 1000, 0.0001, []float64{5}, nil, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := NewGenerator(c.rate).Generate(c.duration, c.freqs, c.amps, c.noise)
			assert.ErrorIs(t, err, dsperr.ErrInvalidParameter)
			assert.Nil(t, s)
		})
	}
}

func TestAccessorsCopy(t *testing.T) {
	s, err := NewGenerator(100).Generate(0.1, []float64{10}, nil, 0)
	require.NoError(t, err)

	samples := s.Samples()
	samples[1] = 99
	assert.NotEqual(t, 99.0, s.Samples()[1])
}

func TestPad(t *testing.T) {
	s, err := NewGenerator(100).Generate(0.1, []float64{10}, nil, 0)
	require.NoError(t, err)

	p, err := s.Pad(16)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Len())
	assert.Equal(t, 16, p.Len())
	assert.Equal(t, s.Samples(), p.Samples()[:10])
	assert.Equal(t, make([]float64, 6), p.Samples()[10:])
	assert.InDelta(t, 0.15, p.Time()[15], 1e-12)

	_, err = s.Pad(5)
	assert.ErrorIs(t, err, dsperr.ErrInvalidParameter)
}
