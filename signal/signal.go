package signal

import (
	"math"
	"math/rand"

	"github.com/neurlang/spectra/dsperr"
)

// sampleEpsilon absorbs representation error in duration*sampleRate before flooring.
const sampleEpsilon = 1e-9

// Signal is an immutable sampled signal.
type Signal struct {
	time        []float64
	samples     []float64
	frequencies []float64
	sampleRate  float64
}

// Samples returns a copy of the sample values.
func (s *Signal) Samples() []float64 {
	return append([]float64(nil), s.samples...)
}

// Time returns a copy of the time axis in seconds.
func (s *Signal) Time() []float64 {
	return append([]float64(nil), s.time...)
}

// Frequencies returns the target frequencies the signal was built from.
func (s *Signal) Frequencies() []float64 {
	return append([]float64(nil), s.frequencies...)
}

func (s *Signal) SampleRate() float64 { return s.sampleRate }

func (s *Signal) Len() int { return len(s.samples) }

// Pad returns a new signal zero-padded to n samples. The receiver is unchanged.
func (s *Signal) Pad(n int) (*Signal, error) {
	if n < len(s.samples) {
		return nil, dsperr.Parameter("pad length", n, "must be >= signal length")
	}
	out := &Signal{
		time:        make([]float64, n),
		samples:     make([]float64, n),
		frequencies: s.Frequencies(),
		sampleRate:  s.sampleRate,
	}
	copy(out.samples, s.samples)
	for i := range out.time {
		out.time[i] = float64(i) / s.sampleRate
	}
	return out, nil
}

// Generator synthesizes signals at a fixed sample rate.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the noise seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator. The sample rate is validated by Generate.
func NewGenerator(sampleRate float64, opts ...Option) *Generator {
	g := &Generator{
		sampleRate: sampleRate,
		seed:       1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

func (g *Generator) SampleRate() float64 { return g.sampleRate }

func (g *Generator) Seed() int64 { return g.seed }

// Generate returns the sum of amplitudes[j]*sin(2*pi*frequencies[j]*t) plus
// noiseLevel standard Gaussian noise. A nil amplitudes slice means unit
// amplitude for every frequency. The sample count is floor(duration*sampleRate).
func (g *Generator) Generate(duration float64, frequencies, amplitudes []float64, noiseLevel float64) (*Signal, error) {
	n, err := g.validate(duration, frequencies, amplitudes, noiseLevel)
	if err != nil {
		return nil, err
	}
	if amplitudes == nil {
		amplitudes = make([]float64, len(frequencies))
		for j := range amplitudes {
			amplitudes[j] = 1
		}
	}

	s := &Signal{
		time:        make([]float64, n),
		samples:     make([]float64, n),
		frequencies: append([]float64(nil), frequencies...),
		sampleRate:  g.sampleRate,
	}
	for i := range s.time {
		s.time[i] = float64(i) / g.sampleRate
	}
	for j, f := range frequencies {
		step := 2 * math.Pi * f
		for i, t := range s.time {
			s.samples[i] += amplitudes[j] * math.Sin(step*t)
		}
	}
	if noiseLevel > 0 {
		rng := rand.New(rand.NewSource(g.seed))
		for i := range s.samples {
			s.samples[i] += noiseLevel * rng.NormFloat64()
		}
	}
	return s, nil
}

func (g *Generator) validate(duration float64, frequencies, amplitudes []float64, noiseLevel float64) (int, error) {
	if !(g.sampleRate > 0) || math.IsInf(g.sampleRate, 0) {
		return 0, dsperr.Parameter("sampling_rate", g.sampleRate, "must be a finite value > 0")
	}
	if !(duration > 0) || math.IsInf(duration, 0) {
		return 0, dsperr.Parameter("duration", duration, "must be a finite value > 0")
	}
	if len(frequencies) == 0 {
		return 0, dsperr.Parameter("target_frequencies", frequencies, "must not be empty")
	}
	nyquist := g.sampleRate / 2
	for _, f := range frequencies {
		if !(f > 0) {
			return 0, dsperr.Parameter("target_frequencies", f, "must be > 0")
		}
		if f >= nyquist {
			return 0, dsperr.Parameter("target_frequencies", f, "must be below the Nyquist frequency")
		}
	}
	if amplitudes != nil && len(amplitudes) != len(frequencies) {
		return 0, dsperr.Parameter("amplitudes", len(amplitudes), "length must match target_frequencies")
	}
	if !(noiseLevel >= 0) {
		return 0, dsperr.Parameter("noise_level", noiseLevel, "must be >= 0")
	}
	n := int(math.Floor(duration*g.sampleRate + sampleEpsilon))
	if n < 1 {
		return 0, dsperr.Parameter("duration", duration, "must span at least one sample")
	}
	return n, nil
}

// Harmonics returns base, 2*base and 3*base with amplitudes 1, 0.5 and 0.25.
func Harmonics(base float64) (frequencies, amplitudes []float64) {
	return []float64{base, 2 * base, 3 * base}, []float64{1, 0.5, 0.25}
}
