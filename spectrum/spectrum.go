package spectrum

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/neurlang/spectra/dsperr"
)

// Spectrum is the one-sided spectrum of a real signal of length N.
type Spectrum struct {
	Frequencies []float64
	Magnitudes  []float64
	Phases      []float64
	N           int
	SampleRate  float64
}

// OneSidedLen returns the number of retained bins for a signal of length n.
func OneSidedLen(n int) int {
	return n/2 + 1
}

// scale is the amplitude normalization applied to bin k of an n-point transform.
func scale(k, n int) float64 {
	if k == 0 || (n%2 == 0 && k == n/2) {
		return 1 / float64(n)
	}
	return 2 / float64(n)
}

func validateSignal(x []float64) error {
	if len(x) == 0 {
		return dsperr.Input("signal", 0, "must not be empty")
	}
	return nil
}

func validateRate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return dsperr.Input("sampling_rate", sampleRate, "must be a finite value > 0")
	}
	return nil
}

// ForwardComplex returns the full-length DFT of x.
func ForwardComplex(x []float64) ([]complex128, error) {
	if err := validateSignal(x); err != nil {
		return nil, err
	}
	return fft.FFTReal(x), nil
}

// Forward returns the one-sided frequency axis and amplitude spectrum of x.
func Forward(x []float64, sampleRate float64) (frequencies, magnitudes []float64, err error) {
	s, err := Analyze(x, sampleRate)
	if err != nil {
		return nil, nil, err
	}
	return s.Frequencies, s.Magnitudes, nil
}

// Analyze returns the one-sided spectrum of x including phases.
func Analyze(x []float64, sampleRate float64) (*Spectrum, error) {
	if err := validateSignal(x); err != nil {
		return nil, err
	}
	if err := validateRate(sampleRate); err != nil {
		return nil, err
	}

	n := len(x)
	bins := fft.FFTReal(x)
	m := OneSidedLen(n)
	s := &Spectrum{
		Frequencies: make([]float64, m),
		Magnitudes:  make([]float64, m),
		Phases:      make([]float64, m),
		N:           n,
		SampleRate:  sampleRate,
	}
	for k := 0; k < m; k++ {
		s.Frequencies[k] = float64(k) * sampleRate / float64(n)
		s.Magnitudes[k] = cmplx.Abs(bins[k]) * scale(k, n)
		s.Phases[k] = cmplx.Phase(bins[k])
	}
	return s, nil
}

// Power returns the unnormalized one-sided power spectrum |X[k]|^2 of frame.
func Power(frame []float64) ([]float64, error) {
	bins, err := ForwardComplex(frame)
	if err != nil {
		return nil, err
	}
	out := make([]float64, OneSidedLen(len(frame)))
	for k := range out {
		re, im := real(bins[k]), imag(bins[k])
		out[k] = re*re + im*im
	}
	return out, nil
}

// Inverse returns the real part of the inverse DFT of the full-length spectrum x.
func Inverse(x []complex128) ([]float64, error) {
	if len(x) == 0 {
		return nil, dsperr.Input("spectrum", 0, "must not be empty")
	}
	buf := fft.IFFT(x)
	out := make([]float64, len(buf))
	for i, v := range buf {
		out[i] = real(v)
	}
	return out, nil
}

// FromOneSided rebuilds a length-n signal from one-sided amplitudes as
// returned by Forward, enforcing X[n-k] = conj(X[k]). A nil phases slice
// means zero phase, which does not reproduce the original waveform.
func FromOneSided(magnitudes, phases []float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, dsperr.Input("length", n, "must be >= 1")
	}
	if len(magnitudes) != OneSidedLen(n) {
		return nil, dsperr.Input("magnitudes", len(magnitudes), "length must be n/2+1")
	}
	if phases != nil && len(phases) != len(magnitudes) {
		return nil, dsperr.Input("phases", len(phases), "length must match magnitudes")
	}

	full := make([]complex128, n)
	for k, mag := range magnitudes {
		var ph float64
		if phases != nil {
			ph = phases[k]
		}
		v := cmplx.Rect(mag/scale(k, n), ph)
		if k == 0 || n-k == k {
			// self-conjugate bins of a real signal are real
			full[k] = complex(real(v), 0)
			continue
		}
		full[k] = v
		full[n-k] = cmplx.Conj(v)
	}
	return Inverse(full)
}

// Reconstruct inverts the spectrum back to its time-domain signal.
func (s *Spectrum) Reconstruct() ([]float64, error) {
	if s.Phases == nil {
		return nil, dsperr.Input("phases", 0, "must be present for lossless reconstruction")
	}
	return FromOneSided(s.Magnitudes, s.Phases, s.N)
}

// Peak returns the index of the strongest bin, ignoring DC when other bins exist.
func Peak(magnitudes []float64) (int, error) {
	switch len(magnitudes) {
	case 0:
		return 0, dsperr.Input("magnitudes", 0, "must not be empty")
	case 1:
		return 0, nil
	}
	return floats.MaxIdx(magnitudes[1:]) + 1, nil
}

// MeanAbsError returns mean(|a[i]-b[i]|).
func MeanAbsError(a, b []float64) (float64, error) {
	if len(a) == 0 {
		return 0, dsperr.Input("signal", 0, "must not be empty")
	}
	if len(a) != len(b) {
		return 0, dsperr.Input("reconstructed", len(b), "length must match original")
	}
	return floats.Distance(a, b, 1) / float64(len(a)), nil
}
