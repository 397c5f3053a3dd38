package mel

import "math"
import "gonum.org/v1/gonum/mat"

const _MEL_BREAK_FREQUENCY_HERTZ = 700.0
const _MEL_HIGH_FREQUENCY_Q = 2595.0

// amin floors energies before taking the logarithm.
const amin = 1e-10

// HzToMel converts a frequency in Hz to mels.
func HzToMel(value float64) float64 {
	return _MEL_HIGH_FREQUENCY_Q * math.Log10(1.0+(value/_MEL_BREAK_FREQUENCY_HERTZ))
}

// MelToHz converts mels to a frequency in Hz.
func MelToHz(value float64) float64 {
	return _MEL_BREAK_FREQUENCY_HERTZ * (math.Pow(10, value/_MEL_HIGH_FREQUENCY_Q) - 1.0)
}

// FrameCount returns the number of frames for a signal of n samples.
func FrameCount(n, nfft, hop int) int {
	if n <= nfft {
		return 1
	}
	return (n-nfft+hop-1)/hop + 1
}

// frame copies the i-th frame out of buf, zero-padding past the end.
func frame(buf []float64, i, nfft, hop int) []float64 {
	out := make([]float64, nfft)
	start := i * hop
	if start < len(buf) {
		copy(out, buf[start:])
	}
	return out
}

// power_to_db converts energies in place to 10*log10(x/ref), floored at amin,
// and clips values more than topdb below the peak when topdb > 0.
func power_to_db(m *mat.Dense, refmax bool, topdb float64) {
	ref := 1.0
	if refmax {
		ref = mat.Max(m)
	}
	offset := 10 * math.Log10(math.Max(ref, amin))

	m.Apply(func(_, _ int, v float64) float64 {
		return 10*math.Log10(math.Max(v, amin)) - offset
	}, m)

	if topdb > 0 {
		floor := mat.Max(m) - topdb
		m.Apply(func(_, _ int, v float64) float64 {
			return math.Max(v, floor)
		}, m)
	}
}
