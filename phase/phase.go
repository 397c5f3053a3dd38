package phase

import "math"
import "github.com/r9y9/gossp/stft"
import "github.com/mjibson/go-dsp/fft"
import "gonum.org/v1/gonum/floats"
import "github.com/neurlang/spectra/dsperr"
import "github.com/neurlang/spectra/window"

// MaxSNR bounds the value returned by SNR for perfect or silent reconstructions.
const MaxSNR = 300.0

// windowFloor marks output samples with too little window coverage to normalize.
const windowFloor = 1e-6

// Phase represents the configuration for phase-preserving analysis.
type Phase struct {
	FrameLen  int
	HopLength int
	Window    window.Type
}

// NewPhase creates a new Phase instance with default values.
func NewPhase() *Phase {
	return &Phase{
		FrameLen:  2048,
		HopLength: 512,
		Window:    window.Hann,
	}
}

func (m *Phase) validate() error {
	if m.FrameLen < 2 {
		return dsperr.Parameter("frame_len", m.FrameLen, "must be >= 2")
	}
	if m.HopLength <= 0 {
		return dsperr.Parameter("hop_length", m.HopLength, "must be > 0")
	}
	if m.HopLength > m.FrameLen {
		return dsperr.Parameter("hop_length", m.HopLength, "must not exceed frame_len")
	}
	return nil
}

func (m *Phase) coefficients() ([]float64, error) {
	wt := m.Window
	if wt == "" {
		wt = window.Default
	}
	return window.New(wt, m.FrameLen)
}

// NumFrames returns how many full frames STFT extracts from n samples.
func (m *Phase) NumFrames(n int) int {
	if n < m.FrameLen || m.HopLength <= 0 {
		return 0
	}
	return 1 + (n-m.FrameLen)/m.HopLength
}

// STFT returns the full-length complex spectrum of every frame of buf.
func (m *Phase) STFT(buf []float64) ([][]complex128, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	if len(buf) < m.FrameLen {
		return nil, dsperr.Input("signal", len(buf), "must hold at least frame_len samples")
	}
	win, err := m.coefficients()
	if err != nil {
		return nil, err
	}

	s := stft.New(m.HopLength, m.FrameLen)
	s.Window = win

	return s.STFT(buf), nil
}

// ISTFT rebuilds a signal of FrameLen+(frames-1)*HopLength samples by
// overlap-adding the windowed inverse transform of every frame.
func (m *Phase) ISTFT(spectrogram [][]complex128) ([]float64, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	if len(spectrogram) == 0 {
		return nil, dsperr.Input("spectrogram", 0, "must hold at least one frame")
	}
	for i := range spectrogram {
		if len(spectrogram[i]) != m.FrameLen {
			return nil, dsperr.Input("spectrogram", len(spectrogram[i]), "frames must have frame_len bins")
		}
	}
	win, err := m.coefficients()
	if err != nil {
		return nil, err
	}

	frameShift := m.HopLength
	frameLen := m.FrameLen
	numFrames := len(spectrogram)
	reconstructedSignal := make([]float64, frameLen+(numFrames-1)*frameShift)
	windowSum := make([]float64, len(reconstructedSignal))

	for i := 0; i < numFrames; i++ {
		buf := fft.IFFT(spectrogram[i])
		for j := 0; j < frameLen; j++ {
			pos := i*frameShift + j
			reconstructedSignal[pos] += real(buf[j]) * win[j]
			windowSum[pos] += win[j] * win[j]
		}
	}

	for i := range reconstructedSignal {
		if windowSum[i] > windowFloor {
			reconstructedSignal[i] /= windowSum[i]
		}
	}

	return reconstructedSignal, nil
}

// RoundTrip analyses buf and synthesizes it back, returning the
// reconstruction and its SNR against buf.
func (m *Phase) RoundTrip(buf []float64) ([]float64, float64, error) {
	spectrogram, err := m.STFT(buf)
	if err != nil {
		return nil, 0, err
	}
	out, err := m.ISTFT(spectrogram)
	if err != nil {
		return nil, 0, err
	}
	snr, err := SNR(buf, out)
	if err != nil {
		return nil, 0, err
	}
	return out, snr, nil
}

// SNR returns 10*log10(signal energy / error energy) in dB over the common
// prefix of both signals, clamped to [-MaxSNR, MaxSNR].
func SNR(original, reconstructed []float64) (float64, error) {
	n := len(original)
	if len(reconstructed) < n {
		n = len(reconstructed)
	}
	if n == 0 {
		return 0, dsperr.Input("signal", 0, "must not be empty")
	}

	ps := floats.Dot(original[:n], original[:n])
	pn := math.Pow(floats.Distance(original[:n], reconstructed[:n], 2), 2)
	if pn == 0 {
		return MaxSNR, nil
	}
	if ps == 0 {
		return -MaxSNR, nil
	}
	snr := 10 * math.Log10(ps/pn)
	return math.Max(-MaxSNR, math.Min(MaxSNR, snr)), nil
}
