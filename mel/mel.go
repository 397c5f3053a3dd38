package mel

import "gonum.org/v1/gonum/mat"
import "github.com/neurlang/spectra/dsperr"
import "github.com/neurlang/spectra/spectrum"
import "github.com/neurlang/spectra/window"

// Mel represents the configuration for generating mel spectrograms.
type Mel struct {
	NumMels int
	MelFmin float64
	// MelFmax of zero means the Nyquist frequency of the analysed signal.
	MelFmax float64

	NFFT      int
	HopLength int
	Window    window.Type
	Norm      Norm

	// LogScale converts energies to decibels relative to the peak when
	// RefMax is set, otherwise relative to 1. TopDB > 0 clips the range.
	LogScale bool
	RefMax   bool
	TopDB    float64

	// NoPad rejects signals shorter than NFFT instead of zero-padding them.
	NoPad bool
	// Strict turns degenerate filterbank bands into ErrNumericalDegeneracy.
	Strict bool
}

// NewMel creates a new Mel instance with default values.
func NewMel() *Mel {
	return &Mel{
		NumMels:   128,
		MelFmin:   0,
		MelFmax:   8000,
		NFFT:      2048,
		HopLength: 512,
		Window:    window.Hann,
		Norm:      NormNone,
		LogScale:  true,
		RefMax:    true,
		TopDB:     80,
	}
}

// Filterbank builds the filterbank this configuration uses at sampleRate.
func (m *Mel) Filterbank(sampleRate float64) (*Filterbank, error) {
	fb, err := NewFilterbank(sampleRate, m.NFFT, m.NumMels, m.MelFmin, m.MelFmax, m.Norm)
	if err != nil {
		return nil, err
	}
	if deg := fb.Degenerate(); m.Strict && len(deg) > 0 {
		return nil, dsperr.Degenerate("n_mels", m.NumMels, "bands narrower than one FFT bin")
	}
	return fb, nil
}

func (m *Mel) validate(n int) error {
	if n == 0 {
		return dsperr.Input("signal", 0, "must not be empty")
	}
	if m.HopLength <= 0 {
		return dsperr.Parameter("hop_length", m.HopLength, "must be > 0")
	}
	if m.NFFT < 2 {
		return dsperr.Parameter("n_fft", m.NFFT, "must be >= 2")
	}
	if m.NoPad && m.NFFT > n {
		return dsperr.Parameter("n_fft", m.NFFT, "exceeds signal length and padding is disabled")
	}
	if m.TopDB < 0 {
		return dsperr.Parameter("top_db", m.TopDB, "must be >= 0")
	}
	return nil
}

// Spectrogram computes the mel spectrogram of buf sampled at sampleRate.
func (m *Mel) Spectrogram(buf []float64, sampleRate float64) (*Spectrogram, error) {
	if err := m.validate(len(buf)); err != nil {
		return nil, err
	}
	wt := m.Window
	if wt == "" {
		wt = window.Default
	}
	win, err := window.New(wt, m.NFFT)
	if err != nil {
		return nil, err
	}
	fb, err := m.Filterbank(sampleRate)
	if err != nil {
		return nil, err
	}

	frames := FrameCount(len(buf), m.NFFT, m.HopLength)
	_, nbins := fb.Dims()
	power := mat.NewDense(nbins, frames, nil)
	for i := 0; i < frames; i++ {
		windowed, err := window.Apply(frame(buf, i, m.NFFT, m.HopLength), win)
		if err != nil {
			return nil, err
		}
		p, err := spectrum.Power(windowed)
		if err != nil {
			return nil, err
		}
		power.SetCol(i, p)
	}

	var out mat.Dense
	out.Mul(fb.weights, power)

	if m.LogScale {
		power_to_db(&out, m.RefMax, m.TopDB)
	}

	return &Spectrogram{
		data:       &out,
		sampleRate: sampleRate,
		hopLength:  m.HopLength,
		decibels:   m.LogScale,
	}, nil
}

// Spectrogram is an immutable bands x frames matrix of mel energies.
type Spectrogram struct {
	data       *mat.Dense
	sampleRate float64
	hopLength  int
	decibels   bool
}

// Dims returns the number of mel bands and frames.
func (s *Spectrogram) Dims() (bands, frames int) {
	return s.data.Dims()
}

func (s *Spectrogram) At(band, frame int) float64 {
	return s.data.At(band, frame)
}

// Band returns a copy of the energies of one mel band over time.
func (s *Spectrogram) Band(band int) []float64 {
	return mat.Row(nil, band, s.data)
}

// Frame returns a copy of the mel energies of one frame.
func (s *Spectrogram) Frame(frame int) []float64 {
	return mat.Col(nil, frame, s.data)
}

// Matrix returns a copy of the spectrogram.
func (s *Spectrogram) Matrix() *mat.Dense {
	return mat.DenseCopyOf(s.data)
}

// Decibels reports whether values are in dB rather than power.
func (s *Spectrogram) Decibels() bool { return s.decibels }

func (s *Spectrogram) SampleRate() float64 { return s.sampleRate }

// Times returns the start time of every frame in seconds.
func (s *Spectrogram) Times() []float64 {
	_, frames := s.data.Dims()
	out := make([]float64, frames)
	for i := range out {
		out[i] = float64(i*s.hopLength) / s.sampleRate
	}
	return out
}
