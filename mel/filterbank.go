package mel

import "math"
import "gonum.org/v1/gonum/mat"
import "github.com/neurlang/spectra/dsperr"

// Norm selects the filterbank row normalization. It changes the absolute
// energies of every mel band.
type Norm int

const (
	// NormNone leaves every triangle with a peak of 1.
	NormNone Norm = iota
	// NormArea divides each row by its sum, giving unit area in bins.
	NormArea
	// NormSlaney scales each row by 2/(right-left) with the edges in Hz.
	NormSlaney
)

// ParseNorm resolves "none", "area" or "slaney".
func ParseNorm(name string) (Norm, error) {
	switch name {
	case "", "none":
		return NormNone, nil
	case "area":
		return NormArea, nil
	case "slaney":
		return NormSlaney, nil
	}
	return NormNone, dsperr.Parameter("normalize_filterbank", name, "must be none, area or slaney")
}

func (n Norm) String() string {
	switch n {
	case NormArea:
		return "area"
	case NormSlaney:
		return "slaney"
	}
	return "none"
}

// Filterbank maps one-sided power spectrum bins to mel bands. It is immutable.
type Filterbank struct {
	weights    *mat.Dense
	centers    []int
	degenerate []int

	sampleRate float64
	nfft       int
	fmin, fmax float64
	norm       Norm
}

// NewFilterbank builds nMels triangular filters spaced evenly in mels between
// fmin and fmax. An fmax of zero is not rejected as fmin >= fmax: it selects
// the Nyquist frequency, and the fmin < fmax check applies to that value.
func NewFilterbank(sampleRate float64, nfft, nMels int, fmin, fmax float64, norm Norm) (*Filterbank, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, dsperr.Parameter("sampling_rate", sampleRate, "must be a finite value > 0")
	}
	if nMels < 1 {
		return nil, dsperr.Parameter("n_mels", nMels, "must be >= 1")
	}
	if nfft < 2 {
		return nil, dsperr.Parameter("n_fft", nfft, "must be >= 2")
	}
	nyquist := sampleRate / 2
	if fmax == 0 {
		fmax = nyquist
	}
	if !(fmin >= 0) {
		return nil, dsperr.Parameter("fmin", fmin, "must be >= 0")
	}
	if !(fmax <= nyquist) {
		return nil, dsperr.Parameter("fmax", fmax, "must not exceed the Nyquist frequency")
	}
	if fmin >= fmax {
		return nil, dsperr.Parameter("fmin", fmin, "must be below fmax")
	}
	if norm < NormNone || norm > NormSlaney {
		return nil, dsperr.Parameter("normalize_filterbank", int(norm), "unknown normalization")
	}

	nbins := nfft/2 + 1
	lo, hi := HzToMel(fmin), HzToMel(fmax)
	hz := make([]float64, nMels+2)
	bins := make([]int, nMels+2)
	for i := range hz {
		hz[i] = MelToHz(lo + (hi-lo)*float64(i)/float64(nMels+1))
		bins[i] = int(math.Floor(float64(nfft+1) * hz[i] / sampleRate))
	}

	fb := &Filterbank{
		weights:    mat.NewDense(nMels, nbins, nil),
		centers:    make([]int, nMels),
		sampleRate: sampleRate,
		nfft:       nfft,
		fmin:       fmin,
		fmax:       fmax,
		norm:       norm,
	}
	for r := 0; r < nMels; r++ {
		left, center, right := bins[r], bins[r+1], bins[r+2]
		fb.centers[r] = center
		if left == center || center == right {
			fb.degenerate = append(fb.degenerate, r)
			continue
		}
		for k := left; k <= right && k < nbins; k++ {
			var w float64
			if k <= center {
				w = float64(k-left) / float64(center-left)
			} else {
				w = float64(right-k) / float64(right-center)
			}
			fb.weights.Set(r, k, w)
		}
		switch norm {
		case NormArea:
			if sum := mat.Sum(fb.weights.RowView(r)); sum > 0 {
				fb.scaleRow(r, 1/sum)
			}
		case NormSlaney:
			fb.scaleRow(r, 2/(hz[r+2]-hz[r]))
		}
	}
	return fb, nil
}

func (f *Filterbank) scaleRow(r int, s float64) {
	row := f.weights.RawRowView(r)
	for k := range row {
		row[k] *= s
	}
}

// Dims returns the number of mel bands and spectrum bins.
func (f *Filterbank) Dims() (bands, bins int) {
	return f.weights.Dims()
}

// Weights returns a copy of the filterbank matrix.
func (f *Filterbank) Weights() *mat.Dense {
	return mat.DenseCopyOf(f.weights)
}

// Row returns a copy of the weights of band r.
func (f *Filterbank) Row(r int) []float64 {
	return mat.Row(nil, r, f.weights)
}

// Centers returns the centre bin of every band.
func (f *Filterbank) Centers() []int {
	return append([]int(nil), f.centers...)
}

// Degenerate lists the bands whose rows were left all-zero.
func (f *Filterbank) Degenerate() []int {
	return append([]int(nil), f.degenerate...)
}

func (f *Filterbank) SampleRate() float64 { return f.sampleRate }

func (f *Filterbank) NFFT() int { return f.nfft }

func (f *Filterbank) Range() (fmin, fmax float64) { return f.fmin, f.fmax }

func (f *Filterbank) Norm() Norm { return f.norm }

// Apply projects a one-sided power spectrum onto the mel bands.
func (f *Filterbank) Apply(power []float64) ([]float64, error) {
	bands, bins := f.weights.Dims()
	if len(power) != bins {
		return nil, dsperr.Input("power", len(power), "length must be n_fft/2+1")
	}
	in := mat.NewVecDense(bins, append([]float64(nil), power...))
	out := mat.NewVecDense(bands, nil)
	out.MulVec(f.weights, in)
	return out.RawVector().Data, nil
}
