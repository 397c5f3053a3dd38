// Package window provides the analysis windows used before transforming frames.
//
// Hann is the default. Rectangular is the explicit opt-out from windowing.
// All windows are the symmetric forms from github.com/mjibson/go-dsp/window.
package window

import (
	"strings"

	dspwindow "github.com/mjibson/go-dsp/window"

	"github.com/neurlang/spectra/dsperr"
)

// Type names a window function.
type Type string

const (
	Hann        Type = "hann"
	Hamming     Type = "hamming"
	Blackman    Type = "blackman"
	Bartlett    Type = "bartlett"
	Rectangular Type = "rectangular"
)

// Default is the window applied when none is configured.
const Default = Hann

var generators = map[Type]func(int) []float64{
	Hann:        dspwindow.Hann,
	Hamming:     dspwindow.Hamming,
	Blackman:    dspwindow.Blackman,
	Bartlett:    dspwindow.Bartlett,
	Rectangular: dspwindow.Rectangular,
}

// Types lists the supported windows.
func Types() []Type {
	return []Type{Hann, Hamming, Blackman, Bartlett, Rectangular}
}

// Parse resolves a window name. The empty string selects Default and "none"
// is an alias for Rectangular.
func Parse(name string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(name))); t {
	case "":
		return Default, nil
	case "none":
		return Rectangular, nil
	default:
		if _, ok := generators[t]; !ok {
			return "", dsperr.Parameter("window_type", name, "must be one of hann, hamming, blackman, bartlett, rectangular")
		}
		return t, nil
	}
}

// New returns n coefficients of window t.
func New(t Type, n int) ([]float64, error) {
	gen, ok := generators[t]
	if !ok {
		return nil, dsperr.Parameter("window_type", string(t), "unsupported window")
	}
	if n <= 0 {
		return nil, dsperr.Parameter("window size", n, "must be > 0")
	}
	if n == 1 {
		// symmetric forms divide by n-1
		return []float64{1}, nil
	}
	return gen(n), nil
}

// Apply returns frame multiplied element-wise by w.
func Apply(frame, w []float64) ([]float64, error) {
	if len(frame) != len(w) {
		return nil, dsperr.Input("frame", len(frame), "length must match window")
	}
	out := make([]float64, len(frame))
	for i := range frame {
		out[i] = frame[i] * w[i]
	}
	return out, nil
}
