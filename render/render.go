// Package render draws analysis results as PNG images and exports
// spectrograms as half-precision buffers.
package render

import "errors"
import "image"
import "image/color"
import "image/png"
import "io"
import "math"
import "github.com/x448/float16"
import "gonum.org/v1/gonum/mat"
import "github.com/neurlang/spectra/mel"

var ErrEmpty = errors.New("nothing to render")

// Matrix is the read-only view render needs from a spectrogram.
type Matrix interface {
	Dims() (r, c int)
	At(i, j int) float64
}

var _ Matrix = (*mel.Spectrogram)(nil)
var _ Matrix = (*mat.Dense)(nil)

func bounds(m Matrix) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	rows, cols := m.Dims()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := m.At(y, x)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// heat maps t in [0, 1] to a dark-blue to yellow ramp.
func heat(t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	return color.RGBA{
		R: uint8(255 * math.Min(1, 2*t)),
		G: uint8(255 * t * t),
		B: uint8(255 * (1 - t) * 0.6),
		A: 255,
	}
}

// Spectrogram writes one pixel per (frame, band) as a PNG, min-max scaled.
// With reverse set, band 0 is drawn at the bottom.
func Spectrogram(w io.Writer, m Matrix, reverse bool) error {
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return ErrEmpty
	}
	lo, hi := bounds(m)
	span := hi - lo

	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			var t float64
			if span > 0 {
				t = (m.At(y, x) - lo) / span
			}
			if reverse {
				img.SetRGBA(x, rows-y-1, heat(t))
			} else {
				img.SetRGBA(x, y, heat(t))
			}
		}
	}
	return png.Encode(w, img)
}

// Stems draws magnitudes as vertical bars over a width x height canvas,
// the way a stem plot shows a one-sided spectrum. Bars falling on the same
// column keep their maximum. Markers are drawn as red columns.
func Stems(w io.Writer, frequencies, magnitudes []float64, markers []float64, width, height int) error {
	if len(frequencies) == 0 || len(frequencies) != len(magnitudes) || width < 1 || height < 1 {
		return ErrEmpty
	}
	fmax := frequencies[len(frequencies)-1]
	col := func(f float64) int {
		if fmax <= 0 {
			return 0
		}
		return int(math.Min(float64(width-1), math.Round(f/fmax*float64(width-1))))
	}

	peaks := make([]float64, width)
	var top float64
	for i, f := range frequencies {
		x := col(f)
		peaks[x] = math.Max(peaks[x], magnitudes[i])
		top = math.Max(top, magnitudes[i])
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, white)
		}
	}
	for _, f := range markers {
		x := col(f)
		for y := 0; y < height; y++ {
			img.SetRGBA(x, y, color.RGBA{255, 200, 200, 255})
		}
	}
	if top > 0 {
		for x, p := range peaks {
			bar := int(math.Round(p / top * float64(height-1)))
			for y := height - 1; y >= height-1-bar; y-- {
				img.SetRGBA(x, y, color.RGBA{20, 60, 160, 255})
			}
		}
	}
	return png.Encode(w, img)
}

// Waveform draws samples as a line trace over a width x height canvas.
func Waveform(w io.Writer, samples []float64, width, height int) error {
	if len(samples) == 0 || width < 1 || height < 1 {
		return ErrEmpty
	}
	var peak float64
	for _, v := range samples {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak == 0 {
		peak = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	row := func(v float64) int {
		return int(math.Round((1 - v/peak) / 2 * float64(height-1)))
	}
	for i, v := range samples {
		x := i * width / len(samples)
		img.SetRGBA(x, row(v), color.RGBA{0, 0, 0, 255})
	}
	return png.Encode(w, img)
}

// Float16 returns the matrix in band-major order as IEEE half-precision bits.
func Float16(m Matrix) []uint16 {
	rows, cols := m.Dims()
	out := make([]uint16, 0, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			out = append(out, float16.Fromfloat32(float32(m.At(y, x))).Bits())
		}
	}
	return out
}
