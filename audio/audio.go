// Package audio loads mono sample vectors from WAV and FLAC files and saves
// them as 16-bit WAV. Multi-channel files are averaged down to one channel.
package audio

import "errors"
import "fmt"
import "io"
import "math"
import "os"
import "path/filepath"
import "strings"
import "github.com/faiface/beep"
import "github.com/faiface/beep/wav"
import "github.com/mewkiz/flac"

var ErrFileNotLoaded = errors.New("audio file not loaded")
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Load reads a .wav or .flac file, returning mono samples and the sample rate.
func Load(name string) ([]float64, float64, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		return LoadWav(name)
	case ".flac":
		return LoadFlac(name)
	}
	return nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// LoadWav loads a wav file to a mono sample vector.
func LoadWav(name string) ([]float64, float64, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	stream, format, err := wav.Decode(file)
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", name, err)
	}
	defer stream.Close()

	gain := pcmGain(format.Precision)
	var out []float64
	var samples = make([][2]float64, 512)
	for {
		n, ok := stream.Stream(samples)
		for i := 0; i < n; i++ {
			if format.NumChannels == 1 {
				out = append(out, samples[i][0]*gain)
			} else {
				out = append(out, (samples[i][0]+samples[i][1])/2*gain)
			}
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", name, err)
	}
	if len(out) == 0 {
		return nil, 0, fmt.Errorf("%w: %s has no samples", ErrFileNotLoaded, name)
	}
	return out, float64(format.SampleRate), nil
}

// pcmGain undoes the beep wav decoder dividing signed PCM of the given byte
// width by 2^bits-1 rather than 2^(bits-1), so full scale maps to [-1, 1].
func pcmGain(precision int) float64 {
	if precision < 2 {
		return 1
	}
	bits := 8 * precision
	return (math.Ldexp(1, bits) - 1) / math.Ldexp(1, bits-1)
}

// LoadFlac loads a flac file to a mono sample vector.
func LoadFlac(name string) ([]float64, float64, error) {
	stream, err := flac.ParseFile(name)
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", name, err)
	}
	defer stream.Close()

	scale := math.Ldexp(1, int(stream.Info.BitsPerSample)-1)
	var out []float64
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", name, err)
		}
		channels := len(frame.Subframes)
		if channels == 0 {
			continue
		}
		for i := range frame.Subframes[0].Samples {
			var sum float64
			for _, sub := range frame.Subframes {
				sum += float64(sub.Samples[i])
			}
			out = append(out, sum/float64(channels)/scale)
		}
	}
	if len(out) == 0 {
		return nil, 0, fmt.Errorf("%w: %s has no samples", ErrFileNotLoaded, name)
	}
	return out, float64(stream.Info.SampleRate), nil
}

// SaveWav saves a mono 16-bit wav file, clipping samples to [-1, 1].
func SaveWav(name string, vec []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("save %s: sample rate must be > 0: %d", name, sampleRate)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	pos := 0
	streamer := beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= len(vec) {
			return 0, false
		}
		for n < len(samples) && pos < len(vec) {
			v := math.Max(-1, math.Min(1, vec[pos]))
			samples[n] = [2]float64{v, v}
			n++
			pos++
		}
		return n, true
	})

	if err := wav.Encode(f, streamer, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return f.Close()
}
