// Package report persists analysis results: one JSON data file per run and a
// cumulative markdown report. Run metadata is created here and passed through
// untouched; the analysis packages never see it.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/template"
	"time"
)

// Metadata identifies one experiment run.
type Metadata struct {
	ID        int       `json:"experiment_id"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMetadata stamps run id with the date of now.
func NewMetadata(id int, now time.Time) Metadata {
	return Metadata{ID: id, Date: now.Format("20060102"), Timestamp: now}
}

// Name returns "<prefix>_Exp<id>_<date><suffix>".
func (m Metadata) Name(prefix, suffix string) string {
	return fmt.Sprintf("%s_Exp%d_%s%s", prefix, m.ID, m.Date, suffix)
}

// FFTData is the record of a forward/inverse transform run.
type FFTData struct {
	Metadata
	TargetFrequencies   []float64 `json:"target_frequencies"`
	TimeSeries          []float64 `json:"time_series"`
	OriginalSignal      []float64 `json:"original_signal"`
	ReconstructedSignal []float64 `json:"reconstructed_signal"`
	FFTFrequencies      []float64 `json:"fft_frequencies"`
	FFTMagnitude        []float64 `json:"fft_magnitude"`
	ReconstructionError float64   `json:"reconstruction_error"`
}

// MelData is the record of a mel spectrogram run.
type MelData struct {
	Metadata
	NMels          int         `json:"n_mels"`
	Fmin           float64     `json:"fmin"`
	Fmax           float64     `json:"fmax"`
	SamplingRate   float64     `json:"sampling_rate"`
	Decibels       bool        `json:"decibels"`
	MelSpectrogram [][]float64 `json:"mel_spectrogram"`
}

// STFTData is the record of an STFT round trip.
type STFTData struct {
	Metadata
	WindowSize int     `json:"window_size"`
	HopLength  int     `json:"hop_length"`
	WindowType string  `json:"window_type"`
	SNR        float64 `json:"snr"`
	Frames     int     `json:"frames"`
	Shape      [2]int  `json:"stft_shape"`
}

// WriteJSON encodes v with four-space indentation.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

// SaveJSON writes v to name.
func SaveJSON(name string, v interface{}) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return f.Close()
}

// Entry is one section appended to the report.
type Entry struct {
	Metadata
	Title  string
	Fields []Field
	Image  string
	Data   string
}

// Field is a labelled value listed in an entry.
type Field struct {
	Label string
	Value string
}

const header = "# Spectral Analysis Report\n\n"

var entryTemplate = template.Must(template.New("entry").Parse(`
## {{.Title}} - Experiment #{{.ID}} - {{.Date}}

- **Run time**: {{.Timestamp.Format "2006-01-02 15:04:05"}}
{{- range .Fields}}
- **{{.Label}}**: {{.Value}}
{{- end}}
{{if .Image}}
![{{.Title}}](./{{.Image}})
{{end}}{{if .Data}}
Data file: [{{.Data}}](./{{.Data}})
{{end}}
---
`))

// Append adds entry to the markdown report at path, creating it with a
// header when it does not exist yet.
func Append(path string, entry Entry) error {
	var buf bytes.Buffer
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		buf.WriteString(header)
	} else if err != nil {
		return err
	}
	if err := entryTemplate.Execute(&buf, entry); err != nil {
		return fmt.Errorf("render report entry: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
