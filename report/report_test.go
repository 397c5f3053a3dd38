package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stamp = time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

func TestMetadataName(t *testing.T) {
	m := NewMetadata(7, stamp)
	assert.Equal(t, "20240309", m.Date)
	assert.Equal(t, "FFT_Data_Exp7_20240309_save_data.json", m.Name("FFT_Data", "_save_data.json"))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	data := FFTData{
		Metadata:          NewMetadata(1, stamp),
		TargetFrequencies: []float64{5, 10},
		FFTMagnitude:      []float64{0, 1},
	}
	require.NoError(t, WriteJSON(&buf, data))
	assert.Contains(t, buf.String(), "\n    \"experiment_id\": 1,")

	var back map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "20240309", back["date"])
	assert.Equal(t, []interface{}{5.0, 10.0}, back["target_frequencies"])
}

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "REPORT.md")
	entry := Entry{
		Metadata: NewMetadata(1, stamp),
		Title:    "FFT",
		Fields:   []Field{{Label: "Reconstruction error", Value: "0.000000"}},
		Image:    "plot.png",
		Data:     "data.json",
	}
	require.NoError(t, Append(path, entry))
	entry.ID = 2
	require.NoError(t, Append(path, entry))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasPrefix(text, header))
	assert.Equal(t, 1, strings.Count(text, header))
	assert.Contains(t, text, "## FFT - Experiment #1 - 20240309")
	assert.Contains(t, text, "## FFT - Experiment #2 - 20240309")
	assert.Contains(t, text, "- **Run time**: 2024-03-09 14:05:06")
	assert.Contains(t, text, "- **Reconstruction error**: 0.000000")
	assert.Contains(t, text, "![FFT](./plot.png)")
	assert.Contains(t, text, "Data file: [data.json](./data.json)")
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mel.json")
	require.NoError(t, SaveJSON(path, MelData{Metadata: NewMetadata(3, stamp), NMels: 2}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"n_mels": 2`)
}
