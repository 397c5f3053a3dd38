// Command tomel converts audio files (WAV/FLAC) to mel spectrogram images (PNG).
//
// This tool frames the audio, windows every frame, projects its power spectrum
// through a mel filterbank and saves the result as a PNG image with low
// frequencies at the bottom. With --data the matrix is also written as JSON,
// and --f16 dumps it as raw little-endian half floats.
//
// Usage:
//
//	tomel [flags] <audio_file>...
//
// The output PNG file will be named <audio_file>.png
//
// Supported input formats: .wav, .flac
package main
