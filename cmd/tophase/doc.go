// Command tophase runs a phase-preserving STFT/ISTFT round trip on audio files.
//
// Each file is split into --n-fft sample frames every --hop-length samples,
// windowed, transformed and rebuilt by overlap-add. The reconstruction is
// written next to the input as <audio_file>.istft.wav and the SNR between the
// two is logged. The dB magnitude of the one-sided STFT is drawn to
// STFT_Spectrogram_Exp<id>_<date>.png in --out-dir. With --data the run is
// saved as JSON and appended to the report with that image.
//
// Usage:
//
//	tophase [flags] <audio_file>...
//
// Supported input formats: .wav, .flac
package main
