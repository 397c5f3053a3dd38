// Command towav synthesizes the configured test signal into a WAV file.
//
// The signal is the sum of sinusoids at --target-frequencies with
// --amplitudes plus optional Gaussian noise, sampled at --sampling-rate for
// --duration seconds. Samples are scaled to --peak before being written as
// 16-bit mono, so the file can be fed back to tomel or tophase.
//
// Usage:
//
//	towav [flags] <wav_file>
package main
