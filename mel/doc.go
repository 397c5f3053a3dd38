// Package mel builds mel filterbanks and computes mel spectrograms.
//
// The mel scale used throughout is mel(f) = 2595 * log10(1 + f/700). A
// filterbank has one triangular filter per mel band over the n_fft/2+1
// bins of a one-sided power spectrum. Bands too narrow for the FFT
// resolution (left edge equal to centre, or centre equal to right edge) are
// left as all-zero rows instead of dividing by zero. An upper edge fmax of
// zero stands for the Nyquist frequency rather than an empty range; fmin must
// still lie below the resolved edge.
//
// A mel spectrogram frames the signal into windows of NFFT samples every
// HopLength samples. The last partial frame is zero-padded, so a signal of
// length N >= NFFT yields ceil((N-NFFT)/HopLength)+1 frames and a shorter
// signal yields one. Each frame is windowed (Hann by default, rectangular to
// opt out), transformed to a power spectrum |X[k]|^2 and projected through the
// filterbank. Optionally the energies are converted to decibels with a 1e-10
// floor, so no value is ever -Inf.
package mel
