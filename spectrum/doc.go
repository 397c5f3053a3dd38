// Package spectrum implements the forward and inverse discrete Fourier
// transform of real-valued signals.
//
// Forward results are one-sided: bins 0..N/2 (integer division), so an input
// of length N yields N/2+1 frequencies k*sampleRate/N, the last of which is
// the Nyquist frequency for even N.
//
// Magnitudes use single-sided amplitude normalization: |X[k]|*2/N for the
// interior bins, |X[k]|/N for DC and, with even N, the Nyquist bin. A sinusoid
// of amplitude A centred on a bin therefore reads A. FromOneSided undoes
// exactly this scaling, so Analyze followed by Reconstruct is lossless.
//
// Reconstruction from magnitudes alone (nil phases) assumes zero phase. It
// yields a signal with the same magnitude spectrum, not the original waveform.
package spectrum
