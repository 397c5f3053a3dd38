// Package phase provides phase-preserving short-time Fourier analysis and synthesis.
//
// STFT keeps the full complex spectrum of every frame, so ISTFT can rebuild
// the waveform directly by weighted overlap-add without iterative phase
// estimation:
//   - frames of FrameLen samples every HopLength samples, trailing partial
//     frame dropped (1 + (N-FrameLen)/HopLength frames)
//   - configurable analysis window (hann, hamming, blackman, bartlett, rectangular)
//   - synthesis normalized by the overlapped squared window
//   - SNR to score a reconstruction against its original
package phase
