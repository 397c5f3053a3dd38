// Package signal synthesizes deterministic composite test signals.
//
// A signal is a sum of sinusoids at configured target frequencies with
// optional Gaussian noise, sampled on an evenly spaced grid over [0, duration).
// Noise is drawn from a source seeded per call, so equal configuration always
// yields equal samples.
package signal
