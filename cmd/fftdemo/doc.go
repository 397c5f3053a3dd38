// Command fftdemo synthesizes a test signal, computes its one-sided spectrum,
// reconstructs the signal from it and records the run.
//
// For experiment number N on date D it writes, inside --out-dir:
//
//	FFT_Example_ExpN_D_plot_results.png     spectrum stem plot
//	FFT_Example_ExpN_D_signal.png           original waveform
//	FFT_Example_ExpN_D_reconstructed.png    reconstructed waveform
//	FFT_Data_ExpN_D_save_data.json          all arrays
//
// and appends a section to REPORT.md with the mean absolute reconstruction error.
//
// Usage:
//
//	fftdemo [--target-frequencies=5,10,15] [--sampling-rate=1000] [--duration=1] [-e N]
package main
