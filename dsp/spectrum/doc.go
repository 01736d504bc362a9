// Package spectrum turns interleaved transform output into the magnitude
// envelopes that interval and peak extraction work on.
//
// It does not compute transforms itself; see package fft.
package spectrum
