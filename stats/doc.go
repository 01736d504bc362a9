// Package stats summarizes analysis segments and their spectra.
//
// Level describes a time-domain segment: offset, loudness and zero-crossing
// rate, the quantities used to decide whether a frame is worth a formant
// estimate. Shape describes a one-sided magnitude spectrum with the usual
// centroid, spread, flatness, rolloff and peak bandwidth descriptors.
package stats
