// Package formant turns all-pole models and magnitude spectra into formant
// estimates.
//
// Two paths lead to a formant list. Analyze pre-emphasizes and windows a
// segment, fits an LPC model and converts the model poles to frequency and
// bandwidth pairs. SpectralPeaks transforms the segment and classifies the
// peaks of its magnitude spectrum.
package formant

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"github.com/cwbudde/algo-formant/dsp/lpc"
	"github.com/cwbudde/algo-formant/internal/polyroot"
)

// ErrInvalidSampleRate is returned for non-positive sample rates.
var ErrInvalidSampleRate = errors.New("formant: sample rate must be positive")

// Formant is one pole of the model mapped to acoustic terms.
type Formant struct {
	Frequency float64
	Bandwidth float64
	Root      complex128
	// Stable reports |Root| < 1.
	Stable bool
	// Selected reports that the formant passed the stability, band and
	// bandwidth tests of the config it was built with.
	Selected bool
}

func (f Formant) String() string {
	return fmt.Sprintf("%.2f Hz (bw %.2f Hz)", f.Frequency, f.Bandwidth)
}

// FromRoot converts a pole to frequency atan2(im, re)*fs/2pi and bandwidth
// -(fs/pi)*ln|root|.
func FromRoot(root complex128, sampleRate float64) Formant {
	mod := cmplx.Abs(root)

	return Formant{
		Frequency: math.Atan2(imag(root), real(root)) * sampleRate / (2 * math.Pi),
		Bandwidth: -(sampleRate / math.Pi) * math.Log(mod),
		Root:      root,
		Stable:    mod < 1,
	}
}

// FromRoots converts every root and marks the ones cfg accepts.
func FromRoots(roots []complex128, sampleRate float64, cfg Config) []Formant {
	out := make([]Formant, len(roots))
	for i, r := range roots {
		f := FromRoot(r, sampleRate)
		f.Selected = f.Stable &&
			imag(r) > cfg.MinImag &&
			f.Frequency > cfg.MinFormant &&
			f.Frequency < sampleRate/2 &&
			f.Bandwidth < cfg.MaxBandwidth
		out[i] = f
	}

	return out
}

// Select returns the selected formants in their original order.
func Select(formants []Formant) []Formant {
	out := make([]Formant, 0, len(formants))
	for _, f := range formants {
		if f.Selected {
			out = append(out, f)
		}
	}

	return out
}

// SortByFrequency orders formants by ascending frequency, in place.
func SortByFrequency(formants []Formant) {
	slices.SortStableFunc(formants, func(a, b Formant) int {
		switch {
		case a.Frequency < b.Frequency:
			return -1
		case a.Frequency > b.Frequency:
			return 1
		default:
			return 0
		}
	})
}

// Resolve finds the poles of an LPC model and returns the selected formants
// sorted by frequency. A model of order 0 has no poles. Root-solver failure
// abandons the whole estimate.
func Resolve(res lpc.Result, sampleRate float64, cfg Config) ([]Formant, error) {
	_, formants, err := resolve(res, sampleRate, cfg)
	return formants, err
}

func resolve(res lpc.Result, sampleRate float64, cfg Config) ([]complex128, []Formant, error) {
	if !(sampleRate > 0) {
		return nil, nil, ErrInvalidSampleRate
	}
	if res.Order < 1 {
		return nil, nil, nil
	}

	roots, err := solveRoots(res.Polynomial())
	if err != nil {
		return nil, nil, fmt.Errorf("formant: solving order-%d model: %w", res.Order, err)
	}

	formants := Select(FromRoots(roots, sampleRate, cfg))
	SortByFrequency(formants)

	return roots, formants, nil
}

// solveRoots is replaced in tests to force solver failures.
var solveRoots = polyroot.Solve

func defaultOrder(sampleRate float64) int {
	return int(math.Round(sampleRate/1000)) + 3
}
