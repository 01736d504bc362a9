package formant

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-formant/dsp/fft"
	"github.com/cwbudde/algo-formant/dsp/interval"
	"github.com/cwbudde/algo-formant/dsp/lpc"
	"github.com/cwbudde/algo-formant/dsp/peak"
	"github.com/cwbudde/algo-formant/dsp/resample"
	"github.com/cwbudde/algo-formant/dsp/spectrum"
	"github.com/cwbudde/algo-formant/dsp/window"
)

var (
	// ErrSegmentTooShort is returned for segments of fewer than two samples.
	ErrSegmentTooShort = errors.New("formant: segment needs at least two samples")
	// ErrInvalidLength is returned when the spectral path gets a buffer that
	// is not a power-of-two number of interleaved complex points.
	ErrInvalidLength = errors.New("formant: buffer is not a power-of-two interleaved transform size")
)

// Analysis is the outcome of the LPC path.
type Analysis struct {
	// Model is the fitted all-pole model. Its Status tells whether the
	// requested order was reached.
	Model lpc.Result
	// Roots holds every model pole in solver order.
	Roots []complex128
	// Formants holds the selected poles sorted by frequency.
	Formants []Formant
	// SampleRate is the rate the model was fitted at; it differs from the
	// input rate when Config.AnalysisRate resampled the segment.
	SampleRate float64
}

// Analyze estimates formants of a single segment through linear prediction:
// optional downsampling to Config.AnalysisRate, pre-emphasis, mean removal,
// the analysis window, the configured estimator, root solving and selection.
// samples is not modified.
func Analyze(samples []float64, sampleRate float64, cfg Config) (Analysis, error) {
	if !(sampleRate > 0) {
		return Analysis{}, ErrInvalidSampleRate
	}
	if len(samples) < 2 {
		return Analysis{}, ErrSegmentTooShort
	}

	if cfg.AnalysisRate > 0 && cfg.AnalysisRate < sampleRate {
		var err error
		if samples, sampleRate, err = resample.ToRate(samples, sampleRate, cfg.AnalysisRate); err != nil {
			return Analysis{}, fmt.Errorf("formant: resampling: %w", err)
		}
	}

	x := Preemphasize(samples, sampleRate, cfg)
	removeMean(x)

	if cfg.Window == window.TypeRaisedCosine {
		window.Apply(cfg.Window, x, window.WithParam(cfg.WindowParam1))
	} else {
		window.Apply(cfg.Window, x)
	}

	order := cfg.ModelOrder(sampleRate)

	var (
		model lpc.Result
		err   error
	)
	if cfg.Method == lpc.MethodMarple {
		model, err = lpc.Marple(x, order, cfg.Marple)
	} else {
		model, err = lpc.Estimate(cfg.Method, x, order)
	}
	if err != nil {
		return Analysis{}, fmt.Errorf("formant: %v model: %w", cfg.Method, err)
	}

	roots, formants, err := resolve(model, sampleRate, cfg)
	if err != nil {
		return Analysis{}, err
	}

	return Analysis{Model: model, Roots: roots, Formants: formants, SampleRate: sampleRate}, nil
}

// Preemphasize returns x filtered by 1 - c z^-1 with
// c = FilterStrength * exp(-2 pi PreemphasisCutoff / fs).
func Preemphasize(x []float64, sampleRate float64, cfg Config) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}

	c := cfg.FilterStrength * math.Exp(-2*math.Pi*cfg.PreemphasisCutoff/sampleRate)

	out[0] = x[0]
	for i := 1; i < len(x); i++ {
		out[i] = x[i] - c*x[i-1]
	}

	return out
}

func removeMean(x []float64) {
	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))

	for i := range x {
		x[i] -= mean
	}
}

// SpectralPeaks estimates formant candidates from the magnitude spectrum of
// an interleaved complex segment: an optional raised-cosine time window
// (WindowParam2), the forward transform, the normalized magnitudes of the
// first N/2 bins, cutoff-stepped interval accumulation and peak
// classification. The returned peaks are ordered by frequency and include
// absorbed duplicates.
func SpectralPeaks(buf []float32, sampleRate float64, cfg Config) ([]peak.Peak, error) {
	if !(sampleRate > 0) {
		return nil, ErrInvalidSampleRate
	}
	if !fft.Valid(len(buf)) {
		return nil, fmt.Errorf("%w: %d floats", ErrInvalidLength, len(buf))
	}

	points := len(buf) / 2

	if cfg.WindowParam2 != 1 {
		coeffs, err := window.RaisedCosine(points, cfg.WindowParam2)
		if err != nil {
			return nil, fmt.Errorf("formant: spectral window: %w", err)
		}
		if buf, err = window.ApplyInterleaved(buf, coeffs); err != nil {
			return nil, fmt.Errorf("formant: spectral window: %w", err)
		}
	}

	spec, err := fft.Forward(buf)
	if err != nil {
		return nil, fmt.Errorf("formant: %w", err)
	}

	return SpectrumPeaks(spec, sampleRate, cfg)
}

// SpectrumPeaks runs the peak pass of SpectralPeaks over an interleaved
// spectrum that is already transformed.
func SpectrumPeaks(spec []float32, sampleRate float64, cfg Config) ([]peak.Peak, error) {
	if !(sampleRate > 0) {
		return nil, ErrInvalidSampleRate
	}
	if !fft.Valid(len(spec)) {
		return nil, fmt.Errorf("%w: %d floats", ErrInvalidLength, len(spec))
	}

	mag, err := spectrum.HalfMagnitude(spec)
	if err != nil {
		return nil, err
	}
	spectrum.Normalize(mag)

	intervals, err := interval.AccumulateWithDistance(mag, cfg.CutoffStep, cfg.MergeDistance)
	if err != nil {
		return nil, fmt.Errorf("formant: %w", err)
	}

	return peak.Classify(mag, intervals, spectrum.BinHz(sampleRate, len(spec)/2)), nil
}
