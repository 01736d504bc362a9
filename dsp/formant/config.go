package formant

import (
	"github.com/cwbudde/algo-formant/dsp/interval"
	"github.com/cwbudde/algo-formant/dsp/lpc"
	"github.com/cwbudde/algo-formant/dsp/window"
)

// Config holds the formant-search parameters shared by both analysis paths.
type Config struct {
	// FilterStrength scales the pre-emphasis coefficient; 0 disables pre-emphasis.
	FilterStrength float64
	// WindowParam1 is the raised-cosine constant of the LPC analysis window
	// when Window is window.TypeRaisedCosine.
	WindowParam1 float64
	// WindowParam2 is the raised-cosine constant of the time window applied
	// before the spectral transform; 1 leaves the input untouched.
	WindowParam2 float64
	// MinFormant is the lowest accepted formant frequency in Hz (exclusive).
	MinFormant float64
	// MaxBandwidth is the widest accepted formant bandwidth in Hz (exclusive).
	MaxBandwidth float64
	// MinImag rejects roots whose imaginary part is not above it.
	MinImag float64
	// Order is the LPC order; 0 derives it from the sample rate.
	Order  int
	Method lpc.Method
	Window window.Type
	// PreemphasisCutoff is the pre-emphasis corner frequency in Hz.
	PreemphasisCutoff float64
	CutoffStep        float64
	MergeDistance     int
	// AnalysisRate, when positive and below the input rate, is the rate the
	// LPC path resamples to before fitting. 0 keeps the input rate.
	AnalysisRate float64
	// Marple carries the early-stop tolerances used when Method is
	// lpc.MethodMarple.
	Marple lpc.MarpleOptions
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the classic phonetic analysis settings.
func DefaultConfig() Config {
	return Config{
		FilterStrength:    1,
		WindowParam1:      0.5,
		WindowParam2:      1,
		MinFormant:        200,
		MaxBandwidth:      600,
		Method:            lpc.MethodNormal,
		Window:            window.TypeHann,
		PreemphasisCutoff: 50,
		CutoffStep:        interval.DefaultCutoffStep,
		MergeDistance:     interval.DefaultMergeDistance,
	}
}

// NewConfig applies zero or more options to the default config.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// ModelOrder returns the LPC order used at the given sample rate.
func (c Config) ModelOrder(sampleRate float64) int {
	if c.Order > 0 {
		return c.Order
	}

	return defaultOrder(sampleRate)
}

// WithFilterStrength scales the pre-emphasis filter.
func WithFilterStrength(strength float64) Option {
	return func(cfg *Config) {
		if strength >= 0 {
			cfg.FilterStrength = strength
		}
	}
}

// WithWindowParams sets the raised-cosine constants of the LPC analysis
// window and of the spectral-path time window.
func WithWindowParams(analysis, spectral float64) Option {
	return func(cfg *Config) {
		if analysis >= 0 && analysis <= 1 {
			cfg.WindowParam1 = analysis
		}
		if spectral >= 0 && spectral <= 1 {
			cfg.WindowParam2 = spectral
		}
	}
}

// WithMinFormant sets the lowest accepted formant frequency.
func WithMinFormant(hz float64) Option {
	return func(cfg *Config) {
		if hz >= 0 {
			cfg.MinFormant = hz
		}
	}
}

// WithMaxBandwidth sets the widest accepted formant bandwidth.
func WithMaxBandwidth(hz float64) Option {
	return func(cfg *Config) {
		if hz > 0 {
			cfg.MaxBandwidth = hz
		}
	}
}

// WithMinImag sets the imaginary-part threshold for root selection.
func WithMinImag(v float64) Option {
	return func(cfg *Config) {
		if v >= 0 {
			cfg.MinImag = v
		}
	}
}

// WithOrder fixes the LPC order.
func WithOrder(order int) Option {
	return func(cfg *Config) {
		if order > 0 {
			cfg.Order = order
		}
	}
}

// WithMethod selects the LPC estimator.
func WithMethod(m lpc.Method) Option {
	return func(cfg *Config) {
		cfg.Method = m
	}
}

// WithWindow selects the LPC analysis window.
func WithWindow(t window.Type) Option {
	return func(cfg *Config) {
		cfg.Window = t
	}
}

// WithPreemphasisCutoff sets the pre-emphasis corner frequency.
func WithPreemphasisCutoff(hz float64) Option {
	return func(cfg *Config) {
		if hz >= 0 {
			cfg.PreemphasisCutoff = hz
		}
	}
}

// WithCutoffStep sets the threshold decrement of the spectral peak search.
func WithCutoffStep(step float64) Option {
	return func(cfg *Config) {
		if step > 0 && step < 1 {
			cfg.CutoffStep = step
		}
	}
}

// WithMergeDistance sets the bin gap below which intervals merge.
func WithMergeDistance(bins int) Option {
	return func(cfg *Config) {
		if bins >= 0 {
			cfg.MergeDistance = bins
		}
	}
}

// WithAnalysisRate sets the rate the LPC path downsamples to; 0 disables
// resampling.
func WithAnalysisRate(hz float64) Option {
	return func(cfg *Config) {
		if hz >= 0 {
			cfg.AnalysisRate = hz
		}
	}
}

// WithMarpleTolerances sets the early-stop tolerances of the Marple estimator.
func WithMarpleTolerances(tol1, tol2 float64) Option {
	return func(cfg *Config) {
		if tol1 >= 0 && tol2 >= 0 {
			cfg.Marple = lpc.MarpleOptions{Tol1: tol1, Tol2: tol2}
		}
	}
}
