// Package resample changes the sample rate of complete analysis segments.
//
// Formant estimation wants a rate of about twice the highest formant of
// interest; fewer samples per second means fewer poles to fit and fewer
// spurious resonances above the band. A Converter maps a segment to the new
// rate in one pass with a zero-phase polyphase FIR, so that sample m of the
// output lines up with time m/outRate of the input.
package resample

import (
	"errors"
	"math"
)

var (
	// ErrInvalidRatio is returned for non-positive up or down factors.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidRate is returned for non-positive or NaN sample rates.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
)

// Quality selects the anti-aliasing prototype.
type Quality int

const (
	QualityFast Quality = iota
	QualityBalanced
	QualityBest
)

// Profile holds the prototype parameters of a quality mode.
type Profile struct {
	TapsPerPhase int
	// CutoffScale multiplies the theoretical cutoff 0.5/max(up, down).
	CutoffScale float64
	KaiserBeta  float64
}

// QualityProfile returns the prototype parameters of q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5}
	}
}

type config struct {
	quality Quality
	taps    int
	maxDen  int
}

// Option configures a Converter.
type Option func(*config)

// WithQuality selects a prototype profile.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

// WithTapsPerPhase overrides the branch length of the selected profile.
func WithTapsPerPhase(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.taps = n
		}
	}
}

// WithMaxDenominator bounds the denominator used by ForRates to approximate
// an irrational rate ratio.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{quality: QualityBalanced, maxDen: 1024}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

func (c config) profile() Profile {
	p := QualityProfile(c.quality)
	if c.taps > 0 {
		p.TapsPerPhase = c.taps
	}

	return p
}

// Converter resamples by the rational factor up/down.
type Converter struct {
	up, down int
	// phases[p][k] is prototype tap p + k*up.
	phases [][]float64
	center int
}

// New returns a converter for the ratio up/down, reduced to lowest terms.
func New(up, down int, opts ...Option) (*Converter, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidRatio
	}

	g := gcd(up, down)
	up, down = up/g, down/g

	taps, err := prototype(up, down, newConfig(opts).profile())
	if err != nil {
		return nil, err
	}

	return &Converter{
		up:     up,
		down:   down,
		phases: polyphase(taps, up),
		center: (len(taps) - 1) / 2,
	}, nil
}

// ForRates returns a converter from inRate to approximately outRate. Use
// Rate to learn the rate actually produced.
func ForRates(inRate, outRate float64, opts ...Option) (*Converter, error) {
	if !(inRate > 0) || !(outRate > 0) || math.IsInf(inRate, 0) || math.IsInf(outRate, 0) {
		return nil, ErrInvalidRate
	}

	up, down := approximateRatio(outRate/inRate, newConfig(opts).maxDen)

	return New(up, down, opts...)
}

// Ratio returns the reduced conversion factors.
func (c *Converter) Ratio() (up, down int) { return c.up, c.down }

// Rate returns the output rate for input at inRate.
func (c *Converter) Rate(inRate float64) float64 {
	return inRate * float64(c.up) / float64(c.down)
}

// OutputLen returns the number of samples Apply produces for n inputs.
func (c *Converter) OutputLen(n int) int {
	if n <= 0 {
		return 0
	}

	return (n*c.up + c.down - 1) / c.down
}

// Apply returns x at the new rate. Samples outside x count as zero.
func (c *Converter) Apply(x []float64) []float64 {
	out := make([]float64, c.OutputLen(len(x)))

	for m := range out {
		pos := m*c.down + c.center
		base, phase := pos/c.up, pos%c.up

		var y float64
		for k, h := range c.phases[phase] {
			n := base - k
			if n < 0 {
				break
			}
			if n < len(x) {
				y += h * x[n]
			}
		}
		out[m] = y
	}

	return out
}

// ToRate resamples x from inRate to approximately outRate and returns the
// rate produced. Equal rates return a copy.
func ToRate(x []float64, inRate, outRate float64, opts ...Option) ([]float64, float64, error) {
	c, err := ForRates(inRate, outRate, opts...)
	if err != nil {
		return nil, 0, err
	}

	if c.up == c.down {
		return append([]float64(nil), x...), inRate, nil
	}

	return c.Apply(x), c.Rate(inRate), nil
}
