// Package window generates the tapering windows applied before spectral and
// LPC analysis.
package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	// TypeRaisedCosine is p - (1-p)*cos(2*pi*x) with p set by WithParam.
	// p = 0.5 is Hann, p = 0.54 is Hamming.
	TypeRaisedCosine
)

var typeNames = map[Type]string{
	TypeRectangular:  "rectangular",
	TypeHann:         "hann",
	TypeHamming:      "hamming",
	TypeBlackman:     "blackman",
	TypeRaisedCosine: "raised-cosine",
}

// String returns the lower-case name used on command lines.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("window(%d)", int(t))
}

// ParseType maps a window name (case-insensitive) to its Type.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}

	return 0, fmt.Errorf("window: unknown type %q", name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	param    float64
	periodic bool
}

func defaultConfig() config {
	return config{param: 0.5}
}

// WithParam sets the constant term of TypeRaisedCosine.
func WithParam(p float64) Option {
	return func(c *config) {
		if p >= 0 && p <= 1 {
			c.param = p
		}
	}
}

// WithPeriodic selects the periodic form (divide by N) instead of the
// symmetric form (divide by N-1).
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic), cfg)
	}

	return out
}

// Hann returns symmetric Hann window coefficients.
func Hann(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeHann, size, opts...), validateLength(size)
}

// RaisedCosine returns periodic p - (1-p)*cos(2*pi*i/N) coefficients.
func RaisedCosine(size int, p float64) ([]float64, error) {
	if err := validateRaisedCosine(size, p); err != nil {
		return nil, err
	}

	return Generate(TypeRaisedCosine, size, WithParam(p), WithPeriodic()), nil
}

// Apply multiplies buf in place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

// ApplyInterleaved scales both parts of every complex point of buf by the
// matching coefficient and returns a new buffer.
func ApplyInterleaved(buf []float32, coeffs []float64) ([]float32, error) {
	if len(buf)%2 != 0 {
		return nil, errOddInterleaved
	}
	if len(buf)/2 != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float32, len(buf))
	for i, c := range coeffs {
		w := float32(c)
		out[2*i] = w * buf[2*i]
		out[2*i+1] = w * buf[2*i+1]
	}

	return out, nil
}

func evalWindow(t Type, x float64, cfg config) float64 {
	phase := 2 * math.Pi * x

	switch t {
	case TypeHann:
		return 0.5 - 0.5*math.Cos(phase)
	case TypeHamming:
		return 0.54 - 0.46*math.Cos(phase)
	case TypeBlackman:
		return 0.42 - 0.5*math.Cos(phase) + 0.08*math.Cos(2*phase)
	case TypeRaisedCosine:
		return cfg.param - (1-cfg.param)*math.Cos(phase)
	default:
		return 1
	}
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
