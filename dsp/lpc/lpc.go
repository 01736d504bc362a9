// Package lpc estimates all-pole (autoregressive) models of a signal segment.
//
// Every estimator returns coefficients in one convention: Coefficients[0] is
// 1 and the prediction-error filter is
//
//	A(z) = 1 + a[1] z^-1 + ... + a[p] z^-p
//
// so that x[n] + a[1] x[n-1] + ... + a[p] x[n-p] is the prediction residual.
// Estimators may stop below the requested order when the recursion becomes
// ill-conditioned; Result.Order and Result.Status say what was achieved.
package lpc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidOrder is returned for orders below 1.
	ErrInvalidOrder = errors.New("lpc: order must be >= 1")
	// ErrSignalTooShort is returned when the segment is not longer than the order.
	ErrSignalTooShort = errors.New("lpc: signal must be longer than the order")
)

// zeroGain is reported when a recursion cannot even start.
const zeroGain = 1e-10

// Status tells why an estimator stopped.
type Status int

const (
	// StatusOrderReached means the requested order was reached.
	StatusOrderReached Status = iota + 1
	// StatusDenominatorIllConditioned means a recursion denominator became
	// non-positive.
	StatusDenominatorIllConditioned
	// StatusReflectionUnstable means a reflection coefficient reached
	// magnitude 1.
	StatusReflectionUnstable
	// StatusTol1Reached means the prediction error fell below Tol1 times the
	// signal energy.
	StatusTol1Reached
	// StatusTol2Reached means the relative error improvement of the last
	// order fell below Tol2.
	StatusTol2Reached
	// StatusNonPositiveGain means the next order would have driven the
	// residual energy to zero or below.
	StatusNonPositiveGain
	// StatusZeroEnergy means the input carried no energy.
	StatusZeroEnergy
)

var statusNames = map[Status]string{
	StatusOrderReached:              "order reached",
	StatusDenominatorIllConditioned: "ill-conditioned denominator",
	StatusReflectionUnstable:        "unstable reflection coefficient",
	StatusTol1Reached:               "tolerance 1 reached",
	StatusTol2Reached:               "tolerance 2 reached",
	StatusNonPositiveGain:           "non-positive gain",
	StatusZeroEnergy:                "zero energy",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return fmt.Sprintf("status(%d)", int(s))
}

// Result is the outcome of one estimation.
type Result struct {
	// Coefficients holds [1, a1, ..., aOrder].
	Coefficients []float64
	// Order is the achieved model order; it may be below the requested one.
	Order int
	// Gain is the residual prediction-error energy reported by the estimator.
	Gain   float64
	Status Status
}

// Complete reports whether the requested order was reached.
func (r Result) Complete() bool { return r.Status == StatusOrderReached }

// Polynomial returns A(z) multiplied by z^p as ascending coefficients
// [ap, ..., a1, 1], whose roots are the poles of the model.
func (r Result) Polynomial() []float64 {
	n := len(r.Coefficients)
	out := make([]float64, n)
	for i, c := range r.Coefficients {
		out[n-1-i] = c
	}

	return out
}

// Predictor returns the forward predictor weights -a1 .. -ap, i.e. the
// weights w with x[n] ~ w[0] x[n-1] + ... + w[p-1] x[n-p].
func (r Result) Predictor() []float64 {
	if len(r.Coefficients) < 2 {
		return nil
	}

	out := make([]float64, len(r.Coefficients)-1)
	for i, c := range r.Coefficients[1:] {
		out[i] = -c
	}

	return out
}

// FromErrorFilter builds the canonical vector from error-filter taps a1..ap.
func FromErrorFilter(a []float64) []float64 {
	out := make([]float64, len(a)+1)
	out[0] = 1
	copy(out[1:], a)

	return out
}

// FromPredictor builds the canonical vector from predictor weights w1..wp
// (x[n] ~ sum w[k] x[n-k]), negating them.
func FromPredictor(w []float64) []float64 {
	out := make([]float64, len(w)+1)
	out[0] = 1
	for i, v := range w {
		out[i+1] = -v
	}

	return out
}

func newResult(a []float64, order int, gain float64, status Status) Result {
	return Result{
		Coefficients: FromErrorFilter(a[:order]),
		Order:        order,
		Gain:         gain,
		Status:       status,
	}
}

func zeroEnergy() Result {
	return Result{
		Coefficients: []float64{1},
		Gain:         zeroGain,
		Status:       StatusZeroEnergy,
	}
}

func validate(x []float64, order int) error {
	if order < 1 {
		return ErrInvalidOrder
	}
	if len(x) <= order {
		return fmt.Errorf("%w: length %d, order %d", ErrSignalTooShort, len(x), order)
	}

	return nil
}

// Method selects an estimator.
type Method int

const (
	MethodAutocorrelation Method = iota
	MethodCovariance
	MethodBurg
	MethodMarple
	MethodLattice
	MethodNormal
)

var methodNames = []string{"autocorrelation", "covariance", "burg", "marple", "lattice", "normal"}

// Methods lists every estimator.
func Methods() []Method {
	return []Method{MethodAutocorrelation, MethodCovariance, MethodBurg, MethodMarple, MethodLattice, MethodNormal}
}

func (m Method) String() string {
	if m >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}

	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod maps a method name (case-insensitive, prefixes allowed when
// unambiguous) to its Method.
func ParseMethod(name string) (Method, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0, errors.New("lpc: empty method name")
	}

	found := -1
	for i, n := range methodNames {
		if n == name {
			return Method(i), nil
		}
		if strings.HasPrefix(n, name) {
			if found >= 0 {
				return 0, fmt.Errorf("lpc: ambiguous method %q", name)
			}
			found = i
		}
	}

	if found < 0 {
		return 0, fmt.Errorf("lpc: unknown method %q", name)
	}

	return Method(found), nil
}

// Estimate runs the selected estimator with default options.
func Estimate(m Method, x []float64, order int) (Result, error) {
	switch m {
	case MethodAutocorrelation:
		return Autocorrelation(x, order)
	case MethodCovariance:
		return Covariance(x, order)
	case MethodBurg:
		return Burg(x, order)
	case MethodMarple:
		return Marple(x, order, MarpleOptions{})
	case MethodLattice:
		return Lattice(x, order)
	case MethodNormal:
		return Normal(x, order)
	default:
		return Result{}, fmt.Errorf("lpc: unknown method %d", int(m))
	}
}
