package lpc

import "math"

// Lattice fits an AR model with a single-pass lattice recursion: per order
// one reflection coefficient from the current forward and backward error
// sequences, a running energy denominator updated in place, and the
// symmetric update a[j] += k*a[i+1-j] of the error filter.
func Lattice(x []float64, order int) (Result, error) {
	if err := validate(x, order); err != nil {
		return Result{}, err
	}

	fwd := append([]float64(nil), x[1:]...)
	bwd := append([]float64(nil), x[:len(x)-1]...)

	var den float64
	for i := range fwd {
		den += fwd[i]*fwd[i] + bwd[i]*bwd[i]
	}
	if den == 0 {
		return zeroEnergy(), nil
	}

	a := make([]float64, order+1)
	prev := make([]float64, order+1)
	a[0] = 1

	for i := range order {
		var dot float64
		for t := range fwd {
			dot += bwd[t] * fwd[t]
		}

		k := -2 * dot / (den + epsilon)
		if math.Abs(k) >= 1 {
			return Result{Coefficients: a[:i+1], Order: i, Gain: den / 2, Status: StatusReflectionUnstable}, nil
		}

		copy(prev, a)
		for j := 1; j <= i+1; j++ {
			a[j] = prev[j] + k*prev[i+1-j]
		}

		for t := range fwd {
			f, b := fwd[t], bwd[t]
			fwd[t] = f + k*b
			bwd[t] = b + k*f
		}

		last := len(bwd) - 1
		den = (1-k*k)*den - bwd[last]*bwd[last] - fwd[0]*fwd[0]
		fwd, bwd = fwd[1:], bwd[:last]
	}

	return Result{Coefficients: a, Order: order, Gain: den / 2, Status: StatusOrderReached}, nil
}

const epsilon = 2.220446049250313e-16
