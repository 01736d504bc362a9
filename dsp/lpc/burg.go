package lpc

// Burg fits an AR model with Burg's lattice method, choosing each reflection
// coefficient to minimize the summed forward and backward prediction error.
// A vanishing error denominator aborts with order 0.
func Burg(x []float64, order int) (Result, error) {
	if err := validate(x, order); err != nil {
		return Result{}, err
	}

	n, m := len(x), order

	// One-based views keep the recursion indices readable.
	xs := make([]float64, n+1)
	copy(xs[1:], x)

	var energy float64
	for _, v := range x {
		energy += v * v
	}

	xms := energy / float64(n)
	if xms <= 0 {
		return zeroEnergy(), nil
	}

	fwd := make([]float64, n+1)
	bwd := make([]float64, n+1)
	w := make([]float64, m+1)
	prev := make([]float64, m+1)

	fwd[1] = xs[1]
	bwd[n-1] = xs[n]
	for j := 2; j <= n-1; j++ {
		fwd[j] = xs[j]
		bwd[j-1] = xs[j]
	}

	for i := 1; i <= m; i++ {
		var num, den float64
		for j := 1; j <= n-i; j++ {
			num += fwd[j] * bwd[j]
			den += fwd[j]*fwd[j] + bwd[j]*bwd[j]
		}

		if den <= 0 {
			return Result{
				Coefficients: []float64{1},
				Gain:         zeroGain,
				Status:       StatusDenominatorIllConditioned,
			}, nil
		}

		w[i] = 2 * num / den
		xms *= 1 - w[i]*w[i]

		for j := 1; j < i; j++ {
			w[j] = prev[j] - w[i]*prev[i-j]
		}

		if i < m {
			copy(prev[1:i+1], w[1:i+1])
			for j := 1; j <= n-i-1; j++ {
				fwd[j] -= prev[i] * bwd[j]
				bwd[j] = bwd[j+1] - prev[i]*fwd[j+1]
			}
		}
	}

	return Result{
		Coefficients: FromPredictor(w[1:]),
		Order:        m,
		Gain:         xms * float64(n),
		Status:       StatusOrderReached,
	}, nil
}
