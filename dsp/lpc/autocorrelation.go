package lpc

// Autocorrelation fits an AR model of the given order with the Levinson
// recursion over the biased autocorrelation of x. The recursion stops before
// any order whose residual energy would not stay positive.
func Autocorrelation(x []float64, order int) (Result, error) {
	if err := validate(x, order); err != nil {
		return Result{}, err
	}

	r := autocorrelation(x, order)
	if r[0] == 0 {
		return zeroEnergy(), nil
	}

	a := make([]float64, order)

	k := -r[1] / r[0]
	gain := r[0] + r[1]*k
	if gain <= 0 {
		return newResult(a, 0, r[0], StatusNonPositiveGain), nil
	}
	a[0] = k

	for i := 2; i <= order; i++ {
		s := r[i]
		for j := 1; j < i; j++ {
			s += a[j-1] * r[i-j]
		}

		k := -s / gain
		next := gain + k*s
		if next <= 0 {
			return newResult(a, i-1, gain, StatusNonPositiveGain), nil
		}

		for j := 1; j <= i/2; j++ {
			lo, hi := a[j-1], a[i-j-1]
			a[j-1] = lo + k*hi
			if j != i-j {
				a[i-j-1] = hi + k*lo
			}
		}
		a[i-1] = k
		gain = next
	}

	return newResult(a, order, gain, StatusOrderReached), nil
}

// autocorrelation returns r[0..lags] with r[j] = sum x[i] x[i-j].
func autocorrelation(x []float64, lags int) []float64 {
	r := make([]float64, lags+1)
	for j := range r {
		var sum float64
		for i := j; i < len(x); i++ {
			sum += x[i] * x[i-j]
		}
		r[j] = sum
	}

	return r
}
