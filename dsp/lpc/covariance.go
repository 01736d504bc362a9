package lpc

// Covariance fits an AR model by unwindowed least squares over the samples
// order..n-1, using exact cross-products and an order-recursive elimination
// of the covariance matrix. It stops early when an elimination pivot or the
// residual energy would become non-positive.
func Covariance(x []float64, order int) (Result, error) {
	if err := validate(x, order); err != nil {
		return Result{}, err
	}

	n, m := len(x), order

	// One-based views keep the recursion indices readable.
	xs := make([]float64, n+1)
	copy(xs[1:], x)

	b := make([]float64, 1+m*(m+1)/2)
	beta := make([]float64, m+1)
	a := make([]float64, m+2)
	cc := make([]float64, m+2)

	var gain float64
	for i := m + 1; i <= n; i++ {
		gain += xs[i] * xs[i]
		cc[1] += xs[i] * xs[i-1]
		cc[2] += xs[i-1] * xs[i-1]
	}
	if gain == 0 {
		return zeroEnergy(), nil
	}

	result := func(order int, status Status) Result {
		return newResult(a[2:], order, gain, status)
	}

	if cc[2] <= 0 {
		return result(0, StatusDenominatorIllConditioned), nil
	}

	b[1] = 1
	beta[1] = cc[2]
	a[1] = 1
	a[2] = -cc[1] / cc[2]
	if next := gain + a[2]*cc[1]; next > 0 {
		gain = next
	} else {
		a[2] = 0
		return result(0, StatusNonPositiveGain), nil
	}

	for i := 2; i <= m; i++ {
		for j := 1; j <= i; j++ {
			cc[i-j+2] = cc[i-j+1] + xs[m-i+1]*xs[m-i+j] - xs[n-i+1]*xs[n-i+j]
		}

		cc[1] = 0
		for j := m + 1; j <= n; j++ {
			cc[1] += xs[j-i] * xs[j]
		}

		row := i * (i - 1) / 2
		b[i*(i+1)/2] = 1
		for j := 1; j < i; j++ {
			if beta[j] < 0 {
				return result(i-1, StatusDenominatorIllConditioned), nil
			}
			if beta[j] == 0 {
				continue
			}

			prev := j * (j - 1) / 2
			var gam float64
			for k := 1; k <= j; k++ {
				gam += cc[k+1] * b[prev+k]
			}
			gam /= beta[j]

			for k := 1; k <= j; k++ {
				b[row+k] -= gam * b[prev+k]
			}
		}

		beta[i] = 0
		for j := 1; j <= i; j++ {
			beta[i] += cc[j+1] * b[row+j]
		}
		if beta[i] <= 0 {
			return result(i-1, StatusDenominatorIllConditioned), nil
		}

		var s float64
		for j := 1; j <= i; j++ {
			s += cc[j] * a[j]
		}
		grc := -s / beta[i]

		next := gain - grc*grc*beta[i]
		if next <= 0 {
			return result(i-1, StatusNonPositiveGain), nil
		}

		for j := 2; j <= i; j++ {
			a[j] += grc * b[row+j-1]
		}
		a[i+1] = grc
		gain = next
	}

	return result(m, StatusOrderReached), nil
}
