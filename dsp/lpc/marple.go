package lpc

import "math/cmplx"

// MarpleOptions holds the early-stop tolerances of Marple.
type MarpleOptions struct {
	// Tol1 stops the recursion once the prediction error drops below
	// Tol1 times the total signal energy. Zero disables the test.
	Tol1 float64
	// Tol2 stops the recursion once an order improves the prediction error
	// by less than the fraction Tol2. Zero disables the test.
	Tol2 float64
}

// MarpleResult is a Marple estimate together with the energies used by the
// tolerance tests.
type MarpleResult struct {
	Result
	// TotalEnergy is twice the signal energy, the starting error.
	TotalEnergy float64
}

// Marple fits an AR model with Marple's fast order-recursive solution of the
// modified covariance (forward-backward least squares) equations. The
// recursion runs over complex arithmetic; real input yields real
// coefficients. Result.Status reports why it stopped: the requested order,
// an ill-conditioned denominator, an unstable reflection coefficient or one
// of the two tolerances in opts. Coefficients and Order always describe the
// last order computed.
func Marple(x []float64, order int, opts MarpleOptions) (Result, error) {
	res, err := MarpleEstimate(x, order, opts)
	return res.Result, err
}

// MarpleEstimate is Marple with the energy bookkeeping exposed.
func MarpleEstimate(samples []float64, order int, opts MarpleOptions) (MarpleResult, error) {
	if err := validate(samples, order); err != nil {
		return MarpleResult{}, err
	}

	n := len(samples)
	x := make([]complex128, n)

	var e0 float64
	for i, v := range samples {
		x[i] = complex(v, 0)
		e0 += v * v
	}
	e0 *= 2

	if e0 == 0 {
		return MarpleResult{Result: zeroEnergy()}, nil
	}

	// Names follow Marple (1980): a holds the filter, c and d the forward
	// and backward auxiliary vectors, r the lagged correlations.
	a := make([]complex128, order+1)
	c := make([]complex128, order+2)
	d := make([]complex128, order+2)
	r := make([]complex128, order+2)

	first, last := x[0], x[n-1]

	q1 := 1 / e0
	q2 := re(q1) * cmplx.Conj(first)
	g := q1 * abs2(first)
	w := q1 * abs2(last)

	den := 1 - g - w
	if den <= 0 {
		return MarpleResult{
			Result:      Result{Coefficients: []float64{1}, Gain: e0, Status: StatusDenominatorIllConditioned},
			TotalEnergy: e0,
		}, nil
	}

	q4 := 1 / den
	q5 := 1 - g
	q6 := 1 - w

	h := q2 * cmplx.Conj(last)
	s := q2 * last
	u := re(q1) * last * last
	v := q2 * cmplx.Conj(first)

	e := e0 * den
	q1 = 1 / e
	c[0] = re(q1) * cmplx.Conj(first)
	d[0] = re(q1) * last

	m := 1
	nm := n - 1

	var lag complex128
	for k := range nm {
		lag += x[k+1] * cmplx.Conj(x[k])
	}
	r[0] = 2 * lag
	a[0] = -re(q1) * r[0]
	y1 := abs2(a[0])
	e *= 1 - y1

	var status Status
	if y1 >= 1 {
		status = StatusReflectionUnstable
	}

	for status == 0 {
		if m >= order {
			status = StatusOrderReached
			break
		}
		if e <= 0 {
			status = StatusDenominatorIllConditioned
			break
		}

		eold := e

		f, b := x[m], x[nm-1]
		for k := range m {
			f += x[m-1-k] * a[k]
			b += x[nm+k] * cmplx.Conj(a[k])
		}

		q1 = 1 / e
		q2 = re(q1) * cmplx.Conj(f)
		q3 := re(q1) * b

		for k := m - 1; k >= 0; k-- {
			c[k+1] = c[k] + q2*a[k]
			d[k+1] = d[k] + q3*a[k]
		}
		c[0], d[0] = q2, q3

		q7 := abs2(s)
		y1 = abs2(f)
		y2 := abs2(v)
		y3 := abs2(b)
		y4 := abs2(u)

		g += y1*q1 + q4*(y2*q6+q7*q5+2*real(cmplx.Conj(v)*h*s))
		w += y3*q1 + q4*(y4*q5+q7*q6+2*real(cmplx.Conj(s)*h*v))

		h, s, u, v = 0, 0, 0, 0
		for k := 0; k <= m; k++ {
			h += cmplx.Conj(x[nm+k-1]) * c[k]
			s += x[n-1-k] * c[k]
			u += x[n-1-k] * d[k]
			v += cmplx.Conj(x[k]) * c[k]
		}

		q5 = 1 - g
		q6 = 1 - w
		den = q5*q6 - abs2(h)
		if den <= 0 {
			status = StatusDenominatorIllConditioned
			break
		}

		q4 = 1 / den
		q1 *= q4

		alpha := 1 / (1 + (y1*q6+y3*q5+2*real(h*f*b))*q1)
		e *= alpha

		c1 := re(q4) * (f*re(q6) + cmplx.Conj(b*h))
		c2 := re(q4) * (cmplx.Conj(b)*re(q5) + h*f)
		c3 := re(q4) * (v*re(q6) + h*s)
		c4 := re(q4) * (s*re(q5) + v*cmplx.Conj(h))
		c5 := re(q4) * (s*re(q6) + h*u)
		c6 := re(q4) * (u*re(q5) + s*cmplx.Conj(h))

		for k := range m {
			a[k] = re(alpha) * (a[k] + c1*c[k+1] + c2*d[k+1])
		}

		for k := 0; k <= m/2; k++ {
			mk := m - k
			s1, s2 := cmplx.Conj(c[k]), cmplx.Conj(d[k])
			s3, s4 := cmplx.Conj(c[mk]), cmplx.Conj(d[mk])
			c[k] += c3*s3 + c4*s4
			d[k] += c5*s3 + c6*s4
			if mk != k {
				c[mk] += c3*s1 + c4*s2
				d[mk] += c5*s1 + c6*s2
			}
		}

		m++
		nm = n - m

		var delta complex128
		c1 = cmplx.Conj(x[n-m])
		c2 = x[m-1]
		for k := m - 2; k >= 0; k-- {
			r[k+1] = r[k] - x[n-1-k]*c1 - cmplx.Conj(x[k])*c2
			delta += r[k+1] * a[k]
		}

		lag = 0
		for k := range nm {
			lag += x[k+m] * cmplx.Conj(x[k])
		}
		r[0] = 2 * lag
		delta += r[0]

		q2 = -delta / re(e)
		a[m-1] = q2

		for k := range m / 2 {
			mk := m - 2 - k
			s1 := cmplx.Conj(a[k])
			a[k] += q2 * cmplx.Conj(a[mk])
			if k != mk {
				a[mk] += q2 * s1
			}
		}

		y1 = abs2(q2)
		e *= 1 - y1

		if y1 >= 1 {
			status = StatusReflectionUnstable
			break
		}
		if e < e0*opts.Tol1 {
			status = StatusTol1Reached
			break
		}
		if eold-e < eold*opts.Tol2 {
			status = StatusTol2Reached
			break
		}
	}

	coeffs := make([]float64, m)
	for k := range coeffs {
		coeffs[k] = real(a[k])
	}

	return MarpleResult{
		Result: Result{
			Coefficients: FromErrorFilter(coeffs),
			Order:        m,
			Gain:         e,
			Status:       status,
		},
		TotalEnergy: e0,
	}, nil
}

func re(v float64) complex128 { return complex(v, 0) }

func abs2(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}
