// Package polyroot finds all roots of real polynomials as the eigenvalues of
// their companion matrix.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
	"slices"
)

var (
	// ErrTooFewTerms is returned for polynomials with fewer than two coefficients.
	ErrTooFewTerms = errors.New("polyroot: polynomial needs at least two coefficients")
	// ErrZeroLeading is returned when the highest-order coefficient is zero.
	ErrZeroLeading = errors.New("polyroot: leading coefficient is zero")
	// ErrNoConvergence is returned when the QR iteration does not converge.
	ErrNoConvergence = errors.New("polyroot: QR iteration did not converge")
)

const (
	eps = 2.2204460492503131e-16

	// maxIterations bounds the QR sweeps spent on one eigenvalue.
	maxIterations = 120
	// shiftInterval is the sweep count after which an exceptional shift is applied.
	shiftInterval = 10
	// balanceFactor is the minimum relative norm reduction for a balancing step.
	balanceFactor = 0.95
)

// Solve returns the n roots of the degree-n polynomial
//
//	c[0] + c[1] z + ... + c[n] z^n
//
// Complex roots come in conjugate pairs. The order of the roots is
// unspecified; see SortByPhase.
func Solve(c []float64) ([]complex128, error) {
	if len(c) < 2 {
		return nil, ErrTooFewTerms
	}
	if c[len(c)-1] == 0 {
		return nil, ErrZeroLeading
	}

	h := newCompanion(c)
	h.balance()

	return h.eigenvalues()
}

// hessenberg is a square upper Hessenberg matrix with one-based accessors.
type hessenberg struct {
	size int
	a    []float64
}

func (h *hessenberg) at(i, j int) *float64 {
	return &h.a[(i-1)*h.size+j-1]
}

// newCompanion builds the companion matrix of c: ones on the subdiagonal and
// the negated, normalized coefficients in the last column.
func newCompanion(c []float64) *hessenberg {
	size := len(c) - 1
	h := &hessenberg{size: size, a: make([]float64, size*size)}

	for i := 2; i <= size; i++ {
		*h.at(i, i-1) = 1
	}

	lead := c[size]
	for i := 1; i <= size; i++ {
		*h.at(i, size) = -c[i-1] / lead
	}

	return h
}

// balance rescales rows and columns by powers of two until their norms are
// comparable, which improves the accuracy of the eigenvalues.
func (h *hessenberg) balance() {
	size := h.size

	for changed := true; changed; {
		changed = false

		for i := 1; i <= size; i++ {
			var col, row float64

			if i != size {
				col = math.Abs(*h.at(i+1, i))
			} else {
				for j := 1; j < size; j++ {
					col += math.Abs(*h.at(j, size))
				}
			}

			switch i {
			case 1:
				row = math.Abs(*h.at(1, size))
			case size:
				row = math.Abs(*h.at(i, i-1))
			default:
				row = math.Abs(*h.at(i, i-1)) + math.Abs(*h.at(i, size))
			}

			if col == 0 || row == 0 {
				continue
			}

			s := col + row
			f := 1.0

			for col < row/2 {
				f *= 2
				col *= 4
			}
			for col > row*2 {
				f /= 2
				col /= 4
			}

			if row+col >= balanceFactor*s*f {
				continue
			}

			changed = true

			if i == 1 {
				*h.at(1, size) /= f
			} else {
				*h.at(i, i-1) /= f
				*h.at(i, size) /= f
			}

			if i == size {
				for j := 1; j <= size; j++ {
					*h.at(j, i) *= f
				}
			} else {
				*h.at(i+1, i) *= f
			}
		}
	}
}

// eigenvalues runs the shifted double-step Francis QR iteration on the
// Hessenberg matrix, deflating one or two eigenvalues at a time.
//
//nolint:cyclop,gocognit,funlen
func (h *hessenberg) eigenvalues() ([]complex128, error) {
	roots := make([]complex128, h.size)

	var t, x, y, w, p, q, r, s float64

	n := h.size
	iterations := 0

	for n > 0 {
		e := n
		for ; e >= 2; e-- {
			a1 := math.Abs(*h.at(e, e-1))
			a2 := math.Abs(*h.at(e-1, e-1))
			a3 := math.Abs(*h.at(e, e))
			if a1 <= eps*(a2+a3) {
				break
			}
		}
		if e < 2 {
			e = 1
		}

		x = *h.at(n, n)

		if e == n {
			roots[n-1] = complex(x+t, 0)
			n--
			iterations = 0

			continue
		}

		y = *h.at(n-1, n-1)
		w = *h.at(n-1, n) * *h.at(n, n-1)

		if e == n-1 {
			p = (y - x) / 2
			q = p*p + w
			y = math.Sqrt(math.Abs(q))
			x += t

			if q > 0 {
				if p < 0 {
					y = -y
				}
				y += p
				roots[n-1] = complex(x-w/y, 0)
				roots[n-2] = complex(x+y, 0)
			} else {
				roots[n-1] = complex(x+p, -y)
				roots[n-2] = complex(x+p, y)
			}

			n -= 2
			iterations = 0

			continue
		}

		if iterations == maxIterations {
			return nil, ErrNoConvergence
		}

		if iterations > 0 && iterations%shiftInterval == 0 {
			t += x
			for i := 1; i <= n; i++ {
				*h.at(i, i) -= x
			}

			s = math.Abs(*h.at(n, n-1)) + math.Abs(*h.at(n-1, n-2))
			y = 0.75 * s
			x = y
			w = -0.4375 * s * s
		}

		iterations++

		m := n - 2
		for ; m >= e; m-- {
			z := *h.at(m, m)
			r = x - z
			s = y - z
			p = *h.at(m, m+1) + (r*s-w) / *h.at(m+1, m)
			q = *h.at(m+1, m+1) - z - r - s
			r = *h.at(m+2, m+1)
			s = math.Abs(p) + math.Abs(q) + math.Abs(r)
			p /= s
			q /= s
			r /= s

			if m == e {
				break
			}

			a1 := math.Abs(*h.at(m, m-1))
			a2 := math.Abs(*h.at(m-1, m-1))
			a3 := math.Abs(*h.at(m+1, m+1))
			if a1*(math.Abs(q)+math.Abs(r)) <= eps*math.Abs(p)*(a2+a3) {
				break
			}
		}

		for i := m + 2; i <= n; i++ {
			*h.at(i, i-2) = 0
		}
		for i := m + 3; i <= n; i++ {
			*h.at(i, i-3) = 0
		}

		// Double QR step over rows and columns m..n.
		s = math.Sqrt(p*p + q*q + r*r)
		if p < 0 {
			s = -s
		}
		if e != m {
			*h.at(m, m-1) *= -1
		}

		for j := m; j <= n; j++ {
			v := *h.at(m, j) + (q/(p+s))**h.at(m+1, j) + (r/(p+s))**h.at(m+2, j)
			*h.at(m+2, j) -= v * (r / s)
			*h.at(m+1, j) -= v * (q / s)
			*h.at(m, j) -= v * ((p + s) / s)
		}

		for i := e; i <= min(m+3, n); i++ {
			v := ((p+s)/s)**h.at(i, m) + (q/s)**h.at(i, m+1) + (r/s)**h.at(i, m+2)
			*h.at(i, m+2) -= v * (r / (p + s))
			*h.at(i, m+1) -= v * (q / (p + s))
			*h.at(i, m) -= v
		}

		for k := m + 1; k < n; k++ {
			notLast := k != n-1

			p = *h.at(k, k-1)
			q = *h.at(k+1, k-1)
			r = 0
			if notLast {
				r = *h.at(k+2, k-1)
			}

			x = math.Abs(p) + math.Abs(q) + math.Abs(r)
			if x == 0 {
				continue
			}

			p /= x
			q /= x
			r /= x

			s = math.Sqrt(p*p + q*q + r*r)
			if p < 0 {
				s = -s
			}

			*h.at(k, k-1) = -s * x

			for j := k; j <= n; j++ {
				v := *h.at(k, j) + (q/(p+s))**h.at(k+1, j)
				if notLast {
					v += (r / (p + s)) * *h.at(k+2, j)
					*h.at(k+2, j) -= v * (r / s)
				}
				*h.at(k+1, j) -= v * (q / s)
				*h.at(k, j) -= v * ((p + s) / s)
			}

			for i := e; i <= min(k+3, n); i++ {
				v := ((p+s)/s)**h.at(i, k) + (q/s)**h.at(i, k+1)
				if notLast {
					v += (r / s) * *h.at(i, k+2)
					*h.at(i, k+2) -= v * (r / (p + s))
				}
				*h.at(i, k+1) -= v * (q / (p + s))
				*h.at(i, k) -= v
			}
		}
	}

	return roots, nil
}

// SortByPhase orders roots by ascending angle in [0, 2pi), then by modulus.
// Conjugate pairs therefore end up at mirrored positions.
func SortByPhase(roots []complex128) {
	slices.SortStableFunc(roots, func(a, b complex128) int {
		pa, pb := phase(a), phase(b)
		if pa != pb {
			if pa < pb {
				return -1
			}
			return 1
		}

		ma, mb := cmplx.Abs(a), cmplx.Abs(b)
		switch {
		case ma < mb:
			return -1
		case ma > mb:
			return 1
		default:
			return 0
		}
	})
}

func phase(z complex128) float64 {
	ph := cmplx.Phase(z)
	if ph < 0 {
		ph += 2 * math.Pi
	}
	return ph
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in ascending power order: c[0] + c[1]*x + ... + c[n]*x^n.
func PolyEval(c []float64, x complex128) complex128 {
	var v complex128
	for i := len(c) - 1; i >= 0; i-- {
		v = v*x + complex(c[i], 0)
	}

	return v
}

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}
