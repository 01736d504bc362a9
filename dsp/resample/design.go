package resample

import (
	"fmt"
	"math"
)

// prototype designs the Kaiser-windowed sinc low-pass at the up-sampled
// rate. The length is odd so the filter has an integer center, and the taps
// sum to up so that zero-stuffed input keeps unity gain.
func prototype(up, down int, p Profile) ([]float64, error) {
	if p.TapsPerPhase <= 0 {
		return nil, fmt.Errorf("resample: taps per phase must be > 0: %d", p.TapsPerPhase)
	}

	fc := 0.5 / float64(max(up, down)) * p.CutoffScale
	if fc <= 0 || fc >= 0.5 {
		return nil, fmt.Errorf("resample: invalid cutoff %.6f", fc)
	}

	n := p.TapsPerPhase*up | 1
	center := float64(n-1) / 2

	taps := make([]float64, n)

	var sum float64
	for i := range taps {
		t := float64(i) - center
		taps[i] = 2 * fc * sinc(2*fc*t) * kaiser(float64(i)/float64(n-1), p.KaiserBeta)
		sum += taps[i]
	}

	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}

	return taps, nil
}

func polyphase(taps []float64, up int) [][]float64 {
	phases := make([][]float64, up)
	for p := range phases {
		for i := p; i < len(taps); i += up {
			phases[p] = append(phases[p], taps[i])
		}
	}

	return phases
}

// approximateRatio returns the best continued-fraction convergent of v whose
// denominator does not exceed maxDen.
func approximateRatio(v float64, maxDen int) (num, den int) {
	if !(v > 0) || math.IsInf(v, 0) {
		return 1, 1
	}

	p0, q0 := 1, 0
	p1, q1 := int(math.Floor(v)), 1

	x := v
	for {
		frac := x - math.Floor(x)
		if frac < 1e-12 {
			break
		}

		x = 1 / frac
		a := int(math.Floor(x))

		q2 := a*q1 + q0
		if q2 > maxDen {
			break
		}

		p0, q0, p1, q1 = p1, q1, a*p1+p0, q2
	}

	if p1 == 0 {
		return 1, maxDen
	}

	g := gcd(p1, q1)

	return p1 / g, q1 / g
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	if a < 0 {
		return -a
	}

	return max(a, 1)
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	return math.Sin(math.Pi*x) / (math.Pi * x)
}

// kaiser evaluates the Kaiser window at position x in [0, 1].
func kaiser(x, beta float64) float64 {
	if beta == 0 {
		return 1
	}

	t := 2*x - 1

	return besselI0(beta*math.Sqrt(math.Max(0, 1-t*t))) / besselI0(beta)
}

// besselI0 sums the power series of the modified Bessel function of order 0.
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	q := x * x / 4

	for k := 1; k < 64; k++ {
		term *= q / float64(k*k)
		sum += term
		if term < 1e-16*sum {
			break
		}
	}

	return sum
}
