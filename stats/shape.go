package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// RolloffFraction is the energy share below the Shape rolloff frequency.
const RolloffFraction = 0.85

// Shape holds descriptors of a one-sided magnitude spectrum.
type Shape struct {
	Centroid float64 // Hz
	Spread   float64 // Hz, standard deviation around Centroid
	// Flatness is the geometric over the arithmetic mean of the bins above
	// DC, in [0, 1]; 0 when any of them is zero.
	Flatness float64
	Rolloff  float64 // Hz
	// PeakBandwidth is the -3 dB width of the loudest bin, interpolated
	// linearly between bins.
	PeakBandwidth float64
	PeakFreq      float64
}

// MeasureShape describes mag, whose bin k lies at k*binHz.
func MeasureShape(mag []float64, binHz float64) Shape {
	if len(mag) < 2 || !(binHz > 0) {
		return Shape{}
	}

	sum := floats.Sum(mag)
	if sum == 0 {
		return Shape{}
	}

	freqs := make([]float64, len(mag))
	floats.Span(freqs, 0, binHz*float64(len(mag)-1))

	s := Shape{Centroid: floats.Dot(freqs, mag) / sum}

	var spread float64
	for k, m := range mag {
		d := freqs[k] - s.Centroid
		spread += d * d * m
	}
	s.Spread = math.Sqrt(spread / sum)

	s.Flatness = flatness(mag[1:])
	s.Rolloff = binHz * float64(rolloffBin(mag, RolloffFraction))

	peak := floats.MaxIdx(mag)
	s.PeakFreq = freqs[peak]
	s.PeakBandwidth = binHz * halfPowerWidth(mag, peak)

	return s
}

func flatness(mag []float64) float64 {
	if len(mag) == 0 {
		return 0
	}

	var logSum float64
	for _, m := range mag {
		if m <= 0 {
			return 0
		}
		logSum += math.Log(m)
	}

	n := float64(len(mag))

	return math.Exp(logSum/n) / (floats.Sum(mag) / n)
}

// rolloffBin is the first bin at which the cumulative energy reaches
// fraction of the total.
func rolloffBin(mag []float64, fraction float64) int {
	threshold := fraction * floats.Dot(mag, mag)

	var acc float64
	for k, m := range mag {
		acc += m * m
		if acc >= threshold {
			return k
		}
	}

	return len(mag) - 1
}

// halfPowerWidth returns the width in bins between the -3 dB crossings on
// either side of peak. A side without a crossing extends to the array end.
func halfPowerWidth(mag []float64, peak int) float64 {
	threshold := mag[peak] / math.Sqrt2

	lower := 0.0
	for k := peak; k >= 1; k-- {
		if mag[k-1] <= threshold {
			lower = crossing(k-1, mag[k-1], mag[k], threshold)
			break
		}
	}

	upper := float64(len(mag) - 1)
	for k := peak; k < len(mag)-1; k++ {
		if mag[k+1] <= threshold {
			upper = crossing(k, mag[k], mag[k+1], threshold)
			break
		}
	}

	return math.Max(upper-lower, 0)
}

// crossing interpolates the fractional bin between k and k+1 where the
// magnitude passes threshold.
func crossing(k int, a, b, threshold float64) float64 {
	if a == b {
		return float64(k) + 0.5
	}

	return float64(k) + (threshold-a)/(b-a)
}
