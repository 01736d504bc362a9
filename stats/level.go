package stats

import (
	"math"

	"github.com/cwbudde/algo-formant/dsp/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Level holds time-domain statistics of one segment.
type Level struct {
	Length int
	DC     float64 // mean
	RMS    float64
	Peak   float64 // max |x|
	// CrestDB is 20 log10(Peak/RMS); 0 for silence.
	CrestDB float64
	StdDev  float64
	// ZeroCrossingRate is the fraction of neighbouring sample pairs whose
	// signs differ.
	ZeroCrossingRate float64
}

// PeakDB returns the peak level relative to full scale.
func (l Level) PeakDB() float64 { return core.LinearToDB(l.Peak) }

// RMSDB returns the RMS level relative to full scale.
func (l Level) RMSDB() float64 { return core.LinearToDB(l.RMS) }

// Silent reports whether the segment RMS is at or below floorDB dBFS.
func (l Level) Silent(floorDB float64) bool {
	return l.Length == 0 || l.RMSDB() <= floorDB
}

// MeasureLevel summarizes x.
func MeasureLevel(x []float64) Level {
	n := len(x)
	if n == 0 {
		return Level{}
	}

	mean, variance := stat.PopMeanVariance(x, nil)

	l := Level{
		Length: n,
		DC:     mean,
		RMS:    math.Sqrt(floats.Dot(x, x) / float64(n)),
		Peak:   math.Max(math.Abs(floats.Max(x)), math.Abs(floats.Min(x))),
		StdDev: math.Sqrt(variance),
	}

	if l.RMS > 0 {
		l.CrestDB = 20 * math.Log10(l.Peak/l.RMS)
	}

	if n > 1 {
		l.ZeroCrossingRate = float64(zeroCrossings(x)) / float64(n-1)
	}

	return l
}

// MeasureLevel32 is MeasureLevel for single-precision samples.
func MeasureLevel32(x []float32) Level {
	wide := make([]float64, len(x))
	for i, v := range x {
		wide[i] = float64(v)
	}

	return MeasureLevel(wide)
}

func zeroCrossings(x []float64) int {
	count := 0
	for i := 1; i < len(x); i++ {
		if x[i-1]*x[i] < 0 {
			count++
		}
	}

	return count
}
