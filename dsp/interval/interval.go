// Package interval finds the regions of a normalized magnitude envelope that
// rise above a threshold, and accumulates them over a descending sequence of
// thresholds so that both dominant and secondary peaks are captured.
package interval

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

const (
	// DefaultMergeDistance is the gap, in bins, below which two intervals
	// found at the same threshold are merged.
	DefaultMergeDistance = 5
	// DefaultCutoffStep is the threshold decrement between accumulation steps.
	DefaultCutoffStep = 0.01
)

// ErrInvalidCutoffStep is returned when the accumulation step is outside (0, 1).
var ErrInvalidCutoffStep = errors.New("interval: cutoff step must be in (0, 1)")

// Interval is a half-open bin range [Lower, Upper).
type Interval struct {
	Lower int
	Upper int
}

// Len returns the number of bins covered.
func (iv Interval) Len() int { return iv.Upper - iv.Lower }

// Contains reports whether inner lies completely within iv.
func (iv Interval) Contains(inner Interval) bool {
	return iv.Lower <= inner.Lower && inner.Upper <= iv.Upper
}

// Distance returns the gap between two intervals, or 0 if they touch or
// overlap.
func (iv Interval) Distance(other Interval) int {
	gap := max(iv.Lower, other.Lower) - min(iv.Upper, other.Upper)
	return max(gap, 0)
}

// Span returns the smallest interval enclosing both.
func (iv Interval) Span(other Interval) Interval {
	return Interval{
		Lower: min(iv.Lower, other.Lower),
		Upper: max(iv.Upper, other.Upper),
	}
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d,%d)", iv.Lower, iv.Upper)
}

// AboveCutoff scans data once and returns every run of values strictly
// greater than cutoff. A run that is still open at the end of data includes
// the last index.
func AboveCutoff(data []float64, cutoff float64) []Interval {
	var (
		out    []Interval
		inside bool
		start  int
	)

	for i, v := range data {
		above := v > cutoff
		switch {
		case !inside && above:
			inside, start = true, i
		case inside && !above:
			inside = false
			out = append(out, Interval{Lower: start, Upper: i})
		}
	}

	if inside {
		out = append(out, Interval{Lower: start, Upper: len(data)})
	}

	return out
}

// MergeClose replaces any two intervals closer than maxDistance with their
// enclosing span, repeating until no such pair is left. The first member of
// a merged pair keeps its position. The input is not modified.
func MergeClose(intervals []Interval, maxDistance int) []Interval {
	out := slices.Clone(intervals)

	for merged := true; merged; {
		merged = false
		for i := 0; i < len(out); i++ {
			for j := i + 1; j < len(out); {
				if out[i].Distance(out[j]) < maxDistance {
					out[i] = out[i].Span(out[j])
					out = slices.Delete(out, j, j+1)
					merged = true
					continue
				}
				j++
			}
		}
	}

	return out
}

// MergeLists returns old followed by every candidate that does not wholly
// contain one of the old intervals. A candidate that swallows an old
// interval is the same peak seen wider at a looser threshold.
func MergeLists(old, candidates []Interval) []Interval {
	out := slices.Clone(old)

	for _, c := range candidates {
		if !slices.ContainsFunc(old, c.Contains) {
			out = append(out, c)
		}
	}

	return out
}

// Accumulate lowers the threshold from 1 toward 0 in steps of cutoffStep and
// collects the intervals that each step reveals. data is expected to be
// normalized to a maximum of 1. Intervals found at stricter thresholds come
// first and are never altered by later steps.
func Accumulate(data []float64, cutoffStep float64) ([]Interval, error) {
	return AccumulateWithDistance(data, cutoffStep, DefaultMergeDistance)
}

// AccumulateWithDistance is Accumulate with an explicit merge distance.
func AccumulateWithDistance(data []float64, cutoffStep float64, mergeDistance int) ([]Interval, error) {
	if !(cutoffStep > 0 && cutoffStep < 1) {
		return nil, ErrInvalidCutoffStep
	}

	acc := AboveCutoff(data, 1)
	steps := int(math.Floor(1 / cutoffStep))

	for i := 1; i <= steps; i++ {
		cutoff := math.Max(1-cutoffStep*float64(i), 0)
		candidates := MergeClose(AboveCutoff(data, cutoff), mergeDistance)
		acc = MergeLists(acc, candidates)
	}

	return acc, nil
}

// Sort orders intervals ascending by lower bound, in place.
func Sort(intervals []Interval) {
	slices.SortStableFunc(intervals, func(a, b Interval) int {
		return a.Lower - b.Lower
	})
}
