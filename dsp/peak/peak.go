// Package peak turns spectral intervals into ranked, deduplicated peaks.
//
// Classify is the full pass: one peak per interval, a rolloff estimate from
// the trough that follows each peak, collapse of neighbours that are closer
// than MinCentsDifference, ranking by height and a final frequency sort.
package peak

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-formant/dsp/core"
	"github.com/cwbudde/algo-formant/dsp/interval"
)

const (
	// Absorbed is the frequency given to a peak that was merged into a
	// louder neighbour.
	Absorbed = -1.0
	// MinCentsDifference is the smallest spacing at which two neighbouring
	// peaks are kept apart.
	MinCentsDifference = 20.0
	// RolloffFraction locates the rolloff reference point between the
	// trough and the peak height.
	RolloffFraction = 0.8
)

// Peak is a spectral maximum found over one interval.
type Peak struct {
	interval.Interval

	Freq        float64 // Hz, or Absorbed
	Height      float64 // max magnitude inside the interval
	FormantNr   int     // rank by height, 0 = loudest; -1 once absorbed
	MergedPeaks int     // neighbours absorbed into this peak
	RolloffV    float64
	MinIndex    int // trough bin used for RolloffV
}

// IsAbsorbed reports whether p was merged into a neighbour.
func (p Peak) IsAbsorbed() bool { return p.Freq == Absorbed }

// Cents returns the distance from p to other in cents.
func (p Peak) Cents(other Peak) float64 {
	return core.Cents(p.Freq, other.Freq)
}

func (p Peak) String() string {
	return fmt.Sprintf("F%d %.2fHz h=%.4f mp=%d rolloff=%.4f %v", p.FormantNr, p.Freq, p.Height, p.MergedPeaks, p.RolloffV, p.Interval)
}

// New builds the peak for iv over the magnitude envelope mag. binHz is the
// transform bin spacing fs/N.
func New(mag []float64, iv interval.Interval, binHz float64) Peak {
	p := Peak{
		Interval: iv,
		Freq:     binHz * float64(iv.Lower+iv.Upper) / 2,
	}

	for j := max(iv.Lower, 0); j < iv.Upper && j < len(mag); j++ {
		p.Height = math.Max(p.Height, mag[j])
	}

	return p
}

// Classify runs the complete peak pass over intervals and returns the peaks
// ascending by frequency. Absorbed peaks are kept in place next to the peak
// that absorbed them.
func Classify(mag []float64, intervals []interval.Interval, binHz float64) []Peak {
	peaks := make([]Peak, len(intervals))
	for i, iv := range intervals {
		peaks[i] = New(mag, iv, binHz)
	}

	sortByPosition(peaks)
	Rolloff(mag, peaks)
	Dedup(peaks)
	Rank(peaks)
	sortByPosition(peaks)

	return peaks
}

// Rolloff fills RolloffV and MinIndex for peaks sorted ascending by
// frequency. The search region of each peak ends at the lower bound of the
// next peak, or at the end of mag for the last one.
func Rolloff(mag []float64, peaks []Peak) {
	for i := range peaks {
		bound := len(mag) - 1
		if i+1 < len(peaks) {
			bound = min(peaks[i+1].Lower, bound)
		}
		peaks[i].RolloffV, peaks[i].MinIndex = rolloff(mag, peaks[i], bound)
	}
}

func rolloff(mag []float64, p Peak, bound int) (float64, int) {
	troughIdx := -1
	trough := math.Inf(1)

	for j := p.Upper + 1; j <= bound; j++ {
		if mag[j] < trough {
			trough, troughIdx = mag[j], j
		}
	}

	if troughIdx < 0 {
		return 0, p.Upper
	}

	criterion := trough + RolloffFraction*(p.Height-trough)

	foundIdx, found := troughIdx, trough
	for j := troughIdx; j > p.Upper; j-- {
		if mag[j] > found {
			foundIdx, found = j, mag[j]
		}
		if found > criterion {
			break
		}
	}

	dx := p.Upper - foundIdx
	if dx == 0 {
		return 0, troughIdx
	}

	return -(p.Height - found) / float64(dx), troughIdx
}

// Dedup collapses neighbours of peaks (sorted ascending by frequency) that
// are less than MinCentsDifference apart. The louder peak survives, moves to
// the later slot and counts the merge; the quieter one keeps its data but
// gets Freq = Absorbed. A survivor goes on to be compared with its next
// neighbour.
func Dedup(peaks []Peak) {
	for i := 0; i+1 < len(peaks); i++ {
		cur, next := &peaks[i], &peaks[i+1]
		if cur.IsAbsorbed() || next.IsAbsorbed() {
			continue
		}
		if cur.Cents(*next) >= MinCentsDifference {
			continue
		}

		if cur.Height > next.Height {
			*cur, *next = *next, *cur
		}
		next.MergedPeaks++
		cur.Freq = Absorbed
		cur.FormantNr = -1
	}
}

// Rank numbers the surviving peaks by descending height. Absorbed peaks get
// FormantNr -1. Equal heights keep their relative order.
func Rank(peaks []Peak) {
	order := make([]int, 0, len(peaks))
	for i := range peaks {
		if peaks[i].IsAbsorbed() {
			peaks[i].FormantNr = -1
			continue
		}
		order = append(order, i)
	}

	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case peaks[a].Height > peaks[b].Height:
			return -1
		case peaks[a].Height < peaks[b].Height:
			return 1
		}
		return 0
	})

	for nr, i := range order {
		peaks[i].FormantNr = nr
	}
}

// Surviving returns the peaks that were not absorbed.
func Surviving(peaks []Peak) []Peak {
	out := make([]Peak, 0, len(peaks))
	for _, p := range peaks {
		if !p.IsAbsorbed() {
			out = append(out, p)
		}
	}
	return out
}

// sortByPosition orders peaks by interval midpoint, which is ascending
// frequency for every peak that still carries one.
func sortByPosition(peaks []Peak) {
	slices.SortStableFunc(peaks, func(a, b Peak) int {
		return (a.Lower + a.Upper) - (b.Lower + b.Upper)
	})
}
