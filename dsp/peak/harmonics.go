package peak

import (
	"math"

	"github.com/cwbudde/algo-formant/dsp/core"
)

const (
	// MinHarmonicHeight is the normalized height below which peaks are
	// ignored when grouping harmonics.
	MinHarmonicHeight = 0.01
	// HarmonicToleranceCents is the pitch-class distance within which two
	// peaks are treated as octaves of the same note.
	HarmonicToleranceCents = 30.0
)

// HarmonicGroup collects peaks that share a pitch class.
type HarmonicGroup struct {
	Octave        float64 // octave position of the first member, see core.HzToOctave
	MaxHeight     float64
	LowestFormant int // smallest FormantNr among members
	Harmonics     int // members beyond the first
}

// Note returns the nearest note of the group's first member.
func (g HarmonicGroup) Note() (core.Note, bool) {
	return core.NearestNote(g.Octave)
}

// GroupHarmonics buckets surviving peaks of at least MinHarmonicHeight by
// pitch class: a peak joins the most recent group whose octave position
// differs from its own by a whole number of octaves, within
// HarmonicToleranceCents either way.
func GroupHarmonics(peaks []Peak) []HarmonicGroup {
	var groups []HarmonicGroup

	for _, p := range peaks {
		if p.IsAbsorbed() || p.Height < MinHarmonicHeight || p.Freq <= 0 {
			continue
		}

		oct := core.HzToOctave(p.Freq)
		if idx := matchGroup(groups, oct); idx >= 0 {
			g := &groups[idx]
			g.MaxHeight = math.Max(g.MaxHeight, p.Height)
			g.LowestFormant = min(g.LowestFormant, p.FormantNr)
			g.Harmonics++
			continue
		}

		groups = append(groups, HarmonicGroup{
			Octave:        oct,
			MaxHeight:     p.Height,
			LowestFormant: p.FormantNr,
		})
	}

	return groups
}

func matchGroup(groups []HarmonicGroup, oct float64) int {
	for j := len(groups) - 1; j >= 0; j-- {
		d := math.Abs(groups[j].Octave - oct)
		d -= math.Floor(d)
		if tol := HarmonicToleranceCents / 1200; d < tol || 1-d < tol {
			return j
		}
	}
	return -1
}
