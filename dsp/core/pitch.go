package core

import (
	"fmt"
	"math"
)

// C0Hz is the frequency of C0 in twelve-tone equal temperament (A4 = 440 Hz).
const C0Hz = 16.351597831287414

var noteNames = [12]string{"C ", "C#", "D ", "D#", "E ", "F ", "F#", "G ", "G#", "A ", "A#", "B "}

// HzToOctave returns the position of freq on the octave scale relative to C0.
// 4.75 is A4.
func HzToOctave(freq float64) float64 {
	return math.Log2(freq / C0Hz)
}

// Cents returns the signed interval from f1 to f2 in cents.
func Cents(f1, f2 float64) float64 {
	return 1200 * (HzToOctave(f2) - HzToOctave(f1))
}

// Note is a frequency rounded to the nearest equal-tempered pitch.
type Note struct {
	Octave int
	Index  int // 0 = C .. 11 = B
	Cents  int // deviation from the pitch, in [-50, 50]
}

// NearestNote rounds an octave position (see HzToOctave) to the closest note.
// ok is false outside the range C0..C10.
func NearestNote(octave float64) (Note, bool) {
	if octave < 0 || octave > 10 || math.IsNaN(octave) {
		return Note{}, false
	}

	nr := math.Floor(octave)
	semis := (octave - nr) * 12

	closest := int(math.Round(semis))
	cents := int(math.Round((semis - float64(closest)) * 100))

	if closest == 12 {
		closest = 0
		nr++
	}

	return Note{Octave: int(nr), Index: closest, Cents: cents}, true
}

// String renders the note as e.g. "A 4 +-0c", "C#3 -12c" or "D 10+07c".
func (n Note) String() string {
	oct := fmt.Sprintf("%d ", n.Octave)
	if n.Octave >= 10 {
		oct = fmt.Sprintf("%d", n.Octave)
	}

	sign := "+"
	if n.Cents < 0 {
		sign = "-"
	}

	if n.Cents == 0 {
		return noteNames[n.Index] + oct + "+-0c"
	}

	return fmt.Sprintf("%s%s%s%02dc", noteNames[n.Index], oct, sign, abs(n.Cents))
}

// NoteName returns the note name of freq, or "" when it is out of range.
func NoteName(freq float64) string {
	n, ok := NearestNote(HzToOctave(freq))
	if !ok {
		return ""
	}

	return n.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
