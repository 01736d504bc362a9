package frame

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-formant/dsp/interval"
	"github.com/cwbudde/algo-formant/dsp/peak"
)

const (
	fieldSep = ":"
	peakSep  = "|"
	// fields per peak: freq, height, formant_nr, merged_peaks, rolloff_v,
	// min_index, interval_lower, interval_upper.
	peakFields = 8
)

// EncodePeaks renders peaks as
// freq:height:formant_nr:merged_peaks:rolloff_v:min_index:interval_lower:interval_upper
// entries joined by "|".
func EncodePeaks(peaks []peak.Peak) string {
	var sb strings.Builder

	for i, p := range peaks {
		if i > 0 {
			sb.WriteString(peakSep)
		}

		fields := [peakFields]string{
			formatFloat(p.Freq),
			formatFloat(p.Height),
			strconv.Itoa(p.FormantNr),
			strconv.Itoa(p.MergedPeaks),
			formatFloat(p.RolloffV),
			strconv.Itoa(p.MinIndex),
			strconv.Itoa(p.Lower),
			strconv.Itoa(p.Upper),
		}
		sb.WriteString(strings.Join(fields[:], fieldSep))
	}

	return sb.String()
}

// DecodePeaks parses the text form written by EncodePeaks. An empty string
// is an empty list.
func DecodePeaks(text string) ([]peak.Peak, error) {
	peaks := []peak.Peak{}
	if text == "" {
		return peaks, nil
	}

	for i, entry := range strings.Split(text, peakSep) {
		p, err := decodePeak(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d %q: %w", ErrBadPeak, i, entry, err)
		}
		peaks = append(peaks, p)
	}

	return peaks, nil
}

func decodePeak(entry string) (peak.Peak, error) {
	fields := strings.Split(entry, fieldSep)
	if len(fields) != peakFields {
		return peak.Peak{}, fmt.Errorf("%d fields, want %d", len(fields), peakFields)
	}

	var (
		p      peak.Peak
		floats [3]float64
		ints   [5]int
		err    error
	)

	for i, idx := range [3]int{0, 1, 4} {
		if floats[i], err = strconv.ParseFloat(fields[idx], 64); err != nil {
			return p, err
		}
	}
	for i, idx := range [5]int{2, 3, 5, 6, 7} {
		if ints[i], err = strconv.Atoi(fields[idx]); err != nil {
			return p, err
		}
	}

	p = peak.Peak{
		Interval:    interval.Interval{Lower: ints[3], Upper: ints[4]},
		Freq:        floats[0],
		Height:      floats[1],
		FormantNr:   ints[0],
		MergedPeaks: ints[1],
		RolloffV:    floats[2],
		MinIndex:    ints[2],
	}
	if p.Lower > p.Upper {
		return p, fmt.Errorf("interval [%d,%d) is inverted", p.Lower, p.Upper)
	}

	return p, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
