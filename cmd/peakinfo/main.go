// Command peakinfo prints the peaks attached to a frame.
//
// The first table lists the surviving peaks in frequency order with their
// nearest note. It is followed by the mean spacing of adjacent peaks, the
// vocal tract length implied by that spacing, the peaks grouped by pitch
// class and a summary of the spectral shape.
//
// Example:
//
//	audio2frame vowel.wav | fft | peaks | peakinfo
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-formant/dsp/core"
	"github.com/cwbudde/algo-formant/dsp/peak"
	"github.com/cwbudde/algo-formant/dsp/spectrum"
	"github.com/cwbudde/algo-formant/frame"
	"github.com/cwbudde/algo-formant/internal/stage"
	"github.com/cwbudde/algo-formant/stats"
)

// speedOfSound in m/s, for the quarter-wave tube estimate.
const speedOfSound = 343.0

var errNoPeaks = errors.New("peakinfo: frame carries no peaks; run it through peaks first")

func main() {
	all := flag.Bool("all", false, "include absorbed peaks")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: peakinfo [-all] < spectrum+peaks\n\n")
		fmt.Fprintf(os.Stderr, "Prints the peaks attached by the peaks stage.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	stage.Main("peakinfo", func(env stage.Env) error {
		fr, err := frame.Read(env.In)
		if err != nil {
			return err
		}
		if fr.Peaks == nil {
			return errNoPeaks
		}

		shape, err := spectralShape(fr)
		if err != nil {
			return err
		}

		if err := report(env.Out, fr.Peaks, *all); err != nil {
			return err
		}

		return reportShape(env.Out, shape)
	})
}

// spectralShape describes the lower half of the spectrum carried by fr.
func spectralShape(fr *frame.Frame) (stats.Shape, error) {
	mag, err := spectrum.HalfMagnitude(fr.Samples)
	if err != nil {
		return stats.Shape{}, err
	}

	return stats.MeasureShape(mag, spectrum.BinHz(float64(fr.SampleRate), len(fr.Samples)/2)), nil
}

// meanSpacing returns the average distance in Hz between neighbouring
// frequency-sorted peaks, or 0 for fewer than two.
func meanSpacing(peaks []peak.Peak) float64 {
	if len(peaks) < 2 {
		return 0
	}

	return (peaks[len(peaks)-1].Freq - peaks[0].Freq) / float64(len(peaks)-1)
}

// tractLength is the length in metres of a closed-open tube whose resonances
// are spacing Hz apart.
func tractLength(spacing float64) float64 {
	if spacing <= 0 {
		return 0
	}

	return speedOfSound / (2 * spacing)
}

func report(w io.Writer, peaks []peak.Peak, all bool) error {
	shown := peaks
	if !all {
		shown = peak.Surviving(peaks)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Nr\tFreq [Hz]\tNote\tHeight\tMerged\tRolloff\tBins\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "--\t---------\t----\t------\t------\t-------\t----\n"); err != nil {
		return err
	}

	for _, p := range shown {
		freq, note := "absorbed", "-"
		if !p.IsAbsorbed() {
			freq = fmt.Sprintf("%.2f", p.Freq)
			if name := core.NoteName(p.Freq); name != "" {
				note = name
			}
		}

		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%.4f\t%d\t%.4f\t%v\n",
			p.FormantNr, freq, note, p.Height, p.MergedPeaks, p.RolloffV, p.Interval,
		); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	surviving := peak.Surviving(peaks)
	spacing := meanSpacing(surviving)
	if _, err := fmt.Fprintf(w, "\npeaks: %d surviving of %d\n", len(surviving), len(peaks)); err != nil {
		return err
	}
	if spacing > 0 {
		if _, err := fmt.Fprintf(w, "mean spacing: %.2f Hz, tract length: %.1f cm\n", spacing, 100*tractLength(spacing)); err != nil {
			return err
		}
	}

	return reportGroups(w, peak.GroupHarmonics(surviving))
}

func reportGroups(w io.Writer, groups []peak.HarmonicGroup) error {
	if len(groups) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\n"); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Note\tLowest Nr\tMax Height\tHarmonics\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "----\t---------\t----------\t---------\n"); err != nil {
		return err
	}

	for _, g := range groups {
		name := "-"
		if n, ok := g.Note(); ok {
			name = n.String()
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.4f\t%d\n", name, g.LowestFormant, g.MaxHeight, g.Harmonics); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func reportShape(w io.Writer, s stats.Shape) error {
	_, err := fmt.Fprintf(w, "\nspectrum: centroid %.1f Hz, spread %.1f Hz, flatness %.4f, rolloff %.1f Hz, peak %.1f Hz (bw %.1f Hz)\n",
		s.Centroid, s.Spread, s.Flatness, s.Rolloff, s.PeakFreq, s.PeakBandwidth)

	return err
}
