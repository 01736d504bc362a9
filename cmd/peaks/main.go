// Command peaks finds the spectral peaks of a transformed frame and attaches
// them to it. The samples pass through unchanged.
//
// Example:
//
//	audio2frame vowel.wav | fft | peaks -step 0.02 | peakinfo
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-formant/dsp/formant"
	"github.com/cwbudde/algo-formant/dsp/interval"
	"github.com/cwbudde/algo-formant/dsp/peak"
	"github.com/cwbudde/algo-formant/frame"
	"github.com/cwbudde/algo-formant/internal/stage"
)

func main() {
	step := flag.Float64("step", interval.DefaultCutoffStep, "cutoff step of the interval sweep, in (0, 1)")
	merge := flag.Int("merge", interval.DefaultMergeDistance, "bins between intervals that are merged")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: peaks [flags] < spectrum > spectrum+peaks\n\n")
		fmt.Fprintf(os.Stderr, "Attaches the spectral peaks of an interleaved spectrum frame.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := formant.NewConfig(formant.WithCutoffStep(*step), formant.WithMergeDistance(*merge))

	stage.Main("peaks", stage.Filter(func(in *frame.Frame, log *zap.Logger) (*frame.Frame, error) {
		return attach(in, cfg, log)
	}))
}

func attach(in *frame.Frame, cfg formant.Config, log *zap.Logger) (*frame.Frame, error) {
	peaks, err := formant.SpectrumPeaks(in.Samples, float64(in.SampleRate), cfg)
	if err != nil {
		return nil, err
	}

	log.Info("peaks found",
		zap.Int("total", len(peaks)),
		zap.Int("surviving", len(peak.Surviving(peaks))),
	)

	out := in.WithSamples(in.Samples)
	out.Peaks = peaks

	return out, nil
}
