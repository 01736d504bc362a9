// Command window multiplies every complex point of a frame by a periodic
// raised cosine p - (1-p)cos(2 pi n/N). p = 0.5 is Hann, 0.54 is Hamming.
//
// Example:
//
//	audio2frame vowel.wav | window -p 0.54 | fft | peaks | peakinfo
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-formant/dsp/window"
	"github.com/cwbudde/algo-formant/frame"
	"github.com/cwbudde/algo-formant/internal/stage"
)

func main() {
	p := flag.Float64("p", 0.5, "raised-cosine constant in [0, 1]")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: window [-p param] < frame > frame\n\n")
		fmt.Fprintf(os.Stderr, "Applies a raised-cosine window to an interleaved complex frame.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	stage.Main("window", stage.Filter(func(in *frame.Frame, log *zap.Logger) (*frame.Frame, error) {
		return applyWindow(in, *p, log)
	}))
}

func applyWindow(in *frame.Frame, p float64, log *zap.Logger) (*frame.Frame, error) {
	if len(in.Samples)%2 != 0 {
		return nil, fmt.Errorf("window: odd sample count %d", len(in.Samples))
	}

	coeffs, err := window.RaisedCosine(len(in.Samples)/2, p)
	if err != nil {
		return nil, err
	}

	out, err := window.ApplyInterleaved(in.Samples, coeffs)
	if err != nil {
		return nil, err
	}

	log.Debug("windowed", zap.Float64("param", p), zap.Int("points", len(coeffs)))

	return in.WithSamples(out), nil
}
