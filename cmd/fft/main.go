// Command fft replaces the interleaved complex samples of a frame with their
// discrete Fourier transform.
//
// Example:
//
//	audio2frame vowel.wav | fft | peaks | peakinfo
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-formant/dsp/fft"
	"github.com/cwbudde/algo-formant/frame"
	"github.com/cwbudde/algo-formant/internal/stage"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fft < frame > frame\n\n")
		fmt.Fprintf(os.Stderr, "Forward transform of an interleaved complex frame.\n")
		fmt.Fprintf(os.Stderr, "The number of complex points must be a power of two.\n")
	}
	flag.Parse()

	stage.Main("fft", stage.Filter(forward))
}

func forward(in *frame.Frame, log *zap.Logger) (*frame.Frame, error) {
	spec, err := fft.Forward(in.Samples)
	if err != nil {
		return nil, err
	}

	log.Debug("transform", zap.Int("points", len(spec)/2))

	return in.WithSamples(spec), nil
}
