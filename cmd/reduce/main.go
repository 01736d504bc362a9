// Command reduce keeps the real parts of an interleaved complex frame.
//
// Example:
//
//	audio2frame vowel.wav | fft | ifft | reduce | formants
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
		fmt.Fprintf(os.Stderr, "Usage: reduce < frame > frame\n\n")
		fmt.Fprintf(os.Stderr, "Keeps the real parts of an interleaved complex frame.\n")
	}
	flag.Parse()

	stage.Main("reduce", stage.Filter(func(in *frame.Frame, _ *zap.Logger) (*frame.Frame, error) {
		if len(in.Samples)%2 != 0 {
			return nil, fmt.Errorf("reduce: odd sample count %d", len(in.Samples))
		}

		return in.WithSamples(fft.Real(in.Samples)), nil
	}))
}
