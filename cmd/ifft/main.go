// Command ifft inverse-transforms a spectrum frame, optionally restricted to
// one sub-block and windowed first.
//
// With -reduce k the spectrum is cut into 2^k equal blocks and only block
// -index is transformed. -w applies a raised cosine with the given constant
// to that block beforehand.
//
// Examples:
//
//	audio2frame vowel.wav | fft | ifft | reduce | frame2wav > same.wav
//	audio2frame vowel.wav | fft | ifft -reduce 2 -index 0 -w 0.5 | reduce | formants
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-formant/dsp/fft"
	"github.com/cwbudde/algo-formant/dsp/window"
	"github.com/cwbudde/algo-formant/frame"
	"github.com/cwbudde/algo-formant/internal/stage"
)

type options struct {
	reduce int
	index  int
	window float64 // < 0 disables the window
}

func main() {
	var opts options
	flag.IntVar(&opts.reduce, "reduce", 0, "split the spectrum into 2^k blocks")
	flag.IntVar(&opts.index, "index", 0, "block to transform, 0-based")
	flag.Float64Var(&opts.window, "w", -1, "raised-cosine constant applied before the transform; negative disables")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ifft [flags] < frame > frame\n\n")
		fmt.Fprintf(os.Stderr, "Inverse transform of an interleaved complex frame.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	stage.Main("ifft", stage.Filter(func(in *frame.Frame, log *zap.Logger) (*frame.Frame, error) {
		return inverse(in, opts, log)
	}))
}

// block returns the floats of sub-block index when buf is split into 2^reduce
// equal parts.
func block(buf []float32, reduce, index int) ([]float32, error) {
	if reduce < 0 || reduce > 30 {
		return nil, stage.Usagef("ifft -reduce k: k=%d out of range", reduce)
	}

	count := len(buf) >> reduce
	if index < 0 || index >= 1<<reduce {
		return nil, stage.Usagef("ifft -index i: i=%d outside 0..%d", index, 1<<reduce-1)
	}

	return buf[count*index : count*(index+1)], nil
}

func inverse(in *frame.Frame, opts options, log *zap.Logger) (*frame.Frame, error) {
	sub, err := block(in.Samples, opts.reduce, opts.index)
	if err != nil {
		return nil, err
	}
	if !fft.Valid(len(sub)) {
		return nil, fmt.Errorf("ifft: block of %d floats is not a power-of-two number of complex points", len(sub))
	}

	if opts.window >= 0 {
		coeffs, err := window.RaisedCosine(len(sub)/2, opts.window)
		if err != nil {
			return nil, err
		}
		if sub, err = window.ApplyInterleaved(sub, coeffs); err != nil {
			return nil, err
		}
	}

	log.Debug("inverse transform",
		zap.Int("block", opts.index),
		zap.Int("blocks", 1<<opts.reduce),
		zap.Int("points", len(sub)/2),
	)

	out, err := fft.Inverse(sub)
	if err != nil {
		return nil, err
	}

	return in.WithSamples(out), nil
}
