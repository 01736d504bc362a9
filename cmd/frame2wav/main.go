// Command frame2wav writes the samples of a frame as a mono WAV file.
//
// Interleaved complex frames are reduced to their real parts with -complex.
// Samples outside [-1, 1] are clipped.
//
// Examples:
//
//	audio2frame -real vowel.wav | frame2wav -o copy.wav
//	audio2frame vowel.wav | fft | ifft | frame2wav -complex -bits 24 > out.wav
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-formant/dsp/fft"
	"github.com/cwbudde/algo-formant/frame"
	"github.com/cwbudde/algo-formant/internal/audiofile"
	"github.com/cwbudde/algo-formant/internal/stage"
)

func main() {
	bits := flag.Int("bits", 16, "bit depth (8, 16, 24 or 32)")
	output := flag.String("o", "", "output file; default stdout")
	complexIn := flag.Bool("complex", false, "input is interleaved complex; write the real parts")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: frame2wav [flags] < frame\n\n")
		fmt.Fprintf(os.Stderr, "Writes the samples of a frame as a mono WAV file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	stage.Main("frame2wav", func(env stage.Env) error {
		fr, err := frame.Read(env.In)
		if err != nil {
			return err
		}

		if *complexIn {
			fr = fr.WithSamples(fft.Real(fr.Samples))
		}

		if *output == "" {
			return audiofile.EncodeWAV(env.Out, fr, *bits)
		}

		if err := writeFile(*output, fr, *bits); err != nil {
			return err
		}

		env.Log.Info("written", zap.String("file", *output), zap.Int("samples", len(fr.Samples)))

		return nil
	})
}

// writeFile encodes fr to path. A failed encode removes the partial file.
func writeFile(path string, fr *frame.Frame, bits int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := audiofile.EncodeWAV(f, fr, bits); err != nil {
		_ = f.Close()
		_ = os.Remove(path)

		return err
	}

	return f.Close()
}
