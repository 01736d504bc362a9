// Command audio2frame decodes an audio file into a frame on stdout.
//
// Usage:
//
//	audio2frame [flags] [file]
//
// Without a file argument the audio is read from stdin and -format is
// required. By default the samples are truncated to a power-of-two length and
// interleaved with zero imaginary parts, ready for fft.
//
// Examples:
//
//	audio2frame vowel.wav | fft | peaks | peakinfo
//	audio2frame -channel 1 -real speech.mp3 | formants
//	audio2frame -real -rate 11025 vowel.aiff | lpc -all
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-formant/dsp/core"
	"github.com/cwbudde/algo-formant/dsp/fft"
	"github.com/cwbudde/algo-formant/dsp/resample"
	"github.com/cwbudde/algo-formant/dsp/spectrum"
	"github.com/cwbudde/algo-formant/frame"
	"github.com/cwbudde/algo-formant/internal/audiofile"
	"github.com/cwbudde/algo-formant/internal/stage"
	"github.com/cwbudde/algo-formant/stats"
)

func main() {
	format := flag.String("format", "", "input format (aiff, mp3, ogg, wav); default from the file extension")
	channel := flag.Int("channel", 0, "channel to extract; -1 mixes all channels down")
	realOnly := flag.Bool("real", false, "emit real samples instead of interleaved complex pairs")
	full := flag.Bool("full", false, "keep the full length instead of truncating to a power of two")
	rate := flag.Float64("rate", 0, "resample to this rate; 0 keeps the file rate")
	normalize := flag.Bool("normalize", false, "scale to a peak magnitude of 1")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: audio2frame [flags] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Decodes an audio file into a frame on stdout.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	stage.Main("audio2frame", func(env stage.Env) error {
		path := flag.Arg(0)

		name := *format
		if name == "" {
			var ok bool
			if name, ok = audiofile.FormatFromPath(path); !ok {
				return stage.Usagef("audio2frame -format NAME [file]: cannot guess format of %q", path)
			}
		}

		var in io.Reader = env.In
		if path != "" {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		mix := audiofile.Channel(*channel)
		if *channel < 0 {
			mix = audiofile.MixDown
		}

		fr, err := audiofile.DefaultRegistry().Load(in, name, mix)
		if err != nil {
			return err
		}

		decoded := len(fr.Samples)
		if *rate > 0 && float64(fr.SampleRate) != *rate {
			if fr, err = resampled(fr, *rate); err != nil {
				return err
			}
		}

		if !*full {
			fr.Samples = fr.Samples[:core.TruncatePowerOfTwo(len(fr.Samples))]
		}
		if *normalize {
			spectrum.NormalizeAbs(fr.Samples)
		}
		level := stats.MeasureLevel32(fr.Samples)

		if !*realOnly {
			fr.Samples = fft.FromReal(fr.Samples)
		}

		env.Log.Info("decoded",
			zap.String("format", name),
			zap.Int("decoded", decoded),
			zap.Float32("rate", fr.SampleRate),
			zap.Int("floats", len(fr.Samples)),
			zap.Float64("peak_db", level.PeakDB()),
			zap.Float64("rms_db", level.RMSDB()),
			zap.Float64("dc", level.DC),
			zap.Float64("zcr", level.ZeroCrossingRate),
		)

		return frame.Write(env.Out, fr)
	})
}

func resampled(fr *frame.Frame, rate float64) (*frame.Frame, error) {
	y, actual, err := resample.ToRate(fr.Float64(), float64(fr.SampleRate), rate)
	if err != nil {
		return nil, err
	}

	out := &frame.Frame{SampleRate: float32(actual), Samples: make([]float32, len(y))}
	for i, v := range y {
		out.Samples[i] = float32(v)
	}

	return out, nil
}
