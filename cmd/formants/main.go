// Command formants estimates the formants of a frame through linear
// prediction and prints them in frequency order.
//
// Examples:
//
//	audio2frame -real vowel.wav | formants
//	audio2frame -real vowel.wav | formants -method marple -tol1 1e-4 -roots
//	audio2frame -real vowel.wav | formants -rate 11025
//	audio2frame vowel.wav | formants -complex -window raised-cosine -p 0.54
package main

import (
	"flag"
	"fmt"
	"io"
	"math/cmplx"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-formant/dsp/core"
	"github.com/cwbudde/algo-formant/dsp/fft"
	"github.com/cwbudde/algo-formant/dsp/formant"
	"github.com/cwbudde/algo-formant/dsp/lpc"
	"github.com/cwbudde/algo-formant/dsp/window"
	"github.com/cwbudde/algo-formant/frame"
	"github.com/cwbudde/algo-formant/internal/stage"
	"github.com/cwbudde/algo-formant/stats"
)

type flags struct {
	order      int
	method     string
	window     string
	param      float64
	strength   float64
	cutoff     float64
	minFormant float64
	maxBW      float64
	minImag    float64
	rate       float64
	tol1, tol2 float64
	floor      float64
	complexIn  bool
	roots      bool
}

func main() {
	def := formant.DefaultConfig()

	var f flags
	flag.IntVar(&f.order, "order", 0, "model order; 0 derives it from the sample rate")
	flag.StringVar(&f.method, "method", def.Method.String(), "LPC estimator")
	flag.StringVar(&f.window, "window", def.Window.String(), "analysis window: rectangular, hann, hamming, blackman, raised-cosine")
	flag.Float64Var(&f.param, "p", def.WindowParam1, "raised-cosine constant of the analysis window")
	flag.Float64Var(&f.strength, "strength", def.FilterStrength, "pre-emphasis strength; 0 disables")
	flag.Float64Var(&f.cutoff, "preemph", def.PreemphasisCutoff, "pre-emphasis cutoff in Hz")
	flag.Float64Var(&f.minFormant, "min", def.MinFormant, "lowest accepted formant in Hz")
	flag.Float64Var(&f.maxBW, "maxbw", def.MaxBandwidth, "widest accepted bandwidth in Hz")
	flag.Float64Var(&f.minImag, "minimag", def.MinImag, "smallest accepted imaginary part of a pole")
	flag.Float64Var(&f.rate, "rate", 0, "downsample to this rate before fitting; 0 keeps the input rate")
	flag.Float64Var(&f.tol1, "tol1", 0, "marple: relative error tolerance")
	flag.Float64Var(&f.tol2, "tol2", 0, "marple: relative improvement tolerance")
	flag.Float64Var(&f.floor, "floor", -120, "skip segments whose RMS is at or below this level in dBFS")
	flag.BoolVar(&f.complexIn, "complex", false, "input is interleaved complex; use the real parts")
	flag.BoolVar(&f.roots, "roots", false, "also list every pole of the model")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: formants [flags] < frame\n\n")
		fmt.Fprintf(os.Stderr, "Estimates formants through linear prediction.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	stage.Main("formants", func(env stage.Env) error {
		cfg, err := f.config()
		if err != nil {
			return err
		}

		fr, err := frame.Read(env.In)
		if err != nil {
			return err
		}
		if f.complexIn {
			fr = fr.WithSamples(fft.Real(fr.Samples))
		}

		x := fr.Float64()
		level := stats.MeasureLevel(x)
		if level.Silent(f.floor) {
			env.Log.Warn("segment below floor",
				zap.Float64("rms_db", level.RMSDB()),
				zap.Float64("floor_db", f.floor),
			)
			return reportLevel(env.Out, level)
		}

		fs := float64(fr.SampleRate)
		a, err := formant.Analyze(x, fs, cfg)
		if err != nil {
			return err
		}

		env.Log.Info("analyzed",
			zap.Stringer("method", cfg.Method),
			zap.Float64("rate", a.SampleRate),
			zap.Int("order", a.Model.Order),
			zap.Stringer("status", a.Model.Status),
			zap.Int("formants", len(a.Formants)),
		)

		var all []formant.Formant
		if f.roots {
			all = formant.FromRoots(a.Roots, a.SampleRate, cfg)
		}

		if err := reportLevel(env.Out, level); err != nil {
			return err
		}

		return report(env.Out, a, all)
	})
}

func (f flags) config() (formant.Config, error) {
	m, err := lpc.ParseMethod(f.method)
	if err != nil {
		return formant.Config{}, stage.Usagef("formants -method NAME: %v", err)
	}
	w, err := window.ParseType(f.window)
	if err != nil {
		return formant.Config{}, stage.Usagef("formants -window NAME: %v", err)
	}

	def := formant.DefaultConfig()

	return formant.NewConfig(
		formant.WithOrder(f.order),
		formant.WithMethod(m),
		formant.WithWindow(w),
		formant.WithWindowParams(f.param, def.WindowParam2),
		formant.WithFilterStrength(f.strength),
		formant.WithPreemphasisCutoff(f.cutoff),
		formant.WithMinFormant(f.minFormant),
		formant.WithMaxBandwidth(f.maxBW),
		formant.WithMinImag(f.minImag),
		formant.WithMarpleTolerances(f.tol1, f.tol2),
		formant.WithAnalysisRate(f.rate),
	), nil
}

func reportLevel(w io.Writer, l stats.Level) error {
	_, err := fmt.Fprintf(w, "segment: %d samples, peak %.1f dBFS, rms %.1f dBFS, zcr %.3f\n",
		l.Length, l.PeakDB(), l.RMSDB(), l.ZeroCrossingRate)

	return err
}

func report(w io.Writer, a formant.Analysis, roots []formant.Formant) error {
	if _, err := fmt.Fprintf(w, "model: order %d, %v, gain %.6g\n\n", a.Model.Order, a.Model.Status, a.Model.Gain); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Formant\tFreq [Hz]\tBandwidth [Hz]\tNote\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-------\t---------\t--------------\t----\n"); err != nil {
		return err
	}

	for i, f := range a.Formants {
		note := core.NoteName(f.Frequency)
		if note == "" {
			note = "-"
		}
		if _, err := fmt.Fprintf(tw, "F%d\t%.2f\t%.2f\t%s\n", i+1, f.Frequency, f.Bandwidth, note); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(roots) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\n"); err != nil {
		return err
	}

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Pole\t|z|\tFreq [Hz]\tBandwidth [Hz]\tSelected\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "----\t---\t---------\t--------------\t--------\n"); err != nil {
		return err
	}

	for _, f := range roots {
		if _, err := fmt.Fprintf(tw, "%.5f%+.5fi\t%.5f\t%.2f\t%.2f\t%t\n",
			real(f.Root), imag(f.Root), cmplx.Abs(f.Root), f.Frequency, f.Bandwidth, f.Selected,
		); err != nil {
			return err
		}
	}

	return tw.Flush()
}
