// Command lpc fits all-pole models to the samples of a frame and prints the
// prediction-error coefficients.
//
// The samples are used as they are, without pre-emphasis or window; see
// formants for the full analysis.
//
// Examples:
//
//	audio2frame -real vowel.wav | lpc -order 12 -method burg
//	audio2frame vowel.wav | lpc -complex -all
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-formant/dsp/fft"
	"github.com/cwbudde/algo-formant/dsp/formant"
	"github.com/cwbudde/algo-formant/dsp/lpc"
	"github.com/cwbudde/algo-formant/frame"
	"github.com/cwbudde/algo-formant/internal/stage"
)

type options struct {
	order     int
	methods   []lpc.Method
	marple    lpc.MarpleOptions
	complexIn bool
}

func main() {
	var (
		opts   options
		method string
		all    bool
	)
	flag.IntVar(&opts.order, "order", 0, "model order; 0 derives it from the sample rate")
	flag.StringVar(&method, "method", "normal", "estimator: "+strings.Join(methodNames(), ", "))
	flag.BoolVar(&all, "all", false, "run every estimator")
	flag.Float64Var(&opts.marple.Tol1, "tol1", 0, "marple: stop once the error falls below tol1 times the energy")
	flag.Float64Var(&opts.marple.Tol2, "tol2", 0, "marple: stop once an order improves the error by less than tol2")
	flag.BoolVar(&opts.complexIn, "complex", false, "input is interleaved complex; use the real parts")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lpc [flags] < frame\n\n")
		fmt.Fprintf(os.Stderr, "Prints LPC error-filter coefficients of a frame.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	stage.Main("lpc", func(env stage.Env) error {
		if all {
			opts.methods = lpc.Methods()
		} else {
			m, err := lpc.ParseMethod(method)
			if err != nil {
				return stage.Usagef("lpc -method NAME: %v", err)
			}
			opts.methods = []lpc.Method{m}
		}

		fr, err := frame.Read(env.In)
		if err != nil {
			return err
		}

		return run(env.Out, fr, opts, env.Log)
	})
}

func methodNames() []string {
	var names []string
	for _, m := range lpc.Methods() {
		names = append(names, m.String())
	}

	return names
}

func estimate(m lpc.Method, x []float64, order int, marple lpc.MarpleOptions) (lpc.Result, error) {
	if m == lpc.MethodMarple {
		return lpc.Marple(x, order, marple)
	}

	return lpc.Estimate(m, x, order)
}

func run(w io.Writer, fr *frame.Frame, opts options, log *zap.Logger) error {
	samples := fr
	if opts.complexIn {
		samples = fr.WithSamples(fft.Real(fr.Samples))
	}
	x := samples.Float64()

	order := opts.order
	if order <= 0 {
		order = formant.DefaultConfig().ModelOrder(float64(fr.SampleRate))
	}

	log.Debug("fitting", zap.Int("order", order), zap.Int("samples", len(x)))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Method\tOrder\tStatus\tGain\tCoefficients\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "------\t-----\t------\t----\t------------\n"); err != nil {
		return err
	}

	for _, m := range opts.methods {
		res, err := estimate(m, x, order, opts.marple)
		if err != nil {
			return fmt.Errorf("lpc: %v: %w", m, err)
		}
		if !res.Complete() {
			log.Warn("estimator stopped early",
				zap.Stringer("method", m),
				zap.Int("order", res.Order),
				zap.Stringer("status", res.Status),
			)
		}

		if _, err := fmt.Fprintf(tw, "%v\t%d\t%v\t%.6g\t%s\n",
			m, res.Order, res.Status, res.Gain, formatCoefficients(res.Coefficients),
		); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func formatCoefficients(a []float64) string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = fmt.Sprintf("%.5f", v)
	}

	return strings.Join(parts, " ")
}
