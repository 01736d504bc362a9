package formant

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-formant/dsp/fft"
	"github.com/cwbudde/algo-formant/dsp/lpc"
	"github.com/cwbudde/algo-formant/dsp/spectrum"
	"github.com/cwbudde/algo-formant/internal/polyroot"
	"github.com/cwbudde/algo-formant/internal/testutil"
)

type resonance struct{ freq, bw float64 }

func pole(r resonance, fs float64) complex128 {
	return cmplx.Rect(math.Exp(-math.Pi*r.bw/fs), 2*math.Pi*r.freq/fs)
}

// errorFilter returns the canonical [1, a1, ...] vector of an all-pole model
// with one conjugate pole pair per resonance.
func errorFilter(fs float64, rs ...resonance) []float64 {
	a := []float64{1}
	for _, r := range rs {
		p := pole(r, fs)
		section := []float64{1, -2 * real(p), real(p)*real(p) + imag(p)*imag(p)}

		next := make([]float64, len(a)+2)
		for i, x := range a {
			for j, y := range section {
				next[i+j] += x * y
			}
		}
		a = next
	}

	return a
}

func TestFromRoot(t *testing.T) {
	const fs = 10000

	f := FromRoot(pole(resonance{freq: 1000, bw: 100}, fs), fs)
	if math.Abs(f.Frequency-1000) > 1e-9 || math.Abs(f.Bandwidth-100) > 1e-9 {
		t.Fatalf("FromRoot = %v", f)
	}
	if !f.Stable {
		t.Fatal("pole inside the unit circle should be stable")
	}
}

func TestFromRootsSelection(t *testing.T) {
	const fs = 10000
	cfg := DefaultConfig()

	tests := []struct {
		name string
		root complex128
		want bool
	}{
		{name: "in band", root: pole(resonance{freq: 1000, bw: 100}, fs), want: true},
		{name: "conjugate", root: cmplx.Conj(pole(resonance{freq: 1000, bw: 100}, fs))},
		{name: "below min formant", root: pole(resonance{freq: 150, bw: 50}, fs)},
		{name: "too wide", root: pole(resonance{freq: 1000, bw: 800}, fs)},
		{name: "unstable", root: cmplx.Rect(1.01, 2*math.Pi*0.1)},
		{name: "real", root: 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromRoots([]complex128{tt.root}, fs, cfg)
			if got[0].Selected != tt.want {
				t.Fatalf("Selected = %v, want %v (%v)", got[0].Selected, tt.want, got[0])
			}
		})
	}
}

func TestMinImagRejectsNearRealRoots(t *testing.T) {
	const fs = 10000
	root := pole(resonance{freq: 300, bw: 40}, fs)

	cfg := NewConfig(WithMinImag(imag(root) + 0.01))
	if FromRoots([]complex128{root}, fs, cfg)[0].Selected {
		t.Fatal("root below MinImag selected")
	}
}

func TestResolveKnownModel(t *testing.T) {
	const fs = 10000
	want := []resonance{{freq: 700, bw: 80}, {freq: 1800, bw: 120}}

	model := lpc.Result{Coefficients: errorFilter(fs, want[1], want[0]), Order: 4, Status: lpc.StatusOrderReached}

	got, err := Resolve(model, fs, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d formants %v, want %d", len(got), got, len(want))
	}
	for i, w := range want {
		if math.Abs(got[i].Frequency-w.freq) > 1e-6 || math.Abs(got[i].Bandwidth-w.bw) > 1e-6 {
			t.Fatalf("formant %d = %v, want %+v", i, got[i], w)
		}
	}
}

func TestResolveEdgeCases(t *testing.T) {
	got, err := Resolve(lpc.Result{Coefficients: []float64{1}}, 8000, DefaultConfig())
	if err != nil || got != nil {
		t.Fatalf("order 0: %v, %v", got, err)
	}

	model := lpc.Result{Coefficients: []float64{1, -0.5}, Order: 1}
	if _, err := Resolve(model, 0, DefaultConfig()); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("err = %v, want ErrInvalidSampleRate", err)
	}
}

func failingSolver(t *testing.T) {
	t.Helper()
	solveRoots = func([]float64) ([]complex128, error) {
		return nil, polyroot.ErrNoConvergence
	}
	t.Cleanup(func() { solveRoots = polyroot.Solve })
}

func TestResolveNoConvergence(t *testing.T) {
	failingSolver(t)

	model := lpc.Result{Coefficients: errorFilter(8000, resonance{freq: 700, bw: 80}), Order: 2}
	got, err := Resolve(model, 8000, DefaultConfig())
	if !errors.Is(err, polyroot.ErrNoConvergence) {
		t.Fatalf("err = %v, want ErrNoConvergence", err)
	}
	if got != nil {
		t.Fatalf("formants = %v, want none", got)
	}
}

func TestAnalyzeNoConvergence(t *testing.T) {
	failingSolver(t)

	x := testutil.ARProcess(errorFilter(10000, resonance{freq: 700, bw: 80})[1:], 5, 1024)
	res, err := Analyze(x, 10000, NewConfig(WithOrder(2)))
	if !errors.Is(err, polyroot.ErrNoConvergence) {
		t.Fatalf("err = %v, want ErrNoConvergence", err)
	}
	if res.Model.Order != 0 || res.Roots != nil || res.Formants != nil {
		t.Fatalf("partial result %+v", res)
	}
}

func TestAnalyzeRecoversResonances(t *testing.T) {
	const fs = 10000
	want := []resonance{{freq: 700, bw: 80}, {freq: 1800, bw: 120}}

	a := errorFilter(fs, want...)
	x := testutil.ARProcess(a[1:], 17, 8192)

	for _, m := range lpc.Methods() {
		t.Run(m.String(), func(t *testing.T) {
			cfg := NewConfig(WithOrder(4), WithFilterStrength(0), WithMethod(m))

			res, err := Analyze(x, fs, cfg)
			if err != nil {
				t.Fatal(err)
			}
			if res.Model.Order != 4 || len(res.Roots) != 4 {
				t.Fatalf("order %d, %d roots", res.Model.Order, len(res.Roots))
			}
			if len(res.Formants) != len(want) {
				t.Fatalf("formants = %v, want %d", res.Formants, len(want))
			}
			for i, w := range want {
				if math.Abs(res.Formants[i].Frequency-w.freq) > 50 {
					t.Fatalf("formant %d = %v, want near %v Hz", i, res.Formants[i], w.freq)
				}
			}
		})
	}
}

func TestAnalyzeDownsamples(t *testing.T) {
	const fs = 40000
	want := []resonance{{freq: 700, bw: 80}, {freq: 1800, bw: 120}}

	a := errorFilter(fs, want...)
	x := testutil.ARProcess(a[1:], 17, 16384)

	res, err := Analyze(x, fs, NewConfig(WithOrder(8), WithFilterStrength(0), WithAnalysisRate(10000)))
	if err != nil {
		t.Fatal(err)
	}
	if res.SampleRate != 10000 {
		t.Fatalf("SampleRate = %v, want 10000", res.SampleRate)
	}
	if len(res.Formants) != len(want) {
		t.Fatalf("formants = %v, want %d", res.Formants, len(want))
	}
	for i, w := range want {
		if math.Abs(res.Formants[i].Frequency-w.freq) > 50 {
			t.Fatalf("formant %d = %v, want near %v Hz", i, res.Formants[i], w.freq)
		}
	}

	// A target above the input rate leaves the segment alone.
	res, err = Analyze(x[:1024], fs, NewConfig(WithOrder(8), WithAnalysisRate(48000)))
	if err != nil {
		t.Fatal(err)
	}
	if res.SampleRate != fs {
		t.Fatalf("SampleRate = %v, want %v", res.SampleRate, fs)
	}
}

func TestAnalyzeDoesNotModifyInput(t *testing.T) {
	x := testutil.MultiTone(8000, 512, 440, 1200)
	orig := append([]float64(nil), x...)

	if _, err := Analyze(x, 8000, DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, x, orig, 0)
}

func TestAnalyzeErrors(t *testing.T) {
	if _, err := Analyze([]float64{1}, 8000, DefaultConfig()); !errors.Is(err, ErrSegmentTooShort) {
		t.Fatalf("err = %v", err)
	}
	if _, err := Analyze([]float64{1, 2}, -1, DefaultConfig()); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("err = %v", err)
	}
	// The default order at 8 kHz is 11, longer than the segment.
	if _, err := Analyze(make([]float64, 8), 8000, DefaultConfig()); !errors.Is(err, lpc.ErrSignalTooShort) {
		t.Fatalf("err = %v", err)
	}
}

func TestPreemphasize(t *testing.T) {
	const fs = 44100
	c := math.Exp(-2 * math.Pi * 50 / fs)

	got := Preemphasize([]float64{1, 1, 2}, fs, DefaultConfig())
	testutil.RequireSliceNearlyEqual(t, got, []float64{1, 1 - c, 2 - c}, 1e-15)

	flat := Preemphasize([]float64{1, 1, 2}, fs, NewConfig(WithFilterStrength(0)))
	testutil.RequireSliceNearlyEqual(t, flat, []float64{1, 1, 2}, 0)
}

func TestSpectralPeaksTwoTones(t *testing.T) {
	const (
		fs     = 44100
		length = 4096
	)

	x := testutil.ToFloat32(testutil.MultiTone(fs, length, 500, 1500))
	cfg := NewConfig(WithWindowParams(0.5, 0.5))

	peaks, err := SpectralPeaks(fft.FromReal(x), fs, cfg)
	if err != nil {
		t.Fatal(err)
	}

	var surviving []float64
	for _, p := range peaks {
		if !p.IsAbsorbed() {
			surviving = append(surviving, p.Freq)
		}
	}

	binHz := spectrum.BinHz(fs, length)
	if len(surviving) != 2 {
		t.Fatalf("surviving peaks = %v, want two", surviving)
	}
	for i, want := range []float64{500, 1500} {
		if math.Abs(surviving[i]-want) > binHz {
			t.Fatalf("peak %d at %.1f Hz, want within %.2f Hz of %v", i, surviving[i], binHz, want)
		}
	}
}

func TestSpectralPeaksRejectsInvalidLength(t *testing.T) {
	if _, err := SpectralPeaks(make([]float32, 12), 8000, DefaultConfig()); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("err = %v, want ErrInvalidLength", err)
	}
}

func TestConfigOptions(t *testing.T) {
	if got := DefaultConfig().ModelOrder(44100); got != 47 {
		t.Fatalf("ModelOrder(44100) = %d, want 47", got)
	}

	cfg := NewConfig(
		WithOrder(12),
		WithOrder(-3),
		WithMinFormant(-1),
		WithMaxBandwidth(400),
		WithCutoffStep(2),
		WithMarpleTolerances(1e-3, 5e-3),
		nil,
	)

	if cfg.ModelOrder(44100) != 12 {
		t.Fatalf("Order = %d, want 12", cfg.Order)
	}
	if cfg.MinFormant != 200 || cfg.MaxBandwidth != 400 || cfg.CutoffStep != 0.01 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Marple.Tol1 != 1e-3 || cfg.Marple.Tol2 != 5e-3 {
		t.Fatalf("Marple = %+v", cfg.Marple)
	}
}
