package fft

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-formant/internal/testutil"
)

func interleave(re []float64) []float32 {
	out := make([]float32, 2*len(re))
	for i, v := range re {
		out[2*i] = float32(v)
	}

	return out
}

func naiveDFT(buf []float32) []complex128 {
	n := len(buf) / 2
	out := make([]complex128, n)

	for k := range n {
		var sum complex128
		for t := range n {
			x := complex(float64(buf[2*t]), float64(buf[2*t+1]))
			sum += x * cmplx.Exp(complex(0, -2*math.Pi*float64(k*t)/float64(n)))
		}
		out[k] = sum
	}

	return out
}

func mustForward(t *testing.T, buf []float32) []float32 {
	t.Helper()

	out, err := Forward(buf)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}

	return out
}

func TestValid(t *testing.T) {
	tests := []struct {
		floats int
		want   bool
	}{
		{0, false},
		{2, false},
		{3, false},
		{4, true},
		{6, false},
		{8192, true},
		{8190, false},
	}

	for _, tt := range tests {
		if got := Valid(tt.floats); got != tt.want {
			t.Fatalf("Valid(%d) = %v, want %v", tt.floats, got, tt.want)
		}
	}
}

func TestForwardMatchesNaiveDFT(t *testing.T) {
	const n = 32

	buf := make([]float32, 2*n)
	noise := testutil.DeterministicNoise(7, 1, 2*n)
	for i := range buf {
		buf[i] = float32(noise[i])
	}

	got := mustForward(t, buf)
	want := naiveDFT(buf)

	for k := range n {
		g := complex(float64(got[2*k]), float64(got[2*k+1]))
		if cmplx.Abs(g-want[k]) > 1e-4 {
			t.Fatalf("bin %d: got %v, want %v", k, g, want[k])
		}
	}
}

func TestForwardMatchesDoublePrecision(t *testing.T) {
	const n = 1024

	signal := testutil.DeterministicNoise(99, 1, n)
	buf := interleave(signal)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		t.Fatalf("NewPlan64: %v", err)
	}

	src := make([]complex128, n)
	for i := range src {
		src[i] = complex(float64(buf[2*i]), 0)
	}

	ref := make([]complex128, n)
	if err := plan.Forward(ref, src); err != nil {
		t.Fatalf("Forward: %v", err)
	}

	got := mustForward(t, buf)
	for k := range n {
		g := complex(float64(got[2*k]), float64(got[2*k+1]))
		if cmplx.Abs(g-ref[k]) > 1e-3 {
			t.Fatalf("bin %d: got %v, want %v", k, g, ref[k])
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int{8, 256, 4096} {
		buf := make([]float32, 2*n)
		noise := testutil.DeterministicNoise(int64(n), 1, 2*n)
		for i := range buf {
			buf[i] = float32(noise[i])
		}

		back, err := Inverse(mustForward(t, buf))
		if err != nil {
			t.Fatalf("n=%d: Inverse: %v", n, err)
		}
		for i := range buf {
			if d := math.Abs(float64(back[i] - buf[i])); d > 1e-5 {
				t.Fatalf("n=%d index %d: round trip error %v", n, i, d)
			}
		}
	}
}

func TestPlanReuse(t *testing.T) {
	p, err := NewPlan(16)
	if err != nil {
		t.Fatal(err)
	}
	if p.Points() != 16 {
		t.Fatalf("Points = %d", p.Points())
	}

	for seed := int64(1); seed <= 3; seed++ {
		buf := interleave(testutil.DeterministicNoise(seed, 1, 16))

		got, err := p.Forward(buf)
		if err != nil {
			t.Fatal(err)
		}
		want := mustForward(t, buf)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("seed %d index %d: %v != %v", seed, i, got[i], want[i])
			}
		}
	}

	if _, err := p.Forward(make([]float32, 16)); err == nil {
		t.Fatal("expected size mismatch error")
	}
}

func TestSinusoidLandsInBin(t *testing.T) {
	const (
		n   = 64
		bin = 5
	)

	re := make([]float64, n)
	for i := range re {
		re[i] = math.Cos(2 * math.Pi * bin * float64(i) / n)
	}

	out := mustForward(t, interleave(re))
	for k := range n {
		mag := math.Hypot(float64(out[2*k]), float64(out[2*k+1]))
		want := 0.0
		if k == bin || k == n-bin {
			want = n / 2
		}
		if math.Abs(mag-want) > 1e-3 {
			t.Fatalf("bin %d: magnitude %v, want %v", k, mag, want)
		}
	}
}

func TestInvalidLength(t *testing.T) {
	for _, buf := range [][]float32{
		{},
		{1, 2},
		{1, 2, 3},
		{1, 2, 3, 4, 5, 6},
	} {
		out, err := Forward(buf)
		if !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("Forward(%d floats) err = %v", len(buf), err)
		}
		if len(out) != len(buf) {
			t.Fatalf("Forward(%d floats) returned %d floats", len(buf), len(out))
		}
		for i := range buf {
			if out[i] != buf[i] {
				t.Fatalf("Forward changed malformed input at %d: %v", i, out[i])
			}
		}
		if _, err := Inverse(buf); !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("Inverse(%d floats) err = %v", len(buf), err)
		}
	}

	if _, err := NewPlan(12); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("NewPlan(12) err = %v", err)
	}
}

func TestInputUntouched(t *testing.T) {
	buf := []float32{1, 0, 2, 0, 3, 0, 4, 0}
	orig := append([]float32(nil), buf...)

	_ = mustForward(t, buf)
	if _, err := Inverse(buf); err != nil {
		t.Fatal(err)
	}

	for i := range buf {
		if buf[i] != orig[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}

func TestRealHelpers(t *testing.T) {
	samples := []float32{1, -2, 3}
	buf := FromReal(samples)
	if len(buf) != 6 || buf[0] != 1 || buf[1] != 0 || buf[2] != -2 || buf[5] != 0 {
		t.Fatalf("FromReal = %v", buf)
	}

	back := Real(buf)
	for i := range samples {
		if back[i] != samples[i] {
			t.Fatalf("Real[%d] = %v, want %v", i, back[i], samples[i])
		}
	}
}
