package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestMultiTone(t *testing.T) {
	a := DeterministicSine(500, 44100, 1, 64)
	b := DeterministicSine(1500, 44100, 1, 64)
	sum := MultiTone(44100, 64, 500, 1500)
	for i := range sum {
		if math.Abs(sum[i]-(a[i]+b[i])) > 1e-15 {
			t.Fatalf("index %d: %v != %v", i, sum[i], a[i]+b[i])
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	c := DeterministicNoise(43, 1.0, 64)
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestGaussianNoiseVariance(t *testing.T) {
	n := GaussianNoise(5, 20000)
	sum, sq := 0.0, 0.0
	for _, v := range n {
		sum += v
		sq += v * v
	}
	mean := sum / float64(len(n))
	variance := sq/float64(len(n)) - mean*mean
	if math.Abs(mean) > 0.05 || math.Abs(variance-1) > 0.05 {
		t.Fatalf("mean=%v variance=%v, want ~0 and ~1", mean, variance)
	}
}

func TestARProcessFirstOrder(t *testing.T) {
	noise := GaussianNoise(11, 8)
	x := ARProcess([]float64{-0.5}, 11, 8)

	want := noise[0]
	if x[0] != want {
		t.Fatalf("x[0] = %v, want %v", x[0], want)
	}
	for i := 1; i < len(x); i++ {
		want = noise[i] + 0.5*x[i-1]
		if math.Abs(x[i]-want) > 1e-15 {
			t.Fatalf("x[%d] = %v, want %v", i, x[i], want)
		}
	}
}

func TestToFloat32AndOnes(t *testing.T) {
	f := ToFloat32([]float64{0.5, -1})
	if len(f) != 2 || f[0] != 0.5 || f[1] != -1 {
		t.Fatalf("ToFloat32 = %v", f)
	}
	for i, v := range Ones(3) {
		if v != 1 {
			t.Fatalf("Ones[%d] = %v, want 1", i, v)
		}
	}
}
