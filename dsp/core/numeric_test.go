package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(1e9, 1e9+1, 1e-6) {
		t.Fatal("expected relative tolerance to apply")
	}
}

func TestLinearToDB(t *testing.T) {
	if got := LinearToDB(0.5); !NearlyEqual(got, -6.0206, 1e-4) {
		t.Fatalf("LinearToDB(0.5) = %v, want -6.0206", got)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestPowerOfTwo(t *testing.T) {
	tests := []struct {
		n        int
		isPow2   bool
		truncate int
	}{
		{n: -4, isPow2: false, truncate: 0},
		{n: 0, isPow2: false, truncate: 0},
		{n: 1, isPow2: true, truncate: 1},
		{n: 2, isPow2: true, truncate: 2},
		{n: 3, isPow2: false, truncate: 2},
		{n: 4096, isPow2: true, truncate: 4096},
		{n: 44100, isPow2: false, truncate: 32768},
	}

	for _, tt := range tests {
		if got := IsPowerOfTwo(tt.n); got != tt.isPow2 {
			t.Fatalf("IsPowerOfTwo(%d) = %v, want %v", tt.n, got, tt.isPow2)
		}
		if got := TruncatePowerOfTwo(tt.n); got != tt.truncate {
			t.Fatalf("TruncatePowerOfTwo(%d) = %d, want %d", tt.n, got, tt.truncate)
		}
	}

	if got := Log2(4096); got != 12 {
		t.Fatalf("Log2(4096) = %d, want 12", got)
	}
}
