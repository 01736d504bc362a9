package testutil

import "testing"

func TestRequireRootsMatch(t *testing.T) {
	got := []complex128{2, 1 + 1i, 1 - 1i}
	want := []complex128{1 - 1i, 2 + 1e-9, 1 + 1i}
	RequireRootsMatch(t, got, want, 1e-6)
}

func TestRequireHelpersPass(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1, 2 + 1e-10}, 1e-9)
	RequireFinite(t, []float64{0, -1, 1e300})
}
