package interval

import (
	"slices"
	"testing"

	"github.com/cwbudde/algo-formant/internal/testutil"
)

func TestAboveCutoff(t *testing.T) {
	tests := []struct {
		name   string
		data   []float64
		cutoff float64
		want   []Interval
	}{
		{
			name:   "empty",
			data:   nil,
			cutoff: 0.5,
			want:   nil,
		},
		{
			name:   "two runs",
			data:   []float64{0, 1, 1, 0, 0, 1, 0},
			cutoff: 0.5,
			want:   []Interval{{1, 3}, {5, 6}},
		},
		{
			name:   "equal is not above",
			data:   []float64{0.5, 0.7, 0.5, 0.7},
			cutoff: 0.5,
			want:   []Interval{{1, 2}, {3, 4}},
		},
		{
			name:   "open run includes last index",
			data:   []float64{0, 0.9, 0.9, 0.9},
			cutoff: 0.5,
			want:   []Interval{{1, 4}},
		},
		{
			name:   "maximum in last bin",
			data:   []float64{0.1, 0.2, 0.1, 0.3, 1.0},
			cutoff: 0.99,
			want:   []Interval{{4, 5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AboveCutoff(tt.data, tt.cutoff)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("AboveCutoff() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAboveCutoffBelowMinimumSpansBuffer(t *testing.T) {
	data := testutil.DeterministicNoise(3, 1, 100)
	got := AboveCutoff(data, -2)
	want := []Interval{{0, len(data)}}
	if !slices.Equal(got, want) {
		t.Fatalf("AboveCutoff() = %v, want %v", got, want)
	}
}

func TestAboveCutoffAtMaximum(t *testing.T) {
	noise := testutil.DeterministicNoise(4, 1, 100)
	lastMax := append(slices.Clone(noise), 2)

	for _, data := range [][]float64{noise, lastMax} {
		peak := slices.Index(data, slices.Max(data))
		for _, cutoff := range []float64{slices.Max(data), slices.Max(data) - 1e-9} {
			for _, iv := range AboveCutoff(data, cutoff) {
				if iv.Lower > peak || iv.Upper <= peak {
					t.Fatalf("cutoff %v: interval %v does not contain the maximum at %d", cutoff, iv, peak)
				}
			}
		}
	}
}

func TestIntervalGeometry(t *testing.T) {
	a := Interval{2, 5}
	b := Interval{9, 12}

	if got := a.Distance(b); got != 4 {
		t.Fatalf("Distance = %d, want 4", got)
	}
	if got := b.Distance(a); got != 4 {
		t.Fatalf("Distance reversed = %d, want 4", got)
	}
	if got := a.Distance(Interval{4, 8}); got != 0 {
		t.Fatalf("overlapping Distance = %d, want 0", got)
	}
	if got := a.Span(b); got != (Interval{2, 12}) {
		t.Fatalf("Span = %v", got)
	}
	if !a.Span(b).Contains(a) || a.Contains(b) {
		t.Fatal("Contains mismatch")
	}
	if a.Len() != 3 || a.String() != "[2,5)" {
		t.Fatalf("Len/String = %d %q", a.Len(), a.String())
	}
}

func TestMergeClose(t *testing.T) {
	in := []Interval{{0, 2}, {20, 22}, {5, 6}, {9, 10}, {40, 41}}
	got := MergeClose(in, 5)
	want := []Interval{{0, 10}, {20, 22}, {40, 41}}
	if !slices.Equal(got, want) {
		t.Fatalf("MergeClose() = %v, want %v", got, want)
	}
	if in[0] != (Interval{0, 2}) || len(in) != 5 {
		t.Fatal("input modified")
	}
}

func TestMergeCloseTransitive(t *testing.T) {
	// Only the grown span reaches the last interval.
	in := []Interval{{0, 1}, {30, 31}, {5, 26}}
	got := MergeClose(in, 5)
	want := []Interval{{0, 31}}
	if !slices.Equal(got, want) {
		t.Fatalf("MergeClose() = %v, want %v", got, want)
	}
}

func TestMergeCloseIdempotent(t *testing.T) {
	data := testutil.DeterministicNoise(9, 1, 400)
	for _, cutoff := range []float64{0.2, 0.5, 0.8, 0.95} {
		once := MergeClose(AboveCutoff(data, cutoff), DefaultMergeDistance)
		twice := MergeClose(once, DefaultMergeDistance)
		if !slices.Equal(once, twice) {
			t.Fatalf("cutoff %v: not idempotent: %v vs %v", cutoff, once, twice)
		}
		for i := range once {
			for j := i + 1; j < len(once); j++ {
				if once[i].Distance(once[j]) < DefaultMergeDistance {
					t.Fatalf("cutoff %v: %v and %v still close", cutoff, once[i], once[j])
				}
			}
		}
	}
}

func TestMergeLists(t *testing.T) {
	old := []Interval{{10, 12}, {30, 31}}
	candidates := []Interval{{8, 14}, {20, 22}, {29, 35}, {50, 51}}

	got := MergeLists(old, candidates)
	want := []Interval{{10, 12}, {30, 31}, {20, 22}, {50, 51}}
	if !slices.Equal(got, want) {
		t.Fatalf("MergeLists() = %v, want %v", got, want)
	}
}

func TestAccumulateInvalidStep(t *testing.T) {
	for _, step := range []float64{0, 1, -0.1, 1.5} {
		if _, err := Accumulate([]float64{1}, step); err != ErrInvalidCutoffStep {
			t.Fatalf("step %v: err = %v, want ErrInvalidCutoffStep", step, err)
		}
	}
}

func TestAccumulateFindsSecondaryPeak(t *testing.T) {
	data := make([]float64, 64)
	for i, v := range []float64{0.2, 0.6, 1.0, 0.6, 0.2} {
		data[10+i] = v
	}
	for i, v := range []float64{0.1, 0.4, 0.1} {
		data[40+i] = v
	}

	got, err := Accumulate(data, 0.05)
	if err != nil {
		t.Fatalf("Accumulate: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("Accumulate() = %v, want two intervals", got)
	}
	if !got[0].Contains(Interval{12, 13}) || got[0].Upper > 15 {
		t.Fatalf("first interval %v does not isolate the dominant peak", got[0])
	}
	if !got[1].Contains(Interval{41, 42}) || got[1].Lower < 40 {
		t.Fatalf("second interval %v does not isolate the secondary peak", got[1])
	}
}

func TestAccumulatePrefixPreserved(t *testing.T) {
	data := testutil.DeterministicNoise(21, 1, 512)
	for i := range data {
		if data[i] < 0 {
			data[i] = -data[i]
		}
	}
	data[100] = 1

	coarse, err := Accumulate(data, 0.25)
	if err != nil {
		t.Fatalf("Accumulate: %v", err)
	}

	// Replaying the steps one at a time must only ever append.
	acc := AboveCutoff(data, 1)
	for i := 1; i <= 4; i++ {
		prev := slices.Clone(acc)
		cutoff := max(1-0.25*float64(i), 0)
		acc = MergeLists(acc, MergeClose(AboveCutoff(data, cutoff), DefaultMergeDistance))
		if !slices.Equal(acc[:len(prev)], prev) {
			t.Fatalf("step %d altered the prefix: %v -> %v", i, prev, acc)
		}
	}

	if !slices.Equal(acc, coarse) {
		t.Fatalf("replay %v != Accumulate %v", acc, coarse)
	}
}

func TestAccumulateMaximumInLastBin(t *testing.T) {
	data := []float64{0.1, 0.2, 0.1, 0.3, 1.0}

	got, err := Accumulate(data, 0.1)
	if err != nil {
		t.Fatalf("Accumulate: %v", err)
	}

	want := []Interval{{4, 5}}
	if !slices.Equal(got, want) {
		t.Fatalf("Accumulate() = %v, want %v", got, want)
	}
}

func TestSort(t *testing.T) {
	in := []Interval{{30, 31}, {2, 4}, {10, 20}}
	Sort(in)
	want := []Interval{{2, 4}, {10, 20}, {30, 31}}
	if !slices.Equal(in, want) {
		t.Fatalf("Sort() = %v, want %v", in, want)
	}
}
