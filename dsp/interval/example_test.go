package interval_test

import (
	"fmt"

	"github.com/cwbudde/algo-formant/dsp/interval"
)

func ExampleAccumulate() {
	mag := []float64{0, 0.1, 0.5, 1, 0.5, 0.1, 0, 0, 0, 0, 0, 0.1, 0.3, 0.1, 0}

	found, _ := interval.Accumulate(mag, 0.1)
	fmt.Println(found)

	// Output:
	// [[3,4) [12,13)]
}

func ExampleMergeClose() {
	merged := interval.MergeClose([]interval.Interval{{Lower: 0, Upper: 2}, {Lower: 4, Upper: 5}, {Lower: 30, Upper: 31}}, 5)
	fmt.Println(merged)

	// Output:
	// [[0,5) [30,31)]
}
