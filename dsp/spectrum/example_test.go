package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-formant/dsp/spectrum"
)

func ExampleNormalize() {
	mag, _ := spectrum.Magnitude([]float32{3, 4, 0, 1, 6, 8})
	peak := spectrum.Normalize(mag)

	fmt.Println(peak, mag)

	// Output:
	// 10 [0.5 0.1 1]
}
