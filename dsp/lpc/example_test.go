package lpc_test

import (
	"fmt"

	"github.com/cwbudde/algo-formant/dsp/lpc"
)

func ExampleAutocorrelation() {
	// A decaying alternation is a pure first-order process.
	x := make([]float64, 64)
	x[0] = 1
	for i := 1; i < len(x); i++ {
		x[i] = -0.5 * x[i-1]
	}

	res, _ := lpc.Autocorrelation(x, 1)
	fmt.Printf("order=%d a1=%.3f status=%v\n", res.Order, res.Coefficients[1], res.Status)

	// Output:
	// order=1 a1=0.500 status=order reached
}
