package formant_test

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-formant/dsp/formant"
)

func ExampleFromRoot() {
	const fs = 8000

	root := cmplx.Rect(math.Exp(-math.Pi*60/fs), 2*math.Pi*500/fs)
	fmt.Println(formant.FromRoot(root, fs))

	// Output:
	// 500.00 Hz (bw 60.00 Hz)
}
