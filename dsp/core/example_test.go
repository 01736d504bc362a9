package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-formant/dsp/core"
)

func ExampleNoteName() {
	fmt.Println(core.NoteName(440))
	fmt.Println(core.NoteName(446))

	// Output:
	// A 4 +-0c
	// A 4 +23c
}

func ExampleTruncatePowerOfTwo() {
	fmt.Println(core.TruncatePowerOfTwo(44100))

	// Output:
	// 32768
}
