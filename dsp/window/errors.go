package window

import (
	"errors"
	"fmt"
)

var (
	errMismatchedLength = errors.New("window: samples and coefficients must have same length")
	errOddInterleaved   = errors.New("window: interleaved buffer has odd length")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window: size must be > 0: %d", size)
	}
	return nil
}

func validateRaisedCosine(size int, param float64) error {
	if err := validateLength(size); err != nil {
		return err
	}
	if param < 0 || param > 1 {
		return fmt.Errorf("window: raised-cosine parameter must be in [0,1]: %f", param)
	}
	return nil
}
