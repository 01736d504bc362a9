package lpc

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Normal fits an AR model by forming the Toeplitz normal equations of the
// autocorrelation method explicitly and solving them with a QR
// factorization. It serves as a reference for the recursive estimators. A
// near-singular system still yields the full order with
// StatusDenominatorIllConditioned; an exactly singular one yields order 0.
func Normal(x []float64, order int) (Result, error) {
	if err := validate(x, order); err != nil {
		return Result{}, err
	}

	r := autocorrelation(x, order)
	if r[0] == 0 {
		return zeroEnergy(), nil
	}

	toeplitz := mat.NewDense(order, order, nil)
	rhs := mat.NewVecDense(order, nil)
	for i := range order {
		for j := range order {
			toeplitz.Set(i, j, r[abs(i-j)])
		}
		rhs.SetVec(i, -r[i+1])
	}

	var qr mat.QR
	qr.Factorize(toeplitz)

	var sol mat.VecDense
	status, solved := solveStatus(qr.SolveVecTo(&sol, false, rhs))
	if !solved {
		return Result{
			Coefficients: []float64{1},
			Gain:         r[0],
			Status:       status,
		}, nil
	}

	a := make([]float64, order)
	gain := r[0]
	for k := range a {
		a[k] = sol.AtVec(k)
		gain += a[k] * r[k+1]
	}

	return newResult(a, order, gain, status), nil
}

// solveStatus classifies a QR solve error. gonum completes the solve and
// reports a finite mat.Condition when the system is merely ill-conditioned.
func solveStatus(err error) (Status, bool) {
	if err == nil {
		return StatusOrderReached, true
	}

	var cond mat.Condition
	if errors.As(err, &cond) && !math.IsInf(float64(cond), 1) {
		return StatusDenominatorIllConditioned, true
	}

	return StatusDenominatorIllConditioned, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
