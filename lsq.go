package gesture

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// maxFitCondition bounds the condition number of the least-squares design
// matrix. Samples that share a timestamp, or too few distinct times, push it
// past this and the fit is refused.
const maxFitCondition = 1e10

// polyFit fits y = c0 + c1*t + ... + cd*t^d to the samples by least squares
// (QR factorization of the Vandermonde matrix) and returns the coefficients
// and the coefficient of determination as confidence. ok is false when the
// system is rank deficient or ill-conditioned.
func polyFit(ts, ys []float64, degree int) (coef []float64, confidence float64, ok bool) {
	n := len(ts)
	m := degree + 1
	if n < m || len(ys) != n {
		return nil, 0, false
	}

	a := mat.NewDense(n, m, nil)
	for i, t := range ts {
		v := 1.0
		for j := 0; j < m; j++ {
			a.Set(i, j, v)
			v *= t
		}
	}

	var qr mat.QR
	qr.Factorize(a)
	if c := qr.Cond(); math.IsNaN(c) || math.IsInf(c, 0) || c > maxFitCondition {
		return nil, 0, false
	}

	b := mat.NewVecDense(n, append([]float64(nil), ys...))
	var x mat.VecDense
	if err := qr.SolveVecTo(&x, false, b); err != nil {
		return nil, 0, false
	}

	coef = make([]float64, m)
	for j := range coef {
		coef[j] = x.AtVec(j)
		if math.IsNaN(coef[j]) || math.IsInf(coef[j], 0) {
			return nil, 0, false
		}
	}

	var fitted mat.VecDense
	fitted.MulVec(a, &x)

	mean := stat.Mean(ys, nil)
	var sse, sst float64
	for i, y := range ys {
		r := y - fitted.AtVec(i)
		sse += r * r
		d := y - mean
		sst += d * d
	}
	if sst <= 1e-12 {
		return coef, 1, true
	}
	confidence = 1 - sse/sst
	if confidence < 0 {
		confidence = 0
	}
	return coef, confidence, true
}
