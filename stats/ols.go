// SPDX-License-Identifier: MIT

package stats

import (
	"math"

	"github.com/katalvlaran/synthdata/matrix"
)

// minPivot is the smallest squared Cholesky pivot (relative to n-1) accepted
// before the standardized predictors are considered collinear.
const minPivot = 1e-10

// Fit is the result of an ordinary least-squares regression.
type Fit struct {
	Coef       []float64 // one slope per predictor
	Intercept  float64
	R2         float64
	ResidualSD float64
	N          int // complete cases used
}

// Predict evaluates the fitted equation at x (len(x) == len(Coef)).
func (f *Fit) Predict(x []float64) float64 {
	v := f.Intercept
	for j, b := range f.Coef {
		v += b * x[j]
	}

	return v
}

// OLS regresses y on the predictor columns xs (each of len(y)) with an
// intercept, using only rows where every value is finite.
//
// Implementation:
//   - Stage 1: collect complete cases; standardize each predictor.
//   - Stage 2: solve (ZᵀZ)β = Zᵀy_c via matrix.Cholesky / SolveCholesky.
//   - Stage 3: rescale slopes, recover the intercept, compute R² and the residual s.d.
//
// Errors:
//   - ErrLengthMismatch for ragged inputs.
//   - ErrDegenerate when there are no more complete cases than parameters,
//     a predictor or the response is constant, or the predictors are collinear.
func OLS(xs [][]float64, y []float64) (*Fit, error) {
	p := len(xs)
	for _, col := range xs {
		if len(col) != len(y) {
			return nil, ErrLengthMismatch
		}
	}

	rows := completeRows(xs, y)
	n := len(rows)
	if n <= p+1 {
		return nil, ErrDegenerate
	}

	// Means and standard deviations of the complete cases.
	mx := make([]float64, p)
	sx := make([]float64, p)
	var my float64
	for _, i := range rows {
		my += y[i]
		for j := 0; j < p; j++ {
			mx[j] += xs[j][i]
		}
	}
	my /= float64(n)
	for j := 0; j < p; j++ {
		mx[j] /= float64(n)
	}
	var sst float64
	for _, i := range rows {
		d := y[i] - my
		sst += d * d
		for j := 0; j < p; j++ {
			dx := xs[j][i] - mx[j]
			sx[j] += dx * dx
		}
	}
	if sst == 0 {
		return nil, ErrDegenerate
	}
	for j := 0; j < p; j++ {
		sx[j] = math.Sqrt(sx[j] / float64(n-1))
		if sx[j] == 0 {
			return nil, ErrDegenerate
		}
	}

	coef := make([]float64, p)
	if p > 0 {
		beta, err := solveStandardized(xs, y, rows, mx, sx, my)
		if err != nil {
			return nil, err
		}
		for j := range beta {
			coef[j] = beta[j] / sx[j]
		}
	}
	intercept := my
	for j := 0; j < p; j++ {
		intercept -= coef[j] * mx[j]
	}

	var ssr float64
	row := make([]float64, p)
	fit := &Fit{Coef: coef, Intercept: intercept, N: n}
	for _, i := range rows {
		for j := 0; j < p; j++ {
			row[j] = xs[j][i]
		}
		d := y[i] - fit.Predict(row)
		ssr += d * d
	}
	fit.R2 = 1 - ssr/sst
	fit.ResidualSD = math.Sqrt(ssr / float64(n-p-1))

	return fit, nil
}

func solveStandardized(xs [][]float64, y []float64, rows []int, mx, sx []float64, my float64) ([]float64, error) {
	p := len(xs)
	g, _ := matrix.NewDense(p, p)
	b := make([]float64, p)
	z := make([]float64, p)
	acc := make([]float64, p*p)
	for _, i := range rows {
		for j := 0; j < p; j++ {
			z[j] = (xs[j][i] - mx[j]) / sx[j]
		}
		dy := y[i] - my
		for j := 0; j < p; j++ {
			b[j] += z[j] * dy
			for k := j; k < p; k++ {
				acc[j*p+k] += z[j] * z[k]
			}
		}
	}
	for j := 0; j < p; j++ {
		for k := j; k < p; k++ {
			_ = g.Set(j, k, acc[j*p+k])
			_ = g.Set(k, j, acc[j*p+k])
		}
	}

	L, err := matrix.Cholesky(g)
	if err != nil {
		return nil, ErrDegenerate
	}
	scale := float64(len(rows) - 1)
	for _, d := range L.Diagonal() {
		if d*d/scale < minPivot {
			return nil, ErrDegenerate
		}
	}
	beta, err := matrix.SolveCholesky(L, b)
	if err != nil {
		return nil, ErrDegenerate
	}

	return beta, nil
}

func completeRows(xs [][]float64, y []float64) []int {
	rows := make([]int, 0, len(y))
	for i := range y {
		if isMissing(y[i]) {
			continue
		}
		ok := true
		for _, col := range xs {
			if isMissing(col[i]) {
				ok = false
				break
			}
		}
		if ok {
			rows = append(rows, i)
		}
	}

	return rows
}
