// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

const (
	opRegularize     = "Regularize"
	opRegularizeCorr = "RegularizeCorrelation"

	// DefaultRidge is the initial ridge as a fraction of the mean diagonal (trace/n).
	DefaultRidge = 1e-6

	// maxRidgeDoublings bounds the λ ← 2λ retries before giving up.
	maxRidgeDoublings = 60
)

// Regularize returns a positive-definite version of the symmetric matrix m.
//
// Implementation:
//   - Stage 1: λmin = MinEigenvalue(m). If λmin > 0 and Cholesky(m)
//     succeeds, return a copy with λ = 0.
//   - Stage 2: λ = max(0, −λmin) + ridge·trace/n (ridge when the trace is
//     not positive), so m + λI has every eigenvalue at least the ridge floor.
//   - Stage 3: confirm m + λI with Cholesky, doubling λ on a rounding failure.
//
// Returns:
//   - *Dense: the regularized matrix (never aliases m).
//   - float64: the λ that was added to the diagonal.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrEigenFailed.
//   - ErrNaNInf for ridge ≤ 0 or non-finite.
//   - ErrNotPositiveDefinite when the doubling budget is exhausted.
//
// Complexity:
//   - Time O(sweeps·n²) for the eigenvalue, plus O(k·n³) for k Cholesky
//     attempts; Space O(n²).
func Regularize(m Matrix, ridge float64) (*Dense, float64, error) {
	if err := ValidateSymmetric(m, symTol); err != nil {
		return nil, 0, matrixErrorf(opRegularize, err)
	}
	if ridge <= 0 || math.IsNaN(ridge) || math.IsInf(ridge, 0) {
		return nil, 0, matrixErrorf(opRegularize, ErrNaNInf)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, 0, matrixErrorf(opRegularize, err)
	}
	out := src.Clone().(*Dense)
	minEig, err := MinEigenvalue(out)
	if err != nil {
		return nil, 0, matrixErrorf(opRegularize, err)
	}
	if minEig > 0 {
		if _, err := Cholesky(out); err == nil {
			return out, 0, nil
		}
	}

	n := out.r
	floor := ridge
	if tr := out.Trace(); tr > 0 {
		floor = ridge * tr / float64(n)
	}
	lambda := math.Max(0, -minEig) + floor
	base := out.Diagonal()
	for attempt := 0; attempt < maxRidgeDoublings; attempt++ {
		for i := 0; i < n; i++ {
			out.data[i*n+i] = base[i] + lambda
		}
		if _, err := Cholesky(out); err == nil {
			return out, lambda, nil
		}
		lambda *= 2
	}

	return nil, 0, matrixErrorf(opRegularize, fmt.Errorf("λ=%g: %w", lambda, ErrNotPositiveDefinite))
}

// RegularizeCorrelation regularizes like Regularize and then rescales to a
// unit diagonal, C' = D^{-1/2}·C·D^{-1/2}, so the result is again a
// correlation matrix. Rescaling by a positive diagonal keeps it positive definite.
func RegularizeCorrelation(m Matrix, ridge float64) (*Dense, float64, error) {
	out, lambda, err := Regularize(m, ridge)
	if err != nil {
		return nil, 0, matrixErrorf(opRegularizeCorr, err)
	}
	n := out.r
	inv := make([]float64, n)
	for i := 0; i < n; i++ {
		inv[i] = 1 / math.Sqrt(out.data[i*n+i])
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			out.data[i*n+j] *= inv[i] * inv[j]
		}
		out.data[i*n+i] = 1
	}

	return out, lambda, nil
}
