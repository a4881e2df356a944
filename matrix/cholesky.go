// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

const (
	opCholesky      = "Cholesky"
	opSolveCholesky = "SolveCholesky"
	opMinEigen      = "MinEigenvalue"

	// symTol is the symmetry tolerance used by the symmetric helpers.
	symTol = 1e-9
	// eigenSweeps bounds the Jacobi rotations performed by MinEigenvalue.
	eigenSweeps = 10000
)

// Cholesky factors a symmetric positive-definite matrix as A = L·Lᵀ and
// returns the lower-triangular L.
//
// Implementation:
//   - Stage 1: ValidateSymmetric(A, symTol).
//   - Stage 2: Cholesky–Banachiewicz, row by row.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry.
//   - ErrNotPositiveDefinite when a pivot is ≤ 0 or non-finite.
//
// Complexity:
//   - Time O(n³/3), Space O(n²).
func Cholesky(m Matrix) (*Dense, error) {
	if err := ValidateSymmetric(m, symTol); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	a, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	n := a.r
	L, _ := NewDense(n, n)

	var i, j, k int
	var sum float64
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			sum = a.data[i*n+j]
			for k = 0; k < j; k++ {
				sum -= L.data[i*n+k] * L.data[j*n+k]
			}
			if i == j {
				if sum <= 0 || math.IsNaN(sum) {
					return nil, matrixErrorf(opCholesky, fmt.Errorf("pivot %d = %g: %w", i, sum, ErrNotPositiveDefinite))
				}
				L.data[i*n+i] = math.Sqrt(sum)
				continue
			}
			L.data[i*n+j] = sum / L.data[j*n+j]
		}
	}

	return L, nil
}

// SolveCholesky solves A·x = b given the Cholesky factor L of A.
// Forward substitution on L, then back substitution on Lᵀ.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrSingular (zero diagonal).
func SolveCholesky(L Matrix, b []float64) ([]float64, error) {
	if err := ValidateSquare(L); err != nil {
		return nil, matrixErrorf(opSolveCholesky, err)
	}
	if err := ValidateVecLen(b, L.Rows()); err != nil {
		return nil, matrixErrorf(opSolveCholesky, err)
	}
	l, err := asDense(L)
	if err != nil {
		return nil, matrixErrorf(opSolveCholesky, err)
	}
	n := l.r
	y := make([]float64, n)

	var i, k int
	var sum, d float64
	for i = 0; i < n; i++ {
		sum = b[i]
		for k = 0; k < i; k++ {
			sum -= l.data[i*n+k] * y[k]
		}
		if d = l.data[i*n+i]; d == 0 {
			return nil, matrixErrorf(opSolveCholesky, ErrSingular)
		}
		y[i] = sum / d
	}
	x := make([]float64, n)
	for i = n - 1; i >= 0; i-- {
		sum = y[i]
		for k = i + 1; k < n; k++ {
			sum -= l.data[k*n+i] * x[k]
		}
		x[i] = sum / l.data[i*n+i]
	}

	return x, nil
}

// IsPositiveDefinite reports whether the smallest eigenvalue of the
// symmetric matrix m is positive.
func IsPositiveDefinite(m Matrix) bool {
	lo, err := MinEigenvalue(m)

	return err == nil && lo > 0
}

// MinEigenvalue returns the smallest eigenvalue of a symmetric matrix.
// The convergence tolerance scales with the largest absolute entry.
func MinEigenvalue(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opMinEigen, err)
	}
	a, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opMinEigen, err)
	}
	scale := 1.0
	for _, v := range a.data {
		if math.Abs(v) > scale {
			scale = math.Abs(v)
		}
	}
	vals, _, err := Eigen(a, symTol*scale, eigenSweeps)
	if err != nil {
		return 0, matrixErrorf(opMinEigen, err)
	}
	lo := math.Inf(1)
	for _, v := range vals {
		if v < lo {
			lo = v
		}
	}

	return lo, nil
}
