// SPDX-License-Identifier: MIT
// Package matrix - column statistics over a data matrix (rows = observations).

package matrix

import "math"

const (
	opCenterColumns = "CenterColumns"
	opCovariance    = "Covariance"
	opCorrelation   = "Correlation"
)

// CenterColumns returns X with each column mean subtracted, plus the means.
//
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(r*c).
func CenterColumns(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	r, c := d.r, d.c
	means := make([]float64, c)

	var i, j int
	for i = 0; i < r; i++ {
		base := i * c
		for j = 0; j < c; j++ {
			means[j] += d.data[base+j]
		}
	}
	for j = 0; j < c; j++ {
		means[j] /= float64(r)
	}
	out := &Dense{r: r, c: c, data: make([]float64, r*c)}
	for i = 0; i < r; i++ {
		base := i * c
		for j = 0; j < c; j++ {
			out.data[base+j] = d.data[base+j] - means[j]
		}
	}

	return out, means, nil
}

// Covariance computes the sample covariance (divisor r-1) of the columns of X.
//
// Behavior highlights:
//   - Only the upper triangle is accumulated; the lower one is mirrored, so the
//     result is exactly symmetric.
//
// Returns:
//   - *Dense: c×c covariance.
//   - []float64: the column means used for centering.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (r < 2).
//
// Complexity:
//   - Time O(r*c²), Space O(c²).
func Covariance(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	if X.Rows() < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}
	xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	r, c := xc.r, xc.c
	cov, _ := NewDense(c, c)

	var i, j, k int
	var s float64
	for j = 0; j < c; j++ {
		for k = j; k < c; k++ {
			s = 0
			for i = 0; i < r; i++ {
				s += xc.data[i*c+j] * xc.data[i*c+k]
			}
			s /= float64(r - 1)
			cov.data[j*c+k] = s
			cov.data[k*c+j] = s
		}
	}

	return cov, means, nil
}

// Correlation computes the Pearson correlation of the columns of X.
//
// Behavior highlights:
//   - A zero-variance column gets a unit diagonal and zero off-diagonals, so
//     the result stays a valid correlation matrix.
//   - Off-diagonals are clamped to [-1, 1].
//
// Returns:
//   - *Dense: c×c correlation.
//   - []float64: column means.
//   - []float64: column sample standard deviations.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (r < 2).
func Correlation(X Matrix) (*Dense, []float64, []float64, error) {
	cov, means, err := Covariance(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	c := cov.r
	stds := make([]float64, c)
	for j := 0; j < c; j++ {
		stds[j] = math.Sqrt(cov.data[j*c+j])
	}
	corr, _ := NewDense(c, c)

	var j, k int
	var v float64
	for j = 0; j < c; j++ {
		corr.data[j*c+j] = 1
		for k = j + 1; k < c; k++ {
			v = 0
			if stds[j] > 0 && stds[k] > 0 {
				v = cov.data[j*c+k] / (stds[j] * stds[k])
				v = math.Max(-1, math.Min(1, v))
			}
			corr.data[j*c+k] = v
			corr.data[k*c+j] = v
		}
	}

	return corr, means, stds, nil
}
