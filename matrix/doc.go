// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra kernels used by the
// synthesis engine.
//
// What is inside:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set.
//   - Kernels: MatVec.
//   - Symmetric tools: Eigen (classical Jacobi), MinEigenvalue,
//     IsPositiveDefinite (smallest eigenvalue > 0), Cholesky, SolveCholesky.
//   - Ridge regularization: Regularize and RegularizeCorrelation turn a
//     positive-semi-definite (or indefinite) covariance/correlation matrix
//     into a positive-definite one. The ridge is sized from the smallest
//     eigenvalue and confirmed by Cholesky.
//   - Statistics: CenterColumns, Covariance, Correlation over the columns of
//     a data matrix.
//
// Determinism:
//
//	Every kernel uses fixed i→j→k loop orders and never iterates maps, so
//	identical inputs produce bit-identical outputs.
//
// Errors:
//
//	All failures are reported through the sentinels in errors.go, wrapped with
//	an operation tag ("Cholesky: matrix: not positive definite"). Match them
//	with errors.Is.
//
// Quick example:
//
//	cov, _, _ := matrix.Covariance(X)
//	pd, _, _ := matrix.Regularize(cov, matrix.DefaultRidge)
//	L, _ := matrix.Cholesky(pd)
//	x, _ := matrix.MatVec(L, z) // correlated draw before adding the mean
package matrix
