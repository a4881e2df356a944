// SPDX-License-Identifier: MIT

// Package generate implements the interchangeable generation strategies.
//
// A Strategy turns a Plan (classified source columns plus detector output)
// into a complete synthetic table of exactly n rows. Strategies never emit
// missing values for a column that has observed values; missingness,
// excluded and identifier columns, derived-column reconstruction and
// constraints are the orchestrator's job.
//
// Strategies:
//
//   - Parametric: multivariate normal through a Cholesky factor of the
//     (ridge-regularized) correlation matrix, scaled back by each column's
//     mean and standard deviation.
//   - Empirical: Gaussian copula with empirical-CDF marginals; values never
//     leave the observed [min, max], optional jitter of range/(2·n_obs).
//   - Adaptive: one Gaussian copula where normal-like columns keep a normal
//     marginal and non-normal columns use their ECDF.
//   - Sequential: each numeric column regressed on the numeric columns
//     generated before it; discrete columns from their marginals.
//   - Bootstrap: rows resampled with replacement plus Gaussian noise and
//     random categorical perturbation.
//   - Permutation: every column independently shuffled (null baseline).
//
// Discrete columns are sampled by inverse CDF from frequency tables,
// optionally pooled to a minimum cell count. Associated pairs are sampled
// from their joint table.
package generate
