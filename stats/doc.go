// SPDX-License-Identifier: MIT

// Package stats holds the small statistical toolbox shared by the
// synthesis packages.
//
// What is inside:
//
//   - Descriptives: Finite, MeanSD, Moments (skewness and non-excess
//     kurtosis), Quantile with linear interpolation, Pearson, Winsorize.
//   - ECDF: sorted sample with plotting positions (i-0.5)/n and an
//     interpolating inverse that never leaves [min, max].
//   - Normal distribution: NormalCDF and NormalQuantile.
//   - FreqTable: discrete frequency table with rare-cell pooling and
//     O(log k) inverse-CDF sampling.
//   - OLS: multiple linear regression (normal equations solved by Cholesky).
//   - Association: CramersV over two categorical slices, ICC from one-way ANOVA.
//
// Missing values:
//
//	Numeric inputs use NaN for missing; helpers either skip NaN or document
//	that they require complete data. Text inputs use "".
package stats
