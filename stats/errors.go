// SPDX-License-Identifier: MIT

package stats

import "errors"

var (
	// ErrEmpty is returned when a statistic needs at least one finite observation.
	ErrEmpty = errors.New("stats: no observations")

	// ErrLengthMismatch indicates paired slices of different lengths.
	ErrLengthMismatch = errors.New("stats: length mismatch")

	// ErrDegenerate signals a regression whose normal equations cannot be
	// solved (collinear predictors, too few rows, constant response).
	ErrDegenerate = errors.New("stats: degenerate regression")
)
