// SPDX-License-Identifier: MIT

package privacy

import "errors"

var (
	// ErrUnknownColumn is returned when a column is missing from either table.
	ErrUnknownColumn = errors.New("privacy: unknown column")

	// ErrNoColumns is returned when there is nothing to compare.
	ErrNoColumns = errors.New("privacy: no comparable columns")

	// ErrEmpty is returned when the source or synthetic table has no rows.
	ErrEmpty = errors.New("privacy: empty table")

	// ErrUnknownMode is returned for an unrecognized missingness mode.
	ErrUnknownMode = errors.New("privacy: unknown missingness mode")
)
