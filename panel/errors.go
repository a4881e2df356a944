// SPDX-License-Identifier: MIT

package panel

import "errors"

var (
	// ErrNoUnits is returned when the key column has no observed values.
	ErrNoUnits = errors.New("panel: key column has no observed units")

	// ErrUnknownKey is returned when the key column is not in the table.
	ErrUnknownKey = errors.New("panel: unknown key column")

	// ErrUnknownMode is returned for an unrecognized regeneration mode.
	ErrUnknownMode = errors.New("panel: unknown regeneration mode")

	// ErrNoTimeColumn is returned by Trend when no time-like column is found.
	ErrNoTimeColumn = errors.New("panel: no time-like column")
)
