// SPDX-License-Identifier: MIT

package synth

import "errors"

var (
	// ErrEmptySource is returned for a nil source or one without rows or columns.
	ErrEmptySource = errors.New("synth: empty source table")

	// ErrNoColumns is returned when nothing is left to synthesize after
	// removing skipped, identifier and excluded columns.
	ErrNoColumns = errors.New("synth: no columns left to synthesize")

	// ErrConflictingMethod is returned when more than one method is selected.
	ErrConflictingMethod = errors.New("synth: conflicting method selection")

	// ErrConflictingRole is returned when a column is given incompatible roles.
	ErrConflictingRole = errors.New("synth: conflicting role overrides")

	// ErrBadParameter is returned for a non-positive or out-of-range parameter.
	ErrBadParameter = errors.New("synth: invalid parameter")
)
