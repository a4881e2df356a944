// SPDX-License-Identifier: MIT

package constraint

import "errors"

var (
	// ErrSyntax is returned for a constraint or bounds string that does not parse.
	ErrSyntax = errors.New("constraint: syntax error")

	// ErrBadBounds is returned when lo > hi.
	ErrBadBounds = errors.New("constraint: lower bound above upper bound")

	// ErrUnknownColumn is returned when a constraint names a column not in the table.
	ErrUnknownColumn = errors.New("constraint: unknown column")

	// ErrNotNumeric is returned when a constraint names a text column.
	ErrNotNumeric = errors.New("constraint: column is not numeric")
)
