// SPDX-License-Identifier: MIT

package table

import "errors"

var (
	// ErrLengthMismatch is returned when columns of one table differ in length.
	ErrLengthMismatch = errors.New("table: column length mismatch")

	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("table: duplicate column name")

	// ErrEmptyName is returned for a column without a name.
	ErrEmptyName = errors.New("table: empty column name")

	// ErrUnknownColumn is returned when a named column does not exist.
	ErrUnknownColumn = errors.New("table: unknown column")

	// ErrBadKey is returned when a key cannot be stored in a numeric column.
	ErrBadKey = errors.New("table: key is not numeric")

	// ErrUnknownRole is returned by ParseRole for an unrecognized name.
	ErrUnknownRole = errors.New("table: unknown role")
)
