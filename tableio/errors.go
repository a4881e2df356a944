// SPDX-License-Identifier: MIT

package tableio

import "errors"

var (
	// ErrNoHeader is returned for an input without a header record.
	ErrNoHeader = errors.New("tableio: missing header")

	// ErrDuplicateColumn is returned when a header names a column twice.
	ErrDuplicateColumn = errors.New("tableio: duplicate column name")

	// ErrRaggedRow is returned when a record has the wrong number of fields.
	ErrRaggedRow = errors.New("tableio: record length differs from header")

	// ErrUnknownColumn is returned when metadata names a column the table lacks.
	ErrUnknownColumn = errors.New("tableio: unknown column")

	// ErrBadLabel is returned for a value-label code that is not a number.
	ErrBadLabel = errors.New("tableio: value-label code is not numeric")

	// ErrNoTables is returned when a writer is handed nothing to write.
	ErrNoTables = errors.New("tableio: no tables to write")
)
