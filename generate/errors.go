// SPDX-License-Identifier: MIT

package generate

import "errors"

var (
	// ErrEmptyJointTable is returned when an associated pair has no row where
	// both columns are observed.
	ErrEmptyJointTable = errors.New("generate: joint categorical group has no observed combinations")

	// ErrUnknownMethod is returned for an unrecognized method name or value.
	ErrUnknownMethod = errors.New("generate: unknown method")

	// ErrBadRowCount is returned when n ≤ 0.
	ErrBadRowCount = errors.New("generate: row count must be > 0")

	// ErrNilPlan is returned when Generate receives no plan or source.
	ErrNilPlan = errors.New("generate: nil plan")
)
