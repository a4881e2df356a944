// SPDX-License-Identifier: MIT

// Package table is the in-memory column store exchanged between the loaders,
// the synthesis engine and the writers.
//
// A Table is an ordered list of equally long Columns. Rows have no identity;
// the engine only ever looks at column-wise statistics.
//
// Storage:
//
//   - KindNumeric columns keep float64 values, NaN marks missing. Dates are
//     numeric day counts since 1970-01-01 with a "%td" display format.
//   - KindText columns keep strings, "" marks missing.
//
// Discrete values of either kind are addressed through Column.Key / SetKey,
// so frequency tables work the same way for numbers and text.
package table
