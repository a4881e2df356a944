// SPDX-License-Identifier: MIT

// Package tableio moves tables between the engine and the outside world.
//
// CSV files are read with per-column inference: a column whose observed
// cells all parse as numbers is numeric (a display format "%.Nf" records
// the widest decimal precision seen), one whose cells all parse as calendar
// dates is numeric day counts since 1960-01-01 with format "%td", anything
// else is text. Missing tokens ("", ".", "NA", "NaN" by default) are
// missing in every kind.
//
// A YAML sidecar (Meta) carries what CSV cannot: value labels, display
// formats and role hints. LoadSQL materializes a query result through sqlx
// with the same inference.
//
// Writers render day counts back as ISO dates and decimal columns at their
// recorded precision.
package tableio
