// SPDX-License-Identifier: MIT
// Package: synthdata/tableio
//
// options.go — functional options for the CSV reader.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//
// Deterministic defaults:
//   • delimiter = ',' (LoadCSV switches to '\t' for *.tsv)
//   • missing   = "", ".", "NA", "NaN"
//   • maxRows   = 0 (unlimited)

package tableio

import (
	"fmt"
	"strings"
)

// Option customizes CSV reading.
type Option func(*readConfig)

type readConfig struct {
	delimiter rune
	missing   map[string]bool
	maxRows   int
}

func defaultReadConfig() readConfig {
	return readConfig{
		delimiter: ',',
		missing:   map[string]bool{"": true, ".": true, "NA": true, "NaN": true},
	}
}

// WithDelimiter sets the field separator. Panics on '"', '\r', '\n' or 0.
func WithDelimiter(r rune) Option {
	if r == 0 || r == '"' || r == '\r' || r == '\n' {
		panic(fmt.Sprintf("tableio: WithDelimiter(%q): invalid separator", r))
	}

	return func(c *readConfig) { c.delimiter = r }
}

// WithMissing replaces the missing-value tokens. The empty cell is always
// missing.
func WithMissing(tokens ...string) Option {
	return func(c *readConfig) {
		c.missing = map[string]bool{"": true}
		for _, tok := range tokens {
			c.missing[strings.TrimSpace(tok)] = true
		}
	}
}

// WithMaxRows stops reading after n data records. Panics if n < 0.
func WithMaxRows(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("tableio: WithMaxRows(%d): need ≥ 0", n))
	}

	return func(c *readConfig) { c.maxRows = n }
}
