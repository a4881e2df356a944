// SPDX-License-Identifier: MIT

// Package diagnostics restores source metadata on a synthetic table and
// compares the two tables column by column.
//
// Reports carry yaml tags so collaborators can persist them as they are.
package diagnostics
