// SPDX-License-Identifier: MIT

// Package constraint enforces value constraints on a synthetic table.
//
// Apply runs, in order:
//
//  1. Bounds: clip listed columns to explicit [lo, hi].
//  2. No-extreme buffering: clip numeric columns to the observed range
//     shrunk by a fraction of itself at both ends, so no synthetic value
//     equals a real record's extreme.
//  3. Auto constraints: columns never negative in the source get "x >= 0".
//  4. User constraints: "x >= k", "x <= k", "x > k", "x < k", "a < b" and
//     friends, re-checked and repaired (clip or swap) until satisfied or the
//     iteration budget is spent. Leftover violations are reported, not fatal.
//  5. Date ordering: listed date columns sorted within each row.
//
// Missing cells never violate a constraint. Skipped columns (derived targets
// reconstructed later) are never touched.
package constraint
