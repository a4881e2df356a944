// SPDX-License-Identifier: MIT

// Package panel models the row structure of identifier-keyed (panel,
// longitudinal) data and regenerates it for synthetic output.
//
// A Model records how many rows each source unit has. Expand draws a set of
// synthetic unit sizes whose total is exactly the synthetic row count and
// attaches sequential unit identifiers 1..units plus an optional within-unit
// row index.
//
// Regeneration modes:
//
//   - ModeExact: source unit sizes are dealt out in shuffled passes without
//     replacement, so a target equal to the source total reproduces the
//     source multiset of sizes.
//   - ModeEmpirical: sizes drawn independently with replacement from the
//     observed sizes.
//   - ModeParametric: Poisson(mean), or negative binomial when the variance
//     exceeds the mean, clipped to the observed [min, max] and floored at 1.
//
// Two optional layers run after expansion. RandomEffects injects a per-unit
// normal effect sized by each column's source ICC. Trend adds a per-unit
// linear slope over a time-like column, drawn from the source's per-unit
// slope distribution.
package panel
