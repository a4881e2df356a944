// SPDX-License-Identifier: MIT

// Package synth is the synthesis pipeline.
//
// Engine.Run takes a materialized source table and a Config and returns a
// synthetic table of exactly Config.N rows plus what was learned on the way:
//
//	validate → drop skipped columns → classify → trim → profile → detect
//	→ generate → round integers → panel expansion / identifiers
//	→ constraints → reconstruct derived columns → missingness
//	→ restore metadata → diagnostics → prefix
//
// Each run works on its own copy of the source and its own random stream;
// nothing is shared between runs. RunReplicates fans replicates out over an
// errgroup, replicate k seeded with Seed+k.
//
// Statistical degeneracies never fail a run: they are recovered locally and
// reported in Result.Warnings and on the logger.
package synth
