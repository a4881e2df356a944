// SPDX-License-Identifier: MIT

// Package config loads a synthesis run description from a YAML file and
// SYNTH_* environment variables and turns it into a synth.Config.
//
// Environment variables override file values. Every key is optional; an
// absent key keeps the synth.DefaultConfig value. Keys whose default is
// "on" or non-zero (correlation, detect_derived, noise_fraction, ...) are
// file-only, so that an explicit false or 0 can be told apart from absence.
//
// Example:
//
//	n: 500
//	method: parametric
//	seed: 42
//	ids: [pid]
//	roles: {sex: categorical, visit: integer}
//	panel: {enabled: true, key: pid, mode: empirical}
//	constraints: ["income >= 0", "end > start"]
//	bounds: "age 0 120, income . 1e6"
package config
