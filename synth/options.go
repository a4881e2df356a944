// SPDX-License-Identifier: MIT
// Package: synthdata/synth
//
// options.go — functional options for the Engine.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Run never panics on configuration; it returns errors.
//
// Deterministic defaults:
//   • logger      = zap.NewNop()
//   • parallelism = runtime.GOMAXPROCS(0) replicates at a time

package synth

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("synth: WithLogger(nil)")
	}

	return func(e *Engine) { e.logger = l }
}

// WithParallelism bounds how many replicates run at once. Panics if n < 1.
func WithParallelism(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("synth: WithParallelism(%d): need ≥ 1", n))
	}

	return func(e *Engine) { e.parallelism = n }
}

func defaultParallelism() int { return runtime.GOMAXPROCS(0) }
