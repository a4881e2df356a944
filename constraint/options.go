// SPDX-License-Identifier: MIT
// Package: synthdata/constraint
//
// options.go — functional options for Apply.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//   • Apply applies options in order; later options win.
//
// Deterministic defaults:
//   • maxIterations = 100
//   • noExtreme     = 0 (buffering off; DefaultNoExtreme when switched on)
//   • auto          = true
//   • logger        = zap.NewNop()

package constraint

import (
	"fmt"

	"go.uber.org/zap"
)

const defaultMaxIterations = 100

// DefaultNoExtreme is the conventional no-extreme fraction: 5 % of the
// observed range at each end.
const DefaultNoExtreme = 0.05

// Option customizes Apply.
type Option func(*config)

type config struct {
	maxIterations int
	noExtreme     float64
	auto          bool
	skip          map[string]bool
	logger        *zap.Logger
}

func newConfig(opts ...Option) config {
	c := config{
		maxIterations: defaultMaxIterations,
		auto:          true,
		skip:          map[string]bool{},
		logger:        zap.NewNop(),
	}
	for _, o := range opts {
		o(&c)
	}

	return c
}

// WithMaxIterations bounds the user-constraint repair loop.
// Panics if n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("constraint: WithMaxIterations(%d): need ≥ 1", n))
	}

	return func(c *config) { c.maxIterations = n }
}

// WithNoExtreme sets the range fraction trimmed at each end; 0 disables
// buffering. Panics outside [0, 0.5).
func WithNoExtreme(frac float64) Option {
	if frac < 0 || frac >= 0.5 {
		panic(fmt.Sprintf("constraint: WithNoExtreme(%g): need 0 ≤ frac < 0.5", frac))
	}

	return func(c *config) { c.noExtreme = frac }
}

// WithAuto toggles auto-detected constraints.
func WithAuto(on bool) Option {
	return func(c *config) { c.auto = on }
}

// WithSkip excludes columns from every step.
func WithSkip(names ...string) Option {
	return func(c *config) {
		for _, n := range names {
			c.skip[n] = true
		}
	}
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("constraint: WithLogger(nil)")
	}

	return func(c *config) { c.logger = l }
}
