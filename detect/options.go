// SPDX-License-Identifier: MIT
// Package: synthdata/detect
//
// options.go — functional options for the relationship detector.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     The search functions themselves never panic.
//   • newConfig applies options in order; later options win.
//
// Deterministic defaults:
//   • maxDerived    = 10
//   • r2            = 0.9999
//   • maxSubset     = 3
//   • maxPredictors = 20
//   • minCases      = 10
//   • cramerV       = 0.5
//   • sigDigits     = 10

package detect

import "fmt"

const (
	defaultMaxDerived    = 10
	defaultR2            = 0.9999
	defaultMaxSubset     = 3
	defaultMaxPredictors = 20
	defaultMinCases      = 10
	defaultCramerV       = 0.5
	defaultSigDigits     = 10
)

// Option customizes a search.
type Option func(*config)

type config struct {
	maxDerived    int
	r2            float64
	maxSubset     int
	maxPredictors int
	minCases      int
	cramerV       float64
	sigDigits     int
}

func newConfig(opts ...Option) config {
	c := config{
		maxDerived:    defaultMaxDerived,
		r2:            defaultR2,
		maxSubset:     defaultMaxSubset,
		maxPredictors: defaultMaxPredictors,
		minCases:      defaultMinCases,
		cramerV:       defaultCramerV,
		sigDigits:     defaultSigDigits,
	}
	for _, o := range opts {
		o(&c)
	}

	return c
}

// WithMaxDerived caps the number of derived columns accepted. Panics if n < 0.
func WithMaxDerived(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("detect: WithMaxDerived(%d)", n))
	}
	return func(c *config) { c.maxDerived = n }
}

// WithR2 sets the R² a reconstruction must exceed. Panics outside (0, 1).
func WithR2(r2 float64) Option {
	if r2 <= 0 || r2 >= 1 {
		panic(fmt.Sprintf("detect: WithR2(%g)", r2))
	}
	return func(c *config) { c.r2 = r2 }
}

// WithMaxSubset sets the largest predictor subset tried. Panics outside [1, 5].
func WithMaxSubset(k int) Option {
	if k < 1 || k > 5 {
		panic(fmt.Sprintf("detect: WithMaxSubset(%d)", k))
	}
	return func(c *config) { c.maxSubset = k }
}

// WithMaxPredictors limits predictors to the nearest preceding columns.
// Panics if n < 1.
func WithMaxPredictors(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("detect: WithMaxPredictors(%d)", n))
	}
	return func(c *config) { c.maxPredictors = n }
}

// WithCramerV sets the association threshold. Panics outside [0, 1).
func WithCramerV(v float64) Option {
	if v < 0 || v >= 1 {
		panic(fmt.Sprintf("detect: WithCramerV(%g)", v))
	}
	return func(c *config) { c.cramerV = v }
}
