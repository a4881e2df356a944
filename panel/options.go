// SPDX-License-Identifier: MIT
// Package: synthdata/panel
//
// options.go — functional options for the row-structure modeler.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//   • Fit applies options in order; later options win.
//
// Deterministic defaults:
//   • mode        = ModeExact
//   • indexColumn = "" (no within-unit index column)
//   • logger      = zap.NewNop()

package panel

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Mode selects how synthetic unit sizes are drawn.
type Mode int

const (
	ModeExact Mode = iota + 1
	ModeEmpirical
	ModeParametric
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModeEmpirical:
		return "empirical"
	case ModeParametric:
		return "parametric"
	}

	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode maps a name to a Mode; "" is ModeExact.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact":
		return ModeExact, nil
	case "empirical":
		return ModeEmpirical, nil
	case "parametric", "poisson", "negbin":
		return ModeParametric, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownMode)
}

// Option customizes a Model.
type Option func(*config)

type config struct {
	mode        Mode
	indexColumn string
	logger      *zap.Logger
}

func newConfig(opts ...Option) config {
	c := config{mode: ModeExact, logger: zap.NewNop()}
	for _, o := range opts {
		o(&c)
	}

	return c
}

// WithMode sets the regeneration mode.
// Panics on an unknown mode.
func WithMode(m Mode) Option {
	if m < ModeExact || m > ModeParametric {
		panic(fmt.Sprintf("panel: WithMode(%d): unknown mode", int(m)))
	}

	return func(c *config) { c.mode = m }
}

// WithIndexColumn adds a 1-based within-unit row index column named name.
// Panics on an empty name.
func WithIndexColumn(name string) Option {
	if strings.TrimSpace(name) == "" {
		panic("panel: WithIndexColumn: empty name")
	}

	return func(c *config) { c.indexColumn = name }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("panel: WithLogger(nil)")
	}

	return func(c *config) { c.logger = l }
}
