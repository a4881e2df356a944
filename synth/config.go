// SPDX-License-Identifier: MIT

package synth

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/katalvlaran/synthdata/constraint"
	"github.com/katalvlaran/synthdata/generate"
	"github.com/katalvlaran/synthdata/panel"
	"github.com/katalvlaran/synthdata/privacy"
	"github.com/katalvlaran/synthdata/table"
)

// PanelConfig switches on row-structure modelling.
type PanelConfig struct {
	Enabled bool
	// Key is the unit identifier; "" uses the first of Config.IDs.
	Key  string
	Mode panel.Mode
	// IndexColumn, if set, receives a 1-based within-unit row index.
	IndexColumn   string
	RandomEffects bool
	Trend         bool
	// TimeVar is the trend's time column; "" detects one.
	TimeVar string
}

// Config is the input of one synthesis run. Start from DefaultConfig.
type Config struct {
	// N is the synthetic row count; 0 uses the source row count.
	N      int
	Method generate.Method

	Roles map[string]table.Role // per-column role overrides
	Skip  []string              // columns dropped before anything else
	IDs   []string              // identifier columns, regenerated not modelled

	Panel PanelConfig

	Constraints     []string
	Bounds          []constraint.Bound
	AutoConstraints bool
	// NoExtreme is the range fraction trimmed at both ends; 0 (the default)
	// disables.
	NoExtreme     float64
	DateOrder     []string
	AutoDateOrder bool
	MaxIterations int

	MinCellCount   float64
	TrimPercentile float64

	PreserveCorrelation bool
	Smooth              bool
	NoiseFraction       float64
	PerturbProb         float64

	DetectDerived      bool
	DetectAssociations bool

	Missing privacy.MissingMode

	Compare          bool
	PrivacyCheck     bool
	PrivacySample    int
	PrivacyThreshold float64

	Seed       int64
	Replicates int
	Prefix     string
}

// DefaultConfig returns the documented defaults: adaptive method, all
// detection on, rate missingness, one replicate. The no-extreme buffer is
// off; set NoExtreme (constraint.DefaultNoExtreme is the usual 5 %) to keep
// synthetic values away from the observed extremes.
func DefaultConfig() Config {
	g := generate.DefaultOptions()

	return Config{
		Method:              generate.MethodAdaptive,
		Panel:               PanelConfig{Mode: panel.ModeExact},
		AutoConstraints:     true,
		MaxIterations:       100,
		PreserveCorrelation: g.PreserveCorrelation,
		Smooth:              g.Smooth,
		NoiseFraction:       g.NoiseFraction,
		PerturbProb:         g.PerturbProb,
		DetectDerived:       true,
		DetectAssociations:  true,
		Missing:             privacy.MissingRate,
		PrivacySample:       privacy.DefaultSample,
		PrivacyThreshold:    privacy.DefaultThreshold,
		Replicates:          1,
	}
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var err error
	bad := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrBadParameter))
	}

	if c.N < 0 {
		bad("n=%d", c.N)
	}
	if _, e := generate.New(c.Method, generate.DefaultOptions()); e != nil {
		bad("method %v", c.Method)
	}
	if c.Replicates < 1 {
		bad("replicates=%d", c.Replicates)
	}
	if c.NoExtreme < 0 || c.NoExtreme >= 0.5 {
		bad("no-extreme fraction %g", c.NoExtreme)
	}
	if c.MaxIterations < 1 {
		bad("max iterations %d", c.MaxIterations)
	}
	if c.MinCellCount < 0 {
		bad("min cell count %g", c.MinCellCount)
	}
	if c.TrimPercentile < 0 || c.TrimPercentile >= 50 {
		bad("trim percentile %g", c.TrimPercentile)
	}
	if c.NoiseFraction < 0 {
		bad("noise fraction %g", c.NoiseFraction)
	}
	if c.PerturbProb < 0 || c.PerturbProb > 1 {
		bad("perturb probability %g", c.PerturbProb)
	}
	if c.PrivacySample < 0 {
		bad("privacy sample %d", c.PrivacySample)
	}
	if c.PrivacyThreshold < 0 || c.PrivacyThreshold > 1 {
		bad("privacy threshold %g", c.PrivacyThreshold)
	}
	if c.Missing < privacy.MissingNone || c.Missing > privacy.MissingPattern {
		bad("missingness mode %v", c.Missing)
	}
	if c.Panel.Enabled {
		if c.panelKey() == "" {
			bad("panel mode needs a key or an identifier column")
		}
		if c.Panel.Mode < panel.ModeExact || c.Panel.Mode > panel.ModeParametric {
			bad("panel mode %v", c.Panel.Mode)
		}
	}
	for _, b := range c.Bounds {
		if b.Lo > b.Hi {
			bad("bounds %s [%g, %g]", b.Column, b.Lo, b.Hi)
		}
	}
	if _, e := constraint.ParseAll(c.Constraints); e != nil {
		err = multierr.Append(err, e)
	}

	return multierr.Append(err, c.validateRoles())
}

// validateRoles rejects a column that is both skipped and an identifier, or
// whose override disagrees with its skip or identifier listing.
func (c Config) validateRoles() error {
	var err error
	skipped := make(map[string]bool, len(c.Skip))
	for _, s := range c.Skip {
		skipped[s] = true
	}
	for _, id := range c.IDs {
		if skipped[id] {
			err = multierr.Append(err, fmt.Errorf("%q skipped and identifier: %w", id, ErrConflictingRole))
		}
		if r, ok := c.Roles[id]; ok && r != table.RoleIdentifier {
			err = multierr.Append(err, fmt.Errorf("%q identifier overridden as %v: %w", id, r, ErrConflictingRole))
		}
	}
	for name, r := range c.Roles {
		if skipped[name] {
			err = multierr.Append(err, fmt.Errorf("%q skipped and overridden as %v: %w", name, r, ErrConflictingRole))
		}
	}

	return err
}

func (c Config) panelKey() string {
	if c.Panel.Key != "" {
		return c.Panel.Key
	}
	if len(c.IDs) > 0 {
		return c.IDs[0]
	}

	return ""
}

// ResolveMethod turns a list of selected method names (flags, config keys)
// into one Method. Repeats of the same method are fine; two different ones
// are rejected. An empty list returns fallback.
//
// Errors: ErrConflictingMethod, generate.ErrUnknownMethod.
func ResolveMethod(fallback generate.Method, names ...string) (generate.Method, error) {
	chosen := generate.Method(0)
	var picked []string
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		m, err := generate.ParseMethod(name)
		if err != nil {
			return 0, err
		}
		if chosen != 0 && m != chosen {
			return 0, fmt.Errorf("%s: %w", strings.Join(append(picked, name), ", "), ErrConflictingMethod)
		}
		chosen = m
		picked = append(picked, name)
	}
	if chosen == 0 {
		return fallback, nil
	}

	return chosen, nil
}
