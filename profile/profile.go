// SPDX-License-Identifier: MIT

// Package profile computes per-column descriptive profiles and splits the
// continuous columns into empirically and parametrically synthesized sets.
//
// A column is non-normal when |skewness| > 1, |kurtosis - 3| > 2, or every
// value lies in [0, 1]. Columns with fewer than MinObservations values are
// always treated as normal-like.
package profile

import (
	"math"

	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
)

const (
	// MinObservations is the smallest sample whose shape is judged.
	MinObservations = 20
	// SkewLimit bounds |skewness| for normal-like columns.
	SkewLimit = 1.0
	// ExcessKurtosisLimit bounds |kurtosis - 3| for normal-like columns.
	ExcessKurtosisLimit = 2.0
)

// Reason says why a column was sent to the empirical set.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonSkewed   Reason = "skewed"
	ReasonKurtotic Reason = "heavy or light tails"
	ReasonUnit     Reason = "bounded in [0,1]"
)

// VariableProfile describes one numeric column. It is computed once from the
// source and not modified afterwards.
type VariableProfile struct {
	Name        string
	N           int // non-missing observations
	Mean        float64
	SD          float64
	Min         float64
	Max         float64
	Skewness    float64
	Kurtosis    float64
	Unique      int
	UniqueRatio float64
	MissingRate float64

	NonNormal bool
	Reason    Reason
}

// Range returns Max - Min.
func (p *VariableProfile) Range() float64 { return p.Max - p.Min }

// NonNegative reports whether every observed value is ≥ 0.
func (p *VariableProfile) NonNegative() bool { return p.N > 0 && p.Min >= 0 }

// Of profiles a numeric column. An all-missing column gets N = 0 and zero moments.
func Of(c *table.Column) *VariableProfile {
	p := &VariableProfile{Name: c.Name, MissingRate: c.MissingRate(), Unique: c.UniqueCount()}
	if c.Kind != table.KindNumeric {
		return p
	}
	vals := stats.Finite(c.Num)
	p.N = len(vals)
	if p.N == 0 {
		return p
	}
	p.UniqueRatio = float64(p.Unique) / float64(p.N)
	p.Mean, p.SD, _ = stats.MeanSD(vals)
	p.Min, p.Max, _ = stats.MinMax(vals)
	p.Skewness, p.Kurtosis, _ = stats.Moments(vals)

	if p.N < MinObservations {
		return p
	}
	switch {
	case math.Abs(p.Skewness) > SkewLimit:
		p.NonNormal, p.Reason = true, ReasonSkewed
	case math.Abs(p.Kurtosis-3) > ExcessKurtosisLimit:
		p.NonNormal, p.Reason = true, ReasonKurtotic
	case p.Min >= 0 && p.Max <= 1:
		p.NonNormal, p.Reason = true, ReasonUnit
	}

	return p
}

// Analysis is the distribution analyzer output over a set of continuous columns.
type Analysis struct {
	Profiles   map[string]*VariableProfile
	Empirical  []string // non-normal, in input order
	Parametric []string // normal-like, in input order
}

// Analyze profiles the named columns of t and partitions them.
// Unknown names are skipped.
func Analyze(t *table.Table, names []string) *Analysis {
	a := &Analysis{Profiles: make(map[string]*VariableProfile, len(names))}
	for _, n := range names {
		c, ok := t.Column(n)
		if !ok {
			continue
		}
		p := Of(c)
		a.Profiles[n] = p
		if p.NonNormal {
			a.Empirical = append(a.Empirical, n)
		} else {
			a.Parametric = append(a.Parametric, n)
		}
	}

	return a
}
