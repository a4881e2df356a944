// SPDX-License-Identifier: MIT

package generate

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/synthdata/detect"
	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
)

// marginalTable returns the (pooled) frequency table of a discrete column.
func marginalTable(c *table.Column, minCell float64) *stats.FreqTable {
	ft := stats.NewFreqTable(c.Keys())
	if minCell > 0 {
		ft = ft.Pool(minCell)
	}

	return ft
}

// fillDiscrete samples every row of dst from the marginal of src.
// A column without observed values stays missing.
func fillDiscrete(src, dst *table.Column, minCell float64, r *rand.Rand) {
	ft := marginalTable(src, minCell)
	if ft.Len() == 0 {
		return
	}
	for i := 0; i < dst.Len(); i++ {
		_ = dst.SetKey(i, ft.Sample(r))
	}
}

// fillJoint samples (A, B) pairs from the association's joint table.
func fillJoint(a detect.Association, out *table.Table, minCell float64, r *rand.Rand) error {
	if a.Joint == nil || a.Joint.Len() == 0 {
		return fmt.Errorf("%s×%s: %w", a.A, a.B, ErrEmptyJointTable)
	}
	ca, okA := out.Column(a.A)
	cb, okB := out.Column(a.B)
	if !okA || !okB {
		return fmt.Errorf("generate: %s×%s: %w", a.A, a.B, table.ErrUnknownColumn)
	}
	ft := a.Joint
	if minCell > 0 {
		ft = ft.Pool(minCell)
	}
	for i := 0; i < out.NumRows(); i++ {
		ka, kb := detect.SplitJointKey(ft.Sample(r))
		_ = ca.SetKey(i, ka)
		_ = cb.SetKey(i, kb)
	}

	return nil
}

// fillAllDiscrete fills every categorical, string and associated column.
func fillAllDiscrete(plan *Plan, out *table.Table, minCell float64, r *rand.Rand) error {
	for _, group := range [][]string{plan.Categorical, plan.Strings} {
		for _, name := range group {
			dst, _ := out.Column(name)
			fillDiscrete(plan.src(name), dst, minCell, r)
		}
	}
	for _, a := range plan.Associations {
		if err := fillJoint(a, out, minCell, r); err != nil {
			return err
		}
	}

	return nil
}

// fillNormal draws from a normal fit of the observed values. Dates are
// rounded to whole days and clipped to the observed range.
func fillNormal(dst *table.Column, f observedFit, date bool, r *rand.Rand) {
	if f.n == 0 {
		return
	}
	for i := 0; i < dst.Len(); i++ {
		v := f.mean + f.sd*r.NormFloat64()
		if date {
			v = clampRound(v, f.min, f.max)
		}
		dst.Num[i] = v
	}
}

type observedFit struct {
	n        int
	mean, sd float64
	min, max float64
}

func fitObserved(c *table.Column) observedFit {
	vals := stats.Finite(c.Num)
	if len(vals) == 0 {
		return observedFit{}
	}
	m, sd, _ := stats.MeanSD(vals)
	lo, hi, _ := stats.MinMax(vals)

	return observedFit{n: len(vals), mean: m, sd: sd, min: lo, max: hi}
}

func clampRound(v, lo, hi float64) float64 {
	return clamp(math.Round(v), lo, hi)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
