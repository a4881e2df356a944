// SPDX-License-Identifier: MIT

// Package detect finds relationships that must survive synthesis:
// near-exact linear reconstructions of one continuous column from others
// (derived columns), and strongly associated categorical pairs that are
// sampled jointly.
//
// Results are plain values threaded through the pipeline; nothing is kept
// between runs.
package detect

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
)

// Derived is a linear reconstruction formula Target = Intercept + Σ Coef[i]·Bases[i].
type Derived struct {
	Target    string
	Bases     []string
	Coef      []float64
	Intercept float64
	R2        float64
	// order is the target's position in the searched column list.
	order int
}

// Eval applies the formula to base values (same order as Bases).
// Any NaN base gives NaN.
func (d Derived) Eval(x []float64) float64 {
	v := d.Intercept
	for i, b := range d.Coef {
		if math.IsNaN(x[i]) {
			return math.NaN()
		}
		v += b * x[i]
	}

	return v
}

// Reconstruct overwrites the target column of t with the formula applied to
// its base columns. Errors: table.ErrUnknownColumn.
func (d Derived) Reconstruct(t *table.Table) error {
	target, ok := t.Column(d.Target)
	if !ok {
		return unknown(d.Target)
	}
	bases := make([]*table.Column, len(d.Bases))
	for i, b := range d.Bases {
		c, ok := t.Column(b)
		if !ok {
			return unknown(b)
		}
		bases[i] = c
	}
	x := make([]float64, len(bases))
	for r := 0; r < t.NumRows(); r++ {
		for i, c := range bases {
			x[i] = c.Num[r]
		}
		target.Num[r] = d.Eval(x)
	}

	return nil
}

// FindDerived searches columns (continuous, in declaration order) for
// derived columns.
//
// Implementation:
//   - Candidates are visited from last to first.
//   - Predictors are earlier columns that are neither derived nor capped out,
//     limited to the maxPredictors nearest ones.
//   - Subsets of size 1..maxSubset are tried in lexicographic order; the first
//     fit with R² above the threshold wins.
//   - A column already used as a base is never marked derived, so formulas do
//     not chain.
//   - At least two columns stay un-derived (one when only two are searched).
//
// Returns the formulas sorted by target declaration order, which is also a
// valid reconstruction order.
func FindDerived(t *table.Table, columns []string, opts ...Option) []Derived {
	cfg := newConfig(opts...)
	cols := make([]*table.Column, 0, len(columns))
	for _, n := range columns {
		if c, ok := t.Column(n); ok && c.Kind == table.KindNumeric {
			cols = append(cols, c)
		}
	}
	minBases := 2
	if len(cols) <= 2 {
		minBases = 1
	}

	derived := make(map[int]bool)
	locked := make(map[int]bool)
	var out []Derived
	for ci := len(cols) - 1; ci > 0; ci-- {
		if len(out) >= cfg.maxDerived || len(cols)-len(out)-1 < minBases {
			break
		}
		if locked[ci] {
			continue
		}
		var preds []int
		for pi := ci - 1; pi >= 0 && len(preds) < cfg.maxPredictors; pi-- {
			if !derived[pi] {
				preds = append(preds, pi)
			}
		}
		sort.Ints(preds)

		d, ok := searchSubsets(cols, ci, preds, cfg)
		if !ok {
			continue
		}
		derived[ci] = true
		for _, b := range d.Bases {
			locked[indexOf(cols, b)] = true
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].order < out[j].order })

	return out
}

func searchSubsets(cols []*table.Column, target int, preds []int, cfg config) (Derived, bool) {
	y := cols[target].Num
	for k := 1; k <= cfg.maxSubset && k <= len(preds); k++ {
		found := Derived{}
		ok := false
		combinations(len(preds), k, func(idx []int) bool {
			xs := make([][]float64, k)
			for i, p := range idx {
				xs[i] = cols[preds[p]].Num
			}
			fit, err := stats.OLS(xs, y)
			if err != nil || fit.N < cfg.minCases || fit.R2 <= cfg.r2 {
				return true
			}
			found = Derived{Target: cols[target].Name, Intercept: round(fit.Intercept, cfg.sigDigits), R2: fit.R2, order: target}
			for i, p := range idx {
				found.Bases = append(found.Bases, cols[preds[p]].Name)
				found.Coef = append(found.Coef, round(fit.Coef[i], cfg.sigDigits))
			}
			ok = true

			return false
		})
		if ok {
			return found, true
		}
	}

	return Derived{}, false
}

// combinations calls fn with every k-subset of 0..n-1 in lexicographic order
// until fn returns false.
func combinations(n, k int, fn func([]int) bool) {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !fn(idx) {
			return
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// round keeps sig significant digits.
func round(v float64, sig int) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	places := sig - 1 - int(math.Floor(math.Log10(math.Abs(v))))

	return decimal.NewFromFloat(v).Round(int32(places)).InexactFloat64()
}

func indexOf(cols []*table.Column, name string) int {
	for i, c := range cols {
		if c.Name == name {
			return i
		}
	}

	return -1
}
