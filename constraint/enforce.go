// SPDX-License-Identifier: MIT

package constraint

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
)

var inf = math.Inf(1)

// Spec lists what Apply enforces.
type Spec struct {
	Bounds    []Bound
	User      []Constraint
	DateOrder []string // date columns that must be non-decreasing in each row
}

// Report summarizes one Apply call.
type Report struct {
	Bounded    int          // cells changed by explicit bounds
	Buffered   int          // cells changed by no-extreme buffering
	Auto       []Constraint // auto-detected constraints
	Repaired   int          // cells changed by auto and user constraints
	Iterations int          // user-constraint passes
	Violations int          // violations left after the last pass
	DateRows   int          // rows reordered by date ordering
	Warnings   []string
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Apply enforces spec on syn in place. src supplies observed ranges for
// buffering and auto detection.
//
// Errors: ErrUnknownColumn, ErrNotNumeric for constraints or bounds naming
// bad columns.
func Apply(src, syn *table.Table, spec Spec, opts ...Option) (*Report, error) {
	cfg := newConfig(opts...)
	rep := &Report{}

	for _, b := range spec.Bounds {
		if cfg.skip[b.Column] {
			continue
		}
		c, err := numeric(syn, b.Column)
		if err != nil {
			return nil, err
		}
		rep.Bounded += clipColumn(c, b.Lo, b.Hi)
	}

	if cfg.noExtreme > 0 {
		rep.Buffered = Buffer(src, syn, cfg.noExtreme, cfg.skip)
	}

	if cfg.auto {
		rep.Auto = AutoDetect(src, cfg.skip)
		for _, c := range rep.Auto {
			rep.Repaired += repair(syn, c)
		}
	}

	user := make([]Constraint, 0, len(spec.User))
	for _, c := range spec.User {
		if cfg.skip[c.Left] || (c.Column != "" && cfg.skip[c.Column]) {
			rep.warn("%s: names a reconstructed column; skipped", c)
			continue
		}
		if _, err := numeric(syn, c.Left); err != nil {
			return nil, err
		}
		if c.Column != "" {
			if _, err := numeric(syn, c.Column); err != nil {
				return nil, err
			}
		}
		user = append(user, c)
	}
	if len(user) > 0 {
		changed, iters, left := Enforce(syn, user, cfg.maxIterations)
		rep.Repaired += changed
		rep.Iterations, rep.Violations = iters, left
		if left > 0 {
			rep.warn("%d constraint violations remain after %d iterations", left, iters)
			cfg.logger.Warn("constraints not satisfied",
				zap.Int("violations", left),
				zap.Int("iterations", iters),
			)
		}
	}

	if len(spec.DateOrder) > 1 {
		cols := make([]*table.Column, 0, len(spec.DateOrder))
		for _, name := range spec.DateOrder {
			c, err := numeric(syn, name)
			if err != nil {
				return nil, err
			}
			cols = append(cols, c)
		}
		rep.DateRows = SortRows(cols)
	}
	cfg.logger.Debug("constraints applied",
		zap.Int("bounded", rep.Bounded),
		zap.Int("buffered", rep.Buffered),
		zap.Int("auto", len(rep.Auto)),
		zap.Int("repaired", rep.Repaired),
		zap.Int("date_rows", rep.DateRows),
	)

	return rep, nil
}

// Buffer clips every continuous and integer column of syn to the source
// range shrunk by frac·range at both ends. Integer columns use the whole
// numbers inside that interval. Columns with a degenerate range are left
// alone. Returns the number of cells changed.
func Buffer(src, syn *table.Table, frac float64, skip map[string]bool) int {
	changed := 0
	for _, c := range syn.Columns() {
		if skip[c.Name] || !c.Role.IsContinuous() {
			continue
		}
		sc, ok := src.Column(c.Name)
		if !ok || sc.Kind != table.KindNumeric {
			continue
		}
		lo, hi, err := stats.MinMax(sc.Num)
		if err != nil || hi <= lo {
			continue
		}
		pad := frac * (hi - lo)
		lo, hi = lo+pad, hi-pad
		if c.Role == table.RoleInteger {
			lo, hi = math.Ceil(lo), math.Floor(hi)
			if lo > hi {
				continue
			}
		}
		changed += clipColumn(c, lo, hi)
	}

	return changed
}

// AutoDetect returns "x >= 0" for every continuous or integer source column
// with observed values and no negative one.
func AutoDetect(src *table.Table, skip map[string]bool) []Constraint {
	var out []Constraint
	for _, c := range src.Columns() {
		if skip[c.Name] || c.Kind != table.KindNumeric ||
			!c.Role.IsContinuous() {
			continue
		}
		lo, _, err := stats.MinMax(c.Num)
		if err == nil && lo >= 0 {
			out = append(out, Constraint{Left: c.Name, Op: OpGE})
		}
	}

	return out
}

// Enforce repairs violations of cons in t until a pass finds none or
// maxIter passes have run. A constant bound clips the left column; a column
// comparison swaps the two values. Returns cells changed, passes run and
// violations left.
func Enforce(t *table.Table, cons []Constraint, maxIter int) (changed, iterations, violations int) {
	for iterations < maxIter {
		iterations++
		for _, c := range cons {
			changed += repair(t, c)
		}
		violations = Violations(t, cons)
		if violations == 0 {
			return changed, iterations, 0
		}
	}

	return changed, iterations, violations
}

// Violations counts the cells breaking any of cons.
func Violations(t *table.Table, cons []Constraint) int {
	n := 0
	for _, c := range cons {
		left, _ := t.Column(c.Left)
		if left == nil {
			continue
		}
		var right *table.Column
		if c.Column != "" {
			if right, _ = t.Column(c.Column); right == nil {
				continue
			}
		}
		for i, a := range left.Num {
			b := c.Value
			if right != nil {
				b = right.Num[i]
			}
			if !math.IsNaN(a) && !math.IsNaN(b) && !c.Op.holds(a, b) {
				n++
			}
		}
	}

	return n
}

// repair fixes every violating row of one constraint.
func repair(t *table.Table, c Constraint) int {
	left, _ := t.Column(c.Left)
	if left == nil || left.Kind != table.KindNumeric {
		return 0
	}
	if c.Column == "" {
		return repairConst(left, c)
	}
	right, _ := t.Column(c.Column)
	if right == nil || right.Kind != table.KindNumeric {
		return 0
	}
	changed := 0
	for i := range left.Num {
		a, b := left.Num[i], right.Num[i]
		if math.IsNaN(a) || math.IsNaN(b) || c.Op.holds(a, b) {
			continue
		}
		if a != b {
			left.Num[i], right.Num[i] = b, a
		} else {
			// equal values under a strict operator: move the right side
			right.Num[i] = step(right, a, !c.Op.lower())
		}
		changed++
	}

	return changed
}

func repairConst(col *table.Column, c Constraint) int {
	target := c.Value
	if c.Op.strict() {
		target = step(col, c.Value, c.Op.lower())
	}
	changed := 0
	for i, v := range col.Num {
		if math.IsNaN(v) || c.Op.holds(v, c.Value) {
			continue
		}
		col.Num[i] = target
		changed++
	}

	return changed
}

// step returns the nearest value strictly above (up) or below v that the
// column can hold: the next whole number for integers.
func step(c *table.Column, v float64, up bool) float64 {
	if c.Role == table.RoleInteger || c.Role == table.RoleDate {
		if up {
			return math.Floor(v) + 1
		}
		return math.Ceil(v) - 1
	}
	if up {
		return math.Nextafter(v, inf)
	}

	return math.Nextafter(v, -inf)
}

func clipColumn(c *table.Column, lo, hi float64) int {
	changed := 0
	for i, v := range c.Num {
		switch {
		case math.IsNaN(v):
		case v < lo:
			c.Num[i] = lo
			changed++
		case v > hi:
			c.Num[i] = hi
			changed++
		}
	}

	return changed
}

func numeric(t *table.Table, name string) (*table.Column, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownColumn)
	}
	if c.Kind != table.KindNumeric {
		return nil, fmt.Errorf("%q: %w", name, ErrNotNumeric)
	}

	return c, nil
}
