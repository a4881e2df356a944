// SPDX-License-Identifier: MIT

package panel

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/synthdata/rng"
	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
)

// Model is the rows-per-unit distribution of one key column.
type Model struct {
	Key   string
	Sizes []int // rows per source unit, ordered by first appearance
	Mean  float64
	SD    float64
	Min   int
	Max   int
	Mode  Mode

	cfg config
}

// Fit counts the rows of every observed unit of key in src.
// Rows with a missing key are ignored.
//
// Errors: ErrUnknownKey, ErrNoUnits.
func Fit(src *table.Table, key string, opts ...Option) (*Model, error) {
	cfg := newConfig(opts...)
	c, ok := src.Column(key)
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, ErrUnknownKey)
	}
	pos := make(map[string]int)
	var sizes []int
	for _, k := range c.Keys() {
		if k == "" {
			continue
		}
		i, seen := pos[k]
		if !seen {
			i = len(sizes)
			pos[k] = i
			sizes = append(sizes, 0)
		}
		sizes[i]++
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%q: %w", key, ErrNoUnits)
	}

	m := &Model{Key: key, Sizes: sizes, Mode: cfg.mode, cfg: cfg, Min: sizes[0], Max: sizes[0]}
	fs := make([]float64, len(sizes))
	for i, s := range sizes {
		fs[i] = float64(s)
		if s < m.Min {
			m.Min = s
		}
		if s > m.Max {
			m.Max = s
		}
	}
	m.Mean, m.SD, _ = stats.MeanSD(fs)
	cfg.logger.Debug("row structure fitted",
		zap.String("key", key),
		zap.Int("units", len(sizes)),
		zap.Float64("mean_rows", m.Mean),
		zap.Float64("sd_rows", m.SD),
		zap.Int("min_rows", m.Min),
		zap.Int("max_rows", m.Max),
	)

	return m, nil
}

// Units is the target unit count for n rows: round(n / mean), at least 1.
func (m *Model) Units(n int) int {
	u := int(math.Round(float64(n) / m.Mean))
	if u < 1 {
		u = 1
	}

	return u
}

// Draw returns unit sizes summing to exactly n; the last unit is truncated.
func (m *Model) Draw(n int, r *rand.Rand) []int {
	out := make([]int, 0, m.Units(n)+1)
	var deck []int
	total := 0
	for total < n {
		var s int
		switch m.Mode {
		case ModeEmpirical:
			s = m.Sizes[r.Intn(len(m.Sizes))]
		case ModeParametric:
			s = m.drawParametric(r)
		default:
			if len(deck) == 0 {
				deck = append(deck, m.Sizes...)
				rng.Shuffle(r, deck)
			}
			s, deck = deck[len(deck)-1], deck[:len(deck)-1]
		}
		if total+s > n {
			s = n - total
		}
		out = append(out, s)
		total += s
	}

	return out
}

func (m *Model) drawParametric(r *rand.Rand) int {
	v := rng.NegBinomial(r, m.Mean, m.SD*m.SD)
	if v < m.Min {
		v = m.Min
	}
	if v > m.Max {
		v = m.Max
	}
	if v < 1 {
		v = 1
	}

	return v
}

// Expand draws unit sizes for syn's rows and returns a copy of syn with the
// key column (identifiers 1..units) first and, if configured, a within-unit
// index column after it. Rows are grouped by unit in order.
//
// The returned sizes are the drawn rows per unit.
func (m *Model) Expand(syn *table.Table, r *rand.Rand) (*table.Table, []int, error) {
	n := syn.NumRows()
	sizes := m.Draw(n, r)
	ids := make([]float64, 0, n)
	idx := make([]float64, 0, n)
	for u, s := range sizes {
		for j := 0; j < s; j++ {
			ids = append(ids, float64(u+1))
			idx = append(idx, float64(j+1))
		}
	}

	keyCol := table.NewNumeric(m.Key, ids)
	keyCol.Role = table.RoleIdentifier
	cols := []*table.Column{keyCol}
	if m.cfg.indexColumn != "" {
		ic := table.NewNumeric(m.cfg.indexColumn, idx)
		ic.Role = table.RoleInteger
		cols = append(cols, ic)
	}
	for _, c := range syn.Without(m.Key, m.cfg.indexColumn).Columns() {
		cols = append(cols, c.Clone())
	}
	out, err := table.New(cols...)
	if err != nil {
		return nil, nil, fmt.Errorf("panel: expand: %w", err)
	}
	m.cfg.logger.Info("panel expanded",
		zap.String("key", m.Key),
		zap.String("mode", m.Mode.String()),
		zap.Int("units", len(sizes)),
		zap.Int("rows", n),
	)

	return out, sizes, nil
}

// groups returns the unit key of every row of t.
func groups(t *table.Table, key string) ([]string, error) {
	c, ok := t.Column(key)
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, ErrUnknownKey)
	}

	return c.Keys(), nil
}

// unitRows maps each unit key to its row indices, in first-appearance order.
func unitRows(keys []string) ([]string, map[string][]int) {
	rows := make(map[string][]int)
	var order []string
	for i, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := rows[k]; !ok {
			order = append(order, k)
		}
		rows[k] = append(rows[k], i)
	}

	return order, rows
}

// SortedSizes returns a sorted copy of sizes.
func SortedSizes(sizes []int) []int {
	out := append([]int(nil), sizes...)
	sort.Ints(out)

	return out
}
