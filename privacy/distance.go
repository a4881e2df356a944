// SPDX-License-Identifier: MIT

package privacy

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/synthdata/rng"
	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
)

const (
	// DefaultSample is the number of synthetic rows checked.
	DefaultSample = 100
	// DefaultThreshold is the nearest distance under which a synthetic row
	// counts as too close to a source record.
	DefaultThreshold = 0.05
)

// DistanceReport summarizes nearest-neighbour Gower distances from sampled
// synthetic rows to the source rows.
type DistanceReport struct {
	Sampled   int     `yaml:"sampled"`
	Threshold float64 `yaml:"threshold"`
	Min       float64 `yaml:"min"`
	Mean      float64 `yaml:"mean"`
	Median    float64 `yaml:"median"`
	// TooClose is the share of sampled rows whose nearest distance is below
	// Threshold.
	TooClose float64   `yaml:"too_close"`
	Nearest  []float64 `yaml:"-"` // per sampled row, sorted ascending
}

// gowerColumn is one column pair with its comparison rule.
type gowerColumn struct {
	src, syn *table.Column
	numeric  bool
	scale    float64 // source range, numeric only
}

// NearestDistances compares up to sample synthetic rows with every source
// row on columns. Numeric columns (continuous, integer, date) contribute
// |a−b|/range, all others a 0/1 mismatch; each pair distance averages the
// columns observed in both rows. Pairs with no such column are ignored.
//
// Errors: ErrEmpty, ErrUnknownColumn, ErrNoColumns.
func NearestDistances(src, syn *table.Table, columns []string, sample int, threshold float64, r *rand.Rand) (*DistanceReport, error) {
	if src.NumRows() == 0 || syn.NumRows() == 0 {
		return nil, ErrEmpty
	}
	if sample <= 0 {
		sample = DefaultSample
	}
	srcCols, synCols, err := pairs(src, syn, columns)
	if err != nil {
		return nil, err
	}
	gc := make([]gowerColumn, 0, len(columns))
	for j := range srcCols {
		gc = append(gc, newGowerColumn(srcCols[j], synCols[j]))
	}
	if len(gc) == 0 {
		return nil, ErrNoColumns
	}

	rows := rng.Perm(r, syn.NumRows())
	if len(rows) > sample {
		rows = rows[:sample]
	}
	rep := &DistanceReport{Threshold: threshold, Nearest: make([]float64, 0, len(rows))}
	near := 0
	for _, i := range rows {
		best := math.Inf(1)
		for k := 0; k < src.NumRows(); k++ {
			if d, ok := gower(gc, i, k); ok && d < best {
				best = d
			}
		}
		if math.IsInf(best, 1) {
			continue
		}
		rep.Nearest = append(rep.Nearest, best)
		if best < threshold {
			near++
		}
	}
	rep.Sampled = len(rep.Nearest)
	if rep.Sampled == 0 {
		return nil, ErrNoColumns
	}
	rep.Nearest = stats.Sorted(rep.Nearest)
	rep.Min = rep.Nearest[0]
	rep.Mean, _, _ = stats.MeanSD(rep.Nearest)
	rep.Median = stats.Quantile(rep.Nearest, 0.5)
	rep.TooClose = float64(near) / float64(rep.Sampled)

	return rep, nil
}

func newGowerColumn(src, syn *table.Column) gowerColumn {
	g := gowerColumn{src: src, syn: syn}
	switch src.Role {
	case table.RoleContinuous, table.RoleInteger, table.RoleDate:
		if src.Kind != table.KindNumeric {
			break
		}
		g.numeric = true
		lo, hi, err := stats.MinMax(src.Num)
		if err == nil {
			g.scale = hi - lo
		}
	}

	return g
}

// gower is the distance between synthetic row i and source row k.
func gower(cols []gowerColumn, i, k int) (float64, bool) {
	var sum float64
	var n int
	for _, c := range cols {
		if c.syn.IsMissing(i) || c.src.IsMissing(k) {
			continue
		}
		n++
		if c.numeric {
			d := math.Abs(c.syn.Num[i] - c.src.Num[k])
			if c.scale > 0 {
				sum += math.Min(1, d/c.scale)
			} else if d > 0 {
				sum++
			}
			continue
		}
		if c.syn.Key(i) != c.src.Key(k) {
			sum++
		}
	}
	if n == 0 {
		return 0, false
	}

	return sum / float64(n), true
}
