// SPDX-License-Identifier: MIT

package panel

import (
	"math"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
)

// timeNames are column names treated as time-like when no date column exists.
var timeNames = []string{"time", "year", "wave", "visit", "period", "month", "week", "day", "t"}

// Effect reports the random effect injected into one column.
type Effect struct {
	Column string
	ICC    float64
}

// Slope reports the per-unit slope distribution applied to one column.
type Slope struct {
	Column string
	Mean   float64
	SD     float64
	Units  int // source units the slopes were fitted on
}

// RandomEffects injects a per-unit normal effect into each column of syn.
// The ICC of each column is estimated on src against the key by one-way
// ANOVA, and every synthetic value becomes
//
//	x' = μ + σ·(√ICC·u + √(1−ICC)·z),  z = (x − μ)/σ,  u ~ N(0,1) per unit
//
// where μ and σ are the synthetic column's mean and s.d., so total variance
// is unchanged. Columns with ICC 0 are left alone.
func (m *Model) RandomEffects(src, syn *table.Table, columns []string, r *rand.Rand) ([]Effect, error) {
	srcKeys, err := groups(src, m.Key)
	if err != nil {
		return nil, err
	}
	synKeys, err := groups(syn, m.Key)
	if err != nil {
		return nil, err
	}
	order, rows := unitRows(synKeys)

	var out []Effect
	for _, name := range columns {
		sc, ok1 := src.Column(name)
		dc, ok2 := syn.Column(name)
		if !ok1 || !ok2 || sc.Kind != table.KindNumeric {
			continue
		}
		icc, err := stats.ICC(sc.Num, srcKeys)
		if err != nil || icc <= 0 {
			continue
		}
		mu, sd, err := stats.MeanSD(dc.Num)
		if err != nil {
			continue
		}
		sd = stats.SafeSD(sd)
		between, within := math.Sqrt(icc), math.Sqrt(1-icc)
		for _, k := range order {
			u := r.NormFloat64()
			for _, i := range rows[k] {
				x := dc.Num[i]
				if math.IsNaN(x) {
					continue
				}
				z := (x - mu) / sd
				dc.Num[i] = mu + sd*(between*u+within*z)
			}
		}
		out = append(out, Effect{Column: name, ICC: icc})
		m.cfg.logger.Debug("random effect", zap.String("column", name), zap.Float64("icc", icc))
	}

	return out, nil
}

// DetectTime returns the first date-role column of t, or else the first
// numeric column with a time-like name. The key is never chosen.
func DetectTime(t *table.Table, key string) (string, bool) {
	for _, c := range t.Columns() {
		if c.Name != key && c.Role == table.RoleDate {
			return c.Name, true
		}
	}
	for _, want := range timeNames {
		for _, c := range t.Columns() {
			if c.Name != key && c.Kind == table.KindNumeric && strings.EqualFold(c.Name, want) {
				return c.Name, true
			}
		}
	}

	return "", false
}

// Trend fits a linear slope of each column on timeVar within every source
// unit, then adds slope·(t − t̄_unit) to syn with one slope drawn per
// synthetic unit from N(mean, sd) of the source slopes. timeVar "" is
// detected with DetectTime.
//
// Errors: ErrNoTimeColumn, ErrUnknownKey.
func (m *Model) Trend(src, syn *table.Table, timeVar string, columns []string, r *rand.Rand) ([]Slope, error) {
	if timeVar == "" {
		var ok bool
		if timeVar, ok = DetectTime(src, m.Key); !ok {
			return nil, ErrNoTimeColumn
		}
	}
	st, ok1 := src.Column(timeVar)
	dt, ok2 := syn.Column(timeVar)
	if !ok1 || !ok2 || st.Kind != table.KindNumeric {
		return nil, ErrNoTimeColumn
	}
	srcKeys, err := groups(src, m.Key)
	if err != nil {
		return nil, err
	}
	synKeys, err := groups(syn, m.Key)
	if err != nil {
		return nil, err
	}
	srcOrder, srcRows := unitRows(srcKeys)
	synOrder, synRows := unitRows(synKeys)

	var out []Slope
	for _, name := range columns {
		if name == timeVar || name == m.Key {
			continue
		}
		sc, ok1 := src.Column(name)
		dc, ok2 := syn.Column(name)
		if !ok1 || !ok2 || sc.Kind != table.KindNumeric {
			continue
		}
		var slopes []float64
		for _, k := range srcOrder {
			if b, ok := unitSlope(st.Num, sc.Num, srcRows[k]); ok {
				slopes = append(slopes, b)
			}
		}
		if len(slopes) == 0 {
			continue
		}
		mean, sd, _ := stats.MeanSD(slopes)
		for _, k := range synOrder {
			b := mean + sd*r.NormFloat64()
			tbar := meanAt(dt.Num, synRows[k])
			for _, i := range synRows[k] {
				if math.IsNaN(dt.Num[i]) || math.IsNaN(dc.Num[i]) {
					continue
				}
				dc.Num[i] += b * (dt.Num[i] - tbar)
			}
		}
		out = append(out, Slope{Column: name, Mean: mean, SD: sd, Units: len(slopes)})
		m.cfg.logger.Debug("trend",
			zap.String("column", name),
			zap.String("time", timeVar),
			zap.Float64("slope_mean", mean),
			zap.Float64("slope_sd", sd),
		)
	}

	return out, nil
}

// unitSlope is the least-squares slope of x on t over rows; it needs two
// complete rows with distinct times.
func unitSlope(t, x []float64, rows []int) (float64, bool) {
	var n, st, sx float64
	for _, i := range rows {
		if math.IsNaN(t[i]) || math.IsNaN(x[i]) {
			continue
		}
		n++
		st += t[i]
		sx += x[i]
	}
	if n < 2 {
		return 0, false
	}
	st /= n
	sx /= n
	var stt, stx float64
	for _, i := range rows {
		if math.IsNaN(t[i]) || math.IsNaN(x[i]) {
			continue
		}
		dt := t[i] - st
		stt += dt * dt
		stx += dt * (x[i] - sx)
	}
	if stt == 0 {
		return 0, false
	}

	return stx / stt, true
}

func meanAt(xs []float64, rows []int) float64 {
	var n, s float64
	for _, i := range rows {
		if !math.IsNaN(xs[i]) {
			n++
			s += xs[i]
		}
	}
	if n == 0 {
		return 0
	}

	return s / n
}
