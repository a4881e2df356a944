// SPDX-License-Identifier: MIT
package panel_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/synthdata/panel"
	"github.com/katalvlaran/synthdata/rng"
	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// longitudinal builds units with the given sizes, a visit counter, a column
// with a strong unit effect and a column rising 2 per visit.
func longitudinal(t *testing.T, sizes []int) *table.Table {
	t.Helper()

	r := rng.New(3)
	var id, visit, level, growth []float64
	for u, s := range sizes {
		effect := 10 * r.NormFloat64()
		for j := 0; j < s; j++ {
			id = append(id, float64(100+u))
			visit = append(visit, float64(j+1))
			level = append(level, 50+effect+r.NormFloat64())
			growth = append(growth, 5+2*float64(j+1)+0.1*r.NormFloat64())
		}
	}
	cid := table.NewNumeric("pid", id)
	cid.Role = table.RoleIdentifier
	cv := table.NewNumeric("visit", visit)
	cv.Role = table.RoleInteger
	cl := table.NewNumeric("level", level)
	cl.Role = table.RoleContinuous
	cg := table.NewNumeric("growth", growth)
	cg.Role = table.RoleContinuous
	tb, err := table.New(cid, cv, cl, cg)
	require.NoError(t, err)

	return tb
}

func TestFit_Distribution(t *testing.T) {
	t.Parallel()

	m, err := panel.Fit(longitudinal(t, []int{1, 2, 3, 6}), "pid")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 6}, m.Sizes)
	assert.InDelta(t, 3, m.Mean, 1e-12)
	assert.Equal(t, 1, m.Min)
	assert.Equal(t, 6, m.Max)
	assert.Equal(t, panel.ModeExact, m.Mode)
	assert.Equal(t, 4, m.Units(12))
	assert.Equal(t, 1, m.Units(1))
}

func TestFit_Errors(t *testing.T) {
	t.Parallel()

	tb := longitudinal(t, []int{2, 2})
	_, err := panel.Fit(tb, "nope")
	assert.ErrorIs(t, err, panel.ErrUnknownKey)

	empty, err := table.New(table.NewNumeric("pid", []float64{math.NaN(), math.NaN()}))
	require.NoError(t, err)
	_, err = panel.Fit(empty, "pid")
	assert.ErrorIs(t, err, panel.ErrNoUnits)
}

func TestDraw_ExactConservesMultiset(t *testing.T) {
	t.Parallel()

	sizes := []int{1, 1, 2, 3, 3, 5, 8, 4}
	m, err := panel.Fit(longitudinal(t, sizes), "pid")
	require.NoError(t, err)

	got := m.Draw(27, rng.New(1))
	assert.Equal(t, panel.SortedSizes(sizes), panel.SortedSizes(got))

	// two full passes
	got = m.Draw(54, rng.New(2))
	assert.Equal(t, panel.SortedSizes(append(append([]int(nil), sizes...), sizes...)), panel.SortedSizes(got))
}

func TestDraw_SumsToTarget(t *testing.T) {
	t.Parallel()

	tb := longitudinal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	for _, mode := range []panel.Mode{panel.ModeExact, panel.ModeEmpirical, panel.ModeParametric} {
		mode := mode
		t.Run(mode.String(), func(t *testing.T) {
			t.Parallel()
			m, err := panel.Fit(tb, "pid", panel.WithMode(mode))
			require.NoError(t, err)
			for _, n := range []int{1, 13, 100, 1001} {
				got := m.Draw(n, rng.New(int64(n)))
				sum := 0
				for _, s := range got {
					require.GreaterOrEqual(t, s, 1)
					require.LessOrEqual(t, s, 10)
					sum += s
				}
				assert.Equal(t, n, sum, fmt.Sprint(n))
			}
		})
	}
}

func TestExpand_AttachesIdentifiers(t *testing.T) {
	t.Parallel()

	src := longitudinal(t, []int{2, 3, 1})
	m, err := panel.Fit(src, "pid", panel.WithIndexColumn("visit"))
	require.NoError(t, err)

	out, sizes, err := m.Expand(src.Without("pid", "visit"), rng.New(4))
	require.NoError(t, err)
	assert.Equal(t, []string{"pid", "visit", "level", "growth"}, out.Names())
	assert.Equal(t, 6, out.NumRows())
	assert.Equal(t, []int{1, 2, 3}, panel.SortedSizes(sizes))

	id, _ := out.Column("pid")
	visit, _ := out.Column("visit")
	assert.Equal(t, table.RoleIdentifier, id.Role)
	row := 0
	for u, s := range sizes {
		for j := 0; j < s; j++ {
			assert.Equal(t, float64(u+1), id.Num[row])
			assert.Equal(t, float64(j+1), visit.Num[row])
			row++
		}
	}
}

func TestRandomEffects_RestoresClustering(t *testing.T) {
	t.Parallel()

	sizes := make([]int, 200)
	for i := range sizes {
		sizes[i] = 5
	}
	src := longitudinal(t, sizes)
	m, err := panel.Fit(src, "pid")
	require.NoError(t, err)

	// independent synthetic column: no clustering before the layer
	r := rng.New(9)
	lv := make([]float64, 1000)
	for i := range lv {
		lv[i] = rng.Normal(r, 50, 10)
	}
	syn, err := table.New(table.NewNumeric("level", lv))
	require.NoError(t, err)
	syn, _, err = m.Expand(syn, r)
	require.NoError(t, err)

	effects, err := m.RandomEffects(src, syn, []string{"level"}, r)
	require.NoError(t, err)
	require.Len(t, effects, 1)
	assert.Greater(t, effects[0].ICC, 0.9)

	id, _ := syn.Column("pid")
	level, _ := syn.Column("level")
	icc, err := stats.ICC(level.Num, id.Keys())
	require.NoError(t, err)
	assert.InDelta(t, effects[0].ICC, icc, 0.1)

	_, sd, err := stats.MeanSD(level.Num)
	require.NoError(t, err)
	assert.InDelta(t, 10, sd, 1.5)
}

func TestTrend_AddsSlopes(t *testing.T) {
	t.Parallel()

	sizes := make([]int, 50)
	for i := range sizes {
		sizes[i] = 4
	}
	src := longitudinal(t, sizes)
	name, ok := panel.DetectTime(src, "pid")
	require.True(t, ok)
	assert.Equal(t, "visit", name)

	m, err := panel.Fit(src, "pid")
	require.NoError(t, err)
	syn := src.Clone()
	gc, _ := syn.Column("growth")
	for i := range gc.Num {
		gc.Num[i] = 10
	}

	slopes, err := m.Trend(src, syn, "", []string{"growth", "visit"}, rng.New(5))
	require.NoError(t, err)
	require.Len(t, slopes, 1)
	assert.InDelta(t, 2, slopes[0].Mean, 0.05)

	vc, _ := syn.Column("visit")
	b, err := stats.OLS([][]float64{vc.Num}, gc.Num)
	require.NoError(t, err)
	assert.InDelta(t, 2, b.Coef[0], 0.1)
}

func TestTrend_NoTimeColumn(t *testing.T) {
	t.Parallel()

	tb, err := table.New(table.NewNumeric("pid", []float64{1, 1, 2}), table.NewNumeric("x", []float64{1, 2, 3}))
	require.NoError(t, err)
	m, err := panel.Fit(tb, "pid")
	require.NoError(t, err)
	_, err = m.Trend(tb, tb, "", []string{"x"}, rng.New(1))
	assert.ErrorIs(t, err, panel.ErrNoTimeColumn)
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := panel.ParseMode("Poisson")
	require.NoError(t, err)
	assert.Equal(t, panel.ModeParametric, m)
	m, err = panel.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, panel.ModeExact, m)
	_, err = panel.ParseMode("bogus")
	assert.ErrorIs(t, err, panel.ErrUnknownMode)

	assert.Panics(t, func() { panel.WithMode(panel.Mode(0)) })
	assert.Panics(t, func() { panel.WithIndexColumn(" ") })
	assert.Panics(t, func() { panel.WithLogger(nil) })
}
