// SPDX-License-Identifier: MIT
package privacy_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/synthdata/privacy"
	"github.com/katalvlaran/synthdata/rng"
	"github.com/katalvlaran/synthdata/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withMissing returns n values with every k-th missing, plus a text column
// missing on the same rows.
func withMissing(n, k int) (*table.Column, *table.Column) {
	num := make([]float64, n)
	txt := make([]string, n)
	for i := range num {
		if i%k == 0 {
			num[i] = math.NaN()
			continue
		}
		num[i] = float64(i)
		txt[i] = "v"
	}
	a := table.NewNumeric("a", num)
	a.Role = table.RoleContinuous
	b := table.NewText("b", txt)
	b.Role = table.RoleString

	return a, b
}

func complete(t *testing.T, n int) *table.Table {
	t.Helper()
	a := table.NewNumeric("a", make([]float64, n))
	b := table.NewText("b", make([]string, n))
	for i := range b.Str {
		b.Str[i] = "x"
	}
	tb, err := table.New(a, b)
	require.NoError(t, err)

	return tb
}

func TestApplyMissing_RatePreserved(t *testing.T) {
	t.Parallel()

	a, b := withMissing(1000, 4) // 25 %
	src, err := table.New(a, b)
	require.NoError(t, err)

	n := 100000
	syn := complete(t, n)
	set, err := privacy.ApplyMissing(src, syn, []string{"a", "b"}, privacy.MissingRate, rng.New(1))
	require.NoError(t, err)
	assert.Positive(t, set)

	sa, _ := syn.Column("a")
	sb, _ := syn.Column("b")
	assert.InDelta(t, a.MissingRate(), sa.MissingRate(), 0.02)
	assert.InDelta(t, b.MissingRate(), sb.MissingRate(), 0.02)
}

func TestApplyMissing_PatternKeepsCoMissingness(t *testing.T) {
	t.Parallel()

	a, b := withMissing(1000, 5)
	src, err := table.New(a, b)
	require.NoError(t, err)

	syn := complete(t, 20000)
	_, err = privacy.ApplyMissing(src, syn, []string{"a", "b"}, privacy.MissingPattern, rng.New(2))
	require.NoError(t, err)
	sa, _ := syn.Column("a")
	sb, _ := syn.Column("b")
	for i := 0; i < 20000; i++ {
		require.Equal(t, sa.IsMissing(i), sb.IsMissing(i))
	}
	assert.InDelta(t, 0.2, sa.MissingRate(), 0.02)
}

func TestApplyMissing_NoneAndErrors(t *testing.T) {
	t.Parallel()

	a, b := withMissing(10, 2)
	src, err := table.New(a, b)
	require.NoError(t, err)
	syn := complete(t, 10)

	set, err := privacy.ApplyMissing(src, syn, []string{"a"}, privacy.MissingNone, rng.New(1))
	require.NoError(t, err)
	assert.Zero(t, set)

	_, err = privacy.ApplyMissing(src, syn, []string{"zzz"}, privacy.MissingRate, rng.New(1))
	assert.ErrorIs(t, err, privacy.ErrUnknownColumn)
	_, err = privacy.ApplyMissing(src, syn, []string{"a"}, privacy.MissingMode(9), rng.New(1))
	assert.ErrorIs(t, err, privacy.ErrUnknownMode)

	m, err := privacy.ParseMissingMode("Pattern")
	require.NoError(t, err)
	assert.Equal(t, privacy.MissingPattern, m)
	_, err = privacy.ParseMissingMode("sometimes")
	assert.ErrorIs(t, err, privacy.ErrUnknownMode)
}

func gowerTable(t *testing.T, x []float64, g []string) *table.Table {
	t.Helper()
	cx := table.NewNumeric("x", x)
	cx.Role = table.RoleContinuous
	cg := table.NewText("g", g)
	cg.Role = table.RoleCategorical
	tb, err := table.New(cx, cg)
	require.NoError(t, err)

	return tb
}

func TestNearestDistances(t *testing.T) {
	t.Parallel()

	src := gowerTable(t, []float64{0, 50, 100}, []string{"a", "b", "a"})

	// identical copy: every nearest distance is 0
	rep, err := privacy.NearestDistances(src, src, []string{"x", "g"}, 0, privacy.DefaultThreshold, rng.New(1))
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Sampled)
	assert.Zero(t, rep.Mean)
	assert.Equal(t, 1.0, rep.TooClose)

	// x off by 10 % of the range, category matching: (0.1 + 0) / 2
	syn := gowerTable(t, []float64{10, 60}, []string{"a", "b"})
	rep, err = privacy.NearestDistances(src, syn, []string{"x", "g"}, 100, privacy.DefaultThreshold, rng.New(1))
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Sampled)
	assert.InDelta(t, 0.05, rep.Min, 1e-12)
	assert.InDelta(t, 0.05, rep.Median, 1e-12)
	assert.Zero(t, rep.TooClose)

	// missing cells drop out of the average
	syn = gowerTable(t, []float64{math.NaN()}, []string{"c"})
	rep, err = privacy.NearestDistances(src, syn, []string{"x", "g"}, 1, 0.5, rng.New(1))
	require.NoError(t, err)
	assert.Equal(t, 1.0, rep.Min)
}

func TestNearestDistances_Errors(t *testing.T) {
	t.Parallel()

	src := gowerTable(t, []float64{1}, []string{"a"})
	empty := gowerTable(t, nil, nil)
	_, err := privacy.NearestDistances(src, empty, []string{"x"}, 1, 0.1, rng.New(1))
	assert.ErrorIs(t, err, privacy.ErrEmpty)
	_, err = privacy.NearestDistances(src, src, nil, 1, 0.1, rng.New(1))
	assert.ErrorIs(t, err, privacy.ErrNoColumns)
	_, err = privacy.NearestDistances(src, src, []string{"y"}, 1, 0.1, rng.New(1))
	assert.ErrorIs(t, err, privacy.ErrUnknownColumn)
}
