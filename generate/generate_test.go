// SPDX-License-Identifier: MIT
package generate_test

import (
	"math"
	"sort"
	"testing"

	"github.com/katalvlaran/synthdata/detect"
	"github.com/katalvlaran/synthdata/generate"
	"github.com/katalvlaran/synthdata/profile"
	"github.com/katalvlaran/synthdata/rng"
	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// source builds a table with two correlated continuous columns (ρ ≈ 0.7),
// a skewed one, a date and a categorical column.
func source(t *testing.T, n int) *table.Table {
	t.Helper()

	r := rng.New(11)
	x, y, w, d := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	g := make([]string, n)
	for i := 0; i < n; i++ {
		z1, z2 := r.NormFloat64(), r.NormFloat64()
		x[i] = 50 + 10*z1
		y[i] = 20 + 5*(0.7*z1+math.Sqrt(1-0.49)*z2)
		w[i] = math.Exp(r.NormFloat64())
		d[i] = float64(20000 + r.Intn(365))
		g[i] = []string{"a", "b", "c"}[r.Intn(3)]
	}
	cx := table.NewNumeric("x", x)
	cx.Role = table.RoleContinuous
	cy := table.NewNumeric("y", y)
	cy.Role = table.RoleContinuous
	cw := table.NewNumeric("w", w)
	cw.Role = table.RoleContinuous
	cd := table.NewNumeric("d", d)
	cd.Role, cd.Format = table.RoleDate, table.DateFormat
	cg := table.NewText("g", g)
	cg.Role = table.RoleCategorical

	tb, err := table.New(cx, cy, cw, cd, cg)
	require.NoError(t, err)

	return tb
}

func plan(t *testing.T, tb *table.Table) *generate.Plan {
	t.Helper()

	return generate.NewPlan(tb, nil, profile.Analyze(tb, []string{"x", "y", "w"}))
}

func col(t *testing.T, tb *table.Table, name string) *table.Column {
	t.Helper()
	c, ok := tb.Column(name)
	require.True(t, ok, name)

	return c
}

func TestGenerate_ExactRowCountAndComplete(t *testing.T) {
	t.Parallel()

	tb := source(t, 300)
	p := plan(t, tb)
	for _, m := range generate.Methods() {
		m := m
		t.Run(m.String(), func(t *testing.T) {
			t.Parallel()
			s, err := generate.New(m, generate.DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, m, s.Method())

			out, err := s.Generate(p, 457, rng.New(5))
			require.NoError(t, err)
			assert.Equal(t, 457, out.Table.NumRows())
			assert.Equal(t, []string{"x", "y", "w", "d", "g"}, out.Table.Names())
			for _, c := range out.Table.Columns() {
				assert.Zero(t, c.MissingCount(), c.Name)
			}
			// dates stay whole days
			for _, v := range col(t, out.Table, "d").Num {
				require.Equal(t, math.Round(v), v)
			}
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	tb := source(t, 200)
	p := plan(t, tb)
	s, err := generate.New(generate.MethodAdaptive, generate.DefaultOptions())
	require.NoError(t, err)
	a, err := s.Generate(p, 100, rng.New(9))
	require.NoError(t, err)
	b, err := s.Generate(p, 100, rng.New(9))
	require.NoError(t, err)
	assert.Equal(t, col(t, a.Table, "x").Num, col(t, b.Table, "x").Num)
	assert.Equal(t, col(t, a.Table, "g").Str, col(t, b.Table, "g").Str)
}

func TestParametric_PreservesCorrelation(t *testing.T) {
	t.Parallel()

	tb := source(t, 2000)
	s, err := generate.New(generate.MethodParametric, generate.DefaultOptions())
	require.NoError(t, err)
	out, err := s.Generate(plan(t, tb), 5000, rng.New(1))
	require.NoError(t, err)

	want, err := stats.Pearson(col(t, tb, "x").Num, col(t, tb, "y").Num)
	require.NoError(t, err)
	got, err := stats.Pearson(col(t, out.Table, "x").Num, col(t, out.Table, "y").Num)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 0.1)

	m, sd, err := stats.MeanSD(col(t, out.Table, "x").Num)
	require.NoError(t, err)
	assert.InDelta(t, 50, m, 1)
	assert.InDelta(t, 10, sd, 1)
}

func TestParametric_IndependentWhenDisabled(t *testing.T) {
	t.Parallel()

	tb := source(t, 2000)
	opts := generate.DefaultOptions()
	opts.PreserveCorrelation = false
	s, err := generate.New(generate.MethodParametric, opts)
	require.NoError(t, err)
	out, err := s.Generate(plan(t, tb), 5000, rng.New(1))
	require.NoError(t, err)
	got, err := stats.Pearson(col(t, out.Table, "x").Num, col(t, out.Table, "y").Num)
	require.NoError(t, err)
	assert.InDelta(t, 0, got, 0.1)
}

func TestSequential_PreservesCorrelation(t *testing.T) {
	t.Parallel()

	tb := source(t, 2000)
	s, err := generate.New(generate.MethodSequential, generate.DefaultOptions())
	require.NoError(t, err)
	out, err := s.Generate(plan(t, tb), 5000, rng.New(4))
	require.NoError(t, err)
	got, err := stats.Pearson(col(t, out.Table, "x").Num, col(t, out.Table, "y").Num)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, got, 0.1)
}

func TestEmpirical_StaysWithinObservedRange(t *testing.T) {
	t.Parallel()

	tb := source(t, 500)
	for _, smooth := range []bool{false, true} {
		opts := generate.DefaultOptions()
		opts.Smooth = smooth
		s, err := generate.New(generate.MethodEmpirical, opts)
		require.NoError(t, err)
		out, err := s.Generate(plan(t, tb), 3000, rng.New(8))
		require.NoError(t, err)
		for _, name := range []string{"x", "y", "w", "d"} {
			lo, hi, err := stats.MinMax(col(t, tb, name).Num)
			require.NoError(t, err)
			for _, v := range col(t, out.Table, name).Num {
				require.GreaterOrEqual(t, v, lo, name)
				require.LessOrEqual(t, v, hi, name)
			}
		}
	}
}

func TestEmpirical_PreservesCorrelation(t *testing.T) {
	t.Parallel()

	tb := source(t, 2000)
	s, err := generate.New(generate.MethodEmpirical, generate.DefaultOptions())
	require.NoError(t, err)
	out, err := s.Generate(plan(t, tb), 5000, rng.New(2))
	require.NoError(t, err)

	want, err := stats.Pearson(col(t, tb, "x").Num, col(t, tb, "y").Num)
	require.NoError(t, err)
	got, err := stats.Pearson(col(t, out.Table, "x").Num, col(t, out.Table, "y").Num)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 0.1)

	// w is independent of x in the source and stays so
	xw, err := stats.Pearson(col(t, out.Table, "x").Num, col(t, out.Table, "w").Num)
	require.NoError(t, err)
	assert.InDelta(t, 0, xw, 0.1)

	// marginals come from the observed distribution
	skew, _, err := stats.Moments(col(t, out.Table, "w").Num)
	require.NoError(t, err)
	assert.Greater(t, skew, 1.0)
}

func TestEmpirical_IndependentWhenDisabled(t *testing.T) {
	t.Parallel()

	tb := source(t, 2000)
	opts := generate.DefaultOptions()
	opts.PreserveCorrelation = false
	s, err := generate.New(generate.MethodEmpirical, opts)
	require.NoError(t, err)
	out, err := s.Generate(plan(t, tb), 5000, rng.New(2))
	require.NoError(t, err)
	got, err := stats.Pearson(col(t, out.Table, "x").Num, col(t, out.Table, "y").Num)
	require.NoError(t, err)
	assert.InDelta(t, 0, got, 0.1)
}

func TestAdaptive_SkewedColumnKeepsShape(t *testing.T) {
	t.Parallel()

	tb := source(t, 1000)
	p := plan(t, tb)
	assert.True(t, p.Empirical["w"])
	assert.False(t, p.Empirical["x"])

	s, err := generate.New(generate.MethodAdaptive, generate.DefaultOptions())
	require.NoError(t, err)
	out, err := s.Generate(p, 4000, rng.New(6))
	require.NoError(t, err)
	skew, _, err := stats.Moments(col(t, out.Table, "w").Num)
	require.NoError(t, err)
	assert.Greater(t, skew, 1.0)
	for _, v := range col(t, out.Table, "w").Num {
		require.Greater(t, v, 0.0)
	}
}

func TestPermutation_ExactMarginals(t *testing.T) {
	t.Parallel()

	tb := source(t, 120)
	s, err := generate.New(generate.MethodPermutation, generate.DefaultOptions())
	require.NoError(t, err)
	out, err := s.Generate(plan(t, tb), 120, rng.New(2))
	require.NoError(t, err)

	for _, name := range []string{"x", "w", "d"} {
		want := stats.Sorted(col(t, tb, name).Num)
		got := stats.Sorted(col(t, out.Table, name).Num)
		assert.Equal(t, want, got, name)
	}
	want := append([]string(nil), col(t, tb, "g").Str...)
	got := append([]string(nil), col(t, out.Table, "g").Str...)
	sort.Strings(want)
	sort.Strings(got)
	assert.Equal(t, want, got)
	assert.NotEqual(t, col(t, tb, "x").Num, col(t, out.Table, "x").Num)
}

func TestPermutation_LargerThanSource(t *testing.T) {
	t.Parallel()

	src := table.NewNumeric("v", []float64{1, 2, 3, math.NaN()})
	src.Role = table.RoleInteger
	tb, err := table.New(src)
	require.NoError(t, err)
	s, err := generate.New(generate.MethodPermutation, generate.DefaultOptions())
	require.NoError(t, err)
	out, err := s.Generate(generate.NewPlan(tb, nil, nil), 7, rng.New(3))
	require.NoError(t, err)

	counts := map[float64]int{}
	for _, v := range col(t, out.Table, "v").Num {
		counts[v]++
	}
	assert.Len(t, counts, 3)
	for _, c := range counts {
		assert.GreaterOrEqual(t, c, 2)
		assert.LessOrEqual(t, c, 3)
	}
}

func TestBootstrap_ResamplesObservedRows(t *testing.T) {
	t.Parallel()

	tb := source(t, 200)
	opts := generate.DefaultOptions()
	opts.NoiseFraction, opts.PerturbProb = 0, 0
	s, err := generate.New(generate.MethodBootstrap, opts)
	require.NoError(t, err)
	out, err := s.Generate(plan(t, tb), 300, rng.New(7))
	require.NoError(t, err)

	seen := map[float64]bool{}
	for _, v := range col(t, tb, "x").Num {
		seen[v] = true
	}
	for _, v := range col(t, out.Table, "x").Num {
		require.True(t, seen[v])
	}
}

func TestAssociationsSampledJointly(t *testing.T) {
	t.Parallel()

	n := 400
	a, b := make([]string, n), make([]string, n)
	for i := range a {
		if i%2 == 0 {
			a[i], b[i] = "m", "x"
		} else {
			a[i], b[i] = "f", "y"
		}
	}
	ca, cb := table.NewText("a", a), table.NewText("b", b)
	ca.Role, cb.Role = table.RoleCategorical, table.RoleCategorical
	tb, err := table.New(ca, cb)
	require.NoError(t, err)
	rel := &detect.Relationships{Associations: detect.FindAssociations(tb, []string{"a", "b"})}
	require.Len(t, rel.Associations, 1)

	s, err := generate.New(generate.MethodParametric, generate.DefaultOptions())
	require.NoError(t, err)
	out, err := s.Generate(generate.NewPlan(tb, rel, nil), 500, rng.New(1))
	require.NoError(t, err)
	oa, ob := col(t, out.Table, "a"), col(t, out.Table, "b")
	for i := 0; i < 500; i++ {
		if oa.Str[i] == "m" {
			require.Equal(t, "x", ob.Str[i])
		} else {
			require.Equal(t, "y", ob.Str[i])
		}
	}
}

func TestEmptyJointTable(t *testing.T) {
	t.Parallel()

	ca, cb := table.NewText("a", []string{"p", ""}), table.NewText("b", []string{"", "q"})
	ca.Role, cb.Role = table.RoleCategorical, table.RoleCategorical
	tb, err := table.New(ca, cb)
	require.NoError(t, err)
	rel := &detect.Relationships{Associations: []detect.Association{{A: "a", B: "b", Joint: stats.NewFreqTable(nil)}}}

	s, err := generate.New(generate.MethodEmpirical, generate.DefaultOptions())
	require.NoError(t, err)
	_, err = s.Generate(generate.NewPlan(tb, rel, nil), 10, rng.New(1))
	require.ErrorIs(t, err, generate.ErrEmptyJointTable)
}

func TestGenerate_ArgumentErrors(t *testing.T) {
	t.Parallel()

	s, err := generate.New(generate.MethodSequential, generate.DefaultOptions())
	require.NoError(t, err)
	_, err = s.Generate(nil, 10, rng.New(1))
	assert.ErrorIs(t, err, generate.ErrNilPlan)
	_, err = s.Generate(plan(t, source(t, 30)), 0, rng.New(1))
	assert.ErrorIs(t, err, generate.ErrBadRowCount)

	_, err = generate.New(generate.Method(99), generate.DefaultOptions())
	assert.ErrorIs(t, err, generate.ErrUnknownMethod)
}

func TestParseMethod(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want generate.Method
	}{
		{"parametric", generate.MethodParametric},
		{"Smart", generate.MethodAdaptive},
		{"copula", generate.MethodEmpirical},
		{" permute ", generate.MethodPermutation},
		{"bootstrap", generate.MethodBootstrap},
		{"sequential", generate.MethodSequential},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			got, err := generate.ParseMethod(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
	_, err := generate.ParseMethod("magic")
	assert.ErrorIs(t, err, generate.ErrUnknownMethod)
}

func TestDerivedTargetLeftMissing(t *testing.T) {
	t.Parallel()

	tb := source(t, 100)
	rel := &detect.Relationships{Derived: []detect.Derived{{Target: "y", Bases: []string{"x"}, Coef: []float64{0.5}}}}
	p := generate.NewPlan(tb, rel, nil)
	assert.NotContains(t, p.Numeric, "y")
	assert.Contains(t, p.Output(), "y")

	s, err := generate.New(generate.MethodPermutation, generate.DefaultOptions())
	require.NoError(t, err)
	out, err := s.Generate(p, 50, rng.New(1))
	require.NoError(t, err)
	assert.True(t, col(t, out.Table, "y").AllMissing())
}
