// SPDX-License-Identifier: MIT
package constraint_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/synthdata/constraint"
	"github.com/katalvlaran/synthdata/rng"
	"github.com/katalvlaran/synthdata/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numCol(name string, role table.Role, vs ...float64) *table.Column {
	c := table.NewNumeric(name, vs)
	c.Role = role

	return c
}

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want constraint.Constraint
	}{
		{"age >= 0", constraint.Constraint{Left: "age", Op: constraint.OpGE}},
		{"income<=1e6", constraint.Constraint{Left: "income", Op: constraint.OpLE, Value: 1e6}},
		{" x > -2.5 ", constraint.Constraint{Left: "x", Op: constraint.OpGT, Value: -2.5}},
		{"start < end", constraint.Constraint{Left: "start", Op: constraint.OpLT, Column: "end"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			got, err := constraint.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			again, err := constraint.Parse(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}

	for _, bad := range []string{"", "age", "age = 3", "age >= ", "3 > age", "a < a", "a < b c"} {
		_, err := constraint.Parse(bad)
		assert.ErrorIs(t, err, constraint.ErrSyntax, bad)
	}

	all, err := constraint.ParseAll([]string{"a > 1", " ", "b < a"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestParseBounds(t *testing.T) {
	t.Parallel()

	got, err := constraint.ParseBounds("age 0 120, income . 1e6,")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, constraint.Bound{Column: "age", Lo: 0, Hi: 120}, got[0])
	assert.True(t, math.IsInf(got[1].Lo, -1))
	assert.Equal(t, 1e6, got[1].Hi)

	_, err = constraint.ParseBounds("age 0")
	assert.ErrorIs(t, err, constraint.ErrSyntax)
	_, err = constraint.ParseBounds("age 10 1")
	assert.ErrorIs(t, err, constraint.ErrBadBounds)
}

func TestApply_AutoNonNegative(t *testing.T) {
	t.Parallel()

	r := rng.New(7)
	n := 2000
	srcAge, synAge := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		srcAge[i] = math.Abs(rng.Normal(r, 5, 10))
		synAge[i] = rng.Normal(r, 5, 10) // plenty of negatives
	}
	src, err := table.New(numCol("age", table.RoleContinuous, srcAge...))
	require.NoError(t, err)
	syn, err := table.New(numCol("age", table.RoleContinuous, synAge...))
	require.NoError(t, err)

	rep, err := constraint.Apply(src, syn, constraint.Spec{}, constraint.WithNoExtreme(0))
	require.NoError(t, err)
	require.Len(t, rep.Auto, 1)
	assert.Equal(t, "age >= 0", rep.Auto[0].String())
	assert.Positive(t, rep.Repaired)

	age, _ := syn.Column("age")
	for _, v := range age.Num {
		require.GreaterOrEqual(t, v, 0.0)
	}
}

func TestApply_BoundsAndBuffer(t *testing.T) {
	t.Parallel()

	src, err := table.New(
		numCol("x", table.RoleContinuous, 0, 50, 100),
		numCol("k", table.RoleInteger, 0, 5, 10),
	)
	require.NoError(t, err)
	syn, err := table.New(
		numCol("x", table.RoleContinuous, -10, 0, 100, 200, math.NaN()),
		numCol("k", table.RoleInteger, 0, 3, 10, 10, 4),
	)
	require.NoError(t, err)

	rep, err := constraint.Apply(src, syn, constraint.Spec{
		Bounds: []constraint.Bound{{Column: "x", Lo: -5, Hi: 150}},
	}, constraint.WithAuto(false), constraint.WithNoExtreme(constraint.DefaultNoExtreme))
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Bounded)

	x, _ := syn.Column("x")
	assert.Equal(t, []float64{5, 5, 95, 95}, x.Num[:4])
	assert.True(t, math.IsNaN(x.Num[4]))
	k, _ := syn.Column("k")
	// 10 ± 0.5 rounded inward to whole numbers: [1, 9]
	assert.Equal(t, []float64{1, 3, 9, 9, 4}, k.Num)
}

func TestApply_UserConstraints(t *testing.T) {
	t.Parallel()

	src, err := table.New(
		numCol("lo", table.RoleContinuous, 1, 2),
		numCol("hi", table.RoleContinuous, 3, 4),
		numCol("n", table.RoleInteger, 1, 2),
	)
	require.NoError(t, err)
	syn, err := table.New(
		numCol("lo", table.RoleContinuous, 5, 1, 2),
		numCol("hi", table.RoleContinuous, 3, 4, 2),
		numCol("n", table.RoleInteger, 0, 7, 2),
	)
	require.NoError(t, err)

	user, err := constraint.ParseAll([]string{"lo < hi", "n > 0", "n <= 5"})
	require.NoError(t, err)
	rep, err := constraint.Apply(src, syn, constraint.Spec{User: user},
		constraint.WithAuto(false), constraint.WithNoExtreme(0))
	require.NoError(t, err)
	assert.Zero(t, rep.Violations)
	assert.Empty(t, rep.Warnings)
	assert.Zero(t, constraint.Violations(syn, user))

	lo, _ := syn.Column("lo")
	hi, _ := syn.Column("hi")
	n, _ := syn.Column("n")
	assert.Equal(t, []float64{3, 1}, lo.Num[:2])
	assert.Equal(t, []float64{5, 4}, hi.Num[:2])
	assert.Less(t, lo.Num[2], hi.Num[2])
	assert.Equal(t, []float64{1, 5, 2}, n.Num)
}

func TestApply_UnsatisfiableWarns(t *testing.T) {
	t.Parallel()

	tb, err := table.New(numCol("x", table.RoleContinuous, 5, 50))
	require.NoError(t, err)
	user, err := constraint.ParseAll([]string{"x >= 10", "x <= 1"})
	require.NoError(t, err)

	rep, err := constraint.Apply(tb, tb, constraint.Spec{User: user},
		constraint.WithAuto(false), constraint.WithNoExtreme(0), constraint.WithMaxIterations(3))
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Iterations)
	assert.Positive(t, rep.Violations)
	assert.Len(t, rep.Warnings, 1)
}

func TestApply_Errors(t *testing.T) {
	t.Parallel()

	tb, err := table.New(numCol("x", table.RoleContinuous, 1), table.NewText("s", []string{"a"}))
	require.NoError(t, err)

	_, err = constraint.Apply(tb, tb, constraint.Spec{User: []constraint.Constraint{{Left: "y", Op: constraint.OpGE}}})
	assert.ErrorIs(t, err, constraint.ErrUnknownColumn)
	_, err = constraint.Apply(tb, tb, constraint.Spec{Bounds: []constraint.Bound{{Column: "s", Hi: 1}}})
	assert.ErrorIs(t, err, constraint.ErrNotNumeric)

	rep, err := constraint.Apply(tb, tb, constraint.Spec{User: []constraint.Constraint{{Left: "y", Op: constraint.OpGE}}},
		constraint.WithSkip("y"))
	require.NoError(t, err)
	assert.Len(t, rep.Warnings, 1)
}

func TestSortRows(t *testing.T) {
	t.Parallel()

	a := numCol("a", table.RoleDate, 3, 1, math.NaN(), 9)
	b := numCol("b", table.RoleDate, 2, 2, 5, 8)
	c := numCol("c", table.RoleDate, 1, 3, 4, 7)
	changed := constraint.SortRows([]*table.Column{a, b, c})
	assert.Equal(t, 3, changed)
	assert.Equal(t, []float64{1, 2, 3}, []float64{a.Num[0], b.Num[0], c.Num[0]})
	assert.Equal(t, []float64{1, 2, 3}, []float64{a.Num[1], b.Num[1], c.Num[1]})
	assert.True(t, math.IsNaN(a.Num[2]))
	assert.Equal(t, []float64{4, 5}, []float64{b.Num[2], c.Num[2]})
	assert.Equal(t, []float64{7, 8, 9}, []float64{a.Num[3], b.Num[3], c.Num[3]})
}

func TestDetectDateOrder(t *testing.T) {
	t.Parallel()

	src, err := table.New(
		numCol("birth", table.RoleDate, 1, 2, 3),
		numCol("visit", table.RoleDate, 5, math.NaN(), 9),
		numCol("random", table.RoleDate, 0, 9, 1),
		numCol("death", table.RoleDate, 10, 11, 12),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"birth", "visit", "death"},
		constraint.DetectDateOrder(src, []string{"birth", "visit", "random", "death"}))
	assert.Nil(t, constraint.DetectDateOrder(src, []string{"random"}))
}

func TestOptionsPanic(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { constraint.WithMaxIterations(0) })
	assert.Panics(t, func() { constraint.WithNoExtreme(0.5) })
	assert.Panics(t, func() { constraint.WithNoExtreme(-0.1) })
	assert.Panics(t, func() { constraint.WithLogger(nil) })
}
