// SPDX-License-Identifier: MIT
package diagnostics_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/katalvlaran/synthdata/diagnostics"
	"github.com/katalvlaran/synthdata/privacy"
	"github.com/katalvlaran/synthdata/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sourceTable(t *testing.T) *table.Table {
	t.Helper()
	x := table.NewNumeric("x", []float64{1, 2, 3, 4, 5})
	x.Role, x.Format = table.RoleContinuous, "%9.2f"
	sex := table.NewNumeric("sex", []float64{1, 2, 1, 2, 1})
	sex.Role = table.RoleCategorical
	sex.Labels = map[float64]string{1: "male", 2: "female"}
	id := table.NewNumeric("pid", []float64{1, 1, 2, 2, 3})
	id.Role = table.RoleIdentifier
	tb, err := table.New(id, x, sex)
	require.NoError(t, err)

	return tb
}

func TestRestore_LabelsFormatsOrder(t *testing.T) {
	t.Parallel()

	src := sourceTable(t)
	sex := table.NewNumeric("sex", []float64{1, 1, 2})
	x := table.NewNumeric("x", []float64{2, 3, 4})
	id := table.NewNumeric("pid", []float64{1, 1, 2})
	idx := table.NewNumeric("visit", []float64{1, 2, 1})
	extra := table.NewNumeric("zz", []float64{0, 0, 0})
	syn, err := table.New(sex, extra, x, id, idx)
	require.NoError(t, err)

	out, err := diagnostics.Restore(src, syn)
	require.NoError(t, err)
	assert.Equal(t, []string{"pid", "visit", "x", "sex", "zz"}, out.Names())

	rs, _ := out.Column("sex")
	assert.Equal(t, "female", rs.Labels[2])
	assert.Equal(t, table.RoleCategorical, rs.Role)
	rx, _ := out.Column("x")
	assert.Equal(t, "%9.2f", rx.Format)

	// labels are copied, not shared
	rs.Labels[1] = "changed"
	sc, _ := src.Column("sex")
	assert.Equal(t, "male", sc.Labels[1])

	_, err = diagnostics.Restore(nil, syn)
	assert.ErrorIs(t, err, diagnostics.ErrNilTable)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := diagnostics.Summarize([]float64{1, 2, 3, 4, 5, math.NaN()})
	assert.Equal(t, 5, s.N)
	assert.InDelta(t, 3, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), s.SD, 1e-12)
	assert.InDelta(t, 1.2, s.P5, 1e-12)
	assert.InDelta(t, 3, s.P50, 1e-12)
	assert.InDelta(t, 4.8, s.P95, 1e-12)

	empty := diagnostics.Summarize(nil)
	assert.Zero(t, empty.N)
	assert.True(t, math.IsNaN(empty.Mean))
}

func TestCompare(t *testing.T) {
	t.Parallel()

	src := sourceTable(t)
	x := table.NewNumeric("x", []float64{2, 3, 4, 5, 6})
	sex := table.NewNumeric("sex", []float64{1, 1, 1, 1, 2})
	syn, err := table.New(x, sex)
	require.NoError(t, err)

	rep, err := diagnostics.Compare(src, syn)
	require.NoError(t, err)
	assert.Equal(t, 5, rep.Rows)
	require.Len(t, rep.Numeric, 1)
	n := rep.Numeric[0]
	assert.Equal(t, "x", n.Column)
	assert.InDelta(t, 1, n.MeanDiff, 1e-12)
	assert.InDelta(t, 1/math.Sqrt(2.5), n.SMD, 1e-12)
	assert.InDelta(t, 1, n.SDRatio, 1e-12)

	require.Len(t, rep.Categorical, 1)
	c := rep.Categorical[0]
	assert.Equal(t, 2, c.Levels)
	assert.InDelta(t, 0.2, c.MaxFreqDiff, 1e-12)

	rep.RunID = "run-1"
	rep.Privacy = &privacy.DistanceReport{Sampled: 5, Threshold: 0.05, Min: 0.1}
	var buf bytes.Buffer
	require.NoError(t, rep.WriteText(&buf))
	assert.Contains(t, buf.String(), "run-1")
	assert.Contains(t, buf.String(), "privacy")

	raw, err := yaml.Marshal(rep)
	require.NoError(t, err)
	var back diagnostics.Report
	require.NoError(t, yaml.Unmarshal(raw, &back))
	assert.Equal(t, "run-1", back.RunID)
	assert.Equal(t, rep.Numeric[0].Column, back.Numeric[0].Column)
	assert.Equal(t, 5, back.Privacy.Sampled)
}
