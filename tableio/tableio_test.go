// SPDX-License-Identifier: MIT
package tableio_test

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/katalvlaran/synthdata/table"
	"github.com/katalvlaran/synthdata/tableio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const people = `pid,age,income,visit,sex,city
1,34,1200.50,2020-01-15,1,Lyon
1,35,1300.25,2021-02-01,1,Lyon
2,NA,,2020-03-10,2,
3,51,980.5,.,2,Nice
`

func TestReadCSV_Inference(t *testing.T) {
	t.Parallel()

	tb, err := tableio.ReadCSV(strings.NewReader(people))
	require.NoError(t, err)
	assert.Equal(t, 4, tb.NumRows())
	assert.Equal(t, []string{"pid", "age", "income", "visit", "sex", "city"}, tb.Names())

	age, _ := tb.Column("age")
	assert.Equal(t, table.KindNumeric, age.Kind)
	assert.Empty(t, age.Format)
	assert.True(t, age.IsMissing(2))

	income, _ := tb.Column("income")
	assert.Equal(t, "%.2f", income.Format)
	assert.InDelta(t, 980.5, income.Num[3], 0)
	assert.True(t, income.IsMissing(2))

	visit, _ := tb.Column("visit")
	assert.Equal(t, table.DateFormat, visit.Format)
	assert.True(t, visit.IsDateFormat())
	want := tableio.DayNumber(time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC))
	assert.InDelta(t, float64(want), visit.Num[0], 0)
	assert.True(t, visit.IsMissing(3))

	city, _ := tb.Column("city")
	assert.Equal(t, table.KindText, city.Kind)
	assert.Equal(t, []string{"Lyon", "Lyon", "", "Nice"}, city.Str)
}

func TestReadCSV_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		err  error
	}{
		{"empty", "", tableio.ErrNoHeader},
		{"duplicate", "a,b,a\n1,2,3\n", tableio.ErrDuplicateColumn},
		{"ragged", "a,b\n1,2\n3\n", tableio.ErrRaggedRow},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := tableio.ReadCSV(strings.NewReader(tc.in))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestReadCSV_Options(t *testing.T) {
	t.Parallel()

	in := "a;b\n1;-99\n2;3\n3;4\n"
	tb, err := tableio.ReadCSV(strings.NewReader(in),
		tableio.WithDelimiter(';'), tableio.WithMissing("-99"), tableio.WithMaxRows(2))
	require.NoError(t, err)
	assert.Equal(t, 2, tb.NumRows())
	b, _ := tb.Column("b")
	assert.True(t, b.IsMissing(0))

	assert.Panics(t, func() { tableio.WithDelimiter('"') })
	assert.Panics(t, func() { tableio.WithMaxRows(-1) })
}

func TestDayNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(0), tableio.DayNumber(tableio.Epoch))
	assert.Equal(t, int64(-1), tableio.DayNumber(time.Date(1959, 12, 31, 23, 0, 0, 0, time.UTC)))
	d := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.True(t, d.Equal(tableio.DayTime(tableio.DayNumber(d))))
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	t.Parallel()

	src, err := tableio.ReadCSV(strings.NewReader(people))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tableio.WriteCSV(&buf, src))
	out := buf.String()
	assert.Contains(t, out, "2020-01-15")
	assert.Contains(t, out, "980.50")
	assert.Contains(t, out, "2,,,2020-03-10,2,\n")

	back, err := tableio.ReadCSV(&buf)
	require.NoError(t, err)
	for _, name := range src.Names() {
		a, _ := src.Column(name)
		b, _ := back.Column(name)
		assert.Equal(t, a.Kind, b.Kind, name)
		assert.Equal(t, a.Format, b.Format, name)
		assert.Equal(t, a.Keys(), b.Keys(), name)
	}
}

func TestSaveReplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tb, err := table.New(table.NewNumeric("x", []float64{1, math.NaN()}))
	require.NoError(t, err)

	paths, err := tableio.SaveReplicates(filepath.Join(dir, "syn.csv"), []*table.Table{tb, tb, tb})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "syn_1.csv"), filepath.Join(dir, "syn_2.csv"), filepath.Join(dir, "syn_3.csv"),
	}, paths)
	raw, err := os.ReadFile(paths[2])
	require.NoError(t, err)
	assert.Equal(t, "x\n1\n\n", string(raw))

	one := tableio.ReplicatePaths("out.csv", 1)
	assert.Equal(t, []string{"out.csv"}, one)

	_, err = tableio.SaveReplicates("x.csv", nil)
	assert.ErrorIs(t, err, tableio.ErrNoTables)
}

func TestLoadCSV_TSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "in.tsv")
	require.NoError(t, os.WriteFile(path, []byte("a\tb\n1\tx\n"), 0o600))
	tb, err := tableio.LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tb.Names())
}

func TestMeta(t *testing.T) {
	t.Parallel()

	tb, err := tableio.ReadCSV(strings.NewReader(people))
	require.NoError(t, err)

	side := `
columns:
  sex:
    role: categorical
    labels: {"1": male, "2": female}
  income:
    format: "%9.2f"
  pid:
    role: id
`
	m, err := tableio.ReadMeta(strings.NewReader(side))
	require.NoError(t, err)
	require.NoError(t, m.Apply(tb))

	sex, _ := tb.Column("sex")
	assert.Equal(t, "female", sex.Labels[2])
	income, _ := tb.Column("income")
	assert.Equal(t, "%9.2f", income.Format)

	roles, err := m.Roles()
	require.NoError(t, err)
	assert.Equal(t, map[string]table.Role{"sex": table.RoleCategorical, "pid": table.RoleIdentifier}, roles)

	sex.Role = table.RoleCategorical
	var buf bytes.Buffer
	require.NoError(t, tableio.MetaOf(tb).Write(&buf))
	back, err := tableio.ReadMeta(&buf)
	require.NoError(t, err)
	assert.Equal(t, "male", back.Columns["sex"].Labels["1"])
	assert.Equal(t, "categorical", back.Columns["sex"].Role)
	assert.Equal(t, table.DateFormat, back.Columns["visit"].Format)
	_, listed := back.Columns["city"]
	assert.False(t, listed)
}

func TestMeta_Errors(t *testing.T) {
	t.Parallel()

	tb, err := table.New(table.NewNumeric("x", []float64{1}))
	require.NoError(t, err)

	m := &tableio.Meta{Columns: map[string]tableio.ColumnMeta{"y": {Format: "%td"}}}
	assert.ErrorIs(t, m.Apply(tb), tableio.ErrUnknownColumn)

	m = &tableio.Meta{Columns: map[string]tableio.ColumnMeta{"x": {Labels: map[string]string{"one": "1"}}}}
	assert.ErrorIs(t, m.Apply(tb), tableio.ErrBadLabel)

	m = &tableio.Meta{Columns: map[string]tableio.ColumnMeta{"x": {Role: "blob"}}}
	_, err = m.Roles()
	assert.ErrorIs(t, err, table.ErrUnknownRole)
}

func TestLoadSQL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := tableio.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(ctx, `
		CREATE TABLE people (pid INTEGER, age REAL, city TEXT, joined TEXT);
		INSERT INTO people VALUES (1, 34.5, 'Lyon', '2020-01-15');
		INSERT INTO people VALUES (2, NULL, NULL, '2021-06-01');
		INSERT INTO people VALUES (3, 51, 'Nice', NULL);
	`)
	require.NoError(t, err)

	tb, err := tableio.LoadSQL(ctx, db, "SELECT pid, age, city, joined FROM people WHERE pid <= ? ORDER BY pid", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, tb.NumRows())

	age, _ := tb.Column("age")
	assert.Equal(t, table.KindNumeric, age.Kind)
	assert.InDelta(t, 34.5, age.Num[0], 0)
	assert.True(t, age.IsMissing(1))

	city, _ := tb.Column("city")
	assert.Equal(t, table.KindText, city.Kind)
	assert.Equal(t, []string{"Lyon", "", "Nice"}, city.Str)

	joined, _ := tb.Column("joined")
	assert.Equal(t, table.DateFormat, joined.Format)
	assert.True(t, joined.IsMissing(2))

	_, err = tableio.LoadSQL(ctx, db, "SELECT * FROM absent")
	assert.Error(t, err)
}
