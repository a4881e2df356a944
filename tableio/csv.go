// SPDX-License-Identifier: MIT

package tableio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/katalvlaran/synthdata/table"
)

// Epoch is day 0 of date columns.
var Epoch = time.Date(1960, time.January, 1, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order; the first that parses wins.
var dateLayouts = []string{
	time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
}

// LoadCSV reads the CSV file at path. A *.tsv file defaults to tab-separated.
func LoadCSV(path string, opts ...Option) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		opts = append([]Option{WithDelimiter('\t')}, opts...)
	}

	return ReadCSV(f, opts...)
}

// ReadCSV reads a header record followed by data records and infers every
// column's kind and format.
//
// Errors: ErrNoHeader, ErrDuplicateColumn, ErrRaggedRow, or the csv error.
func ReadCSV(r io.Reader, opts ...Option) (*table.Table, error) {
	cfg := defaultReadConfig()
	for _, o := range opts {
		o(&cfg)
	}

	cr := csv.NewReader(r)
	cr.Comma = cfg.delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	names, err := headerNames(header)
	if err != nil {
		return nil, err
	}

	cells := make([][]string, len(names))
	for rows := 0; cfg.maxRows == 0 || rows < cfg.maxRows; rows++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", rows+1, err)
		}
		if len(rec) != len(names) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %d fields, want %d: %w", line, len(rec), len(names), ErrRaggedRow)
		}
		for j, v := range rec {
			cells[j] = append(cells[j], v)
		}
	}

	cols := make([]*table.Column, len(names))
	for j, name := range names {
		cols[j] = infer(name, cells[j], cfg.missing)
	}

	return table.New(cols...)
}

func headerNames(header []string) ([]string, error) {
	if len(header) == 0 {
		return nil, ErrNoHeader
	}
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for j, h := range header {
		h = strings.TrimSpace(h)
		if j == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if h == "" {
			h = fmt.Sprintf("var%d", j+1)
		}
		if seen[h] {
			return nil, fmt.Errorf("%q: %w", h, ErrDuplicateColumn)
		}
		seen[h] = true
		names[j] = h
	}

	return names, nil
}

// infer builds a column from raw cells: numeric, date or text, in that order
// of preference. A column with no observed cell is numeric.
func infer(name string, cells []string, missing map[string]bool) *table.Column {
	for i, s := range cells {
		cells[i] = strings.TrimSpace(s)
	}
	if c, ok := inferNumbers(name, cells, missing); ok {
		return c
	}
	if c, ok := inferDates(name, cells, missing); ok {
		return c
	}
	out := make([]string, len(cells))
	for i, s := range cells {
		if !missing[s] {
			out[i] = s
		}
	}

	return table.NewText(name, out)
}

// inferNumbers records the widest decimal precision seen as a "%.Nf" format.
func inferNumbers(name string, cells []string, missing map[string]bool) (*table.Column, bool) {
	num := make([]float64, len(cells))
	places := int32(0)
	for i, s := range cells {
		if missing[s] {
			num[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		num[i] = v
		if d, err := decimal.NewFromString(s); err == nil && -d.Exponent() > places {
			places = -d.Exponent()
		}
	}
	c := table.NewNumeric(name, num)
	if places > 0 {
		c.Format = fmt.Sprintf("%%.%df", places)
	}

	return c, true
}

func inferDates(name string, cells []string, missing map[string]bool) (*table.Column, bool) {
	days := make([]float64, len(cells))
	for i, s := range cells {
		if missing[s] {
			days[i] = math.NaN()
			continue
		}
		t, ok := parseDate(s)
		if !ok {
			return nil, false
		}
		days[i] = float64(DayNumber(t))
	}
	c := table.NewNumeric(name, days)
	c.Format = table.DateFormat

	return c, true
}

func parseDate(s string) (time.Time, bool) {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// DayNumber returns the calendar day of t, in t's own location, as days
// since Epoch.
func DayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	secs := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() - Epoch.Unix()

	return secs / 86400
}

// DayTime is the inverse of DayNumber.
func DayTime(day int64) time.Time {
	return Epoch.AddDate(0, 0, int(day))
}

// SaveCSV writes t to path.
func SaveCSV(path string, t *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// SaveReplicates writes one table to path, or k tables to base_1.ext ...
// base_k.ext, and returns the paths written.
//
// Errors: ErrNoTables, or the first write error.
func SaveReplicates(path string, tables []*table.Table) ([]string, error) {
	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	paths := ReplicatePaths(path, len(tables))
	for k, t := range tables {
		if err := SaveCSV(paths[k], t); err != nil {
			return paths[:k], err
		}
	}

	return paths, nil
}

// ReplicatePaths returns the file names SaveReplicates uses for k tables.
func ReplicatePaths(path string, k int) []string {
	if k == 1 {
		return []string{path}
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	out := make([]string, k)
	for i := range out {
		out[i] = fmt.Sprintf("%s_%d%s", base, i+1, ext)
	}

	return out
}

// WriteCSV writes a header and one record per row. Missing cells are empty,
// date columns are ISO dates, decimal-formatted columns are fixed-point at
// their precision.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return err
	}
	render := make([]func(int) string, t.NumCols())
	for j, c := range t.Columns() {
		render[j] = renderer(c)
	}
	rec := make([]string, t.NumCols())
	for i := 0; i < t.NumRows(); i++ {
		for j := range rec {
			rec[j] = render[j](i)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

func renderer(c *table.Column) func(int) string {
	if c.Kind == table.KindText {
		return func(i int) string { return c.Str[i] }
	}
	value := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	switch places, ok := c.Precision(); {
	case c.IsDateFormat():
		value = func(v float64) string { return DayTime(int64(math.Round(v))).Format("2006-01-02") }
	case ok:
		value = func(v float64) string { return decimal.NewFromFloat(v).StringFixed(int32(places)) }
	}

	return func(i int) string {
		v := c.Num[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ""
		}
		return value(v)
	}
}
