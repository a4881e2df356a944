// SPDX-License-Identifier: MIT

package table

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DateFormat is the display format given to day-count date columns.
const DateFormat = "%td"

// decimalFormat matches printf-style numeric formats with a precision,
// e.g. "%9.2f", "%.3g", "%10.0f".
var decimalFormat = regexp.MustCompile(`^%-?\d*\.(\d+)[fgeFGE]c?$`)

// Column is one named variable of a Table.
type Column struct {
	Name string
	Kind Kind
	// Role is the declared role; RoleUnknown until classified.
	Role Role
	// Labels maps numeric codes to display text (value labels).
	Labels map[float64]string
	// Format is the display format; only date detection and decimal
	// precision are read from it.
	Format string

	Num []float64 // KindNumeric storage; NaN = missing
	Str []string  // KindText storage; "" = missing
}

// NewNumeric returns a numeric column holding a copy of values.
func NewNumeric(name string, values []float64) *Column {
	return &Column{Name: name, Kind: KindNumeric, Num: append([]float64(nil), values...)}
}

// NewText returns a text column holding a copy of values.
func NewText(name string, values []string) *Column {
	return &Column{Name: name, Kind: KindText, Str: append([]string(nil), values...)}
}

// NewLike returns an all-missing column of length n carrying c's name, kind,
// role, labels and format.
func NewLike(c *Column, n int) *Column {
	out := &Column{Name: c.Name, Kind: c.Kind, Role: c.Role, Labels: copyLabels(c.Labels), Format: c.Format}
	if c.Kind == KindText {
		out.Str = make([]string, n)
		return out
	}
	out.Num = make([]float64, n)
	for i := range out.Num {
		out.Num[i] = math.NaN()
	}

	return out
}

// Len returns the number of rows.
func (c *Column) Len() int {
	if c.Kind == KindText {
		return len(c.Str)
	}

	return len(c.Num)
}

// IsMissing reports whether row i is missing.
func (c *Column) IsMissing(i int) bool {
	if c.Kind == KindText {
		return c.Str[i] == ""
	}

	return math.IsNaN(c.Num[i])
}

// SetMissing blanks row i.
func (c *Column) SetMissing(i int) {
	if c.Kind == KindText {
		c.Str[i] = ""
		return
	}
	c.Num[i] = math.NaN()
}

// MissingCount returns the number of missing rows.
func (c *Column) MissingCount() int {
	var k int
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			k++
		}
	}

	return k
}

// MissingRate returns the share of missing rows (0 for an empty column).
func (c *Column) MissingRate() float64 {
	if c.Len() == 0 {
		return 0
	}

	return float64(c.MissingCount()) / float64(c.Len())
}

// AllMissing reports whether no row carries a value.
func (c *Column) AllMissing() bool {
	return c.MissingCount() == c.Len()
}

// Key returns row i as a discrete key: the text itself, or the shortest
// round-tripping decimal for numbers. Missing rows give "".
func (c *Column) Key(i int) string {
	if c.Kind == KindText {
		return c.Str[i]
	}
	if math.IsNaN(c.Num[i]) {
		return ""
	}

	return FormatKey(c.Num[i])
}

// SetKey stores a key produced by Key. "" stores missing.
func (c *Column) SetKey(i int, key string) error {
	if c.Kind == KindText {
		c.Str[i] = key
		return nil
	}
	if key == "" {
		c.Num[i] = math.NaN()
		return nil
	}
	v, err := strconv.ParseFloat(key, 64)
	if err != nil {
		return ErrBadKey
	}
	c.Num[i] = v

	return nil
}

// Keys returns Key(i) for every row.
func (c *Column) Keys() []string {
	out := make([]string, c.Len())
	for i := range out {
		out[i] = c.Key(i)
	}

	return out
}

// FormatKey renders a number the way Key does.
func FormatKey(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// UniqueCount returns the number of distinct non-missing values.
func (c *Column) UniqueCount() int {
	seen := make(map[string]struct{})
	for i := 0; i < c.Len(); i++ {
		if k := c.Key(i); k != "" {
			seen[k] = struct{}{}
		}
	}

	return len(seen)
}

// NonMissing returns the number of rows carrying a value.
func (c *Column) NonMissing() int { return c.Len() - c.MissingCount() }

// AllWhole reports whether every non-missing numeric value is an integer.
// Text columns and all-missing columns report false.
func (c *Column) AllWhole() bool {
	if c.Kind == KindText {
		return false
	}
	seen := false
	for _, v := range c.Num {
		if math.IsNaN(v) {
			continue
		}
		seen = true
		if v != math.Trunc(v) {
			return false
		}
	}

	return seen
}

// HasLabels reports whether a value-label map is attached.
func (c *Column) HasLabels() bool { return len(c.Labels) > 0 }

// IsDateFormat reports whether the display format is a date/time format
// ("%t..." or legacy "%d...").
func (c *Column) IsDateFormat() bool {
	f := strings.TrimSpace(c.Format)

	return strings.HasPrefix(f, "%t") || strings.HasPrefix(f, "%-t") ||
		(strings.HasPrefix(f, "%d") && len(f) > 2)
}

// HasDecimalFormat reports whether the format shows a positive decimal precision.
func (c *Column) HasDecimalFormat() bool {
	d, ok := c.Precision()

	return ok && d > 0
}

// Precision returns the decimal precision of a printf-style numeric format.
func (c *Column) Precision() (int, bool) {
	m := decimalFormat.FindStringSubmatch(strings.TrimSpace(c.Format))
	if m == nil {
		return 0, false
	}
	d, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	return d, true
}

// Clone returns a deep copy.
func (c *Column) Clone() *Column {
	out := &Column{Name: c.Name, Kind: c.Kind, Role: c.Role, Labels: copyLabels(c.Labels), Format: c.Format}
	if c.Num != nil {
		out.Num = append([]float64(nil), c.Num...)
	}
	if c.Str != nil {
		out.Str = append([]string(nil), c.Str...)
	}

	return out
}

func copyLabels(m map[float64]string) map[float64]string {
	if m == nil {
		return nil
	}
	out := make(map[float64]string, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}
