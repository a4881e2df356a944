// SPDX-License-Identifier: MIT

package constraint

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Op is a comparison operator.
type Op int

const (
	OpGE Op = iota + 1 // >=
	OpLE               // <=
	OpGT               // >
	OpLT               // <
)

var opSymbols = map[Op]string{OpGE: ">=", OpLE: "<=", OpGT: ">", OpLT: "<"}

func (o Op) String() string { return opSymbols[o] }

// holds reports whether a o b.
func (o Op) holds(a, b float64) bool {
	switch o {
	case OpGE:
		return a >= b
	case OpLE:
		return a <= b
	case OpGT:
		return a > b
	case OpLT:
		return a < b
	}

	return true
}

// lower reports whether the operator bounds its left side from below.
func (o Op) lower() bool { return o == OpGE || o == OpGT }

func (o Op) strict() bool { return o == OpGT || o == OpLT }

// Constraint is "Left Op Value" or, when Column is set, "Left Op Column".
type Constraint struct {
	Left   string
	Op     Op
	Value  float64
	Column string
}

// String renders the constraint in parseable form.
func (c Constraint) String() string {
	if c.Column != "" {
		return fmt.Sprintf("%s %s %s", c.Left, c.Op, c.Column)
	}

	return fmt.Sprintf("%s %s %s", c.Left, c.Op, strconv.FormatFloat(c.Value, 'g', -1, 64))
}

var (
	constraintRe = regexp.MustCompile(`^\s*([A-Za-z_][\w.]*)\s*(>=|<=|>|<)\s*(\S+)\s*$`)
	identRe      = regexp.MustCompile(`^[A-Za-z_][\w.]*$`)
)

// Parse reads one constraint such as "age >= 0" or "start < end".
// Errors: ErrSyntax.
func Parse(s string) (Constraint, error) {
	m := constraintRe.FindStringSubmatch(s)
	if m == nil {
		return Constraint{}, fmt.Errorf("%q: %w", s, ErrSyntax)
	}
	c := Constraint{Left: m[1]}
	for op, sym := range opSymbols {
		if sym == m[2] {
			c.Op = op
		}
	}
	if v, err := strconv.ParseFloat(m[3], 64); err == nil {
		c.Value = v
		return c, nil
	}
	if !identRe.MatchString(m[3]) || m[3] == c.Left {
		return Constraint{}, fmt.Errorf("%q: %w", s, ErrSyntax)
	}
	c.Column = m[3]

	return c, nil
}

// ParseAll parses every non-blank entry.
func ParseAll(list []string) ([]Constraint, error) {
	out := make([]Constraint, 0, len(list))
	for _, s := range list {
		if strings.TrimSpace(s) == "" {
			continue
		}
		c, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, nil
}

// Bound clips Column to [Lo, Hi].
type Bound struct {
	Column string
	Lo, Hi float64
}

// ParseBounds reads "age 0 120, income 0 1e6": comma-separated triples of
// column, lower and upper bound. "." leaves a side open.
// Errors: ErrSyntax, ErrBadBounds.
func ParseBounds(s string) ([]Bound, error) {
	var out []Bound
	for _, part := range strings.Split(s, ",") {
		f := strings.Fields(part)
		if len(f) == 0 {
			continue
		}
		if len(f) != 3 || !identRe.MatchString(f[0]) {
			return nil, fmt.Errorf("%q: %w", part, ErrSyntax)
		}
		lo, err1 := parseBound(f[1], -inf)
		hi, err2 := parseBound(f[2], inf)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%q: %w", part, ErrSyntax)
		}
		if lo > hi {
			return nil, fmt.Errorf("%s: %w", f[0], ErrBadBounds)
		}
		out = append(out, Bound{Column: f[0], Lo: lo, Hi: hi})
	}

	return out, nil
}

func parseBound(s string, open float64) (float64, error) {
	if s == "." {
		return open, nil
	}

	return strconv.ParseFloat(s, 64)
}
