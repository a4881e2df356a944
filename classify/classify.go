// SPDX-License-Identifier: MIT

package classify

import "github.com/katalvlaran/synthdata/table"

// Thresholds of the decision tree.
const (
	FewValuesMax       = 10
	HighRatio          = 0.50
	ManyValuesMin      = 50
	ManyValuesRatio    = 0.20
	LowRatio           = 0.05
	LowRatioValuesMax  = 30
	SmallIntValuesMax  = 25
	IntegerValuesAbove = 20
)

// Rule identifies which branch of the decision tree fired.
type Rule int

const (
	RuleAllMissing Rule = iota + 1
	RuleText
	RuleOverride
	RuleLabels
	RuleDateFormat
	RuleFewValues
	RuleDecimalFormat
	RuleHighUniqueness
	RuleLowUniqueness
	RuleSmallInteger
	RuleDefault
	RuleIntegerPromotion
)

var ruleNames = map[Rule]string{
	RuleAllMissing:       "all values missing",
	RuleText:             "text storage",
	RuleOverride:         "explicit override",
	RuleLabels:           "value labels attached",
	RuleDateFormat:       "date display format",
	RuleFewValues:        "at most 10 distinct values",
	RuleDecimalFormat:    "decimal display format",
	RuleHighUniqueness:   "high uniqueness ratio",
	RuleLowUniqueness:    "low uniqueness ratio",
	RuleSmallInteger:     "few distinct whole numbers",
	RuleDefault:          "default",
	RuleIntegerPromotion: "whole-number continuous",
}

// String describes the rule.
func (r Rule) String() string {
	if s, ok := ruleNames[r]; ok {
		return s
	}

	return "unknown rule"
}

// Decision is the role chosen for one column and why.
type Decision struct {
	Column string
	Role   table.Role
	Rule   Rule
	Unique int
	Ratio  float64
}

// Result holds one Decision per column, in table order.
type Result struct {
	Decisions []Decision
	byName    map[string]int
}

// Role returns the role assigned to name (RoleUnknown when absent).
func (r *Result) Role(name string) table.Role {
	if i, ok := r.byName[name]; ok {
		return r.Decisions[i].Role
	}

	return table.RoleUnknown
}

// Roles returns the name → role mapping.
func (r *Result) Roles() map[string]table.Role {
	out := make(map[string]table.Role, len(r.Decisions))
	for _, d := range r.Decisions {
		out[d.Column] = d.Role
	}

	return out
}

// Columns returns the names assigned role, in table order.
func (r *Result) Columns(role table.Role) []string {
	var out []string
	for _, d := range r.Decisions {
		if d.Role == role {
			out = append(out, d.Column)
		}
	}

	return out
}

// Apply writes the roles onto the table's columns.
func (r *Result) Apply(t *table.Table) {
	for _, d := range r.Decisions {
		if c, ok := t.Column(d.Column); ok {
			c.Role = d.Role
		}
	}
}

// Classify returns the role of every column of t. overrides may be nil.
func Classify(t *table.Table, overrides map[string]table.Role) *Result {
	res := &Result{byName: make(map[string]int, t.NumCols())}
	for _, c := range t.Columns() {
		d := decide(c, overrides)
		res.byName[c.Name] = len(res.Decisions)
		res.Decisions = append(res.Decisions, d)
	}

	return res
}

// ClassifyColumn runs the decision tree on a single column.
func ClassifyColumn(c *table.Column, overrides map[string]table.Role) Decision {
	return decide(c, overrides)
}

func decide(c *table.Column, overrides map[string]table.Role) Decision {
	d := Decision{Column: c.Name, Unique: c.UniqueCount()}
	if nm := c.NonMissing(); nm > 0 {
		d.Ratio = float64(d.Unique) / float64(nm)
	}
	set := func(role table.Role, rule Rule) Decision {
		d.Role, d.Rule = role, rule
		return d
	}

	if c.Kind == table.KindText {
		return set(table.RoleString, RuleText)
	}
	if role, ok := overrides[c.Name]; ok && role != table.RoleUnknown {
		return set(role, RuleOverride)
	}
	if c.AllMissing() {
		return set(table.RoleContinuous, RuleAllMissing)
	}
	if c.HasLabels() {
		return set(table.RoleCategorical, RuleLabels)
	}
	if c.IsDateFormat() {
		return set(table.RoleDate, RuleDateFormat)
	}
	if d.Unique <= FewValuesMax {
		return set(table.RoleCategorical, RuleFewValues)
	}
	if c.HasDecimalFormat() {
		return promote(set(table.RoleContinuous, RuleDecimalFormat), c)
	}
	if d.Ratio > HighRatio || (d.Unique > ManyValuesMin && d.Ratio > ManyValuesRatio) {
		return promote(set(table.RoleContinuous, RuleHighUniqueness), c)
	}
	if d.Ratio < LowRatio && d.Unique <= LowRatioValuesMax {
		return set(table.RoleCategorical, RuleLowUniqueness)
	}
	whole := c.AllWhole()
	if whole && d.Unique <= SmallIntValuesMax {
		return set(table.RoleCategorical, RuleSmallInteger)
	}

	return promote(set(table.RoleContinuous, RuleDefault), c)
}

// promote applies the integer post-pass to a continuous decision: whole
// numbers with more than IntegerValuesAbove distinct values become integer,
// whatever display format they carry.
func promote(d Decision, c *table.Column) Decision {
	if d.Role != table.RoleContinuous || c.Kind != table.KindNumeric {
		return d
	}
	if c.HasLabels() || c.IsDateFormat() || d.Unique <= IntegerValuesAbove || !c.AllWhole() {
		return d
	}
	d.Role, d.Rule = table.RoleInteger, RuleIntegerPromotion

	return d
}
