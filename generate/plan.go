// SPDX-License-Identifier: MIT

package generate

import (
	"github.com/katalvlaran/synthdata/detect"
	"github.com/katalvlaran/synthdata/profile"
	"github.com/katalvlaran/synthdata/table"
)

// Plan is the classified, analysed view of the source a strategy consumes.
// Column roles are read from Column.Role.
type Plan struct {
	Source *table.Table

	Numeric     []string // continuous and integer, derived targets removed
	Dates       []string
	Categorical []string // categorical role, not in an association
	Strings     []string // string role, not in an association

	Associations []detect.Association
	Derived      []detect.Derived

	Profiles map[string]*profile.VariableProfile
	// Empirical marks non-normal columns for the adaptive strategy.
	Empirical map[string]bool

	output []string
}

// NewPlan groups the columns of src by role. rel and an may be nil.
func NewPlan(src *table.Table, rel *detect.Relationships, an *profile.Analysis) *Plan {
	p := &Plan{Source: src, Empirical: map[string]bool{}, Profiles: map[string]*profile.VariableProfile{}}
	if rel == nil {
		rel = &detect.Relationships{}
	}
	p.Associations = rel.Associations
	p.Derived = rel.Derived
	if an != nil {
		p.Profiles = an.Profiles
		for _, n := range an.Empirical {
			p.Empirical[n] = true
		}
	}

	for _, c := range src.Columns() {
		switch c.Role {
		case table.RoleContinuous, table.RoleInteger:
			p.output = append(p.output, c.Name)
			if !rel.IsDerived(c.Name) {
				p.Numeric = append(p.Numeric, c.Name)
			}
		case table.RoleDate:
			p.output = append(p.output, c.Name)
			p.Dates = append(p.Dates, c.Name)
		case table.RoleCategorical:
			p.output = append(p.output, c.Name)
			if !rel.Paired(c.Name) {
				p.Categorical = append(p.Categorical, c.Name)
			}
		case table.RoleString:
			p.output = append(p.output, c.Name)
			if !rel.Paired(c.Name) {
				p.Strings = append(p.Strings, c.Name)
			}
		}
	}

	return p
}

// Output lists the columns a strategy emits, in source order. Derived
// targets are included and left missing.
func (p *Plan) Output() []string { return p.output }

// profileOf returns the stored profile or computes one on demand.
func (p *Plan) profileOf(c *table.Column) *profile.VariableProfile {
	if vp, ok := p.Profiles[c.Name]; ok && vp != nil {
		return vp
	}

	return profile.Of(c)
}

// newOutput allocates the all-missing output table of n rows.
func (p *Plan) newOutput(n int) *table.Table {
	cols := make([]*table.Column, 0, len(p.output))
	for _, name := range p.output {
		src, _ := p.Source.Column(name)
		cols = append(cols, table.NewLike(src, n))
	}
	out, _ := table.New(cols...)

	return out
}

func (p *Plan) isDerived(name string) bool {
	for _, d := range p.Derived {
		if d.Target == name {
			return true
		}
	}

	return false
}

func (p *Plan) src(name string) *table.Column {
	c, _ := p.Source.Column(name)

	return c
}
