// SPDX-License-Identifier: MIT

package detect

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
)

// jointSep separates the two keys of a joint frequency-table key.
const jointSep = "\x1f"

// Association is a pair of categorical columns synthesized jointly.
type Association struct {
	A, B string
	V    float64
	// Joint counts over rows where both A and B are present; keys are JointKey(a, b).
	Joint *stats.FreqTable
}

// JointKey builds the key of a (a, b) cell.
func JointKey(a, b string) string { return a + jointSep + b }

// SplitJointKey reverses JointKey.
func SplitJointKey(k string) (string, string) {
	a, b, _ := strings.Cut(k, jointSep)

	return a, b
}

// FindAssociations pairs categorical columns greedily: pairs (i, j), i < j,
// are visited in declaration order and the first pair with Cramér's V above
// the threshold claims both columns. A claimed column is not reconsidered.
func FindAssociations(t *table.Table, columns []string, opts ...Option) []Association {
	cfg := newConfig(opts...)
	cols := make([]*table.Column, 0, len(columns))
	keys := make([][]string, 0, len(columns))
	for _, n := range columns {
		if c, ok := t.Column(n); ok {
			cols = append(cols, c)
			keys = append(keys, c.Keys())
		}
	}

	paired := make([]bool, len(cols))
	var out []Association
	for i := 0; i < len(cols); i++ {
		if paired[i] {
			continue
		}
		for j := i + 1; j < len(cols); j++ {
			if paired[j] {
				continue
			}
			ct, err := stats.NewContingency(keys[i], keys[j])
			if err != nil {
				continue
			}
			v := ct.CramersV()
			if v <= cfg.cramerV {
				continue
			}
			out = append(out, Association{A: cols[i].Name, B: cols[j].Name, V: v, Joint: jointTable(ct)})
			paired[i], paired[j] = true, true

			break
		}
	}

	return out
}

func jointTable(ct *stats.Contingency) *stats.FreqTable {
	counts := make(map[string]float64)
	for i, a := range ct.Rows {
		for j, b := range ct.Cols {
			if c := ct.Counts[i][j]; c > 0 {
				counts[JointKey(a, b)] = c
			}
		}
	}

	return stats.FromCounts(counts)
}

// Relationships bundles everything the detector found for one run.
type Relationships struct {
	Derived      []Derived
	Associations []Association
}

// IsDerived reports whether name is the target of a formula.
func (r *Relationships) IsDerived(name string) bool {
	for _, d := range r.Derived {
		if d.Target == name {
			return true
		}
	}

	return false
}

// Paired reports whether name belongs to a joint group.
func (r *Relationships) Paired(name string) bool {
	for _, a := range r.Associations {
		if a.A == name || a.B == name {
			return true
		}
	}

	return false
}

func unknown(name string) error {
	return fmt.Errorf("detect: %q: %w", name, table.ErrUnknownColumn)
}
