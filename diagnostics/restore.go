// SPDX-License-Identifier: MIT

package diagnostics

import (
	"github.com/katalvlaran/synthdata/table"
)

// Restore copies value labels, display formats and roles from the source columns
// onto the synthetic columns of the same name and returns a table in source
// column order. Synthetic-only columns (for example a panel row index)
// follow the key column they were attached to, or go last.
//
// Errors: ErrNilTable.
func Restore(src, syn *table.Table) (*table.Table, error) {
	if src == nil || syn == nil {
		return nil, ErrNilTable
	}
	for _, c := range syn.Columns() {
		sc, ok := src.Column(c.Name)
		if !ok {
			continue
		}
		if sc.HasLabels() {
			c.Labels = make(map[float64]string, len(sc.Labels))
			for k, v := range sc.Labels {
				c.Labels[k] = v
			}
		}
		if sc.Format != "" {
			c.Format = sc.Format
		}
		if sc.Role != table.RoleUnknown {
			c.Role = sc.Role
		}
	}

	names := make([]string, 0, syn.NumCols())
	placed := make(map[string]bool, syn.NumCols())
	for _, name := range src.Names() {
		if _, ok := syn.Column(name); !ok {
			continue
		}
		names = append(names, name)
		placed[name] = true
		// extras declared right after this column in syn travel with it
		for j := syn.Index(name) + 1; j < syn.NumCols(); j++ {
			next := syn.Col(j).Name
			if _, inSrc := src.Column(next); inSrc || placed[next] {
				break
			}
			names = append(names, next)
			placed[next] = true
		}
	}
	for _, name := range syn.Names() {
		if !placed[name] {
			names = append(names, name)
		}
	}

	return syn.Select(names...)
}
