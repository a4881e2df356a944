// SPDX-License-Identifier: MIT

package constraint

import (
	"math"

	"github.com/katalvlaran/synthdata/table"
)

// SortRows sorts the values of cols within each row so that they are
// non-decreasing in column order. Missing cells keep their position and the
// observed values are sorted among the remaining slots. Returns the number
// of rows changed.
func SortRows(cols []*table.Column) int {
	if len(cols) < 2 {
		return 0
	}
	n := cols[0].Len()
	slots := make([]int, 0, len(cols))
	vals := make([]float64, 0, len(cols))
	changed := 0
	for i := 0; i < n; i++ {
		slots, vals = slots[:0], vals[:0]
		for j, c := range cols {
			if v := c.Num[i]; !math.IsNaN(v) {
				slots = append(slots, j)
				vals = append(vals, v)
			}
		}
		if insertionSort(vals) {
			for k, j := range slots {
				cols[j].Num[i] = vals[k]
			}
			changed++
		}
	}

	return changed
}

// insertionSort sorts a short slice in place and reports whether anything moved.
func insertionSort(a []float64) bool {
	moved := false
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}
		if j+1 != i {
			a[j+1] = v
			moved = true
		}
	}

	return moved
}

// DetectDateOrder returns the longest prefix-greedy chain of date columns,
// in declaration order, such that each column is ≥ every earlier chain
// member in all source rows where both are observed (and at least one such
// row exists). Fewer than two columns returns nil.
func DetectDateOrder(src *table.Table, dates []string) []string {
	var chain []*table.Column
	for _, name := range dates {
		c, ok := src.Column(name)
		if !ok || c.Kind != table.KindNumeric {
			continue
		}
		fits := true
		for _, prev := range chain {
			if !ordered(prev, c) {
				fits = false
				break
			}
		}
		if fits {
			chain = append(chain, c)
		}
	}
	if len(chain) < 2 {
		return nil
	}
	out := make([]string, len(chain))
	for i, c := range chain {
		out[i] = c.Name
	}

	return out
}

func ordered(a, b *table.Column) bool {
	both := 0
	for i := range a.Num {
		x, y := a.Num[i], b.Num[i]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		if x > y {
			return false
		}
		both++
	}

	return both > 0
}
