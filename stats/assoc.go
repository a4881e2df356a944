// SPDX-License-Identifier: MIT

package stats

import (
	"math"
	"sort"
)

// Contingency is a two-way table of joint counts over complete pairs.
type Contingency struct {
	Rows, Cols []string    // sorted distinct keys
	Counts     [][]float64 // Counts[i][j] for (Rows[i], Cols[j])
	N          float64
}

// NewContingency cross-tabulates a and b, skipping pairs where either side is "".
func NewContingency(a, b []string) (*Contingency, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}
	ri := make(map[string]int)
	ci := make(map[string]int)
	for i := range a {
		if a[i] == "" || b[i] == "" {
			continue
		}
		ri[a[i]] = 0
		ci[b[i]] = 0
	}
	ct := &Contingency{Rows: sortedKeys(ri), Cols: sortedKeys(ci)}
	for i, k := range ct.Rows {
		ri[k] = i
	}
	for j, k := range ct.Cols {
		ci[k] = j
	}
	ct.Counts = make([][]float64, len(ct.Rows))
	for i := range ct.Counts {
		ct.Counts[i] = make([]float64, len(ct.Cols))
	}
	for i := range a {
		if a[i] == "" || b[i] == "" {
			continue
		}
		ct.Counts[ri[a[i]]][ci[b[i]]]++
		ct.N++
	}

	return ct, nil
}

// CramersV returns sqrt(χ²/(N·(min(r,c)-1))) of the table, 0 when either
// margin has a single level or the table is empty.
func (ct *Contingency) CramersV() float64 {
	r, c := len(ct.Rows), len(ct.Cols)
	k := r
	if c < k {
		k = c
	}
	if k < 2 || ct.N == 0 {
		return 0
	}
	rowSum := make([]float64, r)
	colSum := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			rowSum[i] += ct.Counts[i][j]
			colSum[j] += ct.Counts[i][j]
		}
	}
	var chi2 float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			e := rowSum[i] * colSum[j] / ct.N
			if e > 0 {
				d := ct.Counts[i][j] - e
				chi2 += d * d / e
			}
		}
	}
	v := math.Sqrt(chi2 / (ct.N * float64(k-1)))

	return math.Min(v, 1)
}

// CramersV is a convenience wrapper over NewContingency(a, b).CramersV().
func CramersV(a, b []string) (float64, error) {
	ct, err := NewContingency(a, b)
	if err != nil {
		return 0, err
	}

	return ct.CramersV(), nil
}

// ICC estimates the one-way ANOVA intraclass correlation ICC(1) of values
// grouped by groups, using complete observations (finite value, non-empty group).
//
//	ICC = (MSB - MSW) / (MSB + (n0-1)·MSW),  n0 = (N - Σn_g²/N)/(k-1)
//
// The estimate is clamped to [0, 1]; fewer than two groups, or no
// within-group degrees of freedom, returns 0.
func ICC(values []float64, groups []string) (float64, error) {
	if len(values) != len(groups) {
		return 0, ErrLengthMismatch
	}
	type acc struct{ n, sum, ss float64 }
	by := make(map[string]*acc)
	var total, grand float64
	for i, v := range values {
		if isMissing(v) || groups[i] == "" {
			continue
		}
		a := by[groups[i]]
		if a == nil {
			a = &acc{}
			by[groups[i]] = a
		}
		a.n++
		a.sum += v
		total++
		grand += v
	}
	k := float64(len(by))
	if k < 2 || total-k < 1 {
		return 0, nil
	}
	grand /= total
	for i, v := range values {
		if isMissing(v) || groups[i] == "" {
			continue
		}
		a := by[groups[i]]
		d := v - a.sum/a.n
		a.ss += d * d
	}

	keys := make([]string, 0, len(by))
	for g := range by {
		keys = append(keys, g)
	}
	sort.Strings(keys)
	var ssb, ssw, sumN2 float64
	for _, g := range keys {
		a := by[g]
		d := a.sum/a.n - grand
		ssb += a.n * d * d
		ssw += a.ss
		sumN2 += a.n * a.n
	}
	msb := ssb / (k - 1)
	msw := ssw / (total - k)
	n0 := (total - sumN2/total) / (k - 1)
	den := msb + (n0-1)*msw
	if den <= 0 {
		return 0, nil
	}
	icc := (msb - msw) / den

	return math.Max(0, math.Min(1, icc)), nil
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
