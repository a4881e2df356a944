// SPDX-License-Identifier: MIT

package stats

import (
	"math"
	"sort"
)

// ECDF is an empirical distribution over the finite values of a sample.
// The i-th order statistic (0-based) sits at plotting position (i+0.5)/n.
type ECDF struct {
	values []float64
}

// NewECDF sorts the finite values of xs. Errors: ErrEmpty.
func NewECDF(xs []float64) (*ECDF, error) {
	v := Sorted(xs)
	if len(v) == 0 {
		return nil, ErrEmpty
	}

	return &ECDF{values: v}, nil
}

// Len returns the number of observations.
func (e *ECDF) Len() int { return len(e.values) }

// Min returns the smallest observation.
func (e *ECDF) Min() float64 { return e.values[0] }

// Max returns the largest observation.
func (e *ECDF) Max() float64 { return e.values[len(e.values)-1] }

// Values returns the sorted sample. Callers must not modify it.
func (e *ECDF) Values() []float64 { return e.values }

// Inverse maps u ∈ [0, 1] to a value by linear interpolation between the
// order statistics at their plotting positions. Results never leave [Min, Max].
func (e *ECDF) Inverse(u float64) float64 {
	n := len(e.values)
	if n == 1 {
		return e.values[0]
	}
	pos := u*float64(n) - 0.5
	if pos <= 0 || math.IsNaN(pos) {
		return e.values[0]
	}
	if pos >= float64(n-1) {
		return e.values[n-1]
	}
	lo := int(pos)
	w := pos - float64(lo)

	return e.values[lo]*(1-w) + e.values[lo+1]*w
}

// CDF is the interpolated inverse of Inverse: it returns the plotting
// position of x, clamped to [0.5/n, 1-0.5/n] so it stays strictly inside (0, 1).
// Ties resolve to the mid position of the tied block.
func (e *ECDF) CDF(x float64) float64 {
	n := len(e.values)
	lo := 0.5 / float64(n)
	hi := 1 - lo
	if n == 1 || x <= e.values[0] {
		return lo
	}
	if x >= e.values[n-1] {
		return hi
	}
	first := sort.SearchFloat64s(e.values, x)
	if e.values[first] == x {
		last := sort.Search(n, func(i int) bool { return e.values[i] > x }) - 1
		mid := float64(first+last) / 2

		return (mid + 0.5) / float64(n)
	}
	// values[first-1] < x < values[first]
	a, b := e.values[first-1], e.values[first]
	pos := float64(first-1) + (x-a)/(b-a)

	return (pos + 0.5) / float64(n)
}

// Range returns Max - Min.
func (e *ECDF) Range() float64 { return e.Max() - e.Min() }
