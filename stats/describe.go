// SPDX-License-Identifier: MIT

package stats

import (
	"math"
	"sort"
)

// SDFloor replaces a zero or undefined standard deviation wherever it is used
// as a divisor.
const SDFloor = 1.0

// Finite returns the non-NaN, non-Inf values of xs in their original order.
func Finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}

	return out
}

// MeanSD returns the mean and sample standard deviation (n-1) of the finite
// values of xs, using Welford's update. One observation gives sd = 0.
func MeanSD(xs []float64) (mean, sd float64, err error) {
	var n int
	var m, m2, delta float64
	for _, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		n++
		delta = v - m
		m += delta / float64(n)
		m2 += delta * (v - m)
	}
	if n == 0 {
		return 0, 0, ErrEmpty
	}
	if n == 1 {
		return m, 0, nil
	}

	return m, math.Sqrt(m2 / float64(n-1)), nil
}

// SafeSD returns sd, or SDFloor when sd is not a usable positive divisor.
func SafeSD(sd float64) float64 {
	if sd > 0 && !math.IsInf(sd, 0) {
		return sd
	}

	return SDFloor
}

// Moments returns the sample skewness and kurtosis (non-excess, normal = 3)
// of the finite values of xs. A constant sample returns (0, 3).
func Moments(xs []float64) (skewness, kurtosis float64, err error) {
	vals := Finite(xs)
	n := float64(len(vals))
	if n == 0 {
		return 0, 0, ErrEmpty
	}
	var mean float64
	for _, v := range vals {
		mean += v
	}
	mean /= n
	var m2, m3, m4, d, d2 float64
	for _, v := range vals {
		d = v - mean
		d2 = d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	m2 /= n
	m3 /= n
	m4 /= n
	if m2 == 0 {
		return 0, 3, nil
	}

	return m3 / math.Pow(m2, 1.5), m4 / (m2 * m2), nil
}

// MinMax returns the smallest and largest finite values.
func MinMax(xs []float64) (lo, hi float64, err error) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > hi {
		return 0, 0, ErrEmpty
	}

	return lo, hi, nil
}

// Sorted returns a sorted copy of the finite values of xs.
func Sorted(xs []float64) []float64 {
	out := Finite(xs)
	sort.Float64s(out)

	return out
}

// Quantile returns the q-quantile of an ascending slice by linear
// interpolation between order statistics (position q·(n-1)).
// q is clamped to [0, 1]; an empty slice returns NaN.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)

	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Pearson returns the correlation of the complete (both finite) pairs of x and y.
// Fewer than two pairs, or a constant side, returns 0.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, ErrLengthMismatch
	}
	var n int
	var mx, my float64
	for i := range x {
		if isMissing(x[i]) || isMissing(y[i]) {
			continue
		}
		n++
		mx += x[i]
		my += y[i]
	}
	if n < 2 {
		return 0, nil
	}
	mx /= float64(n)
	my /= float64(n)
	var sxy, sxx, syy float64
	for i := range x {
		if isMissing(x[i]) || isMissing(y[i]) {
			continue
		}
		dx, dy := x[i]-mx, y[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, nil
	}

	return sxy / math.Sqrt(sxx*syy), nil
}

// Winsorize clamps the finite values of xs to the [pct, 100-pct] percentiles
// in place and returns the bounds used. pct ≤ 0 or ≥ 50 leaves xs untouched.
func Winsorize(xs []float64, pct float64) (lo, hi float64) {
	sorted := Sorted(xs)
	if len(sorted) == 0 || pct <= 0 || pct >= 50 {
		return math.NaN(), math.NaN()
	}
	lo = Quantile(sorted, pct/100)
	hi = Quantile(sorted, 1-pct/100)
	for i, v := range xs {
		if isMissing(v) {
			continue
		}
		if v < lo {
			xs[i] = lo
		} else if v > hi {
			xs[i] = hi
		}
	}

	return lo, hi
}

func isMissing(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
