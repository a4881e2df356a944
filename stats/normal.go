// SPDX-License-Identifier: MIT

package stats

import "math"

// NormalCDF returns Φ(x) for the standard normal.
func NormalCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// NormalQuantile returns Φ⁻¹(p). p ≤ 0 gives -Inf, p ≥ 1 gives +Inf.
func NormalQuantile(p float64) float64 {
	switch {
	case p <= 0:
		return math.Inf(-1)
	case p >= 1:
		return math.Inf(1)
	}

	return math.Sqrt2 * math.Erfinv(2*p-1)
}
