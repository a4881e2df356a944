// SPDX-License-Identifier: MIT

package stats

import (
	"math/rand"
	"sort"
)

// FreqTable is a discrete distribution over string keys.
//
// Keys are kept in ascending order so sampling is reproducible for a fixed
// seed. Sample walks the cumulative weights with a binary search, O(log k).
type FreqTable struct {
	keys    []string
	weights []float64
	cum     []float64
	index   map[string]int
}

// NewFreqTable counts the non-empty values. "" is treated as missing.
func NewFreqTable(values []string) *FreqTable {
	counts := make(map[string]float64)
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}

	return FromCounts(counts)
}

// FromCounts builds a table from explicit counts; non-positive counts are dropped.
func FromCounts(counts map[string]float64) *FreqTable {
	keys := make([]string, 0, len(counts))
	for k, c := range counts {
		if c > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	w := make([]float64, len(keys))
	for i, k := range keys {
		w[i] = counts[k]
	}

	return newFreqTable(keys, w)
}

func newFreqTable(keys []string, weights []float64) *FreqTable {
	ft := &FreqTable{
		keys:    keys,
		weights: weights,
		cum:     make([]float64, len(keys)),
		index:   make(map[string]int, len(keys)),
	}
	var s float64
	for i, w := range weights {
		s += w
		ft.cum[i] = s
		ft.index[keys[i]] = i
	}

	return ft
}

// Len returns the number of distinct keys.
func (f *FreqTable) Len() int { return len(f.keys) }

// Keys returns the keys in ascending order. Callers must not modify it.
func (f *FreqTable) Keys() []string { return f.keys }

// Total returns the sum of the weights.
func (f *FreqTable) Total() float64 {
	if len(f.cum) == 0 {
		return 0
	}

	return f.cum[len(f.cum)-1]
}

// Count returns the weight of key (0 when absent).
func (f *FreqTable) Count(key string) float64 {
	if i, ok := f.index[key]; ok {
		return f.weights[i]
	}

	return 0
}

// Prob returns the relative frequency of key.
func (f *FreqTable) Prob(key string) float64 {
	t := f.Total()
	if t == 0 {
		return 0
	}

	return f.Count(key) / t
}

// Pool returns a copy in which every weight below minCount is raised to
// minCount. minCount ≤ 0 returns an unchanged copy.
func (f *FreqTable) Pool(minCount float64) *FreqTable {
	w := make([]float64, len(f.weights))
	for i, v := range f.weights {
		if minCount > 0 && v < minCount {
			v = minCount
		}
		w[i] = v
	}
	keys := append([]string(nil), f.keys...)

	return newFreqTable(keys, w)
}

// Sample draws one key by inverse-CDF. An empty table returns "".
func (f *FreqTable) Sample(r *rand.Rand) string {
	n := len(f.cum)
	if n == 0 {
		return ""
	}
	u := r.Float64() * f.cum[n-1]
	i := sort.Search(n, func(i int) bool { return f.cum[i] > u })
	if i == n {
		i = n - 1
	}

	return f.keys[i]
}

// Mode returns the most frequent key (first in key order on ties).
func (f *FreqTable) Mode() string {
	best := -1
	for i, w := range f.weights {
		if best < 0 || w > f.weights[best] {
			best = i
		}
	}
	if best < 0 {
		return ""
	}

	return f.keys[best]
}
