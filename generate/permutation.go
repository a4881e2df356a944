// SPDX-License-Identifier: MIT

package generate

import (
	"math/rand"

	"github.com/katalvlaran/synthdata/rng"
	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
)

// permutationStrategy shuffles every column independently. Marginals are
// kept exactly when n equals the number of observed values; every
// cross-column relationship is destroyed, associations included.
type permutationStrategy struct {
	opts Options
}

func (s *permutationStrategy) Method() Method { return MethodPermutation }

func (s *permutationStrategy) Generate(plan *Plan, n int, r *rand.Rand) (*Output, error) {
	if err := checkArgs(plan, n); err != nil {
		return nil, err
	}
	out := &Output{Table: plan.newOutput(n)}

	for _, dst := range out.Table.Columns() {
		src := plan.src(dst.Name)
		if src.Kind == table.KindText {
			keys := observedKeys(src)
			if len(keys) == 0 {
				out.warn(dst.Name, "no observed values; left missing")
				continue
			}
			idx := expandIndex(len(keys), n, r)
			for i, k := range idx {
				dst.Str[i] = keys[k]
			}
			continue
		}
		if plan.isDerived(dst.Name) {
			continue
		}
		vals := stats.Finite(src.Num)
		if len(vals) == 0 {
			out.warn(dst.Name, "no observed values; left missing")
			continue
		}
		idx := expandIndex(len(vals), n, r)
		for i, k := range idx {
			dst.Num[i] = vals[k]
		}
	}

	return out, nil
}

// expandIndex returns n shuffled indices into m observed values: full copies
// of 0..m-1 plus a sample without replacement for the remainder.
func expandIndex(m, n int, r *rand.Rand) []int {
	idx := make([]int, 0, n)
	for len(idx)+m <= n {
		for k := 0; k < m; k++ {
			idx = append(idx, k)
		}
	}
	if rest := n - len(idx); rest > 0 {
		idx = append(idx, rng.Perm(r, m)[:rest]...)
	}
	rng.Shuffle(r, idx)

	return idx
}

func observedKeys(c *table.Column) []string {
	keys := make([]string, 0, c.Len())
	for _, k := range c.Str {
		if k != "" {
			keys = append(keys, k)
		}
	}

	return keys
}
