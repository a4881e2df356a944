// SPDX-License-Identifier: MIT

package generate

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/synthdata/table"
)

// bootstrapStrategy resamples whole source rows with replacement, adds
// Gaussian noise to numeric values and reassigns discrete values with a
// small probability.
type bootstrapStrategy struct {
	opts Options
}

func (s *bootstrapStrategy) Method() Method { return MethodBootstrap }

func (s *bootstrapStrategy) Generate(plan *Plan, n int, r *rand.Rand) (*Output, error) {
	if err := checkArgs(plan, n); err != nil {
		return nil, err
	}
	out := &Output{Table: plan.newOutput(n)}

	rows := plan.Source.NumRows()
	if rows == 0 {
		return out, nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = r.Intn(rows)
	}

	for _, name := range append(append([]string(nil), plan.Numeric...), plan.Dates...) {
		src := plan.src(name)
		dst, _ := out.Table.Column(name)
		f := fitObserved(src)
		if f.n == 0 {
			out.warn(name, "no observed values; left missing")
			continue
		}
		date := src.Role == table.RoleDate
		noise := s.opts.NoiseFraction * f.sd
		for i, k := range idx {
			v := src.Num[k]
			if math.IsNaN(v) {
				v = f.mean + f.sd*r.NormFloat64()
			}
			if noise > 0 {
				v += noise * r.NormFloat64()
			}
			if date {
				v = clampRound(v, f.min, f.max)
			}
			dst.Num[i] = v
		}
	}

	discrete := append(append([]string(nil), plan.Categorical...), plan.Strings...)
	for _, a := range plan.Associations {
		discrete = append(discrete, a.A, a.B)
	}
	for _, name := range discrete {
		src := plan.src(name)
		dst, _ := out.Table.Column(name)
		s.resampleDiscrete(src, dst, idx, r)
	}

	return out, nil
}

// resampleDiscrete copies the resampled keys, imputing missing ones and
// perturbing each with PerturbProb from the marginal.
func (s *bootstrapStrategy) resampleDiscrete(src, dst *table.Column, idx []int, r *rand.Rand) {
	ft := marginalTable(src, s.opts.MinCellCount)
	if ft.Len() == 0 {
		return
	}
	for i, k := range idx {
		key := src.Key(k)
		if key == "" || r.Float64() < s.opts.PerturbProb {
			key = ft.Sample(r)
		}
		_ = dst.SetKey(i, key)
	}
}
