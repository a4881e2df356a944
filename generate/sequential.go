// SPDX-License-Identifier: MIT

package generate

import (
	"math/rand"

	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
)

// sequentialStrategy draws the first numeric column from its marginal and
// every later one from an OLS fit on the columns generated before it.
// Discrete columns come from their marginals, so categorical-numeric
// dependence is not preserved.
type sequentialStrategy struct {
	opts Options
}

func (s *sequentialStrategy) Method() Method { return MethodSequential }

func (s *sequentialStrategy) Generate(plan *Plan, n int, r *rand.Rand) (*Output, error) {
	if err := checkArgs(plan, n); err != nil {
		return nil, err
	}
	out := &Output{Table: plan.newOutput(n)}

	names := append(append([]string(nil), plan.Numeric...), plan.Dates...)
	var done []string
	for _, name := range names {
		src := plan.src(name)
		dst, _ := out.Table.Column(name)
		f := fitObserved(src)
		if f.n == 0 {
			out.warn(name, "no observed values; left missing")
			continue
		}
		date := src.Role == table.RoleDate
		if len(done) == 0 {
			fillNormal(dst, f, date, r)
			done = append(done, name)
			continue
		}
		if err := s.regress(plan, out.Table, done, src, dst, f, date, r); err != nil {
			out.warn(name, "regression on %d earlier columns failed (%v); drawn from its marginal", len(done), err)
			fillNormal(dst, f, date, r)
		}
		done = append(done, name)
	}

	if err := fillAllDiscrete(plan, out.Table, s.opts.MinCellCount, r); err != nil {
		return nil, err
	}

	return out, nil
}

// regress fits src on the source values of prev and predicts dst from the
// synthetic values of prev plus N(0, residual s.d.) noise.
func (s *sequentialStrategy) regress(plan *Plan, syn *table.Table, prev []string, src, dst *table.Column, f observedFit, date bool, r *rand.Rand) error {
	xs := make([][]float64, len(prev))
	gen := make([][]float64, len(prev))
	for j, name := range prev {
		xs[j] = plan.src(name).Num
		c, _ := syn.Column(name)
		gen[j] = c.Num
	}
	fit, err := stats.OLS(xs, src.Num)
	if err != nil {
		return err
	}

	row := make([]float64, len(prev))
	for i := 0; i < dst.Len(); i++ {
		for j := range gen {
			row[j] = gen[j][i]
		}
		v := fit.Predict(row) + fit.ResidualSD*r.NormFloat64()
		if date {
			v = clampRound(v, f.min, f.max)
		}
		dst.Num[i] = v
	}

	return nil
}
