// SPDX-License-Identifier: MIT

package generate

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/synthdata/matrix"
	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
)

// minCompleteCases is the fewest complete rows from which a joint
// correlation is estimated.
const minCompleteCases = 3

// marginal maps between a column's scale and the standard-normal latent scale.
type marginal interface {
	toLatent(x float64) float64
	fromLatent(z float64) float64
}

type normalMarginal struct{ mean, sd float64 }

func (m normalMarginal) toLatent(x float64) float64   { return (x - m.mean) / stats.SafeSD(m.sd) }
func (m normalMarginal) fromLatent(z float64) float64 { return m.mean + m.sd*z }

type empiricalMarginal struct{ ecdf *stats.ECDF }

func (m empiricalMarginal) toLatent(x float64) float64 {
	return stats.NormalQuantile(m.ecdf.CDF(x))
}

func (m empiricalMarginal) fromLatent(z float64) float64 {
	return m.ecdf.Inverse(stats.NormalCDF(z))
}

// latentColumn is one numeric column of a latent Gaussian group.
type latentColumn struct {
	src, dst  *table.Column
	marg      marginal
	empirical bool
	date      bool
	ecdf      *stats.ECDF
}

// latentStrategy covers the parametric, empirical and adaptive methods: they
// differ only in the marginal chosen for each column.
type latentStrategy struct {
	method Method
	opts   Options
}

func (s *latentStrategy) Method() Method { return s.method }

func (s *latentStrategy) Generate(plan *Plan, n int, r *rand.Rand) (*Output, error) {
	if err := checkArgs(plan, n); err != nil {
		return nil, err
	}
	out := &Output{Table: plan.newOutput(n)}

	names := append(append([]string(nil), plan.Numeric...), plan.Dates...)
	group := make([]latentColumn, 0, len(names))
	for _, name := range names {
		src := plan.src(name)
		dst, _ := out.Table.Column(name)
		lc, ok := s.buildColumn(plan, src, dst)
		if !ok {
			out.warn(name, "no observed values; left missing")
			continue
		}
		group = append(group, lc)
	}
	drawLatent(group, n, s.opts, r, out)

	if err := fillAllDiscrete(plan, out.Table, s.opts.MinCellCount, r); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *latentStrategy) buildColumn(plan *Plan, src, dst *table.Column) (latentColumn, bool) {
	lc := latentColumn{src: src, dst: dst, date: src.Role == table.RoleDate}
	ecdf, err := stats.NewECDF(src.Num)
	if err != nil {
		return lc, false
	}
	lc.ecdf = ecdf
	switch s.method {
	case MethodEmpirical:
		lc.empirical = true
	case MethodAdaptive:
		lc.empirical = plan.Empirical[src.Name]
	}
	if lc.empirical {
		lc.marg = empiricalMarginal{ecdf: ecdf}
	} else {
		vp := plan.profileOf(src)
		lc.marg = normalMarginal{mean: vp.Mean, sd: vp.SD}
	}

	return lc, true
}

// drawLatent fills every group column with n draws: correlated standard
// normals x = L·z through the Cholesky factor L of the latent correlation,
// mapped back through each column's marginal.
func drawLatent(group []latentColumn, n int, opts Options, r *rand.Rand, out *Output) {
	k := len(group)
	if k == 0 {
		return
	}
	chol, _ := matrix.NewIdentity(k)
	if opts.PreserveCorrelation && k > 1 {
		if L, ok := latentFactor(group, out); ok {
			chol = L
		}
	}

	z := make([]float64, k)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < k; j++ {
			z[j] = r.NormFloat64()
		}
		x, _ := matrix.MatVec(chol, z)
		for j = 0; j < k; j++ {
			group[j].dst.Num[i] = group[j].marg.fromLatent(x[j])
		}
	}

	for _, lc := range group {
		finishColumn(lc, opts, r)
	}
}

// finishColumn applies smoothing, bounds and date rounding.
func finishColumn(lc latentColumn, opts Options, r *rand.Rand) {
	lo, hi := lc.ecdf.Min(), lc.ecdf.Max()
	h := 0.0
	if lc.empirical && opts.Smooth {
		h = lc.ecdf.Range() / (2 * float64(lc.ecdf.Len()))
	}
	for i, v := range lc.dst.Num {
		if h > 0 {
			v += (2*r.Float64() - 1) * h
		}
		if lc.empirical || lc.date {
			v = clamp(v, lo, hi)
		}
		if lc.date {
			v = clampRound(v, lo, hi)
		}
		lc.dst.Num[i] = v
	}
}

// latentFactor estimates the latent correlation over complete source rows,
// regularizes it and returns its lower-triangular Cholesky factor.
func latentFactor(group []latentColumn, out *Output) (*matrix.Dense, bool) {
	k := len(group)
	rows := completeRows(group)
	if len(rows) < minCompleteCases {
		out.warn("", "only %d complete rows across %d numeric columns; drawing them independently", len(rows), k)
		return nil, false
	}
	data := make([]float64, 0, len(rows)*k)
	for _, i := range rows {
		for _, lc := range group {
			data = append(data, lc.marg.toLatent(lc.src.Num[i]))
		}
	}
	X, err := matrix.NewDenseFrom(len(rows), k, data)
	if err != nil {
		out.warn("", "latent matrix: %v; drawing independently", err)
		return nil, false
	}
	corr, _, _, err := matrix.Correlation(X)
	if err != nil {
		out.warn("", "correlation: %v; drawing independently", err)
		return nil, false
	}
	pd, lambda, err := matrix.RegularizeCorrelation(corr, matrix.DefaultRidge)
	if err != nil {
		out.warn("", "regularization failed: %v; drawing independently", err)
		return nil, false
	}
	if lambda > 0 {
		out.warn("", "correlation matrix not positive definite; ridge %.3g added", lambda)
	}
	L, err := matrix.Cholesky(pd)
	if err != nil {
		out.warn("", "cholesky: %v; drawing independently", err)
		return nil, false
	}

	return L, true
}

func completeRows(group []latentColumn) []int {
	n := group[0].src.Len()
	rows := make([]int, 0, n)
	for i := 0; i < n; i++ {
		ok := true
		for _, lc := range group {
			v := lc.src.Num[i]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				ok = false
				break
			}
		}
		if ok {
			rows = append(rows, i)
		}
	}

	return rows
}
