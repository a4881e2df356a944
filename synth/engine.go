// SPDX-License-Identifier: MIT

package synth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/synthdata/classify"
	"github.com/katalvlaran/synthdata/constraint"
	"github.com/katalvlaran/synthdata/detect"
	"github.com/katalvlaran/synthdata/diagnostics"
	"github.com/katalvlaran/synthdata/generate"
	"github.com/katalvlaran/synthdata/panel"
	"github.com/katalvlaran/synthdata/privacy"
	"github.com/katalvlaran/synthdata/profile"
	"github.com/katalvlaran/synthdata/rng"
	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
)

// Random substreams of one run.
const (
	streamGenerate uint64 = iota + 1
	streamPanel
	streamMissing
	streamPrivacy
)

// Engine runs synthesis pipelines. It holds no per-run state and is safe
// for concurrent use.
type Engine struct {
	logger      *zap.Logger
	parallelism int
}

// New returns an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop(), parallelism: defaultParallelism()}
	for _, o := range opts {
		o(e)
	}

	return e
}

// Result is the outcome of one run.
type Result struct {
	RunID     string
	Replicate int // 1-based
	Seed      int64
	Method    generate.Method

	Table         *table.Table
	Roles         *classify.Result
	Profiles      *profile.Analysis
	Relationships *detect.Relationships
	Panel         *panel.Model
	Constraints   *constraint.Report
	// Report is set when Config.Compare or Config.PrivacyCheck is on.
	Report   *diagnostics.Report
	Warnings []string
}

// run carries the per-run state through the stages.
type run struct {
	cfg    Config
	logger *zap.Logger
	res    *Result

	work *table.Table // classified source copy, untrimmed
	fit  *table.Table // model columns, trimmed
	ids  []string
	key  string
}

func (r *run) warn(stage, column, msg string) {
	text := msg
	if column != "" {
		text = column + ": " + msg
	}
	r.res.Warnings = append(r.res.Warnings, text)
	r.logger.Warn(msg, zap.String("stage", stage), zap.String("column", column))
}

// Run synthesizes one table from src. src is not modified.
//
// Errors: ErrEmptySource, ErrNoColumns, ErrBadParameter, ErrConflictingRole
// (possibly several, combined), generate.ErrEmptyJointTable, panel.ErrNoUnits.
func (e *Engine) Run(src *table.Table, cfg Config) (*Result, error) {
	return e.run(src, cfg, 1)
}

// RunReplicates runs cfg.Replicates independent syntheses; replicate k
// (0-based) uses rng.ReplicateSeed(cfg.Seed, k). Results are in replicate
// order. The first error cancels replicates not yet started.
func (e *Engine) RunReplicates(ctx context.Context, src *table.Table, cfg Config) ([]*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	out := make([]*Result, cfg.Replicates)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for k := 0; k < cfg.Replicates; k++ {
		k := k
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c := cfg
			c.Seed = rng.ReplicateSeed(cfg.Seed, k)
			res, err := e.run(src, c, k+1)
			if err != nil {
				return fmt.Errorf("replicate %d: %w", k+1, err)
			}
			out[k] = res

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (e *Engine) run(src *table.Table, cfg Config, replicate int) (*Result, error) {
	if src == nil || src.NumRows() == 0 || src.NumCols() == 0 {
		return nil, ErrEmptySource
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.N == 0 {
		cfg.N = src.NumRows()
	}
	runID := uuid.NewString()
	r := &run{
		cfg:    cfg,
		logger: e.logger.With(zap.String("run_id", runID), zap.Int("replicate", replicate)),
		res:    &Result{RunID: runID, Replicate: replicate, Seed: cfg.Seed, Method: cfg.Method},
	}
	r.logger.Info("synthesis started",
		zap.String("method", cfg.Method.String()),
		zap.Int("source_rows", src.NumRows()),
		zap.Int("target_rows", cfg.N),
		zap.Int64("seed", cfg.Seed),
	)

	base := rng.New(cfg.Seed)
	genR := rng.Derive(base, streamGenerate)
	panelR := rng.Derive(base, streamPanel)
	missR := rng.Derive(base, streamMissing)
	privR := rng.Derive(base, streamPrivacy)

	if err := r.prepare(src); err != nil {
		return nil, err
	}
	plan := r.analyze()
	syn, err := r.generate(plan, genR)
	if err != nil {
		return nil, err
	}
	if syn, err = r.structure(syn, panelR); err != nil {
		return nil, err
	}
	if err = r.enforce(syn); err != nil {
		return nil, err
	}
	for _, d := range r.res.Relationships.Derived {
		if err = d.Reconstruct(syn); err != nil {
			return nil, err
		}
		if c, _ := syn.Column(d.Target); c.Role == table.RoleInteger {
			roundWhole(c)
		}
	}
	if err = r.missingness(syn, missR); err != nil {
		return nil, err
	}
	if syn, err = diagnostics.Restore(r.work, syn); err != nil {
		return nil, err
	}
	if err = r.diagnose(syn, privR); err != nil {
		return nil, err
	}
	if err = syn.WithPrefix(cfg.Prefix); err != nil {
		return nil, fmt.Errorf("synth: prefix: %w", err)
	}
	r.res.Table = syn
	r.logger.Info("synthesis finished",
		zap.Int("rows", syn.NumRows()),
		zap.Int("columns", syn.NumCols()),
		zap.Int("warnings", len(r.res.Warnings)),
	)

	return r.res, nil
}

// prepare copies the source, drops skipped columns, classifies and trims.
func (r *run) prepare(src *table.Table) error {
	r.work = src.Without(r.cfg.Skip...).Clone()
	if r.work.NumCols() == 0 {
		return ErrNoColumns
	}

	overrides := make(map[string]table.Role, len(r.cfg.Roles)+len(r.cfg.IDs))
	for k, v := range r.cfg.Roles {
		overrides[k] = v
	}
	for _, id := range r.cfg.IDs {
		if _, ok := r.work.Column(id); !ok {
			return fmt.Errorf("identifier %q: %w", id, ErrBadParameter)
		}
		overrides[id] = table.RoleIdentifier
	}
	if r.cfg.Panel.Enabled {
		r.key = r.cfg.panelKey()
		if _, ok := r.work.Column(r.key); !ok {
			return fmt.Errorf("panel key %q: %w", r.key, ErrBadParameter)
		}
		overrides[r.key] = table.RoleIdentifier
	}
	r.res.Roles = classify.Classify(r.work, overrides)
	r.res.Roles.Apply(r.work)
	for _, d := range r.res.Roles.Decisions {
		r.logger.Named("classify").Debug("role",
			zap.String("column", d.Column),
			zap.String("role", d.Role.String()),
			zap.Int("unique", d.Unique),
			zap.Float64("ratio", d.Ratio),
		)
	}
	r.ids = r.res.Roles.Columns(table.RoleIdentifier)

	var model []string
	for _, c := range r.work.Columns() {
		if c.Role != table.RoleIdentifier && c.Role != table.RoleExcluded {
			model = append(model, c.Name)
		}
	}
	if len(model) == 0 {
		return ErrNoColumns
	}
	sel, err := r.work.Select(model...)
	if err != nil {
		return err
	}
	r.fit = sel.Clone()
	if p := r.cfg.TrimPercentile; p > 0 {
		for _, c := range r.fit.Columns() {
			if c.Role.IsContinuous() {
				lo, hi := stats.Winsorize(c.Num, p)
				r.logger.Named("trim").Debug("winsorized",
					zap.String("column", c.Name), zap.Float64("lo", lo), zap.Float64("hi", hi))
			}
		}
	}

	return nil
}

// analyze profiles continuous and integer columns and runs the detectors.
func (r *run) analyze() *generate.Plan {
	cont := r.continuous()
	r.res.Profiles = profile.Analyze(r.fit, cont)

	rel := &detect.Relationships{}
	log := r.logger.Named("detect")
	if r.cfg.DetectDerived {
		rel.Derived = detect.FindDerived(r.fit, cont)
		for _, d := range rel.Derived {
			log.Info("derived column",
				zap.String("target", d.Target),
				zap.Strings("bases", d.Bases),
				zap.Float64s("coef", d.Coef),
				zap.Float64("intercept", d.Intercept),
				zap.Float64("r2", d.R2),
			)
		}
	}
	if r.cfg.DetectAssociations {
		cats := r.present(r.res.Roles.Columns(table.RoleCategorical))
		rel.Associations = detect.FindAssociations(r.fit, cats)
		for _, a := range rel.Associations {
			log.Info("associated pair", zap.String("a", a.A), zap.String("b", a.B), zap.Float64("cramers_v", a.V))
		}
	}
	r.res.Relationships = rel

	return generate.NewPlan(r.fit, rel, r.res.Profiles)
}

// continuous lists the continuous and integer model columns in source order.
func (r *run) continuous() []string {
	var out []string
	for _, c := range r.fit.Columns() {
		if c.Role.IsContinuous() {
			out = append(out, c.Name)
		}
	}

	return out
}

// present keeps the names that are model columns.
func (r *run) present(names []string) []string {
	out := names[:0:0]
	for _, n := range names {
		if _, ok := r.fit.Column(n); ok {
			out = append(out, n)
		}
	}

	return out
}

func (r *run) generate(plan *generate.Plan, rnd *rand.Rand) (*table.Table, error) {
	s, err := generate.New(r.cfg.Method, generate.Options{
		PreserveCorrelation: r.cfg.PreserveCorrelation,
		Smooth:              r.cfg.Smooth,
		MinCellCount:        r.cfg.MinCellCount,
		NoiseFraction:       r.cfg.NoiseFraction,
		PerturbProb:         r.cfg.PerturbProb,
	})
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrBadParameter)
	}
	out, err := s.Generate(plan, r.cfg.N, rnd)
	if err != nil {
		return nil, fmt.Errorf("synth: generate: %w", err)
	}
	for _, w := range out.Warnings {
		r.warn("generate", w.Column, w.Message)
	}
	for _, c := range out.Table.Columns() {
		if c.Role == table.RoleInteger {
			roundWhole(c)
		}
	}

	return out.Table, nil
}

func roundWhole(c *table.Column) {
	for i, v := range c.Num {
		c.Num[i] = math.Round(v)
	}
}

// structure expands panel units and regenerates identifier columns.
func (r *run) structure(syn *table.Table, rnd *rand.Rand) (*table.Table, error) {
	log := r.logger.Named("panel")
	if r.cfg.Panel.Enabled {
		opts := []panel.Option{panel.WithMode(r.cfg.Panel.Mode), panel.WithLogger(log)}
		if r.cfg.Panel.IndexColumn != "" {
			opts = append(opts, panel.WithIndexColumn(r.cfg.Panel.IndexColumn))
		}
		m, err := panel.Fit(r.work, r.key, opts...)
		if err != nil {
			return nil, fmt.Errorf("synth: %w", err)
		}
		r.res.Panel = m
		if syn, _, err = m.Expand(syn, rnd); err != nil {
			return nil, err
		}
		var cont []string
		for _, n := range r.withoutDerived(r.continuous()) {
			if n != r.cfg.Panel.IndexColumn {
				cont = append(cont, n)
			}
		}
		if r.cfg.Panel.RandomEffects {
			effects, err := m.RandomEffects(r.work, syn, cont, rnd)
			if err != nil {
				return nil, err
			}
			for _, ef := range effects {
				log.Info("random effect", zap.String("column", ef.Column), zap.Float64("icc", ef.ICC))
			}
		}
		if r.cfg.Panel.Trend {
			slopes, err := m.Trend(r.work, syn, r.cfg.Panel.TimeVar, cont, rnd)
			switch {
			case errors.Is(err, panel.ErrNoTimeColumn):
				r.warn("panel", r.cfg.Panel.TimeVar, "no time-like column; trend skipped")
			case err != nil:
				return nil, err
			}
			for _, s := range slopes {
				log.Info("trend", zap.String("column", s.Column), zap.Float64("slope_mean", s.Mean), zap.Float64("slope_sd", s.SD))
			}
		}
		for _, n := range cont {
			if c, ok := syn.Column(n); ok && c.Role == table.RoleInteger {
				roundWhole(c)
			}
		}
	}

	// remaining identifiers: 1..n
	for _, id := range r.ids {
		if _, ok := syn.Column(id); ok {
			continue
		}
		seq := make([]float64, syn.NumRows())
		for i := range seq {
			seq[i] = float64(i + 1)
		}
		c := table.NewNumeric(id, seq)
		c.Role = table.RoleIdentifier
		if err := syn.Add(c); err != nil {
			return nil, err
		}
	}

	return syn, nil
}

func (r *run) withoutDerived(names []string) []string {
	out := names[:0:0]
	for _, n := range names {
		if !r.res.Relationships.IsDerived(n) {
			out = append(out, n)
		}
	}

	return out
}

func (r *run) enforce(syn *table.Table) error {
	user, err := constraint.ParseAll(r.cfg.Constraints)
	if err != nil {
		return err
	}
	spec := constraint.Spec{Bounds: r.cfg.Bounds, User: user, DateOrder: r.cfg.DateOrder}
	if len(spec.DateOrder) == 0 && r.cfg.AutoDateOrder {
		spec.DateOrder = constraint.DetectDateOrder(r.work, r.present(r.res.Roles.Columns(table.RoleDate)))
	}
	skip := make([]string, 0, len(r.res.Relationships.Derived)+len(r.ids))
	for _, d := range r.res.Relationships.Derived {
		skip = append(skip, d.Target)
	}
	skip = append(skip, r.ids...)
	if r.cfg.Panel.IndexColumn != "" {
		skip = append(skip, r.cfg.Panel.IndexColumn)
	}

	rep, err := constraint.Apply(r.work, syn, spec,
		constraint.WithNoExtreme(r.cfg.NoExtreme),
		constraint.WithAuto(r.cfg.AutoConstraints),
		constraint.WithMaxIterations(r.cfg.MaxIterations),
		constraint.WithSkip(skip...),
		constraint.WithLogger(r.logger.Named("constraint")),
	)
	if err != nil {
		return fmt.Errorf("synth: constraints: %w", err)
	}
	for _, w := range rep.Warnings {
		r.warn("constraint", "", w)
	}
	r.res.Constraints = rep

	return nil
}

// missingness nulls model columns following the source; identifiers stay complete.
func (r *run) missingness(syn *table.Table, rnd *rand.Rand) error {
	cols := make([]string, 0, r.fit.NumCols())
	for _, name := range r.fit.Names() {
		if _, ok := syn.Column(name); ok && name != r.cfg.Panel.IndexColumn {
			cols = append(cols, name)
		}
	}
	set, err := privacy.ApplyMissing(r.work, syn, cols, r.cfg.Missing, rnd)
	if err != nil {
		return fmt.Errorf("synth: missingness: %w", err)
	}
	r.logger.Named("privacy").Debug("missingness applied",
		zap.String("mode", r.cfg.Missing.String()), zap.Int("cells", set))

	return nil
}

func (r *run) diagnose(syn *table.Table, rnd *rand.Rand) error {
	if !r.cfg.Compare && !r.cfg.PrivacyCheck {
		return nil
	}
	var rep *diagnostics.Report
	if r.cfg.Compare {
		var err error
		if rep, err = diagnostics.Compare(r.work, syn); err != nil {
			return err
		}
	} else {
		rep = &diagnostics.Report{Rows: syn.NumRows()}
	}
	if r.cfg.PrivacyCheck {
		cols := make([]string, 0, r.fit.NumCols())
		for _, name := range r.fit.Names() {
			if _, ok := syn.Column(name); ok {
				cols = append(cols, name)
			}
		}
		pr, err := privacy.NearestDistances(r.work, syn, cols, r.cfg.PrivacySample, r.cfg.PrivacyThreshold, rnd)
		switch {
		case err == nil:
			rep.Privacy = pr
			if pr.TooClose > 0 {
				r.warn("privacy", "", fmt.Sprintf("%.1f%% of sampled rows within %.3g of a source record",
					100*pr.TooClose, pr.Threshold))
			}
		case errors.Is(err, privacy.ErrNoColumns):
			r.warn("privacy", "", "no comparable columns; distance check skipped")
		default:
			return err
		}
	}
	rep.RunID = r.res.RunID
	rep.Method = r.cfg.Method.String()
	rep.Warnings = append([]string(nil), r.res.Warnings...)
	r.res.Report = rep

	return nil
}
