// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/synthdata/config"
	"github.com/katalvlaran/synthdata/constraint"
	"github.com/katalvlaran/synthdata/diagnostics"
	"github.com/katalvlaran/synthdata/generate"
	"github.com/katalvlaran/synthdata/panel"
	"github.com/katalvlaran/synthdata/privacy"
	"github.com/katalvlaran/synthdata/synth"
	"github.com/katalvlaran/synthdata/table"
	"github.com/katalvlaran/synthdata/tableio"
)

type runFlags struct {
	config string
	out    string
	report string

	n          int
	seed       int64
	replicates int
	prefix     string
	method     string

	ids         []string
	skip        []string
	roles       []string
	constraints []string
	bounds      string
	dateOrder   []string
	missing     string
	noExtreme   float64

	panel      bool
	panelKey   string
	panelMode  string
	panelIndex string

	compare bool
	privacy bool
}

func newRunCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run <input>",
		Short: "Synthesize a table from a CSV/TSV file or a sqlite query.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSynthesis(cmd, f, args[0])
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "YAML run configuration (SYNTH_* variables override it)")
	fl.StringVarP(&f.out, "out", "o", "", "output CSV; replicates go to name_k.csv")
	fl.StringVar(&f.report, "report", "", "write diagnostics as YAML to this file")
	fl.IntVarP(&f.n, "n", "n", 0, "synthetic row count (0 = source row count)")
	fl.Int64Var(&f.seed, "seed", 0, "random seed")
	fl.IntVar(&f.replicates, "replicates", 1, "number of independent replicates")
	fl.StringVar(&f.prefix, "prefix", "", "prefix for synthetic column names")
	fl.StringVar(&f.method, "method", "", "generation method")
	for _, m := range generate.Methods() {
		fl.Bool(m.String(), false, fmt.Sprintf("use the %s method", m))
	}
	fl.StringSliceVar(&f.ids, "id", nil, "identifier columns")
	fl.StringSliceVar(&f.skip, "skip", nil, "columns to drop")
	fl.StringSliceVar(&f.roles, "role", nil, "role overrides as column=role")
	fl.StringArrayVar(&f.constraints, "constraint", nil, `constraint such as "age >= 18" (repeatable)`)
	fl.StringVar(&f.bounds, "bounds", "", `bounds such as "age 0 120, income . 1e6"`)
	fl.StringSliceVar(&f.dateOrder, "date-order", nil, "date columns that must be non-decreasing within a row")
	fl.StringVar(&f.missing, "missing", "", "missingness: none, rate or pattern")
	fl.Float64Var(&f.noExtreme, "no-extreme", 0, "keep values this range fraction inside the observed extremes")
	fl.Lookup("no-extreme").NoOptDefVal = strconv.FormatFloat(constraint.DefaultNoExtreme, 'g', -1, 64)
	fl.BoolVar(&f.panel, "panel", false, "model rows per unit of the identifier")
	fl.StringVar(&f.panelKey, "panel-key", "", "panel unit column (default: first identifier)")
	fl.StringVar(&f.panelMode, "panel-mode", "", "unit sizes: exact, empirical or parametric")
	fl.StringVar(&f.panelIndex, "panel-index", "", "name of a within-unit row index column")
	fl.BoolVar(&f.compare, "compare", false, "compare synthetic and source columns")
	fl.BoolVar(&f.privacy, "privacy", false, "nearest-record distance check")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runSynthesis(cmd *cobra.Command, f *runFlags, input string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	file, err := config.Load(f.config)
	if err != nil {
		return err
	}
	cfg, err := file.ToSynthesis()
	if err != nil {
		return err
	}

	src, hints, err := loadSource(cmd.Context(), cmd, input)
	if err != nil {
		return err
	}
	if err := f.apply(cmd, &cfg, hints); err != nil {
		return err
	}

	eng := synth.New(synth.WithLogger(logger))
	results, err := eng.RunReplicates(cmd.Context(), src, cfg)
	if err != nil {
		return err
	}

	tables := make([]*table.Table, len(results))
	var reports []*diagnostics.Report
	for k, res := range results {
		tables[k] = res.Table
		if res.Report != nil {
			reports = append(reports, res.Report)
		}
	}
	paths, err := tableio.SaveReplicates(f.out, tables)
	if err != nil {
		return err
	}
	side := sidecarPath(f.out)
	if err := tableio.MetaOf(tables[0]).Save(side); err != nil {
		return err
	}
	logger.Info("synthesis written",
		zap.Strings("files", paths), zap.String("metadata", side),
		zap.Int("rows", tables[0].NumRows()), zap.String("run", results[0].RunID))

	out := cmd.OutOrStdout()
	for k, res := range results {
		fmt.Fprintf(out, "%s: %d rows, %d columns, method %s\n",
			paths[k], res.Table.NumRows(), res.Table.NumCols(), res.Method)
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "  warning: %s\n", w)
		}
	}
	if f.compare {
		for _, rep := range reports {
			if err := rep.WriteText(out); err != nil {
				return err
			}
		}
	}
	if f.report != "" {
		return writeReports(f.report, reports)
	}

	return nil
}

// apply overrides cfg with every flag given on the command line.
func (f *runFlags) apply(cmd *cobra.Command, cfg *synth.Config, hints map[string]table.Role) error {
	fl := cmd.Flags()

	var names []string
	if fl.Changed("method") {
		names = append(names, f.method)
	}
	for _, m := range generate.Methods() {
		if on, _ := fl.GetBool(m.String()); on {
			names = append(names, m.String())
		}
	}
	m, err := synth.ResolveMethod(cfg.Method, names...)
	if err != nil {
		return err
	}
	cfg.Method = m

	roles, err := parseRoles(f.roles)
	if err != nil {
		return err
	}
	if len(hints)+len(roles) > 0 && cfg.Roles == nil {
		cfg.Roles = make(map[string]table.Role)
	}
	for name, r := range hints {
		if _, set := cfg.Roles[name]; !set {
			cfg.Roles[name] = r
		}
	}
	for name, r := range roles {
		cfg.Roles[name] = r
	}

	if fl.Changed("n") {
		cfg.N = f.n
	}
	if fl.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fl.Changed("replicates") {
		cfg.Replicates = f.replicates
	}
	if fl.Changed("prefix") {
		cfg.Prefix = f.prefix
	}
	cfg.IDs = append(cfg.IDs, f.ids...)
	cfg.Skip = append(cfg.Skip, f.skip...)
	cfg.Constraints = append(cfg.Constraints, f.constraints...)
	cfg.DateOrder = append(cfg.DateOrder, f.dateOrder...)
	if f.bounds != "" {
		b, err := constraint.ParseBounds(f.bounds)
		if err != nil {
			return err
		}
		cfg.Bounds = append(cfg.Bounds, b...)
	}
	if fl.Changed("no-extreme") {
		cfg.NoExtreme = f.noExtreme
	}
	if fl.Changed("missing") {
		mm, err := privacy.ParseMissingMode(f.missing)
		if err != nil {
			return err
		}
		cfg.Missing = mm
	}

	if f.panel {
		cfg.Panel.Enabled = true
	}
	if f.panelKey != "" {
		cfg.Panel.Key = f.panelKey
	}
	if f.panelIndex != "" {
		cfg.Panel.IndexColumn = f.panelIndex
	}
	if fl.Changed("panel-mode") {
		pm, err := panel.ParseMode(f.panelMode)
		if err != nil {
			return err
		}
		cfg.Panel.Mode = pm
	}
	if f.compare {
		cfg.Compare = true
	}
	if f.privacy {
		cfg.PrivacyCheck = true
	}

	return cfg.Validate()
}

func writeReports(path string, reports []*diagnostics.Report) error {
	fh, err := createFile(path)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(fh)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		fh.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		fh.Close()
		return err
	}

	return fh.Close()
}
