// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/synthdata/constraint"
	"github.com/katalvlaran/synthdata/panel"
	"github.com/katalvlaran/synthdata/privacy"
	"github.com/katalvlaran/synthdata/synth"
	"github.com/katalvlaran/synthdata/table"
)

// File is the on-disk and environment form of a run.
type File struct {
	N int `yaml:"n" env:"SYNTH_N"`
	// Method is one method name, or a comma list that must agree.
	Method     string `yaml:"method" env:"SYNTH_METHOD"`
	Seed       int64  `yaml:"seed" env:"SYNTH_SEED"`
	Replicates int    `yaml:"replicates" env:"SYNTH_REPLICATES" env-default:"1"`
	Prefix     string `yaml:"prefix" env:"SYNTH_PREFIX"`
	Missing    string `yaml:"missing" env:"SYNTH_MISSING" env-description:"none, rate or pattern"`

	Roles map[string]string `yaml:"roles" env:"SYNTH_ROLES" env-description:"column:role pairs"`
	Skip  []string          `yaml:"skip" env:"SYNTH_SKIP"`
	IDs   []string          `yaml:"ids" env:"SYNTH_IDS"`

	Panel PanelFile `yaml:"panel" env-prefix:"SYNTH_PANEL_"`

	Constraints []string `yaml:"constraints" env:"SYNTH_CONSTRAINTS" env-separator:";"`
	// Bounds uses the "col lo hi, col lo hi" form; "." leaves a side open.
	Bounds        string   `yaml:"bounds" env:"SYNTH_BOUNDS"`
	DateOrder     []string `yaml:"date_order" env:"SYNTH_DATE_ORDER"`
	AutoDateOrder bool     `yaml:"auto_date_order" env:"SYNTH_AUTO_DATE_ORDER"`
	MaxIterations int      `yaml:"max_iterations" env:"SYNTH_MAX_ITERATIONS"`

	MinCellCount   float64 `yaml:"min_cell_count" env:"SYNTH_MIN_CELL_COUNT"`
	TrimPercentile float64 `yaml:"trim_percentile" env:"SYNTH_TRIM_PERCENTILE"`
	Smooth         bool    `yaml:"smooth" env:"SYNTH_SMOOTH"`

	Compare       bool `yaml:"compare" env:"SYNTH_COMPARE"`
	PrivacyCheck  bool `yaml:"privacy_check" env:"SYNTH_PRIVACY_CHECK"`
	PrivacySample int  `yaml:"privacy_sample" env:"SYNTH_PRIVACY_SAMPLE"`

	// File-only keys; nil keeps the default.
	AutoConstraints    *bool    `yaml:"auto_constraints,omitempty"`
	Correlation        *bool    `yaml:"correlation,omitempty"`
	DetectDerived      *bool    `yaml:"detect_derived,omitempty"`
	DetectAssociations *bool    `yaml:"detect_associations,omitempty"`
	NoExtreme          *float64 `yaml:"no_extreme,omitempty"`
	NoiseFraction      *float64 `yaml:"noise_fraction,omitempty"`
	PerturbProb        *float64 `yaml:"perturb_prob,omitempty"`
	PrivacyThreshold   *float64 `yaml:"privacy_threshold,omitempty"`
}

// PanelFile is the panel section of File.
type PanelFile struct {
	Enabled       bool   `yaml:"enabled" env:"ENABLED"`
	Key           string `yaml:"key" env:"KEY"`
	Mode          string `yaml:"mode" env:"MODE" env-description:"exact, empirical or parametric"`
	IndexColumn   string `yaml:"index_column" env:"INDEX_COLUMN"`
	RandomEffects bool   `yaml:"random_effects" env:"RANDOM_EFFECTS"`
	Trend         bool   `yaml:"trend" env:"TREND"`
	TimeVar       string `yaml:"time_var" env:"TIME_VAR"`
}

// Load reads path (YAML) with environment overrides. An empty path reads
// the environment only.
//
// Errors: ErrRead.
func Load(path string) (*File, error) {
	f := &File{}
	var err error
	if path == "" {
		err = cleanenv.ReadEnv(f)
	} else {
		err = cleanenv.ReadConfig(path, f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", describe(path), ErrRead, err)
	}

	return f, nil
}

func describe(path string) string {
	if path == "" {
		return "environment"
	}

	return fmt.Sprintf("%q", path)
}

// Usage returns the environment variables Load understands.
func Usage() (string, error) {
	header := "Environment variables:"

	return cleanenv.GetDescription(&File{}, &header)
}

// Write encodes f as YAML.
func (f *File) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}

	return enc.Close()
}

// ToSynthesis translates f onto synth.DefaultConfig and validates the result.
// Every translation problem is reported at once.
//
// Errors: ErrInvalid (joined with the underlying parse errors), and whatever
// synth.Config.Validate reports.
func (f *File) ToSynthesis() (synth.Config, error) {
	cfg := synth.DefaultConfig()
	var err error
	invalid := func(key string, e error) {
		err = multierr.Append(err, fmt.Errorf("%s: %w: %w", key, ErrInvalid, e))
	}

	cfg.N = f.N
	cfg.Seed = f.Seed
	cfg.Replicates = f.Replicates
	cfg.Prefix = f.Prefix
	if m, e := synth.ResolveMethod(cfg.Method, strings.Split(f.Method, ",")...); e != nil {
		invalid("method", e)
	} else {
		cfg.Method = m
	}
	if strings.TrimSpace(f.Missing) != "" {
		if m, e := privacy.ParseMissingMode(f.Missing); e != nil {
			invalid("missing", e)
		} else {
			cfg.Missing = m
		}
	}

	if len(f.Roles) > 0 {
		cfg.Roles = make(map[string]table.Role, len(f.Roles))
		for name, s := range f.Roles {
			r, e := table.ParseRole(s)
			if e != nil {
				invalid("roles."+name, e)
				continue
			}
			cfg.Roles[name] = r
		}
	}
	cfg.Skip = f.Skip
	cfg.IDs = f.IDs

	cfg.Panel = synth.PanelConfig{
		Enabled:       f.Panel.Enabled,
		Key:           f.Panel.Key,
		Mode:          panel.ModeExact,
		IndexColumn:   f.Panel.IndexColumn,
		RandomEffects: f.Panel.RandomEffects,
		Trend:         f.Panel.Trend,
		TimeVar:       f.Panel.TimeVar,
	}
	if m, e := panel.ParseMode(f.Panel.Mode); e != nil {
		invalid("panel.mode", e)
	} else {
		cfg.Panel.Mode = m
	}

	cfg.Constraints = f.Constraints
	if b, e := constraint.ParseBounds(f.Bounds); e != nil {
		invalid("bounds", e)
	} else {
		cfg.Bounds = b
	}
	cfg.DateOrder = f.DateOrder
	cfg.AutoDateOrder = f.AutoDateOrder
	if f.MaxIterations != 0 {
		cfg.MaxIterations = f.MaxIterations
	}
	cfg.MinCellCount = f.MinCellCount
	cfg.TrimPercentile = f.TrimPercentile
	cfg.Smooth = f.Smooth
	cfg.Compare = f.Compare
	cfg.PrivacyCheck = f.PrivacyCheck
	if f.PrivacySample != 0 {
		cfg.PrivacySample = f.PrivacySample
	}

	setBool(&cfg.AutoConstraints, f.AutoConstraints)
	setBool(&cfg.PreserveCorrelation, f.Correlation)
	setBool(&cfg.DetectDerived, f.DetectDerived)
	setBool(&cfg.DetectAssociations, f.DetectAssociations)
	setFloat(&cfg.NoExtreme, f.NoExtreme)
	setFloat(&cfg.NoiseFraction, f.NoiseFraction)
	setFloat(&cfg.PerturbProb, f.PerturbProb)
	setFloat(&cfg.PrivacyThreshold, f.PrivacyThreshold)

	if err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
