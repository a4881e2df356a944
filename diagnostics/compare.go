// SPDX-License-Identifier: MIT

package diagnostics

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/katalvlaran/synthdata/privacy"
	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
)

// Summary describes the finite values of one numeric column.
type Summary struct {
	N    int     `yaml:"n"`
	Mean float64 `yaml:"mean"`
	SD   float64 `yaml:"sd"`
	P5   float64 `yaml:"p5"`
	P25  float64 `yaml:"p25"`
	P50  float64 `yaml:"p50"`
	P75  float64 `yaml:"p75"`
	P95  float64 `yaml:"p95"`
}

// Summarize computes a Summary; an all-missing column gives N = 0 and NaNs.
func Summarize(xs []float64) Summary {
	s := stats.Sorted(xs)
	out := Summary{N: len(s)}
	out.Mean, out.SD, _ = stats.MeanSD(s)
	if out.N == 0 {
		out.Mean, out.SD = math.NaN(), math.NaN()
	}
	out.P5 = stats.Quantile(s, 0.05)
	out.P25 = stats.Quantile(s, 0.25)
	out.P50 = stats.Quantile(s, 0.50)
	out.P75 = stats.Quantile(s, 0.75)
	out.P95 = stats.Quantile(s, 0.95)

	return out
}

// NumericComparison compares one continuous, integer or date column.
type NumericComparison struct {
	Column    string  `yaml:"column"`
	Original  Summary `yaml:"original"`
	Synthetic Summary `yaml:"synthetic"`
	// MeanDiff is |mean_syn − mean_orig|.
	MeanDiff float64 `yaml:"mean_diff"`
	// SMD is the standardized mean difference over the pooled s.d.
	SMD float64 `yaml:"smd"`
	// SDRatio is sd_syn / sd_orig (0 when sd_orig is 0).
	SDRatio float64 `yaml:"sd_ratio"`
}

// CategoricalComparison compares one categorical or string column.
type CategoricalComparison struct {
	Column string `yaml:"column"`
	Levels int    `yaml:"levels"`
	// MaxFreqDiff is the largest |p_syn − p_orig| over all levels.
	MaxFreqDiff float64 `yaml:"max_freq_diff"`
	WorstLevel  string  `yaml:"worst_level"`
}

// Report is the diagnostics record handed to collaborators.
type Report struct {
	RunID       string                  `yaml:"run_id,omitempty"`
	Method      string                  `yaml:"method,omitempty"`
	Rows        int                     `yaml:"rows"`
	Numeric     []NumericComparison     `yaml:"numeric,omitempty"`
	Categorical []CategoricalComparison `yaml:"categorical,omitempty"`
	Privacy     *privacy.DistanceReport `yaml:"privacy,omitempty"`
	Warnings    []string                `yaml:"warnings,omitempty"`
}

// Compare builds the per-column comparison of every column present in both
// tables, using the source roles.
//
// Errors: ErrNilTable.
func Compare(src, syn *table.Table) (*Report, error) {
	if src == nil || syn == nil {
		return nil, ErrNilTable
	}
	rep := &Report{Rows: syn.NumRows()}
	for _, sc := range src.Columns() {
		dc, ok := syn.Column(sc.Name)
		if !ok || sc.Kind != dc.Kind {
			continue
		}
		switch {
		case sc.Role.IsNumericModel() && sc.Kind == table.KindNumeric:
			rep.Numeric = append(rep.Numeric, compareNumeric(sc, dc))
		case sc.Role.IsDiscrete():
			rep.Categorical = append(rep.Categorical, compareDiscrete(sc, dc))
		}
	}

	return rep, nil
}

func compareNumeric(src, syn *table.Column) NumericComparison {
	nc := NumericComparison{Column: src.Name, Original: Summarize(src.Num), Synthetic: Summarize(syn.Num)}
	o, s := nc.Original, nc.Synthetic
	nc.MeanDiff = math.Abs(s.Mean - o.Mean)
	if pooled := math.Sqrt((o.SD*o.SD + s.SD*s.SD) / 2); pooled > 0 {
		nc.SMD = (s.Mean - o.Mean) / pooled
	}
	if o.SD > 0 {
		nc.SDRatio = s.SD / o.SD
	}

	return nc
}

func compareDiscrete(src, syn *table.Column) CategoricalComparison {
	a := stats.NewFreqTable(src.Keys())
	b := stats.NewFreqTable(syn.Keys())
	cc := CategoricalComparison{Column: src.Name, Levels: a.Len()}
	levels := append(append([]string(nil), a.Keys()...), b.Keys()...)
	for _, k := range levels {
		if d := math.Abs(a.Prob(k) - b.Prob(k)); d > cc.MaxFreqDiff {
			cc.MaxFreqDiff, cc.WorstLevel = d, k
		}
	}

	return cc
}

// WriteText prints the report as aligned plain-text tables.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if r.RunID != "" {
		fmt.Fprintf(tw, "run\t%s\n", r.RunID)
	}
	fmt.Fprintf(tw, "rows\t%d\n\n", r.Rows)
	if len(r.Numeric) > 0 {
		fmt.Fprintln(tw, "column\tmean(orig)\tmean(syn)\tsd(orig)\tsd(syn)\tp50(orig)\tp50(syn)\tsmd\tsd ratio")
		for _, c := range r.Numeric {
			fmt.Fprintf(tw, "%s\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.3f\t%.3f\n",
				c.Column, c.Original.Mean, c.Synthetic.Mean, c.Original.SD, c.Synthetic.SD,
				c.Original.P50, c.Synthetic.P50, c.SMD, c.SDRatio)
		}
		fmt.Fprintln(tw)
	}
	if len(r.Categorical) > 0 {
		fmt.Fprintln(tw, "column\tlevels\tmax freq diff\tlevel")
		for _, c := range r.Categorical {
			fmt.Fprintf(tw, "%s\t%d\t%.4f\t%s\n", c.Column, c.Levels, c.MaxFreqDiff, c.WorstLevel)
		}
		fmt.Fprintln(tw)
	}
	if p := r.Privacy; p != nil {
		fmt.Fprintf(tw, "privacy\tsampled %d\tmin %.4f\tmedian %.4f\tmean %.4f\tbelow %.2g: %.1f%%\n",
			p.Sampled, p.Min, p.Median, p.Mean, p.Threshold, 100*p.TooClose)
	}

	return tw.Flush()
}
