// SPDX-License-Identifier: MIT

package privacy

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/katalvlaran/synthdata/stats"
	"github.com/katalvlaran/synthdata/table"
)

// MissingMode selects how source missingness is reproduced.
type MissingMode int

const (
	// MissingNone leaves the synthetic table complete.
	MissingNone MissingMode = iota
	// MissingRate nulls each cell independently at its column's source rate.
	MissingRate
	// MissingPattern draws a whole-row missingness pattern from the source
	// pattern frequencies, keeping co-missingness.
	MissingPattern
)

func (m MissingMode) String() string {
	switch m {
	case MissingNone:
		return "none"
	case MissingRate:
		return "rate"
	case MissingPattern:
		return "pattern"
	}

	return fmt.Sprintf("missing(%d)", int(m))
}

// ParseMissingMode maps "none", "rate" or "pattern" to a mode; "" is rate.
func ParseMissingMode(s string) (MissingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off":
		return MissingNone, nil
	case "", "rate":
		return MissingRate, nil
	case "pattern", "joint":
		return MissingPattern, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownMode)
}

// ApplyMissing nulls cells of the listed columns of syn so that missingness
// follows src. Returns the number of cells set missing.
//
// Errors: ErrUnknownColumn, ErrUnknownMode.
func ApplyMissing(src, syn *table.Table, columns []string, mode MissingMode, r *rand.Rand) (int, error) {
	srcCols, synCols, err := pairs(src, syn, columns)
	if err != nil {
		return 0, err
	}
	switch mode {
	case MissingNone:
		return 0, nil
	case MissingRate:
		return byRate(srcCols, synCols, r), nil
	case MissingPattern:
		return byPattern(srcCols, synCols, r), nil
	}

	return 0, fmt.Errorf("%v: %w", mode, ErrUnknownMode)
}

func byRate(src, syn []*table.Column, r *rand.Rand) int {
	set := 0
	for j, dst := range syn {
		p := src[j].MissingRate()
		if p == 0 {
			continue
		}
		for i := 0; i < dst.Len(); i++ {
			if r.Float64() < p {
				dst.SetMissing(i)
				set++
			}
		}
	}

	return set
}

// byPattern samples one source row pattern ("0"/"1" per column) for every
// synthetic row.
func byPattern(src, syn []*table.Column, r *rand.Rand) int {
	if len(src) == 0 {
		return 0
	}
	n := src[0].Len()
	patterns := make([]string, n)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.Reset()
		for _, c := range src {
			if c.IsMissing(i) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		patterns[i] = b.String()
	}
	ft := stats.NewFreqTable(patterns)
	if ft.Len() == 1 && !strings.Contains(ft.Keys()[0], "1") {
		return 0
	}

	set := 0
	for i := 0; i < syn[0].Len(); i++ {
		p := ft.Sample(r)
		for j := 0; j < len(p); j++ {
			if p[j] == '1' {
				syn[j].SetMissing(i)
				set++
			}
		}
	}

	return set
}

func pairs(src, syn *table.Table, columns []string) ([]*table.Column, []*table.Column, error) {
	a := make([]*table.Column, 0, len(columns))
	b := make([]*table.Column, 0, len(columns))
	for _, name := range columns {
		sc, ok1 := src.Column(name)
		dc, ok2 := syn.Column(name)
		if !ok1 || !ok2 {
			return nil, nil, fmt.Errorf("%q: %w", name, ErrUnknownColumn)
		}
		a = append(a, sc)
		b = append(b, dc)
	}

	return a, b, nil
}
