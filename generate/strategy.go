// SPDX-License-Identifier: MIT

package generate

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/synthdata/table"
)

// Options tune the strategies. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// PreserveCorrelation draws numeric columns jointly; false draws
	// independent marginals.
	PreserveCorrelation bool
	// Smooth jitters empirical draws by up to range/(2·n_obs).
	Smooth bool
	// MinCellCount pools rare categories up to this count (0 = off).
	MinCellCount float64
	// NoiseFraction scales bootstrap noise by each column's s.d.
	NoiseFraction float64
	// PerturbProb is the bootstrap chance of reassigning a discrete value.
	PerturbProb float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		PreserveCorrelation: true,
		NoiseFraction:       0.1,
		PerturbProb:         0.05,
	}
}

// Warning is a recoverable condition met while generating.
type Warning struct {
	Column  string
	Message string
}

func (w Warning) String() string {
	if w.Column == "" {
		return w.Message
	}

	return w.Column + ": " + w.Message
}

// Output is the result of one Generate call.
type Output struct {
	Table    *table.Table
	Warnings []Warning
}

func (o *Output) warn(col, format string, args ...any) {
	o.Warnings = append(o.Warnings, Warning{Column: col, Message: fmt.Sprintf(format, args...)})
}

// Strategy generates n synthetic rows from a plan.
type Strategy interface {
	Method() Method
	Generate(plan *Plan, n int, r *rand.Rand) (*Output, error)
}

// New returns the strategy for m.
func New(m Method, opts Options) (Strategy, error) {
	switch m {
	case MethodParametric, MethodEmpirical, MethodAdaptive:
		return &latentStrategy{method: m, opts: opts}, nil
	case MethodSequential:
		return &sequentialStrategy{opts: opts}, nil
	case MethodBootstrap:
		return &bootstrapStrategy{opts: opts}, nil
	case MethodPermutation:
		return &permutationStrategy{opts: opts}, nil
	}

	return nil, fmt.Errorf("%v: %w", m, ErrUnknownMethod)
}

func checkArgs(plan *Plan, n int) error {
	if plan == nil || plan.Source == nil {
		return ErrNilPlan
	}
	if n <= 0 {
		return fmt.Errorf("n=%d: %w", n, ErrBadRowCount)
	}

	return nil
}
