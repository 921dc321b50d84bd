// Package problem provides the objective functions benchlog observes.
//
// A Problem is the inner evaluator wrapped by the trajectory logger. The
// logger itself implements Problem, so optimizers never know whether they
// talk to a bare function or to an observed one.
package problem

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when an input vector does not match the
// problem dimension.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Problem is a single-objective black-box function with stable identifiers.
type Problem interface {
	// Evaluate writes the objective values of x into y. y must hold at least
	// NumberOfObjectives() entries.
	Evaluate(x, y []float64) error

	// Dimension is the number of decision variables.
	Dimension() int

	// NumberOfObjectives is 1 for every benchmark in this package.
	NumberOfObjectives() int

	// BestValue returns the known optimal fitness, if any.
	BestValue() (float64, bool)

	FunctionID() int
	InstanceID() int

	// ID is a human-readable identifier such as "f01_i03_d05".
	ID() string

	// Bounds returns the search box.
	Bounds() (lower, upper []float64)
}

// CheckInput validates x and y against p.
func CheckInput(p Problem, x, y []float64) error {
	if len(x) != p.Dimension() {
		return fmt.Errorf("%s: got %d variables, want %d: %w", p.ID(), len(x), p.Dimension(), ErrDimensionMismatch)
	}
	if len(y) < p.NumberOfObjectives() {
		return fmt.Errorf("%s: output holds %d values, want %d: %w", p.ID(), len(y), p.NumberOfObjectives(), ErrDimensionMismatch)
	}
	return nil
}
