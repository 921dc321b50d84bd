package opt

import (
	"log/slog"
	"math/rand"

	"github.com/cwbudde/mayfly"
)

// evaluationsPerIteration estimates how many objective calls one mayfly
// iteration costs: males, females and offspring.
const evaluationsPerIteration = 3

// MayflyAdapter wraps the external Mayfly library to conform to our Optimizer interface
type MayflyAdapter struct {
	budgetMultiplier int
	popSize          int
	seed             int64
}

// NewMayfly creates a new Mayfly optimizer adapter. The iteration count is
// derived per problem from budgetMultiplier * dim evaluations.
func NewMayfly(budgetMultiplier, popSize int, seed int64) Optimizer {
	return &MayflyAdapter{
		budgetMultiplier: budgetMultiplier,
		popSize:          popSize,
		seed:             seed,
	}
}

func (m *MayflyAdapter) Name() string { return "mayfly" }

// Iterations returns the iteration count that fits the budget for dim.
func (m *MayflyAdapter) Iterations(dim int) int {
	iters := m.budgetMultiplier * dim / (evaluationsPerIteration * m.popSize)
	if iters < 1 {
		iters = 1
	}
	return iters
}

// Run executes the Mayfly optimization using the external library
func (m *MayflyAdapter) Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64) {
	config := mayfly.NewDefaultConfig()

	config.ObjectiveFunc = eval
	config.ProblemSize = dim
	config.MaxIterations = m.Iterations(dim)
	config.NPop = m.popSize

	// External library uses scalar bounds; benchmark boxes are uniform
	config.LowerBound = lower[0]
	config.UpperBound = upper[0]

	config.Rand = rand.New(rand.NewSource(m.seed))

	result, err := mayfly.Optimize(config)
	if err != nil {
		slog.Warn("Mayfly optimization failed, evaluating origin", "error", err)
		x := make([]float64, dim)
		return x, eval(x)
	}

	return result.GlobalBest.Position, result.GlobalBest.Cost
}
