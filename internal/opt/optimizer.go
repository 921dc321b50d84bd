package opt

// Optimizer defines an optimization algorithm interface
type Optimizer interface {
	// Name is written as the algorithm id into trajectory index files
	Name() string

	// Run executes the optimization
	// eval: objective function to minimize
	// lower, upper: parameter bounds
	// dim: dimensionality of parameter space
	// Returns: best parameters and best cost
	Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64)
}

// New builds the optimizer called name with an evaluation budget of
// budgetMultiplier * dim for each problem.
func New(name string, budgetMultiplier, popSize int, seed int64) (Optimizer, error) {
	switch name {
	case "mayfly":
		return NewMayfly(budgetMultiplier, popSize, seed), nil
	case "random":
		return NewRandomSearch(budgetMultiplier, seed), nil
	default:
		return nil, &UnknownOptimizerError{Name: name}
	}
}

// UnknownOptimizerError is returned by New for unsupported names.
type UnknownOptimizerError struct {
	Name string
}

func (e *UnknownOptimizerError) Error() string {
	return "unknown optimizer: " + e.Name
}
