package opt

import "math/rand"

// RandomSearch samples uniformly in the search box. It is the baseline every
// other optimizer is compared against.
type RandomSearch struct {
	budgetMultiplier int
	seed             int64
}

// NewRandomSearch creates a random search spending budgetMultiplier * dim
// evaluations per problem.
func NewRandomSearch(budgetMultiplier int, seed int64) Optimizer {
	return &RandomSearch{budgetMultiplier: budgetMultiplier, seed: seed}
}

func (r *RandomSearch) Name() string { return "random" }

// Run evaluates budgetMultiplier * dim uniform samples and returns the best.
func (r *RandomSearch) Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64) {
	rng := rand.New(rand.NewSource(r.seed))
	budget := r.budgetMultiplier * dim
	if budget < 1 {
		budget = 1
	}

	best := make([]float64, dim)
	bestCost := 0.0
	x := make([]float64, dim)
	for i := 0; i < budget; i++ {
		for j := range x {
			x[j] = lower[j] + rng.Float64()*(upper[j]-lower[j])
		}
		cost := eval(x)
		if i == 0 || cost < bestCost {
			bestCost = cost
			copy(best, x)
		}
	}
	return best, bestCost
}
