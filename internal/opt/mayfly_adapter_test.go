package opt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sphere function: f(x) = sum(x_i^2), minimum at origin
func sphere(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum
}

func box(dim int, bound float64) (lower, upper []float64) {
	lower = make([]float64, dim)
	upper = make([]float64, dim)
	for i := 0; i < dim; i++ {
		lower[i] = -bound
		upper[i] = bound
	}
	return lower, upper
}

func TestMayflyAdapterOnSphere(t *testing.T) {
	// 2000*3 evaluations ≈ 100 iterations of 20 mayflies
	optimizer := NewMayfly(2000, 20, 42)

	dim := 3
	lower, upper := box(dim, 10)

	best, cost := optimizer.Run(sphere, lower, upper, dim)
	require.Len(t, best, dim)

	assert.Less(t, cost, 0.1, "should converge close to zero")
	for i, v := range best {
		assert.Less(t, math.Abs(v), 1.0, "parameter %d", i)
	}
}

func TestMayflyAdapterDeterministic(t *testing.T) {
	dim := 2
	lower, upper := box(dim, 5)

	// popSize must be >=20 for mayfly v0.1.0
	_, cost1 := NewMayfly(1500, 20, 123).Run(sphere, lower, upper, dim)
	_, cost2 := NewMayfly(1500, 20, 123).Run(sphere, lower, upper, dim)

	assert.Equal(t, cost1, cost2, "same seed must give the same result")
}

func TestMayflyIterationsFromBudget(t *testing.T) {
	m := NewMayfly(100, 20, 1).(*MayflyAdapter)
	assert.Equal(t, 3, m.Iterations(2))   // 200 / 60
	assert.Equal(t, 33, m.Iterations(20)) // 2000 / 60
	assert.Equal(t, 66, m.Iterations(40)) // 4000 / 60

	small := NewMayfly(10, 20, 1).(*MayflyAdapter)
	assert.Equal(t, 1, small.Iterations(2), "at least one iteration")
}
