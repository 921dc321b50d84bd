package problem

import (
	"fmt"
	"math"
	"math/rand"
)

// searchBound is the half-width of the BBOB search box [-5, 5]^D.
const searchBound = 5.0

// rawFunc evaluates a function in its shifted coordinates z = x - xopt.
type rawFunc func(z []float64) float64

type function struct {
	name string
	raw  rawFunc
}

// functions maps BBOB function ids to their definitions.
var functions = map[int]function{
	1: {name: "sphere", raw: sphere},
	2: {name: "ellipsoid", raw: ellipsoid},
	3: {name: "rastrigin", raw: rastrigin},
	8: {name: "rosenbrock", raw: rosenbrock},
}

// FunctionIDs lists the supported function ids in ascending order.
func FunctionIDs() []int {
	return []int{1, 2, 3, 8}
}

// Sphere function: f(z) = sum(z_i^2)
func sphere(z []float64) float64 {
	var sum float64
	for _, v := range z {
		sum += v * v
	}
	return sum
}

// Separable ellipsoid with condition number 1e6.
func ellipsoid(z []float64) float64 {
	n := len(z)
	var sum float64
	for i, v := range z {
		exp := 0.0
		if n > 1 {
			exp = 6 * float64(i) / float64(n-1)
		}
		sum += math.Pow(10, exp) * v * v
	}
	return sum
}

func rastrigin(z []float64) float64 {
	sum := 10 * float64(len(z))
	for _, v := range z {
		sum += v*v - 10*math.Cos(2*math.Pi*v)
	}
	return sum
}

// Rosenbrock shifted so the optimum sits at z = 0.
func rosenbrock(z []float64) float64 {
	var sum float64
	for i := 0; i+1 < len(z); i++ {
		a := z[i] + 1
		b := z[i+1] + 1
		sum += 100*(a*a-b)*(a*a-b) + (a-1)*(a-1)
	}
	return sum
}

// Benchmark is one instance of a benchmark function in a fixed dimension.
type Benchmark struct {
	functionID int
	instanceID int
	fn         function
	xopt       []float64
	fopt       float64
	lower      []float64
	upper      []float64
}

// NewBenchmark builds the given function instance. The optimum location and
// value are derived deterministically from (function, dimension, instance).
func NewBenchmark(functionID, dimension, instanceID int) (*Benchmark, error) {
	fn, ok := functions[functionID]
	if !ok {
		return nil, fmt.Errorf("unknown function id %d", functionID)
	}
	if dimension < 1 {
		return nil, fmt.Errorf("invalid dimension %d", dimension)
	}
	if instanceID < 1 {
		return nil, fmt.Errorf("invalid instance id %d", instanceID)
	}

	rng := rand.New(rand.NewSource(int64(functionID)*1_000_003 + int64(dimension)*10_007 + int64(instanceID)))

	xopt := make([]float64, dimension)
	lower := make([]float64, dimension)
	upper := make([]float64, dimension)
	for i := range xopt {
		xopt[i] = (rng.Float64()*2 - 1) * (searchBound - 1) // keep xopt inside [-4, 4]
		lower[i] = -searchBound
		upper[i] = searchBound
	}
	fopt := math.Round((rng.Float64()*2000-1000)*100) / 100

	return &Benchmark{
		functionID: functionID,
		instanceID: instanceID,
		fn:         fn,
		xopt:       xopt,
		fopt:       fopt,
		lower:      lower,
		upper:      upper,
	}, nil
}

// Evaluate computes f(x) = raw(x - xopt) + fopt.
func (b *Benchmark) Evaluate(x, y []float64) error {
	if err := CheckInput(b, x, y); err != nil {
		return err
	}
	z := make([]float64, len(x))
	for i := range x {
		z[i] = x[i] - b.xopt[i]
	}
	y[0] = b.fn.raw(z) + b.fopt
	return nil
}

func (b *Benchmark) Dimension() int          { return len(b.xopt) }
func (b *Benchmark) NumberOfObjectives() int { return 1 }
func (b *Benchmark) BestValue() (float64, bool) {
	return b.fopt, true
}
func (b *Benchmark) FunctionID() int { return b.functionID }
func (b *Benchmark) InstanceID() int { return b.instanceID }

func (b *Benchmark) ID() string {
	return fmt.Sprintf("f%02d_i%02d_d%02d", b.functionID, b.instanceID, len(b.xopt))
}

// Name returns the function's short name, e.g. "sphere".
func (b *Benchmark) Name() string {
	return b.fn.name
}

// Optimum returns a copy of the optimal solution.
func (b *Benchmark) Optimum() []float64 {
	return append([]float64{}, b.xopt...)
}

func (b *Benchmark) Bounds() (lower, upper []float64) {
	return b.lower, b.upper
}
