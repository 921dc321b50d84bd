package problem

import "math"

// Objective adapts a Problem to the func([]float64) float64 shape used by
// optimizers. The first evaluation error is kept and every later call
// returns +Inf without touching the problem again.
type Objective struct {
	problem Problem
	y       []float64
	err     error
	calls   int
}

// NewObjective wraps p.
func NewObjective(p Problem) *Objective {
	return &Objective{
		problem: p,
		y:       make([]float64, p.NumberOfObjectives()),
	}
}

// Eval returns the first objective of x, or +Inf after an error.
func (o *Objective) Eval(x []float64) float64 {
	if o.err != nil {
		return math.Inf(1)
	}
	o.calls++
	if err := o.problem.Evaluate(x, o.y); err != nil {
		o.err = err
		return math.Inf(1)
	}
	return o.y[0]
}

// Err returns the first evaluation error.
func (o *Objective) Err() error {
	return o.err
}

// Calls is the number of evaluations forwarded to the problem.
func (o *Objective) Calls() int {
	return o.calls
}
