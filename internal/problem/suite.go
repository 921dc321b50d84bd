package problem

import (
	"fmt"
	"slices"
)

// SuiteDimensions are the dimensions the benchmark suite defines. Their count
// bounds how many dimensions one index file may describe.
var SuiteDimensions = []int{2, 3, 5, 10, 20, 40}

// Suite selects functions, dimensions and instances of the benchmark.
type Suite struct {
	Functions  []int
	Dimensions []int
	Instances  []int
}

// DefaultSuite returns every function in every suite dimension with 15 instances.
func DefaultSuite() Suite {
	instances := make([]int, 15)
	for i := range instances {
		instances[i] = i + 1
	}
	return Suite{
		Functions:  FunctionIDs(),
		Dimensions: slices.Clone(SuiteDimensions),
		Instances:  instances,
	}
}

// Problems enumerates the suite in dimension → function → instance order.
func (s Suite) Problems() ([]*Benchmark, error) {
	for _, d := range s.Dimensions {
		if !slices.Contains(SuiteDimensions, d) {
			return nil, fmt.Errorf("dimension %d is not part of the suite %v", d, SuiteDimensions)
		}
	}

	problems := make([]*Benchmark, 0, len(s.Dimensions)*len(s.Functions)*len(s.Instances))
	for _, d := range s.Dimensions {
		for _, f := range s.Functions {
			for _, i := range s.Instances {
				b, err := NewBenchmark(f, d, i)
				if err != nil {
					return nil, fmt.Errorf("failed to build problem f%d d%d i%d: %w", f, d, i, err)
				}
				problems = append(problems, b)
			}
		}
	}
	return problems, nil
}
