package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubProblem returns a scripted sequence of fitness values regardless of x.
type stubProblem struct {
	functionID int
	dimension  int
	instanceID int
	optimum    float64
	hasOptimum bool
	objectives int
	values     []float64
	calls      int
	err        error
}

func newStub(functionID, dimension, instanceID int, values ...float64) *stubProblem {
	return &stubProblem{
		functionID: functionID,
		dimension:  dimension,
		instanceID: instanceID,
		hasOptimum: true,
		objectives: 1,
		values:     values,
	}
}

func (s *stubProblem) Evaluate(x, y []float64) error {
	if s.err != nil {
		return s.err
	}
	if len(s.values) == 0 {
		y[0] = 1
	} else {
		y[0] = s.values[s.calls%len(s.values)]
	}
	s.calls++
	return nil
}

func (s *stubProblem) Dimension() int          { return s.dimension }
func (s *stubProblem) NumberOfObjectives() int { return s.objectives }
func (s *stubProblem) BestValue() (float64, bool) {
	return s.optimum, s.hasOptimum
}
func (s *stubProblem) FunctionID() int { return s.functionID }
func (s *stubProblem) InstanceID() int { return s.instanceID }
func (s *stubProblem) ID() string {
	return fmt.Sprintf("f%d_i%d_d%d", s.functionID, s.instanceID, s.dimension)
}
func (s *stubProblem) Bounds() (lower, upper []float64) {
	return make([]float64, s.dimension), make([]float64, s.dimension)
}

func newTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	dir := t.TempDir()
	return NewRegistry(Options{Folder: dir, Algorithm: "test"}), dir
}

// runStub wraps p, evaluates it n times at a fixed point and finalizes.
func runStub(t *testing.T, reg *Registry, p *stubProblem, n int) *Logger {
	t.Helper()
	lg, err := reg.Wrap(p)
	require.NoError(t, err)

	x := make([]float64, p.dimension)
	for i := range x {
		x[i] = float64(i + 1)
	}
	y := make([]float64, 1)
	for i := 0; i < n; i++ {
		require.NoError(t, lg.Evaluate(x, y))
	}
	require.NoError(t, lg.Finalize())
	return lg
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// dataLines returns the non-header lines of a data file.
func dataLines(t *testing.T, path string) []string {
	t.Helper()
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(readFile(t, path), "\n"), "\n") {
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func listInfoFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.info"))
	require.NoError(t, err)
	for i, m := range matches {
		matches[i] = filepath.Base(m)
	}
	return matches
}
