package logger

import "math"

const (
	// FitnessPointsPerDecade is the density of the fitness-gap ladder:
	// targets are 10^(i/5), i ∈ Z.
	FitnessPointsPerDecade = 5

	// EvaluationPointsPerDecade is the density of the plain evaluation-count
	// ladder: targets are floor(10^(i/20)), i ≥ 0.
	EvaluationPointsPerDecade = 20
)

// Triggers decides which evaluations are written to the .dat and .tdat files.
//
// Two ladders run independently. The fitness ladder walks down the
// logarithmic targets 10^(i/5) as the gap to the optimum shrinks. The
// evaluation ladder walks up min(floor(10^(j/20)), dim*10^k). Every advance
// loops until the ladder is strictly ahead of the observed value, so large
// jumps between calls never skip a step.
type Triggers struct {
	dimension int

	fThreshold float64
	fIndex     int
	fStarted   bool // fIndex is valid
	fReached   bool // gap <= 0 was observed

	tThreshold int64
	tIndex     int
	tDimIndex  int
}

// NewTriggers returns triggers for a problem of the given dimension. The
// first evaluation always fires both ladders.
func NewTriggers(dimension int) *Triggers {
	return &Triggers{
		dimension:  dimension,
		fThreshold: math.MaxFloat64,
	}
}

func fitnessTarget(index int) float64 {
	return math.Pow(10, float64(index)/FitnessPointsPerDecade)
}

func countTarget(index int) float64 {
	return math.Floor(math.Pow(10, float64(index)/EvaluationPointsPerDecade))
}

func (t *Triggers) dimensionTarget(index int) float64 {
	return float64(t.dimension) * math.Pow10(index)
}

// FitnessFires reports whether an evaluation with the given gap to the
// optimum must be written to the fitness-aligned file. Once the optimum has
// been reached every evaluation fires.
func (t *Triggers) FitnessFires(gap float64) bool {
	return t.fReached || gap <= t.fThreshold
}

// AdvanceFitness moves the fitness ladder past gap. Call it after a firing.
func (t *Triggers) AdvanceFitness(gap float64) {
	if t.fReached {
		return
	}
	if gap <= 0 {
		t.fReached = true
		t.fThreshold = math.Inf(-1)
		return
	}

	if !t.fStarted {
		t.fIndex = int(math.Ceil(math.Log10(gap) * FitnessPointsPerDecade))
		t.fStarted = true
	} else {
		t.fIndex--
	}
	t.fThreshold = fitnessTarget(t.fIndex)
	for gap <= t.fThreshold {
		t.fIndex--
		t.fThreshold = fitnessTarget(t.fIndex)
	}
}

// EvaluationFires reports whether the n-th evaluation must be written to the
// evaluation-aligned file.
func (t *Triggers) EvaluationFires(n int64) bool {
	return n >= t.tThreshold
}

// AdvanceEvaluations moves both evaluation sub-ladders past n and sets the
// next threshold to the tighter of the two.
func (t *Triggers) AdvanceEvaluations(n int64) {
	count := float64(n)
	for count >= countTarget(t.tIndex) {
		t.tIndex++
	}
	for count >= t.dimensionTarget(t.tDimIndex) {
		t.tDimIndex++
	}
	t.tThreshold = int64(math.Min(countTarget(t.tIndex), t.dimensionTarget(t.tDimIndex)))
}

// FitnessThreshold is the gap at or below which the next evaluation fires.
func (t *Triggers) FitnessThreshold() float64 { return t.fThreshold }

// FitnessIndex is the current exponent index i of 10^(i/5). It is only
// meaningful after the first firing with a positive gap.
func (t *Triggers) FitnessIndex() int { return t.fIndex }

// EvaluationThreshold is the evaluation count at which the next record fires.
func (t *Triggers) EvaluationThreshold() int64 { return t.tThreshold }

// EvaluationIndices returns the plain-count and dimension-scaled ladder indices.
func (t *Triggers) EvaluationIndices() (count, dim int) { return t.tIndex, t.tDimIndex }
