// Package logger records optimizer trajectories for benchmark post-processing.
//
// A Logger wraps a problem.Problem and intercepts every evaluation. Two
// logarithmic trigger ladders (see Triggers) decide which evaluations are
// persisted. Records go to a family of files managed by a Registry:
//
//	<folder>/<prefix>_f<fid>_i<first>.info                index file
//	<folder>/data_f<fid>/<prefix>_f<fid>_DIM<d>_i<first>.dat   fitness-aligned records
//	<folder>/data_f<fid>/<prefix>_f<fid>_DIM<d>_i<first>.tdat  evaluation-aligned records
//	<folder>/data_f<fid>/<prefix>_f<fid>_DIM<d>_i<first>.rdat  restart records
//
// Only one run per Registry may be open at a time. A run is opened by its
// first evaluation and closed by Finalize, which must be called on every
// exit path:
//
//	lg, err := registry.Wrap(p)
//	if err != nil { ... }
//	defer lg.Finalize()
package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/cwbudde/benchlog/internal/problem"
	"github.com/cwbudde/benchlog/internal/store"
)

// State is the lifecycle state of a run.
type State int

const (
	// StateCreated: wrapped, no file opened yet.
	StateCreated State = iota
	// StateInitialized: files open, evaluations are being logged.
	StateInitialized
	// StateFinalized: files closed. Terminal.
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInitialized:
		return "initialized"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Logger observes one optimizer run on one problem instance. It implements
// problem.Problem, forwarding everything but Evaluate to the wrapped problem.
// A Logger is not safe for concurrent use.
type Logger struct {
	problem.Problem

	registry *Registry
	state    State

	functionID int
	dimension  int
	instanceID int
	optimum    float64

	evaluations     int64
	bestF           float64
	lastF           float64
	bestX           []float64 // owned copy of the best point
	writtenLastEval bool      // the last evaluation is in the .tdat file

	triggers *Triggers
	files    *FileSet

	finished time.Time
}

// Wrap creates a run observing p. No file is touched until the first
// evaluation. Wrap fails with ErrRunOpen while another run is open.
func (r *Registry) Wrap(p problem.Problem) (*Logger, error) {
	if p.Dimension() < 1 {
		return nil, fmt.Errorf("cannot observe %s: invalid dimension %d", p.ID(), p.Dimension())
	}
	if r.IsOpen() {
		return nil, ErrRunOpen
	}

	if n := p.NumberOfObjectives(); n != 1 {
		slog.Warn("Single-objective logger used on a multi-objective problem",
			"problem", p.ID(),
			"objectives", n,
		)
	}

	optimum, ok := p.BestValue()
	if !ok {
		slog.Warn("Undefined optimal f value, using 0", "problem", p.ID())
		optimum = 0
	}

	return &Logger{
		Problem:    p,
		registry:   r,
		state:      StateCreated,
		functionID: p.FunctionID(),
		dimension:  p.Dimension(),
		instanceID: p.InstanceID(),
		optimum:    optimum,
		bestF:      math.MaxFloat64,
		lastF:      math.MaxFloat64,
		bestX:      make([]float64, p.Dimension()),
		triggers:   NewTriggers(p.Dimension()),
	}, nil
}

// initialize opens the file set and writes the data file headers.
func (l *Logger) initialize() error {
	files, err := l.registry.acquire(l.functionID, l.dimension, l.instanceID)
	if err != nil {
		return err
	}

	for _, f := range []*store.AppendFile{files.fitness, files.evaluation, files.restart} {
		if err := WriteHeader(f, l.optimum); err != nil {
			files.Close()
			l.registry.release()
			return &FileError{Op: "write", Path: f.Path(), Err: err}
		}
	}

	l.files = files
	l.state = StateInitialized
	slog.Info("Observing problem",
		"problem", l.ID(),
		"index_file", files.IndexPath,
		"data_file", files.DataName,
	)
	return nil
}

// Evaluate evaluates x on the wrapped problem and logs the evaluation if one
// of the trigger ladders fires.
func (l *Logger) Evaluate(x, y []float64) error {
	if l.state == StateFinalized {
		return ErrFinalized
	}
	if err := problem.CheckInput(l, x, y); err != nil {
		return err
	}
	if len(y) == 0 {
		return fmt.Errorf("%s: empty output vector: %w", l.ID(), problem.ErrDimensionMismatch)
	}
	if l.state == StateCreated {
		if err := l.initialize(); err != nil {
			return err
		}
	}

	if err := l.Problem.Evaluate(x, y); err != nil {
		return fmt.Errorf("failed to evaluate %s: %w", l.ID(), err)
	}
	f := y[0]

	l.lastF = f
	l.writtenLastEval = false
	if l.evaluations == 0 || f < l.bestF || math.IsNaN(l.bestF) {
		l.bestF = f
		copy(l.bestX, x)
	}
	l.evaluations++
	evaluationsTotal.WithLabelValues(strconv.Itoa(l.functionID)).Inc()

	if f < l.optimum {
		optimumViolations.Inc()
		if l.registry.warnOptimumOnce() {
			slog.Warn("Observed fitness is smaller than supposed optimal fitness",
				"problem", l.ID(),
				"fitness", f,
				"optimum", l.optimum,
			)
		}
	}

	record := Record{
		Evaluations: l.evaluations,
		F:           f,
		BestF:       l.bestF,
		Optimum:     l.optimum,
		X:           x,
	}

	gap := f - l.optimum
	if l.triggers.FitnessFires(gap) {
		if err := l.write(l.files.fitness, fileFitness, record); err != nil {
			return err
		}
		l.triggers.AdvanceFitness(gap)
	}

	if l.triggers.EvaluationFires(l.evaluations) {
		l.writtenLastEval = true
		if err := l.write(l.files.evaluation, fileEvaluation, record); err != nil {
			return err
		}
		l.triggers.AdvanceEvaluations(l.evaluations)
	}

	if err := l.files.fitness.Flush(); err != nil {
		return &FileError{Op: "flush", Path: l.files.fitness.Path(), Err: err}
	}
	return nil
}

func (l *Logger) write(f *store.AppendFile, kind string, r Record) error {
	if err := WriteRecord(f, r); err != nil {
		return &FileError{Op: "write", Path: f.Path(), Err: err}
	}
	recordsWritten.WithLabelValues(kind).Inc()
	return nil
}

// Finalize completes the index file entry of the run, makes sure the .tdat
// file ends with the last evaluation, closes all files and releases the
// registry. A run that was never evaluated is opened first so that it still
// leaves an index entry. Calling Finalize again is a no-op.
func (l *Logger) Finalize() error {
	switch l.state {
	case StateFinalized:
		return nil
	case StateCreated:
		if err := l.initialize(); err != nil {
			return err
		}
	}

	var errs []error
	if _, err := fmt.Fprintf(l.files.index, ":%d|%.1e", l.evaluations, l.bestF-l.optimum); err != nil {
		errs = append(errs, &FileError{Op: "write", Path: l.files.IndexPath, Err: err})
	}

	if !l.writtenLastEval {
		errs = append(errs, l.write(l.files.evaluation, fileEvaluation, Record{
			Evaluations: l.evaluations,
			F:           l.lastF,
			BestF:       l.bestF,
			Optimum:     l.optimum,
			X:           l.bestX,
		}))
		l.writtenLastEval = true
	}

	errs = append(errs, l.files.Close())
	l.registry.release()
	l.state = StateFinalized
	l.finished = time.Now()
	runsFinalized.Inc()

	slog.Info("Done observing",
		"problem", l.ID(),
		"best_f", l.bestF,
		"evaluations", l.evaluations,
	)
	return errors.Join(errs...)
}

// State returns the lifecycle state.
func (l *Logger) State() State {
	return l.state
}

// Evaluations returns the number of evaluations observed so far.
func (l *Logger) Evaluations() int64 {
	return l.evaluations
}

// BestFitness returns the best observed fitness, or math.MaxFloat64 before
// the first evaluation.
func (l *Logger) BestFitness() float64 {
	return l.bestF
}

// BestSolution returns a copy of the best observed point.
func (l *Logger) BestSolution() []float64 {
	return append([]float64{}, l.bestX...)
}

// Optimum returns the optimal fitness the gaps are measured against.
func (l *Logger) Optimum() float64 {
	return l.optimum
}

// Summary describes the run for the experiment manifest. File names are
// empty until the run has been initialized.
func (l *Logger) Summary() store.RunSummary {
	s := store.RunSummary{
		FunctionID:  l.functionID,
		Dimension:   l.dimension,
		InstanceID:  l.instanceID,
		Evaluations: l.evaluations,
		BestGap:     l.bestF - l.optimum,
		Finished:    l.finished,
	}
	if l.files != nil {
		s.IndexFile = l.files.IndexPath
		s.DataFile = l.files.DataName
	}
	return s
}
