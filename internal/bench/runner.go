// Package bench drives an optimizer over a benchmark suite with every
// problem observed by the trajectory logger.
package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/benchlog/internal/logger"
	"github.com/cwbudde/benchlog/internal/opt"
	"github.com/cwbudde/benchlog/internal/problem"
	"github.com/cwbudde/benchlog/internal/store"
)

// Runner runs problems one at a time. Only one logger run may be open per
// registry, so problems are never evaluated concurrently.
type Runner struct {
	registry   *logger.Registry
	optimizer  opt.Optimizer
	store      store.Store
	manifest   *store.Manifest
	experiment store.Experiment
}

// NewRunner creates a runner. The manifest already in st is extended, so a
// reused output folder keeps listing every run its files contain. A nil
// store disables the manifest.
func NewRunner(registry *logger.Registry, optimizer opt.Optimizer, st store.Store) (*Runner, error) {
	manifest := store.NewManifest()
	if st != nil {
		existing, err := st.LoadManifest()
		switch {
		case err == nil:
			manifest = existing
		case errors.Is(err, store.ErrNotFound):
		default:
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
	}

	return &Runner{
		registry:   registry,
		optimizer:  optimizer,
		store:      st,
		manifest:   manifest,
		experiment: manifest.StartExperiment(registry.Options().Algorithm),
	}, nil
}

// Manifest returns every run recorded in the folder, including those of
// earlier experiments.
func (r *Runner) Manifest() *store.Manifest {
	return r.manifest
}

// Experiment returns the experiment this runner records.
func (r *Runner) Experiment() store.Experiment {
	return r.experiment
}

// Run observes every problem in order. It stops at the first error or when
// ctx is cancelled; runs finished before that stay in the manifest.
func (r *Runner) Run(ctx context.Context, problems []*problem.Benchmark) error {
	start := time.Now()
	slog.Info("Starting experiment",
		"experiment_id", r.experiment.ID,
		"optimizer", r.optimizer.Name(),
		"problems", len(problems))

	for i, p := range problems {
		// Check for cancellation between problems
		select {
		case <-ctx.Done():
			slog.Warn("Experiment cancelled", "completed", i, "total", len(problems))
			return ctx.Err()
		default:
		}

		summary, err := r.RunOne(p)
		// A failed run that reached the files is finalized in the index
		// file and is listed as well.
		if summary.IndexFile != "" {
			if serr := r.record(summary); serr != nil {
				return errors.Join(err, serr)
			}
		}
		if err != nil {
			return fmt.Errorf("problem %s: %w", p.ID(), err)
		}
	}

	slog.Info("Experiment complete",
		"experiment_id", r.experiment.ID,
		"runs", len(problems),
		"elapsed", time.Since(start))
	return nil
}

// record appends summary to the manifest and saves it.
func (r *Runner) record(summary store.RunSummary) error {
	r.manifest.Append(summary)
	if r.store == nil {
		return nil
	}
	if err := r.store.SaveManifest(r.manifest); err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}
	return nil
}

// RunOne optimizes a single problem through a fresh logger run. The run is
// finalized on every path so the index entry is always completed.
func (r *Runner) RunOne(p problem.Problem) (summary store.RunSummary, err error) {
	lg, err := r.registry.Wrap(p)
	if err != nil {
		return summary, err
	}
	defer func() {
		if ferr := lg.Finalize(); ferr != nil {
			err = errors.Join(err, ferr)
		}
		summary = lg.Summary()
		summary.ExperimentID = r.experiment.ID
	}()

	objective := problem.NewObjective(lg)
	lower, upper := p.Bounds()
	_, cost := r.optimizer.Run(objective.Eval, lower, upper, p.Dimension())

	if err := objective.Err(); err != nil {
		return summary, fmt.Errorf("evaluation failed: %w", err)
	}

	slog.Debug("Optimizer returned",
		"problem", p.ID(),
		"cost", cost,
		"calls", objective.Calls())
	return summary, nil
}
