package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// File kinds used as the "file" label of recordsWritten.
const (
	fileFitness    = "dat"
	fileEvaluation = "tdat"
	fileRestart    = "rdat"
	fileIndex      = "info"
)

var (
	// evaluationsTotal counts evaluations intercepted by any logger.
	// Labels: function (function id)
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "benchlog",
		Subsystem: "logger",
		Name:      "evaluations_total",
		Help:      "Objective function evaluations observed by the logger",
	}, []string{"function"})

	// recordsWritten counts data lines by target file kind.
	// Labels: file (dat, tdat)
	recordsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "benchlog",
		Subsystem: "logger",
		Name:      "records_written_total",
		Help:      "Trajectory records appended to data files",
	}, []string{"file"})

	// familyRotations counts index files started because a dimension came
	// back or the dimension set was full.
	familyRotations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "benchlog",
		Subsystem: "logger",
		Name:      "family_rotations_total",
		Help:      "New index file families started by rotation",
	})

	// runsFinalized counts runs that reached the Finalized state.
	runsFinalized = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "benchlog",
		Subsystem: "logger",
		Name:      "runs_finalized_total",
		Help:      "Logger runs finalized",
	})

	// optimumViolations counts evaluations below the documented optimum.
	optimumViolations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "benchlog",
		Subsystem: "logger",
		Name:      "optimum_violations_total",
		Help:      "Evaluations whose fitness was below the documented optimum",
	})
)
