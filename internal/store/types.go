package store

import (
	"time"

	"github.com/google/uuid"
)

// RunSummary describes one finalized logger run.
type RunSummary struct {
	// ExperimentID links the run to the benchlog invocation that wrote it
	ExperimentID string    `json:"experimentId"`
	FunctionID   int       `json:"functionId"`
	Dimension    int       `json:"dimension"`
	InstanceID   int       `json:"instanceId"`
	Evaluations  int64     `json:"evaluations"`
	BestGap      float64   `json:"bestGap"`
	IndexFile    string    `json:"indexFile"`
	DataFile     string    `json:"dataFile"`
	Finished     time.Time `json:"finished"`
}

// Experiment is one benchlog invocation writing into the folder.
type Experiment struct {
	ID string `json:"id"`

	// Algorithm is the algId written into the index file headers
	Algorithm string `json:"algorithm"`

	Started time.Time `json:"started"`
}

// Manifest lists every run written into an output folder, across all
// experiments that reused it.
// It is informational: the .info/.dat files stay the source of truth for
// post-processing tools.
type Manifest struct {
	Experiments []Experiment `json:"experiments"`
	Runs        []RunSummary `json:"runs"`
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{
		Experiments: []Experiment{},
		Runs:        []RunSummary{},
	}
}

// StartExperiment registers a new experiment with a fresh id.
func (m *Manifest) StartExperiment(algorithm string) Experiment {
	exp := Experiment{
		ID:        uuid.New().String(),
		Algorithm: algorithm,
		Started:   time.Now(),
	}
	m.Experiments = append(m.Experiments, exp)
	return exp
}

// Append records a finished run.
func (m *Manifest) Append(run RunSummary) {
	m.Runs = append(m.Runs, run)
}
