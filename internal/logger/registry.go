package logger

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/cwbudde/benchlog/internal/problem"
)

const (
	defaultPrefix    = "bbobexp"
	defaultPrecision = 1e-8
)

// Options configures a Registry.
type Options struct {
	// Folder receives the index files and the data_f<id> subfolders.
	Folder string

	// Prefix starts every index and data file name. Defaults to "bbobexp".
	Prefix string

	// Algorithm is written as algId into index file headers.
	Algorithm string

	// Capacity bounds how many distinct dimensions one index file family may
	// describe. Defaults to the number of suite dimensions.
	Capacity int

	// Precision is the target precision advertised in index headers.
	Precision float64
}

func (o Options) withDefaults() Options {
	if o.Prefix == "" {
		o.Prefix = defaultPrefix
	}
	if o.Capacity <= 0 {
		o.Capacity = len(problem.SuiteDimensions)
	}
	if o.Precision == 0 {
		o.Precision = defaultPrecision
	}
	if o.Algorithm == "" {
		o.Algorithm = o.Folder
	}
	return o
}

// Registry tracks which file family is in use across runs and guarantees
// that at most one run is open at a time. One Registry normally lives for a
// whole experiment; runs are created from it with Wrap.
type Registry struct {
	mu   sync.Mutex
	opts Options

	open bool // single-run-open guard

	hasFamily     bool
	functionID    int   // function of the last opened run
	dimension     int   // dimension of the last opened run
	firstInstance int   // instance that named the current family
	dimensions    []int // dimensions already described by the current family

	optimumWarned bool
}

// NewRegistry creates a registry writing below opts.Folder.
func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (r *Registry) Options() Options {
	return r.opts
}

// IsOpen reports whether a run currently holds the guard.
func (r *Registry) IsOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open
}

// Dimensions returns the dimensions recorded by the current family.
func (r *Registry) Dimensions() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.dimensions)
}

// family is the outcome of resolving a run against the registry state.
type family struct {
	functionID    int
	dimension     int
	firstInstance int
	dimensions    []int
	newHeader     bool // start a new header line in the index file
	rotated       bool
}

// resolve decides where the run (functionID, dimension, instanceID) is
// logged. It does not mutate the registry; commit does.
func (r *Registry) resolve(functionID, dimension, instanceID int) family {
	next := family{
		functionID:    functionID,
		dimension:     dimension,
		firstInstance: r.firstInstance,
		dimensions:    slices.Clone(r.dimensions),
	}

	switch {
	case !r.hasFamily:
		next.firstInstance = instanceID
		next.dimensions = []int{dimension}
		next.newHeader = true
	case functionID == r.functionID && dimension == r.dimension:
		// another instance on the current line
	case dimension == r.dimension:
		// another function in the same dimension stays in the family
		next.newHeader = true
	case slices.Contains(r.dimensions, dimension) || len(r.dimensions) >= r.opts.Capacity:
		next.firstInstance = instanceID
		next.dimensions = []int{dimension}
		next.newHeader = true
		next.rotated = true
	default:
		next.dimensions = append(next.dimensions, dimension)
		next.newHeader = true
	}
	return next
}

func (r *Registry) commit(next family) {
	r.hasFamily = true
	r.functionID = next.functionID
	r.dimension = next.dimension
	r.firstInstance = next.firstInstance
	r.dimensions = next.dimensions
}

// acquire takes the single-run guard and opens the file set of the run.
// The registry state only changes when every file could be opened.
func (r *Registry) acquire(functionID, dimension, instanceID int) (*FileSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.open {
		return nil, ErrRunOpen
	}

	next := r.resolve(functionID, dimension, instanceID)
	files, err := openFileSet(r.opts, next, instanceID)
	if err != nil {
		return nil, err
	}

	if next.rotated && next.firstInstance == r.firstInstance {
		// same instance id, so the new family keeps the old file names
		slog.Warn("Rotated index file family reuses the current file names",
			"function_id", functionID,
			"dimension", dimension,
			"instance_id", instanceID,
			"index_file", files.IndexPath,
		)
	}
	if next.rotated {
		familyRotations.Inc()
		slog.Debug("Rotated index file family",
			"function_id", functionID,
			"dimension", dimension,
			"first_instance", next.firstInstance,
			"index_file", files.IndexPath,
		)
	}
	r.commit(next)
	r.open = true
	return files, nil
}

// release drops the single-run guard.
func (r *Registry) release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open = false
}

// warnOptimumOnce returns true the first time it is called.
func (r *Registry) warnOptimumOnce() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.optimumWarned {
		return false
	}
	r.optimumWarned = true
	return true
}
