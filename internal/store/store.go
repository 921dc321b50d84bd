package store

// Store persists the experiment manifest that accompanies a folder of
// trajectory files.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return ErrNotFound if no manifest exists yet (for Load)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveManifest atomically replaces the manifest. The implementation
	// writes a temp file and renames it so a crash never leaves a
	// truncated manifest next to valid trajectory data.
	SaveManifest(manifest *Manifest) error

	// LoadManifest reads the manifest back.
	// Returns ErrNotFound if the folder has no manifest.
	LoadManifest() (*Manifest, error)
}

// ErrNotFound is returned when a requested file does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing manifest or data file.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	if e.Path != "" {
		return "not found: " + e.Path
	}
	return "not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
