package logger

import (
	"errors"
	"fmt"
)

var (
	// ErrRunOpen is returned when a run is started while another run of the
	// same registry has not been finalized. Two open runs would interleave
	// their records into the same files.
	ErrRunOpen = errors.New("another logger run is still open; finalize it first")

	// ErrFinalized is returned when a finalized run is evaluated again.
	ErrFinalized = errors.New("logger run already finalized")
)

// FileError reports a trajectory file that could not be opened or written.
// Any FileError leaves the benchmark result incomplete; callers should stop
// the experiment rather than continue with missing data.
type FileError struct {
	Op   string // "open", "write", "flush" or "close"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to %s file %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
