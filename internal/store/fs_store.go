package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const manifestName = "manifest.json"

// FSStore implements the Store interface on top of an output folder.
// The manifest lives at <baseDir>/manifest.json.
type FSStore struct {
	baseDir string // Output folder shared with the trajectory files
}

// NewFSStore creates a new filesystem-based store.
// The baseDir will be created if it doesn't exist.
func NewFSStore(baseDir string) (*FSStore, error) {
	if err := EnsureDir(baseDir); err != nil {
		return nil, err
	}

	return &FSStore{
		baseDir: baseDir,
	}, nil
}

// BaseDir returns the output folder.
func (fs *FSStore) BaseDir() string {
	return fs.baseDir
}

func (fs *FSStore) manifestPath() string {
	return filepath.Join(fs.baseDir, manifestName)
}

// SaveManifest atomically saves the manifest.
// Uses temp file + rename pattern to ensure atomicity.
func (fs *FSStore) SaveManifest(manifest *Manifest) error {
	if manifest == nil {
		return fmt.Errorf("manifest cannot be nil")
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}

	tempPath := fs.manifestPath() + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp manifest file: %w", err)
	}

	finalPath := fs.manifestPath()
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename manifest file: %w", err)
	}

	slog.Debug("Manifest saved", "path", finalPath, "runs", len(manifest.Runs))
	return nil
}

// LoadManifest reads the manifest of the output folder.
func (fs *FSStore) LoadManifest() (*Manifest, error) {
	path := fs.manifestPath()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{Path: path}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to deserialize manifest: %w", err)
	}

	slog.Debug("Manifest loaded", "path", path, "runs", len(manifest.Runs))
	return &manifest, nil
}
