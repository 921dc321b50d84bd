package store

import (
	"errors"
	"fmt"
	"os"
)

// maxUniqueSuffix bounds the search for a free folder name.
const maxUniqueSuffix = 999

// EnsureDir creates path and any missing parents.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// UniqueDir creates and returns base if it does not exist yet, otherwise the
// first free name among base-001, base-002, ... Earlier experiments are never
// appended to.
func UniqueDir(base string) (string, error) {
	candidate := base
	for i := 1; i <= maxUniqueSuffix; i++ {
		err := os.Mkdir(candidate, 0755)
		if err == nil {
			return candidate, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			// parent missing: create it and retry the same name
			if err := EnsureDir(candidate); err != nil {
				return "", err
			}
			return candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("failed to create directory %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s-%03d", base, i)
	}
	return "", fmt.Errorf("no free directory name for %s after %d attempts", base, maxUniqueSuffix)
}
