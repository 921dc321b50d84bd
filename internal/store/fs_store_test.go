package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary directory and returns an FSStore for testing.
func setupTestStore(t *testing.T) (*FSStore, string) {
	t.Helper()

	tempDir := t.TempDir()
	store, err := NewFSStore(tempDir)
	require.NoError(t, err, "failed to create test store")

	return store, tempDir
}

func createTestManifest() *Manifest {
	m := NewManifest()
	exp := m.StartExperiment("mayfly")
	m.Append(RunSummary{
		ExperimentID: exp.ID,
		FunctionID:   1,
		Dimension:    2,
		InstanceID:   3,
		Evaluations:  200,
		BestGap:      1.5e-3,
		IndexFile:    "bbobexp_f1_i3.info",
		DataFile:     "data_f1/bbobexp_f1_DIM2_i3.dat",
		Finished:     time.Date(2025, 10, 23, 10, 30, 0, 0, time.UTC),
	})
	return m
}

func TestNewFSStore_CreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewFSStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.BaseDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSaveManifest_RoundTrip(t *testing.T) {
	store, tempDir := setupTestStore(t)
	original := createTestManifest()

	require.NoError(t, store.SaveManifest(original))

	_, err := os.Stat(filepath.Join(tempDir, manifestName+".tmp"))
	assert.True(t, os.IsNotExist(err), "temp file should not exist after save")

	loaded, err := store.LoadManifest()
	require.NoError(t, err)
	require.Len(t, loaded.Experiments, 1)
	assert.Equal(t, original.Experiments[0].ID, loaded.Experiments[0].ID)
	assert.Equal(t, "mayfly", loaded.Experiments[0].Algorithm)
	require.Len(t, loaded.Runs, 1)
	assert.Equal(t, original.Runs[0], loaded.Runs[0])
}

func TestSaveManifest_Overwrite(t *testing.T) {
	store, _ := setupTestStore(t)
	m := createTestManifest()
	require.NoError(t, store.SaveManifest(m))

	m.Append(RunSummary{FunctionID: 1, Dimension: 2, InstanceID: 4, Evaluations: 10})
	require.NoError(t, store.SaveManifest(m))

	loaded, err := store.LoadManifest()
	require.NoError(t, err)
	assert.Len(t, loaded.Runs, 2)
}

func TestSaveManifest_Nil(t *testing.T) {
	store, _ := setupTestStore(t)
	assert.Error(t, store.SaveManifest(nil))
}

func TestLoadManifest_NotFound(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.LoadManifest()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Contains(t, notFound.Path, manifestName)
}

func TestLoadManifest_Corrupted(t *testing.T) {
	store, tempDir := setupTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, manifestName), []byte("{not json"), 0644))

	_, err := store.LoadManifest()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestManifest_StartExperiment(t *testing.T) {
	m := NewManifest()
	assert.Empty(t, m.Experiments)
	assert.Empty(t, m.Runs)

	a := m.StartExperiment("mayfly")
	b := m.StartExperiment("random")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, []Experiment{a, b}, m.Experiments)
}

func TestUniqueDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "results", "mayfly")

	first, err := UniqueDir(base)
	require.NoError(t, err)
	assert.Equal(t, base, first)

	second, err := UniqueDir(base)
	require.NoError(t, err)
	assert.Equal(t, base+"-001", second)

	third, err := UniqueDir(base)
	require.NoError(t, err)
	assert.Equal(t, base+"-002", third)

	for _, dir := range []string{first, second, third} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
