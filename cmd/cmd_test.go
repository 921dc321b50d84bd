package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/benchlog/internal/store"
)

// execute runs a fresh command tree, as a new process would.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestRunThenListRuns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "random-search")

	out := execute(t, "run",
		"--output", dir,
		"--functions", "1,8",
		"--dimensions", "2",
		"--instances", "1,2",
		"--optimizer", "random",
		"--budget", "5",
	)
	assert.Contains(t, out, "Finished 4 runs")
	assert.FileExists(t, filepath.Join(dir, "bbobexp_f1_i1.info"))
	assert.FileExists(t, filepath.Join(dir, "bbobexp_f8_i1.info"))
	assert.FileExists(t, filepath.Join(dir, "data_f8", "bbobexp_f8_DIM2_i1.tdat"))

	info, err := os.ReadFile(filepath.Join(dir, "bbobexp_f1_i1.info"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "algId = '"+dir+"'")

	listing := execute(t, "runs", "--output", dir)
	assert.Contains(t, listing, "Total runs: 4")
	assert.Contains(t, listing, "FUNC")
	assert.Equal(t, 2, strings.Count(listing, "\nf8 "))
}

func TestRunFlagsDoNotLeakBetweenInvocations(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first")
	second := filepath.Join(dir, "second")

	execute(t, "run", "--output", first, "--functions", "3", "--dimensions", "2",
		"--instances", "1", "--optimizer", "random", "--budget", "5")

	// Without --functions the second run must fall back to the config file
	cfgPath := filepath.Join(dir, "benchlog.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
output:
  folder: `+second+`
suite:
  functions: [1]
  dimensions: [2]
  instances: [1]
optimizer:
  name: random
  budget_multiplier: 5
`), 0644))
	execute(t, "run", "--config", cfgPath)

	assert.FileExists(t, filepath.Join(second, "bbobexp_f1_i1.info"))
	assert.NoFileExists(t, filepath.Join(second, "bbobexp_f3_i1.info"))
}

func TestRunTwiceIntoSameFolderListsAllRuns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shared")
	args := []string{"run", "--output", dir, "--functions", "1", "--dimensions", "2",
		"--instances", "1,2", "--optimizer", "random", "--budget", "5"}

	execute(t, args...)
	out := execute(t, args...)
	assert.Contains(t, out, "(4 listed in manifest)")

	listing := execute(t, "runs", "--output", dir)
	assert.Contains(t, listing, "Total runs: 4")
}

func TestRunsWithoutManifest(t *testing.T) {
	out := execute(t, "runs", "--output", t.TempDir())
	assert.Contains(t, out, "No runs found.")
}

func TestPrintManifest(t *testing.T) {
	m := &store.Manifest{
		Experiments: []store.Experiment{
			{ID: "0123456789abcdef", Algorithm: "mayfly", Started: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		},
		Runs: []store.RunSummary{
			{ExperimentID: "0123456789abcdef", FunctionID: 3, Dimension: 5, InstanceID: 2, Evaluations: 5000, BestGap: 1.5e-3, IndexFile: "out/bbobexp_f3_i1.info"},
		},
	}

	var buf bytes.Buffer
	printManifest(&buf, m)

	out := buf.String()
	assert.Regexp(t, `01234567\s+mayfly\s+2024-03-01 12:00:00`, out)
	assert.Contains(t, out, "1.500e-03")
	assert.Contains(t, out, "out/bbobexp_f3_i1.info")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "Total runs: 1")
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "benchlog version "+version+"\n", execute(t, "version"))
}
