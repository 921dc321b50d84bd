package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/benchlog/internal/store"
)

func newRunsCmd() *cobra.Command {
	var runsDir string
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List the runs recorded in an output folder",
		Long: `Displays the experiment manifest: every experiment that wrote into the folder,
then one row per finalized run with its evaluations, best gap and index file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListRuns(cmd.OutOrStdout(), runsDir)
		},
	}
	runsCmd.Flags().StringVar(&runsDir, "output", "bbob-results", "Output folder of a previous run")
	return runsCmd
}

func runListRuns(out io.Writer, dir string) error {
	st, err := store.NewFSStore(dir)
	if err != nil {
		return fmt.Errorf("failed to open output folder: %w", err)
	}

	m, err := st.LoadManifest()
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintln(out, "No runs found.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	printManifest(out, m)
	return nil
}

// printManifest renders m as two tables: experiments, then runs.
func printManifest(out io.Writer, m *store.Manifest) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EXPERIMENT\tALGORITHM\tSTARTED")
	fmt.Fprintln(w, "----------\t---------\t-------")
	for _, e := range m.Experiments {
		fmt.Fprintf(w, "%s\t%s\t%s\n", shortID(e.ID), e.Algorithm, e.Started.Format("2006-01-02 15:04:05"))
	}
	w.Flush()
	fmt.Fprintln(out)

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FUNC\tDIM\tINST\tEVALS\tBEST GAP\tEXPERIMENT\tINDEX FILE")
	fmt.Fprintln(w, "----\t---\t----\t-----\t--------\t----------\t----------")
	for _, r := range m.Runs {
		fmt.Fprintf(w, "f%d\t%d\t%d\t%d\t%.3e\t%s\t%s\n",
			r.FunctionID,
			r.Dimension,
			r.InstanceID,
			r.Evaluations,
			r.BestGap,
			shortID(r.ExperimentID),
			r.IndexFile,
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nTotal runs: %d\n", len(m.Runs))
}

// shortID truncates experiment ids for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
