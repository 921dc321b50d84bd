package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/cwbudde/benchlog/internal/bench"
	"github.com/cwbudde/benchlog/internal/config"
	"github.com/cwbudde/benchlog/internal/logger"
	"github.com/cwbudde/benchlog/internal/opt"
	"github.com/cwbudde/benchlog/internal/store"
)

// runOptions holds the flags of the run command.
type runOptions struct {
	configPath  string
	outputDir   string
	algorithm   string
	functions   []int
	dimensions  []int
	instances   []int
	optimizer   string
	budget      int
	popSize     int
	seed        int64
	unique      bool
	metricsAddr string
}

func newRunCmd() *cobra.Command {
	o := &runOptions{}
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark suite",
		Long: `Runs the optimizer on every selected problem. Each problem is observed by
the trajectory logger and added to manifest.json in the output folder.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExperiment(cmd, o)
		},
	}

	f := runCmd.Flags()
	f.StringVar(&o.configPath, "config", "", "YAML experiment configuration")
	f.StringVar(&o.outputDir, "output", "", "Output folder (overrides config)")
	f.StringVar(&o.algorithm, "algorithm", "", "Algorithm id written to index files (default: output folder)")
	f.IntSliceVar(&o.functions, "functions", nil, "Function ids, e.g. 1,3,8")
	f.IntSliceVar(&o.dimensions, "dimensions", nil, "Dimensions, subset of 2,3,5,10,20,40")
	f.IntSliceVar(&o.instances, "instances", nil, "Instance ids")
	f.StringVar(&o.optimizer, "optimizer", "", "Optimizer: mayfly, random")
	f.IntVar(&o.budget, "budget", 0, "Evaluations per dimension")
	f.IntVar(&o.popSize, "pop", 0, "Mayfly population size")
	f.Int64Var(&o.seed, "seed", 0, "Random seed")
	f.BoolVar(&o.unique, "unique", false, "Never append to an existing output folder")
	f.StringVar(&o.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	return runCmd
}

// loadRunConfig reads the configuration file, if any, and applies the flags
// the user set explicitly.
func loadRunConfig(cmd *cobra.Command, o *runOptions) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Folder = o.outputDir
	}
	if flags.Changed("algorithm") {
		cfg.Output.Algorithm = o.algorithm
	}
	if flags.Changed("unique") {
		cfg.Output.Unique = o.unique
	}
	if flags.Changed("functions") {
		cfg.Suite.Functions = o.functions
	}
	if flags.Changed("dimensions") {
		cfg.Suite.Dimensions = o.dimensions
	}
	if flags.Changed("instances") {
		cfg.Suite.Instances = o.instances
	}
	if flags.Changed("optimizer") {
		cfg.Optimizer.Name = o.optimizer
	}
	if flags.Changed("budget") {
		cfg.Optimizer.BudgetMultiplier = o.budget
	}
	if flags.Changed("pop") {
		cfg.Optimizer.Population = o.popSize
	}
	if flags.Changed("seed") {
		cfg.Optimizer.Seed = o.seed
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runExperiment(cmd *cobra.Command, o *runOptions) error {
	cfg, err := loadRunConfig(cmd, o)
	if err != nil {
		return err
	}

	folder := cfg.Output.Folder
	if cfg.Output.Unique {
		if folder, err = store.UniqueDir(folder); err != nil {
			return err
		}
	}

	st, err := store.NewFSStore(folder)
	if err != nil {
		return fmt.Errorf("failed to create output store: %w", err)
	}

	optim, err := opt.New(cfg.Optimizer.Name, cfg.Optimizer.BudgetMultiplier, cfg.Optimizer.Population, cfg.Optimizer.Seed)
	if err != nil {
		return err
	}

	problems, err := cfg.ProblemSuite().Problems()
	if err != nil {
		return err
	}

	if o.metricsAddr != "" {
		go serveMetrics(o.metricsAddr)
	}

	registry := logger.NewRegistry(logger.Options{
		Folder:    folder,
		Prefix:    cfg.Output.Prefix,
		Algorithm: cfg.Output.Algorithm,
	})
	runner, err := bench.NewRunner(registry, optim, st)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Writing trajectories", "folder", folder, "algorithm", registry.Options().Algorithm)
	if err := runner.Run(ctx, problems); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("Stopped early", "experiment_id", runner.Experiment().ID)
			return nil
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Finished %d runs in %s (%d listed in manifest)\n",
		len(problems), folder, len(runner.Manifest().Runs))
	return nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	slog.Info("Serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics server failed", "error", err)
	}
}
