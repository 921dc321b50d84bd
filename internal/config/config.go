// Package config loads benchlog experiment configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/benchlog/internal/problem"
)

// Config describes one benchmarking experiment.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Suite     SuiteConfig     `yaml:"suite"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
}

// OutputConfig controls where trajectory files go.
type OutputConfig struct {
	// Folder receives the .info files and data_f<id> directories
	Folder string `yaml:"folder"`
	Prefix string `yaml:"prefix"`

	// Algorithm is written as algId into index headers. Empty means the
	// folder name.
	Algorithm string `yaml:"algorithm"`

	// Unique creates folder-001, folder-002, ... instead of appending to an
	// existing folder.
	Unique bool `yaml:"unique"`
}

// SuiteConfig selects the problems to run.
type SuiteConfig struct {
	Functions  []int `yaml:"functions" validate:"required,min=1,dive,benchfunc"`
	Dimensions []int `yaml:"dimensions" validate:"required,min=1,dive,suitedim"`
	Instances  []int `yaml:"instances" validate:"required,min=1,dive,min=1"`
}

// OptimizerConfig selects and tunes the optimizer.
type OptimizerConfig struct {
	Name string `yaml:"name" validate:"oneof=mayfly random"`

	// BudgetMultiplier times the dimension is the evaluation budget per problem
	BudgetMultiplier int   `yaml:"budget_multiplier" validate:"min=1"`
	Population       int   `yaml:"population" validate:"min=20"`
	Seed             int64 `yaml:"seed"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("suitedim", func(fl validator.FieldLevel) bool {
		return slices.Contains(problem.SuiteDimensions, int(fl.Field().Int()))
	})
	_ = validate.RegisterValidation("benchfunc", func(fl validator.FieldLevel) bool {
		return slices.Contains(problem.FunctionIDs(), int(fl.Field().Int()))
	})
}

// Default returns a configuration that runs the full built-in suite with
// mayfly.
func Default() Config {
	suite := problem.DefaultSuite()
	return Config{
		Output: OutputConfig{
			Folder: "bbob-results",
			Prefix: "bbobexp",
		},
		Suite: SuiteConfig{
			Functions:  suite.Functions,
			Dimensions: suite.Dimensions,
			Instances:  suite.Instances,
		},
		Optimizer: OptimizerConfig{
			Name:             "mayfly",
			BudgetMultiplier: 1000,
			Population:       20,
			Seed:             42,
		},
	}
}

// Load reads path and decodes it over Default. Keys missing from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks struct tags and reports every failing field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.Join(errs...)
}

// ProblemSuite converts the suite section into the problem enumeration.
func (c Config) ProblemSuite() problem.Suite {
	return problem.Suite{
		Functions:  c.Suite.Functions,
		Dimensions: c.Suite.Dimensions,
		Instances:  c.Suite.Instances,
	}
}
