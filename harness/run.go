package harness

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/rxkit/config"
	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/observability"
	"github.com/kbukum/rxkit/stream"
)

// Result is the outcome of one recipe run.
type Result struct {
	RunID    string
	Recipe   string
	Got      []string
	Expected []string
	Passed   bool
	Duration time.Duration
}

// Mismatch returns a MISMATCH error for a failed run, nil otherwise.
func (r *Result) Mismatch() error {
	if r.Passed {
		return nil
	}
	return errors.Mismatch(r.Recipe, r.Got, r.Expected)
}

// Runner executes recipes with the service's stream instrumentation.
type Runner struct {
	log       *logger.Logger
	stream    stream.Config
	telemetry stream.Telemetry
}

// NewRunner validates cfg and prepares a runner. Without a logger in tel
// one is built from cfg.Logging; with stream metrics enabled and none in tel
// they are created on the global meter provider.
func NewRunner(cfg config.ServiceConfig, tel stream.Telemetry) (*Runner, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tel.Logger == nil {
		tel.Logger = logger.New(&cfg.Logging, cfg.Name)
	}
	if cfg.Stream.Metrics && tel.Metrics == nil {
		m, err := observability.NewStreamMetrics(observability.Meter(cfg.Name))
		if err != nil {
			return nil, errors.Internal(err)
		}
		tel.Metrics = m
	}
	return &Runner{
		log:       tel.Logger.WithComponent("harness"),
		stream:    cfg.Stream,
		telemetry: tel,
	}, nil
}

// Run feeds the recipe's inputs to build and compares the output with the
// recipe's expectation. A stream error or cancellation is returned as the
// error; a wrong sequence is reported through Result.Passed.
func (r *Runner) Run(ctx context.Context, recipe Recipe, build Build) (*Result, error) {
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := r.log.WithFields(logger.Fields(logger.FieldRecipe, recipe.Name, logger.FieldRunID, runID))

	inputs := make([]*stream.Producer[string], len(recipe.Inputs))
	for i, in := range recipe.Inputs {
		inputs[i] = stream.From(in)
	}
	out := stream.Instrument[string](r.stream, recipe.Name, r.telemetry)(build(inputs))

	display := NewDisplay(log)
	start := time.Now()
	sub := out.SubscribeContext(ctx, display)
	<-sub.Done()

	if err := display.Err(); err != nil {
		return nil, err
	}
	if !display.Completed() {
		return nil, errors.Cancelled(ctx.Err())
	}

	result := &Result{
		RunID:    runID,
		Recipe:   recipe.Name,
		Got:      display.Values(),
		Expected: recipe.Expected,
		Duration: time.Since(start),
	}
	result.Passed = slices.Equal(result.Got, result.Expected)

	fields := logger.Fields(logger.FieldCount, len(result.Got), logger.FieldDuration, result.Duration.Milliseconds())
	if result.Passed {
		log.Info("recipe passed", fields)
	} else {
		log.Warn("recipe mismatch", logger.MergeWithError(fields, result.Mismatch()))
	}
	return result, nil
}

// RunBook runs every recipe with its Catalog solution, stopping at the first
// recipe that cannot run. Mismatches do not stop the book.
func (r *Runner) RunBook(ctx context.Context, recipes []Recipe) ([]*Result, error) {
	results := make([]*Result, 0, len(recipes))
	for _, recipe := range recipes {
		solution, ok := Catalog[recipe.Solution]
		if !ok {
			return results, errors.InvalidInput("solution", "unknown solution "+recipe.Solution).
				WithDetail("recipe", recipe.Name)
		}
		result, err := r.Run(ctx, recipe, solution(recipe.Count))
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// Run runs one recipe with a default runner.
func Run(ctx context.Context, recipe Recipe, build Build) (*Result, error) {
	runner, err := NewRunner(config.ServiceConfig{Name: "harness"}, stream.Telemetry{})
	if err != nil {
		return nil, err
	}
	return runner.Run(ctx, recipe, build)
}
