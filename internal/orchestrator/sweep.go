package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/randomizedcoder/go-scanmem-bench/internal/report"
)

// ConfigError reports sweep parameters that could never terminate.
// It is fatal to the whole run and detected before any scenario executes.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "sweep config: " + e.Message
}

// SeedFn supplies the workload seed for a sweep step. The seed policy
// belongs to the caller; the CLI passes a fixed-seed function.
type SeedFn func(step int) uint64

// FixedSeed returns a SeedFn that yields the same seed for every step.
func FixedSeed(seed uint64) SeedFn {
	return func(int) uint64 { return seed }
}

// SweepConfig describes the workload size progression.
type SweepConfig struct {
	MinBytes   uint64
	MaxBytes   uint64
	StepBytes  uint64
	StepFactor float64
	Seed       SeedFn
}

// Validate rejects configurations whose sweep would never terminate.
// Each step must strictly increase the size; the sole exception is
// min == max, which runs exactly one scenario.
func (c *SweepConfig) Validate() error {
	if c.MaxBytes < c.MinBytes {
		return &ConfigError{Message: fmt.Sprintf(
			"maxbytes %d below minbytes %d", c.MaxBytes, c.MinBytes)}
	}
	if c.MinBytes == c.MaxBytes {
		return nil
	}
	if c.StepBytes == 0 && c.StepFactor <= 1.0 {
		return &ConfigError{Message: fmt.Sprintf(
			"stepbytes %d and stepfactor %g cannot make progress; need stepbytes > 0 or stepfactor > 1.0",
			c.StepBytes, c.StepFactor)}
	}
	return nil
}

// Sizes returns the workload sizes the sweep will visit, in increasing
// order: starting at MinBytes and advancing by
// next = floor((size + StepBytes) * StepFactor) while the size stays
// within [MinBytes, MaxBytes] inclusive.
func (c *SweepConfig) Sizes() []uint64 {
	var sizes []uint64
	for size := c.MinBytes; size <= c.MaxBytes; {
		sizes = append(sizes, size)
		next := uint64(math.Floor(float64(size+c.StepBytes) * c.StepFactor))
		if next <= size {
			// min == max with a non-advancing step: one scenario.
			break
		}
		size = next
	}
	return sizes
}

// SweepController runs one scenario per sweep step and accumulates a
// report. It continues across scenario failures; only a ConfigError on
// entry or a cancelled context stops the sweep.
type SweepController struct {
	config   SweepConfig
	scenario *ScenarioRunner
	logger   *slog.Logger
}

// NewSweepController creates a sweep controller.
func NewSweepController(cfg SweepConfig, scenario *ScenarioRunner, logger *slog.Logger) *SweepController {
	return &SweepController{
		config:   cfg,
		scenario: scenario,
		logger:   logger,
	}
}

// Run validates the sweep, then benchmarks every size in order. The
// returned report contains one ScenarioResult per completed step. On
// cancellation the report covers the steps finished so far and the
// context error is returned alongside it.
func (s *SweepController) Run(ctx context.Context, echo report.Config) (*report.Report, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	builder := report.NewBuilder(echo)
	sizes := s.config.Sizes()

	s.logger.Info("sweep_started",
		"steps", len(sizes),
		"min_bytes", s.config.MinBytes,
		"max_bytes", s.config.MaxBytes,
	)

	for i, size := range sizes {
		if ctx.Err() != nil {
			s.logger.Warn("sweep_interrupted", "completed", i, "steps", len(sizes))
			return builder.Snapshot(), ctx.Err()
		}

		result := s.scenario.Run(ctx, size, s.config.Seed(i))
		builder.Append(result)

		if s.scenario.callbacks.OnSweepProgress != nil {
			s.scenario.callbacks.OnSweepProgress(i+1, len(sizes))
		}
	}

	rep := builder.Snapshot()
	s.logger.Info("sweep_complete",
		"scenarios", len(rep.Scenarios),
		"failed", rep.FailedCount(),
	)
	return rep, nil
}
