// Package orchestrator coordinates the benchmark sweep: it runs
// scenarios strictly sequentially, one timed target invocation at a
// time, so measurements never contend with each other.
package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/randomizedcoder/go-scanmem-bench/internal/bench"
	"github.com/randomizedcoder/go-scanmem-bench/internal/report"
	"github.com/randomizedcoder/go-scanmem-bench/internal/stats"
)

// ScenarioState tracks where a scenario run is in its lifecycle.
type ScenarioState int

const (
	StateIdle ScenarioState = iota
	StateLoadStarting
	StateLoadConfigured
	StateIterating
	StateTearingDown
	StateCompleted
	StateFailed
)

// String returns the state name.
func (s ScenarioState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoadStarting:
		return "load_starting"
	case StateLoadConfigured:
		return "load_configured"
	case StateIterating:
		return "iterating"
	case StateTearingDown:
		return "tearing_down"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Callbacks contains optional hooks for scenario and sweep events.
// Nil members are skipped.
type Callbacks struct {
	// OnScenarioStart is called when a scenario begins.
	OnScenarioStart func(sizeBytes, seed uint64)

	// OnIteration is called after each timed target invocation.
	OnIteration func(index int, elapsed time.Duration)

	// OnScenarioEnd is called with the finished result.
	OnScenarioEnd func(result report.ScenarioResult)

	// OnSweepProgress is called after each sweep step.
	OnSweepProgress func(completed, total int)
}

// ScenarioRunner benchmarks one (size, seed) pair: it starts and
// configures the workload generator once, runs N timed target
// invocations against the live workload process, then tears it down.
type ScenarioRunner struct {
	target     *bench.Target
	loadConfig *bench.LoadConfig
	iterations int
	logger     *slog.Logger
	callbacks  Callbacks

	state ScenarioState
}

// NewScenarioRunner creates a scenario runner.
func NewScenarioRunner(target *bench.Target, loadConfig *bench.LoadConfig, iterations int, logger *slog.Logger, callbacks Callbacks) *ScenarioRunner {
	return &ScenarioRunner{
		target:     target,
		loadConfig: loadConfig,
		iterations: iterations,
		logger:     logger,
		callbacks:  callbacks,
		state:      StateIdle,
	}
}

// State returns the runner's current state.
func (r *ScenarioRunner) State() ScenarioState {
	return r.state
}

// Run executes one scenario. A failure inside setup or any iteration
// marks the scenario failed: remaining iterations are skipped, the
// durations collected so far are kept, and the workload generator is
// still torn down (best-effort) before returning. Failed scenarios
// carry no aggregates.
func (r *ScenarioRunner) Run(ctx context.Context, sizeBytes, seed uint64) report.ScenarioResult {
	result := report.ScenarioResult{
		SizeBytes: sizeBytes,
		Seed:      seed,
	}

	if r.callbacks.OnScenarioStart != nil {
		r.callbacks.OnScenarioStart(sizeBytes, seed)
	}
	r.logger.Info("scenario_started",
		"size_bytes", sizeBytes,
		"seed", seed,
		"iterations", r.iterations,
	)

	totalStart := time.Now()

	r.state = StateLoadStarting
	load, err := bench.StartLoad(ctx, r.loadConfig)
	if err != nil {
		r.fail(&result, err)
		result.Timing.Total = time.Since(totalStart)
		return r.finish(result)
	}

	if err := load.Configure(sizeBytes, seed); err != nil {
		r.fail(&result, err)
		r.teardown(load)
		result.Timing.Total = time.Since(totalStart)
		return r.finish(result)
	}
	r.state = StateLoadConfigured
	result.Timing.Setup = time.Since(totalStart)

	r.logger.Debug("load_configured",
		"pid", load.Pid(),
		"setup", result.Timing.Setup.String(),
	)

	// The workload's memory is not reset between iterations: every
	// invocation scans the same fixed state.
	r.state = StateIterating
	for i := 0; i < r.iterations; i++ {
		if ctx.Err() != nil {
			r.fail(&result, ctx.Err())
			break
		}

		elapsed, err := r.target.Run(ctx, load.Pid())
		if err != nil {
			r.fail(&result, err)
			break
		}

		result.Timing.Iterations = append(result.Timing.Iterations, elapsed)
		if r.callbacks.OnIteration != nil {
			r.callbacks.OnIteration(i, elapsed)
		}
		r.logger.Debug("iteration_completed", "iteration", i, "elapsed", elapsed.String())
	}

	if r.state == StateIterating {
		r.state = StateTearingDown
	}
	r.teardown(load)
	result.Timing.Total = time.Since(totalStart)

	if !result.Failed {
		// The aggregator is only reached with a non-empty sample set:
		// iterations >= 1 and every iteration succeeded.
		agg, err := stats.Aggregate(result.Timing.Iterations)
		if err != nil {
			r.fail(&result, err)
		} else {
			result.Aggregates = &agg
		}
	}

	return r.finish(result)
}

// fail marks the result failed, keeping any durations collected so far.
func (r *ScenarioRunner) fail(result *report.ScenarioResult, err error) {
	r.state = StateFailed
	result.Failed = true
	result.Error = err.Error()
	r.logger.Error("scenario_failed",
		"size_bytes", result.SizeBytes,
		"iterations_collected", len(result.Timing.Iterations),
		"error", err,
	)
}

// teardown stops the workload generator; a reap failure is logged, not
// escalated, so a completed scenario's measurements survive it.
func (r *ScenarioRunner) teardown(load *bench.Load) {
	if err := load.Teardown(); err != nil {
		r.logger.Warn("load_teardown_failed", "pid", load.Pid(), "error", err)
	}
}

func (r *ScenarioRunner) finish(result report.ScenarioResult) report.ScenarioResult {
	if r.state != StateFailed {
		r.state = StateCompleted
	}
	if r.callbacks.OnScenarioEnd != nil {
		r.callbacks.OnScenarioEnd(result)
	}
	r.logger.Info("scenario_finished",
		"size_bytes", result.SizeBytes,
		"failed", result.Failed,
		"total", result.Timing.Total.String(),
	)
	return result
}
