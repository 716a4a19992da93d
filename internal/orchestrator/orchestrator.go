package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/randomizedcoder/go-scanmem-bench/internal/bench"
	"github.com/randomizedcoder/go-scanmem-bench/internal/config"
	"github.com/randomizedcoder/go-scanmem-bench/internal/metrics"
	"github.com/randomizedcoder/go-scanmem-bench/internal/preflight"
	"github.com/randomizedcoder/go-scanmem-bench/internal/report"
)

// Orchestrator wires the sweep together: preflight, metrics, signal
// handling, and the scenario/sweep control loops.
type Orchestrator struct {
	config    *config.Config
	logger    *slog.Logger
	callbacks Callbacks

	target    *bench.Target
	collector *metrics.Collector
	server    *metrics.Server
}

// New creates an Orchestrator with the given configuration. The
// callbacks are forwarded scenario and sweep events (the TUI hangs off
// them); metrics are recorded regardless.
func New(cfg *config.Config, logger *slog.Logger, version string, callbacks Callbacks) *Orchestrator {
	target := bench.NewTarget(&bench.TargetConfig{
		BinaryPath:  cfg.ScanmemProgram,
		Commands:    cfg.ScanmemCommands,
		ThreadCount: cfg.ThreadCount,
		Echo:        cfg.Verbose && !cfg.TUIEnabled,
		EchoWriter:  os.Stdout,
		Logger:      logger,
	})

	collector := metrics.NewCollector(version, cfg.ScanmemProgram)

	o := &Orchestrator{
		config:    cfg,
		logger:    logger,
		callbacks: callbacks,
		target:    target,
		collector: collector,
	}
	if cfg.MetricsAddr != "" {
		o.server = metrics.NewServer(cfg.MetricsAddr, collector, logger)
	}
	return o
}

// Target returns the target driver (for --print-cmd).
func (o *Orchestrator) Target() *bench.Target {
	return o.target
}

// Run executes the whole sweep and returns its report. Individual
// scenario failures are logged and do not fail the run; a ConfigError
// or an operator interrupt does. On interrupt the partial report is
// returned together with the context error.
func (o *Orchestrator) Run(ctx context.Context) (*report.Report, error) {
	for _, w := range config.Warnings(o.config) {
		o.logger.Warn("config_warning", "warning", w)
	}

	loadProgram := o.config.ResolveLoadProgram()

	if !o.config.SkipPreflight {
		result := preflight.RunAll(o.config.ScanmemProgram, loadProgram)
		for _, c := range result.Checks {
			o.logger.Info("preflight", "check", c.Name, "passed", c.Passed, "detail", c.Message)
		}
		if !result.Passed {
			return nil, fmt.Errorf("preflight checks failed (use --skip-preflight to override)")
		}
	}

	if o.server != nil {
		if err := o.server.Start(); err != nil {
			return nil, fmt.Errorf("starting metrics server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := o.server.Shutdown(shutdownCtx); err != nil {
				o.logger.Warn("metrics_server_shutdown_error", "error", err)
			}
		}()
	}

	// An operator interrupt cancels the context; in-flight children are
	// killed through it, so an abort cannot leave orphaned processes.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scenario := NewScenarioRunner(
		o.target,
		&bench.LoadConfig{
			BinaryPath: loadProgram,
			Echo:       o.config.Verbose && !o.config.TUIEnabled,
			EchoWriter: os.Stdout,
			Logger:     o.logger,
		},
		o.config.Iterations,
		o.logger,
		o.instrumented(),
	)

	sweep := NewSweepController(SweepConfig{
		MinBytes:   o.config.MinBytes,
		MaxBytes:   o.config.MaxBytes,
		StepBytes:  o.config.StepBytes,
		StepFactor: o.config.StepFactor,
		Seed:       FixedSeed(o.config.Seed),
	}, scenario, o.logger)

	return sweep.Run(ctx, report.Config{
		Program:     o.config.ScanmemProgram,
		Commands:    o.config.ScanmemCommands,
		LoadProgram: loadProgram,
		MinBytes:    o.config.MinBytes,
		MaxBytes:    o.config.MaxBytes,
		StepBytes:   o.config.StepBytes,
		StepFactor:  o.config.StepFactor,
		Iterations:  o.config.Iterations,
		ThreadCount: o.config.ThreadCount,
		Seed:        o.config.Seed,
	})
}

// instrumented layers metrics recording over the caller's callbacks.
func (o *Orchestrator) instrumented() Callbacks {
	user := o.callbacks
	return Callbacks{
		OnScenarioStart: func(sizeBytes, seed uint64) {
			o.collector.ScenarioStarted(sizeBytes)
			if user.OnScenarioStart != nil {
				user.OnScenarioStart(sizeBytes, seed)
			}
		},
		OnIteration: func(index int, elapsed time.Duration) {
			o.collector.IterationObserved(elapsed)
			if user.OnIteration != nil {
				user.OnIteration(index, elapsed)
			}
		},
		OnScenarioEnd: func(result report.ScenarioResult) {
			o.collector.ScenarioCompleted(result.Failed)
			if user.OnScenarioEnd != nil {
				user.OnScenarioEnd(result)
			}
		},
		OnSweepProgress: func(completed, total int) {
			if total > 0 {
				o.collector.SetSweepProgress(float64(completed) / float64(total))
			}
			if user.OnSweepProgress != nil {
				user.OnSweepProgress(completed, total)
			}
		},
	}
}
