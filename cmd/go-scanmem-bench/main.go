// Package main provides the go-scanmem-bench CLI entry point.
//
// go-scanmem-bench benchmarks a memory-scanning program against a
// synthetic workload process: it sweeps workload sizes, times repeated
// scanner invocations against each, and reports aggregate statistics.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/randomizedcoder/go-scanmem-bench/internal/config"
	"github.com/randomizedcoder/go-scanmem-bench/internal/logging"
	"github.com/randomizedcoder/go-scanmem-bench/internal/orchestrator"
	"github.com/randomizedcoder/go-scanmem-bench/internal/report"
	"github.com/randomizedcoder/go-scanmem-bench/internal/stats"
	"github.com/randomizedcoder/go-scanmem-bench/internal/tui"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/go-scanmem-bench
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Handle version flag early (before flag parsing)
	if len(os.Args) > 1 {
		arg := os.Args[1]
		if arg == "-version" || arg == "--version" || arg == "version" {
			fmt.Printf("go-scanmem-bench %s\n", version)
			return 0
		}
	}

	// Parse command-line flags
	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return 1
	}

	// Initialize logger
	// When TUI is enabled, suppress logs to avoid interfering with TUI rendering
	var logger *slog.Logger
	if cfg.TUIEnabled {
		logger = logging.NewLoggerWithWriter(io.Discard, "json", "info")
	} else {
		logger = logging.NewLogger(cfg.LogFormat, cfg.Verbose)
	}
	logging.SetDefault(logger)

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	// Handle --print-cmd mode
	if cfg.PrintCmd {
		orch := orchestrator.New(cfg, logger, version, orchestrator.Callbacks{})
		fmt.Println("# Target command that would be run for each iteration")
		fmt.Println("# (<pid> is the live workload generator's process id):")
		fmt.Println()
		fmt.Println(orch.Target().CommandString(0))
		return 0
	}

	// Log startup
	logger.Info("starting",
		"version", version,
		"program", cfg.ScanmemProgram,
		"min_bytes", cfg.MinBytes,
		"max_bytes", cfg.MaxBytes,
		"iterations", cfg.Iterations,
		"metrics_addr", cfg.MetricsAddr,
	)

	var rep *report.Report
	var runErr error
	if cfg.TUIEnabled {
		rep, runErr = runWithTUI(cfg, logger)
	} else {
		printBanner(cfg)
		orch := orchestrator.New(cfg, logger, version, orchestrator.Callbacks{})
		rep, runErr = orch.Run(context.Background())
	}

	// A partial report from an interrupted sweep is still rendered.
	if rep != nil {
		renderReport(cfg, rep)
	}

	if runErr != nil {
		logger.Error("benchmark_failed", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return 1
	}
	return 0
}

// runWithTUI runs the sweep behind a live dashboard. The sweep runs in
// a goroutine; the dashboard owns the terminal until the sweep finishes
// or the operator quits.
func runWithTUI(cfg *config.Config, logger *slog.Logger) (*report.Report, error) {
	p := tea.NewProgram(tui.New(tui.Config{
		Program:    cfg.ScanmemProgram,
		Iterations: cfg.Iterations,
	}), tea.WithAltScreen())

	orch := orchestrator.New(cfg, logger, version, tui.Callbacks(p))

	// Quitting the dashboard cancels the sweep.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type outcome struct {
		rep *report.Report
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		rep, err := orch.Run(ctx)
		done <- outcome{rep, err}
		tui.SendDone(p)
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		o := <-done
		return o.rep, fmt.Errorf("tui: %w", err)
	}
	cancel()
	o := <-done
	return o.rep, o.err
}

// renderReport writes the final report to stdout.
func renderReport(cfg *config.Config, rep *report.Report) {
	switch cfg.Format {
	case "json":
		if err := report.RenderJSON(os.Stdout, rep); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		}
	default:
		report.RenderTable(os.Stdout, rep)
	}
}

// printBanner prints the startup banner.
func printBanner(cfg *config.Config) {
	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                        go-scanmem-bench                           ║")
	fmt.Println("║        Memory Scanner Benchmarking with Synthetic Workloads       ║")
	fmt.Println("╚═══════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("  Program:     %s\n", cfg.ScanmemProgram)
	fmt.Printf("  Sizes:       %s to %s\n",
		stats.FormatBytes(cfg.MinBytes), stats.FormatBytes(cfg.MaxBytes))
	fmt.Printf("  Iterations:  %d per scenario\n", cfg.Iterations)
	fmt.Printf("  Seed:        %d\n", cfg.Seed)
	if cfg.ThreadCount != -1 {
		fmt.Printf("  Threads:     %d\n", cfg.ThreadCount)
	}
	if cfg.MetricsAddr != "" {
		fmt.Printf("  Metrics:     http://%s/metrics\n", cfg.MetricsAddr)
	}
	fmt.Println()
	fmt.Println("Press Ctrl+C to stop.")
	fmt.Println()
}
