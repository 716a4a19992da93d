package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// ParseFlags parses command-line flags into a Config. args is the
// command line without the program name (os.Args[1:]).
func ParseFlags(args []string) (*Config, error) {
	cfg := DefaultConfig()
	var rawCommands string

	fs := pflag.NewFlagSet("go-scanmem-bench", pflag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	// Target
	fs.StringVar(&cfg.ScanmemProgram, "scanmem-program", "", "Path to the program under test (required)")
	fs.StringVar(&rawCommands, "scanmem-commands", "", `;-separated command lines fed to the target (required, should end in "exit")`)
	fs.IntVarP(&cfg.ThreadCount, "nthreads", "t", cfg.ThreadCount, "Target thread count passed as -j=<n> (-1 omits the flag)")

	// Workload generator
	fs.StringVar(&cfg.LoadProgram, "load-program", cfg.LoadProgram, "Path to the workload generator (default: synthload next to this binary)")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for the workload fill, fixed across the sweep")

	// Sweep
	fs.Uint64Var(&cfg.MinBytes, "minbytes", cfg.MinBytes, "Smallest workload size in bytes")
	fs.Uint64Var(&cfg.MaxBytes, "maxbytes", cfg.MaxBytes, "Largest workload size in bytes (inclusive)")
	fs.Uint64Var(&cfg.StepBytes, "stepbytes", cfg.StepBytes, "Additive size step per sweep scenario")
	fs.Float64Var(&cfg.StepFactor, "stepfactor", cfg.StepFactor, "Multiplicative size factor per sweep scenario")
	fs.IntVarP(&cfg.Iterations, "iterations", "n", cfg.Iterations, "Timed target invocations per scenario")
	fs.DurationVarP(&cfg.Timeout, "timeout", "T", cfg.Timeout, "Per-scenario timeout (0 = disabled; currently inert)")

	// Observability
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Echo child process I/O and enable debug logging")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, `Log format: "json" or "text"`)
	fs.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Prometheus metrics address (empty = disabled)")
	fs.BoolVar(&cfg.TUIEnabled, "tui", cfg.TUIEnabled, "Live terminal dashboard for the sweep")
	fs.StringVar(&cfg.Format, "format", cfg.Format, `Report format: "table" or "json"`)

	// Diagnostics
	fs.BoolVar(&cfg.PrintCmd, "print-cmd", cfg.PrintCmd, "Print the target invocation and exit")
	fs.BoolVar(&cfg.SkipPreflight, "skip-preflight", cfg.SkipPreflight, "Skip preflight checks")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.ScanmemCommands = ParseCommands(rawCommands)

	return cfg, nil
}

// printUsage prints categorized usage text.
func printUsage(fs *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `go-scanmem-bench - memory scanner benchmarking against a synthetic workload

Usage:
  go-scanmem-bench --scanmem-program <path> --scanmem-commands "<cmds>" [flags]

Target:
`)
	printFlagCategory(fs, "scanmem-program", "scanmem-commands", "nthreads")

	fmt.Fprintf(os.Stderr, "\nWorkload:\n")
	printFlagCategory(fs, "load-program", "seed")

	fmt.Fprintf(os.Stderr, "\nSweep:\n")
	printFlagCategory(fs, "minbytes", "maxbytes", "stepbytes", "stepfactor", "iterations", "timeout")

	fmt.Fprintf(os.Stderr, "\nObservability:\n")
	printFlagCategory(fs, "verbose", "log-format", "metrics", "tui", "format")

	fmt.Fprintf(os.Stderr, "\nDiagnostics:\n")
	printFlagCategory(fs, "print-cmd", "skip-preflight")

	fmt.Fprintf(os.Stderr, `
Examples:
  # One fixed 256 MiB workload, 20 timed scans
  go-scanmem-bench --scanmem-program ./scanmem --scanmem-commands "= 1; = 1; exit"

  # Sweep 16 MiB to 1 GiB, doubling each step
  go-scanmem-bench --scanmem-program ./scanmem --scanmem-commands "= 1; exit" \
    --minbytes 16777216 --maxbytes 1073741824 --stepfactor 2.0 -n 10

`)
}

// printFlagCategory prints the named flags in order.
func printFlagCategory(fs *pflag.FlagSet, names ...string) {
	for _, name := range names {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if f.Shorthand != "" {
			fmt.Fprintf(os.Stderr, "  -%s, --%s\n    \t%s", f.Shorthand, f.Name, f.Usage)
		} else {
			fmt.Fprintf(os.Stderr, "  --%s\n    \t%s", f.Name, f.Usage)
		}
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "0s" {
			fmt.Fprintf(os.Stderr, " (default %s)", f.DefValue)
		}
		fmt.Fprintln(os.Stderr)
	}
}
