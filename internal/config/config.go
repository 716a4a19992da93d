// Package config provides configuration management for go-scanmem-bench.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultLoadProgram is the workload generator binary looked up next to
// the harness executable when --load-program is not given.
const DefaultLoadProgram = "synthload"

// Config holds all configuration options for a benchmark run.
type Config struct {
	// Target (program under test)
	ScanmemProgram  string   `json:"scanmem_program"`
	ScanmemCommands []string `json:"scanmem_commands"`
	ThreadCount     int      `json:"nthreads"` // -1 = omit the -j flag

	// Workload generator
	LoadProgram string `json:"load_program"`
	Seed        uint64 `json:"seed"`

	// Sweep
	MinBytes   uint64  `json:"min_bytes"`
	MaxBytes   uint64  `json:"max_bytes"`
	StepBytes  uint64  `json:"step_bytes"`
	StepFactor float64 `json:"step_factor"`
	Iterations int     `json:"iterations"`

	// Timeout is accepted but currently inert; see the scenario runner.
	Timeout time.Duration `json:"timeout"`

	// Observability
	Verbose     bool   `json:"verbose"`
	LogFormat   string `json:"log_format"` // json, text
	MetricsAddr string `json:"metrics_addr"`
	TUIEnabled  bool   `json:"tui"`
	Format      string `json:"format"` // table, json

	// Diagnostic modes
	PrintCmd      bool `json:"print_cmd"`
	SkipPreflight bool `json:"skip_preflight"`
}

// DefaultConfig returns a Config with sensible defaults: a single fixed
// 256 MiB scenario, 20 iterations, thread flag omitted.
func DefaultConfig() *Config {
	return &Config{
		ThreadCount: -1,
		Seed:        1,

		MinBytes:   0x10000000, // 256 MiB
		MaxBytes:   0x10000000,
		StepBytes:  0,
		StepFactor: 1.0,
		Iterations: 20,

		Timeout: 0, // disabled

		LogFormat:   "json",
		MetricsAddr: "", // disabled
		TUIEnabled:  false,
		Format:      "table",
	}
}

// ParseCommands splits the ;-separated command list into individual
// protocol lines, trimming surrounding whitespace and dropping empties.
func ParseCommands(raw string) []string {
	var commands []string
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			commands = append(commands, part)
		}
	}
	return commands
}

// ResolveLoadProgram returns the workload generator path: the explicit
// setting if given, otherwise DefaultLoadProgram next to the harness
// executable (falling back to a bare name resolved via PATH).
func (c *Config) ResolveLoadProgram() string {
	if c.LoadProgram != "" {
		return c.LoadProgram
	}
	exe, err := os.Executable()
	if err != nil {
		return DefaultLoadProgram
	}
	return filepath.Join(filepath.Dir(exe), DefaultLoadProgram)
}
