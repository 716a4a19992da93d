// Package report accumulates sweep configuration and per-scenario
// results and renders them for downstream tooling.
package report

import (
	"time"

	"github.com/randomizedcoder/go-scanmem-bench/internal/stats"
)

// Timing holds the measured durations for one scenario. Iterations are
// in iteration order; the order is meaningful and preserved end to end.
type Timing struct {
	Setup      time.Duration   `json:"setup"`
	Iterations []time.Duration `json:"iterations"`
	Total      time.Duration   `json:"total"`
}

// ScenarioResult is the outcome of benchmarking one (size, seed) pair.
// Aggregates is nil exactly when Failed is set: a failed scenario keeps
// whatever durations were collected but is never aggregated.
type ScenarioResult struct {
	SizeBytes  uint64            `json:"size_bytes"`
	Seed       uint64            `json:"seed"`
	Timing     Timing            `json:"timing"`
	Aggregates *stats.Aggregates `json:"aggregates,omitempty"`
	Failed     bool              `json:"failed"`
	Error      string            `json:"error,omitempty"`
}

// Config echoes the sweep configuration into the report.
type Config struct {
	Program     string   `json:"program"`
	Commands    []string `json:"commands"`
	LoadProgram string   `json:"load_program"`
	MinBytes    uint64   `json:"min_bytes"`
	MaxBytes    uint64   `json:"max_bytes"`
	StepBytes   uint64   `json:"step_bytes"`
	StepFactor  float64  `json:"step_factor"`
	Iterations  int      `json:"iterations"`
	ThreadCount int      `json:"thread_count"`
	Seed        uint64   `json:"seed"`
}

// Report is an immutable snapshot of one sweep: the echoed configuration
// plus one ScenarioResult per sweep step, in increasing size order.
type Report struct {
	Config    Config           `json:"config"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

// FailedCount returns the number of failed scenarios.
func (r *Report) FailedCount() int {
	n := 0
	for _, s := range r.Scenarios {
		if s.Failed {
			n++
		}
	}
	return n
}

// Builder accumulates scenario results during a sweep. It is scoped to
// one sweep call; Snapshot returns the finished report and the builder
// is not used afterwards.
type Builder struct {
	config    Config
	scenarios []ScenarioResult
}

// NewBuilder creates a report builder echoing the given configuration.
func NewBuilder(cfg Config) *Builder {
	return &Builder{config: cfg}
}

// Append records one scenario result. Results must be appended in sweep
// order.
func (b *Builder) Append(result ScenarioResult) {
	b.scenarios = append(b.scenarios, result)
}

// Snapshot returns the accumulated report. The returned report owns its
// own slice; further Append calls do not affect it.
func (b *Builder) Snapshot() *Report {
	scenarios := make([]ScenarioResult, len(b.scenarios))
	copy(scenarios, b.scenarios)
	return &Report{
		Config:    b.config,
		Scenarios: scenarios,
	}
}
