// Package metrics provides Prometheus metrics for go-scanmem-bench.
//
// The harness is a batch tool, so the metrics endpoint is optional and
// off by default; when enabled it exposes sweep progress and iteration
// timings for dashboards watching long sweeps.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the benchmark metrics and their registry.
type Collector struct {
	registry *prometheus.Registry

	info             *prometheus.GaugeVec
	scenariosTotal   prometheus.Counter
	scenarioFailures prometheus.Counter
	iterationsTotal  prometheus.Counter
	iterationSeconds prometheus.Histogram
	currentSizeBytes prometheus.Gauge
	sweepProgress    prometheus.Gauge
}

// NewCollector creates a collector with all metrics registered on a
// fresh registry.
func NewCollector(version, program string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		info: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "scanbench_info",
				Help: "Information about the benchmark run (value always 1)",
			},
			[]string{"version", "program"},
		),
		scenariosTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "scanbench_scenarios_total",
				Help: "Scenarios started",
			},
		),
		scenarioFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "scanbench_scenario_failures_total",
				Help: "Scenarios that failed",
			},
		),
		iterationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "scanbench_iterations_total",
				Help: "Timed target invocations completed",
			},
		),
		iterationSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scanbench_iteration_duration_seconds",
				Help:    "Elapsed time of timed target invocations",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms .. ~32s
			},
		),
		currentSizeBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "scanbench_current_size_bytes",
				Help: "Workload size of the scenario currently running",
			},
		),
		sweepProgress: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "scanbench_sweep_progress",
				Help: "Completed fraction of the sweep (0.0 to 1.0)",
			},
		),
	}

	c.registry.MustRegister(
		c.info,
		c.scenariosTotal,
		c.scenarioFailures,
		c.iterationsTotal,
		c.iterationSeconds,
		c.currentSizeBytes,
		c.sweepProgress,
	)

	c.info.WithLabelValues(version, program).Set(1)

	return c
}

// Registry returns the collector's registry for serving.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ScenarioStarted records the start of a scenario at the given size.
func (c *Collector) ScenarioStarted(sizeBytes uint64) {
	c.scenariosTotal.Inc()
	c.currentSizeBytes.Set(float64(sizeBytes))
}

// ScenarioCompleted records the end of a scenario.
func (c *Collector) ScenarioCompleted(failed bool) {
	if failed {
		c.scenarioFailures.Inc()
	}
}

// IterationObserved records one completed timed invocation.
func (c *Collector) IterationObserved(elapsed time.Duration) {
	c.iterationsTotal.Inc()
	c.iterationSeconds.Observe(elapsed.Seconds())
}

// SetSweepProgress updates the completed fraction of the sweep.
func (c *Collector) SetSweepProgress(fraction float64) {
	c.sweepProgress.Set(fraction)
}
