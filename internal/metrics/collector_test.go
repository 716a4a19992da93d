package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Counters(t *testing.T) {
	c := NewCollector("test", "/usr/bin/scanmem")

	c.ScenarioStarted(1024)
	c.IterationObserved(100 * time.Millisecond)
	c.IterationObserved(120 * time.Millisecond)
	c.ScenarioCompleted(false)

	c.ScenarioStarted(2048)
	c.ScenarioCompleted(true)

	if got := testutil.ToFloat64(c.scenariosTotal); got != 2 {
		t.Errorf("scenarios_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.scenarioFailures); got != 1 {
		t.Errorf("scenario_failures_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.iterationsTotal); got != 2 {
		t.Errorf("iterations_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.currentSizeBytes); got != 2048 {
		t.Errorf("current_size_bytes = %v, want 2048", got)
	}
}

func TestCollector_SweepProgress(t *testing.T) {
	c := NewCollector("test", "scanmem")

	c.SetSweepProgress(0.5)
	if got := testutil.ToFloat64(c.sweepProgress); got != 0.5 {
		t.Errorf("sweep_progress = %v, want 0.5", got)
	}
}

func TestCollector_IndependentRegistries(t *testing.T) {
	// Two collectors must not clash: each owns its own registry.
	a := NewCollector("test", "a")
	b := NewCollector("test", "b")

	a.ScenarioStarted(1)
	if got := testutil.ToFloat64(b.scenariosTotal); got != 0 {
		t.Errorf("second collector scenarios_total = %v, want 0", got)
	}
}
