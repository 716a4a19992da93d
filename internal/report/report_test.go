package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/randomizedcoder/go-scanmem-bench/internal/stats"
)

func sampleConfig() Config {
	return Config{
		Program:     "/usr/bin/scanmem",
		Commands:    []string{"= 1", "= 1", "exit"},
		LoadProgram: "/usr/local/bin/synthload",
		MinBytes:    1024,
		MaxBytes:    4096,
		StepBytes:   1024,
		StepFactor:  1.0,
		Iterations:  3,
		ThreadCount: -1,
		Seed:        1,
	}
}

func okResult(size uint64) ScenarioResult {
	iters := []time.Duration{
		100 * time.Millisecond,
		110 * time.Millisecond,
		105 * time.Millisecond,
	}
	agg, _ := stats.Aggregate(iters)
	return ScenarioResult{
		SizeBytes: size,
		Seed:      1,
		Timing: Timing{
			Setup:      20 * time.Millisecond,
			Iterations: iters,
			Total:      400 * time.Millisecond,
		},
		Aggregates: &agg,
	}
}

func failedResult(size uint64) ScenarioResult {
	return ScenarioResult{
		SizeBytes: size,
		Seed:      1,
		Timing:    Timing{Setup: 5 * time.Millisecond},
		Failed:    true,
		Error:     "spawn scanmem: no such file",
	}
}

func TestBuilder_SnapshotIsImmutable(t *testing.T) {
	b := NewBuilder(sampleConfig())
	b.Append(okResult(1024))

	snap := b.Snapshot()
	b.Append(okResult(2048))

	if len(snap.Scenarios) != 1 {
		t.Fatalf("snapshot has %d scenarios, want 1", len(snap.Scenarios))
	}
	if got := b.Snapshot(); len(got.Scenarios) != 2 {
		t.Fatalf("second snapshot has %d scenarios, want 2", len(got.Scenarios))
	}
}

func TestReport_FailedCount(t *testing.T) {
	b := NewBuilder(sampleConfig())
	b.Append(okResult(1024))
	b.Append(failedResult(2048))
	b.Append(okResult(4096))

	if got := b.Snapshot().FailedCount(); got != 1 {
		t.Errorf("FailedCount = %d, want 1", got)
	}
}

func TestRenderJSON_RoundTrip(t *testing.T) {
	b := NewBuilder(sampleConfig())
	b.Append(okResult(1024))
	b.Append(failedResult(2048))
	original := b.Snapshot()

	var buf bytes.Buffer
	if err := RenderJSON(&buf, original); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding rendered JSON: %v", err)
	}

	if decoded.Config.Program != original.Config.Program {
		t.Errorf("Program = %q, want %q", decoded.Config.Program, original.Config.Program)
	}
	if len(decoded.Scenarios) != 2 {
		t.Fatalf("decoded %d scenarios, want 2", len(decoded.Scenarios))
	}
	if decoded.Scenarios[0].Aggregates == nil {
		t.Error("ok scenario lost its aggregates")
	}
	if decoded.Scenarios[1].Aggregates != nil {
		t.Error("failed scenario gained aggregates")
	}
	if !decoded.Scenarios[1].Failed {
		t.Error("failed scenario lost its failed mark")
	}
}

func TestRenderTable(t *testing.T) {
	b := NewBuilder(sampleConfig())
	b.Append(okResult(1024))
	b.Append(failedResult(2048))

	var buf bytes.Buffer
	RenderTable(&buf, b.Snapshot())
	out := buf.String()

	for _, want := range []string{
		"/usr/bin/scanmem",
		"= 1; = 1; exit",
		"FAILED",
		"1 of 2 scenarios failed",
		"100 ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q\ngot:\n%s", want, out)
		}
	}
}
