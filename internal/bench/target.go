// Package bench drives the two cooperating subprocesses of a benchmark
// run: the program under test (target) and the workload generator (load).
package bench

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/randomizedcoder/go-scanmem-bench/internal/process"
)

// NoThreadCount is the sentinel thread count meaning "not applicable":
// the thread flag is omitted from the target invocation entirely.
const NoThreadCount = -1

// TargetConfig holds configuration for target process invocations.
type TargetConfig struct {
	// BinaryPath is the path to the program under test.
	BinaryPath string

	// Commands is the fixed command sequence fed to the target's stdin,
	// one line each, with no acknowledgment expected between commands.
	Commands []string

	// ThreadCount is passed as -j=<n>. NoThreadCount omits the flag;
	// the omission is intentional, not a default of zero.
	ThreadCount int

	// Echo forwards the target's I/O to EchoWriter.
	Echo       bool
	EchoWriter io.Writer

	Logger *slog.Logger
}

// Target runs one short-lived invocation of the program under test per
// call and measures its elapsed wall time from spawn to natural exit.
type Target struct {
	config *TargetConfig
}

// NewTarget creates a target driver with the given configuration.
func NewTarget(cfg *TargetConfig) *Target {
	return &Target{config: cfg}
}

// buildArgs constructs the target command line for one invocation
// against the workload process loadPID.
func (t *Target) buildArgs(loadPID int) []string {
	args := []string{
		fmt.Sprintf("--pid=%d", loadPID),
	}
	if t.config.ThreadCount != NoThreadCount {
		args = append(args, fmt.Sprintf("-j=%d", t.config.ThreadCount))
	}
	return args
}

// CommandString returns the invocation that would be run (for --print-cmd).
func (t *Target) CommandString(loadPID int) string {
	return t.config.BinaryPath + " " + strings.Join(t.buildArgs(loadPID), " ")
}

// Run performs one timed invocation: spawns the target, writes every
// fixed command in order, then blocks until the process exits on its
// own. The elapsed duration covers spawn through exit, including the
// drain of any remaining output.
//
// Any spawn or write failure aborts the invocation immediately; nothing
// is retried. The channel is still closed so the child is reaped.
func (t *Target) Run(ctx context.Context, loadPID int) (time.Duration, error) {
	start := time.Now()

	ch, err := process.Spawn(ctx, t.config.BinaryPath, t.buildArgs(loadPID), process.SpawnOptions{
		Echo:       t.config.Echo,
		EchoWriter: t.config.EchoWriter,
		Logger:     t.config.Logger,
	})
	if err != nil {
		return 0, err
	}

	for _, cmd := range t.config.Commands {
		if err := ch.WriteLine(cmd); err != nil {
			ch.Close()
			return 0, err
		}
	}

	// Close drains remaining output and reaps; for a target that
	// terminates on its own this is the blocking wait for exit.
	if err := ch.Close(); err != nil {
		return 0, err
	}

	return time.Since(start), nil
}
