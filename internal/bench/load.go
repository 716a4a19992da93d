package bench

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/randomizedcoder/go-scanmem-bench/internal/process"
)

// Workload generator line protocol. The command spellings and the
// sentinel must match the generator exactly: the sentinel read is
// line-exact, so any drift here desynchronizes the handshake.
const (
	cmdSetMemorySize = "set-memory-size"
	cmdFillRandom    = "fill-random"
	cmdExit          = "exit"

	// SentinelDone is the completion line the generator prints after
	// each synchronous command.
	SentinelDone = "Done"
)

// LoadConfig holds configuration for the workload generator process.
type LoadConfig struct {
	// BinaryPath is the path to the workload generator.
	BinaryPath string

	Echo       bool
	EchoWriter io.Writer

	Logger *slog.Logger
}

// Load drives the long-lived workload generator through its setup and
// termination handshakes. Its pid is the stable handle every target
// invocation in the same scenario scans against; the workload's memory
// is intentionally not reset between iterations.
type Load struct {
	ch     *process.Channel
	logger *slog.Logger
}

// StartLoad spawns the workload generator.
func StartLoad(ctx context.Context, cfg *LoadConfig) (*Load, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ch, err := process.Spawn(ctx, cfg.BinaryPath, nil, process.SpawnOptions{
		Echo:       cfg.Echo,
		EchoWriter: cfg.EchoWriter,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("load_started", "pid", ch.Pid())
	return &Load{ch: ch, logger: logger}, nil
}

// Pid returns the workload process id.
func (l *Load) Pid() int {
	return l.ch.Pid()
}

// Configure sizes and fills the workload buffer. Both steps are
// synchronous request/acknowledge exchanges: no measurement may start
// until both Done sentinels have been observed, which guarantees the
// buffer is fully sized and filled first.
func (l *Load) Configure(sizeBytes uint64, seed uint64) error {
	if err := l.ch.WriteLine(fmt.Sprintf("%s %d", cmdSetMemorySize, sizeBytes)); err != nil {
		return err
	}
	if err := l.ch.ReadUntilLine(SentinelDone); err != nil {
		return err
	}

	if err := l.ch.WriteLine(fmt.Sprintf("%s %d", cmdFillRandom, seed)); err != nil {
		return err
	}
	return l.ch.ReadUntilLine(SentinelDone)
}

// Teardown asks the generator to exit and reaps it. Best-effort: after
// a failed exit write the channel is still closed, and the stdin close
// signals end-of-input to the generator's command loop.
func (l *Load) Teardown() error {
	if err := l.ch.WriteLine(cmdExit); err != nil {
		l.logger.Warn("load_exit_write_failed", "pid", l.Pid(), "error", err)
	}
	return l.ch.Close()
}
