package bench

import (
	"context"
	"errors"
	"testing"

	"github.com/randomizedcoder/go-scanmem-bench/internal/process"
)

// loadStubScript speaks just enough of the workload generator protocol
// for handshake tests: Done after each synchronous command, exit on exit.
const loadStubScript = `while read cmd rest; do
  case "$cmd" in
    set-memory-size|fill|fill-random) echo Done ;;
    exit|q) exit 0 ;;
    *) echo "unknown command: $cmd" ;;
  esac
done`

func startStubLoad(t *testing.T, script string) *Load {
	t.Helper()
	dir := t.TempDir()
	stub := writeStub(t, dir, "synthload", script)

	load, err := StartLoad(context.Background(), &LoadConfig{
		BinaryPath: stub,
		Logger:     quietLogger(),
	})
	if err != nil {
		t.Fatalf("StartLoad: %v", err)
	}
	return load
}

func TestLoad_ConfigureAndTeardown(t *testing.T) {
	load := startStubLoad(t, loadStubScript)

	if load.Pid() <= 0 {
		t.Errorf("Pid = %d, want > 0", load.Pid())
	}

	if err := load.Configure(1024, 1); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := load.Teardown(); err != nil {
		t.Fatalf("Teardown: %v", err)
	}
}

func TestLoad_ConfigureSurvivesDiagnosticLines(t *testing.T) {
	// A generator that chats before acknowledging must still sync on
	// the exact Done sentinel.
	script := `while read cmd rest; do
  case "$cmd" in
    set-memory-size) echo "resizing to $rest"; echo "Donee"; echo Done ;;
    fill-random) echo "seeding $rest"; echo Done ;;
    exit) exit 0 ;;
  esac
done`
	load := startStubLoad(t, script)

	if err := load.Configure(4096, 7); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := load.Teardown(); err != nil {
		t.Fatalf("Teardown: %v", err)
	}
}

func TestLoad_ConfigurePrematureExit(t *testing.T) {
	// Generator dies before acknowledging: Configure must fail with an
	// IOError instead of hanging.
	load := startStubLoad(t, `read cmd rest; exit 1`)
	defer load.Teardown()

	err := load.Configure(1024, 1)
	if err == nil {
		t.Fatal("expected error when generator exits before Done")
	}
	var ioErr *process.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %T: %v", err, err)
	}
}

func TestLoad_StartMissingBinary(t *testing.T) {
	_, err := StartLoad(context.Background(), &LoadConfig{
		BinaryPath: "/nonexistent/synthload",
		Logger:     quietLogger(),
	})
	if err == nil {
		t.Fatal("expected spawn error")
	}
	var spawnErr *process.SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("expected *SpawnError, got %T: %v", err, err)
	}
}
