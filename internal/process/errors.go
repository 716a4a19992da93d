package process

import "fmt"

// SpawnError indicates the executable could not be started at all.
// A spawn failure is fatal to the current scenario but not to the sweep.
type SpawnError struct {
	Name string // executable name or path
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// IOError indicates a pipe failure against a live child, typically a
// premature exit (stream closed before the expected sentinel appeared).
// Reap failures are also reported as IOError, not as an abort.
type IOError struct {
	Op  string // "write", "read", "wait"
	Pid int
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s (pid %d): %v", e.Op, e.Pid, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
