// Package process provides the subprocess channel used to drive child
// processes over a line-oriented protocol: line writes, blocking reads
// until a sentinel line, and a deterministic drain-and-reap shutdown.
package process

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// MaxLineLength is the maximum length of a single child output line
// before the scanner gives up. Protocol lines are short; this bound
// only protects against a misbehaving child.
const MaxLineLength = 64 * 1024

// SpawnOptions controls echo behavior for a spawned channel.
type SpawnOptions struct {
	// Echo forwards every line written to or read from the child to
	// EchoWriter, tagged with the child pid and direction.
	Echo bool

	// EchoWriter receives echoed lines. Defaults to os.Stdout.
	EchoWriter io.Writer

	// Logger receives stderr lines from the child. Defaults to slog.Default().
	Logger *slog.Logger
}

// Channel owns one child process and its three standard streams.
//
// Invariants: the process is reaped exactly once, by Close, after all
// stream operations complete; ReadUntilLine must not be called after
// Close. Channel is not safe for concurrent use — the protocol it
// carries is a strictly sequential handshake.
type Channel struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader

	echo  bool
	echoW io.Writer

	// stderr is drained continuously so the child never blocks on a
	// full pipe; lines surface as log events.
	stderrDone chan struct{}

	reapOnce sync.Once
	reapErr  error
}

// Spawn starts name with args and piped standard streams. The context is
// a backstop only: cancellation kills the child so an operator abort
// cannot leave orphans, but normal shutdown goes through Close.
func Spawn(ctx context.Context, name string, args []string, opts SpawnOptions) (*Channel, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &SpawnError{Name: name, Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &SpawnError{Name: name, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &SpawnError{Name: name, Err: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Name: name, Err: err}
	}

	echoW := opts.EchoWriter
	if echoW == nil {
		echoW = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ch := &Channel{
		cmd:        cmd,
		stdin:      stdin,
		stdout:     bufio.NewReaderSize(stdout, MaxLineLength),
		echo:       opts.Echo,
		echoW:      echoW,
		stderrDone: make(chan struct{}),
	}

	go ch.drainStderr(stderr, logger)

	return ch, nil
}

// Pid returns the child's process id.
func (c *Channel) Pid() int {
	return c.cmd.Process.Pid
}

// WriteLine appends a newline to text and writes it to the child's stdin.
// The write is synchronous: the pipe is unbuffered on our side, so the
// peer of this blocking handshake sees the line immediately.
func (c *Channel) WriteLine(text string) error {
	if c.echo {
		fmt.Fprintf(c.echoW, "[%d <-] %s\n", c.Pid(), text)
	}
	if _, err := io.WriteString(c.stdin, text+"\n"); err != nil {
		return &IOError{Op: "write", Pid: c.Pid(), Err: err}
	}
	return nil
}

// ReadUntilLine blocks, reading one line at a time from the child's
// stdout, until a line exactly equal to sentinel is observed. Echoed
// intermediate lines are forwarded as they are read. No timeout is
// applied at this layer. Returns an IOError if the stream closes before
// the sentinel appears.
func (c *Channel) ReadUntilLine(sentinel string) error {
	for {
		line, err := c.readLine()
		if err != nil {
			return &IOError{Op: "read", Pid: c.Pid(),
				Err: fmt.Errorf("stream closed before %q: %w", sentinel, err)}
		}
		if line == sentinel {
			return nil
		}
	}
}

// readLine reads one newline-terminated line, echoing it when enabled.
// The trailing newline (and a carriage return, if present) is stripped;
// no other whitespace is touched, so sentinel matching stays exact.
func (c *Channel) readLine() (string, error) {
	line, err := c.stdout.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			// Partial final line without a newline still counts.
			c.echoLine(line)
			return trimEOL(line), nil
		}
		return "", err
	}
	c.echoLine(line)
	return trimEOL(line), nil
}

func (c *Channel) echoLine(line string) {
	if c.echo {
		fmt.Fprintf(c.echoW, "[%d ->] %s\n", c.Pid(), trimEOL(line))
	}
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// Close shuts the channel down deterministically: closes the child's
// stdin, drains remaining stdout (forwarding when echo is enabled, so no
// diagnostic output is lost even on early abort), waits for the stderr
// drain to finish, then reaps the process exactly once. Safe to call on
// every exit path; repeated calls return the first reap result.
func (c *Channel) Close() error {
	c.reapOnce.Do(func() {
		// Closing stdin signals EOF to line-reading children.
		c.stdin.Close()

		// Drain stdout to end-of-stream. This also serves as the
		// blocking wait for children expected to exit on their own.
		for {
			if _, err := c.readLine(); err != nil {
				break
			}
		}

		<-c.stderrDone

		if err := c.cmd.Wait(); err != nil {
			c.reapErr = &IOError{Op: "wait", Pid: c.Pid(), Err: err}
		}
	})
	return c.reapErr
}

// drainStderr forwards child stderr lines as debug log events (and to
// the echo writer when enabled) until end-of-stream, so the child can
// never block on a full stderr pipe.
func (c *Channel) drainStderr(r io.Reader, logger *slog.Logger) {
	defer close(c.stderrDone)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, MaxLineLength), MaxLineLength)
	for scanner.Scan() {
		line := scanner.Text()
		if c.echo {
			fmt.Fprintf(c.echoW, "[%d !!] %s\n", c.Pid(), line)
		}
		logger.Debug("child_stderr", "pid", c.Pid(), "line", line)
	}
}
