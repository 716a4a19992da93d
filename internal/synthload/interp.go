package synthload

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompt is printed before each read when the interpreter runs
// interactively.
const Prompt = "synthetic-load> "

// Interpreter reads commands line by line and applies them to a
// buffer. Every successful command is acknowledged with a Done line;
// bad input prints a diagnostic and the loop continues.
type Interpreter struct {
	buf    *Buffer
	in     *bufio.Scanner
	out    io.Writer
	prompt bool
}

// Options configures an Interpreter.
type Options struct {
	// Prompt prints the interactive prompt before each read.
	Prompt bool
}

// NewInterpreter creates an interpreter reading commands from in and
// writing acknowledgements and diagnostics to out.
func NewInterpreter(in io.Reader, out io.Writer, opts Options) *Interpreter {
	return &Interpreter{
		buf:    &Buffer{},
		in:     bufio.NewScanner(in),
		out:    out,
		prompt: opts.Prompt,
	}
}

// Run processes commands until exit, q, or EOF.
func (it *Interpreter) Run() error {
	for {
		if it.prompt {
			fmt.Fprint(it.out, Prompt)
		}
		if !it.in.Scan() {
			return it.in.Err()
		}

		line := strings.TrimSpace(it.in.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		if cmd == "exit" || cmd == "q" {
			return nil
		}

		if err := it.dispatch(cmd, args); err != nil {
			fmt.Fprintln(it.out, err)
			continue
		}
		fmt.Fprintln(it.out, "Done")
	}
}

func (it *Interpreter) dispatch(cmd string, args []string) error {
	switch cmd {
	case "set-memory-size":
		n, err := argUint(cmd, args, 0, 64)
		if err != nil {
			return err
		}
		it.buf.Resize(n)
		return nil

	case "fill":
		v, err := argUint(cmd, args, 0, 8)
		if err != nil {
			return err
		}
		it.buf.Fill(byte(v))
		return nil

	case "fill-random":
		seed, err := argUint(cmd, args, 0, 64)
		if err != nil {
			return err
		}
		it.buf.FillRandom(seed)
		return nil

	case "set-address":
		addr, err := argUint(cmd, args, 0, 64)
		if err != nil {
			return err
		}
		v, err := argUint(cmd, args, 1, 8)
		if err != nil {
			return err
		}
		return it.buf.SetAddress(uintptr(addr), byte(v))

	case "info":
		fmt.Fprintf(it.out, "memory size: %#x\n", it.buf.Len())
		fmt.Fprintf(it.out, "memory start: %#x\n", it.buf.Start())
		fmt.Fprintf(it.out, "memory end: %#x\n", it.buf.End())
		return nil

	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// argUint parses argument i as decimal or 0x-prefixed hex.
func argUint(cmd string, args []string, i, bits int) (uint64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%s: missing argument", cmd)
	}
	v, err := strconv.ParseUint(args[i], 0, bits)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid argument %q: %v", cmd, args[i], err)
	}
	return v, nil
}
