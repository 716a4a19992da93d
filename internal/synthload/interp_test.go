package synthload

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// runScript feeds the lines to a fresh interpreter and returns its
// output lines.
func runScript(t *testing.T, script string) []string {
	t.Helper()
	var out bytes.Buffer
	it := NewInterpreter(strings.NewReader(script), &out, Options{})
	if err := it.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	text := strings.TrimRight(out.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestInterpreter_SetupSequence(t *testing.T) {
	lines := runScript(t, "set-memory-size 1024\nfill-random 1\nexit\n")
	if len(lines) != 2 || lines[0] != "Done" || lines[1] != "Done" {
		t.Errorf("output = %q, want two Done lines", lines)
	}
}

func TestInterpreter_HexArguments(t *testing.T) {
	lines := runScript(t, "set-memory-size 0x400\nfill 0xAB\ninfo\nq\n")

	if lines[0] != "Done" || lines[1] != "Done" {
		t.Fatalf("output = %q", lines)
	}
	// info prints three detail lines then its own Done.
	if lines[2] != "memory size: 0x400" {
		t.Errorf("info size line = %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "memory start: 0x") {
		t.Errorf("info start line = %q", lines[3])
	}
	if !strings.HasPrefix(lines[4], "memory end: 0x") {
		t.Errorf("info end line = %q", lines[4])
	}
	if lines[5] != "Done" {
		t.Errorf("info not acknowledged: %q", lines[5])
	}
}

func TestInterpreter_BadInputContinues(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"unknown command", "frobnicate\nset-memory-size 8\nexit\n"},
		{"missing argument", "set-memory-size\nset-memory-size 8\nexit\n"},
		{"non-numeric argument", "set-memory-size banana\nset-memory-size 8\nexit\n"},
		{"byte overflow", "fill 256\nset-memory-size 8\nexit\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := runScript(t, tt.script)
			if len(lines) != 2 {
				t.Fatalf("output = %q, want diagnostic then Done", lines)
			}
			if lines[0] == "Done" {
				t.Errorf("bad input acknowledged with Done: %q", lines)
			}
			if lines[1] != "Done" {
				t.Errorf("interpreter did not continue after bad input: %q", lines)
			}
		})
	}
}

func TestInterpreter_SetAddress(t *testing.T) {
	// set-address needs the real buffer address, so drive the
	// interpreter pieces directly.
	var out bytes.Buffer
	it := NewInterpreter(strings.NewReader(""), &out, Options{})
	it.buf.Resize(64)

	addr := fmt.Sprintf("%#x", uint64(it.buf.Start()+5))
	if err := it.dispatch("set-address", []string{addr, "0x7F"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if it.buf.mem[5] != 0x7F {
		t.Errorf("byte 5 = %#x, want 0x7f", it.buf.mem[5])
	}

	if err := it.dispatch("set-address", []string{"0x1", "0"}); err == nil {
		t.Error("out-of-range address should error")
	}
}

func TestInterpreter_EmptyAndBlankLines(t *testing.T) {
	lines := runScript(t, "\n   \nset-memory-size 8\nexit\n")
	if len(lines) != 1 || lines[0] != "Done" {
		t.Errorf("output = %q, want single Done", lines)
	}
}

func TestInterpreter_EOFTerminates(t *testing.T) {
	// No exit line: the interpreter stops cleanly at EOF.
	lines := runScript(t, "set-memory-size 8\n")
	if len(lines) != 1 || lines[0] != "Done" {
		t.Errorf("output = %q", lines)
	}
}

func TestInterpreter_Prompt(t *testing.T) {
	var out bytes.Buffer
	it := NewInterpreter(strings.NewReader("exit\n"), &out, Options{Prompt: true})
	if err := it.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), Prompt) {
		t.Errorf("output %q missing prompt", out.String())
	}
}
