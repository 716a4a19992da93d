package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheck_String(t *testing.T) {
	t.Run("passed_with_required", func(t *testing.T) {
		c := Check{
			Name:     "test_check",
			Required: 100,
			Actual:   200,
			Passed:   true,
		}
		s := c.String()
		if !strings.Contains(s, "✓") {
			t.Error("Passed check should have ✓")
		}
		if !strings.Contains(s, "200") {
			t.Error("Should contain actual value")
		}
		if !strings.Contains(s, "100") {
			t.Error("Should contain required value")
		}
	})

	t.Run("failed_check", func(t *testing.T) {
		c := Check{
			Name:     "test_check",
			Required: 100,
			Actual:   50,
			Passed:   false,
		}
		s := c.String()
		if !strings.Contains(s, "✗") {
			t.Error("Failed check should have ✗")
		}
	})

	t.Run("warning_check", func(t *testing.T) {
		c := Check{
			Name:    "test_check",
			Passed:  true,
			Warning: true,
			Message: "warning message",
		}
		s := c.String()
		if !strings.Contains(s, "⚠") {
			t.Error("Warning check should have ⚠")
		}
		if !strings.Contains(s, "warning message") {
			t.Error("Should contain message")
		}
	})
}

func TestCheckExecutable(t *testing.T) {
	dir := t.TempDir()

	t.Run("existing_binary", func(t *testing.T) {
		path := filepath.Join(dir, "bin")
		if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatal(err)
		}
		c := checkExecutable("scanner_binary", path)
		if !c.Passed {
			t.Errorf("check failed: %s", c.Message)
		}
		if !strings.Contains(c.Message, path) {
			t.Errorf("message %q should name the resolved path", c.Message)
		}
	})

	t.Run("missing_binary", func(t *testing.T) {
		c := checkExecutable("scanner_binary", filepath.Join(dir, "missing"))
		if c.Passed {
			t.Error("missing binary should fail")
		}
	})

	t.Run("path_resolution", func(t *testing.T) {
		c := checkExecutable("scanner_binary", "sh")
		if !c.Passed {
			t.Errorf("sh should resolve through PATH: %s", c.Message)
		}
	})

	t.Run("directory", func(t *testing.T) {
		// LookPath may or may not reject a directory; either way the
		// check must fail.
		c := checkExecutable("load_binary", dir)
		if c.Passed {
			t.Error("directory should fail the executable check")
		}
	})
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "stub")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	t.Run("all_present", func(t *testing.T) {
		result := RunAll(bin, bin)
		if !result.Passed {
			for _, c := range result.Checks {
				t.Logf("%s", c.String())
			}
			t.Error("expected all checks to pass")
		}
		if len(result.Checks) != 4 {
			t.Errorf("got %d checks, want 4", len(result.Checks))
		}
	})

	t.Run("missing_scanner", func(t *testing.T) {
		result := RunAll(filepath.Join(dir, "missing"), bin)
		if result.Passed {
			t.Error("expected failure with missing scanner binary")
		}
	})

	t.Run("missing_load", func(t *testing.T) {
		result := RunAll(bin, filepath.Join(dir, "missing"))
		if result.Passed {
			t.Error("expected failure with missing load binary")
		}
	})
}

func TestCheckFileDescriptors(t *testing.T) {
	c := checkFileDescriptors()
	if c.Name != "file_descriptors" {
		t.Errorf("name = %q", c.Name)
	}
	if c.Actual <= 0 {
		t.Errorf("actual fd limit = %d, want > 0", c.Actual)
	}
}
