// Package preflight provides startup validation checks.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

// Check represents the result of a single preflight check.
type Check struct {
	Name     string // Name of the check
	Required int    // Required value (if applicable)
	Actual   int    // Actual value found
	Passed   bool   // Whether the check passed
	Warning  bool   // True if it's a warning (non-fatal)
	Message  string // Additional context
}

// Result holds the results of all preflight checks.
type Result struct {
	Checks []Check
	Passed bool
}

// String returns a human-readable summary of the check.
func (c Check) String() string {
	status := "✓"
	if !c.Passed {
		status = "✗"
	} else if c.Warning {
		status = "⚠"
	}

	if c.Required > 0 {
		return fmt.Sprintf("  %s %s: %d available (need %d)", status, c.Name, c.Actual, c.Required)
	}
	return fmt.Sprintf("  %s %s: %s", status, c.Name, c.Message)
}

// RunAll executes all preflight checks for the given scanner and
// workload generator binaries.
func RunAll(scannerPath, loadPath string) *Result {
	result := &Result{
		Checks: make([]Check, 0, 4),
		Passed: true,
	}

	scannerCheck := checkExecutable("scanner_binary", scannerPath)
	result.Checks = append(result.Checks, scannerCheck)
	if !scannerCheck.Passed {
		result.Passed = false
	}

	loadCheck := checkExecutable("load_binary", loadPath)
	result.Checks = append(result.Checks, loadCheck)
	if !loadCheck.Passed {
		result.Passed = false
	}

	fdCheck := checkFileDescriptors()
	result.Checks = append(result.Checks, fdCheck)
	if !fdCheck.Passed {
		result.Passed = false
	}

	// /proc check (warning only): the scanner reads the workload's
	// address space through /proc/<pid>, but a missing /proc is the
	// scanner's problem to report, not ours to predict.
	procCheck := checkProcMaps()
	result.Checks = append(result.Checks, procCheck)

	return result
}

// checkExecutable verifies the binary exists and can be executed,
// resolving bare names through PATH the way the shell would.
func checkExecutable(name, path string) Check {
	resolved, err := exec.LookPath(path)
	if err != nil {
		return Check{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("not found: %s (%v)", path, err),
		}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return Check{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("cannot stat %s: %v", resolved, err),
		}
	}
	if info.IsDir() {
		return Check{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("%s is a directory", resolved),
		}
	}

	return Check{
		Name:    name,
		Passed:  true,
		Message: fmt.Sprintf("found at %s", resolved),
	}
}

// checkFileDescriptors verifies sufficient file descriptors are
// available. Each scenario holds the workload's three pipes plus the
// scanner's three while an iteration runs; the rest is headroom for
// logging and the metrics listener.
func checkFileDescriptors() Check {
	var limit syscall.Rlimit
	syscall.Getrlimit(syscall.RLIMIT_NOFILE, &limit)

	const required = 64
	actual := int(limit.Cur)

	return Check{
		Name:     "file_descriptors",
		Required: required,
		Actual:   actual,
		Passed:   actual >= required,
		Message:  fmt.Sprintf("ulimit -n %d (need %d)", actual, required),
	}
}

// checkProcMaps verifies /proc exposes process address maps.
func checkProcMaps() Check {
	data, err := os.ReadFile("/proc/self/maps")
	if err != nil {
		return Check{
			Name:    "proc_maps",
			Passed:  true,
			Warning: true,
			Message: fmt.Sprintf("cannot read /proc/self/maps (%v); memory scanning may not work", err),
		}
	}
	regions := strings.Count(strings.TrimRight(string(data), "\n"), "\n") + 1

	return Check{
		Name:    "proc_maps",
		Passed:  true,
		Message: fmt.Sprintf("/proc/self/maps readable (%d regions)", regions),
	}
}

// PrintResults prints the preflight check results to stdout.
func PrintResults(result *Result) {
	fmt.Println("Preflight checks:")
	for _, check := range result.Checks {
		fmt.Println(check.String())
		if !check.Passed {
			fmt.Printf("    Fix: %s\n", suggestFix(check.Name))
		}
	}
	fmt.Println()
}

// suggestFix returns a suggestion for fixing a failed check.
func suggestFix(name string) string {
	switch name {
	case "scanner_binary":
		return "pass the scanner path with --scanmem-program"
	case "load_binary":
		return "build the workload generator or point --load-program at it"
	case "file_descriptors":
		return "ulimit -n 1024 (or edit /etc/security/limits.conf)"
	default:
		return "see documentation"
	}
}
