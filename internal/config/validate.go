package config

import (
	"errors"
	"fmt"
	"math"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors and inconsistencies.
// Returns nil if valid, or an error describing every problem found.
//
// Sweep progress (non-terminating step/factor combinations) is validated
// by the sweep controller, not here: it owns that invariant.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.ScanmemProgram == "" {
		errs = append(errs, ValidationError{
			Field:   "scanmem-program",
			Message: "path to the program under test is required",
		})
	}

	if len(cfg.ScanmemCommands) == 0 && !cfg.PrintCmd {
		errs = append(errs, ValidationError{
			Field:   "scanmem-commands",
			Message: "at least one target command is required",
		})
	}

	if cfg.ThreadCount < -1 {
		errs = append(errs, ValidationError{
			Field:   "nthreads",
			Message: fmt.Sprintf("must be -1 (omit) or >= 0 (got %d)", cfg.ThreadCount),
		})
	}

	if cfg.Iterations < 1 {
		errs = append(errs, ValidationError{
			Field:   "iterations",
			Message: fmt.Sprintf("must be at least 1 (got %d)", cfg.Iterations),
		})
	}

	if cfg.MinBytes < 1 {
		errs = append(errs, ValidationError{
			Field:   "minbytes",
			Message: "must be at least 1",
		})
	}
	if cfg.MaxBytes < cfg.MinBytes {
		errs = append(errs, ValidationError{
			Field:   "maxbytes",
			Message: fmt.Sprintf("must be >= minbytes (%d < %d)", cfg.MaxBytes, cfg.MinBytes),
		})
	}

	if cfg.StepFactor < 1.0 || math.IsNaN(cfg.StepFactor) || math.IsInf(cfg.StepFactor, 0) {
		errs = append(errs, ValidationError{
			Field:   "stepfactor",
			Message: fmt.Sprintf("must be a finite value >= 1.0 (got %g)", cfg.StepFactor),
		})
	}

	if cfg.Timeout < 0 {
		errs = append(errs, ValidationError{
			Field:   "timeout",
			Message: "must not be negative",
		})
	}

	validFormats := map[string]bool{"table": true, "json": true}
	if !validFormats[cfg.Format] {
		errs = append(errs, ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("must be 'table' or 'json' (got %q)", cfg.Format),
		})
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[cfg.LogFormat] {
		errs = append(errs, ValidationError{
			Field:   "log-format",
			Message: fmt.Sprintf("must be 'json' or 'text' (got %q)", cfg.LogFormat),
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Warnings returns non-fatal findings about the configuration. These
// are logged and the run proceeds.
func Warnings(cfg *Config) []string {
	var warnings []string

	// The target is expected to terminate on its own after reading its
	// commands; a trailing exit is the conventional way to ensure that.
	if n := len(cfg.ScanmemCommands); n > 0 {
		if last := cfg.ScanmemCommands[n-1]; last != "exit" {
			warnings = append(warnings, fmt.Sprintf(
				"last target command is %q, not \"exit\"; the target may not terminate", last))
		}
	}

	if cfg.Timeout > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"--timeout %s is accepted but not yet enforced", cfg.Timeout))
	}

	return warnings
}
