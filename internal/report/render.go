package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/randomizedcoder/go-scanmem-bench/internal/stats"
)

// RenderJSON writes the report as indented JSON. The layout is stable:
// configuration first, then scenarios in sweep order.
func RenderJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// RenderTable writes a human-readable report: the echoed configuration,
// a per-scenario results table, and per-iteration durations.
func RenderTable(w io.Writer, r *Report) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sweep Configuration:")
	fmt.Fprintf(w, "  Program:      %s\n", r.Config.Program)
	fmt.Fprintf(w, "  Commands:     %s\n", strings.Join(r.Config.Commands, "; "))
	fmt.Fprintf(w, "  Load program: %s\n", r.Config.LoadProgram)
	fmt.Fprintf(w, "  Size range:   %s .. %s (step %s, factor %g)\n",
		stats.FormatBytes(r.Config.MinBytes),
		stats.FormatBytes(r.Config.MaxBytes),
		stats.FormatBytes(r.Config.StepBytes),
		r.Config.StepFactor,
	)
	fmt.Fprintf(w, "  Iterations:   %d\n", r.Config.Iterations)
	if r.Config.ThreadCount >= 0 {
		fmt.Fprintf(w, "  Threads:      %d\n", r.Config.ThreadCount)
	} else {
		fmt.Fprintf(w, "  Threads:      (not set)\n")
	}
	fmt.Fprintf(w, "  Seed:         %d\n", r.Config.Seed)
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"Size", "Seed", "Setup", "Total",
		"Min", "Median", "Mean", "Max", "StdDev", "P95", "Status",
	})
	table.SetAutoFormatHeaders(false)

	for _, s := range r.Scenarios {
		row := []string{
			stats.FormatBytes(s.SizeBytes),
			fmt.Sprintf("%d", s.Seed),
			stats.FormatMs(s.Timing.Setup),
			stats.FormatMs(s.Timing.Total),
		}
		if s.Failed || s.Aggregates == nil {
			row = append(row, "-", "-", "-", "-", "-", "-", "FAILED")
		} else {
			a := s.Aggregates
			row = append(row,
				stats.FormatMs(a.Min),
				stats.FormatMs(a.Median),
				stats.FormatMs(a.Mean),
				stats.FormatMs(a.Max),
				stats.FormatMs(a.StdDev),
				stats.FormatMs(a.P95),
				"ok",
			)
		}
		table.Append(row)
	}
	table.Render()

	// Per-iteration detail, one line per scenario.
	fmt.Fprintln(w)
	for _, s := range r.Scenarios {
		if len(s.Timing.Iterations) == 0 {
			if s.Failed {
				fmt.Fprintf(w, "  %s: failed before any iteration (%s)\n",
					stats.FormatBytes(s.SizeBytes), s.Error)
			}
			continue
		}
		parts := make([]string, len(s.Timing.Iterations))
		for i, d := range s.Timing.Iterations {
			parts[i] = stats.FormatMs(d)
		}
		suffix := ""
		if s.Failed {
			suffix = fmt.Sprintf("  (failed: %s)", s.Error)
		}
		fmt.Fprintf(w, "  %s: %s%s\n", stats.FormatBytes(s.SizeBytes),
			strings.Join(parts, ", "), suffix)
	}

	if failed := r.FailedCount(); failed > 0 {
		fmt.Fprintf(w, "\n%d of %d scenarios failed\n", failed, len(r.Scenarios))
	}
}
