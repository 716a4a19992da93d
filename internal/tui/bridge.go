package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/randomizedcoder/go-scanmem-bench/internal/orchestrator"
	"github.com/randomizedcoder/go-scanmem-bench/internal/report"
)

// Callbacks bridges sweep events into the running program. Send is
// safe to call from the sweep goroutine.
func Callbacks(p *tea.Program) orchestrator.Callbacks {
	return orchestrator.Callbacks{
		OnScenarioStart: func(sizeBytes, seed uint64) {
			p.Send(ScenarioStartedMsg{SizeBytes: sizeBytes, Seed: seed})
		},
		OnIteration: func(index int, elapsed time.Duration) {
			p.Send(IterationMsg{Index: index, Elapsed: elapsed})
		},
		OnScenarioEnd: func(result report.ScenarioResult) {
			p.Send(ScenarioEndMsg{Result: result})
		},
		OnSweepProgress: func(completed, total int) {
			p.Send(SweepProgressMsg{Completed: completed, Total: total})
		},
	}
}
