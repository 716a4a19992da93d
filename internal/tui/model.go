package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/randomizedcoder/go-scanmem-bench/internal/report"
)

// TickMsg is sent periodically to refresh the clock.
type TickMsg time.Time

// ScenarioStartedMsg announces the scenario now in flight.
type ScenarioStartedMsg struct {
	SizeBytes uint64
	Seed      uint64
}

// IterationMsg carries one finished timed invocation.
type IterationMsg struct {
	Index   int
	Elapsed time.Duration
}

// ScenarioEndMsg carries a finished scenario result.
type ScenarioEndMsg struct {
	Result report.ScenarioResult
}

// SweepProgressMsg reports sweep steps completed out of total.
type SweepProgressMsg struct {
	Completed int
	Total     int
}

// SweepDoneMsg signals the sweep finished and the TUI should exit.
type SweepDoneMsg struct{}

// Model represents the TUI state.
type Model struct {
	// Configuration
	program    string
	iterations int

	// Scenario in flight
	running     bool
	sizeBytes   uint64
	seed        uint64
	done        int
	lastElapsed time.Duration

	// Sweep state
	completed int
	total     int
	results   []report.ScenarioResult

	startTime time.Time

	// Display options
	width  int
	height int

	quitting bool
}

// Config holds TUI configuration.
type Config struct {
	Program    string
	Iterations int
}

// New creates a new TUI model.
func New(cfg Config) Model {
	return Model{
		program:    cfg.Program,
		iterations: cfg.Iterations,
		startTime:  time.Now(),
		width:      80,
		height:     24,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m, tickCmd()

	case ScenarioStartedMsg:
		m.running = true
		m.sizeBytes = msg.SizeBytes
		m.seed = msg.Seed
		m.done = 0
		m.lastElapsed = 0
		return m, nil

	case IterationMsg:
		m.done = msg.Index + 1
		m.lastElapsed = msg.Elapsed
		return m, nil

	case ScenarioEndMsg:
		m.running = false
		m.results = append(m.results, msg.Result)
		return m, nil

	case SweepProgressMsg:
		m.completed = msg.Completed
		m.total = msg.Total
		return m, nil

	case SweepDoneMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// tickCmd returns a command that sends a tick after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Elapsed returns the time since the sweep started.
func (m Model) Elapsed() time.Duration {
	return time.Since(m.startTime)
}

// IterationProgress returns the in-flight scenario's progress (0.0 to 1.0).
func (m Model) IterationProgress() float64 {
	if m.iterations == 0 {
		return 0
	}
	return float64(m.done) / float64(m.iterations)
}

// SweepProgress returns the sweep's progress (0.0 to 1.0).
func (m Model) SweepProgress() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.completed) / float64(m.total)
}

// SendDone tells the TUI the sweep finished.
func SendDone(p *tea.Program) {
	if p != nil {
		p.Send(SweepDoneMsg{})
	}
}
