package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/randomizedcoder/go-scanmem-bench/internal/stats"
)

func (m Model) render() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderScenario())
	sections = append(sections, m.renderSweep())

	if len(m.results) > 0 {
		sections = append(sections, m.renderResults())
	}

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	return titleStyle.Render(fmt.Sprintf(
		" go-scanmem-bench │ %s │ Elapsed: %s ",
		m.program,
		stats.FormatDuration(m.Elapsed()),
	))
}

func (m Model) renderScenario() string {
	header := sectionHeaderStyle.Render("Current Scenario")

	if !m.running {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			dimStyle.Render("waiting..."),
		)
	}

	barWidth := m.width - 30
	if barWidth < 20 {
		barWidth = 20
	}

	lines := []string{
		header,
		RenderKeyValue("Workload size", stats.FormatBytes(m.sizeBytes)),
		RenderKeyValue("Seed", fmt.Sprintf("%d", m.seed)),
		RenderKeyValue("Iteration", fmt.Sprintf("%d/%d", m.done, m.iterations)),
		RenderProgressBar(m.IterationProgress(), barWidth),
	}
	if m.lastElapsed > 0 {
		lines = append(lines, RenderKeyValue("Last scan", stats.FormatMs(m.lastElapsed)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderSweep() string {
	barWidth := m.width - 30
	if barWidth < 20 {
		barWidth = 20
	}

	status := fmt.Sprintf("%d/%d scenarios", m.completed, m.total)
	if m.total == 0 {
		status = "starting..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		sectionHeaderStyle.Render("Sweep Progress"),
		RenderProgressBar(m.SweepProgress(), barWidth),
		valueStyle.Render(status),
	)
}

func (m Model) renderResults() string {
	lines := []string{
		sectionHeaderStyle.Render("Completed Scenarios"),
		dimStyle.Render(fmt.Sprintf("%-12s %10s %10s %10s  %s",
			"SIZE", "MEDIAN", "MEAN", "MAX", "STATUS")),
	}

	// Show the most recent scenarios that fit the terminal.
	visible := m.results
	maxRows := m.height - 16
	if maxRows < 3 {
		maxRows = 3
	}
	if len(visible) > maxRows {
		visible = visible[len(visible)-maxRows:]
	}

	for _, r := range visible {
		if r.Failed || r.Aggregates == nil {
			lines = append(lines, fmt.Sprintf("%-12s %10s %10s %10s  %s",
				stats.FormatBytes(r.SizeBytes), "-", "-", "-",
				valueBadStyle.Render("FAILED")))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-12s %10s %10s %10s  %s",
			stats.FormatBytes(r.SizeBytes),
			stats.FormatMs(r.Aggregates.Median),
			stats.FormatMs(r.Aggregates.Mean),
			stats.FormatMs(r.Aggregates.Max),
			valueGoodStyle.Render("ok")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderFooter() string {
	return footerStyle.Render(" q: quit ")
}
