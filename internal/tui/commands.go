package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const commandTimeout = 10 * time.Second

func (m Model) recordSpins(line string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, commandTimeout)
		defer cancel()

		outcomes, err := m.tracker.RecordEntry(ctx, line)
		return spinsRecordedMsg{outcomes: outcomes, err: err}
	}
}

func (m Model) undoSpin() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, commandTimeout)
		defer cancel()

		outcome, err := m.tracker.Undo(ctx)
		return undoneMsg{outcome: outcome, err: err}
	}
}

func (m Model) loadReport() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, commandTimeout)
		defer cancel()

		report, err := m.tracker.Analyze(ctx, m.config.Filter)
		return reportLoadedMsg{report: report, err: err}
	}
}

func (m Model) loadStatus() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, commandTimeout)
		defer cancel()

		status, err := m.tracker.Status(ctx)
		return statusLoadedMsg{status: status, err: err}
	}
}

func (m Model) refresh() tea.Cmd {
	return tea.Batch(m.loadReport(), m.loadStatus())
}
