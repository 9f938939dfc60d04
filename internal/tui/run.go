package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the live entry screen and blocks until the user quits or ctx
// is canceled. It returns how many spins were recorded.
func Run(ctx context.Context, tracker Tracker, opts ...Option) (int, error) {
	if tracker == nil {
		return 0, fmt.Errorf("tracker is required")
	}

	p := tea.NewProgram(New(ctx, tracker, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return recordedBy(final), nil
		}
		return recordedBy(final), fmt.Errorf("live screen failed: %w", err)
	}
	return recordedBy(final), nil
}

func recordedBy(m tea.Model) int {
	if live, ok := m.(Model); ok {
		return live.Recorded()
	}
	return 0
}
