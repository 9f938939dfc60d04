// Package tui implements the full-screen live spin entry screen: type a
// number, press enter, and the summary refreshes immediately.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/the-wheel-must-spin/internal/analysis"
	"github.com/Veraticus/the-wheel-must-spin/internal/engine"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

// Tracker is the part of the engine the live screen drives.
type Tracker interface {
	RecordEntry(ctx context.Context, line string) ([]model.Outcome, error)
	Undo(ctx context.Context) (*model.Outcome, error)
	Analyze(ctx context.Context, filter analysis.Filter) (*analysis.Report, error)
	Status(ctx context.Context) (*engine.Status, error)
}

// Model holds the TUI state.
type Model struct {
	ctx      context.Context
	tracker  Tracker
	lastErr  error
	report   *analysis.Report
	status   *engine.Status
	message  string
	config   Config
	keymap   KeyMap
	help     help.Model
	input    textinput.Model
	recorded int
	width    int
	height   int
	quitting bool
}

// New creates the live entry model.
func New(ctx context.Context, tracker Tracker, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	input := textinput.New()
	input.Placeholder = "0-36, several separated by spaces"
	input.Prompt = "Spin › "
	input.CharLimit = 120
	input.Width = 40
	input.Focus()

	h := help.New()
	h.ShowAll = cfg.ShowHelp
	h.Width = cfg.Width

	return Model{
		ctx:     ctx,
		tracker: tracker,
		config:  cfg,
		keymap:  DefaultKeyMap(),
		help:    h,
		input:   input,
		width:   cfg.Width,
		height:  cfg.Height,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.refresh())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Undo):
			return m, m.undoSpin()
		case key.Matches(msg, m.keymap.Refresh):
			return m, m.refresh()
		case key.Matches(msg, m.keymap.ToggleHelp):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keymap.Submit):
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case spinsRecordedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			m.message = ""
			return m, nil
		}
		m.lastErr = nil
		m.recorded += len(msg.outcomes)
		m.message = "Recorded " + joinOutcomes(msg.outcomes)
		return m, m.refresh()

	case undoneMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			m.message = ""
			return m, nil
		}
		m.lastErr = nil
		m.recorded--
		m.message = fmt.Sprintf("Removed %d", msg.outcome.Number)
		return m, m.refresh()

	case reportLoadedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.report = msg.report

	case statusLoadedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.status = msg.status
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles the entry line. "u" undoes and "q" quits so the screen
// behaves like the plain prompt.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()

	switch strings.ToLower(line) {
	case "":
		return m, nil
	case "q", "quit", "exit":
		m.quitting = true
		return m, tea.Quit
	case "u", "undo":
		return m, m.undoSpin()
	}
	return m, m.recordSpins(line)
}

// Recorded returns how many spins were added during this run, net of undos.
func (m Model) Recorded() int {
	return m.recorded
}

func joinOutcomes(outcomes []model.Outcome) string {
	parts := make([]string, len(outcomes))
	for i, o := range outcomes {
		parts[i] = fmt.Sprint(o.Number)
	}
	return strings.Join(parts, " ")
}
