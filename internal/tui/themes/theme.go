// Package themes holds the color schemes of the live entry screen.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Muted       lipgloss.Style
	Box         lipgloss.Style
	StatusError lipgloss.Style
	StatusOK    lipgloss.Style
	StatusWarn  lipgloss.Style
	Hot         lipgloss.Style
	Cold        lipgloss.Style
	RedPocket   lipgloss.Style
	BlackPocket lipgloss.Style
	GreenPocket lipgloss.Style
	Primary     lipgloss.Color
	Border      lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary: lipgloss.Color("#2ECC71"),
	Border:  lipgloss.Color("#404040"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#2ECC71")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),

	StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
	StatusOK:    lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981")),
	StatusWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")),

	Hot:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF8C42")),
	Cold: lipgloss.NewStyle().Foreground(lipgloss.Color("#5DADE2")),

	RedPocket: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		Background(lipgloss.Color("#C0392B")).
		Padding(0, 1),
	BlackPocket: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		Background(lipgloss.Color("#1C1C1C")).
		Padding(0, 1),
	GreenPocket: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		Background(lipgloss.Color("#1E8449")).
		Padding(0, 1),
}

// Monochrome avoids colors for terminals without color support.
var Monochrome = Theme{
	Primary:     lipgloss.Color(""),
	Border:      lipgloss.Color(""),
	Title:       lipgloss.NewStyle().Bold(true),
	Subtitle:    lipgloss.NewStyle(),
	Normal:      lipgloss.NewStyle(),
	Bold:        lipgloss.NewStyle().Bold(true),
	Muted:       lipgloss.NewStyle().Faint(true),
	Box:         lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	StatusError: lipgloss.NewStyle().Bold(true),
	StatusOK:    lipgloss.NewStyle(),
	StatusWarn:  lipgloss.NewStyle().Underline(true),
	Hot:         lipgloss.NewStyle().Bold(true),
	Cold:        lipgloss.NewStyle().Faint(true),
	RedPocket:   lipgloss.NewStyle().Padding(0, 1),
	BlackPocket: lipgloss.NewStyle().Padding(0, 1).Reverse(true),
	GreenPocket: lipgloss.NewStyle().Padding(0, 1).Underline(true),
}
