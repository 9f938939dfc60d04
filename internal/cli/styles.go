// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/the-wheel-must-spin/internal/analysis"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

var (
	// PrimaryColor is the main theme color (felt green).
	PrimaryColor = lipgloss.Color("#2ECC71")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// Pocket colors.
	RedPocketColor   = lipgloss.Color("#E74C3C")
	BlackPocketColor = lipgloss.Color("#ECF0F1")
	GreenPocketColor = lipgloss.Color("#27AE60")

	// HotColor and ColdColor mark biased groups and numbers.
	HotColor  = lipgloss.Color("#FF8C42")
	ColdColor = lipgloss.Color("#5DADE2")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// HotStyle highlights hot groups and numbers.
	HotStyle = lipgloss.NewStyle().Bold(true).Foreground(HotColor)

	// ColdStyle highlights cold groups and numbers.
	ColdStyle = lipgloss.NewStyle().Foreground(ColdColor)

	redPocket   = lipgloss.NewStyle().Bold(true).Foreground(RedPocketColor)
	blackPocket = lipgloss.NewStyle().Bold(true).Foreground(BlackPocketColor)
	greenPocket = lipgloss.NewStyle().Bold(true).Foreground(GreenPocketColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	WheelIcon   = "🎡"
	ChartIcon   = "📊"
	HotIcon     = "🔥"
	ColdIcon    = "❄️"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the wheel icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(WheelIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// FormatNumber renders a pocket number in its wheel color.
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	switch model.ColorOf(n) {
	case model.ColorRed:
		return redPocket.Render(s)
	case model.ColorBlack:
		return blackPocket.Render(s)
	default:
		return greenPocket.Render(s)
	}
}

// FormatBias renders a bias label; average rows stay unstyled.
func FormatBias(b analysis.Bias) string {
	switch b {
	case analysis.BiasHot:
		return HotStyle.Render(HotIcon + " " + string(b))
	case analysis.BiasCold:
		return ColdStyle.Render(ColdIcon + " " + string(b))
	default:
		return string(b)
	}
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, boxTitle, content))
}
