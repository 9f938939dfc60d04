package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/the-wheel-must-spin/internal/analysis"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

// latestFindings is how many recent per-spin findings the screen shows.
const latestFindings = 5

// View renders the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.config.Theme.Title.Render("🎡 Live spin entry"),
		m.statusLine(),
		"",
	}

	if m.report == nil || m.report.NoData {
		sections = append(sections, m.config.Theme.Muted.Render("No spins yet. Type a number and press Enter."))
	} else {
		sections = append(sections,
			m.recentView(),
			"",
			m.hotColdView(),
			"",
			m.trendsView(),
		)
		if alerts := m.alertsView(); alerts != "" {
			sections = append(sections, "", alerts)
		}
		if findings := m.findingsView(); findings != "" {
			sections = append(sections, "", findings)
		}
	}

	sections = append(sections, "", m.input.View(), m.feedbackLine(), "", m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) statusLine() string {
	if m.status == nil {
		return m.config.Theme.Muted.Render("Loading session…")
	}
	s := m.status
	parts := []string{
		"Dealer: " + m.config.Theme.Bold.Render(s.Dealer),
		fmt.Sprintf("Session spins: %d", s.SessionSpins),
		fmt.Sprintf("Total: %d", s.TotalSpins),
		"Time: " + model.FormatDuration(s.Duration),
	}
	if f := m.config.Filter; f.DealerID != "" || f.Last > 0 {
		parts = append(parts, m.config.Theme.Muted.Render(describeFilter(f)))
	}
	return m.config.Theme.Subtitle.Render(strings.Join(parts, "  │  "))
}

func (m Model) recentView() string {
	pockets := make([]string, len(m.report.Recent))
	// Newest first reads naturally on a scoreboard.
	for i, n := range m.report.Recent {
		pockets[len(pockets)-1-i] = m.pocket(n)
	}
	return m.config.Theme.Bold.Render("Latest ") + strings.Join(pockets, " ")
}

func (m Model) hotColdView() string {
	theme := m.config.Theme
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Hot.Render("Hot  ")+m.counts(m.report.HotCold.Hot),
		theme.Cold.Render("Cold ")+m.counts(m.report.HotCold.Cold),
	)
}

func (m Model) trendsView() string {
	lines := make([]string, 0, len(m.report.Trends))
	for _, row := range m.report.Trends {
		label := fmt.Sprintf("%-12s %s", row.Name, row.Label())
		lines = append(lines, m.styleBias(row.Bias, label))
	}
	return m.config.Theme.Box.Render(strings.Join(lines, "\n"))
}

func (m Model) alertsView() string {
	if len(m.report.Alerts) == 0 {
		return ""
	}
	lines := make([]string, len(m.report.Alerts))
	for i, a := range m.report.Alerts {
		nums := make([]string, len(a.HotNumbers))
		for j, n := range a.HotNumbers {
			nums[j] = strconv.Itoa(n)
		}
		lines[i] = m.config.Theme.StatusWarn.Render(fmt.Sprintf("⚠ %s holds hot %s", a.Group, strings.Join(nums, ", ")))
	}
	return strings.Join(lines, "\n")
}

func (m Model) findingsView() string {
	var findings []analysis.Finding
	for _, res := range m.report.Detectors {
		for _, f := range res.Findings {
			if f.Index >= 0 {
				findings = append(findings, f)
			}
		}
	}
	if len(findings) == 0 {
		return ""
	}

	slices.SortStableFunc(findings, func(a, b analysis.Finding) int {
		return cmp.Compare(b.Index, a.Index)
	})
	findings = findings[:min(latestFindings, len(findings))]

	lines := make([]string, len(findings))
	for i, f := range findings {
		lines[i] = "• " + f.Message
	}
	return m.config.Theme.Bold.Render("Patterns") + "\n" + strings.Join(lines, "\n")
}

func (m Model) feedbackLine() string {
	switch {
	case m.lastErr != nil:
		return m.config.Theme.StatusError.Render("✗ " + m.lastErr.Error())
	case m.message != "":
		return m.config.Theme.StatusOK.Render("✓ " + m.message)
	default:
		return ""
	}
}

func (m Model) pocket(n int) string {
	s := strconv.Itoa(n)
	switch model.ColorOf(n) {
	case model.ColorRed:
		return m.config.Theme.RedPocket.Render(s)
	case model.ColorBlack:
		return m.config.Theme.BlackPocket.Render(s)
	default:
		return m.config.Theme.GreenPocket.Render(s)
	}
}

func (m Model) counts(entries []analysis.NumberCount) string {
	if len(entries) == 0 {
		return m.config.Theme.Muted.Render("none")
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%d×%d", e.Number, e.Count)
	}
	return strings.Join(parts, "  ")
}

func (m Model) styleBias(b analysis.Bias, s string) string {
	switch b {
	case analysis.BiasHot:
		return m.config.Theme.Hot.Render(s)
	case analysis.BiasCold:
		return m.config.Theme.Cold.Render(s)
	default:
		return m.config.Theme.Normal.Render(s)
	}
}

func describeFilter(f analysis.Filter) string {
	var parts []string
	if f.DealerID != "" {
		parts = append(parts, "dealer "+f.DealerID)
	}
	if f.Last > 0 {
		parts = append(parts, fmt.Sprintf("last %d", f.Last))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
