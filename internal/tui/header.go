package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/poi-admin/internal/ui"
)

// RenderHeader draws the title bar with the current location on the left,
// like an address bar, and the page name on the right.
func RenderHeader(location, page string, width int) string {
	left := lipgloss.NewStyle().Bold(true).
		Foreground(ui.ColorText).
		Render(" poi-admin | ")

	right := lipgloss.NewStyle().Foreground(ui.ColorInfo).Render(page + " ")

	room := width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	loc := truncate(location, room)
	locStr := lipgloss.NewStyle().Foreground(ui.ColorSuccess).Render(loc)

	gap := width - lipgloss.Width(left) - lipgloss.Width(locStr) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(ui.ColorHighlight).
		Width(width).
		Render(left + locStr + padding + right)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
