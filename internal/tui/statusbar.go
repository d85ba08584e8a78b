package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/poi-admin/internal/ui"
)

// Status is the message shown on the left of the status bar.
type Status struct {
	Text string
	Err  bool
}

func RenderStatusBar(status Status, hints string, width int) string {
	color := ui.ColorMuted
	if status.Err {
		color = ui.ColorFailure
	}
	left := lipgloss.NewStyle().Foreground(color).Render("  " + status.Text)
	help := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(hints + " ")

	// hints give way to the status when both do not fit
	if width > 0 && lipgloss.Width(left)+lipgloss.Width(help) > width {
		help = ""
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(help)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#111827")).
		Width(width).
		Render(left + padding + help)
}
