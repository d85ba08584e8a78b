package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorFailure   = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorInfo      = lipgloss.Color("#3B82F6")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#374151")
	ColorHighlight = lipgloss.Color("#1F2937")
	ColorText      = lipgloss.Color("#F9FAFB")

	StylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleButton = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StyleButtonFocused = lipgloss.NewStyle().
				Padding(0, 2).
				Bold(true).
				Foreground(ColorText).
				Background(ColorPrimary).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)
)

// Checkbox renders a checkbox with its label. The focused box is highlighted.
func Checkbox(label string, checked, focused bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	style := StyleMuted
	switch {
	case focused:
		style = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	case checked:
		style = StyleSuccess
	}
	return style.Render(box + " " + label)
}

// Button renders a push button.
func Button(label string, focused bool) string {
	if focused {
		return StyleButtonFocused.Render(label)
	}
	return StyleButton.Render(label)
}
