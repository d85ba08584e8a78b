// Package confirm is a yes/no dialog. It answers asynchronously: the result
// arrives as a ResultMsg after the dialog has closed itself.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/poi-admin/internal/ui"
)

type ResultMsg struct {
	Confirmed bool
	Action    string
}

// Answer is a dialog outcome usable wherever a synchronous confirmer is
// expected.
type Answer bool

func (a Answer) Confirm(string) bool { return bool(a) }

// Answer returns the outcome carried by r.
func (r ResultMsg) Answer() Answer { return Answer(r.Confirmed) }

type Model struct {
	Title    string
	Message  string
	Action   string
	active   bool
	selected bool // yes has the focus
}

func New(title, message, action string) Model {
	return Model{
		Title:   title,
		Message: message,
		Action:  action,
		active:  true,
	}
}

func (m Model) IsActive() bool { return m.active }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			return m.close(true)
		case "n", "N", "esc":
			return m.close(false)
		case "enter":
			return m.close(m.selected)
		case "tab", "shift+tab", "left", "right", "h", "l":
			m.selected = !m.selected
		}
	}
	return m, nil
}

func (m Model) close(confirmed bool) (Model, tea.Cmd) {
	m.active = false
	action := m.Action
	return m, func() tea.Msg {
		return ResultMsg{Confirmed: confirmed, Action: action}
	}
}

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorWarning).
			Padding(1, 2).
			Width(50)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorWarning)
)

// View draws the question with the answer buttons; the focused button is the
// one enter picks.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		ui.Button("Yes", m.selected), " ", ui.Button("No", !m.selected))
	return dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.Title),
		"",
		m.Message,
		"",
		buttons,
		"",
		ui.StyleMuted.Render("y/n to answer, esc to cancel"),
	))
}
