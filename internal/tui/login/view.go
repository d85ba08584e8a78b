// Package login is the sign-in page shown at /login.
package login

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/altinukshini/poi-admin/internal/auth"
	"github.com/altinukshini/poi-admin/internal/ui"
)

type field int

const (
	fieldUser field = iota
	fieldPassword
	fieldCount
)

type Model struct {
	creds    auth.Credentials
	log      zerolog.Logger
	inputs   [fieldCount]textinput.Model
	focused  field
	err      error
	attempts int
	width    int
	height   int
}

func New(creds auth.Credentials, log zerolog.Logger) Model {
	user := textinput.New()
	user.Placeholder = "user name"
	user.CharLimit = 64
	user.Width = 30
	user.Prompt = ""

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 72 // bcrypt ignores anything longer
	password.Width = 30
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	m := Model{creds: creds, log: log}
	m.inputs[fieldUser] = user
	m.inputs[fieldPassword] = password
	m.inputs[fieldUser].Focus()
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Err returns the error from the last attempt, if any.
func (m Model) Err() error { return m.err }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down", "shift+tab", "up":
			return m, m.setFocus((m.focused + 1) % fieldCount)
		case "enter":
			if m.focused == fieldUser {
				return m, m.setFocus(fieldPassword)
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.inputs[m.focused].Blur()
	m.focused = f
	return m.inputs[f].Focus()
}

func (m Model) submit() (Model, tea.Cmd) {
	user := strings.TrimSpace(m.inputs[fieldUser].Value())
	err := m.creds.Verify(user, m.inputs[fieldPassword].Value())
	m.inputs[fieldPassword].SetValue("")
	if err != nil {
		m.attempts++
		m.err = err
		m.log.Warn().Str("user", user).Int("attempt", m.attempts).Err(err).Msg("login failed")
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			return m, nil
		}
		return m, m.setFocus(fieldPassword)
	}
	m.err = nil
	m.log.Info().Str("user", user).Msg("logged in")
	return m, func() tea.Msg { return ui.LoggedInMsg{User: user} }
}

func (m Model) View() string {
	labelStyle := lipgloss.NewStyle().Width(10).Foreground(ui.ColorMuted)
	focusedLabelStyle := lipgloss.NewStyle().Width(10).Bold(true).Foreground(ui.ColorPrimary)

	row := func(f field, label string) string {
		ls := labelStyle
		cursor := "  "
		if f == m.focused {
			ls = focusedLabelStyle
			cursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Render("> ")
		}
		return cursor + ls.Render(label) + m.inputs[f].View()
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary).MarginBottom(1).Render("Sign in")
	parts := []string{title, row(fieldUser, "User"), row(fieldPassword, "Password")}
	if m.err != nil {
		parts = append(parts, "", ui.StyleFailure.Render(m.err.Error()))
	}
	parts = append(parts, "", ui.StyleMuted.Render("tab: next field  enter: sign in"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Padding(1, 2).
		Width(52).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
