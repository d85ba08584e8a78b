package confirm

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func press(m Model, k string) (Model, tea.Msg) {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m, cmd := m.Update(msg)
	if cmd == nil {
		return m, nil
	}
	return m, cmd()
}

func TestAnswers(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want bool
	}{
		{name: "y", keys: []string{"y"}, want: true},
		{name: "n", keys: []string{"n"}, want: false},
		{name: "esc", keys: []string{"esc"}, want: false},
		{name: "enter defaults to no", keys: []string{"enter"}, want: false},
		{name: "tab then enter", keys: []string{"tab", "enter"}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New("Reset", "Reset all search conditions?", "reset")
			var got tea.Msg
			for _, k := range tt.keys {
				m, got = press(m, k)
			}
			res, ok := got.(ResultMsg)
			if !ok {
				t.Fatalf("last key produced %T, want ResultMsg", got)
			}
			if res.Confirmed != tt.want || res.Action != "reset" {
				t.Errorf("result = %+v, want Confirmed=%v Action=reset", res, tt.want)
			}
			if m.IsActive() {
				t.Error("dialog should close after answering")
			}
			if res.Answer().Confirm("anything") != tt.want {
				t.Error("Answer does not carry the result")
			}
		})
	}
}

func TestInactiveIgnoresKeys(t *testing.T) {
	var m Model
	m, msg := press(m, "y")
	if msg != nil || m.IsActive() {
		t.Errorf("inactive dialog reacted: %v", msg)
	}
	if m.View() != "" {
		t.Error("inactive dialog should render nothing")
	}
}

func TestView(t *testing.T) {
	v := New("Reset", "Reset all search conditions?", "reset").View()
	for _, want := range []string{"Reset", "Reset all search conditions?", "Yes", "No"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
