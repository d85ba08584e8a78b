// Package searchbox renders the POI search form and turns key presses into
// search form mutations.
package searchbox

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/poi-admin/internal/model"
	"github.com/altinukshini/poi-admin/internal/searchform"
	"github.com/altinukshini/poi-admin/internal/ui"
)

// ---------------------------------------------------------------------------
// Focus stops
// ---------------------------------------------------------------------------

type stopKind int

const (
	stopMode stopKind = iota
	stopValue
	stopCategories
	stopGrades
	stopReset
	stopSearch
)

// stop is one place the focus can rest. Mode and value stops carry the field
// they belong to; value stops also carry the value index.
type stop struct {
	kind  stopKind
	field model.Field
	index int
}

// row groups stops for up/down movement: one row per text field, then the
// two checkbox rows, then the buttons.
func (s stop) row() int {
	switch s.kind {
	case stopMode, stopValue:
		return int(s.field)
	case stopCategories:
		return len(model.Fields())
	case stopGrades:
		return len(model.Fields()) + 1
	default:
		return len(model.Fields()) + 2
	}
}

const checkboxesPerLine = 5

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model is the search form view. The form state lives in the manager; the
// model only keeps the text inputs and the focus.
type Model struct {
	manager     *searchform.Manager
	inputs      [][]textinput.Model // by model.Field, one per value
	focus       int
	catCursor   int
	gradeCursor int
	width       int
}

func New(manager *searchform.Manager) Model {
	m := Model{
		manager: manager,
		inputs:  make([][]textinput.Model, len(model.Fields())),
	}
	m.Sync()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Sync brings the text inputs in line with the manager's state. Call it after
// the state changed outside the view, e.g. after a reset or remount.
func (m *Model) Sync() tea.Cmd {
	s := m.manager.State()
	for _, f := range model.Fields() {
		values := s.Condition(f).Values
		inputs := m.inputs[f]
		if len(inputs) > len(values) {
			inputs = inputs[:len(values)]
		}
		for len(inputs) < len(values) {
			inputs = append(inputs, newInput(f))
		}
		for i, v := range values {
			if inputs[i].Value() != v {
				inputs[i].SetValue(v)
			}
		}
		m.inputs[f] = inputs
	}
	if n := len(m.stops()); m.focus >= n {
		m.focus = n - 1
	}
	return m.applyFocus()
}

func newInput(f model.Field) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = strings.ToLower(f.Label())
	ti.CharLimit = 0
	ti.Width = 18
	ti.Prompt = ""
	return ti
}

func (m Model) stops() []stop {
	s := m.manager.State()
	var out []stop
	for _, f := range model.Fields() {
		out = append(out, stop{kind: stopMode, field: f})
		for i := range s.Condition(f).Values {
			out = append(out, stop{kind: stopValue, field: f, index: i})
		}
	}
	return append(out,
		stop{kind: stopCategories},
		stop{kind: stopGrades},
		stop{kind: stopReset},
		stop{kind: stopSearch},
	)
}

func (m Model) current() stop {
	return m.stops()[m.focus]
}

// EditingText reports whether a value input has the focus.
func (m Model) EditingText() bool {
	return m.current().kind == stopValue
}

// SetSize stores the available width.
func (m *Model) SetSize(w, _ int) {
	m.width = w
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.EditingText() {
		return m.updateInput(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	cur := m.current()

	switch {
	case key.Matches(msg, ui.Keys.Tab):
		return m, m.moveFocus(1)
	case key.Matches(msg, ui.Keys.ShiftTab):
		return m, m.moveFocus(-1)
	case key.Matches(msg, ui.Keys.Down):
		return m, m.moveRow(1)
	case key.Matches(msg, ui.Keys.Up):
		return m, m.moveRow(-1)
	case key.Matches(msg, ui.Keys.Reset):
		return m, requestReset
	case key.Matches(msg, ui.Keys.AddValue):
		if cur.kind != stopMode && cur.kind != stopValue {
			return m, nil
		}
		m.manager.AddValue(cur.field)
		m.Sync()
		s := m.manager.State()
		last := len(s.Condition(cur.field).Values) - 1
		return m, m.focusOn(stop{kind: stopValue, field: cur.field, index: last})
	case key.Matches(msg, ui.Keys.RemoveVal):
		if cur.kind != stopValue {
			return m, nil
		}
		m.manager.RemoveValueAt(cur.field, cur.index)
		m.Sync()
		return m, m.focusOn(stop{kind: stopValue, field: cur.field, index: max(cur.index-1, 0)})
	}

	switch cur.kind {
	case stopMode:
		switch {
		case key.Matches(msg, ui.Keys.Right), key.Matches(msg, ui.Keys.Enter):
			return m, m.cycleMode(cur.field, 1)
		case key.Matches(msg, ui.Keys.Left):
			return m, m.cycleMode(cur.field, -1)
		}
		return m, nil

	case stopValue:
		if key.Matches(msg, ui.Keys.Enter) {
			return m, m.moveFocus(1)
		}
		return m.updateInput(msg)

	case stopCategories, stopGrades:
		opts, cursor := model.Categories, &m.catCursor
		if cur.kind == stopGrades {
			opts, cursor = model.Grades, &m.gradeCursor
		}
		switch {
		case key.Matches(msg, ui.Keys.Right):
			*cursor = (*cursor + 1) % len(opts)
		case key.Matches(msg, ui.Keys.Left):
			*cursor = (*cursor - 1 + len(opts)) % len(opts)
		case key.Matches(msg, ui.Keys.Toggle), key.Matches(msg, ui.Keys.Enter):
			id := opts[*cursor].ID
			if cur.kind == stopCategories {
				m.manager.ToggleCategory(id)
			} else {
				m.manager.ToggleGrade(id)
			}
		}
		return m, nil

	case stopReset, stopSearch:
		switch {
		case key.Matches(msg, ui.Keys.Left), key.Matches(msg, ui.Keys.Right):
			other := stopSearch
			if cur.kind == stopSearch {
				other = stopReset
			}
			return m, m.focusOn(stop{kind: other})
		case key.Matches(msg, ui.Keys.Enter):
			if cur.kind == stopReset {
				return m, requestReset
			}
			return m, m.submit()
		}
	}
	return m, nil
}

// updateInput forwards msg to the focused input. The input's text reaches the
// manager only when msg changed it, since the input shows tabs and newlines
// as spaces.
func (m Model) updateInput(msg tea.Msg) (Model, tea.Cmd) {
	cur := m.current()
	in := m.inputs[cur.field][cur.index]
	before := in.Value()
	in, cmd := in.Update(msg)
	m.inputs[cur.field][cur.index] = in
	if after := in.Value(); after != before {
		m.manager.SetValueAt(cur.field, cur.index, after)
	}
	return m, cmd
}

func (m *Model) cycleMode(f model.Field, delta int) tea.Cmd {
	s := m.manager.State()
	i := slices.Index(model.MatchModes, s.Condition(f).Mode)
	n := len(model.MatchModes)
	m.manager.SetMatchMode(f, model.MatchModes[(i+delta+n)%n])
	return m.Sync()
}

func (m Model) submit() tea.Cmd {
	pretty, err := m.manager.Submit()
	return func() tea.Msg {
		return ui.SubmittedMsg{Pretty: pretty, Err: err}
	}
}

func requestReset() tea.Msg { return ui.ResetRequestedMsg{} }

// ---------------------------------------------------------------------------
// Focus helpers
// ---------------------------------------------------------------------------

func (m *Model) moveFocus(delta int) tea.Cmd {
	n := len(m.stops())
	m.focus = (m.focus + delta + n) % n
	return m.applyFocus()
}

func (m *Model) moveRow(delta int) tea.Cmd {
	stops := m.stops()
	row := stops[m.focus].row()
	if delta > 0 {
		for i := m.focus + 1; i < len(stops); i++ {
			if stops[i].row() > row {
				m.focus = i
				return m.applyFocus()
			}
		}
		return nil
	}
	// first stop of the previous row
	target := -1
	for i := m.focus - 1; i >= 0; i-- {
		r := stops[i].row()
		if r == row {
			continue
		}
		if target >= 0 && r != stops[target].row() {
			break
		}
		target = i
	}
	if target >= 0 {
		m.focus = target
	}
	return m.applyFocus()
}

func (m *Model) focusOn(target stop) tea.Cmd {
	if i := slices.Index(m.stops(), target); i >= 0 {
		m.focus = i
	}
	return m.applyFocus()
}

func (m *Model) applyFocus() tea.Cmd {
	cur := m.current()
	var cmd tea.Cmd
	for _, f := range model.Fields() {
		for i := range m.inputs[f] {
			if cur.kind == stopValue && cur.field == f && cur.index == i {
				cmd = m.inputs[f][i].Focus()
			} else {
				m.inputs[f][i].Blur()
			}
		}
	}
	return cmd
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() string {
	s := m.manager.State()
	cur := m.current()

	labelStyle := lipgloss.NewStyle().Width(10).Foreground(ui.ColorMuted)
	focusedLabelStyle := lipgloss.NewStyle().Width(10).Bold(true).Foreground(ui.ColorPrimary)
	modeStyle := lipgloss.NewStyle().Width(14).Foreground(ui.ColorText)
	focusedModeStyle := lipgloss.NewStyle().Width(14).Bold(true).Foreground(ui.ColorPrimary)
	inputStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(ui.ColorBorder)
	focusedInputStyle := inputStyle.BorderForeground(ui.ColorPrimary)

	label := func(text string, row int) string {
		if cur.row() == row {
			return focusedLabelStyle.Render(text)
		}
		return labelStyle.Render(text)
	}

	var rows []string
	for _, f := range model.Fields() {
		cond := s.Condition(f)

		mode := fmt.Sprintf("< %s >", cond.Mode.Label())
		if cur.kind == stopMode && cur.field == f {
			mode = focusedModeStyle.Render(mode)
		} else {
			mode = modeStyle.Render(mode)
		}

		cells := []string{label(f.Label(), int(f)), mode}
		for i, in := range m.inputs[f] {
			st := inputStyle
			if cur.kind == stopValue && cur.field == f && cur.index == i {
				st = focusedInputStyle
			}
			cell := st.Render(in.View())
			if searchform.CanRemove(*cond) {
				cell = lipgloss.JoinHorizontal(lipgloss.Bottom, cell, ui.StyleMuted.Render(" x"))
			}
			cells = append(cells, cell, " ")
		}
		if cond.Mode == model.MatchInList {
			cells = append(cells, ui.StyleMuted.Render("+"))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Bottom, cells...))
	}

	rows = append(rows,
		m.renderCheckboxes("Category", model.Categories, s.POITypeIDs, cur.kind == stopCategories, m.catCursor, stop{kind: stopCategories}.row(), label),
		m.renderCheckboxes("Grade", model.Grades, s.POIGrades, cur.kind == stopGrades, m.gradeCursor, stop{kind: stopGrades}.row(), label),
	)

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render(""),
		ui.Button("Reset", cur.kind == stopReset),
		" ",
		ui.Button("Search", cur.kind == stopSearch),
	)
	rows = append(rows, buttons)

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCheckboxes(title string, opts []model.Option, selected []int, focused bool, cursor, row int, label func(string, int) string) string {
	var lines []string
	var line []string
	for i, o := range opts {
		line = append(line, ui.Checkbox(o.Label, slices.Contains(selected, o.ID), focused && i == cursor))
		if len(line) == checkboxesPerLine || i == len(opts)-1 {
			lines = append(lines, strings.Join(line, "  "))
			line = nil
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, label(title, row), strings.Join(lines, "\n"))
}

// Hints returns the key hints for the focused element.
func (m Model) Hints() string {
	cur := m.current()
	inList := false
	if cur.kind == stopMode || cur.kind == stopValue {
		s := m.manager.State()
		inList = s.Condition(cur.field).Mode == model.MatchInList
	}
	switch cur.kind {
	case stopMode:
		h := "<-/->:match mode"
		if inList {
			h += "  ctrl+n:add value"
		}
		return h + "  tab:next  ctrl+r:reset"
	case stopValue:
		h := "type to edit"
		if inList {
			h += "  ctrl+n:add  ctrl+x:remove"
		}
		return h + "  tab:next  ctrl+r:reset"
	case stopCategories, stopGrades:
		return "<-/->:move  space:toggle  tab:next"
	default:
		return "enter:press  <-/->:switch  tab:next"
	}
}
