package searchbox

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/altinukshini/poi-admin/internal/model"
	"github.com/altinukshini/poi-admin/internal/query"
	"github.com/altinukshini/poi-admin/internal/router"
	"github.com/altinukshini/poi-admin/internal/searchform"
	"github.com/altinukshini/poi-admin/internal/ui"
)

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyUp       = tea.KeyMsg{Type: tea.KeyUp}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft     = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight    = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace    = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyAdd      = tea.KeyMsg{Type: tea.KeyCtrlN}
	keyRemove   = tea.KeyMsg{Type: tea.KeyCtrlX}
	keyReset    = tea.KeyMsg{Type: tea.KeyCtrlR}
)

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newBox(t *testing.T) (Model, *searchform.Manager, *router.History) {
	t.Helper()
	h := router.NewHistory(router.Location{Path: router.MainPath})
	mgr := searchform.New(h)
	mgr.Mount(h.Current().Query)
	return New(mgr), mgr, h
}

// send delivers msgs in order and discards the commands, which are cursor
// blinks for focus changes.
func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestTypeIntoValue(t *testing.T) {
	box, mgr, h := newBox(t)
	if box.EditingText() {
		t.Fatal("focus should start on the first match mode")
	}

	box = send(box, keyTab, typed("cafe"))
	if !box.EditingText() {
		t.Fatal("tab should move focus into the first value")
	}
	if got := mgr.State().Name.Values; !cmp.Equal(got, []string{"cafe"}) {
		t.Errorf("name values = %q, want [cafe]", got)
	}
	if !strings.Contains(h.Current().String(), "search-query=") {
		t.Errorf("location %q was not updated", h.Current())
	}
	if h.Len() != 1 {
		t.Errorf("typing grew history to %d entries", h.Len())
	}
}

func TestCursorMovesKeepDecodedValue(t *testing.T) {
	want := "a\tb\n" + strings.Repeat("x", 300)
	start := model.DefaultState()
	start.Name.Values = []string{want}
	raw, err := query.Location(router.MainPath, start)
	if err != nil {
		t.Fatal(err)
	}
	loc, err := router.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}

	h := router.NewHistory(loc)
	mgr := searchform.New(h)
	mgr.Mount(h.Current().Query)
	before := h.Current().String()

	box := New(mgr)
	box = send(box, keyTab, keyRight, keyLeft, keyLeft, struct{}{})
	if !box.EditingText() {
		t.Fatal("tab should move focus into the first value")
	}

	if got := mgr.State().Name.Values[0]; got != want {
		t.Errorf("value changed without an edit: len %d, want len %d", len(got), len(want))
	}
	if got := h.Current().String(); got != before {
		t.Errorf("location changed without an edit:\n got %s\nwant %s", got, before)
	}
}

func TestModeCycleAndInList(t *testing.T) {
	box, mgr, _ := newBox(t)

	box = send(box, keyRight)
	if got := mgr.State().Name.Mode; got != model.MatchEquals {
		t.Fatalf("mode after right = %q, want =", got)
	}
	box = send(box, keyLeft, keyLeft)
	if got := mgr.State().Name.Mode; got != model.MatchInList {
		t.Fatalf("mode after wrapping left = %q, want in", got)
	}

	box = send(box, keyAdd, typed("cafe"))
	want := model.FilterCondition{Mode: model.MatchInList, Values: []string{"", "cafe"}}
	if diff := cmp.Diff(want, mgr.State().Name); diff != "" {
		t.Errorf("name mismatch (-want +got):\n%s", diff)
	}
	if cur := box.current(); cur.kind != stopValue || cur.index != 1 {
		t.Errorf("focus after add = %+v, want the new value", cur)
	}
	if !strings.Contains(box.Hints(), "ctrl+x") {
		t.Errorf("hints %q should offer removal", box.Hints())
	}

	box = send(box, keyRemove)
	if got := mgr.State().Name.Values; !cmp.Equal(got, []string{""}) {
		t.Errorf("values after remove = %q, want [\"\"]", got)
	}
	if cur := box.current(); cur.kind != stopValue || cur.index != 0 {
		t.Errorf("focus after remove = %+v, want value 0", cur)
	}

	// the last value stays
	box = send(box, keyRemove)
	if got := mgr.State().Name.Values; len(got) != 1 {
		t.Errorf("last value was removed: %q", got)
	}
}

func TestAddValueOutsideInList(t *testing.T) {
	box, mgr, _ := newBox(t)
	box = send(box, keyAdd)
	if got := mgr.State().Name.Values; len(got) != 1 {
		t.Errorf("add in contains mode changed values to %q", got)
	}
	if !box.EditingText() {
		t.Error("add should still land on the value input")
	}
}

func TestModeSwitchClearsInputs(t *testing.T) {
	box, mgr, _ := newBox(t)
	box = send(box, keyTab, typed("seoul"), keyShiftTab, keyRight)

	if got := mgr.State().Name.Values; !cmp.Equal(got, []string{""}) {
		t.Errorf("values after mode switch = %q", got)
	}
	if v := box.inputs[model.FieldName][0].Value(); v != "" {
		t.Errorf("input still shows %q after mode switch", v)
	}
}

func TestCheckboxes(t *testing.T) {
	box, mgr, _ := newBox(t)

	box = send(box, keyDown, keyDown, keyDown, keyDown)
	if cur := box.current(); cur.kind != stopCategories {
		t.Fatalf("four downs should reach categories, at %+v", cur)
	}

	box = send(box, keySpace, keyRight, keySpace)
	if got := mgr.State().POITypeIDs; !cmp.Equal(got, []int{2, 3}) {
		t.Errorf("categories = %v, want [2 3]", got)
	}
	box = send(box, keyLeft, keySpace)
	if got := mgr.State().POITypeIDs; !cmp.Equal(got, []int{3}) {
		t.Errorf("categories = %v, want [3]", got)
	}

	box = send(box, keyDown, keyLeft, keyEnter)
	if got := mgr.State().POIGrades; !cmp.Equal(got, []int{10}) {
		t.Errorf("grades = %v, want [10]", got)
	}

	box = send(box, keyUp, keyUp)
	if cur := box.current(); cur.kind != stopMode || cur.field != model.FieldZoneName {
		t.Errorf("two ups from grades = %+v, want zone mode", cur)
	}
}

func TestResetRequest(t *testing.T) {
	box, _, _ := newBox(t)
	_, cmd := box.Update(keyReset)
	if cmd == nil {
		t.Fatal("ctrl+r returned no command")
	}
	if _, ok := cmd().(ui.ResetRequestedMsg); !ok {
		t.Error("ctrl+r should request a reset")
	}

	box = send(box, keyShiftTab, keyLeft)
	if cur := box.current(); cur.kind != stopReset {
		t.Fatalf("focus = %+v, want reset button", cur)
	}
	_, cmd = box.Update(keyEnter)
	if _, ok := cmd().(ui.ResetRequestedMsg); !ok {
		t.Error("enter on Reset should request a reset")
	}
}

func TestSubmit(t *testing.T) {
	box, mgr, _ := newBox(t)
	mgr.ToggleCategory(7)

	box = send(box, keyShiftTab)
	if cur := box.current(); cur.kind != stopSearch {
		t.Fatalf("shift+tab from the top should wrap to Search, at %+v", cur)
	}
	_, cmd := box.Update(keyEnter)
	msg, ok := cmd().(ui.SubmittedMsg)
	if !ok {
		t.Fatal("enter on Search should submit")
	}
	if msg.Err != nil {
		t.Fatalf("submit error: %v", msg.Err)
	}
	if !strings.Contains(msg.Pretty, "poiTypeIds") || !strings.Contains(msg.Pretty, "7") {
		t.Errorf("pretty form = %q", msg.Pretty)
	}
}

func TestSyncAfterExternalChange(t *testing.T) {
	box, mgr, _ := newBox(t)
	mgr.SetMatchMode(model.FieldCityName, model.MatchInList)
	mgr.AddValue(model.FieldCityName)
	mgr.SetValueAt(model.FieldCityName, 1, "Busan")
	box.Sync()

	if n := len(box.inputs[model.FieldCityName]); n != 2 {
		t.Fatalf("city inputs = %d, want 2", n)
	}
	view := box.View()
	for _, want := range []string{"Busan", "in list", "Category", "Grade", "Search"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	mgr.ResetAll(searchform.ConfirmFunc(func(string) bool { return true }))
	box.Sync()
	if n := len(box.inputs[model.FieldCityName]); n != 1 {
		t.Errorf("city inputs after reset = %d, want 1", n)
	}
}
