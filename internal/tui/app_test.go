package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/altinukshini/poi-admin/internal/bookmarks"
	"github.com/altinukshini/poi-admin/internal/config"
	"github.com/altinukshini/poi-admin/internal/model"
	"github.com/altinukshini/poi-admin/internal/query"
	"github.com/altinukshini/poi-admin/internal/router"
	"github.com/altinukshini/poi-admin/internal/searchform"
	"github.com/altinukshini/poi-admin/internal/tui/confirm"
	"github.com/altinukshini/poi-admin/internal/ui"
)

func newTestApp(t *testing.T, cfg config.Config, opts ...Option) App {
	t.Helper()
	return newTestAppWithLog(t, cfg, zerolog.Nop(), opts...)
}

func newTestAppWithLog(t *testing.T, cfg config.Config, log zerolog.Logger, opts ...Option) App {
	t.Helper()
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = t.TempDir()
	}
	store, err := bookmarks.NewStore(cfg.ConfigDir)
	require.NoError(t, err)
	opts = append([]Option{
		WithClipboard(func(string) error { return nil }),
		WithBrowser(func(string) error { return nil }),
	}, opts...)
	app, err := NewApp(cfg, store, log, opts...)
	require.NoError(t, err)

	m, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return *m.(*App)
}

func update(a App, msg tea.Msg) (App, tea.Cmd) {
	m, cmd := a.Update(msg)
	return *m.(*App), cmd
}

// run executes cmd and feeds its message back into the app.
func run(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	require.NotNil(t, cmd)
	a, _ = update(a, cmd())
	return a
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func cafeState() model.State {
	s := model.DefaultState()
	s.Name = model.FilterCondition{Mode: model.MatchInList, Values: []string{"", "cafe"}}
	s.POIGrades = []int{7}
	return s
}

func locationFor(t *testing.T, s model.State) string {
	t.Helper()
	loc, err := query.Location(router.MainPath, s)
	require.NoError(t, err)
	return loc
}

func TestStartsOnSearchPage(t *testing.T) {
	app := newTestApp(t, config.Config{Location: "/"})
	if app.route != router.RouteMain {
		t.Fatalf("route = %v, want main", app.route)
	}
	if app.Location() != "/" {
		t.Errorf("Location() = %q, want /", app.Location())
	}

	app, _ = update(app, tea.KeyMsg{Type: tea.KeyTab})
	app, _ = update(app, keyRunes("cafe"))

	if got := app.manager.State().Name.Values; !cmp.Equal(got, []string{"cafe"}) {
		t.Errorf("name values = %q", got)
	}
	if !strings.HasPrefix(app.Location(), "/?search-query=") {
		t.Errorf("Location() = %q, want the encoded search", app.Location())
	}
	if app.history.Len() != 1 {
		t.Errorf("history grew to %d entries", app.history.Len())
	}
	if !strings.Contains(app.View(), "search-query") {
		t.Error("header should show the current location")
	}
}

func TestStartLocationAdopted(t *testing.T) {
	loc := locationFor(t, cafeState())
	app := newTestApp(t, config.Config{Location: loc})

	if diff := cmp.Diff(cafeState(), app.manager.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	if app.Location() != loc {
		t.Errorf("Location() = %q, want %q", app.Location(), loc)
	}
}

func TestUndecodableStartFallsBack(t *testing.T) {
	var buf bytes.Buffer
	app := newTestAppWithLog(t, config.Config{Location: "/?search-query=nope"}, zerolog.New(&buf))

	if !app.manager.State().IsDefault() {
		t.Error("undecodable query should yield the default state")
	}
	if app.Location() != "/" {
		t.Errorf("Location() = %q, want /", app.Location())
	}
	if !strings.Contains(buf.String(), "discarding undecodable search query") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestResetFlow(t *testing.T) {
	loc := locationFor(t, cafeState())
	app := newTestApp(t, config.Config{Location: loc})

	_, cmd := update(app, tea.KeyMsg{Type: tea.KeyCtrlR})
	app = run(t, app, cmd)
	if !app.confirmDialog.IsActive() {
		t.Fatal("ctrl+r should open the confirm dialog")
	}
	if !strings.Contains(app.View(), searchform.ResetPrompt) {
		t.Error("dialog should ask the reset question")
	}

	app, cmd = update(app, keyRunes("n"))
	app = run(t, app, cmd)
	if app.Location() != loc {
		t.Errorf("declined reset changed location to %q", app.Location())
	}

	_, cmd = update(app, tea.KeyMsg{Type: tea.KeyCtrlR})
	app = run(t, app, cmd)
	app, cmd = update(app, keyRunes("y"))
	app = run(t, app, cmd)
	if !app.manager.State().IsDefault() {
		t.Error("confirmed reset should restore the default state")
	}
	if app.Location() != "/" {
		t.Errorf("Location() after reset = %q, want /", app.Location())
	}
	if app.status.Text != "Search conditions reset" {
		t.Errorf("status = %q", app.status.Text)
	}
}

func TestUnrelatedConfirmResultIgnored(t *testing.T) {
	loc := locationFor(t, cafeState())
	app := newTestApp(t, config.Config{Location: loc})
	app, _ = update(app, confirm.ResultMsg{Confirmed: true, Action: "other"})
	if app.Location() != loc {
		t.Errorf("unrelated confirmation changed location to %q", app.Location())
	}
}

func TestSubmitShowsForm(t *testing.T) {
	app := newTestApp(t, config.Config{Location: locationFor(t, cafeState())})
	app, _ = update(app, ui.SubmittedMsg{Pretty: `{"name": {}}`})
	if !strings.Contains(app.status.Text, "Search submitted") {
		t.Errorf("status = %q", app.status.Text)
	}
	if !strings.Contains(app.View(), "Last submitted search") {
		t.Error("view should show the submitted form")
	}
}

func TestLoginFlow(t *testing.T) {
	h, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	requested := locationFor(t, cafeState())
	app := newTestApp(t, config.Config{Location: requested, User: "admin", PasswordHash: string(h)})

	if app.route != router.RouteLogin || app.Location() != router.LoginPath {
		t.Fatalf("started at %v %q, want the login page", app.route, app.Location())
	}
	if app.pending == nil || app.pending.String() != requested {
		t.Fatalf("pending = %v, want %q", app.pending, requested)
	}

	app, _ = update(app, ui.LoggedInMsg{User: "admin"})
	if app.route != router.RouteMain {
		t.Fatalf("route after login = %v", app.route)
	}
	if app.Location() != requested {
		t.Errorf("Location() after login = %q, want %q", app.Location(), requested)
	}
	if app.history.Len() != 1 {
		t.Errorf("login grew history to %d entries", app.history.Len())
	}
	if !strings.Contains(app.View(), "admin") {
		t.Error("header should show the signed in user")
	}
}

func TestLoginFromBareSearch(t *testing.T) {
	h, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	app := newTestApp(t, config.Config{Location: "/", User: "admin", PasswordHash: string(h)})

	app, _ = update(app, ui.LoggedInMsg{User: "admin"})
	if app.route != router.RouteMain || app.Location() != "/" {
		t.Errorf("after login at %v %q, want the search page", app.route, app.Location())
	}
}

func TestLoginSkippedWithoutCredentials(t *testing.T) {
	app := newTestApp(t, config.Config{Location: "/login"})
	if app.route != router.RouteMain || app.Location() != "/" {
		t.Errorf("at %v %q, want the search page", app.route, app.Location())
	}
}

func TestNotFound(t *testing.T) {
	app := newTestApp(t, config.Config{Location: "/nowhere"})
	if app.route != router.RouteNotFound {
		t.Fatalf("route = %v, want not-found", app.route)
	}
	if !strings.Contains(app.View(), "No page at /nowhere") {
		t.Error("view should explain the missing page")
	}
	app, _ = update(app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.route != router.RouteMain || app.Location() != "/" {
		t.Errorf("enter should open the search, at %v %q", app.route, app.Location())
	}
}

func TestCopyAndOpen(t *testing.T) {
	var copied, opened string
	loc := locationFor(t, cafeState())
	app := newTestApp(t,
		config.Config{Location: loc, BaseURL: "https://admin.example.com"},
		WithClipboard(func(s string) error { copied = s; return nil }),
		WithBrowser(func(s string) error { opened = s; return nil }),
	)

	_, cmd := update(app, tea.KeyMsg{Type: tea.KeyCtrlY})
	app = run(t, app, cmd)
	if copied != loc {
		t.Errorf("copied %q, want %q", copied, loc)
	}
	if !strings.HasPrefix(app.status.Text, "Copied") {
		t.Errorf("status = %q", app.status.Text)
	}

	_, cmd = update(app, tea.KeyMsg{Type: tea.KeyCtrlO})
	app = run(t, app, cmd)
	if want := "https://admin.example.com" + loc; opened != want {
		t.Errorf("opened %q, want %q", opened, want)
	}
}

func TestOpenWithoutBaseURL(t *testing.T) {
	app := newTestApp(t, config.Config{Location: "/"})
	_, cmd := update(app, tea.KeyMsg{Type: tea.KeyCtrlO})
	app = run(t, app, cmd)
	if !app.status.Err || !strings.Contains(app.status.Text, "base URL") {
		t.Errorf("status = %+v, want a base URL error", app.status)
	}
}

func TestBookmarkSaveAndOpen(t *testing.T) {
	loc := locationFor(t, cafeState())
	app := newTestApp(t, config.Config{Location: loc})

	app, _ = update(app, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !app.naming {
		t.Fatal("ctrl+s should prompt for a name")
	}
	app, _ = update(app, keyRunes("cafes"))
	app, cmd := update(app, tea.KeyMsg{Type: tea.KeyEnter})
	app = run(t, app, cmd)
	if app.status.Text != `Saved "cafes"` {
		t.Fatalf("status = %q", app.status.Text)
	}

	app.manager.ResetAll(searchform.ConfirmFunc(func(string) bool { return true }))
	if app.Location() != "/" {
		t.Fatalf("Location() after reset = %q", app.Location())
	}

	app, cmd = update(app, tea.KeyMsg{Type: tea.KeyCtrlB})
	app = run(t, app, cmd)
	if !app.showBookmarks || !strings.Contains(app.View(), "cafes") {
		t.Fatal("ctrl+b should list the saved search")
	}

	app, cmd = update(app, tea.KeyMsg{Type: tea.KeyEnter})
	app = run(t, app, cmd)
	if app.showBookmarks {
		t.Error("opening a bookmark should close the picker")
	}
	if app.Location() != loc {
		t.Errorf("Location() = %q, want %q", app.Location(), loc)
	}
	if diff := cmp.Diff(cafeState(), app.manager.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	if got := app.searchBox.View(); !strings.Contains(got, "cafe") {
		t.Error("form should show the restored values")
	}
}

func TestBookmarkOpenThenBack(t *testing.T) {
	loc := locationFor(t, cafeState())
	app := newTestApp(t, config.Config{Location: "/"})
	_, err := app.store.Save("cafes", loc)
	require.NoError(t, err)

	app.manager.ToggleGrade(1)
	before := app.Location()

	app, _ = update(app, ui.BookmarkChosenMsg{Bookmark: bookmarks.Bookmark{Name: "cafes", Location: loc}})
	if app.Location() != loc || app.history.Len() != 2 {
		t.Fatalf("after open at %q with %d entries, want %q with 2", app.Location(), app.history.Len(), loc)
	}

	app, _ = update(app, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if app.Location() != before {
		t.Errorf("Location() after back = %q, want %q", app.Location(), before)
	}
	if got := app.manager.State().POIGrades; !cmp.Equal(got, []int{1}) {
		t.Errorf("grades after back = %v, want [1]", got)
	}

	app, _ = update(app, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if app.status.Text != "No previous page" {
		t.Errorf("status = %q, want No previous page", app.status.Text)
	}
}

func TestBookmarkDelete(t *testing.T) {
	app := newTestApp(t, config.Config{Location: "/"})
	_, err := app.store.Save("old", "/")
	require.NoError(t, err)

	app, cmd := update(app, tea.KeyMsg{Type: tea.KeyCtrlB})
	app = run(t, app, cmd)
	app, cmd = update(app, keyRunes("d"))
	app = run(t, app, cmd)
	if app.status.Text != `Deleted "old"` {
		t.Errorf("status = %q", app.status.Text)
	}
	if _, err := app.store.Get("old"); err == nil {
		t.Error("bookmark still stored")
	}
}

func TestHelpOverlay(t *testing.T) {
	app := newTestApp(t, config.Config{Location: "/"})
	app, _ = update(app, tea.KeyMsg{Type: tea.KeyF1})
	if !strings.Contains(app.View(), "Copy location") {
		t.Error("F1 should show help")
	}
	app, _ = update(app, keyRunes("x"))
	if app.showHelp {
		t.Error("any key should close help")
	}
}
