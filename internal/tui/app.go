package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cli/go-gh/v2/pkg/browser"
	"github.com/rs/zerolog"

	"github.com/altinukshini/poi-admin/internal/auth"
	"github.com/altinukshini/poi-admin/internal/bookmarks"
	"github.com/altinukshini/poi-admin/internal/config"
	"github.com/altinukshini/poi-admin/internal/model"
	"github.com/altinukshini/poi-admin/internal/router"
	"github.com/altinukshini/poi-admin/internal/searchform"
	"github.com/altinukshini/poi-admin/internal/tui/bookmarkview"
	"github.com/altinukshini/poi-admin/internal/tui/confirm"
	"github.com/altinukshini/poi-admin/internal/tui/login"
	"github.com/altinukshini/poi-admin/internal/tui/searchbox"
	"github.com/altinukshini/poi-admin/internal/ui"
)

const actionReset = "reset-search"

// Option configures an App.
type Option func(*App)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(a *App) { a.copyText = fn }
}

// WithBrowser replaces the URL opener.
func WithBrowser(fn func(string) error) Option {
	return func(a *App) { a.openURL = fn }
}

// WithSubmitter passes s to the search form.
func WithSubmitter(s searchform.Submitter) Option {
	return func(a *App) { a.formOpts = append(a.formOpts, searchform.WithSubmitter(s)) }
}

type App struct {
	cfg     config.Config
	log     zerolog.Logger
	creds   auth.Credentials
	routes  *router.Routes
	history *router.History
	manager *searchform.Manager
	store   *bookmarks.Store

	copyText func(string) error
	openURL  func(string) error
	formOpts []searchform.Option

	// Views
	searchBox     searchbox.Model
	loginView     login.Model
	bookmarkView  bookmarkview.Model
	confirmDialog confirm.Model
	namePrompt    textinput.Model

	// State
	route         router.Route
	pending       *router.Location // requested before login
	user          string
	naming        bool
	showBookmarks bool
	showHelp      bool
	lastSubmit    string
	width         int
	height        int
	status        Status
}

// NewApp builds the console starting at cfg.Location. With a login
// configured, the console starts on the login page and moves to the requested
// location once signed in.
func NewApp(cfg config.Config, store *bookmarks.Store, log zerolog.Logger, opts ...Option) (App, error) {
	start, err := router.Parse(cfg.Location)
	if err != nil {
		return App{}, err
	}

	a := App{
		cfg:          cfg,
		log:          log,
		creds:        cfg.Credentials(),
		routes:       router.NewRoutes(),
		store:        store,
		copyText:     clipboard.WriteAll,
		openURL:      browser.New(cfg.Browser, io.Discard, io.Discard).Browse,
		bookmarkView: bookmarkview.New(),
	}
	for _, opt := range opts {
		opt(&a)
	}

	if a.creds.Enabled() {
		if a.routes.Resolve(start) != router.RouteLogin {
			requested := start
			a.pending = &requested
		}
		start = router.Location{Path: router.LoginPath}
	}
	a.history = router.NewHistory(start)

	a.manager = searchform.New(a.history, append([]searchform.Option{searchform.WithLogger(log)}, a.formOpts...)...)
	a.manager.OnCommit(func(_ model.State, location string) {
		log.Debug().Str("location", location).Msg("location replaced")
	})

	a.enterRoute()
	return a, nil
}

// Location returns the current location.
func (a App) Location() string {
	return a.history.Current().String()
}

func (a App) Init() tea.Cmd {
	if a.route == router.RouteLogin {
		return a.loginView.Init()
	}
	return nil
}

// enterRoute resolves the current location and sets up its page.
func (a *App) enterRoute() tea.Cmd {
	a.route = a.routes.Resolve(a.history.Current())
	switch a.route {
	case router.RouteLogin:
		if !a.creds.Enabled() {
			a.history.ReplaceLocation(router.Location{Path: router.MainPath})
			return a.enterRoute()
		}
		a.loginView = login.New(a.creds, a.log)
		a.propagateSize()
		return a.loginView.Init()
	case router.RouteMain:
		a.manager.Mount(a.history.Current().Query)
		a.searchBox = searchbox.New(a.manager)
		a.propagateSize()
	case router.RouteNotFound:
		a.log.Warn().Str("location", a.Location()).Msg("no page at location")
	}
	return nil
}

// --- Side effects ---

func (a App) copyLocation() tea.Cmd {
	loc := a.Location()
	copyText := a.copyText
	return func() tea.Msg {
		return ui.ClipboardMsg{Location: loc, Err: copyText(loc)}
	}
}

func (a App) openInBrowser() tea.Cmd {
	target, err := a.cfg.OpenURL(a.Location())
	if err != nil {
		return func() tea.Msg { return ui.BrowserMsg{Err: err} }
	}
	open := a.openURL
	return func() tea.Msg {
		return ui.BrowserMsg{URL: target, Err: open(target)}
	}
}

func (a App) saveBookmark(name string) tea.Cmd {
	loc := a.Location()
	store := a.store
	return func() tea.Msg {
		b, err := store.Save(name, loc)
		return ui.BookmarkSavedMsg{Bookmark: b, Err: err}
	}
}

func (a App) loadBookmarks() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		bs, err := store.List()
		return ui.BookmarksLoadedMsg{Bookmarks: bs, Err: err}
	}
}

func (a App) deleteBookmark(name string) tea.Cmd {
	store := a.store
	return func() tea.Msg {
		return ui.BookmarkDeletedMsg{Name: name, Err: store.Delete(name)}
	}
}

// --- Update ---

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle confirm dialog result (arrives AFTER dialog deactivates itself)
	if result, ok := msg.(confirm.ResultMsg); ok {
		if result.Action == actionReset {
			if a.manager.ResetAll(result.Answer()) {
				a.setStatus("Search conditions reset")
				cmds = append(cmds, a.searchBox.Sync())
			} else {
				a.setStatus("Reset cancelled")
			}
		}
		return &a, tea.Batch(cmds...)
	}

	// Handle confirmation dialog input (key events while dialog is showing)
	if a.confirmDialog.IsActive() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			a.confirmDialog, cmd = a.confirmDialog.Update(msg)
			return &a, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.propagateSize()
		return &a, nil

	case ui.StatusMsg:
		a.setStatus(msg.Text)
		return &a, nil

	case ui.LoggedInMsg:
		a.user = msg.User
		dest := router.Location{Path: router.MainPath}
		if a.pending != nil {
			dest = *a.pending
			a.pending = nil
		}
		a.history.ReplaceLocation(dest)
		cmd := a.enterRoute()
		a.setStatus("Signed in as " + msg.User)
		return &a, cmd

	case ui.ResetRequestedMsg:
		a.confirmDialog = confirm.New("Reset search", searchform.ResetPrompt, actionReset)
		return &a, nil

	case ui.SubmittedMsg:
		if msg.Err != nil {
			a.setError("Search failed: %v", msg.Err)
			return &a, nil
		}
		a.lastSubmit = msg.Pretty
		summary := a.manager.State().Summary()
		if summary == "" {
			summary = "no conditions"
		}
		a.setStatus("Search submitted: " + summary)
		return &a, nil

	case ui.ClipboardMsg:
		if msg.Err != nil {
			a.setError("Copy failed: %v", msg.Err)
		} else {
			a.setStatus("Copied " + msg.Location)
		}
		return &a, nil

	case ui.BrowserMsg:
		if msg.Err != nil {
			a.setError("Open failed: %v", msg.Err)
		} else {
			a.setStatus("Opened " + msg.URL)
		}
		return &a, nil

	case ui.BookmarkSavedMsg:
		if msg.Err != nil {
			a.setError("Save failed: %v", msg.Err)
		} else {
			a.log.Info().Str("name", msg.Bookmark.Name).Str("location", msg.Bookmark.Location).Msg("bookmark saved")
			a.setStatus(fmt.Sprintf("Saved %q", msg.Bookmark.Name))
		}
		return &a, nil

	case ui.BookmarkDeletedMsg:
		if msg.Err != nil {
			a.setError("Delete failed: %v", msg.Err)
			return &a, nil
		}
		a.setStatus(fmt.Sprintf("Deleted %q", msg.Name))
		return &a, a.loadBookmarks()

	case ui.BookmarksLoadedMsg:
		var cmd tea.Cmd
		a.bookmarkView, cmd = a.bookmarkView.Update(msg)
		return &a, cmd

	case ui.BookmarkChosenMsg:
		loc, err := router.Parse(msg.Bookmark.Location)
		if err != nil {
			a.setError("Bookmark %q: %v", msg.Bookmark.Name, err)
			return &a, nil
		}
		a.showBookmarks = false
		a.history.Push(loc)
		a.log.Debug().Str("bookmark", msg.Bookmark.Name).Int("entries", a.history.Len()).Msg("opened bookmark")
		cmd := a.enterRoute()
		a.setStatus(fmt.Sprintf("Opened %q", msg.Bookmark.Name))
		return &a, cmd

	case ui.BookmarksClosedMsg:
		a.showBookmarks = false
		return &a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Everything else (cursor blinks, list ticks) goes to the visible view.
	var cmd tea.Cmd
	switch {
	case a.naming:
		a.namePrompt, cmd = a.namePrompt.Update(msg)
	case a.showBookmarks:
		a.bookmarkView, cmd = a.bookmarkView.Update(msg)
	case a.route == router.RouteLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case a.route == router.RouteMain:
		a.searchBox, cmd = a.searchBox.Update(msg)
	}
	return &a, cmd
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, ui.Keys.Quit) {
		return &a, tea.Quit
	}

	// Help overlay dismisses on any key
	if a.showHelp {
		a.showHelp = false
		return &a, nil
	}

	var cmd tea.Cmd

	if a.naming {
		switch {
		case key.Matches(msg, ui.Keys.Back):
			a.naming = false
			a.setStatus("Save cancelled")
			return &a, nil
		case key.Matches(msg, ui.Keys.Enter):
			name := strings.TrimSpace(a.namePrompt.Value())
			if name == "" {
				return &a, nil
			}
			a.naming = false
			return &a, a.saveBookmark(name)
		}
		a.namePrompt, cmd = a.namePrompt.Update(msg)
		return &a, cmd
	}

	if a.showBookmarks {
		if key.Matches(msg, ui.Keys.Delete) && !a.bookmarkView.IsFiltering() {
			if b := a.bookmarkView.Selected(); b != nil {
				return &a, a.deleteBookmark(b.Name)
			}
			return &a, nil
		}
		a.bookmarkView, cmd = a.bookmarkView.Update(msg)
		return &a, cmd
	}

	if key.Matches(msg, ui.Keys.Help) {
		a.showHelp = true
		return &a, nil
	}

	if key.Matches(msg, ui.Keys.PrevPage) && a.route != router.RouteLogin {
		if !a.history.Back() {
			a.setStatus("No previous page")
			return &a, nil
		}
		cmd = a.enterRoute()
		a.setStatus("Back to " + a.Location())
		return &a, cmd
	}

	switch a.route {
	case router.RouteLogin:
		a.loginView, cmd = a.loginView.Update(msg)
		return &a, cmd

	case router.RouteNotFound:
		if key.Matches(msg, ui.Keys.Enter) {
			a.history.ReplaceLocation(router.Location{Path: router.MainPath})
			return &a, a.enterRoute()
		}
		return &a, nil
	}

	switch {
	case key.Matches(msg, ui.Keys.Copy):
		return &a, a.copyLocation()
	case key.Matches(msg, ui.Keys.Open):
		return &a, a.openInBrowser()
	case key.Matches(msg, ui.Keys.Save):
		a.namePrompt = newNamePrompt()
		a.naming = true
		return &a, a.namePrompt.Focus()
	case key.Matches(msg, ui.Keys.Bookmarks):
		a.showBookmarks = true
		a.bookmarkView = bookmarkview.New()
		a.propagateSize()
		return &a, a.loadBookmarks()
	}

	a.searchBox, cmd = a.searchBox.Update(msg)
	return &a, cmd
}

func newNamePrompt() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "bookmark name"
	ti.CharLimit = 80
	ti.Width = 40
	return ti
}

func (a *App) setStatus(text string) {
	a.status = Status{Text: text}
}

func (a *App) setError(format string, args ...any) {
	a.status = Status{Text: fmt.Sprintf(format, args...), Err: true}
	a.log.Error().Msg(a.status.Text)
}

func (a *App) propagateSize() {
	// header(1) + status(1) + pane border(2)
	contentH := a.height - 4
	if contentH < 1 {
		contentH = 1
	}
	a.searchBox.SetSize(a.width-4, contentH)
	a.loginView.SetSize(a.width, a.height-2)
	a.bookmarkView, _ = a.bookmarkView.Update(
		tea.WindowSizeMsg{Width: a.width - 4, Height: contentH})
}

// --- View ---

func (a App) View() string {
	header := RenderHeader(a.Location(), a.pageName(), a.width)

	contentH := a.height - 4
	if contentH < 1 {
		contentH = 1
	}
	pane := ui.StylePaneFocused.Width(a.width - 2).Height(contentH)

	var content string
	switch a.route {
	case router.RouteLogin:
		content = a.loginView.View()
	case router.RouteNotFound:
		content = pane.Render(fmt.Sprintf("\n  No page at %s.\n\n  Press enter to open the search.", a.history.Path()))
	default:
		content = pane.Render(a.renderSearch())
	}

	switch {
	case a.showHelp:
		content = a.renderHelp(pane)
	case a.confirmDialog.IsActive():
		content = a.place(a.confirmDialog.View())
	case a.naming:
		content = a.place(a.renderNamePrompt())
	case a.showBookmarks:
		content = pane.Render(a.bookmarkView.View())
	}

	statusBar := RenderStatusBar(a.status, a.contextHints(), a.width)

	// Hard clamp: header(1) + statusbar(1) = 2 lines of chrome.
	maxContentLines := a.height - 2
	if maxContentLines > 0 {
		lines := strings.Split(content, "\n")
		if len(lines) > maxContentLines {
			content = strings.Join(lines[:maxContentLines], "\n")
		}
	}

	return header + "\n" + content + "\n" + statusBar
}

func (a App) pageName() string {
	if a.user != "" {
		return a.route.String() + " | " + a.user
	}
	return a.route.String()
}

func (a App) renderSearch() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary).MarginBottom(1).Render("POI Search")
	parts := []string{title, a.searchBox.View()}
	if a.lastSubmit != "" {
		parts = append(parts, "",
			ui.StyleMuted.Render("Last submitted search:"),
			ui.StyleInfo.Render(a.lastSubmit))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a App) renderNamePrompt() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary).Render("Save search"),
		"",
		a.namePrompt.View(),
		"",
		ui.StyleMuted.Render("enter: save  esc: cancel"),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Padding(1, 2).
		Width(56).
		Render(body)
}

func (a App) place(box string) string {
	if a.width > 0 && a.height > 2 {
		return lipgloss.Place(a.width, a.height-2, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (a App) contextHints() string {
	switch {
	case a.confirmDialog.IsActive():
		return "y:yes  n:no  tab:switch"
	case a.naming:
		return "enter:save  esc:cancel"
	case a.showBookmarks:
		return "enter:open  d:delete  /:filter  esc:back"
	}
	switch a.route {
	case router.RouteLogin:
		return "tab:next field  enter:sign in  ctrl+c:quit"
	case router.RouteNotFound:
		return "enter:open search  alt+<-:back  ctrl+c:quit"
	}
	return a.searchBox.Hints() + "  |  F1:help"
}

func (a App) renderHelp(pane lipgloss.Style) string {
	bold := lipgloss.NewStyle().Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Width(14)
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))

	row := func(k, d string) string {
		return "  " + keyStyle.Render(k) + desc.Render(d) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n" + bold.Render("  Navigation") + "\n\n")
	b.WriteString(row("tab", "Next control"))
	b.WriteString(row("shift+tab", "Previous control"))
	b.WriteString(row("up / down", "Previous / next row"))
	b.WriteString(row("alt+<-", "Previous page"))
	b.WriteString(row("ctrl+c", "Quit and print the location"))

	b.WriteString("\n" + bold.Render("  Search form") + "\n\n")
	b.WriteString(row("<- / ->", "Change match mode, move between checkboxes"))
	b.WriteString(row("ctrl+n", "Add a value (in list)"))
	b.WriteString(row("ctrl+x", "Remove the focused value (in list)"))
	b.WriteString(row("space", "Toggle category or grade"))
	b.WriteString(row("enter", "Press the focused button"))
	b.WriteString(row("ctrl+r", "Reset all conditions"))

	b.WriteString("\n" + bold.Render("  Location") + "\n\n")
	b.WriteString(row("ctrl+y", "Copy location to the clipboard"))
	b.WriteString(row("ctrl+o", "Open location in the browser"))
	b.WriteString(row("ctrl+s", "Save as bookmark"))
	b.WriteString(row("ctrl+b", "Saved searches"))

	b.WriteString("\n" + lipgloss.NewStyle().Foreground(ui.ColorMuted).Render("  Press any key to close") + "\n")

	return pane.Render(b.String())
}
