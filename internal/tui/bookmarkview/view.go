// Package bookmarkview lists saved searches.
package bookmarkview

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/poi-admin/internal/bookmarks"
	"github.com/altinukshini/poi-admin/internal/query"
	"github.com/altinukshini/poi-admin/internal/router"
	"github.com/altinukshini/poi-admin/internal/ui"
)

type bookmarkItem struct {
	b       bookmarks.Bookmark
	summary string
}

func newItem(b bookmarks.Bookmark) bookmarkItem {
	return bookmarkItem{b: b, summary: describe(b.Location)}
}

func (i bookmarkItem) Title() string {
	return fmt.Sprintf("%s  %s", i.b.Name, ui.StyleMuted.Render(relativeTime(i.b.SavedAt)))
}

func (i bookmarkItem) Description() string {
	return i.summary
}

func (i bookmarkItem) FilterValue() string {
	return i.b.Name + " " + i.summary
}

// describe summarizes the search carried by a saved location.
func describe(location string) string {
	loc, err := router.Parse(location)
	if err != nil {
		return ui.StyleFailure.Render("unreadable location")
	}
	s, present, err := query.FromValues(loc.Query)
	switch {
	case err != nil:
		return ui.StyleFailure.Render("unreadable search")
	case !present || s.IsDefault():
		return ui.StyleMuted.Render("no conditions")
	default:
		return ui.StyleInfo.Render(s.Summary())
	}
}

// Model is the saved search picker.
type Model struct {
	list    list.Model
	count   int
	loading bool
	err     error
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(2)
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.KeyMap.Filter = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter"))
	l.DisableQuitKeybindings()

	return Model{list: l, loading: true}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.BookmarksLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.count = len(msg.Bookmarks)
		items := make([]list.Item, len(msg.Bookmarks))
		for i, b := range msg.Bookmarks {
			items[i] = newItem(b)
		}
		return m, m.list.SetItems(items)

	case tea.WindowSizeMsg:
		// Reserve one line for the header.
		m.list.SetSize(msg.Width, msg.Height-1)

	case tea.KeyMsg:
		if !m.IsFiltering() {
			switch {
			case key.Matches(msg, ui.Keys.Back):
				if m.list.FilterState() == list.FilterApplied {
					m.list.ResetFilter()
					return m, nil
				}
				return m, func() tea.Msg { return ui.BookmarksClosedMsg{} }
			case key.Matches(msg, ui.Keys.Enter):
				if b := m.Selected(); b != nil {
					chosen := *b
					return m, func() tea.Msg { return ui.BookmarkChosenMsg{Bookmark: chosen} }
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return "\n  Loading bookmarks..."
	}
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v", m.err)
	}
	if m.count == 0 {
		return "\n  No saved searches.\n\n  Press ctrl+s on the search page to save one."
	}
	header := ui.StyleMuted.Render(fmt.Sprintf("  %d saved searches | enter: open  d: delete  /: filter  esc: back", m.count))
	return header + "\n" + m.list.View()
}

// Selected returns the highlighted bookmark, or nil.
func (m Model) Selected() *bookmarks.Bookmark {
	if item, ok := m.list.SelectedItem().(bookmarkItem); ok {
		return &item.b
	}
	return nil
}

// IsFiltering returns true when the user is typing a filter.
func (m Model) IsFiltering() bool {
	return m.list.FilterState() == list.Filtering
}

// relativeTime returns a human-readable relative time string.
func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		if m := int(d.Minutes()); m > 1 {
			return fmt.Sprintf("%d minutes ago", m)
		}
		return "1 minute ago"
	case d < 24*time.Hour:
		if h := int(d.Hours()); h > 1 {
			return fmt.Sprintf("%d hours ago", h)
		}
		return "1 hour ago"
	default:
		if days := int(d.Hours() / 24); days > 1 {
			return fmt.Sprintf("%d days ago", days)
		}
		return "1 day ago"
	}
}
