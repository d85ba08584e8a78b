package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Tab       key.Binding
	ShiftTab  key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	Back      key.Binding
	PrevPage  key.Binding
	Toggle    key.Binding
	AddValue  key.Binding
	RemoveVal key.Binding
	Reset     key.Binding
	Copy      key.Binding
	Open      key.Binding
	Save      key.Binding
	Bookmarks key.Binding
	Delete    key.Binding
}

// Keys avoids plain printable keys outside of checkbox rows and lists, since
// most of the form is text inputs.
var Keys = KeyMap{
	Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Help:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "help")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
	ShiftTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev")),
	Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("up", "prev row")),
	Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("down", "next row")),
	Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("<-", "prev option")),
	Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("->", "next option")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	PrevPage:  key.NewBinding(key.WithKeys("alt+left"), key.WithHelp("alt+<-", "previous page")),
	Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	AddValue:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add value")),
	RemoveVal: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove value")),
	Reset:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
	Copy:      key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy location")),
	Open:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open in browser")),
	Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save bookmark")),
	Bookmarks: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "bookmarks")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
}
