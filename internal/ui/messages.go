package ui

import (
	"github.com/altinukshini/poi-admin/internal/bookmarks"
)

type StatusMsg struct {
	Text string
}

// Form messages
type ResetRequestedMsg struct{}

type SubmittedMsg struct {
	Pretty string
	Err    error
}

type LoggedInMsg struct {
	User string
}

// Side effect results
type ClipboardMsg struct {
	Location string
	Err      error
}

type BrowserMsg struct {
	URL string
	Err error
}

// Bookmark messages
type BookmarksLoadedMsg struct {
	Bookmarks []bookmarks.Bookmark
	Err       error
}

type BookmarkSavedMsg struct {
	Bookmark bookmarks.Bookmark
	Err      error
}

type BookmarkDeletedMsg struct {
	Name string
	Err  error
}

// BookmarkChosenMsg asks the shell to open a saved location.
type BookmarkChosenMsg struct {
	Bookmark bookmarks.Bookmark
}

type BookmarksClosedMsg struct{}
