package router

// History is a browser-style stack of locations. The entry at the cursor is
// the current location.
type History struct {
	entries []Location
	cursor  int
}

// NewHistory starts a history at start.
func NewHistory(start Location) *History {
	return &History{entries: []Location{start}}
}

// Current returns the current location.
func (h *History) Current() Location {
	return h.entries[h.cursor]
}

// Path returns the path of the current location.
func (h *History) Path() string {
	return h.Current().Path
}

// Len returns the number of entries in the stack.
func (h *History) Len() int {
	return len(h.entries)
}

// Push adds loc after the current entry, dropping any forward entries.
func (h *History) Push(loc Location) {
	h.entries = append(h.entries[:h.cursor+1], loc)
	h.cursor++
}

// Replace swaps the current entry for the parsed location. Unparseable
// locations are ignored.
func (h *History) Replace(location string) {
	loc, err := Parse(location)
	if err != nil {
		return
	}
	h.ReplaceLocation(loc)
}

// ReplaceLocation swaps the current entry for loc.
func (h *History) ReplaceLocation(loc Location) {
	h.entries[h.cursor] = loc
}

// Back moves to the previous entry. It reports false at the first entry.
func (h *History) Back() bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	return true
}
