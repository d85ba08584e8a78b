// Package searchform owns the POI search form state and keeps it in sync with
// the search-query parameter of the current location.
//
// A Manager is driven from a single event loop and is not safe for concurrent
// use.
package searchform

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/altinukshini/poi-admin/internal/model"
	"github.com/altinukshini/poi-admin/internal/query"
)

// ResetPrompt is the question put to the Confirmer before a reset.
const ResetPrompt = "Reset all search conditions?"

// Navigator is the part of the router the form needs.
type Navigator interface {
	// Path returns the path of the current location, without query.
	Path() string
	// Replace swaps the current history entry for location.
	Replace(location string)
}

// Confirmer answers a yes/no question.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Confirm(message string) bool { return f(message) }

// Submitter receives the form state when a search is submitted.
type Submitter interface {
	Submit(s model.State) error
}

// Manager holds the form state and applies mutations to it.
type Manager struct {
	state     model.State
	nav       Navigator
	submitter Submitter
	log       zerolog.Logger
	observers []func(model.State, string)
	location  string
}

// Option configures a Manager.
type Option func(*Manager)

// WithSubmitter sets the collaborator that receives submitted searches.
func WithSubmitter(s Submitter) Option {
	return func(m *Manager) { m.submitter = s }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// New returns a Manager holding the default state. Call Mount to adopt the
// state carried by the current location.
func New(nav Navigator, opts ...Option) *Manager {
	m := &Manager{
		state: model.DefaultState(),
		nav:   nav,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnCommit registers fn to run after each synchronization with the committed
// state and the location it was written to.
func (m *Manager) OnCommit(fn func(s model.State, location string)) {
	m.observers = append(m.observers, fn)
}

// State returns a copy of the current state.
func (m *Manager) State() model.State {
	return m.state.Clone()
}

// Location returns the location written by the last synchronization.
func (m *Manager) Location() string {
	return m.location
}

// Mount adopts the state carried by params. An absent parameter yields the
// default state; an undecodable one is logged and also yields the default.
func (m *Manager) Mount(params url.Values) {
	m.log.Info().Msg("search form mounted")

	s, present, err := query.FromValues(params)
	switch {
	case err != nil:
		m.log.Error().Err(err).Str("param", query.Param).Msg("discarding undecodable search query")
		s = model.DefaultState()
	case !present:
		s = model.DefaultState()
	}
	m.state = s
	m.commit()
}

// SetMatchMode switches field to mode and clears its values to a single empty
// string.
func (m *Manager) SetMatchMode(field model.Field, mode model.MatchMode) {
	if !mode.Valid() {
		return
	}
	m.update(field, func(c *model.FilterCondition) bool {
		*c = model.NewCondition(mode)
		return true
	})
}

// SetValueAt replaces the value at index. Out-of-range indices are ignored.
// Invalid UTF-8 is replaced so the value survives encoding.
func (m *Manager) SetValueAt(field model.Field, index int, value string) {
	value = strings.ToValidUTF8(value, "\uFFFD")
	m.update(field, func(c *model.FilterCondition) bool {
		if index < 0 || index >= len(c.Values) || c.Values[index] == value {
			return false
		}
		c.Values[index] = value
		return true
	})
}

// AddValue appends an empty value. It only applies to in-list conditions.
func (m *Manager) AddValue(field model.Field) {
	m.update(field, func(c *model.FilterCondition) bool {
		if c.Mode != model.MatchInList {
			return false
		}
		c.Values = append(c.Values, "")
		return true
	})
}

// RemoveValueAt drops the value at index from an in-list condition. The last
// remaining value is never removed.
func (m *Manager) RemoveValueAt(field model.Field, index int) {
	m.update(field, func(c *model.FilterCondition) bool {
		if !CanRemove(*c) || index < 0 || index >= len(c.Values) {
			return false
		}
		c.Values = slices.Delete(c.Values, index, index+1)
		return true
	})
}

// CanRemove reports whether c offers a remove affordance for its values.
func CanRemove(c model.FilterCondition) bool {
	return c.Mode == model.MatchInList && len(c.Values) > 1
}

// ToggleCategory adds or removes a POI category. Unknown ids are ignored.
func (m *Manager) ToggleCategory(id int) {
	if !model.IsCategory(id) {
		return
	}
	m.state.POITypeIDs = toggle(m.state.POITypeIDs, id)
	m.commit()
}

// ToggleGrade adds or removes a POI grade. Unknown ids are ignored.
func (m *Manager) ToggleGrade(id int) {
	if !model.IsGrade(id) {
		return
	}
	m.state.POIGrades = toggle(m.state.POIGrades, id)
	m.commit()
}

// ResetAll restores the default state if c confirms. It reports whether the
// reset happened.
func (m *Manager) ResetAll(c Confirmer) bool {
	if !c.Confirm(ResetPrompt) {
		return false
	}
	m.state = model.DefaultState()
	m.commit()
	return true
}

// Submit logs the serialized form and hands the state to the submitter, if
// any. It returns the human-readable serialization.
func (m *Manager) Submit() (string, error) {
	enc, err := query.Encode(m.state)
	if err != nil {
		return "", err
	}
	pretty, err := query.Indent(enc, false)
	if err != nil {
		return "", err
	}
	m.log.Info().Str("form", pretty).Msg("search submitted")

	if m.submitter != nil {
		if err := m.submitter.Submit(m.State()); err != nil {
			return pretty, fmt.Errorf("submit search: %w", err)
		}
	}
	return pretty, nil
}

func (m *Manager) update(field model.Field, fn func(c *model.FilterCondition) bool) {
	c := m.state.Condition(field)
	if c == nil {
		return
	}
	if fn(c) {
		m.commit()
	}
}

// commit writes the current state to the location, replacing the history
// entry, and notifies observers.
func (m *Manager) commit() {
	loc, err := query.Location(m.nav.Path(), m.state)
	if err != nil {
		m.log.Error().Err(err).Msg("encode search query")
		return
	}
	m.location = loc
	m.nav.Replace(loc)

	s := m.State()
	for _, fn := range m.observers {
		fn(s, loc)
	}
}

func toggle(ids []int, id int) []int {
	if i := slices.Index(ids, id); i >= 0 {
		out := make([]int, 0, len(ids)-1)
		out = append(out, ids[:i]...)
		return append(out, ids[i+1:]...)
	}
	out := make([]int, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id)
}
