package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// MatchMode is the comparison applied to a text filter. The string values are
// the ones carried in shared links.
type MatchMode string

const (
	MatchContains MatchMode = "like"
	MatchEquals   MatchMode = "="
	MatchInList   MatchMode = "in"
)

// MatchModes lists the modes in selector order.
var MatchModes = []MatchMode{MatchContains, MatchEquals, MatchInList}

func (m MatchMode) Valid() bool {
	return slices.Contains(MatchModes, m)
}

func (m MatchMode) Label() string {
	switch m {
	case MatchContains:
		return "contains"
	case MatchEquals:
		return "equals"
	case MatchInList:
		return "in list"
	default:
		return string(m)
	}
}

// Field identifies one of the four text filters.
type Field int

const (
	FieldName Field = iota
	FieldPlaceID
	FieldCityName
	FieldZoneName
	fieldCount
)

// Fields returns the text filters in form order.
func Fields() []Field {
	return []Field{FieldName, FieldPlaceID, FieldCityName, FieldZoneName}
}

func (f Field) Valid() bool {
	return f >= FieldName && f < fieldCount
}

func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Place"
	case FieldPlaceID:
		return "Place ID"
	case FieldCityName:
		return "City"
	case FieldZoneName:
		return "Zone"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Key returns the field's key in the serialized state.
func (f Field) Key() string {
	switch f {
	case FieldName:
		return "name"
	case FieldPlaceID:
		return "googlePlaceId"
	case FieldCityName:
		return "cityName"
	case FieldZoneName:
		return "zoneName"
	default:
		return ""
	}
}

// Option is a named member of a fixed id enumeration.
type Option struct {
	ID    int
	Label string
}

// Categories is the POI type enumeration, in display order.
var Categories = []Option{
	{ID: 2, Label: "Sights"},
	{ID: 3, Label: "Activity"},
	{ID: 4, Label: "Lodging"},
	{ID: 5, Label: "Shopping"},
	{ID: 6, Label: "Restaurant"},
	{ID: 7, Label: "Cafe"},
	{ID: 10, Label: "Bar/Pub"},
}

// Grades is the POI grade enumeration, in display order.
var Grades = []Option{
	{ID: 1, Label: "Grade 1"},
	{ID: 2, Label: "Grade 2"},
	{ID: 3, Label: "Grade 3"},
	{ID: 4, Label: "User added"},
	{ID: 5, Label: "Needs recheck"},
	{ID: 6, Label: "Needs assignment"},
	{ID: 7, Label: "Temporarily closed"},
	{ID: 8, Label: "Permanently closed"},
	{ID: 9, Label: "Needs deletion"},
	{ID: 10, Label: "Duplicate"},
}

// IsCategory reports whether id belongs to Categories.
func IsCategory(id int) bool { return hasOption(Categories, id) }

// IsGrade reports whether id belongs to Grades.
func IsGrade(id int) bool { return hasOption(Grades, id) }

func hasOption(opts []Option, id int) bool {
	return slices.ContainsFunc(opts, func(o Option) bool { return o.ID == id })
}

func optionLabel(opts []Option, id int) string {
	for _, o := range opts {
		if o.ID == id {
			return o.Label
		}
	}
	return fmt.Sprintf("#%d", id)
}

// FilterCondition is a text filter: a match mode and one or more values.
// Values always holds at least one entry.
type FilterCondition struct {
	Mode   MatchMode `json:"condition"`
	Values []string  `json:"inputs"`
}

// NewCondition returns a condition in the given mode with a single empty value.
func NewCondition(mode MatchMode) FilterCondition {
	return FilterCondition{Mode: mode, Values: []string{""}}
}

// State is the whole search form. Field order matches the serialized order.
type State struct {
	Name       FilterCondition `json:"name"`
	PlaceID    FilterCondition `json:"googlePlaceId"`
	CityName   FilterCondition `json:"cityName"`
	ZoneName   FilterCondition `json:"zoneName"`
	POITypeIDs []int           `json:"poiTypeIds"`
	POIGrades  []int           `json:"poiGrades"`
}

// DefaultState returns the empty form.
func DefaultState() State {
	return State{
		Name:       NewCondition(MatchContains),
		PlaceID:    NewCondition(MatchContains),
		CityName:   NewCondition(MatchContains),
		ZoneName:   NewCondition(MatchContains),
		POITypeIDs: []int{},
		POIGrades:  []int{},
	}
}

// Condition returns a pointer to the condition for f, or nil for an unknown
// field.
func (s *State) Condition(f Field) *FilterCondition {
	switch f {
	case FieldName:
		return &s.Name
	case FieldPlaceID:
		return &s.PlaceID
	case FieldCityName:
		return &s.CityName
	case FieldZoneName:
		return &s.ZoneName
	default:
		return nil
	}
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (s State) Clone() State {
	c := s
	for _, f := range Fields() {
		cond := c.Condition(f)
		cond.Values = slices.Clone(cond.Values)
	}
	c.POITypeIDs = slices.Clone(s.POITypeIDs)
	c.POIGrades = slices.Clone(s.POIGrades)
	return c
}

// Equal compares two states structurally. Nil and empty selections are equal.
func Equal(a, b State) bool {
	return cmp.Equal(a, b, cmpopts.EquateEmpty())
}

// IsDefault reports whether s carries no search conditions beyond the defaults.
func (s State) IsDefault() bool {
	return Equal(s, DefaultState())
}

// Summary returns a short human-readable description of the active filters.
func (s State) Summary() string {
	var parts []string
	for _, f := range Fields() {
		cond := s.Condition(f)
		var vals []string
		for _, v := range cond.Values {
			if strings.TrimSpace(v) != "" {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s %s",
			strings.ToLower(f.Label()), cond.Mode.Label(), strings.Join(vals, "|")))
	}
	if len(s.POITypeIDs) > 0 {
		parts = append(parts, "category:"+joinLabels(Categories, s.POITypeIDs))
	}
	if len(s.POIGrades) > 0 {
		parts = append(parts, "grade:"+joinLabels(Grades, s.POIGrades))
	}
	return strings.Join(parts, "  ")
}

func joinLabels(opts []Option, ids []int) string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		labels = append(labels, optionLabel(opts, id))
	}
	return strings.Join(labels, ",")
}
