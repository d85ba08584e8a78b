// Package query converts search form state to and from the value of the
// search-query location parameter.
package query

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/cli/go-gh/v2/pkg/jsonpretty"

	"github.com/altinukshini/poi-admin/internal/model"
)

// Param is the location query parameter that carries the serialized state.
const Param = "search-query"

// ErrMalformed is returned when the parameter is not a JSON document of the
// expected shape.
var ErrMalformed = errors.New("malformed search query")

// ValidationError reports a well-formed document that violates a state
// invariant.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid search query: " + e.Message
	}
	return fmt.Sprintf("invalid search query: %s: %s", e.Field, e.Message)
}

// Encode serializes s. The output keeps field and value order. Values must
// be valid UTF-8; JSON would otherwise substitute the bad bytes.
func Encode(s model.State) (string, error) {
	for _, f := range model.Fields() {
		for _, v := range s.Condition(f).Values {
			if !utf8.ValidString(v) {
				return "", &ValidationError{Field: f.Key() + ".inputs", Message: "value is not valid UTF-8"}
			}
		}
	}
	data, err := json.Marshal(normalize(s))
	if err != nil {
		return "", fmt.Errorf("encode search query: %w", err)
	}
	return string(data), nil
}

// Decode parses a value produced by Encode and validates it.
func Decode(raw string) (model.State, error) {
	if strings.TrimSpace(raw) == "" {
		return model.State{}, fmt.Errorf("%w: empty value", ErrMalformed)
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return model.State{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return model.State{}, fmt.Errorf("%w: trailing data after document", ErrMalformed)
	}

	return doc.state()
}

// Location builds path plus the encoded state. The default state yields the
// bare path.
func Location(path string, s model.State) (string, error) {
	if path == "" {
		path = "/"
	}
	if s.IsDefault() {
		return path, nil
	}
	enc, err := Encode(s)
	if err != nil {
		return "", err
	}
	v := url.Values{}
	v.Set(Param, enc)
	return path + "?" + v.Encode(), nil
}

// FromValues extracts the state from parsed location parameters. The boolean
// is false when the parameter is absent.
func FromValues(v url.Values) (model.State, bool, error) {
	raw, ok := v[Param]
	if !ok || len(raw) == 0 || raw[0] == "" {
		return model.State{}, false, nil
	}
	s, err := Decode(raw[0])
	return s, true, err
}

// Indent returns the human-readable form of an encoded value, with ANSI
// colors when colorize is set.
func Indent(encoded string, colorize bool) (string, error) {
	var buf bytes.Buffer
	if err := jsonpretty.Format(&buf, strings.NewReader(encoded), "  ", colorize); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// document mirrors model.State with pointer members so missing keys can be
// told apart from zero values.
type document struct {
	Name       *condition `json:"name"`
	PlaceID    *condition `json:"googlePlaceId"`
	CityName   *condition `json:"cityName"`
	ZoneName   *condition `json:"zoneName"`
	POITypeIDs *[]int     `json:"poiTypeIds"`
	POIGrades  *[]int     `json:"poiGrades"`
}

type condition struct {
	Mode   *model.MatchMode `json:"condition"`
	Values *[]string        `json:"inputs"`
}

func (d document) state() (model.State, error) {
	var s model.State
	conds := map[model.Field]*condition{
		model.FieldName:     d.Name,
		model.FieldPlaceID:  d.PlaceID,
		model.FieldCityName: d.CityName,
		model.FieldZoneName: d.ZoneName,
	}
	for _, f := range model.Fields() {
		c, err := conds[f].condition(f.Key())
		if err != nil {
			return model.State{}, err
		}
		*s.Condition(f) = c
	}

	var err error
	if s.POITypeIDs, err = ids("poiTypeIds", d.POITypeIDs, model.IsCategory); err != nil {
		return model.State{}, err
	}
	if s.POIGrades, err = ids("poiGrades", d.POIGrades, model.IsGrade); err != nil {
		return model.State{}, err
	}
	return s, nil
}

func (c *condition) condition(key string) (model.FilterCondition, error) {
	if c == nil {
		return model.FilterCondition{}, &ValidationError{Field: key, Message: "missing"}
	}
	if c.Mode == nil {
		return model.FilterCondition{}, &ValidationError{Field: key + ".condition", Message: "missing"}
	}
	if !c.Mode.Valid() {
		return model.FilterCondition{}, &ValidationError{
			Field:   key + ".condition",
			Message: fmt.Sprintf("unknown match mode %q", string(*c.Mode)),
		}
	}
	if c.Values == nil || len(*c.Values) == 0 {
		return model.FilterCondition{}, &ValidationError{Field: key + ".inputs", Message: "must hold at least one value"}
	}
	return model.FilterCondition{Mode: *c.Mode, Values: slices.Clone(*c.Values)}, nil
}

func ids(key string, in *[]int, known func(int) bool) ([]int, error) {
	if in == nil {
		return nil, &ValidationError{Field: key, Message: "missing"}
	}
	out := make([]int, 0, len(*in))
	for _, id := range *in {
		if !known(id) {
			return nil, &ValidationError{Field: key, Message: fmt.Sprintf("unknown id %d", id)}
		}
		if slices.Contains(out, id) {
			return nil, &ValidationError{Field: key, Message: fmt.Sprintf("duplicate id %d", id)}
		}
		out = append(out, id)
	}
	return out, nil
}

// normalize makes nil selections encode as empty arrays so every encoding
// decodes again.
func normalize(s model.State) model.State {
	if s.POITypeIDs == nil {
		s.POITypeIDs = []int{}
	}
	if s.POIGrades == nil {
		s.POIGrades = []int{}
	}
	return s
}
