// Package router resolves console locations (path plus query) to pages and
// keeps the navigation history.
package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
)

// Route identifies a page of the console.
type Route int

const (
	RouteNotFound Route = iota
	RouteMain
	RouteLogin
)

func (r Route) String() string {
	switch r {
	case RouteMain:
		return "main"
	case RouteLogin:
		return "login"
	default:
		return "not-found"
	}
}

const (
	MainPath  = "/"
	LoginPath = "/login"
)

// Location is a parsed console address.
type Location struct {
	Path  string
	Query url.Values
}

// Parse reads a location such as "/?search-query=...". A full URL is accepted;
// its scheme and host are dropped.
func Parse(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{Path: MainPath, Query: url.Values{}}, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("parse location %q: %w", raw, err)
	}
	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return Location{}, fmt.Errorf("parse location query %q: %w", raw, err)
	}
	path := u.Path
	if path == "" {
		path = MainPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return Location{Path: path, Query: q}, nil
}

// String renders the location back to its textual form.
func (l Location) String() string {
	path := l.Path
	if path == "" {
		path = MainPath
	}
	if len(l.Query) == 0 {
		return path
	}
	return path + "?" + l.Query.Encode()
}

// Routes matches locations against the console's route table.
type Routes struct {
	mux    *mux.Router
	routes map[string]Route
}

// NewRoutes builds the route table: "/" is the search page and "/login" the
// login page. Trailing slashes are tolerated.
func NewRoutes() *Routes {
	r := mux.NewRouter()
	r.StrictSlash(true)
	r.Path(MainPath).Name(RouteMain.String())
	r.Path(LoginPath).Name(RouteLogin.String())
	return &Routes{
		mux: r,
		routes: map[string]Route{
			RouteMain.String():  RouteMain,
			RouteLogin.String(): RouteLogin,
		},
	}
}

// Resolve returns the route for loc.
func (rt *Routes) Resolve(loc Location) Route {
	req, err := http.NewRequest(http.MethodGet, loc.String(), nil)
	if err != nil {
		return RouteNotFound
	}
	var match mux.RouteMatch
	if !rt.mux.Match(req, &match) || match.Route == nil {
		return RouteNotFound
	}
	if route, ok := rt.routes[match.Route.GetName()]; ok {
		return route
	}
	return RouteNotFound
}
