package app

import (
	"fmt"
	"netstream/frontend/pkg/model"
	"strconv"
	"strings"
)

// Page defines a top-level screen.
type Page int

// Pages.
const (
	PageHome Page = iota
	PageDetails
	PageProfile
	PageRecommendations
)

func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageDetails:
		return "details"
	case PageProfile:
		return "profile"
	case PageRecommendations:
		return "recommendations"
	}
	return "unknown"
}

// Route defines a resolved location. MovieID is set for PageDetails only.
type Route struct {
	Page    Page
	MovieID model.MovieID
}

// HomeRoute is the landing route and the target of every redirect.
var HomeRoute = Route{Page: PageHome}

// Path returns the canonical path of the route.
func (r Route) Path() string {
	switch r.Page {
	case PageDetails:
		return fmt.Sprintf("/movie/%d", r.MovieID)
	case PageProfile:
		return "/profile"
	case PageRecommendations:
		return "/recommendations"
	}
	return "/"
}

// RequiresUser reports whether the route is gated on a session user.
func (r Route) RequiresUser() bool {
	return r.Page == PageProfile || r.Page == PageRecommendations
}

// ParseRoute resolves path. It returns false for unknown paths and
// malformed movie ids.
func ParseRoute(path string) (Route, bool) {
	path = strings.TrimSpace(path)
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	switch path {
	case "", "/":
		return HomeRoute, true
	case "/profile":
		return Route{Page: PageProfile}, true
	case "/recommendations":
		return Route{Page: PageRecommendations}, true
	}
	rest, ok := strings.CutPrefix(path, "/movie/")
	if !ok {
		return HomeRoute, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id <= 0 {
		return HomeRoute, false
	}
	return Route{Page: PageDetails, MovieID: model.MovieID(id)}, true
}
