// Package navigation maps a path string to the view that renders it.
package navigation

import (
	"strings"

	"eventkompass/models"
)

// ViewName identifies one screen of the front-end.
type ViewName string

const (
	ViewHome       ViewName = "home"
	ViewDiscovery  ViewName = "discovery"
	ViewProfile    ViewName = "profile"
	ViewAbout      ViewName = "about"
	ViewGrievances ViewName = "grievances"
	ViewCareers    ViewName = "careers"
	ViewPress      ViewName = "press"
)

// View is the outcome of resolving a path.
type View struct {
	Name     ViewName        `json:"name"`
	Path     string          `json:"path"`
	Category models.Category `json:"category,omitempty"`
}

var staticViews = map[string]ViewName{
	"/about":      ViewAbout,
	"/grievances": ViewGrievances,
	"/careers":    ViewCareers,
	"/press":      ViewPress,
}

// Home is the fallback for every path that does not resolve.
var Home = View{Name: ViewHome, Path: "/"}

// Resolve dispatches path. Unknown paths, discovery paths with an unknown
// category and the profile without a signed-in user resolve to home.
func Resolve(path string, signedIn bool) View {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	switch {
	case path == "" || path == "/":
		return Home
	case path == "/profile":
		if !signedIn {
			return Home
		}
		return View{Name: ViewProfile, Path: path}
	case strings.HasPrefix(path, "/discovery/"):
		c, ok := models.LookupCategory(strings.TrimPrefix(path, "/discovery/"))
		if !ok {
			return Home
		}
		return View{Name: ViewDiscovery, Path: "/discovery/" + string(c), Category: c}
	}

	if name, ok := staticViews[path]; ok {
		return View{Name: name, Path: path}
	}
	return Home
}

// DiscoveryPath is the route of a category page.
func DiscoveryPath(c models.Category) string {
	return "/discovery/" + string(c)
}
