// Package router maps URL paths to page fragments and keeps navigation links
// in step with the current route. It drives a NavigationHost and knows
// nothing about the toolkit behind it.
package router

import "strings"

// DefaultRoute is the route the root path resolves to.
const DefaultRoute = "home"

// Resolve derives a route from a URL path. The root (or empty) path maps to
// DefaultRoute; otherwise one leading and one trailing slash are stripped.
// Query strings, fragments and percent-encoding are not interpreted.
func Resolve(path string) string {
	if path == "/" || path == "" {
		return DefaultRoute
	}
	route := strings.TrimPrefix(path, "/")
	return strings.TrimSuffix(route, "/")
}

// PathFor returns the history entry path for a route.
func PathFor(route string) string {
	return "/" + route
}
