package router

// NavLink is a navigation control bound to a route. An empty Route marks the
// fallback link that is activated when nothing else matches.
type NavLink struct {
	Route string
	Label string
}

// NavigationHost is the capability surface the router drives. Hosts own the
// rendered document and the history stack; all calls happen on the host's
// event loop.
type NavigationHost interface {
	// PushRoute records a new history entry for path without reloading.
	PushRoute(path string)

	// OnRouteChange registers fn to be called with the new current path
	// after back/forward navigation.
	OnRouteChange(fn func(path string))

	// RenderBody replaces the body region's content entirely.
	RenderBody(html string)

	// NavLinks returns the navigation links in document order.
	NavLinks() []NavLink

	// SetLinkActive marks the link at index as active or inactive.
	SetLinkActive(index int, active bool)
}
