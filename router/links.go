package router

// LinkHost is the part of NavigationHost the Synchronizer needs.
type LinkHost interface {
	NavLinks() []NavLink
	SetLinkActive(index int, active bool)
}

// ActiveStates computes the active flag of every link for route. Exact
// matches win; if there are none, every fallback link (empty route) is
// active instead.
func ActiveStates(links []NavLink, route string) []bool {
	states := make([]bool, len(links))
	matched := false
	for i, l := range links {
		if l.Route == route {
			states[i] = true
			matched = true
		}
	}
	if matched {
		return states
	}
	for i, l := range links {
		if l.Route == "" {
			states[i] = true
		}
	}
	return states
}

// Synchronizer reconciles the active-link indicator against the current
// route.
type Synchronizer struct {
	host LinkHost
}

// NewSynchronizer returns a Synchronizer writing through host.
func NewSynchronizer(host LinkHost) *Synchronizer {
	return &Synchronizer{host: host}
}

// SetActive marks the links matching route, falling back to the default
// link group. Calling it repeatedly with the same route leaves the same
// state.
func (s *Synchronizer) SetActive(route string) {
	for i, active := range ActiveStates(s.host.NavLinks(), route) {
		s.host.SetLinkActive(i, active)
	}
}

// Clear marks every link inactive. It is used when no route is displayed.
func (s *Synchronizer) Clear() {
	for i := range s.host.NavLinks() {
		s.host.SetLinkActive(i, false)
	}
}
