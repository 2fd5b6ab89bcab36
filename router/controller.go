package router

import (
	"context"
	"fmt"
)

// Dispatch runs a navigation's fetch and eventually hands the result to
// Router.Complete on the host's event loop.
type Dispatch func(nav Navigation)

// SyncDispatch fetches and completes inline. It suits hosts without an
// event loop of their own, such as tests.
func SyncDispatch(ctx context.Context, r *Router) Dispatch {
	return func(nav Navigation) {
		r.Complete(r.Fetch(ctx, nav))
	}
}

// Controller turns link activation and history pops into navigations.
type Controller struct {
	host     NavigationHost
	router   *Router
	dispatch Dispatch
}

// NewController wires a Controller to host and registers the back/forward
// listener.
func NewController(host NavigationHost, r *Router, dispatch Dispatch) *Controller {
	c := &Controller{host: host, router: r, dispatch: dispatch}
	host.OnRouteChange(c.Pop)
	return c
}

// Start runs the initial navigation for the page's current path. The entry
// already exists, so nothing is pushed.
func (c *Controller) Start(path string) Navigation {
	return c.run(path)
}

// Click activates the nav link at index: a history entry "/"+route is
// pushed and that path is loaded.
func (c *Controller) Click(index int) (Navigation, error) {
	links := c.host.NavLinks()
	if index < 0 || index >= len(links) {
		return Navigation{}, fmt.Errorf("nav link %d out of range (%d links)", index, len(links))
	}
	return c.Navigate(links[index].Route), nil
}

// Navigate pushes a history entry for route and loads it.
func (c *Controller) Navigate(route string) Navigation {
	path := PathFor(route)
	c.host.PushRoute(path)
	return c.run(path)
}

// Pop reloads path after back/forward navigation without pushing an entry.
func (c *Controller) Pop(path string) {
	c.run(path)
}

func (c *Controller) run(path string) Navigation {
	nav := c.router.Begin(path)
	c.dispatch(nav)
	return nav
}
