package router

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
)

// Fetcher retrieves the HTML fragment for a route.
type Fetcher interface {
	FetchFragment(ctx context.Context, route string) (string, error)
}

// Fetch stages reported by FetchError.
const (
	StageCheck   = "check"
	StageContent = "content"
)

// FetchError describes a failed fragment retrieval.
type FetchError struct {
	Route  string
	Stage  string
	Status int // HTTP status when the failure came from a response, else 0
	Err    error
}

func (e *FetchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to load page %s (%s)", e.Route, e.Stage)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *FetchError) Unwrap() error { return e.Err }

// ErrorHTML is the inline message rendered into the body when route fails
// to load.
func ErrorHTML(route string) string {
	return fmt.Sprintf(`<p style="color: red;">Error loading page: %s.</p>`, html.EscapeString(route))
}

// Ordering decides which of several overlapping navigations ends up
// displayed.
type Ordering int

const (
	// LastStarted applies a result only if no newer navigation was issued
	// after it. Stale results are dropped.
	LastStarted Ordering = iota
	// LastCompleted applies every result as it arrives, so a slow earlier
	// fetch can overwrite a faster later one.
	LastCompleted
)

func (o Ordering) String() string {
	switch o {
	case LastStarted:
		return "last-started"
	case LastCompleted:
		return "last-completed"
	default:
		return fmt.Sprintf("Ordering(%d)", int(o))
	}
}

// ParseOrdering parses "last-started" or "last-completed".
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last-started":
		return LastStarted, nil
	case "last-completed":
		return LastCompleted, nil
	default:
		return 0, fmt.Errorf("unknown ordering %q", s)
	}
}

// Phase is the state of the most recently issued navigation.
type Phase int

const (
	Idle Phase = iota
	// Resolving covers route resolution, which runs synchronously inside
	// Begin. Phase never reports it between calls.
	Resolving
	Loading
	Displayed
	Errored
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Resolving:
		return "resolving"
	case Loading:
		return "loading"
	case Displayed:
		return "displayed"
	case Errored:
		return "errored"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Navigation is one resolve/load sequence. Token orders navigations by
// start time.
type Navigation struct {
	Token uint64
	Path  string
	Route string
}

// Result is the outcome of fetching a navigation's fragment.
type Result struct {
	Navigation
	Fragment string
	Err      error
}

// Config holds Router options.
type Config struct {
	Ordering Ordering
	Logger   *log.Logger
}

// Router is the page loader. Begin and Complete must be called from the
// host's event loop; Fetch may run anywhere.
type Router struct {
	host     NavigationHost
	fetcher  Fetcher
	links    *Synchronizer
	ordering Ordering
	logger   *log.Logger

	latest uint64
	phase  Phase
	route  string
}

// New returns a Router that loads fragments with fetcher and renders them
// into host.
func New(host NavigationHost, fetcher Fetcher, cfg Config) *Router {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Router{
		host:     host,
		fetcher:  fetcher,
		links:    NewSynchronizer(host),
		ordering: cfg.Ordering,
		logger:   logger,
	}
}

// Phase reports the state of the latest navigation.
func (r *Router) Phase() Phase { return r.phase }

// Route returns the route currently displayed, or "" when the body holds an
// error or nothing has loaded yet.
func (r *Router) Route() string { return r.route }

// Begin resolves path and starts a new navigation.
func (r *Router) Begin(path string) Navigation {
	route := Resolve(path)
	r.latest++
	r.phase = Loading
	return Navigation{Token: r.latest, Path: path, Route: route}
}

// Fetch retrieves the fragment for nav. It does not touch router state.
func (r *Router) Fetch(ctx context.Context, nav Navigation) Result {
	fragment, err := r.fetcher.FetchFragment(ctx, nav.Route)
	return Result{Navigation: nav, Fragment: fragment, Err: err}
}

// Complete applies res to the host: the fragment replaces the body and the
// links follow the route, or the inline error is shown and the links are
// cleared. It reports whether res was applied; under LastStarted a result
// from a superseded navigation is discarded.
func (r *Router) Complete(res Result) bool {
	stale := res.Token != r.latest
	if stale && r.ordering == LastStarted {
		r.logger.Printf("discarding stale page route=%s token=%d latest=%d", res.Route, res.Token, r.latest)
		return false
	}

	if res.Err != nil {
		r.logger.Printf("Error loading page: %v", res.Err)
		r.host.RenderBody(ErrorHTML(res.Route))
		r.links.Clear()
		r.route = ""
		if !stale {
			r.phase = Errored
		}
		return true
	}

	r.host.RenderBody(res.Fragment)
	r.links.SetActive(res.Route)
	r.route = res.Route
	if !stale {
		r.phase = Displayed
	}
	return true
}

// Load runs a whole navigation synchronously.
func (r *Router) Load(ctx context.Context, path string) Result {
	res := r.Fetch(ctx, r.Begin(path))
	r.Complete(res)
	return res
}
