package router

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memHost is a NavigationHost backed by plain fields and a History.
type memHost struct {
	*History
	body   string
	links  []NavLink
	active []bool
	writes int
}

func newMemHost(path string, routes ...string) *memHost {
	h := &memHost{History: NewHistory(path)}
	for _, r := range routes {
		h.links = append(h.links, NavLink{Route: r, Label: r})
	}
	h.active = make([]bool, len(h.links))
	return h
}

func (h *memHost) PushRoute(path string) { h.Push(path) }

func (h *memHost) RenderBody(html string) {
	h.body = html
	h.writes++
}

func (h *memHost) NavLinks() []NavLink { return h.links }

func (h *memHost) SetLinkActive(i int, a bool) { h.active[i] = a }

func (h *memHost) activeRoutes() []string {
	var out []string
	for i, a := range h.active {
		if a {
			out = append(out, h.links[i].Route)
		}
	}
	return out
}

type pages map[string]string

func (p pages) FetchFragment(_ context.Context, route string) (string, error) {
	frag, ok := p[route]
	if !ok {
		return "", &FetchError{Route: route, Stage: StageCheck, Status: 404}
	}
	return frag, nil
}

func quietLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.New(&buf, "", 0), &buf
}

var site = pages{
	"home":  "<h1>Home</h1>",
	"news":  "<h1>News</h1>",
	"about": "<h1>About</h1>",
}

func TestResolve(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"/":      "home",
		"":       "home",
		"/x":     "x",
		"/x/":    "x",
		"x":      "x",
		"/a/b":   "a/b",
		"/x//":   "x/",
		"/a%20b": "a%20b",
		"/x?q=1": "x?q=1",
	}
	for in, want := range cases {
		assert.Equal(t, want, Resolve(in), "Resolve(%q)", in)
	}
	assert.Equal(t, "/news", PathFor("news"))
	assert.Equal(t, "/", PathFor(""))
}

func TestActiveStatesExactMatch(t *testing.T) {
	t.Parallel()

	links := []NavLink{{Route: ""}, {Route: "news"}, {Route: "about"}}
	assert.Equal(t, []bool{false, false, true}, ActiveStates(links, "about"))
}

func TestActiveStatesFallback(t *testing.T) {
	t.Parallel()

	links := []NavLink{{Route: ""}, {Route: "news"}, {Route: "about"}, {Route: ""}}
	assert.Equal(t, []bool{true, false, false, true}, ActiveStates(links, "missing"))
}

func TestActiveStatesNoFallbackLink(t *testing.T) {
	t.Parallel()

	links := []NavLink{{Route: "news"}, {Route: "about"}}
	assert.Equal(t, []bool{false, false}, ActiveStates(links, "missing"))
}

func TestSynchronizerIdempotent(t *testing.T) {
	t.Parallel()

	host := newMemHost("/", "", "news", "about")
	s := NewSynchronizer(host)

	s.SetActive("news")
	once := append([]bool(nil), host.active...)
	s.SetActive("news")
	assert.Equal(t, once, host.active)
	assert.Equal(t, []string{"news"}, host.activeRoutes())

	s.Clear()
	assert.Empty(t, host.activeRoutes())
}

func TestLoadSuccess(t *testing.T) {
	t.Parallel()

	host := newMemHost("/about", "", "news", "about")
	logger, _ := quietLogger()
	r := New(host, site, Config{Logger: logger})

	res := r.Load(context.Background(), "/about")
	require.NoError(t, res.Err)
	assert.Equal(t, "<h1>About</h1>", host.body)
	assert.Equal(t, []string{"about"}, host.activeRoutes())
	assert.Equal(t, Displayed, r.Phase())
	assert.Equal(t, "about", r.Route())
	assert.Equal(t, 1, host.writes)
}

func TestLoadFailure(t *testing.T) {
	t.Parallel()

	host := newMemHost("/", "", "news", "about")
	logger, logs := quietLogger()
	r := New(host, site, Config{Logger: logger})
	r.Load(context.Background(), "/about")

	res := r.Load(context.Background(), "/missing")
	var fe *FetchError
	require.ErrorAs(t, res.Err, &fe)
	assert.Equal(t, 404, fe.Status)
	assert.Contains(t, host.body, "missing")
	assert.Equal(t, ErrorHTML("missing"), host.body)
	assert.Empty(t, host.activeRoutes())
	assert.Equal(t, Errored, r.Phase())
	assert.Empty(t, r.Route())
	assert.Contains(t, logs.String(), "Error loading page")
}

func TestErrorHTMLEscapesRoute(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `<p style="color: red;">Error loading page: &lt;b&gt;.</p>`, ErrorHTML("<b>"))
}

func TestFetchErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := &FetchError{Route: "news", Stage: StageContent, Err: cause}
	assert.Equal(t, "failed to load page news (content): connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	err = &FetchError{Route: "news", Stage: StageCheck, Status: 500}
	assert.Equal(t, "failed to load page news (check): status 500", err.Error())
}

func TestClickPushesOneEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger, _ := quietLogger()

	host := newMemHost("/", "", "news", "about")
	r := New(host, site, Config{Logger: logger})
	c := NewController(host, r, SyncDispatch(ctx, r))
	c.Start(host.Current())
	require.Equal(t, 1, host.Len())

	nav, err := c.Click(1)
	require.NoError(t, err)
	assert.Equal(t, "news", nav.Route)
	assert.Equal(t, []string{"/", "/news"}, host.Entries())

	direct := newMemHost("/news", "", "news", "about")
	dr := New(direct, site, Config{Logger: logger})
	NewController(direct, dr, SyncDispatch(ctx, dr)).Start("/news")

	assert.Equal(t, direct.body, host.body)
	assert.Equal(t, direct.activeRoutes(), host.activeRoutes())
}

func TestClickFallbackLinkPushesRoot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger, _ := quietLogger()

	host := newMemHost("/news", "", "news", "about")
	r := New(host, site, Config{Logger: logger})
	c := NewController(host, r, SyncDispatch(ctx, r))

	_, err := c.Click(0)
	require.NoError(t, err)
	assert.Equal(t, "/", host.Current())
	assert.Equal(t, "<h1>Home</h1>", host.body)
	// "home" has no link of its own, so the fallback link lights up.
	assert.Equal(t, []string{""}, host.activeRoutes())
}

func TestClickOutOfRange(t *testing.T) {
	t.Parallel()

	host := newMemHost("/", "news")
	logger, _ := quietLogger()
	r := New(host, site, Config{Logger: logger})
	c := NewController(host, r, SyncDispatch(context.Background(), r))

	_, err := c.Click(3)
	require.Error(t, err)
	assert.Equal(t, 1, host.Len())
}

func TestBackForwardReloads(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger, _ := quietLogger()

	host := newMemHost("/", "", "news", "about")
	r := New(host, site, Config{Logger: logger})
	c := NewController(host, r, SyncDispatch(ctx, r))
	c.Start("/")
	c.Navigate("news")
	c.Navigate("about")

	require.True(t, host.Back())
	assert.Equal(t, "<h1>News</h1>", host.body)
	assert.Equal(t, []string{"news"}, host.activeRoutes())
	assert.Equal(t, 3, host.Len(), "pop must not push")

	require.True(t, host.Forward())
	assert.Equal(t, "<h1>About</h1>", host.body)
}

func TestLastStartedDiscardsStaleResult(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger, logs := quietLogger()

	host := newMemHost("/", "", "news", "about")
	r := New(host, site, Config{Ordering: LastStarted, Logger: logger})

	a := r.Begin("/news")
	b := r.Begin("/about")
	resA := r.Fetch(ctx, a)
	resB := r.Fetch(ctx, b)

	assert.True(t, r.Complete(resB))
	assert.False(t, r.Complete(resA))

	assert.Equal(t, "<h1>About</h1>", host.body)
	assert.Equal(t, []string{"about"}, host.activeRoutes())
	assert.Equal(t, Displayed, r.Phase())
	assert.Contains(t, logs.String(), "discarding stale page route=news")
}

func TestLastCompletedLetsLateResultWin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger, _ := quietLogger()

	host := newMemHost("/", "", "news", "about")
	r := New(host, site, Config{Ordering: LastCompleted, Logger: logger})

	a := r.Begin("/news")
	b := r.Begin("/about")
	resA := r.Fetch(ctx, a)
	resB := r.Fetch(ctx, b)

	assert.True(t, r.Complete(resB))
	assert.True(t, r.Complete(resA))

	assert.Equal(t, "<h1>News</h1>", host.body)
	assert.Equal(t, []string{"news"}, host.activeRoutes())
	assert.Equal(t, "news", r.Route())
}

func TestPhaseTracksLatestNavigation(t *testing.T) {
	t.Parallel()

	host := newMemHost("/")
	logger, _ := quietLogger()
	r := New(host, site, Config{Logger: logger})
	assert.Equal(t, Idle, r.Phase())

	nav := r.Begin("/news")
	assert.Equal(t, Loading, r.Phase())
	r.Complete(r.Fetch(context.Background(), nav))
	assert.Equal(t, Displayed, r.Phase())
}

func TestParseOrdering(t *testing.T) {
	t.Parallel()

	o, err := ParseOrdering("")
	require.NoError(t, err)
	assert.Equal(t, LastStarted, o)

	o, err = ParseOrdering("Last-Completed")
	require.NoError(t, err)
	assert.Equal(t, LastCompleted, o)
	assert.Equal(t, "last-completed", o.String())

	_, err = ParseOrdering("random")
	require.Error(t, err)
}
