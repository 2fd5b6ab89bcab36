// Package clients retrieves a site's shell, chrome components and page
// fragments over HTTP or from a file system.
package clients

import (
	"context"
	"fmt"
	"log"

	"stet.codes/shellnav/router"
	"stet.codes/shellnav/shell"
)

// ShellName is the shell document's resource name.
const ShellName = "index.html"

// PagePath returns the resource name of a route's fragment.
func PagePath(route string) string {
	return "pages/" + route + ".html"
}

// ComponentPath returns the resource name of a chrome component.
func ComponentPath(name string) string {
	return "components/" + name + ".html"
}

// Pages fetches page fragments from a Source.
type Pages struct {
	Source Source

	// TwoStep checks that the fragment exists before retrieving its
	// content, and requires both to succeed.
	TwoStep bool

	// Sanitizer, when set, cleans each fragment before it is returned.
	Sanitizer *shell.Sanitizer
}

// FetchFragment implements router.Fetcher.
func (p *Pages) FetchFragment(ctx context.Context, route string) (string, error) {
	name := PagePath(route)
	if p.TwoStep {
		if err := p.Source.Exists(ctx, name); err != nil {
			return "", fetchError(route, router.StageCheck, err)
		}
	}
	body, err := p.Source.Get(ctx, name)
	if err != nil {
		return "", fetchError(route, router.StageContent, err)
	}
	if p.Sanitizer != nil {
		body = p.Sanitizer.Sanitize(body)
	}
	return body, nil
}

func fetchError(route, stage string, err error) *router.FetchError {
	return &router.FetchError{
		Route:  route,
		Stage:  stage,
		Status: StatusCode(err),
		Err:    err,
	}
}

// LoadChrome fetches the shell document and the header, nav and footer
// components. The shell is required; a missing component is logged and
// left empty.
func LoadChrome(ctx context.Context, src Source, logger *log.Logger) (shell.Chrome, error) {
	if logger == nil {
		logger = log.Default()
	}
	doc, err := src.Get(ctx, ShellName)
	if err != nil {
		return shell.Chrome{}, fmt.Errorf("failed to load shell document: %w", err)
	}

	c := shell.Chrome{Shell: doc}
	for name, dst := range map[string]*string{
		"header": &c.Header,
		"nav":    &c.Nav,
		"footer": &c.Footer,
	} {
		body, err := src.Get(ctx, ComponentPath(name))
		if err != nil {
			logger.Printf("failed to load %s component: %v", name, err)
			continue
		}
		*dst = body
	}
	return c, nil
}
