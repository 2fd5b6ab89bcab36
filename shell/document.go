// Package shell binds a site's shell document: it locates the header, nav,
// body and footer regions, injects the shared chrome, and exposes the body
// and nav links to the router.
package shell

import (
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"stet.codes/shellnav/router"
)

// Region names one of the four identified containers of the shell.
type Region string

const (
	Header Region = "header"
	Nav    Region = "nav"
	Body   Region = "body"
	Footer Region = "footer"
)

// Regions lists every region in document order.
var Regions = []Region{Header, Nav, Body, Footer}

// RouteAttr is the attribute binding a nav element to a route.
const RouteAttr = "data-page"

const (
	activeClass = "active"
	ariaCurrent = "aria-current"
)

// Chrome is the static content of a site: the shell document and the
// fragments injected into its header, nav and footer.
type Chrome struct {
	Shell  string
	Header string
	Nav    string
	Footer string
}

// Document is a bound shell document. It is not safe for concurrent use.
type Document struct {
	doc     *goquery.Document
	regions map[Region]*goquery.Selection
	logger  *log.Logger
}

// Bind parses the shell, locates its regions and injects the chrome. A
// missing region is logged and skipped.
func Bind(c Chrome, logger *log.Logger) (*Document, error) {
	if logger == nil {
		logger = log.Default()
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(c.Shell))
	if err != nil {
		return nil, fmt.Errorf("failed to parse shell document: %w", err)
	}

	d := &Document{
		doc:     doc,
		regions: make(map[Region]*goquery.Selection, len(Regions)),
		logger:  logger,
	}
	for _, r := range Regions {
		sel := doc.Find("#" + string(r)).First()
		if sel.Length() == 0 {
			logger.Printf("%s element (#%s) not found.", strings.ToUpper(string(r[:1]))+string(r[1:]), r)
			continue
		}
		d.regions[r] = sel
	}

	d.Inject(Header, c.Header)
	d.Inject(Nav, c.Nav)
	d.Inject(Footer, c.Footer)
	return d, nil
}

// Has reports whether region was found in the shell.
func (d *Document) Has(r Region) bool {
	_, ok := d.regions[r]
	return ok
}

// Inject replaces the inner HTML of region. It reports false when the
// region is missing.
func (d *Document) Inject(r Region, html string) bool {
	sel, ok := d.regions[r]
	if !ok {
		return false
	}
	sel.SetHtml(html)
	return true
}

// RegionHTML returns the inner HTML of region.
func (d *Document) RegionHTML(r Region) (string, error) {
	sel, ok := d.regions[r]
	if !ok {
		return "", fmt.Errorf("region #%s not found", r)
	}
	return sel.Html()
}

// RenderBody replaces the body region's content.
func (d *Document) RenderBody(html string) {
	if !d.Inject(Body, html) {
		d.logger.Printf("Body element (#body) not found. Cannot set page.")
	}
}

func (d *Document) links() *goquery.Selection {
	nav, ok := d.regions[Nav]
	if !ok {
		return nil
	}
	return nav.Find("[" + RouteAttr + "]")
}

// NavLinks returns every element in the nav region carrying a route
// attribute.
func (d *Document) NavLinks() []router.NavLink {
	sel := d.links()
	if sel == nil {
		return nil
	}
	links := make([]router.NavLink, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		route, _ := s.Attr(RouteAttr)
		links = append(links, router.NavLink{
			Route: route,
			Label: strings.Join(strings.Fields(s.Text()), " "),
		})
	})
	return links
}

// SetLinkActive toggles the active class and aria-current marker of the
// nav link at index.
func (d *Document) SetLinkActive(index int, active bool) {
	sel := d.links()
	if sel == nil {
		return
	}
	link := sel.Eq(index)
	if active {
		link.AddClass(activeClass).SetAttr(ariaCurrent, "page")
		return
	}
	link.RemoveClass(activeClass).RemoveAttr(ariaCurrent)
}

// LinkActive reports whether the nav link at index is marked active.
func (d *Document) LinkActive(index int) bool {
	sel := d.links()
	if sel == nil {
		return false
	}
	link := sel.Eq(index)
	return link.HasClass(activeClass) && link.AttrOr(ariaCurrent, "") == "page"
}

// Text renders region as terminal text.
func (d *Document) Text(r Region) string {
	sel, ok := d.regions[r]
	if !ok {
		return ""
	}
	return Text(sel.Nodes...)
}

// HTML serializes the whole document.
func (d *Document) HTML() (string, error) {
	return goquery.OuterHtml(d.doc.Selection)
}
