package shell

import "github.com/microcosm-cc/bluemonday"

// Sanitizer strips scripts, handlers and other active content from fetched
// fragments while keeping the attributes the shell relies on.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a Sanitizer built on bluemonday's UGC policy, relaxed
// for first-party pages: inline colors and layout, buttons, and links left
// without a forced rel attribute.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs(RouteAttr, ariaCurrent, "class", "id").Globally()
	p.AllowStyles("color", "background-color", "font-weight", "font-style", "text-align").Globally()
	p.AllowElements("button")
	p.RequireNoFollowOnLinks(false)
	return &Sanitizer{policy: p}
}

// Sanitize returns the cleaned fragment.
func (s *Sanitizer) Sanitize(fragment string) string {
	return s.policy.Sanitize(fragment)
}
