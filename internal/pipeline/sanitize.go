package pipeline

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips unsafe markup from rendered HTML.
// Safe for concurrent use once built.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds a sanitizer on top of the UGC policy, extended with
// what the renderer itself emits: class attributes for highlighting and
// footnotes, unicode heading ids, <mark> and task-list checkboxes.
func NewSanitizer() *Sanitizer {
	policy := bluemonday.UGCPolicy()

	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^[\w\- ]+$`)).Globally()
	policy.AllowAttrs("role").Matching(regexp.MustCompile(`^doc-[a-z]+$`)).Globally()
	policy.AllowAttrs("id").Matching(regexp.MustCompile(`^[\p{L}\p{N}:_.\-]+$`)).
		OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup")
	policy.AllowElements("mark")
	policy.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	policy.AllowAttrs("checked", "disabled").OnElements("input")
	policy.AllowAttrs("tabindex").Matching(bluemonday.Integer).OnElements("pre")

	return &Sanitizer{policy: policy}
}

// Sanitize returns html with disallowed elements and attributes removed.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
