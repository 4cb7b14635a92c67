package pipeline

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidTOC indicates an out-of-range TOC depth or unknown placement.
var ErrInvalidTOC = errors.New("invalid table of contents settings")

// TOCPlacement selects where the table of contents goes.
type TOCPlacement string

// TOC placements.
const (
	TOCMarker TOCPlacement = "marker" // replaces each [TOC] paragraph
	TOCTop    TOCPlacement = "top"    // before the first element of the body
	TOCOff    TOCPlacement = "off"
)

// TOCMarkerHTML is how goldmark renders a paragraph containing only [TOC].
const TOCMarkerHTML = "<p>[TOC]</p>"

// TOCConfig holds table of contents settings.
type TOCConfig struct {
	Placement TOCPlacement
	Title     string
	MinDepth  int // minimum heading level included (1-6)
	MaxDepth  int // maximum heading level included (1-6)
}

// Validate checks the depth range and placement.
// Depths are not checked when the TOC is off; the zero value means off.
func (c TOCConfig) Validate() error {
	switch c.Placement {
	case TOCOff, "":
		return nil
	case TOCMarker, TOCTop:
	default:
		return fmt.Errorf("%w: placement must be marker, top or off, got %q", ErrInvalidTOC, c.Placement)
	}
	if c.MinDepth < 1 || c.MinDepth > 6 || c.MaxDepth < 1 || c.MaxDepth > 6 {
		return fmt.Errorf("%w: depths must be between 1 and 6, got %d-%d", ErrInvalidTOC, c.MinDepth, c.MaxDepth)
	}
	if c.MinDepth > c.MaxDepth {
		return fmt.Errorf("%w: minDepth (%d) exceeds maxDepth (%d)", ErrInvalidTOC, c.MinDepth, c.MaxDepth)
	}
	return nil
}

// headingInfo represents an extracted heading from HTML.
type headingInfo struct {
	Level int    // 1-6
	ID    string // anchor ID
	Text  string // heading text content
}

// headingPattern matches h1-h6 elements carrying an id attribute.
// Captures: 1=level, 2=id, 3=inner HTML. Closing tag offset is the end of match.
var headingPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

// htmlTagPattern matches HTML tags for stripping from heading text.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTMLTags removes tags, decodes entities and trims whitespace.
// Entities are decoded so the text is not double-escaped when re-emitted.
func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

// extractHeadings returns headings with ids whose level is in [minDepth, maxDepth].
func extractHeadings(htmlContent string, minDepth, maxDepth int) []headingInfo {
	var headings []headingInfo
	for _, m := range headingPattern.FindAllStringSubmatch(htmlContent, -1) {
		level, _ := strconv.Atoi(m[1])
		if level < minDepth || level > maxDepth {
			continue
		}
		headings = append(headings, headingInfo{
			Level: level,
			ID:    m[2],
			Text:  stripHTMLTags(m[3]),
		})
	}
	return headings
}

// nesting turns heading levels into list depths. A heading nests under the
// closest preceding heading of a lower level, so skipped levels (h1 then h3)
// produce a single step and the shallowest heading is always depth 1.
type nesting struct {
	open []int // levels of the headings currently open, outermost first
}

func (n *nesting) depth(level int) int {
	for len(n.open) > 0 && n.open[len(n.open)-1] >= level {
		n.open = n.open[:len(n.open)-1]
	}
	n.open = append(n.open, level)
	return len(n.open)
}

// renderTOC builds a nested list of links inside <nav class="toc">.
func renderTOC(headings []headingInfo, title string) string {
	if len(headings) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="toc">`)
	if title != "" {
		buf.WriteString(`<p class="toc-title">`)
		buf.WriteString(html.EscapeString(title))
		buf.WriteString(`</p>`)
	}

	var nest nesting
	depth := 0
	for _, h := range headings {
		d := nest.depth(h.Level)
		switch {
		case d > depth:
			for ; depth < d; depth++ {
				buf.WriteString("\n<ul>")
			}
		case d == depth:
			buf.WriteString("</li>")
		default:
			buf.WriteString("</li>")
			for ; depth > d; depth-- {
				buf.WriteString("\n</ul></li>")
			}
		}
		buf.WriteString("\n<li><a href=\"#")
		buf.WriteString(html.EscapeString(h.ID))
		buf.WriteString(`">`)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString("</a>")
	}
	for ; depth > 0; depth-- {
		buf.WriteString("</li>\n</ul>")
	}
	buf.WriteString("\n</nav>")
	return buf.String()
}

// InsertTOC builds a table of contents from the headings in body and places
// it according to cfg. With the marker placement every [TOC] paragraph is
// replaced, by an empty string when there are no headings to list.
func InsertTOC(body string, cfg TOCConfig) string {
	if cfg.Placement == TOCOff || cfg.Placement == "" {
		return body
	}
	if cfg.Placement == TOCMarker && !strings.Contains(body, TOCMarkerHTML) {
		return body
	}

	toc := renderTOC(extractHeadings(body, cfg.MinDepth, cfg.MaxDepth), cfg.Title)

	if cfg.Placement == TOCMarker {
		return strings.ReplaceAll(body, TOCMarkerHTML, toc)
	}
	if toc == "" {
		return body
	}
	if body == "" {
		return toc
	}
	return toc + "\n" + body
}

// permalinkHTML is appended inside each heading with an id.
const permalinkHTML = `<a class="headerlink" href="#%s" title="Permanent link">&para;</a>`

// AddPermalinks appends a self-link anchor to every heading that has an id.
func AddPermalinks(body string) string {
	locs := headingPattern.FindAllStringSubmatchIndex(body, -1)
	if len(locs) == 0 {
		return body
	}

	var buf strings.Builder
	buf.Grow(len(body) + len(locs)*len(permalinkHTML))
	last := 0
	for _, loc := range locs {
		// loc[1] is the end of the match; the closing tag is the last 5 bytes.
		closeTag := loc[1] - len("</h1>")
		id := body[loc[4]:loc[5]]
		buf.WriteString(body[last:closeTag])
		fmt.Fprintf(&buf, permalinkHTML, id)
		last = closeTag
	}
	buf.WriteString(body[last:])
	return buf.String()
}
