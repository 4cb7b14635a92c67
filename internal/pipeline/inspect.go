package pipeline

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// Stats counts the Markdown constructs found in a document.
type Stats struct {
	Headings       [6]int // Headings[0] is the number of level-1 headings
	Paragraphs     int
	OrderedLists   int
	UnorderedLists int
	ListItems      int
	CodeBlocks     int // fenced and indented
	Emphasis       int
	Strong         int
	Links          int // inline, reference and autolinks
	Images         int
	Tables         int
	Blockquotes    int
	ThematicBreaks int
}

// HeadingCount returns the total number of headings of every level.
func (s Stats) HeadingCount() int {
	total := 0
	for _, n := range s.Headings {
		total += n
	}
	return total
}

// unresolvedRefPattern matches full and collapsed reference links
// ([text][label], [text][]) left as literal text by the parser.
var unresolvedRefPattern = regexp.MustCompile(`\[([^\[\]]+)\]\[([^\[\]]*)\]`)

// orderedMarker matches an ordered list marker such as "1. " or "2) ".
var orderedMarker = regexp.MustCompile(`^[0-9]{1,9}[.)][ \t]`)

// inspector walks a goldmark AST once, counting constructs and collecting
// warnings about the source.
type inspector struct {
	source       []byte
	lineStarts   []int
	rawHTML      RawHTMLMode
	stats        Stats
	warnings     []Warning
	firstHeading string
	lastStop     int // end of the source consumed by the nodes visited so far
}

func newInspector(source []byte, rawHTML RawHTMLMode) *inspector {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &inspector{source: source, lineStarts: starts, rawHTML: rawHTML}
}

// line converts a byte offset into a 1-based line number.
func (v *inspector) line(offset int) int {
	return sort.Search(len(v.lineStarts), func(i int) bool { return v.lineStarts[i] > offset })
}

// lineOf finds the source line of n from its own text or its nearest block ancestor.
func (v *inspector) lineOf(n ast.Node) int {
	if t, ok := n.FirstChild().(*ast.Text); ok && n.Type() == ast.TypeInline {
		return v.line(t.Segment.Start)
	}
	for cur := n; cur != nil; cur = cur.Parent() {
		if t, ok := cur.(*ast.Text); ok {
			return v.line(t.Segment.Start)
		}
		if cur.Type() == ast.TypeBlock && cur.Lines().Len() > 0 {
			return v.line(cur.Lines().At(0).Start)
		}
	}
	return 0
}

// lineStart returns the offset of the first byte of the line holding offset.
func (v *inspector) lineStart(offset int) int {
	return v.lineStarts[v.line(offset)-1]
}

// lineEnd returns the offset just past the newline that ends the line
// holding offset, or the length of the source for the last line.
func (v *inspector) lineEnd(offset int) int {
	if n := v.line(offset); n < len(v.lineStarts) {
		return v.lineStarts[n]
	}
	return len(v.source)
}

// lineAt returns the text of the line starting at offset, without its newline.
func (v *inspector) lineAt(offset int) string {
	return strings.TrimSuffix(string(v.source[offset:v.lineEnd(offset)]), "\n")
}

// advance records that the source up to stop has been consumed.
func (v *inspector) advance(stop int) {
	if stop > v.lastStop {
		v.lastStop = stop
	}
}

// fenceOpening returns the offset of the line holding the opening fence of n.
func (v *inspector) fenceOpening(n *ast.FencedCodeBlock) (int, bool) {
	switch {
	case n.Info != nil:
		return v.lineStart(n.Info.Segment.Start), true
	case n.Lines().Len() > 0:
		first := v.lineStart(n.Lines().At(0).Start)
		if first == 0 {
			return 0, false
		}
		return v.lineStart(first - 1), true
	}
	// Neither an info string nor content: the opener is the first fence
	// line after everything visited so far.
	for off := v.lineStart(v.lastStop); off < len(v.source); off = v.lineEnd(off) {
		if _, n := fenceRun(trimContainerMarkers(v.lineAt(off))); n >= 3 {
			return off, true
		}
	}
	return 0, false
}

// checkFence warns when a fenced code block has no closing fence, in which
// case it runs to the end of its container.
func (v *inspector) checkFence(n *ast.FencedCodeBlock) {
	open, ok := v.fenceOpening(n)
	if !ok {
		return
	}
	opener := trimContainerMarkers(v.lineAt(open))
	char, length := fenceRun(opener)
	if length < 3 {
		return
	}

	end := v.lineEnd(open)
	if lines := n.Lines(); lines.Len() > 0 {
		end = v.lineEnd(lines.At(lines.Len() - 1).Start)
	}

	if end < len(v.source) {
		closer := strings.TrimLeft(v.lineAt(end), " \t>")
		if c, run := fenceRun(closer); c == char && run >= length && strings.TrimSpace(closer[run:]) == "" {
			v.advance(v.lineEnd(end))
			return
		}
	}

	v.advance(end)
	v.warnings = append(v.warnings, Warning{
		Line:    v.line(open),
		Kind:    WarnUnterminatedFence,
		Message: fmt.Sprintf("fenced code block opened with %q is never closed", opener[:length]),
	})
}

// fenceRun returns the fence character starting s and the length of its run.
func fenceRun(s string) (byte, int) {
	if s == "" || (s[0] != '`' && s[0] != '~') {
		return 0, 0
	}
	n := 0
	for n < len(s) && s[n] == s[0] {
		n++
	}
	return s[0], n
}

// trimContainerMarkers strips the indentation, blockquote markers and list
// markers that may precede an opening fence.
func trimContainerMarkers(s string) string {
	for {
		t := strings.TrimLeft(s, " \t")
		switch {
		case strings.HasPrefix(t, ">"):
			t = t[1:]
		case len(t) > 1 && strings.IndexByte("-*+", t[0]) >= 0 && (t[1] == ' ' || t[1] == '\t'):
			t = t[2:]
		default:
			m := orderedMarker.FindString(t)
			if m == "" {
				return t
			}
			t = t[len(m):]
		}
		s = t
	}
}

func (v *inspector) warn(n ast.Node, kind WarningKind, format string, args ...any) {
	v.warnings = append(v.warnings, Warning{
		Line:    v.lineOf(n),
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

func (v *inspector) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	if t, ok := n.(*ast.Text); ok {
		v.advance(t.Segment.Stop)
	} else if n.Type() == ast.TypeBlock && n.Kind() != ast.KindFencedCodeBlock && n.Lines().Len() > 0 {
		v.advance(n.Lines().At(n.Lines().Len() - 1).Stop)
	}

	switch node := n.(type) {
	case *ast.Heading:
		if node.Level >= 1 && node.Level <= 6 {
			v.stats.Headings[node.Level-1]++
		}
		if node.Level == 1 && v.firstHeading == "" {
			v.firstHeading = strings.TrimSpace(plainText(node, v.source))
		}
	case *ast.Paragraph:
		v.stats.Paragraphs++
		v.checkReferences(node)
	case *ast.TextBlock:
		v.checkReferences(node)
	case *ast.List:
		if node.IsOrdered() {
			v.stats.OrderedLists++
		} else {
			v.stats.UnorderedLists++
		}
	case *ast.ListItem:
		v.stats.ListItems++
	case *ast.FencedCodeBlock:
		v.stats.CodeBlocks++
		v.checkFence(node)
	case *ast.CodeBlock:
		v.stats.CodeBlocks++
	case *ast.Emphasis:
		if node.Level >= 2 {
			v.stats.Strong++
		} else {
			v.stats.Emphasis++
		}
	case *ast.Link:
		v.stats.Links++
		if len(node.Destination) == 0 {
			v.warn(node, WarnEmptyLink, "link %q has an empty destination", plainText(node, v.source))
		}
	case *ast.AutoLink:
		v.stats.Links++
	case *ast.Image:
		v.stats.Images++
		if len(node.Destination) == 0 {
			v.warn(node, WarnEmptyLink, "image %q has an empty source", plainText(node, v.source))
		}
	case *east.Table:
		v.stats.Tables++
	case *ast.Blockquote:
		v.stats.Blockquotes++
	case *ast.ThematicBreak:
		v.stats.ThematicBreaks++
	case *ast.HTMLBlock:
		if v.rawHTML == RawHTMLOmit {
			v.warn(node, WarnRawHTMLOmitted, "raw HTML block omitted")
		}
		return ast.WalkSkipChildren, nil
	case *ast.RawHTML:
		if v.rawHTML == RawHTMLOmit {
			line := 0
			if node.Segments.Len() > 0 {
				line = v.line(node.Segments.At(0).Start)
			}
			v.warnings = append(v.warnings, Warning{Line: line, Kind: WarnRawHTMLOmitted, Message: "inline raw HTML omitted"})
		}
	}
	return ast.WalkContinue, nil
}

// checkReferences looks for reference links the parser could not resolve.
// Resolved links become Link nodes, so only literal text is searched.
func (v *inspector) checkReferences(block ast.Node) {
	var literal strings.Builder
	collectLiteral(block, v.source, &literal)
	for _, m := range unresolvedRefPattern.FindAllStringSubmatch(literal.String(), -1) {
		label := m[2]
		if label == "" {
			label = m[1]
		}
		v.warn(block, WarnUnresolvedRef, "reference link %q has no definition for label %q", m[0], label)
	}
}

// collectLiteral appends the text of n outside links, images, code spans and raw HTML.
func collectLiteral(n ast.Node, source []byte, b *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Link, *ast.Image, *ast.AutoLink, *ast.CodeSpan, *ast.RawHTML:
			b.WriteByte(' ')
		case *ast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(node.Value)
		default:
			collectLiteral(c, source, b)
		}
	}
}

// plainText returns the concatenated text content of n.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := c.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.CodeSpan:
			for t := node.FirstChild(); t != nil; t = t.NextSibling() {
				if txt, ok := t.(*ast.Text); ok {
					b.Write(txt.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// Inspect walks doc and returns construct counts, warnings and the text of
// the first level-1 heading.
func Inspect(doc ast.Node, source []byte, rawHTML RawHTMLMode) (Stats, []Warning, string) {
	v := newInspector(source, rawHTML)
	_ = ast.Walk(doc, v.visit)
	return v.stats, v.warnings, v.firstHeading
}
