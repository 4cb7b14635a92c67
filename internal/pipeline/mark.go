package pipeline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindMark is the node kind of a ==highlighted== span.
var KindMark = ast.NewNodeKind("Mark")

// MarkNode is an inline ==highlighted== span, rendered as <mark>.
type MarkNode struct {
	ast.BaseInline
}

// NewMarkNode returns an empty MarkNode.
func NewMarkNode() *MarkNode {
	return &MarkNode{}
}

// Kind implements ast.Node.
func (n *MarkNode) Kind() ast.NodeKind {
	return KindMark
}

// Dump implements ast.Node.
func (n *MarkNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

type markDelimiterProcessor struct{}

func (p *markDelimiterProcessor) IsDelimiter(b byte) bool {
	return b == '='
}

func (p *markDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (p *markDelimiterProcessor) OnMatch(consumes int) ast.Node {
	return NewMarkNode()
}

var defaultMarkDelimiterProcessor = &markDelimiterProcessor{}

// markParser scans == delimiter runs. Code spans, autolinks and link
// destinations are parsed before it ever sees their bytes.
type markParser struct{}

func (s *markParser) Trigger() []byte {
	return []byte{'='}
}

func (s *markParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 2, defaultMarkDelimiterProcessor)
	if node == nil || node.OriginalLength != 2 || before == '=' {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

func (s *markParser) CloseBlock(parent ast.Node, pc parser.Context) {}

type markHTMLRenderer struct {
	html.Config
}

func (r *markHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMark, r.renderMark)
}

func (r *markHTMLRenderer) renderMark(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<mark>")
	} else {
		_, _ = w.WriteString("</mark>")
	}
	return ast.WalkContinue, nil
}

type markExtension struct{}

// Mark is a goldmark extension rendering ==text== as <mark>text</mark>.
var Mark goldmark.Extender = &markExtension{}

func (e *markExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&markParser{}, 500),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&markHTMLRenderer{Config: html.NewConfig()}, 500),
	))
}
