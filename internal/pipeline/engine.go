package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors for the rendering engine.
var (
	ErrHTMLConversion        = errors.New("HTML conversion failed")
	ErrUnknownRawHTMLMode    = errors.New("unknown raw HTML mode")
	ErrUnknownHighlightStyle = errors.New("unknown highlight style")
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "monokai"

// EngineConfig selects the Markdown dialect and rendering features.
type EngineConfig struct {
	Extensions     []string // registry names, see ExtensionNames
	HardWraps      bool
	RawHTML        RawHTMLMode
	Highlight      bool
	HighlightStyle string
	LineNumbers    bool
}

// Fragment is the rendered body of a document before it is wrapped in a shell.
type Fragment struct {
	HTML         string
	Stats        Stats
	Warnings     []Warning
	FirstHeading string // text of the first level-1 heading, if any
}

// Engine renders Markdown to an HTML fragment with goldmark (pure Go).
// An Engine holds no per-document state and may be reused.
type Engine struct {
	md        goldmark.Markdown
	rawHTML   RawHTMLMode
	sanitizer *Sanitizer
	cfg       EngineConfig
}

// NewEngine builds a goldmark instance for cfg.
// Returns ErrUnknownExtension, ErrUnknownRawHTMLMode or ErrUnknownHighlightStyle
// for invalid configuration.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.RawHTML == "" {
		cfg.RawHTML = RawHTMLOmit
	}
	if !cfg.RawHTML.Valid() {
		return nil, fmt.Errorf("%w: %q (use omit, sanitize or allow)", ErrUnknownRawHTMLMode, cfg.RawHTML)
	}

	exts, err := resolveExtensions(cfg.Extensions)
	if err != nil {
		return nil, err
	}
	exts = append(exts, Mark)

	if cfg.Highlight {
		if cfg.HighlightStyle == "" {
			cfg.HighlightStyle = DefaultHighlightStyle
		}
		if _, ok := styles.Registry[cfg.HighlightStyle]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, cfg.HighlightStyle)
		}
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(cfg.HighlightStyle),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // stylesheet comes from HighlightCSS
				chromahtml.WithLineNumbers(cfg.LineNumbers),
			),
		))
	}

	var rendererOpts []renderer.Option
	if cfg.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if cfg.RawHTML != RawHTMLOmit {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	e := &Engine{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(rendererOpts...),
		),
		rawHTML: cfg.RawHTML,
		cfg:     cfg,
	}
	if cfg.RawHTML == RawHTMLSanitize {
		e.sanitizer = NewSanitizer()
	}
	return e, nil
}

// Config returns the effective configuration, with defaults applied.
func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// Render parses source, inspects the AST and renders it to HTML.
// goldmark does not take a context, so the work runs in a goroutine and a
// cancelled ctx returns immediately.
func (e *Engine) Render(ctx context.Context, source []byte) (*Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		frag *Fragment
		err  error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, r)}
			}
		}()

		doc := e.md.Parser().Parse(text.NewReader(source))
		stats, warnings, first := Inspect(doc, source, e.rawHTML)

		var buf bytes.Buffer
		if err := e.md.Renderer().Render(&buf, source, doc); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}

		out := buf.String()
		if e.sanitizer != nil {
			out = e.sanitizer.Sanitize(out)
		}
		done <- result{frag: &Fragment{
			HTML:         strings.TrimRight(out, "\n"),
			Stats:        stats,
			Warnings:     warnings,
			FirstHeading: first,
		}}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.frag, r.err
	}
}

// HighlightCSS returns the class-based stylesheet for a chroma style.
func HighlightCSS(styleName string) (string, error) {
	style, ok := styles.Registry[styleName]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, styleName)
	}
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("generating highlight CSS: %w", err)
	}
	return buf.String(), nil
}

// HighlightStyleNames lists the available chroma styles.
func HighlightStyleNames() []string {
	return styles.Names()
}
