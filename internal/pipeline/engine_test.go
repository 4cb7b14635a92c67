package pipeline

// Notes:
// - Exact markup assertions run with highlighting off: chroma's wrapper
//   markup differs between versions, so highlighted output is only checked
//   for its class prefix.

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// newTestEngine builds an engine with the default dialect and no highlighting.
func newTestEngine(t *testing.T, mutate func(*EngineConfig)) *Engine {
	t.Helper()

	cfg := EngineConfig{Extensions: DefaultExtensions, RawHTML: RawHTMLOmit}
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func render(t *testing.T, e *Engine, src string) *Fragment {
	t.Helper()

	frag, err := e.Render(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return frag
}

// ---------------------------------------------------------------------------
// TestNewEngine - Configuration errors
// ---------------------------------------------------------------------------

func TestNewEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     EngineConfig
		wantErr error
	}{
		{name: "zero value", cfg: EngineConfig{}},
		{name: "highlighting with default style", cfg: EngineConfig{Highlight: true}},
		{name: "highlighting with named style", cfg: EngineConfig{Highlight: true, HighlightStyle: "github"}},
		{name: "unknown style ignored when highlighting is off", cfg: EngineConfig{HighlightStyle: "nope"}},
		{name: "unknown highlight style", cfg: EngineConfig{Highlight: true, HighlightStyle: "nope"}, wantErr: ErrUnknownHighlightStyle},
		{name: "unknown raw HTML mode", cfg: EngineConfig{RawHTML: "strip"}, wantErr: ErrUnknownRawHTMLMode},
		{name: "unknown extension", cfg: EngineConfig{Extensions: []string{"wiki"}}, wantErr: ErrUnknownExtension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewEngine(tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewEngine() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("NewEngine() unexpected error: %v", err)
			}
		})
	}
}

func TestNewEngine_AppliesDefaults(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(EngineConfig{Highlight: true})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	cfg := e.Config()
	if cfg.RawHTML != RawHTMLOmit {
		t.Errorf("RawHTML = %q, want %q", cfg.RawHTML, RawHTMLOmit)
	}
	if cfg.HighlightStyle != DefaultHighlightStyle {
		t.Errorf("HighlightStyle = %q, want %q", cfg.HighlightStyle, DefaultHighlightStyle)
	}
}

// ---------------------------------------------------------------------------
// TestEngine_Render - Markup produced for common constructs
// ---------------------------------------------------------------------------

func TestEngine_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		mutate       func(*EngineConfig)
		input        string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "heading gets an id",
			input:        "# Hello World",
			wantContains: []string{`<h1 id="hello-world">Hello World</h1>`},
		},
		{
			name:         "fenced code keeps whitespace",
			input:        "```go\nfunc main() {\n\treturn\n}\n```",
			wantContains: []string{`<pre><code class="language-go">func main() {` + "\n\treturn\n}\n</code></pre>"},
		},
		{
			name:         "indented code block",
			input:        "    x  :=  1",
			wantContains: []string{"<pre><code>x  :=  1\n</code></pre>"},
		},
		{
			name:         "gfm table",
			input:        "| a | b |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<th>a</th>", "<td>2</td>"},
		},
		{
			name:         "gfm strikethrough",
			input:        "~~gone~~",
			wantContains: []string{"<del>gone</del>"},
		},
		{
			name:         "footnotes",
			input:        "text[^1]\n\n[^1]: the note",
			wantContains: []string{"footnote", "the note"},
		},
		{
			name:         "table not parsed without extension",
			mutate:       func(c *EngineConfig) { c.Extensions = nil },
			input:        "| a | b |\n|---|---|\n| 1 | 2 |",
			wantExcludes: []string{"<table>"},
		},
		{
			name:         "soft breaks by default",
			input:        "one\ntwo",
			wantExcludes: []string{"<br"},
		},
		{
			name:         "hard wraps",
			mutate:       func(c *EngineConfig) { c.HardWraps = true },
			input:        "one\ntwo",
			wantContains: []string{"<br"},
		},
		{
			name:         "raw HTML omitted by default",
			input:        "<div class=\"x\">hi</div>",
			wantContains: []string{"<!-- raw HTML omitted -->"},
			wantExcludes: []string{"<div"},
		},
		{
			name:         "raw HTML allowed",
			mutate:       func(c *EngineConfig) { c.RawHTML = RawHTMLAllow },
			input:        "<div class=\"x\">hi</div>",
			wantContains: []string{`<div class="x">hi</div>`},
		},
		{
			name:         "raw HTML sanitized",
			mutate:       func(c *EngineConfig) { c.RawHTML = RawHTMLSanitize },
			input:        "<script>alert(1)</script>\n\n<p onclick=\"steal()\">safe</p>\n\n# Kept",
			wantContains: []string{"safe", `<h1 id="kept">Kept</h1>`},
			wantExcludes: []string{"<script", "alert(1)", "onclick"},
		},
		{
			name:         "sanitizer keeps task list checkboxes",
			mutate:       func(c *EngineConfig) { c.RawHTML = RawHTMLSanitize },
			input:        "- [x] done\n- [ ] todo",
			wantContains: []string{`type="checkbox"`, "checked"},
		},
		{
			name:         "emoji shortcode",
			mutate:       func(c *EngineConfig) { c.Extensions = []string{"emoji"} },
			input:        "good :smile:",
			wantExcludes: []string{":smile:"},
		},
		{
			name:         "syntax highlighting uses classes",
			mutate:       func(c *EngineConfig) { c.Highlight = true },
			input:        "```go\npackage main\n```",
			wantContains: []string{"chroma"},
			wantExcludes: []string{"style=\""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			frag := render(t, newTestEngine(t, tt.mutate), tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(frag.HTML, want) {
					t.Errorf("HTML = %q, want to contain %q", frag.HTML, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(frag.HTML, exclude) {
					t.Errorf("HTML = %q, should not contain %q", frag.HTML, exclude)
				}
			}
		})
	}
}

func TestEngine_Render_Empty(t *testing.T) {
	t.Parallel()

	frag := render(t, newTestEngine(t, nil), "")
	if frag.HTML != "" {
		t.Errorf("HTML = %q, want empty", frag.HTML)
	}
	if frag.Stats != (Stats{}) {
		t.Errorf("Stats = %+v, want zero", frag.Stats)
	}
}

func TestEngine_Render_Deterministic(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(c *EngineConfig) { c.Highlight = true; c.LineNumbers = true })
	src := "# A\n\n## B\n\n```python\nprint('x')\n```\n\n| h |\n|---|\n| v |\n"
	first := render(t, e, src).HTML
	for i := 0; i < 5; i++ {
		if got := render(t, e, src).HTML; got != first {
			t.Fatalf("render %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}
}

func TestEngine_Render_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine(t, nil).Render(ctx, []byte("# x"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestInspect - Construct counts and warnings
// ---------------------------------------------------------------------------

const statsDocument = "# H1\n## H2\n### H3\n#### H4\n##### H5\n###### H6\n\n" +
	"Para with *em* and **strong** and [link](https://example.com).\n\n" +
	"1. one\n2. two\n\n" +
	"- a\n- b\n- c\n\n" +
	"```go\ncode\n```\n\n" +
	"    indented\n\n" +
	"| a | b |\n|---|---|\n| 1 | 2 |\n\n" +
	"> quote\n\n" +
	"---\n\n" +
	"![img](pic.png)\n"

func TestInspect_Stats(t *testing.T) {
	t.Parallel()

	frag := render(t, newTestEngine(t, nil), statsDocument)

	want := Stats{
		Headings:       [6]int{1, 1, 1, 1, 1, 1},
		Paragraphs:     3,
		OrderedLists:   1,
		UnorderedLists: 1,
		ListItems:      5,
		CodeBlocks:     2,
		Emphasis:       1,
		Strong:         1,
		Links:          1,
		Images:         1,
		Tables:         1,
		Blockquotes:    1,
		ThematicBreaks: 1,
	}
	if frag.Stats != want {
		t.Errorf("Stats = %+v\nwant    %+v", frag.Stats, want)
	}
	if frag.Stats.HeadingCount() != 6 {
		t.Errorf("HeadingCount() = %d, want 6", frag.Stats.HeadingCount())
	}
	if frag.FirstHeading != "H1" {
		t.Errorf("FirstHeading = %q, want %q", frag.FirstHeading, "H1")
	}
	if len(frag.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", frag.Warnings)
	}
}

func TestInspect_FirstHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no headings", "just text", ""},
		{"h2 only", "## Sub", ""},
		{"inline markup flattened", "intro\n\n# Real *Title* `code`", "Real Title code"},
		{"first of several", "# One\n\n# Two", "One"},
		{"setext heading", "Setext\n======", "Setext"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := render(t, newTestEngine(t, nil), tt.input).FirstHeading; got != tt.want {
				t.Errorf("FirstHeading = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInspect_Warnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*EngineConfig)
		input    string
		wantKind WarningKind
		wantLine int
	}{
		{
			name:     "empty link destination",
			input:    "# T\n\nsee [here]() now",
			wantKind: WarnEmptyLink,
			wantLine: 3,
		},
		{
			name:     "empty image source",
			input:    "![alt]()",
			wantKind: WarnEmptyLink,
			wantLine: 1,
		},
		{
			name:     "unresolved full reference",
			input:    "one\n\nsee [docs][missing] for more",
			wantKind: WarnUnresolvedRef,
			wantLine: 3,
		},
		{
			name:     "unresolved collapsed reference",
			input:    "- item [docs][]",
			wantKind: WarnUnresolvedRef,
			wantLine: 1,
		},
		{
			name:     "raw HTML block omitted",
			input:    "text\n\n<div>x</div>",
			wantKind: WarnRawHTMLOmitted,
			wantLine: 3,
		},
		{
			name:     "inline raw HTML omitted",
			input:    "a <span>b</span>",
			wantKind: WarnRawHTMLOmitted,
			wantLine: 1,
		},
		{
			name:     "unterminated backtick fence",
			input:    "intro\n\n```go\nfunc main() {}\n",
			wantKind: WarnUnterminatedFence,
			wantLine: 3,
		},
		{
			name:     "unterminated tilde fence",
			input:    "~~~\ncode",
			wantKind: WarnUnterminatedFence,
			wantLine: 1,
		},
		{
			name:     "unterminated fence in blockquote",
			input:    "text\n> ```\n> code",
			wantKind: WarnUnterminatedFence,
			wantLine: 2,
		},
		{
			name:     "mismatched closing character",
			input:    "```\ncode\n~~~\n",
			wantKind: WarnUnterminatedFence,
			wantLine: 1,
		},
		{
			name:     "empty fence at end of document",
			input:    "text\n\n```",
			wantKind: WarnUnterminatedFence,
			wantLine: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			frag := render(t, newTestEngine(t, tt.mutate), tt.input)
			if len(frag.Warnings) == 0 {
				t.Fatalf("expected a %q warning, got none", tt.wantKind)
			}
			w := frag.Warnings[0]
			if w.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", w.Kind, tt.wantKind)
			}
			if w.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", w.Line, tt.wantLine)
			}
			if w.Message == "" {
				t.Error("Message is empty")
			}
		})
	}
}

func TestInspect_NoFalseWarnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*EngineConfig)
		input  string
	}{
		{name: "resolved reference link", input: "see [docs][d]\n\n[d]: https://example.com"},
		{name: "collapsed reference resolved", input: "see [docs][]\n\n[docs]: https://example.com"},
		{name: "brackets in code span", input: "use `a[i][j]` here"},
		{name: "task list", input: "- [x] done"},
		{name: "raw HTML allowed", mutate: func(c *EngineConfig) { c.RawHTML = RawHTMLAllow }, input: "<div>x</div>"},
		{name: "toc marker", input: "[TOC]"},
		{name: "closed fence", input: "```go\nx\n```"},
		{name: "closed empty fence", input: "```\n```"},
		{name: "longer closing fence", input: "```\nx\n`````"},
		{name: "closed fence in blockquote", input: "> ```\n> x\n> ```"},
		{name: "closed fence in list item", input: "- item\n\n  ```\n  x\n  ```"},
		{name: "empty fence after closed fence", input: "```\na\n```\n\n```\n```"},
		{name: "indented backticks are code", input: "    ```\nnot a fence\n\n==hi==\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if ws := render(t, newTestEngine(t, tt.mutate), tt.input).Warnings; len(ws) != 0 {
				t.Errorf("Warnings = %v, want none", ws)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHighlightCSS - Stylesheet generation
// ---------------------------------------------------------------------------

func TestHighlightCSS(t *testing.T) {
	t.Parallel()

	css, err := HighlightCSS(DefaultHighlightStyle)
	if err != nil {
		t.Fatalf("HighlightCSS() error = %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("HighlightCSS() should style the .chroma wrapper, got %q", css)
	}

	again, _ := HighlightCSS(DefaultHighlightStyle)
	if again != css {
		t.Error("HighlightCSS() is not deterministic")
	}

	if _, err := HighlightCSS("no-such-style"); !errors.Is(err, ErrUnknownHighlightStyle) {
		t.Errorf("HighlightCSS(no-such-style) error = %v, want ErrUnknownHighlightStyle", err)
	}
}

func TestHighlightStyleNames(t *testing.T) {
	t.Parallel()

	names := HighlightStyleNames()
	found := false
	for _, n := range names {
		if n == DefaultHighlightStyle {
			found = true
		}
	}
	if !found {
		t.Errorf("HighlightStyleNames() does not list %q", DefaultHighlightStyle)
	}
}
