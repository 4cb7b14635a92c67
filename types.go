package md2html

import (
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Re-exported pipeline types.
type (
	// Stats counts the Markdown constructs found in a document.
	Stats = pipeline.Stats

	// Warning is a non-fatal problem in the source, with a 1-based line.
	Warning = pipeline.Warning

	// WarningKind classifies a Warning.
	WarningKind = pipeline.WarningKind

	// Meta is the metadata read from a front matter block.
	Meta = pipeline.Meta

	// RawHTMLMode selects how raw HTML in the source is handled.
	RawHTMLMode = pipeline.RawHTMLMode

	// TOCPlacement selects where the table of contents goes.
	TOCPlacement = pipeline.TOCPlacement
)

// Warning kinds.
const (
	WarnUnterminatedFence    = pipeline.WarnUnterminatedFence
	WarnEmptyLink            = pipeline.WarnEmptyLink
	WarnUnresolvedRef        = pipeline.WarnUnresolvedRef
	WarnRawHTMLOmitted       = pipeline.WarnRawHTMLOmitted
	WarnMalformedFrontMatter = pipeline.WarnMalformedFrontMatter
)

// Raw HTML modes.
const (
	RawHTMLOmit     = pipeline.RawHTMLOmit     // replaced by an HTML comment
	RawHTMLSanitize = pipeline.RawHTMLSanitize // passed through bluemonday
	RawHTMLAllow    = pipeline.RawHTMLAllow    // emitted verbatim
)

// TOC placements.
const (
	TOCMarker = pipeline.TOCMarker
	TOCTop    = pipeline.TOCTop
	TOCOff    = pipeline.TOCOff
)

// TOC depth defaults.
const (
	DefaultTOCMinDepth = 1
	DefaultTOCMaxDepth = 6
)

// DefaultMaxInputSize bounds the Markdown source read by ConvertFile.
const DefaultMaxInputSize = 16 << 20

// Options configures a Converter.
// The zero value renders plain CommonMark with no style, no highlighting
// and no table of contents.
type Options struct {
	Title           string // Forced title; wins over front matter
	DefaultTitle    string // Used when neither Title nor front matter set one
	TitleHeading    bool   // Emit the title as <h1 class="title">
	Lang            string // Forced <html lang>; wins over front matter
	DefaultLang     string // Used when neither Lang nor front matter set one
	Encoding        string // Input and output charset (empty = utf-8)
	Style           string // Built-in or custom style name (empty = none)
	Stylesheet      string // Extra stylesheet path or URL
	EmbedStylesheet bool   // Inline Stylesheet instead of linking it
	Dialect         Dialect
	Highlight       Highlight
	TOC             TOC
	Permalinks      bool  // Append a self-link to each heading
	MaxInputSize    int64 // Bytes; 0 disables the limit
}

// Dialect selects the Markdown extensions and rendering rules.
type Dialect struct {
	Extensions []string // Registry names, see ExtensionNames
	HardWraps  bool     // Newlines in paragraphs become <br>
	RawHTML    RawHTMLMode
}

// Highlight configures fenced code highlighting.
type Highlight struct {
	Enabled     bool
	Style       string // Chroma style name (empty = monokai)
	LineNumbers bool
}

// TOC configures the table of contents.
type TOC struct {
	Placement TOCPlacement // Empty means off
	Title     string
	MinDepth  int // 0 = DefaultTOCMinDepth
	MaxDepth  int // 0 = DefaultTOCMaxDepth
}

// Input is an in-memory Markdown source.
type Input struct {
	Markdown  string // Source text in Options.Encoding
	Name      string // File name, used as the last title fallback
	SourceDir string // Directory of the source, for relative links (optional)
	OutputDir string // Directory of the output; with SourceDir, relative links are rebased
}

// Result is a rendered document.
type Result struct {
	HTML     []byte    // Complete document in the output charset
	Title    string    // Resolved <title>
	Lang     string    // Resolved <html lang>
	Meta     Meta      // Front matter, zero when absent
	Stats    Stats     // Construct counts
	Warnings []Warning // Sorted by line
}

// DefaultOptions returns the options used by the md2html command without a
// config file: the notes style, GFM with footnotes, highlighting,
// permalinks and a table of contents at [TOC] markers.
func DefaultOptions() Options {
	return Options{
		DefaultLang: "en",
		Encoding:    pipeline.DefaultCharset,
		Style:       "notes",
		Dialect: Dialect{
			Extensions: append([]string(nil), pipeline.DefaultExtensions...),
			RawHTML:    RawHTMLOmit,
		},
		Highlight: Highlight{
			Enabled: true,
			Style:   pipeline.DefaultHighlightStyle,
		},
		TOC: TOC{
			Placement: TOCMarker,
			MinDepth:  DefaultTOCMinDepth,
			MaxDepth:  DefaultTOCMaxDepth,
		},
		Permalinks:   true,
		MaxInputSize: DefaultMaxInputSize,
	}
}

// toTOCConfig converts the public TOC type to internal pipeline.TOCConfig.
func (t TOC) toTOCConfig() pipeline.TOCConfig {
	minDepth := t.MinDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	maxDepth := t.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}
	return pipeline.TOCConfig{
		Placement: t.Placement,
		Title:     t.Title,
		MinDepth:  minDepth,
		MaxDepth:  maxDepth,
	}
}

// ExtensionNames lists the Markdown extensions accepted in Dialect.Extensions.
func ExtensionNames() []string {
	return pipeline.ExtensionNames()
}

// HighlightStyleNames lists the chroma styles accepted in Highlight.Style.
func HighlightStyleNames() []string {
	return pipeline.HighlightStyleNames()
}

// ParseExtensionList splits a comma-separated extension list.
func ParseExtensionList(s string) []string {
	return pipeline.ParseExtensionList(s)
}
