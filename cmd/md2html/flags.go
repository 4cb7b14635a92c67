package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage indicates invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags that control the run itself.
type commonFlags struct {
	config      string
	printConfig bool
	preview     bool
	completion  string // Shell name
	quiet       bool
	verbose     bool
	version     bool
	help        bool
}

// ioFlags holds input and output paths.
type ioFlags struct {
	input  string
	output string
}

// documentFlags holds document metadata flags.
type documentFlags struct {
	title        string
	titleHeading bool
	lang         string
	encoding     string
}

// styleFlags holds stylesheet and asset flags.
type styleFlags struct {
	stylesheet string // Path or URL, linked unless embed is set
	embed      bool
	style      string // Built-in or custom style name
	noStyle    bool
	assetPath  string // Override asset directory
}

// dialectFlags holds Markdown dialect flags.
type dialectFlags struct {
	extensions string // Comma-separated
	hardWraps  bool
	rawHTML    string
}

// highlightFlags holds code highlighting flags.
type highlightFlags struct {
	disabled    bool
	style       string
	lineNumbers bool
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	placement string
	title     string
	minDepth  int
	maxDepth  int
}

// cliFlags holds every md2html flag plus the names set on the command line.
type cliFlags struct {
	common       commonFlags
	io           ioFlags
	document     documentFlags
	style        styleFlags
	dialect      dialectFlags
	highlight    highlightFlags
	toc          tocFlags
	noPermalinks bool

	set map[string]bool
}

// changed reports whether the flag name was given on the command line.
// Only changed flags override the config file.
func (f *cliFlags) changed(name string) bool {
	return f.set[name]
}

// addCommonFlags adds run control flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective config as YAML and exit")
	fs.BoolVar(&f.preview, "preview", false, "render to the terminal instead of writing HTML")
	fs.StringVar(&f.completion, "completion", "", "print a shell completion script: bash, zsh, fish")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
	fs.BoolVar(&f.version, "version", false, "show version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")
}

// addIOFlags adds input and output flags to a FlagSet.
func addIOFlags(fs *flag.FlagSet, f *ioFlags) {
	fs.StringVarP(&f.input, "input", "i", "", "markdown input (default: notes.md)")
	fs.StringVarP(&f.output, "output", "o", "", "HTML output (default: input with .html)")
}

// addDocumentFlags adds document metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVarP(&f.title, "title", "t", "", "document title")
	fs.BoolVar(&f.titleHeading, "title-heading", false, "emit the title as <h1 class=\"title\">")
	fs.StringVar(&f.lang, "lang", "", "document language tag")
	fs.StringVar(&f.encoding, "encoding", "", "input and output charset")
}

// addStyleFlags adds stylesheet flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVarP(&f.stylesheet, "stylesheet", "s", "", "stylesheet path or URL to link")
	fs.BoolVar(&f.embed, "embed-stylesheet", false, "inline --stylesheet instead of linking it")
	fs.StringVar(&f.style, "style", "", "built-in or custom style name")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable the built-in style")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addDialectFlags adds Markdown dialect flags to a FlagSet.
func addDialectFlags(fs *flag.FlagSet, f *dialectFlags) {
	fs.StringVar(&f.extensions, "extensions", "", "comma-separated markdown extensions")
	fs.BoolVar(&f.hardWraps, "hard-wraps", false, "render newlines as <br>")
	fs.StringVar(&f.rawHTML, "raw-html", "", "raw HTML handling: omit, sanitize, allow")
}

// addHighlightFlags adds code highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.BoolVar(&f.disabled, "no-highlight", false, "disable syntax highlighting")
	fs.StringVar(&f.style, "highlight-style", "", "chroma style name")
	fs.BoolVar(&f.lineNumbers, "line-numbers", false, "number lines in code blocks")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.StringVar(&f.placement, "toc", "", "table of contents placement: marker, top, off")
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.minDepth, "toc-min-depth", 0, "min heading depth for TOC (1-6)")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "max heading depth for TOC (1-6)")
}

// newFlagSet registers every flag on a new FlagSet bound to f.
func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("md2html", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	addIOFlags(fs, &f.io)
	addDocumentFlags(fs, &f.document)
	addStyleFlags(fs, &f.style)
	addDialectFlags(fs, &f.dialect)
	addHighlightFlags(fs, &f.highlight)
	addTOCFlags(fs, &f.toc)
	fs.BoolVar(&f.noPermalinks, "no-permalinks", false, "disable heading permalinks")
	addCommonFlags(fs, &f.common)

	return fs
}

// parseFlags parses the arguments after the program name.
// A single positional argument is accepted as the input path.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{set: make(map[string]bool)}
	fs := newFlagSet(f)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})

	switch rest := fs.Args(); {
	case len(rest) > 1:
		return nil, fmt.Errorf("%w: expected at most one input, got %d arguments", ErrUsage, len(rest))
	case len(rest) == 1 && f.changed("input"):
		return nil, fmt.Errorf("%w: input given both as argument %q and --input", ErrUsage, rest[0])
	case len(rest) == 1:
		f.io.input = rest[0]
		f.set["input"] = true
	}

	if f.common.quiet && f.common.verbose {
		return nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	if f.common.printConfig && f.common.preview {
		return nil, fmt.Errorf("%w: --print-config and --preview are mutually exclusive", ErrUsage)
	}

	return f, nil
}
