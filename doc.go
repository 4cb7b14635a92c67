// Package md2html converts Markdown notes to standalone HTML documents.
//
// # Quick Start
//
// Convert a file with the default options:
//
//	result, err := md2html.Convert(ctx, "notes.md", "notes.html", md2html.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range result.Warnings {
//	    log.Printf("warning: %s", w)
//	}
//
// Or render in memory with a reusable Converter:
//
//	conv, err := md2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := conv.Render(ctx, md2html.Input{Markdown: "# Hello\n\nWorld"})
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Charset decoding, BOM and line ending normalization
//  2. Front matter extraction (YAML, TOML or JSON: title, lang, description, author, keywords)
//  3. Markdown preprocessing (==highlight== syntax, unterminated fence detection)
//  4. Markdown to HTML via Goldmark (CommonMark plus named extensions, chroma highlighting)
//  5. AST inspection for construct counts and warnings
//  6. Raw HTML handling (omit, sanitize with bluemonday, or allow)
//  7. Relative link rebasing, <mark>, table of contents and heading permalinks
//  8. Document shell rendering (html/template) and charset encoding
//
// The output is a pure function of the source and the options: the same
// input always yields the same bytes.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	opts := md2html.DefaultOptions()
//	opts.Title = "Notes"
//	opts.Lang = "zh-CN"
//	opts.Dialect.Extensions = []string{"gfm", "footnote", "typographer"}
//	opts.TOC.Placement = md2html.TOCTop
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithOptions(opts),
//	    md2html.WithAssetPath("/path/to/custom/assets"),
//	    md2html.WithLogger(slog.Default()),
//	)
//
// # Custom Assets
//
// Override built-in styles and the document template with an asset directory:
//
//	assets/
//	├── styles/
//	│   └── notes.css
//	└── templates/
//	    └── document.html
//
// Names missing from the directory fall back to the embedded assets.
//
// # Errors
//
// Failures wrap package sentinels, so callers classify them with errors.Is:
// ErrInputNotFound, ErrInputUnreadable (with ErrInputTooLarge or
// ErrInvalidEncoding), ErrOutputWriteFailed, and the option errors returned
// by NewConverter. Problems in the Markdown itself never fail a conversion;
// they are reported in Result.Warnings.
package md2html
