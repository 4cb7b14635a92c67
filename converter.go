package md2html

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// fallbackTitle is used when no title source yields a value.
const fallbackTitle = "Document"

// fallbackLang is used when neither the options nor front matter set a language.
const fallbackLang = "en"

// outputPerm is the mode of written HTML files.
const outputPerm = 0o644

// Converter renders Markdown documents to standalone HTML.
// Create with NewConverter. A Converter holds no per-document state and is
// safe for concurrent use.
type Converter struct {
	opts      Options
	assetPath string
	loader    AssetLoader
	logger    *slog.Logger

	engine         *pipeline.Engine
	shell          *pipeline.Shell
	charset        *pipeline.Charset
	toc            pipeline.TOCConfig
	css            template.CSS
	stylesheetHref string
}

// NewConverter creates a Converter from DefaultOptions and the given options.
// Every option is validated up front: an unknown extension, raw HTML mode,
// highlight style, encoding or style name fails here rather than per document.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		opts:   DefaultOptions(),
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.opts.MaxInputSize < 0 {
		return nil, fmt.Errorf("%w: MaxInputSize must not be negative, got %d", ErrInvalidOption, c.opts.MaxInputSize)
	}

	// Handle WithAssetPath: resolve to a filesystem loader with embedded fallback
	if c.loader == nil {
		loader, err := NewAssetLoader(c.assetPath)
		if err != nil {
			return nil, err
		}
		c.loader = loader
	}

	charset, err := pipeline.LookupCharset(c.opts.Encoding)
	if err != nil {
		return nil, err
	}
	c.charset = charset

	c.toc = c.opts.TOC.toTOCConfig()
	if err := c.toc.Validate(); err != nil {
		return nil, err
	}

	c.engine, err = pipeline.NewEngine(pipeline.EngineConfig{
		Extensions:     c.opts.Dialect.Extensions,
		HardWraps:      c.opts.Dialect.HardWraps,
		RawHTML:        c.opts.Dialect.RawHTML,
		Highlight:      c.opts.Highlight.Enabled,
		HighlightStyle: c.opts.Highlight.Style,
		LineNumbers:    c.opts.Highlight.LineNumbers,
	})
	if err != nil {
		return nil, err
	}

	if err := c.resolveCSS(); err != nil {
		return nil, err
	}

	tmpl, err := c.loader.LoadTemplate(DocumentTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", err)
	}
	c.shell, err = pipeline.NewShell(tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	return c, nil
}

// Options returns the options the converter was built with.
func (c *Converter) Options() Options {
	return c.opts
}

// resolveCSS loads the style, the highlight stylesheet and the user
// stylesheet. Order matters: the style is the base, the user stylesheet
// comes last so it can override both.
func (c *Converter) resolveCSS() error {
	var styleCSS, highlightCSS, userCSS string

	if c.opts.Style != "" {
		css, err := c.loader.LoadStyle(c.opts.Style)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", c.opts.Style, err)
		}
		styleCSS = css
	}

	if c.opts.Highlight.Enabled {
		css, err := pipeline.HighlightCSS(c.engine.Config().HighlightStyle)
		if err != nil {
			return err
		}
		highlightCSS = css
	}

	if sheet := c.opts.Stylesheet; sheet != "" {
		switch {
		case !c.opts.EmbedStylesheet:
			c.stylesheetHref = filepath.ToSlash(sheet)
		case fileutil.IsURL(sheet):
			return fmt.Errorf("%w: cannot embed remote stylesheet %q", ErrInvalidOption, sheet)
		default:
			content, err := os.ReadFile(sheet) // #nosec G304 -- user-provided path
			if err != nil {
				return fmt.Errorf("%w: %v", ErrStylesheet, err)
			}
			userCSS = string(content)
		}
	}

	c.css = pipeline.JoinCSS(styleCSS, highlightCSS, userCSS)
	return nil
}

// Render converts an in-memory Markdown source to a complete HTML document.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Render(ctx context.Context, in Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrHTMLConversion, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	if limit := c.opts.MaxInputSize; limit > 0 && int64(len(in.Markdown)) > limit {
		return nil, fmt.Errorf("%w: %w: %d bytes (max %d)", ErrInputUnreadable, ErrInputTooLarge, len(in.Markdown), limit)
	}

	decoded, err := c.charset.Decode([]byte(in.Markdown))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}

	meta, body, offset, warnings := pipeline.SplitFrontMatter([]byte(pipeline.Normalize(decoded)))

	frag, err := c.engine.Render(ctx, body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}
	pipeline.ShiftWarnings(frag.Warnings, offset)
	warnings = append(warnings, frag.Warnings...)
	slices.SortStableFunc(warnings, func(a, b Warning) int {
		return cmp.Compare(a.Line, b.Line)
	})

	htmlBody, err := pipeline.RebaseRelativePaths(frag.HTML, in.SourceDir, in.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: rebasing relative paths: %v", ErrHTMLConversion, err)
	}

	// TOC reads heading text, so it runs before permalinks are appended.
	htmlBody = pipeline.InsertTOC(htmlBody, c.toc)
	if c.opts.Permalinks {
		htmlBody = pipeline.AddPermalinks(htmlBody)
	}

	title := c.resolveTitle(meta, frag.FirstHeading, in.Name)
	lang := c.resolveLang(meta)

	doc, err := c.shell.Render(ctx, pipeline.DocumentData{
		Lang:           lang,
		Charset:        c.charset.Name(),
		Title:          title,
		Description:    meta.Description,
		Author:         meta.Author,
		Keywords:       strings.Join(meta.Keywords, ", "),
		CSS:            c.css,
		StylesheetHref: c.stylesheetHref,
		TitleHeading:   c.opts.TitleHeading,
		Body:           template.HTML(htmlBody), // #nosec G203 -- produced by goldmark, sanitized per RawHTML mode
	})
	if err != nil {
		return nil, err
	}

	if !c.charset.IsUTF8() {
		doc, err = c.charset.Encode(string(doc))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
		}
	}

	for _, w := range warnings {
		c.logger.Debug("markdown warning", "name", in.Name, "line", w.Line, "kind", string(w.Kind), "message", w.Message)
	}
	c.logger.Debug("rendered document",
		"name", in.Name,
		"title", title,
		"bytes", len(doc),
		"headings", frag.Stats.HeadingCount(),
		"warnings", len(warnings),
		"elapsed", time.Since(start),
	)

	return &Result{
		HTML:     doc,
		Title:    title,
		Lang:     lang,
		Meta:     meta,
		Stats:    frag.Stats,
		Warnings: warnings,
	}, nil
}

// ConvertFile reads inputPath, renders it and atomically writes outputPath.
// An empty outputPath writes next to the input with an .html extension.
// On any failure the output file is left untouched.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if outputPath == "" {
		outputPath = fileutil.ReplaceExt(inputPath, ".html")
	}
	if samePath(inputPath, outputPath) {
		return nil, fmt.Errorf("%w: output %q would overwrite the input", ErrInvalidOption, outputPath)
	}

	data, err := fileutil.ReadFileLimit(inputPath, c.opts.MaxInputSize)
	if err != nil {
		return nil, classifyReadError(inputPath, err)
	}
	c.logger.Debug("read input", "path", inputPath, "bytes", len(data))

	result, err := c.Render(ctx, Input{
		Markdown:  string(data),
		Name:      inputPath,
		SourceDir: filepath.Dir(inputPath),
		OutputDir: filepath.Dir(outputPath),
	})
	if err != nil {
		return nil, err
	}

	if err := fileutil.WriteFileAtomic(outputPath, result.HTML, outputPerm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputWriteFailed, err)
	}
	c.logger.Debug("wrote output", "path", outputPath, "bytes", len(result.HTML))

	return result, nil
}

// Convert is a one-shot helper: it builds a Converter from opts and converts
// inputPath to outputPath.
func Convert(ctx context.Context, inputPath, outputPath string, opts Options) (*Result, error) {
	conv, err := NewConverter(WithOptions(opts))
	if err != nil {
		return nil, err
	}
	return conv.ConvertFile(ctx, inputPath, outputPath)
}

// resolveTitle applies the title precedence: forced option, front matter,
// default option, first level-1 heading, input file name, "Document".
func (c *Converter) resolveTitle(meta Meta, firstHeading, name string) string {
	candidates := []string{c.opts.Title, meta.Title, c.opts.DefaultTitle, firstHeading}
	if name != "" {
		base := filepath.Base(name)
		candidates = append(candidates, strings.TrimSuffix(base, filepath.Ext(base)))
	}
	for _, s := range candidates {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return fallbackTitle
}

// resolveLang applies the language precedence: forced option, front matter,
// default option, "en".
func (c *Converter) resolveLang(meta Meta) string {
	for _, s := range []string{c.opts.Lang, meta.Lang, c.opts.DefaultLang} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return fallbackLang
}

// classifyReadError maps a read failure to ErrInputNotFound or ErrInputUnreadable.
func classifyReadError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrInputNotFound, path)
	case errors.Is(err, fileutil.ErrTooLarge):
		return fmt.Errorf("%w: %w: %s", ErrInputUnreadable, ErrInputTooLarge, path)
	default:
		return fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
}

// samePath reports whether a and b name the same file.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	if absA == absB {
		return true
	}
	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}
