package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrTemplateRender indicates the document shell could not be rendered.
var ErrTemplateRender = errors.New("document template rendering failed")

// DocumentData fills the document shell template.
type DocumentData struct {
	Lang           string
	Charset        string
	Title          string
	Description    string
	Author         string
	Keywords       string
	CSS            template.CSS // embedded <style> content, already escaped
	StylesheetHref string       // linked stylesheet, empty for none
	TitleHeading   bool         // emit the title as <h1 class="title">
	Body           template.HTML
}

// Shell wraps a rendered fragment in a complete HTML5 document.
type Shell struct {
	tmpl *template.Template
}

// NewShell parses the document template.
func NewShell(tmplContent string) (*Shell, error) {
	tmpl, err := template.New("document").Option("missingkey=error").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}
	return &Shell{tmpl: tmpl}, nil
}

// Render executes the template with data.
func (s *Shell) Render(ctx context.Context, data DocumentData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.Bytes(), nil
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// JoinCSS concatenates the non-empty stylesheets in order, later ones
// overriding earlier ones, and escapes the result for a <style> element.
func JoinCSS(sheets ...string) template.CSS {
	var parts []string
	for _, css := range sheets {
		if css = strings.TrimSpace(css); css != "" {
			parts = append(parts, css)
		}
	}
	// #nosec G203 -- closing sequences escaped by sanitizeCSS
	return template.CSS(sanitizeCSS(strings.Join(parts, "\n\n")))
}
