package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/charmbracelet/glamour"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Preview rendering.
const (
	previewStyle        = "dracula" // Terminal output
	previewPlainStyle   = "notty"   // Pipes and files
	defaultPreviewWidth = 80
	maxPreviewWidth     = 120
)

// runPreview renders cfg.Input to the terminal. No file is written.
func runPreview(ctx context.Context, cfg *config.Config, env *Environment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	charset, err := pipeline.LookupCharset(cfg.Encoding)
	if err != nil {
		return err
	}

	data, err := readInput(cfg.Input, cfg.MaxInputSize)
	if err != nil {
		return err
	}
	text, err := charset.Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %w", md2html.ErrInputUnreadable, err)
	}

	_, body, _, _ := pipeline.SplitFrontMatter([]byte(pipeline.Normalize(text)))

	width := 0
	if env.TerminalWidth != nil {
		width = env.TerminalWidth(env.Stdout)
	}
	return renderPreview(env.Stdout, string(body), width)
}

// renderPreview writes markdown styled for a terminal of the given width.
// A width of 0 means w is not a terminal: no colors, default wrapping.
func renderPreview(w io.Writer, markdown string, width int) error {
	style := previewStyle
	switch {
	case width <= 0:
		style = previewPlainStyle
		width = defaultPreviewWidth
	case width > maxPreviewWidth:
		width = maxPreviewWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(markdown)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}

// readInput reads a Markdown file, classifying failures the way
// Converter.ConvertFile does.
func readInput(path string, limit int64) ([]byte, error) {
	data, err := fileutil.ReadFileLimit(path, limit)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", md2html.ErrInputNotFound, path)
	case errors.Is(err, fileutil.ErrTooLarge):
		return nil, fmt.Errorf("%w: %w: %s", md2html.ErrInputUnreadable, md2html.ErrInputTooLarge, path)
	default:
		return nil, fmt.Errorf("%w: %v", md2html.ErrInputUnreadable, err)
	}
}
