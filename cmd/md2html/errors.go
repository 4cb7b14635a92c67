package main

import (
	"errors"
	"fmt"
	"io"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
)

// printError writes "error: <message>" and an optional hint line.
// f and cfg may be nil when the failure happened before they were resolved.
func printError(w io.Writer, err error, f *cliFlags, cfg *config.Config) {
	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err, f, cfg))
}

// hintFor returns the hint for err, or "" when there is nothing actionable.
func hintFor(err error, f *cliFlags, cfg *config.Config) string {
	switch {
	case errors.Is(err, ErrUsage):
		return hints.ForUsage()
	case errors.Is(err, md2html.ErrInputNotFound):
		defaultInput := config.DefaultConfig().Input
		input := defaultInput
		if cfg != nil {
			input = cfg.Input
		}
		return hints.ForInputNotFound(input, defaultInput)
	case errors.Is(err, md2html.ErrInputTooLarge):
		return hints.ForInputTooLarge()
	case errors.Is(err, md2html.ErrInvalidEncoding), errors.Is(err, md2html.ErrUnknownEncoding):
		return hints.ForEncoding()
	case errors.Is(err, md2html.ErrOutputWriteFailed):
		return hints.ForOutputDirectory()
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if f != nil && !fileutil.IsFilePath(f.common.config) {
			searched = config.SearchPaths(f.common.config)
		}
		return hints.ForConfigNotFound(searched)
	case errors.Is(err, md2html.ErrStyleNotFound):
		return hints.ForStyleNotFound(md2html.StyleNames())
	case errors.Is(err, md2html.ErrUnknownHighlightStyle):
		return hints.ForAvailable(md2html.HighlightStyleNames())
	}
	return ""
}
