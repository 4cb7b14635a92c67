package main

import (
	"errors"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
)

// Exit codes for the md2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess     = 0 // Document written (or config printed, or preview shown)
	ExitGeneral     = 1 // General/unexpected error, including interruption
	ExitUsage       = 2 // Invalid flags, config, or validation
	ExitNotFound    = 3 // Input file does not exist
	ExitUnreadable  = 4 // Input exists but cannot be read or decoded
	ExitWriteFailed = 5 // Output could not be written
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, md2html.ErrInputNotFound) {
		return ExitNotFound
	}

	if errors.Is(err, md2html.ErrInputUnreadable) {
		return ExitUnreadable
	}

	if errors.Is(err, md2html.ErrOutputWriteFailed) {
		return ExitWriteFailed
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2html.ErrInvalidOption) ||
		errors.Is(err, md2html.ErrStylesheet) ||
		errors.Is(err, md2html.ErrUnknownExtension) ||
		errors.Is(err, md2html.ErrUnknownRawHTMLMode) ||
		errors.Is(err, md2html.ErrUnknownHighlightStyle) ||
		errors.Is(err, md2html.ErrUnknownEncoding) ||
		errors.Is(err, md2html.ErrInvalidTOC) ||
		errors.Is(err, md2html.ErrStyleNotFound) ||
		errors.Is(err, md2html.ErrTemplateNotFound) ||
		errors.Is(err, md2html.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
