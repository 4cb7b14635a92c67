package md2html

import (
	"errors"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInputNotFound     = errors.New("input file not found")
	ErrInputUnreadable   = errors.New("input file unreadable")
	ErrInputTooLarge     = errors.New("input exceeds maximum size")
	ErrOutputWriteFailed = errors.New("output write failed")
	ErrInvalidOption     = errors.New("invalid option")
	ErrStylesheet        = errors.New("stylesheet could not be loaded")

	// Rendering errors, shared with the pipeline stages.
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrTemplateRender = pipeline.ErrTemplateRender

	// Dialect and rendering option errors.
	ErrUnknownExtension      = pipeline.ErrUnknownExtension
	ErrUnknownRawHTMLMode    = pipeline.ErrUnknownRawHTMLMode
	ErrUnknownHighlightStyle = pipeline.ErrUnknownHighlightStyle
	ErrInvalidTOC            = pipeline.ErrInvalidTOC

	// Character set errors.
	ErrUnknownEncoding = pipeline.ErrUnknownEncoding
	ErrInvalidEncoding = pipeline.ErrInvalidEncoding

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
