package assets

import "errors"

// Lookup errors. The resolver falls back to the embedded assets only for these.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
)

// Errors from a custom asset directory. They are reported as is, without
// falling back to the embedded assets.
var (
	ErrInvalidAssetName = errors.New("invalid asset name") // separators, traversal or bad characters
	ErrInvalidBasePath  = errors.New("invalid asset directory")
	ErrPathTraversal    = errors.New("asset path escapes the asset directory")
	ErrAssetRead        = errors.New("asset file unreadable")
)
