// Package assets provides CSS styles and the HTML document template used to
// wrap rendered Markdown.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in styles (notes, plain) and the default
// document template embedded at compile time.
//
// FilesystemLoader allows users to provide custom assets from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the asset is not
// found. This enables overriding the document template while keeping the
// built-in styles, or the reverse.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # CSS styles (e.g., notes.css)
//	└── templates/
//	    └── {name}.html          # html/template document shells (e.g., document.html)
//
// A document template receives Lang, Charset, Title, Description, Author,
// Keywords, CSS, StylesheetHref, TitleHeading and Body.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
