package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxTitleLength     = 200  // Document title
	MaxLangLength      = 35   // BCP 47 tag, generous
	MaxEncodingLength  = 40   // WHATWG encoding label
	MaxNameLength      = 64   // Style, highlight style, extension names
	MaxTOCTitleLength  = 100  // TOC heading
	MaxExtensionCount  = 32   // Dialect extensions
	DefaultMaxInputMiB = 16
)

// DefaultConfigDirName is the directory searched under os.UserConfigDir.
const DefaultConfigDirName = "go-md2html"

// Config holds all configuration for one conversion.
type Config struct {
	Input        string           `yaml:"input"`        // Markdown source
	Output       string           `yaml:"output"`       // HTML target (empty = input with .html)
	Title        string           `yaml:"title"`        // Document title fallback
	TitleHeading bool             `yaml:"titleHeading"` // Emit <h1 class="title">
	Lang         string           `yaml:"lang"`
	Encoding     string           `yaml:"encoding"`
	Style        string           `yaml:"style"` // Built-in or custom style name (empty = none)
	Stylesheet   StylesheetConfig `yaml:"stylesheet"`
	Assets       AssetsConfig     `yaml:"assets"`
	Dialect      DialectConfig    `yaml:"dialect"`
	Highlight    HighlightConfig  `yaml:"highlight"`
	TOC          TOCConfig        `yaml:"toc"`
	Permalinks   bool             `yaml:"permalinks"`
	MaxInputSize int64            `yaml:"maxInputSize"` // Bytes; 0 disables the limit
}

// StylesheetConfig defines an external stylesheet.
type StylesheetConfig struct {
	Path  string `yaml:"path"`  // File path or URL
	Embed bool   `yaml:"embed"` // Inline the file instead of linking it
}

// AssetsConfig defines custom asset location.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Directory with styles/ and templates/ (empty = embedded only)
}

// DialectConfig selects the Markdown dialect.
type DialectConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hardWraps"`
	RawHTML    string   `yaml:"rawHTML"` // omit, sanitize, allow
}

// HighlightConfig defines code block highlighting.
type HighlightConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Style       string `yaml:"style"` // Chroma style name
	LineNumbers bool   `yaml:"lineNumbers"`
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Placement string `yaml:"placement"` // marker, top, off
	Title     string `yaml:"title"`
	MinDepth  int    `yaml:"minDepth"` // 1-6, 0 = default
	MaxDepth  int    `yaml:"maxDepth"` // 1-6, 0 = default
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input:    "notes.md",
		Lang:     "en",
		Encoding: "utf-8",
		Style:    "notes",
		Dialect: DialectConfig{
			Extensions: []string{"gfm", "footnote"},
			RawHTML:    "omit",
		},
		Highlight: HighlightConfig{
			Enabled: true,
			Style:   "monokai",
		},
		TOC: TOCConfig{
			Placement: "marker",
			MinDepth:  1,
			MaxDepth:  6,
		},
		Permalinks:   true,
		MaxInputSize: DefaultMaxInputMiB << 20,
	}
}

// OutputPath returns Output, or Input with its extension replaced by .html.
func (c *Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return fileutil.ReplaceExt(c.Input, ".html")
}

// Validate checks field lengths and enumerated values.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input", c.Input, MaxPathLength},
		{"output", c.Output, MaxPathLength},
		{"title", c.Title, MaxTitleLength},
		{"lang", c.Lang, MaxLangLength},
		{"encoding", c.Encoding, MaxEncodingLength},
		{"style", c.Style, MaxNameLength},
		{"stylesheet.path", c.Stylesheet.Path, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"highlight.style", c.Highlight.Style, MaxNameLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Stylesheet.Embed && c.Stylesheet.Path == "" {
		return fmt.Errorf("%w: stylesheet.path: required when stylesheet.embed is set", ErrInvalidValue)
	}

	// Validate dialect
	if len(c.Dialect.Extensions) > MaxExtensionCount {
		return fmt.Errorf("%w: dialect.extensions: %d entries (max %d)", ErrInvalidValue, len(c.Dialect.Extensions), MaxExtensionCount)
	}
	for i, name := range c.Dialect.Extensions {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: dialect.extensions[%d]: empty name", ErrInvalidValue, i)
		}
		if err := validateFieldLength(fmt.Sprintf("dialect.extensions[%d]", i), name, MaxNameLength); err != nil {
			return err
		}
	}
	switch c.Dialect.RawHTML {
	case "", "omit", "sanitize", "allow":
		// valid
	default:
		return fmt.Errorf("%w: dialect.rawHTML: %q (must be omit, sanitize, or allow)", ErrInvalidValue, c.Dialect.RawHTML)
	}

	// Validate TOC
	switch c.TOC.Placement {
	case "", "marker", "top", "off":
		// valid
	default:
		return fmt.Errorf("%w: toc.placement: %q (must be marker, top, or off)", ErrInvalidValue, c.TOC.Placement)
	}
	for _, d := range []struct {
		name  string
		value int
	}{{"toc.minDepth", c.TOC.MinDepth}, {"toc.maxDepth", c.TOC.MaxDepth}} {
		if d.value < 0 || d.value > 6 {
			return fmt.Errorf("%w: %s: must be between 1 and 6, got %d", ErrInvalidValue, d.name, d.value)
		}
	}
	if c.TOC.MinDepth != 0 && c.TOC.MaxDepth != 0 && c.TOC.MinDepth > c.TOC.MaxDepth {
		return fmt.Errorf("%w: toc.minDepth (%d) exceeds toc.maxDepth (%d)", ErrInvalidValue, c.TOC.MinDepth, c.TOC.MaxDepth)
	}

	if c.MaxInputSize < 0 {
		return fmt.Errorf("%w: maxInputSize: must not be negative, got %d", ErrInvalidValue, c.MaxInputSize)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal encodes the configuration as YAML, for --print-config.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// SearchPaths lists the files tried for a config name, in lookup order:
// the current directory, then the user config directory, each with
// .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, DefaultConfigDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
