package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
)

// ErrUnknownExtension indicates a dialect names an extension that is not registered.
var ErrUnknownExtension = errors.New("unknown markdown extension")

// RawHTMLMode controls what happens to HTML written directly in the source.
type RawHTMLMode string

// Raw HTML modes.
const (
	RawHTMLOmit     RawHTMLMode = "omit"     // replaced by an HTML comment
	RawHTMLSanitize RawHTMLMode = "sanitize" // passed through an allowlist policy
	RawHTMLAllow    RawHTMLMode = "allow"    // emitted unchanged
)

// Valid reports whether m is a known mode.
func (m RawHTMLMode) Valid() bool {
	switch m {
	case RawHTMLOmit, RawHTMLSanitize, RawHTMLAllow:
		return true
	}
	return false
}

// extensionRegistry maps dialect names to goldmark extenders.
var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
	"emoji":         emoji.Emoji,
	"cjk":           extension.CJK,
}

// DefaultExtensions is the dialect of DefaultOptions:
// GitHub Flavored Markdown plus footnotes.
var DefaultExtensions = []string{"gfm", "footnote"}

// ExtensionNames returns the registered extension names in lexical order.
func ExtensionNames() []string {
	names := make([]string, 0, len(extensionRegistry))
	for name := range extensionRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// resolveExtensions maps names to extenders, keeping first-seen order and
// dropping duplicates. Names are matched case-insensitively.
func resolveExtensions(names []string) ([]goldmark.Extender, error) {
	seen := make(map[string]bool, len(names))
	exts := make([]goldmark.Extender, 0, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || seen[name] {
			continue
		}
		ext, ok := extensionRegistry[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownExtension, raw, strings.Join(ExtensionNames(), ", "))
		}
		seen[name] = true
		exts = append(exts, ext)
	}
	return exts, nil
}

// ParseExtensionList splits a comma-separated list such as "gfm, footnote".
// Empty entries are skipped.
func ParseExtensionList(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}
