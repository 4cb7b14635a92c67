// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForInputNotFound returns hints for a missing Markdown input.
// Suggests --input, and the default file name when the missing file is not it.
func ForInputNotFound(path, defaultInput string) string {
	hints := []string{"use --input /path/to/file.md"}
	if filepath.Base(path) != defaultInput {
		hints = append(hints, "or create "+defaultInput+" in the working directory")
	}
	return formatHints(hints)
}

// ForUsage returns a hint pointing at the command help.
func ForUsage() string {
	return format("run 'md2html --help' for usage")
}

// ForInputTooLarge returns a hint about raising the input size limit.
func ForInputTooLarge() string {
	return format("raise maxInputSize in the config file (0 disables the limit)")
}

// ForEncoding returns a hint for input that is not valid in the declared charset.
func ForEncoding() string {
	return format("use --encoding to name the source charset, e.g. gbk or windows-1252")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2html/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-md2html) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/go-md2html") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	return ForAvailable(available)
}

// ForAvailable lists the accepted names for an unknown extension,
// highlight style or encoding.
func ForAvailable(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
