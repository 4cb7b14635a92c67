package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags, e.g. "*.md,*.markdown"
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
// Style and highlight names come from the library so they never drift.
func flagCompletionMeta() map[string]completionMeta {
	return map[string]completionMeta{
		// Enum flags
		"toc":             {Values: []string{string(md2html.TOCMarker), string(md2html.TOCTop), string(md2html.TOCOff)}},
		"raw-html":        {Values: []string{string(md2html.RawHTMLOmit), string(md2html.RawHTMLSanitize), string(md2html.RawHTMLAllow)}},
		"style":           {Values: md2html.StyleNames()},
		"highlight-style": {Values: md2html.HighlightStyleNames()},
		"completion":      {Values: []string{string(ShellBash), string(ShellZsh), string(ShellFish)}},

		// File flags with glob patterns
		"input":      {FileGlob: "*.md,*.markdown"},
		"output":     {FileGlob: "*.html,*.htm"},
		"config":     {FileGlob: "*.yaml,*.yml"},
		"stylesheet": {FileGlob: "*.css"},

		// Directory flags
		"asset-path": {IsDir: true},
	}
}

// extractFlags extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlags(fs *flag.FlagSet) []flagDef {
	metas := flagCompletionMeta()
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		// Determine base type from pflag type
		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		// Override type based on completion metadata
		if meta, ok := metas[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// completionFlags returns the flag definitions of the md2html command.
func completionFlags() []flagDef {
	return extractFlags(newFlagSet(&cliFlags{set: make(map[string]bool)}))
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	flags := completionFlags()

	var script string
	switch shell {
	case ShellBash:
		script = generateBash(flags)
	case ShellZsh:
		script = generateZsh(flags)
	case ShellFish:
		script = generateFish(flags)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, script)
	return err
}

// generateBash builds a bash completion function for md2html.
func generateBash(flags []flagDef) string {
	var b strings.Builder
	var names []string

	b.WriteString("# bash completion for md2html\n")
	b.WriteString("_md2html() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    case \"$prev\" in\n")

	for _, f := range flags {
		names = append(names, "--"+f.Long)
		if f.Short != "" {
			names = append(names, "-"+f.Short)
		}
		if f.Type == flagBool {
			continue
		}

		fmt.Fprintf(&b, "        %s)\n", bashCasePattern(f))
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(f.Values, " "))
		case flagFile:
			b.WriteString("            COMPREPLY=($(compgen -f -- \"$cur\"))\n")
		case flagDir:
			b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
		default:
			b.WriteString("            COMPREPLY=()\n")
		}
		b.WriteString("            return\n")
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n\n")
	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    COMPREPLY=($(compgen -f -- \"$cur\"))\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -F _md2html md2html\n")

	return b.String()
}

// bashCasePattern returns "-o|--output" or "--output".
func bashCasePattern(f flagDef) string {
	if f.Short != "" {
		return "-" + f.Short + "|--" + f.Long
	}
	return "--" + f.Long
}

// generateZsh builds a zsh _arguments specification for md2html.
func generateZsh(flags []flagDef) string {
	var b strings.Builder

	b.WriteString("#compdef md2html\n\n")
	b.WriteString("_md2html() {\n")
	b.WriteString("    _arguments -s \\\n")

	for _, f := range flags {
		desc := zshEscape(f.Desc)
		var spec string
		if f.Short != "" {
			spec = fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]", f.Short, f.Long, f.Short, f.Long, desc)
		} else {
			spec = fmt.Sprintf("'--%s[%s]", f.Long, desc)
		}

		switch f.Type {
		case flagBool:
			spec += "'"
		case flagEnum:
			spec += fmt.Sprintf(":%s:(%s)'", f.Long, strings.Join(f.Values, " "))
		case flagFile:
			spec += fmt.Sprintf(":file:_files -g \"%s\"'", zshGlob(f.FileGlob))
		case flagDir:
			spec += ":directory:_files -/'"
		default:
			spec += ":" + f.Long + ": '"
		}
		fmt.Fprintf(&b, "        %s \\\n", spec)
	}

	b.WriteString("        '*:markdown file:_files -g \"*.(md|markdown)\"'\n")
	b.WriteString("}\n\n")
	b.WriteString("_md2html \"$@\"\n")

	return b.String()
}

// zshEscape makes a description safe inside '[...]' in a single-quoted spec.
func zshEscape(s string) string {
	r := strings.NewReplacer("[", "(", "]", ")", "'", "'\\''", ":", "\\:")
	return r.Replace(s)
}

// zshGlob converts "*.md,*.markdown" to "*.(md|markdown)".
func zshGlob(glob string) string {
	patterns := strings.Split(glob, ",")
	if len(patterns) == 1 {
		return patterns[0]
	}
	exts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		exts = append(exts, strings.TrimPrefix(p, "*."))
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

// generateFish builds fish complete commands for md2html.
func generateFish(flags []flagDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for md2html\n")
	b.WriteString("complete -c md2html -f\n")
	b.WriteString("complete -c md2html -k -a '(__fish_complete_suffix .md)'\n")

	for _, f := range flags {
		line := "complete -c md2html"
		if f.Short != "" {
			line += " -s " + f.Short
		}
		line += " -l " + f.Long

		switch f.Type {
		case flagEnum:
			line += " -x -a '" + strings.Join(f.Values, " ") + "'"
		case flagFile:
			line += " -r -F"
		case flagDir:
			line += " -x -a '(__fish_complete_directories)'"
		case flagString, flagInt:
			line += " -x"
		}

		line += " -d '" + strings.ReplaceAll(f.Desc, "'", "\\'") + "'"
		b.WriteString(line + "\n")
	}

	return b.String()
}
