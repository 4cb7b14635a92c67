package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html [flags] [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a markdown notes file to a standalone HTML document.")
	fmt.Fprintln(w, "Without flags, notes.md in the working directory becomes notes.html.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>          Markdown input (default: notes.md)")
	fmt.Fprintln(w, "  -o, --output <path>         HTML output (default: input with .html)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -t, --title <s>             Document title (wins over front matter)")
	fmt.Fprintln(w, "      --title-heading         Emit the title as <h1 class=\"title\">")
	fmt.Fprintln(w, "      --lang <tag>            Language tag for <html lang> (default: en)")
	fmt.Fprintln(w, "      --encoding <name>       Input and output charset (default: utf-8)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "  -s, --stylesheet <path>     Link an extra stylesheet (path or URL)")
	fmt.Fprintln(w, "      --embed-stylesheet      Inline --stylesheet instead of linking it")
	fmt.Fprintln(w, "      --style <name>          Built-in or custom style (default: notes)")
	fmt.Fprintln(w, "      --no-style              Disable the built-in style")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom styles/ and templates/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "      --extensions <list>     Comma-separated extensions (default: gfm,footnote)")
	fmt.Fprintln(w, "                              Names: gfm, table, strikethrough, linkify, tasklist,")
	fmt.Fprintln(w, "                              definition, footnote, typographer, emoji, cjk")
	fmt.Fprintln(w, "      --hard-wraps            Render newlines as <br>")
	fmt.Fprintln(w, "      --raw-html <mode>       Raw HTML: omit, sanitize, allow (default: omit)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Code:")
	fmt.Fprintln(w, "      --no-highlight          Disable syntax highlighting")
	fmt.Fprintln(w, "      --highlight-style <s>   Chroma style (default: monokai)")
	fmt.Fprintln(w, "      --line-numbers          Number lines in code blocks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --toc <placement>       marker ([TOC] paragraphs), top, off (default: marker)")
	fmt.Fprintln(w, "      --toc-title <s>         TOC heading text")
	fmt.Fprintln(w, "      --toc-min-depth <n>     Min heading depth (1-6)")
	fmt.Fprintln(w, "      --toc-max-depth <n>     Max heading depth (1-6)")
	fmt.Fprintln(w, "      --no-permalinks         Disable heading permalinks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --print-config          Print the effective config as YAML and exit")
	fmt.Fprintln(w, "      --preview               Render to the terminal instead of writing HTML")
	fmt.Fprintln(w, "      --completion <shell>    Print a completion script: bash, zsh, fish")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show debug logs and timing")
	fmt.Fprintln(w, "      --version               Show version")
	fmt.Fprintln(w, "  -h, --help                  Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Precedence: flags > front matter (title, lang) > config file > defaults.")
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 error, 2 usage, 3 input not found, 4 input unreadable,")
	fmt.Fprintln(w, "            5 output not written.")
}
