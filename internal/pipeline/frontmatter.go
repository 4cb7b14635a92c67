package pipeline

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// Meta is the document metadata read from a front matter block.
type Meta struct {
	Title       string
	Lang        string
	Description string
	Author      string
	Keywords    []string
}

// frontMatterEnvelope mirrors the supported keys in YAML, TOML and JSON.
// Keywords may be a list or a single comma-separated string.
type frontMatterEnvelope struct {
	Title       string `yaml:"title" toml:"title" json:"title"`
	Lang        string `yaml:"lang" toml:"lang" json:"lang"`
	Description string `yaml:"description" toml:"description" json:"description"`
	Author      string `yaml:"author" toml:"author" json:"author"`
	Keywords    any    `yaml:"keywords" toml:"keywords" json:"keywords"`
}

// SplitFrontMatter separates a leading front matter block (--- YAML,
// +++ TOML) from the Markdown body. It returns the metadata, the body and
// the number of lines removed before the body, so warning line numbers can
// be reported against the original file.
//
// A block that fails to decode is reported as a warning and the whole
// source is returned as the body.
func SplitFrontMatter(source []byte) (Meta, []byte, int, []Warning) {
	if !hasFrontMatterDelimiter(source) {
		return Meta{}, source, 0, nil
	}

	var env frontMatterEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &env)
	if err != nil {
		return Meta{}, source, 0, []Warning{{
			Line:    1,
			Kind:    WarnMalformedFrontMatter,
			Message: fmt.Sprintf("front matter ignored: %v", err),
		}}
	}

	offset := 0
	if bytes.HasSuffix(source, body) {
		offset = bytes.Count(source[:len(source)-len(body)], []byte("\n"))
	}

	return Meta{
		Title:       strings.TrimSpace(env.Title),
		Lang:        strings.TrimSpace(env.Lang),
		Description: strings.TrimSpace(env.Description),
		Author:      strings.TrimSpace(env.Author),
		Keywords:    keywordList(env.Keywords),
	}, body, offset, nil
}

// hasFrontMatterDelimiter reports whether source starts like a front matter block.
func hasFrontMatterDelimiter(source []byte) bool {
	return bytes.HasPrefix(source, []byte("---")) ||
		bytes.HasPrefix(source, []byte("+++")) ||
		bytes.HasPrefix(source, []byte(";;;"))
}

func keywordList(v any) []string {
	var raw []string
	switch kw := v.(type) {
	case string:
		raw = strings.Split(kw, ",")
	case []any:
		for _, item := range kw {
			raw = append(raw, fmt.Sprint(item))
		}
	case []string:
		raw = kw
	}

	var out []string
	for _, k := range raw {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
