package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Sentinel errors for character set handling.
var (
	ErrUnknownEncoding = errors.New("unknown character encoding")
	ErrInvalidEncoding = errors.New("input is not valid in the declared encoding")
)

// DefaultCharset is used when no encoding is configured.
const DefaultCharset = "utf-8"

// Charset decodes source text and encodes the rendered document.
type Charset struct {
	name string
	enc  encoding.Encoding // nil for UTF-8
}

// LookupCharset resolves a WHATWG encoding label such as "utf-8", "latin1"
// or "gb18030". An empty name selects UTF-8.
func LookupCharset(label string) (*Charset, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultCharset
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = strings.ToLower(label)
	}
	if name == DefaultCharset {
		return &Charset{name: name}, nil
	}
	return &Charset{name: name, enc: enc}, nil
}

// Name returns the canonical charset name for <meta charset>.
func (c *Charset) Name() string {
	return c.name
}

// IsUTF8 reports whether c is UTF-8.
func (c *Charset) IsUTF8() bool {
	return c.enc == nil
}

// Decode converts data to a UTF-8 string.
// UTF-8 input that is not valid UTF-8 returns ErrInvalidEncoding.
func (c *Charset) Decode(data []byte) (string, error) {
	if c.enc == nil {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %s", ErrInvalidEncoding, c.name)
		}
		return string(data), nil
	}
	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidEncoding, c.name, err)
	}
	return string(out), nil
}

// Encode converts a UTF-8 document to the charset. Characters the charset
// cannot represent become numeric character references.
func (c *Charset) Encode(s string) ([]byte, error) {
	if c.enc == nil {
		return []byte(s), nil
	}
	out, err := encoding.HTMLEscapeUnsupported(c.enc.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encoding output as %s: %w", c.name, err)
	}
	return out, nil
}
