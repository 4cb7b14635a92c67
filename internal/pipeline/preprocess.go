package pipeline

import (
	"regexp"
	"strings"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

const utf8BOM = "\uFEFF"

// Normalize strips a UTF-8 byte order mark and converts \r\n and \r to \n.
func Normalize(content string) string {
	content = strings.TrimPrefix(content, utf8BOM)
	return crlfOrCR.ReplaceAllString(content, "\n")
}
