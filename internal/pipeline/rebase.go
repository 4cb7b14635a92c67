package pipeline

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rebasedAttrs lists the URL attributes rewritten per element.
var rebasedAttrs = map[atom.Atom]string{
	atom.A:      "href",
	atom.Img:    "src",
	atom.Video:  "src",
	atom.Audio:  "src",
	atom.Source: "src",
}

// RebaseRelativePaths rewrites relative links and media sources in an HTML
// fragment so they keep pointing at the same files when the document is
// written to outputDir instead of next to its source in sourceDir.
// Anchors, absolute paths and URLs with a scheme or host are left alone.
// When the two directories are the same the fragment is returned unchanged.
func RebaseRelativePaths(fragment, sourceDir, outputDir string) (string, error) {
	if fragment == "" || sourceDir == "" || outputDir == "" {
		return fragment, nil
	}

	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}
	absOutput, err := filepath.Abs(outputDir)
	if err != nil {
		return "", err
	}
	if absSource == absOutput {
		return fragment, nil
	}

	rel, err := filepath.Rel(absOutput, absSource)
	if err != nil {
		// Different volumes: no relative path exists.
		return fragment, nil
	}
	prefix := escapeSegments(filepath.ToSlash(rel))

	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	})
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, n := range nodes {
		rebaseNode(n, prefix)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rebaseNode(n *html.Node, prefix string) {
	if n.Type == html.ElementNode {
		if key, ok := rebasedAttrs[n.DataAtom]; ok {
			for i, attr := range n.Attr {
				if attr.Key == key && isRebasable(attr.Val) {
					n.Attr[i].Val = rebase(prefix, attr.Val)
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rebaseNode(c, prefix)
	}
}

// rebase joins prefix and ref, keeping any query or fragment as is.
func rebase(prefix, ref string) string {
	p, suffix := ref, ""
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		p, suffix = ref[:i], ref[i:]
	}
	out := path.Clean(prefix + "/" + p)
	if strings.HasSuffix(p, "/") {
		out += "/"
	}
	return out + suffix
}

// isRebasable reports whether ref is a relative path reference.
func isRebasable(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "?") || strings.HasPrefix(ref, "/") {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

// escapeSegments percent-encodes each segment of a slash-separated path.
func escapeSegments(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
