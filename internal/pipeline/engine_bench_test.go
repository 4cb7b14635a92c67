//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// BenchmarkEngineRender benchmarks parse, inspection and rendering.
func BenchmarkEngineRender(b *testing.B) {
	ctx := context.Background()

	configs := []struct {
		name string
		cfg  EngineConfig
	}{
		{"plain", EngineConfig{Extensions: DefaultExtensions}},
		{"highlighted", EngineConfig{Extensions: DefaultExtensions, Highlight: true}},
		{"sanitized", EngineConfig{Extensions: DefaultExtensions, RawHTML: RawHTMLSanitize}},
	}

	for _, c := range configs {
		engine, err := NewEngine(c.cfg)
		if err != nil {
			b.Fatal(err)
		}
		for _, size := range []int{1, 10, 100} {
			src := []byte(generateNotes(size))
			b.Run(fmt.Sprintf("%s/sections_%d", c.name, size), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := engine.Render(ctx, src); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkPostProcess benchmarks TOC insertion and permalinks on a rendered body.
func BenchmarkPostProcess(b *testing.B) {
	engine, err := NewEngine(EngineConfig{Extensions: DefaultExtensions})
	if err != nil {
		b.Fatal(err)
	}
	frag, err := engine.Render(context.Background(), []byte("[TOC]\n\n"+generateNotes(50)))
	if err != nil {
		b.Fatal(err)
	}
	cfg := TOCConfig{Placement: TOCMarker, MinDepth: 2, MaxDepth: 3}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = AddPermalinks(InsertTOC(frag.HTML, cfg))
	}
}

func generateNotes(sections int) string {
	var sb strings.Builder
	sb.WriteString("# Notes\n\n")
	for i := 0; i < sections; i++ {
		fmt.Fprintf(&sb, "## Section %d\n\nSome ==important== text with *emphasis* and a [link](https://example.com/%d).\n\n", i, i)
		fmt.Fprintf(&sb, "### Detail %d\n\n- item one\n- item two\n\n", i)
		sb.WriteString("```go\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n```\n\n")
		sb.WriteString("| key | value |\n|-----|-------|\n| a | 1 |\n\n")
	}
	return sb.String()
}
