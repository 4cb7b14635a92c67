package pipeline

import (
	"strings"
	"testing"
)

func TestSanitizer_Sanitize(t *testing.T) {
	t.Parallel()

	s := NewSanitizer()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "script removed with content",
			input:        "<p>a</p><script>alert(1)</script>",
			wantContains: []string{"<p>a</p>"},
			wantExcludes: []string{"script", "alert"},
		},
		{
			name:         "event handler removed",
			input:        `<p onclick="x()">a</p>`,
			wantExcludes: []string{"onclick"},
		},
		{
			name:         "javascript URL removed",
			input:        `<a href="javascript:alert(1)">a</a>`,
			wantExcludes: []string{"javascript:"},
		},
		{
			name:         "mark kept",
			input:        "<p><mark>hot</mark></p>",
			wantContains: []string{"<mark>hot</mark>"},
		},
		{
			name:         "highlight classes kept",
			input:        `<pre tabindex="0" class="chroma"><code><span class="kn">package</span></code></pre>`,
			wantContains: []string{`class="chroma"`, `class="kn"`, `tabindex="0"`},
		},
		{
			name:         "unicode heading id kept",
			input:        `<h2 id="学习">学习</h2>`,
			wantContains: []string{`id="学习"`},
		},
		{
			name:         "footnote markup kept",
			input:        `<sup id="fnref:1"><a href="#fn:1" class="footnote-ref" role="doc-noteref">1</a></sup>`,
			wantContains: []string{`id="fnref:1"`, `role="doc-noteref"`, `href="#fn:1"`},
		},
		{
			name:         "style attribute removed",
			input:        `<p style="position:fixed">a</p>`,
			wantExcludes: []string{"style="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := s.Sanitize(tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Sanitize() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("Sanitize() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}
