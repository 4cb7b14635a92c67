package yamlutil_test

// Notes:
// - Marshal error branch: not tested because yaml.Marshal only fails with
//   unmarshalable types (channels, functions) which are not realistic here.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2html/internal/yamlutil"
)

type testConfig struct {
	Name    string   `yaml:"name"`
	Count   int      `yaml:"count"`
	Enabled bool     `yaml:"enabled"`
	Tags    []string `yaml:"tags"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Parses YAML and rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("name: test\ncount: 42\nenabled: true\ntags: [a, b]"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				if cfg.Name != "test" || cfg.Count != 42 || !cfg.Enabled {
					t.Errorf("got %+v", cfg)
				}
				if len(cfg.Tags) != 2 {
					t.Errorf("Tags = %v, want 2 entries", cfg.Tags)
				}
			},
		},
		{
			name: "unicode content",
			data: []byte("name: 学习笔记"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				if got := v.(*testConfig).Name; got != "学习笔记" {
					t.Errorf("Name = %q, want %q", got, "学习笔记")
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: test"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "input too large",
			data:    []byte("name: " + strings.Repeat("x", yamlutil.MaxInputSize)),
			dest:    &testConfig{},
			wantErr: yamlutil.ErrInputTooLarge,
		},
		{
			name:    "unknown field",
			data:    []byte("name: test\nunknown: value"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("name: [unclosed"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Encodes structs and round-trips through UnmarshalStrict
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	in := testConfig{Name: "notes", Count: 3, Tags: []string{"go"}}
	data, err := yamlutil.Marshal(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "name: notes") {
		t.Errorf("Marshal() = %q, want it to contain %q", data, "name: notes")
	}

	var out testConfig
	if err := yamlutil.UnmarshalStrict(data, &out); err != nil {
		t.Fatalf("UnmarshalStrict(Marshal()) error: %v", err)
	}
	if out.Name != in.Name || out.Count != in.Count || len(out.Tags) != 1 {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
