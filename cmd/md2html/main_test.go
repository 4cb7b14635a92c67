package main

// Notes:
// - runMain: we run the full command against temp files and check exit
//   codes, stdout/stderr and the written file. Each test passes absolute
//   paths so tests can run in parallel; the default notes.md lookup is
//   tested once with t.Chdir.
// - Signal delivery is not tested here (see signal_test.go).

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2html/internal/config"
)

// testEnv returns an environment writing to buffers with a fixed clock.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &Environment{
		Now:           func() time.Time { return fixed },
		Stdout:        &stdout,
		Stderr:        &stderr,
		Config:        config.DefaultConfig(),
		TerminalWidth: func(io.Writer) int { return 0 },
	}, &stdout, &stderr
}

func writeTestFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestRunMain_Convert - Successful conversions
// ---------------------------------------------------------------------------

func TestRunMain_Convert(t *testing.T) {
	t.Parallel()

	t.Run("writes html next to input", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeTestFile(t, filepath.Join(dir, "week1.md"), "# Week 1\n\nNotes.\n")
		env, stdout, stderr := testEnv()

		if code := runMain([]string{"md2html", "-i", in}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr = %s", code, stderr)
		}

		out := filepath.Join(dir, "week1.html")
		html := readTestFile(t, out)
		if !strings.Contains(html, "<title>Week 1</title>") {
			t.Errorf("output missing title:\n%s", html)
		}
		if got := stdout.String(); got != "Created "+out+"\n" {
			t.Errorf("stdout = %q", got)
		}
		if stderr.Len() != 0 {
			t.Errorf("stderr = %q, want empty", stderr)
		}
	})

	t.Run("positional input and explicit output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeTestFile(t, filepath.Join(dir, "src", "a.md"), "text\n")
		out := filepath.Join(dir, "site", "a.html")
		if err := os.MkdirAll(filepath.Dir(out), 0o750); err != nil {
			t.Fatal(err)
		}
		env, _, stderr := testEnv()

		if code := runMain([]string{"md2html", in, "-o", out, "-t", "Notes"}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr = %s", code, stderr)
		}
		if html := readTestFile(t, out); !strings.Contains(html, "<title>Notes</title>") {
			t.Errorf("output missing forced title:\n%s", html)
		}
	})

	t.Run("flag title beats front matter beats config", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfgPath := writeTestFile(t, filepath.Join(dir, "notes.yaml"), "title: From Config\n")
		in := writeTestFile(t, filepath.Join(dir, "fm.md"), "---\ntitle: From Front Matter\n---\n# Heading\n")
		out := filepath.Join(dir, "fm.html")

		env, _, _ := testEnv()
		if code := runMain([]string{"md2html", "-c", cfgPath, "-i", in}, env); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if html := readTestFile(t, out); !strings.Contains(html, "<title>From Front Matter</title>") {
			t.Errorf("front matter should beat config:\n%s", html)
		}

		env, _, _ = testEnv()
		if code := runMain([]string{"md2html", "-c", cfgPath, "-i", in, "--title", "From Flag"}, env); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if html := readTestFile(t, out); !strings.Contains(html, "<title>From Flag</title>") {
			t.Errorf("flag should beat front matter:\n%s", html)
		}
	})

	t.Run("config title beats first heading", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfgPath := writeTestFile(t, filepath.Join(dir, "notes.yaml"), "title: From Config\n")
		in := writeTestFile(t, filepath.Join(dir, "h.md"), "# Heading\n")

		env, _, _ := testEnv()
		if code := runMain([]string{"md2html", "-c", cfgPath, "-i", in}, env); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if html := readTestFile(t, filepath.Join(dir, "h.html")); !strings.Contains(html, "<title>From Config</title>") {
			t.Errorf("config title should beat heading:\n%s", html)
		}
	})

	t.Run("warnings go to stderr and do not fail", func(t *testing.T) {
		t.Parallel()

		in := writeTestFile(t, filepath.Join(t.TempDir(), "w.md"), "Intro\n\n```go\nnever closed\n")
		env, stdout, stderr := testEnv()

		if code := runMain([]string{"md2html", "-i", in}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr = %s", code, stderr)
		}
		if !strings.Contains(stderr.String(), "warning: line 3: ") {
			t.Errorf("stderr = %q, want a line 3 warning", stderr)
		}
		if !strings.HasPrefix(stdout.String(), "Created ") {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("quiet prints nothing", func(t *testing.T) {
		t.Parallel()

		in := writeTestFile(t, filepath.Join(t.TempDir(), "q.md"), "```\nopen\n")
		env, stdout, stderr := testEnv()

		if code := runMain([]string{"md2html", "-q", "-i", in}, env); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if stdout.Len() != 0 || stderr.Len() != 0 {
			t.Errorf("stdout = %q, stderr = %q, want both empty", stdout, stderr)
		}
	})

	t.Run("verbose reports timing and debug logs", func(t *testing.T) {
		t.Parallel()

		in := writeTestFile(t, filepath.Join(t.TempDir(), "v.md"), "# V\n")
		env, stdout, stderr := testEnv()

		if code := runMain([]string{"md2html", "-v", "-i", in}, env); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if !strings.Contains(stdout.String(), " -> ") {
			t.Errorf("stdout = %q, want in -> out", stdout)
		}
		if !strings.Contains(stderr.String(), "level=DEBUG") {
			t.Errorf("stderr = %q, want debug logs", stderr)
		}
	})

	t.Run("no-style and no-highlight drop built-in css", func(t *testing.T) {
		t.Parallel()

		in := writeTestFile(t, filepath.Join(t.TempDir(), "s.md"), "```go\nx := 1\n```\n")
		env, _, _ := testEnv()

		if code := runMain([]string{"md2html", "--no-style", "--no-highlight", "-i", in}, env); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		html := readTestFile(t, strings.TrimSuffix(in, ".md")+".html")
		if strings.Contains(html, "<style>") {
			t.Errorf("output should have no <style> block:\n%s", html)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_DefaultInput - notes.md in the working directory
// ---------------------------------------------------------------------------

func TestRunMain_DefaultInput(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "notes.md"), "# Notes\n")
	t.Chdir(dir)

	env, stdout, _ := testEnv()
	if code := runMain([]string{"md2html"}, env); code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if got := stdout.String(); got != "Created notes.html\n" {
		t.Errorf("stdout = %q", got)
	}
	if html := readTestFile(t, filepath.Join(dir, "notes.html")); !strings.Contains(html, "<title>Notes</title>") {
		t.Errorf("output missing title:\n%s", html)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Errors - Exit codes and hints
// ---------------------------------------------------------------------------

func TestRunMain_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       func(t *testing.T, dir string) []string
		wantCode   int
		wantStderr []string
	}{
		{
			name:       "missing input",
			args:       func(t *testing.T, dir string) []string { return []string{"-i", filepath.Join(dir, "absent.md")} },
			wantCode:   ExitNotFound,
			wantStderr: []string{"error: ", "hint: use --input", "create notes.md"},
		},
		{
			name: "input is a directory",
			args: func(t *testing.T, dir string) []string {
				sub := filepath.Join(dir, "folder.md")
				_ = os.Mkdir(sub, 0o750)
				return []string{"-i", sub}
			},
			wantCode: ExitUnreadable,
		},
		{
			name: "input too large",
			args: func(t *testing.T, dir string) []string {
				cfg := writeTestFile(t, filepath.Join(dir, "small.yaml"), "maxInputSize: 4\n")
				in := writeTestFile(t, filepath.Join(dir, "big.md"), "more than four bytes\n")
				return []string{"-c", cfg, "-i", in}
			},
			wantCode:   ExitUnreadable,
			wantStderr: []string{"hint: raise maxInputSize"},
		},
		{
			name: "invalid utf-8",
			args: func(t *testing.T, dir string) []string {
				return []string{"-i", writeTestFile(t, filepath.Join(dir, "bad.md"), "caf\xe9\n")}
			},
			wantCode:   ExitUnreadable,
			wantStderr: []string{"hint: use --encoding"},
		},
		{
			name: "missing output directory",
			args: func(t *testing.T, dir string) []string {
				in := writeTestFile(t, filepath.Join(dir, "ok.md"), "# ok\n")
				return []string{"-i", in, "-o", filepath.Join(dir, "missing", "ok.html")}
			},
			wantCode:   ExitWriteFailed,
			wantStderr: []string{"hint: check parent directory"},
		},
		{
			name:       "unknown flag",
			args:       func(*testing.T, string) []string { return []string{"--page-size", "a4"} },
			wantCode:   ExitUsage,
			wantStderr: []string{"hint: run 'md2html --help'"},
		},
		{
			name: "unknown style",
			args: func(t *testing.T, dir string) []string {
				return []string{"-i", writeTestFile(t, filepath.Join(dir, "s.md"), "x\n"), "--style", "fancy"}
			},
			wantCode:   ExitUsage,
			wantStderr: []string{"hint: available: notes, plain"},
		},
		{
			name: "unknown extension",
			args: func(t *testing.T, dir string) []string {
				return []string{"-i", writeTestFile(t, filepath.Join(dir, "e.md"), "x\n"), "--extensions", "gfm,mermaid"}
			},
			wantCode:   ExitUsage,
			wantStderr: []string{"mermaid"},
		},
		{
			name: "unknown encoding",
			args: func(t *testing.T, dir string) []string {
				return []string{"-i", writeTestFile(t, filepath.Join(dir, "u.md"), "x\n"), "--encoding", "klingon"}
			},
			wantCode: ExitUsage,
		},
		{
			name:     "invalid raw html mode",
			args:     func(*testing.T, string) []string { return []string{"--raw-html", "strip"} },
			wantCode: ExitUsage,
		},
		{
			name:     "toc depth out of range",
			args:     func(*testing.T, string) []string { return []string{"--toc-max-depth", "9"} },
			wantCode: ExitUsage,
		},
		{
			name:       "config file not found",
			args:       func(t *testing.T, dir string) []string { return []string{"-c", filepath.Join(dir, "none.yaml")} },
			wantCode:   ExitUsage,
			wantStderr: []string{"hint: use --config"},
		},
		{
			name: "config parse error",
			args: func(t *testing.T, dir string) []string {
				return []string{"-c", writeTestFile(t, filepath.Join(dir, "bad.yaml"), "pageSize: a4\n")}
			},
			wantCode: ExitUsage,
		},
		{
			name: "output overwrites input",
			args: func(t *testing.T, dir string) []string {
				in := writeTestFile(t, filepath.Join(dir, "same.md"), "x\n")
				return []string{"-i", in, "-o", in}
			},
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			args := append([]string{"md2html"}, tt.args(t, t.TempDir())...)

			if code := runMain(args, env); code != tt.wantCode {
				t.Fatalf("exit = %d, want %d; stderr = %s", code, tt.wantCode, stderr)
			}
			if !strings.HasPrefix(stderr.String(), "error: ") {
				t.Errorf("stderr = %q, want error: prefix", stderr)
			}
			for _, want := range tt.wantStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr = %q, want it to contain %q", stderr, want)
				}
			}
			if stdout.Len() != 0 {
				t.Errorf("stdout = %q, want empty on error", stdout)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_InfoFlags - help, version and print-config
// ---------------------------------------------------------------------------

func TestRunMain_InfoFlags(t *testing.T) {
	t.Parallel()

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		if code := runMain([]string{"md2html", "--help"}, env); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if !strings.Contains(stdout.String(), "Usage: md2html") {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("version", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		if code := runMain([]string{"md2html", "--version"}, env); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if got, want := stdout.String(), "md2html "+Version+"\n"; got != want {
			t.Errorf("stdout = %q, want %q", got, want)
		}
	})

	t.Run("print-config reflects flags", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		code := runMain([]string{"md2html", "--print-config", "--style", "plain", "--toc", "top", "--no-permalinks"}, env)
		if code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		for _, want := range []string{"style: plain", "placement: top", "permalinks: false", "input: notes.md"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("print-config output missing %q:\n%s", want, stdout)
			}
		}
	})

	t.Run("print-config output loads back", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		if code := runMain([]string{"md2html", "--print-config", "--lang", "fr", "--extensions", "gfm,emoji"}, env); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		path := writeTestFile(t, filepath.Join(t.TempDir(), "printed.yaml"), stdout.String())

		cfg, err := config.LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(printed) error: %v", err)
		}
		if cfg.Lang != "fr" || len(cfg.Dialect.Extensions) != 2 || cfg.Dialect.Extensions[1] != "emoji" {
			t.Errorf("round trip = %+v", cfg)
		}
	})
}
