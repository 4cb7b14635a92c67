package main

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and asset loading.
type Environment struct {
	Now           func() time.Time
	Stdout        io.Writer
	Stderr        io.Writer
	AssetLoader   md2html.AssetLoader   // Overrides assets.basePath when set
	Config        *config.Config        // Base config when --config is not given
	TerminalWidth func(w io.Writer) int // 0 when w is not a terminal
}

// DefaultEnv returns production environment with embedded assets.
func DefaultEnv() *Environment {
	return &Environment{
		Now:           time.Now,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Config:        config.DefaultConfig(),
		TerminalWidth: terminalWidth,
	}
}

// terminalWidth reports the column count of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) { // #nosec G115 -- file descriptors fit in int
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
	if err != nil {
		return 0
	}
	return width
}
