package term

import (
	"io"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Fallback grid when nothing better is known.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

type fder interface{ Fd() uintptr }

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f fder) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DetectSize returns the size of the terminal behind w, or the default
// grid when w is not a terminal.
func DetectSize(w io.Writer) (int, int) {
	f, ok := w.(fder)
	if !ok || !IsTerminal(f) {
		return DefaultWidth, DefaultHeight
	}
	cols, rows, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return cols, rows
}

// ParseProfile maps a --color value to a termenv profile. "auto" and
// unknown values detect from w and the environment.
func ParseProfile(name string, w io.Writer) termenv.Profile {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "truecolor", "24bit", "true":
		return termenv.TrueColor
	case "256", "ansi256":
		return termenv.ANSI256
	case "16", "ansi":
		return termenv.ANSI
	case "none", "ascii", "mono":
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}
