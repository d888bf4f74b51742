package term

import (
	"bufio"
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"runefall/internal/palette"
)

// ANSI renders frames as escape sequences onto a writer. It is the headless
// display: no raw mode, no input, a fixed grid.
type ANSI struct {
	buf           *bufio.Writer
	out           *termenv.Output
	width, height int

	// Last emitted foreground, to skip redundant color sequences.
	fg    palette.Color
	fgSet bool
}

// NewANSI writes width x height frames to w using the given color profile.
func NewANSI(w io.Writer, profile termenv.Profile, width, height int) *ANSI {
	buf := bufio.NewWriter(w)
	return &ANSI{
		buf:    buf,
		out:    termenv.NewOutput(buf, termenv.WithProfile(profile)),
		width:  width,
		height: height,
	}
}

// Size returns the fixed grid dimensions.
func (a *ANSI) Size() (int, int, error) {
	if a.width <= 0 || a.height <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrNoSize, a.width, a.height)
	}
	return a.width, a.height, nil
}

// Begin hides the cursor and clears the screen.
func (a *ANSI) Begin() {
	a.out.HideCursor()
	a.out.ClearScreen()
}

// End resets attributes, shows the cursor and flushes.
func (a *ANSI) End() error {
	a.out.Reset()
	a.out.ShowCursor()
	a.fgSet = false
	return a.buf.Flush()
}

// MoveTo emits a cursor position sequence.
func (a *ANSI) MoveTo(col, row int) {
	a.out.MoveCursor(row+1, col+1)
}

// SetForeground emits a foreground sequence unless c is already active.
func (a *ANSI) SetForeground(c palette.Color) {
	if a.fgSet && a.fg == c {
		return
	}
	a.fg, a.fgSet = c, true

	color := a.out.Color(c.Hex())
	if color == nil {
		return
	}
	seq := color.Sequence(false)
	if seq == "" {
		return
	}
	a.buf.WriteString(termenv.CSI + seq + "m")
}

// Print writes r at the cursor.
func (a *ANSI) Print(r rune) { a.buf.WriteRune(r) }

// PrintText writes s at the cursor.
func (a *ANSI) PrintText(s string) { a.buf.WriteString(s) }

// Flush writes buffered output.
func (a *ANSI) Flush() error { return a.buf.Flush() }

// Clear erases the screen.
func (a *ANSI) Clear() {
	a.out.ClearScreen()
}
