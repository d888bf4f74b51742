package rain

import "runefall/internal/palette"

// Sink receives the paint operations of a frame. Positions are zero-based.
type Sink interface {
	MoveTo(col, row int)
	SetForeground(c palette.Color)
	Print(r rune)
	PrintText(s string)
	// Flush pushes buffered output to the display.
	Flush() error
}

// Sizer reports the current grid dimensions.
type Sizer interface {
	Size() (width, height int, err error)
}
