package rain

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"runefall/internal/palette"
)

// statusSeconds is how long the overlay stays up after a poke.
const statusSeconds = 3

const (
	statusBrightness = 150
	statusFadeFloor  = 50
	statusFadeRange  = 100
)

// Overlay is the status strip in the bottom-right corner. It counts down in
// ticks, fades during its final second and is blanked exactly once when it
// expires or is hidden.
type Overlay struct {
	Visible     bool
	timer       int
	clearNeeded bool

	// region last painted, so the erase covers exactly what was drawn
	paintedCol, paintedRow, paintedWidth int
}

// Poke re-arms the countdown for statusSeconds at fps.
func (o *Overlay) Poke(fps int) {
	o.timer = fps * statusSeconds
	o.clearNeeded = false
}

// Toggle flips visibility; showing re-arms the countdown, hiding schedules an erase.
func (o *Overlay) Toggle(fps int) {
	o.Visible = !o.Visible
	if o.Visible {
		o.Poke(fps)
		return
	}
	o.clearNeeded = true
}

// Invalidate schedules an erase of whatever was last painted.
func (o *Overlay) Invalidate() {
	o.clearNeeded = true
}

// Remaining returns the ticks left before the overlay expires.
func (o *Overlay) Remaining() int {
	return o.timer
}

// Tick counts down and schedules the erase when the countdown reaches zero.
func (o *Overlay) Tick() {
	if o.timer == 0 {
		return
	}
	o.timer--
	if o.timer == 0 {
		o.clearNeeded = true
	}
}

// brightness returns the gray level, fading linearly over the last second.
func (o *Overlay) brightness(fps int) uint8 {
	if fps <= 0 || o.timer >= fps {
		return statusBrightness
	}
	return uint8(statusFadeFloor + statusFadeRange*o.timer/fps)
}

// Render paints text right-aligned on the last row while the countdown runs,
// or blanks the previously painted region once after it stops.
func (o *Overlay) Render(sink Sink, text string, cols, rows, fps int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	if o.Visible && o.timer > 0 {
		text = runewidth.Truncate(text, cols, "")
		width := runewidth.StringWidth(text)
		col, row := cols-width, rows-1

		if o.paintedWidth > 0 && (o.paintedCol != col || o.paintedRow != row || o.paintedWidth != width) {
			o.blank(sink)
		}

		b := o.brightness(fps)
		sink.MoveTo(col, row)
		sink.SetForeground(palette.Color{R: b, G: b, B: b})
		sink.PrintText(text)
		o.paintedCol, o.paintedRow, o.paintedWidth = col, row, width
		return
	}
	if o.clearNeeded {
		o.blank(sink)
		o.clearNeeded = false
	}
}

func (o *Overlay) blank(sink Sink) {
	if o.paintedWidth == 0 {
		return
	}
	sink.MoveTo(o.paintedCol, o.paintedRow)
	sink.PrintText(strings.Repeat(" ", o.paintedWidth))
	o.paintedWidth = 0
}
