package rain

import (
	"errors"

	"github.com/mattn/go-runewidth"

	"runefall/internal/palette"
)

type cell struct {
	r  rune
	fg palette.Color
}

type paint struct {
	col, row int
	r        rune
}

// recorder is a Sink that keeps the final screen and every paint in order.
type recorder struct {
	col, row int
	fg       palette.Color
	screen   map[[2]int]cell
	paints   []paint
	flushes  int
}

func newRecorder() *recorder {
	return &recorder{screen: map[[2]int]cell{}}
}

func (r *recorder) MoveTo(col, row int)           { r.col, r.row = col, row }
func (r *recorder) SetForeground(c palette.Color) { r.fg = c }

func (r *recorder) Print(ch rune) {
	r.screen[[2]int{r.col, r.row}] = cell{ch, r.fg}
	r.paints = append(r.paints, paint{r.col, r.row, ch})
	r.col += max(runewidth.RuneWidth(ch), 1)
}

func (r *recorder) PrintText(s string) {
	for _, ch := range s {
		r.Print(ch)
	}
}

func (r *recorder) Flush() error {
	r.flushes++
	return nil
}

func (r *recorder) at(col, row int) (cell, bool) {
	c, ok := r.screen[[2]int{col, row}]
	return c, ok
}

// line returns the printed runes of one row in column order, blanks for gaps.
func (r *recorder) line(row, width int) string {
	out := make([]rune, 0, width)
	for col := 0; col < width; col++ {
		c, ok := r.at(col, row)
		if !ok {
			out = append(out, ' ')
			continue
		}
		out = append(out, c.r)
		if runewidth.RuneWidth(c.r) == 2 {
			col++
		}
	}
	return string(out)
}

type fixedSize struct {
	w, h int
	err  error
}

func (f fixedSize) Size() (int, int, error) { return f.w, f.h, f.err }

var errNoTTY = errors.New("no tty")
