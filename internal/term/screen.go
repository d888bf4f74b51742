// Package term adapts real terminals to the rain sink and the app input:
// a tcell screen for interactive use and a termenv ANSI writer for headless output.
package term

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"runefall/internal/app"
	"runefall/internal/palette"
)

const (
	eventBuffer = 64
	closeWait   = 100 * time.Millisecond
)

// ErrNoSize is returned when the terminal reports an empty grid.
var ErrNoSize = errors.New("invalid terminal dimensions")

// Screen is a tcell-backed display and input source. tcell keeps its own
// cell buffer, so Flush only sends the cells painted since the last Show.
type Screen struct {
	screen   tcell.Screen
	style    tcell.Style
	col, row int

	events    chan tcell.Event
	quit      chan struct{}
	pollDone  chan struct{}
	closeOnce sync.Once
}

// NewScreen opens the controlling terminal in raw mode on the alternate screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return Attach(s)
}

// Attach initializes s, hides the cursor and starts forwarding its events.
func Attach(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	s.HideCursor()
	s.Clear()

	t := &Screen{
		screen:   s,
		style:    tcell.StyleDefault,
		events:   make(chan tcell.Event, eventBuffer),
		quit:     make(chan struct{}),
		pollDone: make(chan struct{}),
	}
	go t.pollEvents()
	return t, nil
}

// pollEvents forwards events until Fini makes PollEvent return nil or
// Close is called while the buffer is full.
func (t *Screen) pollEvents() {
	defer close(t.pollDone)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

// Close restores the terminal. Safe to call more than once.
func (t *Screen) Close() {
	t.closeOnce.Do(func() {
		close(t.quit)
		t.screen.Fini()
		select {
		case <-t.pollDone:
		case <-time.After(closeWait):
		}
	})
}

// Size returns the grid dimensions.
func (t *Screen) Size() (int, int, error) {
	w, h := t.screen.Size()
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrNoSize, w, h)
	}
	return w, h, nil
}

// MoveTo positions the cursor for the next Print.
func (t *Screen) MoveTo(col, row int) { t.col, t.row = col, row }

// SetForeground sets the color of subsequent prints.
func (t *Screen) SetForeground(c palette.Color) {
	t.style = tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// Print draws r at the cursor and advances it by the rune's display width.
func (t *Screen) Print(r rune) {
	t.screen.SetContent(t.col, t.row, r, nil, t.style)
	t.col += max(runewidth.RuneWidth(r), 1)
}

// PrintText prints s rune by rune.
func (t *Screen) PrintText(s string) {
	for _, r := range s {
		t.Print(r)
	}
}

// Flush shows pending cells.
func (t *Screen) Flush() error {
	t.screen.Show()
	return nil
}

// Clear blanks the whole screen.
func (t *Screen) Clear() {
	t.screen.Clear()
}

// Poll returns the next queued key or resize event without blocking.
func (t *Screen) Poll() (app.Event, bool) {
	for {
		select {
		case ev := <-t.events:
			if out, ok := convert(ev); ok {
				return out, true
			}
		default:
			return app.Event{}, false
		}
	}
}

var keyMap = map[tcell.Key]app.Key{
	tcell.KeyRune:   app.KeyRune,
	tcell.KeyEscape: app.KeyEscape,
	tcell.KeyCtrlC:  app.KeyCtrlC,
	tcell.KeyUp:     app.KeyUp,
	tcell.KeyDown:   app.KeyDown,
	tcell.KeyLeft:   app.KeyLeft,
	tcell.KeyRight:  app.KeyRight,
}

// convert maps tcell events onto app events; anything else is dropped.
func convert(ev tcell.Event) (app.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return app.Event{Type: app.EventResize, Width: w, Height: h}, true
	case *tcell.EventKey:
		k, ok := keyMap[ev.Key()]
		if !ok {
			k = app.KeyOther
		}
		out := app.Event{Type: app.EventKey, Key: k}
		if k == app.KeyRune {
			out.Rune = ev.Rune()
		}
		return out, true
	}
	return app.Event{}, false
}
