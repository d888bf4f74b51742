package app

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runefall/internal/glyph"
	"runefall/internal/palette"
	"runefall/internal/rain"
)

type fakeDisplay struct {
	prints  int
	flushes int
	clears  int
	err     error
}

func (d *fakeDisplay) MoveTo(col, row int)           {}
func (d *fakeDisplay) SetForeground(c palette.Color) {}
func (d *fakeDisplay) Print(r rune)                  { d.prints++ }
func (d *fakeDisplay) PrintText(s string)            { d.prints++ }
func (d *fakeDisplay) Clear()                        { d.clears++ }

func (d *fakeDisplay) Flush() error {
	d.flushes++
	return d.err
}

// script hands out one batch of events per frame.
type script struct {
	frames [][]Event
	batch  []Event
}

func (s *script) Poll() (Event, bool) {
	if len(s.batch) == 0 {
		if len(s.frames) == 0 {
			return Event{}, false
		}
		s.batch, s.frames = s.frames[0], s.frames[1:]
		if len(s.batch) == 0 {
			return Event{}, false
		}
	}
	ev := s.batch[0]
	s.batch = s.batch[1:]
	return ev, true
}

type size struct{ w, h int }

func (s size) Size() (int, int, error) { return s.w, s.h, nil }

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

func key(r rune) Event { return Event{Type: EventKey, Key: KeyRune, Rune: r} }

func newEngine(t *testing.T) *rain.Engine {
	t.Helper()
	e, err := rain.New(rain.Config{FPS: 20, Density: 0.4}, size{80, 24}, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return e
}

func newLoop(t *testing.T) (*loop, *fakeDisplay) {
	t.Helper()
	d := &fakeDisplay{}
	e := newEngine(t)
	l := &loop{engine: e, display: d, input: NoInput{}, pacer: NewPacer(20), log: discard()}
	return l, d
}

func TestPacerSteps(t *testing.T) {
	p := NewPacer(20)
	assert.Equal(t, 50*time.Millisecond, p.Frame())
	assert.Equal(t, 20, p.FPS())

	p.Faster()
	assert.Equal(t, 45*time.Millisecond, p.Frame())
	assert.Equal(t, 22, p.FPS())

	for range 50 {
		p.Faster()
	}
	assert.Equal(t, MinFrame, p.Frame())
	assert.Equal(t, 100, p.FPS())

	for range 100 {
		p.Slower()
	}
	assert.Equal(t, MaxFrame, p.Frame())
	assert.Equal(t, 5, p.FPS())
}

func TestPacerRemaining(t *testing.T) {
	p := NewPacer(20)
	assert.Equal(t, 30*time.Millisecond, p.Remaining(20*time.Millisecond))
	assert.Equal(t, time.Duration(0), p.Remaining(80*time.Millisecond))
	assert.Equal(t, 16*time.Millisecond, NewPacer(60).Frame())
	assert.Equal(t, frameFallback, NewPacer(0).Frame())
}

func TestQuitKeys(t *testing.T) {
	l, _ := newLoop(t)
	for _, ev := range []Event{key('q'), key('Q'), {Type: EventKey, Key: KeyEscape}, {Type: EventKey, Key: KeyCtrlC}} {
		assert.Equal(t, actionExit, l.handleEvent(ev))
	}
	assert.Equal(t, actionNone, l.handleEvent(key('x')))
}

func TestPaletteAndGlyphKeys(t *testing.T) {
	l, _ := newLoop(t)
	l.handleEvent(key('4'))
	assert.Equal(t, palette.Ember, l.engine.Palette())
	l.handleEvent(key('0'))
	assert.Equal(t, palette.Blink, l.engine.Palette())

	l.handleEvent(key('o'))
	assert.Equal(t, glyph.Ogham, l.engine.Glyphs())
	l.handleEvent(key('a'))
	assert.Equal(t, glyph.All, l.engine.Glyphs())
}

func TestSpeedKeysUpdateStatusFPS(t *testing.T) {
	l, _ := newLoop(t)
	l.handleEvent(key('+'))
	l.handleEvent(key('='))
	assert.Equal(t, 40*time.Millisecond, l.pacer.Frame())
	assert.Equal(t, 25, l.engine.FPS())

	l.handleEvent(key('-'))
	assert.Equal(t, 45*time.Millisecond, l.pacer.Frame())
	assert.Equal(t, 22, l.engine.FPS())
}

func TestDensityKeys(t *testing.T) {
	l, _ := newLoop(t)
	l.handleEvent(key(']'))
	assert.InDelta(t, 0.45, l.engine.Density(), 1e-9)
	l.handleEvent(key('['))
	l.handleEvent(key('['))
	assert.InDelta(t, 0.35, l.engine.Density(), 1e-9)
	assert.Len(t, l.engine.Streams(), int(80*l.engine.Density()))
}

func TestArrowClearsAndTurns(t *testing.T) {
	l, d := newLoop(t)
	l.handleEvent(Event{Type: EventKey, Key: KeyLeft})
	assert.Equal(t, rain.Left, l.engine.Direction())
	assert.Equal(t, 1, d.clears)
	assert.Len(t, l.engine.Streams(), int(24*l.engine.Density()))
}

func TestResizeClearsAndRebuilds(t *testing.T) {
	l, d := newLoop(t)
	l.handleEvent(Event{Type: EventResize, Width: 100, Height: 30})
	cols, rows := l.engine.Size()
	assert.Equal(t, [2]int{100, 30}, [2]int{cols, rows})
	assert.Equal(t, 1, d.clears)
	assert.Len(t, l.engine.Streams(), 40)
}

func TestInfoKeyTogglesWithoutPoke(t *testing.T) {
	l, _ := newLoop(t)
	l.handleEvent(key('i'))
	assert.False(t, l.engine.StatusVisible())
	l.handleEvent(key('i'))
	assert.True(t, l.engine.StatusVisible())
}

func TestRunStopsAtFrameLimit(t *testing.T) {
	d := &fakeDisplay{}
	err := Run(context.Background(), newEngine(t), d, NoInput{}, Options{FPS: 60, MaxFrames: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, d.flushes)
	assert.Greater(t, d.prints, 0)
}

func TestRunQuitsOnKey(t *testing.T) {
	d := &fakeDisplay{}
	in := &script{frames: [][]Event{nil, {key('5'), key('q')}}}
	e := newEngine(t)

	err := Run(context.Background(), e, d, in, Options{FPS: 60, MaxFrames: 100})
	require.NoError(t, err)
	assert.Equal(t, 1, d.flushes)
	assert.Equal(t, palette.Rainbow, e.Palette())
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := &fakeDisplay{}
	err := Run(ctx, newEngine(t), d, NoInput{}, Options{FPS: 60})
	require.NoError(t, err)
	assert.Equal(t, 0, d.flushes)
}

func TestRunReportsFlushError(t *testing.T) {
	boom := errors.New("broken pipe")
	d := &fakeDisplay{err: boom}
	err := Run(context.Background(), newEngine(t), d, NoInput{}, Options{FPS: 60, MaxFrames: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, d.flushes)
}

func TestRunArmsStatusAtPacerRate(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, Run(context.Background(), e, &fakeDisplay{}, NoInput{}, Options{FPS: 60, MaxFrames: 1}))
	fps := NewPacer(60).FPS()
	assert.Equal(t, fps, e.FPS())
	assert.Equal(t, 3*fps-1, e.StatusRemaining())
}

func TestRunKeepsHiddenStatusHidden(t *testing.T) {
	e := newEngine(t)
	e.ToggleStatus()
	require.NoError(t, Run(context.Background(), e, &fakeDisplay{}, NoInput{}, Options{FPS: 60, MaxFrames: 1}))
	assert.False(t, e.StatusVisible())
}
