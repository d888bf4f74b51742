package app

import (
	"runefall/internal/glyph"
	"runefall/internal/palette"
	"runefall/internal/rain"
)

// Density step applied by the [ and ] keys.
const densityStep = 0.05

var paletteKeys = map[rune]palette.Palette{
	'1': palette.Arcane,
	'2': palette.Emerald,
	'3': palette.Frost,
	'4': palette.Ember,
	'5': palette.Rainbow,
	'0': palette.Blink,
}

var glyphKeys = map[rune]glyph.Set{
	'a': glyph.All,
	'e': glyph.ElderFuthark,
	'y': glyph.YoungerFuthark,
	's': glyph.AngloSaxon,
	'o': glyph.Ogham,
	'm': glyph.Mystic,
}

var directionKeys = map[Key]rain.Direction{
	KeyUp:    rain.Up,
	KeyDown:  rain.Down,
	KeyLeft:  rain.Left,
	KeyRight: rain.Right,
}

// Keys lists the bindings for help output.
var Keys = [][2]string{
	{"q, Esc, Ctrl+C", "quit"},
	{"+ / -", "faster / slower (5ms frame steps)"},
	{"[ / ]", "less / more density"},
	{"1 2 3 4 5 0", "arcane, emerald, frost, ember, rainbow, blink"},
	{"a e y s o m", "all, elder, younger, anglo-saxon, ogham, mystic glyphs"},
	{"arrows", "scroll direction"},
	{"i", "toggle status overlay"},
}

type action int

const (
	actionNone action = iota
	actionExit
)

func (l *loop) handleEvent(ev Event) action {
	switch ev.Type {
	case EventResize:
		l.display.Clear()
		l.engine.Resize(ev.Width, ev.Height)
		l.log.Debug("resized", "width", ev.Width, "height", ev.Height)
		return actionNone
	case EventKey:
		return l.handleKey(ev)
	}
	return actionNone
}

func (l *loop) handleKey(ev Event) action {
	switch ev.Key {
	case KeyEscape, KeyCtrlC:
		return actionExit
	case KeyRune:
		if ev.Rune == 'q' || ev.Rune == 'Q' {
			return actionExit
		}
		if ev.Rune == 'i' {
			l.engine.ToggleStatus()
			return actionNone
		}
		l.handleRune(ev.Rune)
	default:
		if d, ok := directionKeys[ev.Key]; ok {
			l.display.Clear()
			l.engine.ChangeDirection(d)
		}
	}
	l.engine.PokeStatus()
	return actionNone
}

func (l *loop) handleRune(r rune) {
	if p, ok := paletteKeys[r]; ok {
		l.engine.SetPalette(p)
		return
	}
	if s, ok := glyphKeys[r]; ok {
		l.engine.SetGlyphs(s)
		return
	}
	switch r {
	case '+', '=':
		l.pacer.Faster()
		l.engine.SetFPS(l.pacer.FPS())
	case '-':
		l.pacer.Slower()
		l.engine.SetFPS(l.pacer.FPS())
	case '[':
		l.engine.ChangeDensity(-densityStep)
	case ']':
		l.engine.ChangeDensity(densityStep)
	}
}
