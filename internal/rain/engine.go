// Package rain simulates and paints falling rune trails on a character grid.
package rain

import (
	"fmt"
	"log/slog"

	"runefall/internal/glyph"
	"runefall/internal/palette"
)

// Density bounds applied by ChangeDensity.
const (
	MinDensity = 0.05
	MaxDensity = 1.0
)

const defaultFPS = 20

// Config holds the construction inputs of an Engine.
type Config struct {
	Palette   palette.Palette // Color scheme
	FPS       int             // Target frames per second, shown in the status and used to time it
	Density   float64         // Fraction of lanes carrying a stream
	Glyphs    glyph.Set       // Glyph catalog for new and shimmering cells
	Direction Direction       // Initial scroll direction
	Logger    *slog.Logger    // Debug log; nil discards
}

// Engine owns every stream and the session state: grid size, direction,
// palette, glyph set, density and the global tick.
type Engine struct {
	cols, rows int
	direction  Direction
	palette    palette.Palette
	glyphs     glyph.Set
	density    float64
	fps        int
	globalTick uint64

	// streams is a fixed pool; dead streams are reset in place.
	streams []Stream
	status  Overlay

	rng Rand
	log *slog.Logger

	// scratch reused by Tick
	occupied []bool
	free     []int
}

// New creates an engine sized to the grid reported by sizer.
func New(cfg Config, sizer Sizer, rng Rand) (*Engine, error) {
	cols, rows, err := sizer.Size()
	if err != nil {
		return nil, fmt.Errorf("read grid size: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	e := &Engine{
		direction: cfg.Direction,
		palette:   cfg.Palette,
		glyphs:    cfg.Glyphs,
		density:   clampDensity(cfg.Density),
		fps:       fps,
		rng:       rng,
		log:       logger,
	}
	e.status.Visible = true
	e.status.Poke(fps)
	e.Resize(cols, rows)
	return e, nil
}

func clampDensity(d float64) float64 {
	return max(MinDensity, min(MaxDensity, d))
}

// Resize rebuilds the stream pool for a new grid. Lanes are sampled without
// replacement so no two streams start on the same lane.
func (e *Engine) Resize(cols, rows int) {
	e.cols, e.rows = max(cols, 0), max(rows, 0)
	maxLanes := e.direction.MaxLanes(e.cols, e.rows)
	maxPos := e.direction.MaxPos(e.cols, e.rows)
	target := max(1, int(float64(maxLanes)*e.density))
	count := min(target, maxLanes)

	available := make([]int, maxLanes)
	for i := range available {
		available[i] = i
	}

	if cap(e.streams) < count {
		e.streams = make([]Stream, 0, count)
	}
	e.streams = e.streams[:count]
	for i := range e.streams {
		idx := e.rng.IntN(len(available))
		lane := available[idx]
		available[idx] = available[len(available)-1]
		available = available[:len(available)-1]

		e.streams[i].Reset(lane, maxPos, e.rng, e.glyphs)
	}

	e.log.Debug("rebuilt stream pool",
		"cols", e.cols, "rows", e.rows, "direction", e.direction,
		"lanes", maxLanes, "streams", len(e.streams), "density", e.density)
}

// Tick advances the simulation one step and moves every stream that died
// this tick to a lane no other stream occupies.
func (e *Engine) Tick() {
	e.globalTick++
	e.status.Tick()

	maxLanes := e.direction.MaxLanes(e.cols, e.rows)
	maxPos := e.direction.MaxPos(e.cols, e.rows)

	e.occupied = resetBools(e.occupied, maxLanes)
	for i := range e.streams {
		s := &e.streams[i]
		s.Tick(maxPos, e.rng, e.glyphs)
		if s.Active && s.Lane < maxLanes {
			e.occupied[s.Lane] = true
		}
	}

	e.free = e.free[:0]
	for lane, taken := range e.occupied {
		if !taken {
			e.free = append(e.free, lane)
		}
	}

	for i := range e.streams {
		s := &e.streams[i]
		if s.Active {
			continue
		}
		var lane int
		if len(e.free) > 0 {
			idx := e.rng.IntN(len(e.free))
			lane = e.free[idx]
			e.free[idx] = e.free[len(e.free)-1]
			e.free = e.free[:len(e.free)-1]
		} else {
			lane = e.rng.IntN(max(maxLanes, 1))
		}
		s.Reset(lane, maxPos, e.rng, e.glyphs)
		if lane < maxLanes {
			e.occupied[lane] = true
		}
	}
}

func resetBools(b []bool, n int) []bool {
	if cap(b) < n {
		return make([]bool, n)
	}
	b = b[:n]
	clear(b)
	return b
}

// ChangeDensity adjusts density by delta within [MinDensity, MaxDensity] and rebuilds the pool.
func (e *Engine) ChangeDensity(delta float64) {
	e.density = clampDensity(e.density + delta)
	e.log.Debug("density changed", "density", e.density)
	e.Resize(e.cols, e.rows)
}

// ChangeDirection switches scroll direction. Lanes and travel swap axes, so
// the pool is rebuilt and the overlay is scheduled for erasure.
func (e *Engine) ChangeDirection(d Direction) {
	if d == e.direction {
		return
	}
	e.direction = d
	e.status.Invalidate()
	e.log.Debug("direction changed", "direction", d)
	e.Resize(e.cols, e.rows)
}

// Render emits the paint operations for the current state and flushes sink.
// Only trail cells, the cell just past each tail and the overlay are touched.
func (e *Engine) Render(sink Sink) error {
	for i := range e.streams {
		s := &e.streams[i]
		if s.Active {
			e.renderStream(sink, s)
		}
	}
	e.status.Render(sink, e.StatusText(), e.cols, e.rows, e.fps)
	return sink.Flush()
}

func (e *Engine) renderStream(sink Sink, s *Stream) {
	for i := 0; i < s.TrailLength; i++ {
		col, row, ok := e.direction.ToScreen(s.Lane, s.HeadPos-i, e.cols, e.rows)
		if !ok {
			continue
		}
		intensity := 1 - float64(i)/float64(s.TrailLength)
		sink.MoveTo(col, row)
		sink.SetForeground(e.palette.Color(intensity, s.ColorSeed, e.globalTick, s.HeadPos))
		sink.Print(s.glyphAt(i))
	}

	if col, row, ok := e.direction.ToScreen(s.Lane, s.TailPos(), e.cols, e.rows); ok {
		sink.MoveTo(col, row)
		sink.Print(' ')
	}

	if col, row, ok := e.direction.ToScreen(s.Lane, s.HeadPos, e.cols, e.rows); ok {
		sink.MoveTo(col, row)
		sink.SetForeground(e.palette.Head(s.ColorSeed, e.globalTick, s.HeadPos))
		sink.Print(s.glyphAt(0))
	}
}

func (s *Stream) glyphAt(i int) rune {
	if i < len(s.Glyphs) {
		return s.Glyphs[i]
	}
	return 'ᚠ'
}

// StatusText returns the overlay line for the current settings.
func (e *Engine) StatusText() string {
	return fmt.Sprintf(" 🔮 %s | 🎨 %s | ⚡ %d FPS | Density: %.2f ", e.glyphs, e.palette, e.fps, e.density)
}

// PokeStatus shows the overlay for another few seconds.
func (e *Engine) PokeStatus() { e.status.Poke(e.fps) }

// ToggleStatus shows or hides the overlay.
func (e *Engine) ToggleStatus() { e.status.Toggle(e.fps) }

// StatusVisible reports whether the overlay is enabled.
func (e *Engine) StatusVisible() bool { return e.status.Visible }

// StatusRemaining returns the ticks left before the overlay expires.
func (e *Engine) StatusRemaining() int { return e.status.Remaining() }

// Palette returns the active color scheme.
func (e *Engine) Palette() palette.Palette { return e.palette }

// SetPalette switches the color scheme from the next frame on.
func (e *Engine) SetPalette(p palette.Palette) { e.palette = p }

// Glyphs returns the active glyph set.
func (e *Engine) Glyphs() glyph.Set { return e.glyphs }

// SetGlyphs switches the set used for new and shimmering glyphs.
func (e *Engine) SetGlyphs(s glyph.Set) { e.glyphs = s }

// Direction returns the scroll direction.
func (e *Engine) Direction() Direction { return e.direction }

// Density returns the fraction of lanes carrying a stream.
func (e *Engine) Density() float64 { return e.density }

// FPS returns the frame rate shown in the status and used to time it.
func (e *Engine) FPS() int { return e.fps }

// GlobalTick returns the number of ticks since start.
func (e *Engine) GlobalTick() uint64 { return e.globalTick }

// SetFPS records the effective frame rate used by the overlay.
func (e *Engine) SetFPS(fps int) {
	if fps > 0 {
		e.fps = fps
	}
}

// Size returns the grid dimensions the pool was built for.
func (e *Engine) Size() (cols, rows int) { return e.cols, e.rows }

// Streams returns the pool. Callers must not retain it across Resize.
func (e *Engine) Streams() []Stream { return e.streams }
