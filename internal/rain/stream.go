package rain

import "runefall/internal/glyph"

const (
	minSpeed       = 1
	maxSpeed       = 4
	minTrailLength = 4
	// shimmerOdds is the 1-in-N chance a stream swaps one glyph when it advances.
	shimmerOdds = 5
)

// Rand is the uniform random source the simulation draws from.
type Rand interface {
	IntN(n int) int
}

// Stream is one falling trail of glyphs.
type Stream struct {
	Lane        int    // Column for vertical scroll, row for horizontal
	HeadPos     int    // Head position along the travel axis; negative while still off-grid
	Speed       int    // Ticks per one step of the head; lower is faster
	TickCounter int    // Ticks since the last step
	TrailLength int    // Number of glyphs in the trail, head included
	ColorSeed   uint8  // Per-stream palette seed
	Active      bool   // False once the tail has left the grid
	Glyphs      []rune // Glyphs[0] is the head
}

// NewStream creates an active stream on lane with a random offset behind the grid edge.
func NewStream(lane, maxPos int, rng Rand, set glyph.Set) *Stream {
	s := &Stream{}
	s.Reset(lane, maxPos, rng, set)
	return s
}

// Reset revives the stream in place on a new lane, reusing its glyph storage.
func (s *Stream) Reset(lane, maxPos int, rng Rand, set glyph.Set) {
	s.Lane = lane
	s.HeadPos = -rng.IntN(max(maxPos, 1))
	s.Speed = minSpeed + rng.IntN(maxSpeed-minSpeed+1)
	s.TickCounter = 0
	s.TrailLength = randomTrailLength(maxPos, rng)
	s.ColorSeed = uint8(rng.IntN(256))
	s.Glyphs = s.Glyphs[:0]
	for range s.TrailLength {
		s.Glyphs = append(s.Glyphs, glyph.Pick(rng, set))
	}
	s.Active = true
}

// randomTrailLength draws from [4, max(6, maxPos-2)].
func randomTrailLength(maxPos int, rng Rand) int {
	upper := max(maxPos-2, 6)
	return minTrailLength + rng.IntN(upper-minTrailLength+1)
}

// Tick advances the simulation by one tick. The head moves once every Speed
// ticks; each move may shimmer one glyph and may retire the stream once the
// tail has scrolled past maxPos.
func (s *Stream) Tick(maxPos int, rng Rand, set glyph.Set) {
	s.TickCounter++
	if s.TickCounter < s.Speed {
		return
	}
	s.TickCounter = 0
	s.HeadPos++

	if len(s.Glyphs) > 0 && rng.IntN(shimmerOdds) == 0 {
		s.Glyphs[rng.IntN(len(s.Glyphs))] = glyph.Pick(rng, set)
	}

	if s.HeadPos-s.TrailLength > maxPos {
		s.Active = false
	}
}

// TailPos returns the travel position one step past the last trail cell.
func (s *Stream) TailPos() int {
	return s.HeadPos - s.TrailLength
}
