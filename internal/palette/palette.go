// Package palette maps trail intensity to terminal colors.
//
// Four palettes are fixed gradients between a tail and a head-adjacent color.
// Rainbow rotates hue per stream seed, and Blink derives a strobing hue from
// the tick, the stream position and its seed.
package palette

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB terminal color.
type Color struct{ R, G, B uint8 }

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b}
}

// Palette selects a color scheme.
type Palette int

const (
	Arcane Palette = iota
	Emerald
	Frost
	Ember
	Rainbow
	Blink
)

// blinkMultiplier is the LCG multiplier used for the strobing hue mix.
const blinkMultiplier = 1103515245

type gradient struct {
	tail, head Color
	glow       Color
}

var gradients = map[Palette]gradient{
	Arcane:  {tail: Color{40, 10, 80}, head: Color{180, 60, 255}, glow: Color{230, 180, 255}},
	Emerald: {tail: Color{0, 30, 10}, head: Color{50, 255, 80}, glow: Color{180, 255, 200}},
	Frost:   {tail: Color{0, 40, 60}, head: Color{100, 200, 255}, glow: Color{200, 240, 255}},
	Ember:   {tail: Color{60, 0, 0}, head: Color{255, 120, 30}, glow: Color{255, 220, 150}},
	Rainbow: {glow: Color{255, 255, 255}},
}

var names = map[Palette]string{
	Arcane:  "Arcane",
	Emerald: "Emerald",
	Frost:   "Frost",
	Ember:   "Ember",
	Rainbow: "Rainbow",
	Blink:   "Blink",
}

// String returns the display name.
func (p Palette) String() string {
	if n, ok := names[p]; ok {
		return n
	}
	return names[Arcane]
}

// All lists the palettes in key order.
func All() []Palette {
	return []Palette{Arcane, Emerald, Frost, Ember, Rainbow, Blink}
}

// Parse resolves a palette name or alias. Unknown names fall back to Arcane.
func Parse(name string) Palette {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "emerald", "green":
		return Emerald
	case "frost", "blue", "cyan":
		return Frost
	case "ember", "red", "fire":
		return Ember
	case "rainbow", "multi":
		return Rainbow
	case "blink", "blinking", "cmatrix":
		return Blink
	default:
		return Arcane
	}
}

// Color returns the color of a trail cell. intensity runs from 1 at the head
// to 0 at the tail; seed is the stream's color seed; tick and coord feed the
// Blink hue mix.
func (p Palette) Color(intensity float64, seed uint8, tick uint64, coord int) Color {
	i := clamp01(intensity)
	switch p {
	case Rainbow:
		hue := math.Mod(float64(seed)/255*360+intensity*60, 360)
		return HSLToRGB(hue, 0.9, 0.25+0.45*i)
	case Blink:
		return HSLToRGB(BlinkHue(tick, coord, seed), 1.0, 0.4+0.3*i)
	case Ember:
		g := gradients[Ember]
		c := fromColorful(g.tail.colorful().BlendRgb(g.head.colorful(), i))
		// green glows in quadratically
		c.G = uint8(math.Round(float64(g.head.G) * i * i))
		return c
	}
	g, ok := gradients[p]
	if !ok {
		g = gradients[Arcane]
	}
	return fromColorful(g.tail.colorful().BlendRgb(g.head.colorful(), i))
}

// Head returns the glow color painted over a stream's leading cell.
func (p Palette) Head(seed uint8, tick uint64, coord int) Color {
	if p == Blink {
		return HSLToRGB(BlinkHue(tick, coord, seed), 1.0, 0.8)
	}
	g, ok := gradients[p]
	if !ok {
		g = gradients[Arcane]
	}
	return g.glow
}

// Swatch returns the tail, head-adjacent and head glow colors for listings.
// Hue-driven palettes report seed zero at tick zero.
func (p Palette) Swatch() [3]Color {
	return [3]Color{p.Color(0, 0, 0, 0), p.Color(1, 0, 0, 0), p.Head(0, 0, 0)}
}

// BlinkHue mixes tick, coordinate and seed into a hue in [0,360). Equal
// inputs always give equal hues; neighbouring inputs scatter widely.
func BlinkHue(tick uint64, coord int, seed uint8) float64 {
	mixed := (tick + uint64(coord) + uint64(seed)) * blinkMultiplier
	return float64(mixed % 360)
}

// HSLToRGB converts hue in degrees, saturation and lightness in [0,1].
func HSLToRGB(h, s, l float64) Color {
	return fromColorful(colorful.Hsl(math.Mod(h, 360), s, l))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
