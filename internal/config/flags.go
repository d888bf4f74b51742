package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"runefall/internal/glyph"
	"runefall/internal/palette"
	"runefall/internal/rain"
)

// The flag values below never reject input: bad numbers fall back to
// their default and unknown names to the first choice.

type intValue struct {
	p      *int
	def    int
	lo, hi int
}

func (v *intValue) Set(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		n = v.def
	}
	*v.p = max(v.lo, min(v.hi, n))
	return nil
}

func (v *intValue) String() string {
	if v.p == nil {
		return ""
	}
	return strconv.Itoa(*v.p)
}

type floatValue struct {
	p      *float64
	def    float64
	lo, hi float64
}

func (v *floatValue) Set(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		f = v.def
	}
	*v.p = max(v.lo, min(v.hi, f))
	return nil
}

func (v *floatValue) String() string {
	if v.p == nil {
		return ""
	}
	return strconv.FormatFloat(*v.p, 'f', -1, 64)
}

type paletteValue struct{ p *palette.Palette }

func (v paletteValue) Set(s string) error {
	*v.p = palette.Parse(s)
	return nil
}

func (v paletteValue) String() string {
	if v.p == nil {
		return ""
	}
	return flagName(v.p.String())
}

type glyphValue struct{ p *glyph.Set }

func (v glyphValue) Set(s string) error {
	*v.p = glyph.ParseSet(s)
	return nil
}

func (v glyphValue) String() string {
	if v.p == nil {
		return ""
	}
	return flagName(v.p.String())
}

type directionValue struct{ p *rain.Direction }

func (v directionValue) Set(s string) error {
	*v.p = rain.ParseDirection(s)
	return nil
}

func (v directionValue) String() string {
	if v.p == nil {
		return ""
	}
	return v.p.String()
}

// sizeValue parses WxH. Anything else clears the size so it is detected.
type sizeValue struct{ w, h *int }

func (v sizeValue) Set(s string) error {
	*v.w, *v.h = parseSize(s)
	return nil
}

func (v sizeValue) String() string {
	if v.w == nil || *v.w == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", *v.w, *v.h)
}

func parseSize(s string) (int, int) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0
	}
	return w, h
}

// flagName turns a display name like "Elder Futhark" into "elder-futhark".
func flagName(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}
