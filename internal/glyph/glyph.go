// Package glyph holds the runic and mystic character catalogs the rain is drawn from.
package glyph

import "strings"

// Rand is the entropy a pick consumes.
type Rand interface {
	IntN(n int) int
}

// Set names a catalog of candidate glyphs.
type Set int

const (
	All Set = iota
	ElderFuthark
	YoungerFuthark
	AngloSaxon
	Ogham
	Mystic
)

var (
	elderFuthark = []rune{
		'ᚠ', 'ᚢ', 'ᚦ', 'ᚨ', 'ᚱ', 'ᚲ', 'ᚷ', 'ᚹ', 'ᚺ', 'ᚾ', 'ᛁ', 'ᛃ', 'ᛇ', 'ᛈ', 'ᛉ', 'ᛊ', 'ᛋ', 'ᛏ', 'ᛒ',
		'ᛖ', 'ᛗ', 'ᛚ', 'ᛜ', 'ᛝ', 'ᛞ', 'ᛟ',
	}
	youngerFuthark = []rune{
		'ᚠ', 'ᚢ', 'ᚦ', 'ᚬ', 'ᚱ', 'ᚴ', 'ᚼ', 'ᚾ', 'ᛁ', 'ᛅ', 'ᛋ', 'ᛏ', 'ᛒ', 'ᛘ', 'ᛚ', 'ᛦ',
	}
	angloSaxon = []rune{
		'ᚠ', 'ᚢ', 'ᚦ', 'ᚩ', 'ᚱ', 'ᚳ', 'ᚷ', 'ᚹ', 'ᚻ', 'ᚾ', 'ᛁ', 'ᛄ', 'ᛇ', 'ᛈ', 'ᛉ', 'ᛋ', 'ᛏ', 'ᛒ', 'ᛖ',
		'ᛗ', 'ᛚ', 'ᛝ', 'ᛟ', 'ᛡ', 'ᛣ', 'ᛥ',
	}
	ogham = []rune{
		'ᚁ', 'ᚂ', 'ᚃ', 'ᚄ', 'ᚅ', 'ᚆ', 'ᚇ', 'ᚈ', 'ᚉ', 'ᚊ', 'ᚋ', 'ᚌ', 'ᚍ', 'ᚎ', 'ᚏ', 'ᚐ', 'ᚑ', 'ᚒ', 'ᚓ',
		'ᚔ', 'ᚕ', 'ᚖ', 'ᚗ', 'ᚘ', 'ᚙ', 'ᚚ',
	}
	mystic = []rune{
		'☽', '☾', '✧', '✦', '◈', '◇', '⁂', '⊕', '⊗', '⊛', '⌘', '⍟', '♅', '♆', '♇', '⚝', '✡', '⬡', '⬢',
		'⏣', '⏥', '◉', '◎', '⦿',
	}

	// named is indexed by Set-1; All draws from it set-first.
	named = [...][]rune{elderFuthark, youngerFuthark, angloSaxon, ogham, mystic}
)

var setNames = map[Set]string{
	All:            "All",
	ElderFuthark:   "Elder Futhark",
	YoungerFuthark: "Younger Futhark",
	AngloSaxon:     "Anglo-Saxon",
	Ogham:          "Ogham",
	Mystic:         "Mystic",
}

// String returns the display name of the set.
func (s Set) String() string {
	if name, ok := setNames[s]; ok {
		return name
	}
	return setNames[All]
}

// Runes returns the catalog of a named set, or nil for All and unknown sets.
func (s Set) Runes() []rune {
	if s < ElderFuthark || s > Mystic {
		return nil
	}
	return named[s-1]
}

// Sets lists every selectable set in menu order.
func Sets() []Set {
	return []Set{All, ElderFuthark, YoungerFuthark, AngloSaxon, Ogham, Mystic}
}

// ParseSet resolves a set name, falling back to All for anything unrecognized.
func ParseSet(name string) Set {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "elder", "elder-futhark", "futhark":
		return ElderFuthark
	case "younger", "younger-futhark":
		return YoungerFuthark
	case "anglo", "anglo-saxon", "futhorc":
		return AngloSaxon
	case "ogham":
		return Ogham
	case "mystic":
		return Mystic
	default:
		return All
	}
}

// Pick returns a uniformly chosen glyph from set. All first picks one of the
// five named sets uniformly, then a glyph within it, so small sets are not
// outweighed by large ones.
func Pick(rng Rand, set Set) rune {
	chars := set.Runes()
	if chars == nil {
		chars = named[rng.IntN(len(named))]
	}
	return chars[rng.IntN(len(chars))]
}
