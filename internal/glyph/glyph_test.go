package glyph

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted returns queued values, reduced modulo n.
type scripted struct {
	vals  []int
	calls []int
}

func (s *scripted) IntN(n int) int {
	s.calls = append(s.calls, n)
	v := s.vals[0]
	s.vals = s.vals[1:]
	return v % n
}

func TestCatalogSizes(t *testing.T) {
	sizes := map[Set]int{
		ElderFuthark:   26,
		YoungerFuthark: 16,
		AngloSaxon:     26,
		Ogham:          26,
		Mystic:         24,
	}
	for set, want := range sizes {
		assert.Len(t, set.Runes(), want, set.String())
	}
	assert.Nil(t, All.Runes())
}

func TestPickNamedSetStaysInCatalog(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for _, set := range Sets()[1:] {
		for i := 0; i < 200; i++ {
			r := Pick(rng, set)
			require.True(t, slices.Contains(set.Runes(), r), "%q not in %s", r, set)
		}
	}
}

func TestPickAllIsTwoStage(t *testing.T) {
	// First draw selects the set (index 4 = Mystic), second the glyph.
	rng := &scripted{vals: []int{4, 3}}
	r := Pick(rng, All)

	assert.Equal(t, mystic[3], r)
	assert.Equal(t, []int{5, len(mystic)}, rng.calls)
}

func TestPickAllGivesSetsEqualWeight(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	youngerOnly := map[rune]bool{'ᚬ': true, 'ᚴ': true, 'ᚼ': true, 'ᛅ': true, 'ᛘ': true, 'ᛦ': true}

	const draws = 50000
	hits := 0
	for i := 0; i < draws; i++ {
		if youngerOnly[Pick(rng, All)] {
			hits++
		}
	}
	// Set weighting: 1/5 * 6/16 = 7.5%. A flattened union would give ~5%.
	share := float64(hits) / draws
	assert.InDelta(t, 0.075, share, 0.01)
}

func TestParseSet(t *testing.T) {
	cases := map[string]Set{
		"elder":   ElderFuthark,
		"Younger": YoungerFuthark,
		"anglo":   AngloSaxon,
		" ogham ": Ogham,
		"MYSTIC":  Mystic,
		"all":     All,
		"klingon": All,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseSet(in), in)
	}
}

func TestSetString(t *testing.T) {
	assert.Equal(t, "Elder Futhark", ElderFuthark.String())
	assert.Equal(t, "All", Set(42).String())
}
