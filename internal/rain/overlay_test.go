package rain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"runefall/internal/palette"
)

func TestOverlayFadesInFinalSecond(t *testing.T) {
	o := Overlay{Visible: true}
	o.Poke(20)
	assert.Equal(t, 60, o.Remaining())
	assert.Equal(t, uint8(150), o.brightness(20))

	for o.Remaining() > 10 {
		o.Tick()
	}
	assert.Equal(t, uint8(100), o.brightness(20))

	o.Tick()
	assert.Less(t, o.brightness(20), uint8(100))

	rec := newRecorder()
	o.Render(rec, "abc", 10, 5, 20)
	c, ok := rec.at(7, 4)
	assert.True(t, ok)
	assert.Equal(t, palette.Color{R: 95, G: 95, B: 95}, c.fg)
}

func TestOverlayBlanksOldRegionWhenTextMoves(t *testing.T) {
	o := Overlay{Visible: true}
	o.Poke(10)

	rec := newRecorder()
	o.Render(rec, "wide text", 20, 3, 10)
	assert.Equal(t, "           wide text", rec.line(2, 20))

	o.Render(rec, "tiny", 20, 3, 10)
	assert.Equal(t, "                tiny", rec.line(2, 20))
}

func TestOverlayTruncatesToGrid(t *testing.T) {
	o := Overlay{Visible: true}
	o.Poke(10)

	rec := newRecorder()
	o.Render(rec, "0123456789", 4, 1, 10)
	assert.Equal(t, "0123", rec.line(0, 4))
	_, ok := rec.at(4, 0)
	assert.False(t, ok)
}

func TestOverlayHiddenDrawsNothing(t *testing.T) {
	var o Overlay
	rec := newRecorder()
	o.Render(rec, "status", 20, 3, 10)
	assert.Empty(t, rec.paints)
}
