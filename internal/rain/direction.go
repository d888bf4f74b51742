package rain

import "strings"

// Direction is the way trails scroll across the screen.
type Direction int

const (
	Down Direction = iota
	Up
	Left
	Right
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "down"
	}
}

// ParseDirection resolves a direction name, defaulting to Down.
func ParseDirection(name string) Direction {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up", "u":
		return Up
	case "left", "l":
		return Left
	case "right", "r":
		return Right
	default:
		return Down
	}
}

// Vertical reports whether lanes are columns.
func (d Direction) Vertical() bool {
	return d == Down || d == Up
}

// MaxLanes returns the number of lanes: columns for vertical scroll, rows otherwise.
func (d Direction) MaxLanes(width, height int) int {
	if d.Vertical() {
		return width
	}
	return height
}

// MaxPos returns the length of the travel axis.
func (d Direction) MaxPos(width, height int) int {
	if d.Vertical() {
		return height
	}
	return width
}

// ToScreen maps a lane and a travel position to a screen cell. ok is false
// when pos lies outside [0, MaxPos). Up and Left mirror the travel axis so
// stream positions only ever increase.
func (d Direction) ToScreen(lane, pos, width, height int) (col, row int, ok bool) {
	bound := d.MaxPos(width, height)
	if pos < 0 || pos >= bound {
		return 0, 0, false
	}
	switch d {
	case Up:
		return lane, bound - 1 - pos, true
	case Left:
		return bound - 1 - pos, lane, true
	case Right:
		return pos, lane, true
	default:
		return lane, pos, true
	}
}
