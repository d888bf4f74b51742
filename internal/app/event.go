// Package app runs the input, simulate, render and sleep loop around a rain engine.
package app

import "runefall/internal/rain"

// EventType distinguishes input events.
type EventType int

const (
	EventKey EventType = iota
	EventResize
)

// Key identifies a key press. Printable keys arrive as KeyRune with Event.Rune set.
type Key int

const (
	KeyRune Key = iota
	KeyEscape
	KeyCtrlC
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyOther
)

// Event is a key press or a grid resize.
type Event struct {
	Type   EventType
	Key    Key
	Rune   rune
	Width  int
	Height int
}

// Input yields pending events without blocking. ok is false when nothing is queued.
type Input interface {
	Poll() (ev Event, ok bool)
}

// Display is the paint sink plus the full-screen clear used on resize and direction change.
type Display interface {
	rain.Sink
	Clear()
}

// NoInput is an Input that never has events.
type NoInput struct{}

// Poll always reports no event.
func (NoInput) Poll() (Event, bool) { return Event{}, false }
