package controller

import (
	"fmt"
)

// Button identifies one of the controller buttons. The order matches the
// layout of the wire frame.
type Button int

const (
	A Button = iota
	B
	X
	Y
	L
	R
	ZL
	ZR
	Up
	Down
	Left
	Right
)

// NumButtons is the number of buttons on the controller.
const NumButtons = 12

var buttonNames = [NumButtons]string{"A", "B", "X", "Y", "L", "R", "ZL", "ZR", "Up", "Down", "Left", "Right"}

func (b Button) String() string {
	if b < 0 || b >= NumButtons {
		return fmt.Sprintf("Button(%d)", int(b))
	}

	return buttonNames[b]
}

// Event is one sample of the controller. Sticks range from -1 to 1. Pressed is
// true while a button is held; Triggered only on the sample where it went
// down. Samples are numbered by Timestamp, so a repeated timestamp means
// nothing new has arrived.
type Event struct {
	Timestamp uint64

	LX float64
	LY float64
	RX float64
	RY float64

	Pressed   [NumButtons]bool
	Triggered [NumButtons]bool
}

func (e *Event) IsPressed(b Button) bool {
	return e.Pressed[b]
}

func (e *Event) IsTriggered(b Button) bool {
	return e.Triggered[b]
}

// ClearTriggered forgets the button edges, but not which buttons are held.
func (e *Event) ClearTriggered() {
	e.Triggered = [NumButtons]bool{}
}

func (e Event) String() string {
	return fmt.Sprintf("Event{#%d l=(%+.2f,%+.2f) r=(%+.2f,%+.2f)}", e.Timestamp, e.LX, e.LY, e.RX, e.RY)
}

// edges turns held buttons into presses: a button is triggered on the first
// frame it's held, and not again until it's been released.
type edges struct {
	held [NumButtons]bool
}

func (e *edges) update(pressed [NumButtons]bool) (rising [NumButtons]bool) {
	for i, p := range pressed {
		rising[i] = p && !e.held[i]
	}

	e.held = pressed
	return rising
}
