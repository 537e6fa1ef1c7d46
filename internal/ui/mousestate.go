// Package ui converts raw mouse snapshots into pointer events.
package ui

import (
	"image"

	"github.com/rjkroege/plotwin/interact"
)

// Plan 9 mouse button bits.
const (
	MouseB1 = 1 << iota // left
	MouseB2             // middle
	MouseB3             // right
	MouseB4             // wheel up
	MouseB5             // wheel down

	buttonMask = MouseB1 | MouseB2 | MouseB3
)

const (
	// DefaultDoubleClickMsec is the longest gap between two presses of the
	// same button that still counts as a double click.
	DefaultDoubleClickMsec = 500

	// doubleClickSlop is how far, in pixels, the pointer may travel between
	// the two presses of a double click.
	doubleClickSlop = 4
)

var buttons = [...]struct {
	bit int
	b   interact.Button
}{
	{MouseB1, interact.Left},
	{MouseB2, interact.Middle},
	{MouseB3, interact.Right},
}

// Event is one pointer event derived from a mouse snapshot.
type Event struct {
	Kind  interact.Kind
	Point image.Point
	Flags interact.Flags
}

type press struct {
	valid bool
	msec  uint32
	point image.Point
}

// ButtonTracker remembers the previous mouse snapshot of one window so that
// the next snapshot can be expressed as transitions: moves, presses,
// releases, double clicks and wheel notches.
type ButtonTracker struct {
	started bool
	point   image.Point
	buttons int

	doubleClickMsec uint32
	last            [len(buttons)]press
}

// NewButtonTracker returns a tracker with no saved state. A zero interval
// selects DefaultDoubleClickMsec.
func NewButtonTracker(doubleClickMsec uint32) *ButtonTracker {
	if doubleClickMsec == 0 {
		doubleClickMsec = DefaultDoubleClickMsec
	}
	return &ButtonTracker{doubleClickMsec: doubleClickMsec}
}

// Flags converts held Plan 9 buttons into interaction flags.
func Flags(held int) interact.Flags {
	var f interact.Flags
	for _, b := range buttons {
		if held&b.bit != 0 {
			f |= interact.ButtonFlag(b.b)
		}
	}
	return f
}

// Track consumes a snapshot and returns the events it implies, in order:
// a move made with the previously held buttons, then releases, then
// presses, then wheel notches.
func (bt *ButtonTracker) Track(pt image.Point, held int, msec uint32) []Event {
	var evs []Event
	prev := bt.buttons & buttonMask
	cur := held & buttonMask

	if bt.started && pt != bt.point {
		evs = append(evs, Event{Kind: interact.Move, Point: pt, Flags: Flags(prev)})
	}

	for _, b := range buttons {
		if prev&b.bit != 0 && cur&b.bit == 0 {
			evs = append(evs, Event{Kind: interact.UpKind(b.b), Point: pt, Flags: Flags(cur)})
		}
	}

	for i, b := range buttons {
		if prev&b.bit != 0 || cur&b.bit == 0 {
			continue
		}
		kind := interact.DownKind(b.b)
		last := &bt.last[i]
		if last.valid && msec-last.msec <= bt.doubleClickMsec && near(last.point, pt) {
			kind = interact.DoubleClickKind(b.b)
			last.valid = false
		} else {
			*last = press{valid: true, msec: msec, point: pt}
		}
		evs = append(evs, Event{Kind: kind, Point: pt, Flags: Flags(cur)})
	}

	if held&MouseB4 != 0 && bt.buttons&MouseB4 == 0 {
		evs = append(evs, Event{Kind: interact.Wheel, Point: pt, Flags: Flags(cur).WithWheel(1)})
	}
	if held&MouseB5 != 0 && bt.buttons&MouseB5 == 0 {
		evs = append(evs, Event{Kind: interact.Wheel, Point: pt, Flags: Flags(cur).WithWheel(-1)})
	}

	bt.started = true
	bt.point = pt
	bt.buttons = held
	return evs
}

// Point returns the position of the last snapshot.
func (bt *ButtonTracker) Point() image.Point {
	return bt.point
}

// Clear forgets the saved snapshot and pending double clicks.
func (bt *ButtonTracker) Clear() {
	*bt = ButtonTracker{doubleClickMsec: bt.doubleClickMsec}
}

func near(a, b image.Point) bool {
	d := a.Sub(b)
	return abs(d.X) <= doubleClickSlop && abs(d.Y) <= doubleClickSlop
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
