// Package interact turns pointer events into view changes on a plot.Surface.
package interact

import (
	"fmt"
	"strings"
)

// Button identifies a pointer button.
type Button int

const (
	NoButton Button = iota
	Left
	Middle
	Right
)

func (b Button) String() string {
	switch b {
	case Left:
		return "left"
	case Middle:
		return "middle"
	case Right:
		return "right"
	}
	return "none"
}

// Kind is the raw type of a pointer event as reported by the host.
type Kind int

const (
	Move Kind = iota
	LeftDown
	RightDown
	MiddleDown
	LeftUp
	RightUp
	MiddleUp
	LeftDoubleClick
	RightDoubleClick
	MiddleDoubleClick
	Wheel
)

var kindNames = [...]string{
	Move:              "move",
	LeftDown:          "left-down",
	RightDown:         "right-down",
	MiddleDown:        "middle-down",
	LeftUp:            "left-up",
	RightUp:           "right-up",
	MiddleUp:          "middle-up",
	LeftDoubleClick:   "left-dblclick",
	RightDoubleClick:  "right-dblclick",
	MiddleDoubleClick: "middle-dblclick",
	Wheel:             "wheel",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Button returns the button a down, up or double-click event refers to.
func (k Kind) Button() Button {
	switch k {
	case LeftDown, LeftUp, LeftDoubleClick:
		return Left
	case MiddleDown, MiddleUp, MiddleDoubleClick:
		return Middle
	case RightDown, RightUp, RightDoubleClick:
		return Right
	}
	return NoButton
}

// DownKind, UpKind and DoubleClickKind build a Kind for a button.
func DownKind(b Button) Kind        { return buttonKind(b, LeftDown, MiddleDown, RightDown) }
func UpKind(b Button) Kind          { return buttonKind(b, LeftUp, MiddleUp, RightUp) }
func DoubleClickKind(b Button) Kind { return buttonKind(b, LeftDoubleClick, MiddleDoubleClick, RightDoubleClick) }

func buttonKind(b Button, l, m, r Kind) Kind {
	switch b {
	case Left:
		return l
	case Middle:
		return m
	case Right:
		return r
	}
	return Kind(-1)
}

// Flags carries the modifier state of an event. The low bits hold buttons
// and keys; the upper 16 bits hold the signed raw wheel delta, 120 units
// per notch.
type Flags uint32

const (
	FlagLeft Flags = 1 << iota
	FlagRight
	FlagMiddle
	FlagCtrl
	FlagShift
	FlagAlt

	flagMask Flags = 0xffff

	// WheelUnit is the raw wheel delta of one notch.
	WheelUnit = 120
)

// ButtonFlag returns the flag that reports b as held.
func ButtonFlag(b Button) Flags {
	switch b {
	case Left:
		return FlagLeft
	case Middle:
		return FlagMiddle
	case Right:
		return FlagRight
	}
	return 0
}

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// WithWheel returns f with its wheel delta replaced by notches.
func (f Flags) WithWheel(notches float64) Flags {
	raw := int16(notches * WheelUnit)
	return f&flagMask | Flags(uint16(raw))<<16
}

// WheelDelta returns the signed number of wheel notches, positive when the
// wheel moved away from the user.
func (f Flags) WheelDelta() float64 {
	return float64(int16(f>>16)) / WheelUnit
}

func (f Flags) String() string {
	var parts []string
	for _, n := range []struct {
		f Flags
		s string
	}{
		{FlagLeft, "left"},
		{FlagMiddle, "middle"},
		{FlagRight, "right"},
		{FlagCtrl, "ctrl"},
		{FlagShift, "shift"},
		{FlagAlt, "alt"},
	} {
		if f.Has(n.f) {
			parts = append(parts, n.s)
		}
	}
	if d := f.WheelDelta(); d != 0 {
		parts = append(parts, fmt.Sprintf("wheel=%g", d))
	}
	return "[" + strings.Join(parts, "|") + "]"
}
