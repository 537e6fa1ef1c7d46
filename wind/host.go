// Package wind manages on-screen windows that show an interactive plot.
//
// A Registry owns a Host (the windowing toolkit) and the table that maps
// window names to Windows. The host reports pointer input through a
// callback that carries only the window name, so every callback resolves
// its Window through that table. Windows are polled for resizes rather
// than notified.
//
// Everything runs on the goroutine that calls WaitKey: the host delivers
// pointer callbacks from inside PollKey.
package wind

import (
	"errors"
	"image"
	"time"

	"github.com/rjkroege/plotwin/interact"
)

// NoKey is returned by PollKey and WaitKey when no key was pressed.
const NoKey = -1

// ErrHost wraps failures reported by the Host.
var ErrHost = errors.New("wind: host failure")

// Handle identifies one host window for its lifetime. A handle is never
// reused, so a handle to a destroyed window stays invalid even when a new
// window with the same name is created.
type Handle uint64

// MouseCallback receives raw pointer input for the window that registered
// it. token is the value passed to SetMouseCallback.
type MouseCallback func(kind interact.Kind, x, y int, flags interact.Flags, token string)

// Host is the windowing toolkit.
type Host interface {
	// Create opens a window labelled name with a client area of cols x rows.
	Create(name string, cols, rows int) (Handle, error)

	// Lookup returns the most recent window created with name, alive or not.
	Lookup(name string) (Handle, bool)

	Destroy(h Handle) error

	// Show displays img in the window's client area.
	Show(h Handle, img image.Image) error

	// ImageRect returns the window's current client rectangle.
	ImageRect(h Handle) (image.Rectangle, error)

	// Alive reports whether the window is still open. It may fail for a
	// window the host has fully forgotten.
	Alive(h Handle) (bool, error)

	SetMouseCallback(h Handle, cb MouseCallback, token string)

	// PollKey waits up to timeout for a key press and returns it, or NoKey.
	// Pending pointer callbacks are delivered before it returns.
	PollKey(timeout time.Duration) int
}
