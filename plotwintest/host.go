package plotwintest

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rjkroege/plotwin/interact"
	"github.com/rjkroege/plotwin/wind"
)

var _ = wind.Host((*Host)(nil))

// ErrNoWindow is returned for handles the mock host does not know.
var ErrNoWindow = errors.New("plotwintest: no such window")

type hostWindow struct {
	name  string
	size  image.Point
	alive bool

	shows int
	last  image.Image

	cb    wind.MouseCallback
	token string
}

type pointerInput struct {
	h     wind.Handle
	kind  interact.Kind
	x, y  int
	flags interact.Flags
}

// Host is an in-memory wind.Host. Pointer input queued with Inject is
// delivered during the next PollKey, as a real host would.
type Host struct {
	next    wind.Handle
	windows map[wind.Handle]*hostWindow
	byName  map[string]wind.Handle

	pending []pointerInput
	keys    []int

	// Ops records create, destroy and show calls in order.
	Ops []string

	// Polls counts PollKey calls.
	Polls int

	// OnPoll, if set, runs at the start of every PollKey.
	OnPoll func(polls int)

	// CreateErr, if set, makes Create fail.
	CreateErr error
}

// NewHost returns an empty mock host.
func NewHost() *Host {
	return &Host{
		windows: make(map[wind.Handle]*hostWindow),
		byName:  make(map[string]wind.Handle),
	}
}

func (h *Host) Create(name string, cols, rows int) (wind.Handle, error) {
	if h.CreateErr != nil {
		return 0, h.CreateErr
	}
	h.next++
	hd := h.next
	h.windows[hd] = &hostWindow{name: name, size: image.Pt(cols, rows), alive: true}
	h.byName[name] = hd
	h.Ops = append(h.Ops, fmt.Sprintf("create %d %s %dx%d", hd, name, cols, rows))
	return hd, nil
}

func (h *Host) Lookup(name string) (wind.Handle, bool) {
	hd, ok := h.byName[name]
	return hd, ok
}

func (h *Host) Destroy(hd wind.Handle) error {
	w, ok := h.windows[hd]
	if !ok {
		return ErrNoWindow
	}
	w.alive = false
	h.Ops = append(h.Ops, fmt.Sprintf("destroy %d %s", hd, w.name))
	return nil
}

func (h *Host) Show(hd wind.Handle, img image.Image) error {
	w, ok := h.windows[hd]
	if !ok || !w.alive {
		return ErrNoWindow
	}
	w.shows++
	w.last = img
	h.Ops = append(h.Ops, fmt.Sprintf("show %d %v", hd, img.Bounds().Size()))
	return nil
}

func (h *Host) ImageRect(hd wind.Handle) (image.Rectangle, error) {
	w, ok := h.windows[hd]
	if !ok {
		return image.Rectangle{}, ErrNoWindow
	}
	return image.Rectangle{Max: w.size}, nil
}

// Alive fails for handles that were never created or were Forgotten.
func (h *Host) Alive(hd wind.Handle) (bool, error) {
	w, ok := h.windows[hd]
	if !ok {
		return false, ErrNoWindow
	}
	return w.alive, nil
}

func (h *Host) SetMouseCallback(hd wind.Handle, cb wind.MouseCallback, token string) {
	if w, ok := h.windows[hd]; ok {
		w.cb = cb
		w.token = token
	}
}

// PollKey delivers queued pointer input to live windows and then returns
// the oldest queued key. It never sleeps.
func (h *Host) PollKey(timeout time.Duration) int {
	h.Polls++
	if h.OnPoll != nil {
		h.OnPoll(h.Polls)
	}
	pending := h.pending
	h.pending = nil
	for _, in := range pending {
		h.Fire(in.h, in.kind, in.x, in.y, in.flags)
	}
	if len(h.keys) == 0 {
		return wind.NoKey
	}
	k := h.keys[0]
	h.keys = h.keys[1:]
	return k
}

// Inject queues pointer input for the window.
func (h *Host) Inject(hd wind.Handle, kind interact.Kind, x, y int, flags interact.Flags) {
	h.pending = append(h.pending, pointerInput{hd, kind, x, y, flags})
}

// Fire calls the window's pointer callback at once.
func (h *Host) Fire(hd wind.Handle, kind interact.Kind, x, y int, flags interact.Flags) {
	w, ok := h.windows[hd]
	if !ok || !w.alive || w.cb == nil {
		return
	}
	w.cb(kind, x, y, flags, w.token)
}

// PressKey queues a key for PollKey.
func (h *Host) PressKey(k int) {
	h.keys = append(h.keys, k)
}

// Resize changes the client size as a window manager would.
func (h *Host) Resize(hd wind.Handle, cols, rows int) {
	if w, ok := h.windows[hd]; ok {
		w.size = image.Pt(cols, rows)
	}
}

// UserClose closes the window as if the user had dismissed it.
func (h *Host) UserClose(hd wind.Handle) {
	if w, ok := h.windows[hd]; ok {
		w.alive = false
	}
}

// Forget drops all knowledge of the window so that Alive fails.
func (h *Host) Forget(hd wind.Handle) {
	if w, ok := h.windows[hd]; ok {
		if h.byName[w.name] == hd {
			delete(h.byName, w.name)
		}
		delete(h.windows, hd)
	}
}

// Shows returns how often an image was shown in the window.
func (h *Host) Shows(hd wind.Handle) int {
	if w, ok := h.windows[hd]; ok {
		return w.shows
	}
	return 0
}

// LastShown returns the last image shown in the window.
func (h *Host) LastShown(hd wind.Handle) image.Image {
	if w, ok := h.windows[hd]; ok {
		return w.last
	}
	return nil
}

// Clear forgets recorded operations.
func (h *Host) Clear() {
	h.Ops = nil
}
