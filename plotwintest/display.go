package plotwintest

import (
	"fmt"
	"image"
	"strconv"
	"strings"
	"sync"

	"github.com/rjkroege/plotwin/draw"
)

var _ = draw.Display((*Display)(nil))

// Display is a mock draw.Display. Tests feed it input through the send
// sides of its mouse, resize and keyboard channels and inspect the
// operations it recorded.
type Display struct {
	Label    string
	Fontname string

	mu      sync.Mutex
	ops     []string
	closed  bool
	screen  *Image
	loaded  [][]byte
	mousec  chan draw.Mouse
	resizec chan bool
	keyc    chan rune
	errch   chan<- error
}

// NewDisplay returns a mock display whose screen image has the size given
// by winsize in WxH form. An empty winsize gives 800x600.
func NewDisplay(errch chan<- error, fontname, label, winsize string) (*Display, error) {
	size, err := parseWinsize(winsize)
	if err != nil {
		return nil, err
	}
	d := &Display{
		Label:    label,
		Fontname: fontname,
		mousec:   make(chan draw.Mouse, 64),
		resizec:  make(chan bool, 4),
		keyc:     make(chan rune, 64),
		errch:    errch,
	}
	d.screen = &Image{d: d, name: "screen", r: image.Rectangle{Max: size}}
	return d, nil
}

func parseWinsize(s string) (image.Point, error) {
	if s == "" {
		return image.Pt(800, 600), nil
	}
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return image.Point{}, fmt.Errorf("bad window size %q", s)
	}
	x, err := strconv.Atoi(w)
	if err != nil {
		return image.Point{}, fmt.Errorf("bad window width %q: %v", s, err)
	}
	y, err := strconv.Atoi(h)
	if err != nil {
		return image.Point{}, fmt.Errorf("bad window height %q: %v", s, err)
	}
	return image.Pt(x, y), nil
}

func (d *Display) record(format string, args ...interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = append(d.ops, fmt.Sprintf(format, args...))
}

func (d *Display) ScreenImage() draw.Image { return d.screen }

func (d *Display) White() draw.Image {
	return &Image{d: d, name: "white", r: image.Rect(0, 0, 1, 1)}
}

func (d *Display) InitKeyboard() *draw.Keyboardctl {
	return &draw.Keyboardctl{C: d.keyc}
}

func (d *Display) InitMouse() *draw.Mousectl {
	return &draw.Mousectl{C: d.mousec, Resize: d.resizec}
}

func (d *Display) AllocImage(r image.Rectangle, pix draw.Pix, repl bool, val draw.Color) (draw.Image, error) {
	d.record("alloc %v", r)
	return &Image{d: d, name: fmt.Sprintf("img%v", r.Size()), r: r, pix: pix}, nil
}

func (d *Display) Attach(ref int) error {
	d.record("attach %d", ref)
	return nil
}

func (d *Display) Flush() error {
	d.record("flush")
	return nil
}

func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.ops = append(d.ops, "close")
	return nil
}

// Closed reports whether Close was called.
func (d *Display) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// DrawOps returns the recorded operations.
func (d *Display) DrawOps() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.ops...)
}

// Loaded returns the pixel data passed to Load, in order.
func (d *Display) Loaded() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loaded
}

func (d *Display) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = nil
	d.loaded = nil
}

// Move sends a mouse snapshot.
func (d *Display) Move(x, y, buttons int, msec uint32) {
	d.mousec <- draw.Mouse{Point: image.Pt(x, y), Buttons: buttons, Msec: msec}
}

// Key sends a key press.
func (d *Display) Key(r rune) {
	d.keyc <- r
}

// Resize changes the screen image size and signals a resize.
func (d *Display) Resize(cols, rows int) {
	d.mu.Lock()
	d.screen.r = image.Rect(0, 0, cols, rows)
	d.mu.Unlock()
	d.resizec <- true
}

// Hangup reports a devdraw failure, as happens when the user closes the
// window.
func (d *Display) Hangup(err error) {
	d.errch <- err
}

var _ = draw.Image((*Image)(nil))

// Image is a mock draw.Image.
type Image struct {
	d    *Display
	name string
	r    image.Rectangle
	pix  draw.Pix
}

func (i *Image) Display() draw.Display { return i.d }
func (i *Image) Pix() draw.Pix         { return i.pix }

func (i *Image) R() image.Rectangle {
	i.d.mu.Lock()
	defer i.d.mu.Unlock()
	return i.r
}

func (i *Image) Draw(r image.Rectangle, src, mask draw.Image, p1 image.Point) {
	srcname := "nil"
	if s, ok := src.(*Image); ok {
		srcname = s.name
	}
	i.d.record("%s <- draw r: %v src: %s p1: %v", i.name, r, srcname, p1)
}

func (i *Image) Free() error {
	i.d.record("free %s", i.name)
	return nil
}

func (i *Image) Load(r image.Rectangle, data []byte) (int, error) {
	i.d.mu.Lock()
	defer i.d.mu.Unlock()
	i.d.ops = append(i.d.ops, fmt.Sprintf("load %s %v %d bytes", i.name, r, len(data)))
	i.d.loaded = append(i.d.loaded, append([]byte(nil), data...))
	return len(data), nil
}

// Opener hands out mock displays and remembers them by label.
type Opener struct {
	mu       sync.Mutex
	displays []*Display

	// Err, if set, makes NewDisplay fail.
	Err error
}

func (o *Opener) NewDisplay(errch chan<- error, fontname, label, winsize string) (draw.Display, error) {
	if o.Err != nil {
		return nil, o.Err
	}
	d, err := NewDisplay(errch, fontname, label, winsize)
	if err != nil {
		return nil, err
	}
	o.mu.Lock()
	o.displays = append(o.displays, d)
	o.mu.Unlock()
	return d, nil
}

// Last returns the most recently opened display with the given label.
func (o *Opener) Last(label string) *Display {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.displays) - 1; i >= 0; i-- {
		if o.displays[i].Label == label {
			return o.displays[i]
		}
	}
	return nil
}

// Displays returns every display opened so far.
func (o *Opener) Displays() []*Display {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*Display(nil), o.displays...)
}
