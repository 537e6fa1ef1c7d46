package wind

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/rjkroege/plotwin/interact"
	"github.com/rjkroege/plotwin/plot"
)

// Window is one host window showing a surface through a Controller.
type Window struct {
	reg    *Registry
	name   string
	handle Handle

	// Requested size at creation.
	cols, rows int

	controller *interact.Controller

	// image is the last rendered frame. Its size is compared with the
	// host's client rectangle to detect resizes.
	image *image.RGBA
}

func (w *Window) Name() string                     { return w.name }
func (w *Window) Handle() Handle                   { return w.handle }
func (w *Window) Surface() plot.Surface            { return w.controller.Surface() }
func (w *Window) Controller() *interact.Controller { return w.controller }

// Image returns the last rendered frame.
func (w *Window) Image() *image.RGBA { return w.image }

// RequestedSize returns the size the window was created with.
func (w *Window) RequestedSize() image.Point { return image.Pt(w.cols, w.rows) }

// SetEventHandler replaces the user handler of the window's controller.
func (w *Window) SetEventHandler(h interact.Handler) {
	w.controller.SetHandler(h)
}

// Alive reports whether the host window is still open. A host that cannot
// answer is treated as reporting a closed window.
func (w *Window) Alive() bool {
	alive, err := w.reg.host.Alive(w.handle)
	if err != nil {
		return false
	}
	return alive
}

// Update renders the surface at the window's current size and shows it.
func (w *Window) Update() {
	if !w.Alive() {
		return
	}
	r, err := w.reg.host.ImageRect(w.handle)
	if err != nil {
		log.Printf("wind: size of %q: %v", w.name, err)
		return
	}
	w.image = w.Surface().Render(r.Dx(), r.Dy())
	w.show()
}

func (w *Window) show() {
	if w.image == nil || w.image.Rect.Empty() {
		return
	}
	if err := w.reg.host.Show(w.handle, w.image); err != nil {
		log.Printf("wind: show %q: %v", w.name, err)
	}
}

func (w *Window) imageSize() image.Point {
	if w.image == nil {
		return image.Point{}
	}
	return w.image.Rect.Size()
}

// checkResize re-renders when the host's client area no longer matches the
// last rendered frame.
func (w *Window) checkResize() {
	if !w.Alive() {
		return
	}
	r, err := w.reg.host.ImageRect(w.handle)
	if err != nil {
		return
	}
	if r.Size() != w.imageSize() {
		w.Update()
	}
}

// Close unregisters the window and then destroys the host window. Input
// arriving during teardown no longer finds the window. Closing twice is
// harmless.
func (w *Window) Close() error {
	w.reg.remove(w)
	if !w.Alive() {
		return nil
	}
	if err := w.reg.host.Destroy(w.handle); err != nil {
		return fmt.Errorf("%w: destroy %q: %v", ErrHost, w.name, err)
	}
	return nil
}

// WaitKey is WaitKey on this window alone.
func (w *Window) WaitKey(delay time.Duration) int {
	return w.reg.WaitKey([]*Window{w}, delay)
}
