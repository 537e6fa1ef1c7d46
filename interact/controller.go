package interact

import (
	"image"
	"math"

	"github.com/rjkroege/plotwin/plot"
)

const (
	// DefaultWheelBase is the zoom factor of one wheel notch.
	DefaultWheelBase = 1.2

	// DefaultDragScale is the drag distance in pixels that doubles or
	// halves the visible span during a right-button zoom.
	DefaultDragScale = 100.0
)

// Handler receives every event a Controller dispatches. It returns true
// when the surface needs to be rendered again.
type Handler func(PointerEvent) bool

// Option configures a Controller.
type Option func(*Controller)

// WithWheelBase sets the zoom factor applied per wheel notch.
func WithWheelBase(base float64) Option {
	return func(c *Controller) {
		c.wheelBase = base
	}
}

// WithDragScale sets the drag distance, in pixels, per factor of two in a
// right-button zoom.
func WithDragScale(pixels float64) Option {
	return func(c *Controller) {
		c.dragScale = pixels
	}
}

// WithHandler sets the initial user handler.
func WithHandler(h Handler) Option {
	return func(c *Controller) {
		c.handler = h
	}
}

// Controller provides the built-in pointer interaction for one surface:
// middle-drag pans, right-drag zooms around the press point, the wheel
// zooms around the pointer and a right double-click autoscales.
type Controller struct {
	surface plot.Surface

	pressPos image.Point // outer position of the last middle or right press
	lastPos  image.Point // outer position consumed by the last drag step

	handler Handler

	wheelBase float64
	dragScale float64
}

// NewController returns a Controller bound to surface for its lifetime.
func NewController(surface plot.Surface, opts ...Option) *Controller {
	c := &Controller{
		surface:   surface,
		wheelBase: DefaultWheelBase,
		dragScale: DefaultDragScale,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Controller) Surface() plot.Surface { return c.surface }

// SetHandler replaces the user handler. A nil handler removes it.
func (c *Controller) SetHandler(h Handler) {
	c.handler = h
}

// Dispatch runs the built-in interaction and then the user handler, and
// reports whether either of them asked for a re-render. The user handler
// sees every event regardless of what the built-in interaction did.
func (c *Controller) Dispatch(ev PointerEvent) bool {
	update := c.handle(ev)
	if c.handler != nil && c.handler(ev) {
		update = true
	}
	return update
}

func (c *Controller) handle(ev PointerEvent) bool {
	pt := ev.OuterPoint()
	size := ev.RenderSize()

	switch ev.Kind() {
	case MiddleDown, RightDown:
		c.pressPos = pt
		c.lastPos = pt
		return true
	case Move:
		delta := pt.Sub(c.lastPos)
		flags := ev.Flags()
		// A chord of middle and right pans.
		switch {
		case flags.Has(FlagMiddle):
			c.surface.Pan(size, delta)
		case flags.Has(FlagRight):
			sx := math.Pow(2, -float64(delta.X)/c.dragScale)
			sy := math.Pow(2, float64(delta.Y)/c.dragScale)
			c.surface.Zoom(size, c.pressPos, sx, sy)
		default:
			return false
		}
		c.lastPos = pt
		return true
	case RightDoubleClick:
		c.surface.SetXAutoscale()
		c.surface.SetYAutoscale()
		return true
	case Wheel:
		scale := math.Pow(c.wheelBase, -ev.Flags().WheelDelta())
		c.surface.Zoom(size, pt, scale, scale)
		return true
	}
	return false
}
