package interact

import (
	"fmt"
	"image"

	"github.com/rjkroege/plotwin/plot"
)

// PointerEvent is one pointer event together with the surface and render
// size it happened on. Positions derived from it are computed against the
// surface's projection at the time of the call.
type PointerEvent struct {
	surface    plot.Surface
	renderSize image.Point
	kind       Kind
	x, y       int
	flags      Flags
}

// NewPointerEvent returns an event at outer pixel (x, y) of an image of
// renderSize drawn from surface.
func NewPointerEvent(surface plot.Surface, renderSize image.Point, kind Kind, x, y int, flags Flags) PointerEvent {
	return PointerEvent{
		surface:    surface,
		renderSize: renderSize,
		kind:       kind,
		x:          x,
		y:          y,
		flags:      flags,
	}
}

func (ev PointerEvent) Surface() plot.Surface   { return ev.surface }
func (ev PointerEvent) RenderSize() image.Point { return ev.renderSize }
func (ev PointerEvent) Kind() Kind              { return ev.kind }
func (ev PointerEvent) X() int                  { return ev.x }
func (ev PointerEvent) Y() int                  { return ev.y }
func (ev PointerEvent) Flags() Flags            { return ev.flags }

// Projection returns the surface's projection for the event's render size.
func (ev PointerEvent) Projection() plot.Projection {
	return ev.surface.Projection(ev.renderSize)
}

// OuterPoint is the position in window client coordinates.
func (ev PointerEvent) OuterPoint() image.Point {
	return image.Pt(ev.x, ev.y)
}

// InnerPoint is the position relative to the plot's inner rectangle.
func (ev PointerEvent) InnerPoint() image.Point {
	return ev.OuterPoint().Sub(ev.Projection().InnerRect().Min)
}

// Pos is the position in data coordinates.
func (ev PointerEvent) Pos() plot.Point {
	p := ev.Projection()
	return p.Unproject(ev.OuterPoint().Sub(p.InnerRect().Min))
}

func (ev PointerEvent) String() string {
	return fmt.Sprintf("%v at %v size %v flags %v", ev.kind, ev.OuterPoint(), ev.renderSize, ev.flags)
}
