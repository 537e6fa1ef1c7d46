package plotwintest

import (
	"fmt"
	"image"

	"github.com/rjkroege/plotwin/plot"
)

var _ = plot.Surface((*Surface)(nil))

// Surface is a plot.Surface that records the calls made on it. Its
// projection has a fixed inner rectangle and maps inner pixels one to one
// onto data coordinates.
type Surface struct {
	Inner image.Rectangle

	// Ops lists the calls in order, formatted for comparison in tests.
	Ops []string

	// Renders counts calls to Render.
	Renders int
}

// NewSurface returns a recording surface whose projection reports inner
// as its inner rectangle.
func NewSurface(inner image.Rectangle) *Surface {
	return &Surface{Inner: inner}
}

func (s *Surface) Pan(size image.Point, delta image.Point) {
	s.Ops = append(s.Ops, fmt.Sprintf("pan size %v delta %v", size, delta))
}

func (s *Surface) Zoom(size image.Point, anchor image.Point, scaleX, scaleY float64) {
	s.Ops = append(s.Ops, fmt.Sprintf("zoom size %v anchor %v scale %.4f %.4f", size, anchor, scaleX, scaleY))
}

func (s *Surface) SetXAutoscale() { s.Ops = append(s.Ops, "xauto") }
func (s *Surface) SetYAutoscale() { s.Ops = append(s.Ops, "yauto") }

func (s *Surface) Projection(size image.Point) plot.Projection {
	return identity{inner: s.Inner}
}

// Render returns a blank image of the requested size and counts the call.
func (s *Surface) Render(cols, rows int) *image.RGBA {
	s.Renders++
	if cols <= 0 || rows <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	return image.NewRGBA(image.Rect(0, 0, cols, rows))
}

// Clear forgets recorded operations.
func (s *Surface) Clear() {
	s.Ops = nil
	s.Renders = 0
}

type identity struct {
	inner image.Rectangle
}

func (p identity) InnerRect() image.Rectangle { return p.inner }

func (p identity) Unproject(pt image.Point) plot.Point {
	return plot.Point{X: float64(pt.X), Y: float64(pt.Y)}
}
