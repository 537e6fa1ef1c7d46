// Package plot defines the surface and projection contracts that the
// interactive layer drives, plus a small reference surface.
package plot

import (
	"fmt"
	"image"
)

// Point is a position in data space.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Projection maps between pixel space and data space for one render size.
type Projection interface {
	// Unproject maps a point relative to InnerRect's origin into data space.
	Unproject(p image.Point) Point

	// InnerRect is the plot's inner drawing rectangle in outer pixel space.
	InnerRect() image.Rectangle
}

// Surface is a plot whose view transform can be changed interactively.
// Sizes are (width, height) of the rendered image in pixels.
type Surface interface {
	// Pan moves the view by delta pixels.
	Pan(size image.Point, delta image.Point)

	// Zoom scales the view by scaleX and scaleY, keeping the data under the
	// anchor pixel fixed. Scales below 1 zoom in.
	Zoom(size image.Point, anchor image.Point, scaleX, scaleY float64)

	SetXAutoscale()
	SetYAutoscale()

	// Projection returns the mapping for images of the given size.
	Projection(size image.Point) Projection

	// Render draws the surface into a new cols x rows image.
	Render(cols, rows int) *image.RGBA
}
