package plot

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Margins between the outer image edge and the inner drawing rectangle.
const (
	marginLeft   = 40
	marginRight  = 10
	marginTop    = 10
	marginBottom = 30

	// autoPadding is the fraction of the data span added on each side when
	// autoscaling.
	autoPadding = 0.05
)

var (
	backgroundColor = color.RGBA{0xff, 0xff, 0xff, 0xff}
	borderColor     = color.RGBA{0x40, 0x40, 0x40, 0xff}
	seriesColor     = color.RGBA{0x1f, 0x4e, 0xb4, 0xff}
)

// Axes is a minimal Surface: a scatter of points under a linear projection
// with per-axis autoscaling. It exists to give the interactive layer
// something concrete to drive.
type Axes struct {
	data []Point

	xlim, ylim   [2]float64
	xauto, yauto bool
}

var _ = Surface((*Axes)(nil))

// NewAxes returns Axes showing data with both axes autoscaled.
func NewAxes(data []Point) *Axes {
	return &Axes{
		data:  data,
		xlim:  [2]float64{0, 1},
		ylim:  [2]float64{0, 1},
		xauto: true,
		yauto: true,
	}
}

// SetData replaces the plotted points.
func (a *Axes) SetData(data []Point) { a.data = data }

// XLim returns the current x limits, resolving autoscale.
func (a *Axes) XLim() (float64, float64) {
	if a.xauto {
		return a.autoLimits(func(p Point) float64 { return p.X })
	}
	return a.xlim[0], a.xlim[1]
}

// YLim returns the current y limits, resolving autoscale.
func (a *Axes) YLim() (float64, float64) {
	if a.yauto {
		return a.autoLimits(func(p Point) float64 { return p.Y })
	}
	return a.ylim[0], a.ylim[1]
}

// SetXLim fixes the x limits and turns x autoscaling off.
func (a *Axes) SetXLim(min, max float64) {
	a.xlim = [2]float64{min, max}
	a.xauto = false
}

// SetYLim fixes the y limits and turns y autoscaling off.
func (a *Axes) SetYLim(min, max float64) {
	a.ylim = [2]float64{min, max}
	a.yauto = false
}

func (a *Axes) SetXAutoscale() { a.xauto = true }
func (a *Axes) SetYAutoscale() { a.yauto = true }

// XAutoscale reports whether the x limits follow the data.
func (a *Axes) XAutoscale() bool { return a.xauto }

// YAutoscale reports whether the y limits follow the data.
func (a *Axes) YAutoscale() bool { return a.yauto }

func (a *Axes) autoLimits(coord func(Point) float64) (float64, float64) {
	if len(a.data) == 0 {
		return 0, 1
	}
	min, max := math.Inf(1), math.Inf(-1)
	for _, p := range a.data {
		v := coord(p)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if min > max {
		return 0, 1
	}
	if min == max {
		return min - 0.5, max + 0.5
	}
	pad := (max - min) * autoPadding
	return min - pad, max + pad
}

// Pan shifts the view so that the data under the pointer follows a drag of
// delta pixels. Both axes stop autoscaling.
func (a *Axes) Pan(size image.Point, delta image.Point) {
	p := a.linear(size)
	dx := float64(delta.X) * p.xspan() / float64(p.inner.Dx())
	dy := float64(delta.Y) * p.yspan() / float64(p.inner.Dy())
	a.SetXLim(p.xmin-dx, p.xmax-dx)
	a.SetYLim(p.ymin+dy, p.ymax+dy)
}

// Zoom multiplies the visible span on each axis by the given scale around
// the data point under anchor (an outer pixel position). Scales below 1
// zoom in. Both axes stop autoscaling.
func (a *Axes) Zoom(size image.Point, anchor image.Point, scaleX, scaleY float64) {
	p := a.linear(size)
	c := p.Unproject(anchor.Sub(p.inner.Min))
	a.SetXLim(c.X+(p.xmin-c.X)*scaleX, c.X+(p.xmax-c.X)*scaleX)
	a.SetYLim(c.Y+(p.ymin-c.Y)*scaleY, c.Y+(p.ymax-c.Y)*scaleY)
}

func (a *Axes) Projection(size image.Point) Projection {
	return a.linear(size)
}

func (a *Axes) linear(size image.Point) *Linear {
	xmin, xmax := a.XLim()
	ymin, ymax := a.YLim()
	return &Linear{
		inner: innerRect(size),
		xmin:  xmin,
		xmax:  xmax,
		ymin:  ymin,
		ymax:  ymax,
	}
}

// innerRect insets the outer rectangle by the margins, keeping at least one
// pixel in each direction so projections stay finite.
func innerRect(size image.Point) image.Rectangle {
	// Not image.Rect, which would swap inverted corners.
	r := image.Rectangle{
		Min: image.Pt(marginLeft, marginTop),
		Max: image.Pt(size.X-marginRight, size.Y-marginBottom),
	}
	if r.Dx() < 1 {
		r.Min.X, r.Max.X = 0, max(size.X, 1)
	}
	if r.Dy() < 1 {
		r.Min.Y, r.Max.Y = 0, max(size.Y, 1)
	}
	return r
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Render draws the inner frame and the data points. A non-positive size
// yields an empty image.
func (a *Axes) Render(cols, rows int) *image.RGBA {
	if cols <= 0 || rows <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, xdraw.Src)

	p := a.linear(image.Pt(cols, rows))
	r := p.inner
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, borderColor)
		img.SetRGBA(x, r.Max.Y-1, borderColor)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, borderColor)
		img.SetRGBA(r.Max.X-1, y, borderColor)
	}

	dot := image.NewUniform(seriesColor)
	for _, d := range a.data {
		pt := p.Project(d)
		if !pt.In(r) {
			continue
		}
		xdraw.Draw(img, image.Rect(pt.X-1, pt.Y-1, pt.X+2, pt.Y+2).Intersect(r), dot, image.Point{}, xdraw.Src)
	}
	return img
}

// Linear is the projection used by Axes: data limits mapped linearly onto
// the inner rectangle, y growing upwards.
type Linear struct {
	inner                  image.Rectangle
	xmin, xmax, ymin, ymax float64
}

var _ = Projection((*Linear)(nil))

func (p *Linear) InnerRect() image.Rectangle { return p.inner }

func (p *Linear) xspan() float64 { return p.xmax - p.xmin }
func (p *Linear) yspan() float64 { return p.ymax - p.ymin }

// Unproject maps a pixel relative to the inner rectangle's origin to data
// space.
func (p *Linear) Unproject(pt image.Point) Point {
	return Point{
		X: p.xmin + float64(pt.X)/float64(p.inner.Dx())*p.xspan(),
		Y: p.ymax - float64(pt.Y)/float64(p.inner.Dy())*p.yspan(),
	}
}

// Project maps a data point to an outer pixel position.
func (p *Linear) Project(d Point) image.Point {
	fx := (d.X - p.xmin) / p.xspan() * float64(p.inner.Dx())
	fy := (p.ymax - d.Y) / p.yspan() * float64(p.inner.Dy())
	return image.Pt(p.inner.Min.X+int(math.Round(fx)), p.inner.Min.Y+int(math.Round(fy)))
}
