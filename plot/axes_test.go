package plot

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// testSize gives a 100x100 inner rectangle at (40,10).
var testSize = image.Pt(150, 140)

func fixedAxes() *Axes {
	a := NewAxes(nil)
	a.SetXLim(0, 10)
	a.SetYLim(0, 10)
	return a
}

type limits struct {
	X0, X1, Y0, Y1 float64
}

func limitsOf(a *Axes) limits {
	var l limits
	l.X0, l.X1 = a.XLim()
	l.Y0, l.Y1 = a.YLim()
	return l
}

func TestInnerRect(t *testing.T) {
	tests := []struct {
		size image.Point
		want image.Rectangle
	}{
		{testSize, image.Rect(40, 10, 140, 110)},
		{image.Pt(20, 20), image.Rect(0, 0, 20, 20)},
		{image.Pt(0, 0), image.Rect(0, 0, 1, 1)},
		{image.Pt(200, 35), image.Rect(40, 0, 190, 35)},
	}
	for _, tc := range tests {
		if got := innerRect(tc.size); got != tc.want {
			t.Errorf("innerRect(%v) = %v, want %v", tc.size, got, tc.want)
		}
	}
}

func TestLinearProjection(t *testing.T) {
	p := fixedAxes().Projection(testSize).(*Linear)

	if got, want := p.InnerRect(), image.Rect(40, 10, 140, 110); got != want {
		t.Errorf("InnerRect = %v, want %v", got, want)
	}
	tests := []struct {
		inner image.Point
		want  Point
	}{
		{image.Pt(0, 0), Point{0, 10}},
		{image.Pt(100, 100), Point{10, 0}},
		{image.Pt(50, 25), Point{5, 7.5}},
	}
	for _, tc := range tests {
		got := p.Unproject(tc.inner)
		if diff := cmp.Diff(tc.want, got, approx); diff != "" {
			t.Errorf("Unproject(%v) mismatch (-want +got):\n%s", tc.inner, diff)
		}
		if back := p.Project(got); back != tc.inner.Add(p.InnerRect().Min) {
			t.Errorf("Project(%v) = %v, want %v", got, back, tc.inner.Add(p.InnerRect().Min))
		}
	}
}

func TestAutoscaleLimits(t *testing.T) {
	tests := []struct {
		name string
		data []Point
		want limits
	}{
		{"empty", nil, limits{0, 1, 0, 1}},
		{"single", []Point{{3, 4}}, limits{2.5, 3.5, 3.5, 4.5}},
		{"padded", []Point{{0, 0}, {10, 20}}, limits{-0.5, 10.5, -1, 21}},
		{"skips nan", []Point{{0, 0}, {math.NaN(), 100}, {10, 20}}, limits{-0.5, 10.5, -1, 21}},
		{"all nan", []Point{{math.NaN(), math.Inf(1)}}, limits{0, 1, 0, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAxes(tc.data)
			if diff := cmp.Diff(tc.want, limitsOf(a), approx); diff != "" {
				t.Errorf("limits mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetLimAndAutoscale(t *testing.T) {
	a := NewAxes([]Point{{0, 0}, {10, 20}})
	if !a.XAutoscale() || !a.YAutoscale() {
		t.Fatal("new axes should autoscale")
	}
	a.SetXLim(1, 2)
	if a.XAutoscale() || !a.YAutoscale() {
		t.Error("SetXLim should turn off x autoscale only")
	}
	a.SetYLim(3, 4)
	if diff := cmp.Diff(limits{1, 2, 3, 4}, limitsOf(a)); diff != "" {
		t.Errorf("limits mismatch (-want +got):\n%s", diff)
	}
	a.SetXAutoscale()
	a.SetYAutoscale()
	if diff := cmp.Diff(limits{-0.5, 10.5, -1, 21}, limitsOf(a), approx); diff != "" {
		t.Errorf("limits after autoscale mismatch (-want +got):\n%s", diff)
	}
}

func TestPan(t *testing.T) {
	a := fixedAxes()
	a.Pan(testSize, image.Pt(10, -20))
	if diff := cmp.Diff(limits{-1, 9, -2, 8}, limitsOf(a), approx); diff != "" {
		t.Errorf("limits mismatch (-want +got):\n%s", diff)
	}

	auto := NewAxes([]Point{{0, 0}, {10, 20}})
	auto.Pan(testSize, image.Pt(0, 0))
	if auto.XAutoscale() || auto.YAutoscale() {
		t.Error("Pan should turn off autoscale")
	}
}

func TestZoom(t *testing.T) {
	tests := []struct {
		name   string
		anchor image.Point
		sx, sy float64
		want   limits
	}{
		{"in at centre", image.Pt(90, 60), 0.5, 0.5, limits{2.5, 7.5, 2.5, 7.5}},
		{"out at centre", image.Pt(90, 60), 2, 2, limits{-5, 15, -5, 15}},
		{"x only at corner", image.Pt(40, 110), 0.5, 1, limits{0, 5, 0, 10}},
		{"anchor stays put", image.Pt(60, 30), 0.25, 0.25, limits{1.5, 4, 6, 8.5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := fixedAxes()
			before := a.Projection(testSize).(*Linear).Unproject(tc.anchor.Sub(image.Pt(40, 10)))
			a.Zoom(testSize, tc.anchor, tc.sx, tc.sy)
			if diff := cmp.Diff(tc.want, limitsOf(a), approx); diff != "" {
				t.Errorf("limits mismatch (-want +got):\n%s", diff)
			}
			after := a.Projection(testSize).(*Linear).Unproject(tc.anchor.Sub(image.Pt(40, 10)))
			if diff := cmp.Diff(before, after, approx); diff != "" {
				t.Errorf("data under anchor moved (-before +after):\n%s", diff)
			}
		})
	}
}

func TestRender(t *testing.T) {
	a := fixedAxes()
	a.SetData([]Point{{5, 5}})

	if img := a.Render(0, 10); !img.Rect.Empty() {
		t.Errorf("Render(0, 10) = %v, want empty", img.Rect)
	}

	img := a.Render(testSize.X, testSize.Y)
	if got, want := img.Rect, image.Rect(0, 0, 150, 140); got != want {
		t.Fatalf("Render bounds %v, want %v", got, want)
	}
	tests := []struct {
		at   image.Point
		want color.RGBA
	}{
		{image.Pt(0, 0), backgroundColor},
		{image.Pt(40, 10), borderColor},
		{image.Pt(139, 109), borderColor},
		{image.Pt(90, 60), seriesColor},
		{image.Pt(91, 61), seriesColor},
		{image.Pt(93, 60), backgroundColor},
	}
	for _, tc := range tests {
		if got := img.RGBAAt(tc.at.X, tc.at.Y); got != tc.want {
			t.Errorf("pixel at %v = %v, want %v", tc.at, got, tc.want)
		}
	}
}
