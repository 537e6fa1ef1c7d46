package draw

import (
	draw "9fans.net/go/draw"
)

const (
	Refnone = draw.Refnone

	Black     = draw.Black
	Notacolor = draw.Notacolor
	White     = draw.White
)

// Pix constants for pixel formats.
var (
	RGBA32 = draw.RGBA32
	RGB24  = draw.RGB24
	XRGB32 = draw.XRGB32
)

type (
	Color       = draw.Color
	drawDisplay = draw.Display
	drawImage   = draw.Image
	Keyboardctl = draw.Keyboardctl
	Mousectl    = draw.Mousectl
	Mouse       = draw.Mouse
	Pix         = draw.Pix
)

var Init = draw.Init

// Device opens devdraw connections.
type Device struct{}

func (dev *Device) NewDisplay(errch chan<- error, fontname, label, winsize string) (Display, error) {
	d, err := Init(errch, fontname, label, winsize)
	if err != nil {
		return nil, err
	}
	return &displayImpl{d}, nil
}
