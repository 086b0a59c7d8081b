package panel

import (
	"image"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Drawer is the part of periph.io's display.Drawer used to push frames.
type Drawer interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// Periph buffers pixels in a 1-bit image and pushes the whole frame to a periph.io display on Display.
type Periph struct {
	dev Drawer
	img *image1bit.VerticalLSB
	w   int16
	h   int16
}

func NewPeriph(dev Drawer) *Periph {
	b := dev.Bounds()
	return &Periph{
		dev: dev,
		img: image1bit.NewVerticalLSB(b),
		w:   int16(b.Dx()),
		h:   int16(b.Dy()),
	}
}

func (p *Periph) Size() (x, y int16) {
	return p.w, p.h
}

func (p *Periph) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return
	}
	p.img.SetBit(int(x), int(y), image1bit.Bit(c.R != 0 || c.G != 0 || c.B != 0))
}

func (p *Periph) Display() error {
	return p.dev.Draw(p.dev.Bounds(), p.img, image.Point{})
}
