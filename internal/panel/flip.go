// Package panel adapts display hardware to the drivers.Displayer interface the rest of the firmware draws on.
package panel

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Flip rotates a display by 180 degrees, for units assembled with the panel upside down.
type Flip struct {
	d    drivers.Displayer
	w, h int16
}

func NewFlip(d drivers.Displayer) *Flip {
	w, h := d.Size()
	return &Flip{
		d: d,
		w: w,
		h: h,
	}
}

func (f *Flip) Size() (x, y int16) {
	return f.w, f.h
}

func (f *Flip) SetPixel(x, y int16, c color.RGBA) {
	f.d.SetPixel(f.w-x-1, f.h-y-1, c)
}

func (f *Flip) Display() error {
	return f.d.Display()
}
