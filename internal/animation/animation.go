// Package animation draws faces onto a display over several ticks.
package animation

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

// Animation is something a mode plays on the face display, one frame per tick.
type Animation interface {
	// Activate prepares the display for the first frame. Modes re-activate the same animation on every entry.
	Activate(drivers.Displayer)
	// DrawFrame draws the frame for the given dispatcher tick and reports whether there is more to draw.
	DrawFrame(disp drivers.Displayer, tick uint32) bool
}

// Monochrome panel colours.
var (
	Black = color.RGBA{}
	White = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Clear blanks every pixel on the display.
func Clear(disp drivers.Displayer) {
	w, h := disp.Size()
	for x := int16(0); x < w; x++ {
		for y := int16(0); y < h; y++ {
			disp.SetPixel(x, y, Black)
		}
	}
}

// DrawImage draws the image on the display at the given coordinates.
// If wrap is true, off-screen coordinates will wrap around to the other side of the display.
// Otherwise, off-screen coordinates will be clipped.
//
// The panels are monochrome, so any pixel brighter than half intensity is lit and everything else is cleared.
// Wrapping negative offsets may not work correctly.
func DrawImage(disp drivers.Displayer, offX, offY int16, img image.Image, wrap bool) {
	w, h := disp.Size()
	b := img.Bounds()
	// Assumes the minimum X and Y will always be 0, 0. This should be the case for 24-bit bitmaps.
	for x := 0; x < b.Max.X; x++ {
		xx := int16(x) + offX
		if xx < 0 || xx >= w {
			if wrap {
				xx = xx % w
			} else {
				continue
			}
		}
		for y := 0; y < b.Max.Y; y++ {
			yy := int16(y) + offY
			if yy < 0 || yy >= h {
				if wrap {
					yy = yy % h
				} else {
					continue
				}
			}
			r, g, bl, _ := img.At(x, y).RGBA()
			if (r+g+bl)/3 >= 0x8000 {
				disp.SetPixel(xx, yy, White)
			} else {
				disp.SetPixel(xx, yy, Black)
			}
		}
	}
}
