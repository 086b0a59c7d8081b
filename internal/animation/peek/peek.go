package peek

import (
	"image"

	"tinygo.org/x/drivers"

	"github.com/ajanata/deskbuddy/internal/animation"
)

// step is how many rows the image drops per frame.
const step = 4

// Anim drops an image in from the top of the display until it rests at the origin.
type Anim struct {
	img image.Image
	y   int16
}

func New(img image.Image) *Anim {
	return &Anim{
		img: img,
	}
}

func (a *Anim) Activate(disp drivers.Displayer) {
	a.y = int16(-a.img.Bounds().Max.Y)
	animation.Clear(disp)
}

func (a *Anim) DrawFrame(disp drivers.Displayer, _ uint32) bool {
	if a.y >= 0 {
		return false
	}
	a.y += step
	if a.y > 0 {
		a.y = 0
	}
	// the rows above the image were part of the previous frame
	w, _ := disp.Size()
	top := a.y - step
	if top < 0 {
		top = 0
	}
	for y := top; y < a.y; y++ {
		for x := int16(0); x < w; x++ {
			disp.SetPixel(x, y, animation.Black)
		}
	}
	animation.DrawImage(disp, 0, a.y, a.img, false)
	return a.y < 0
}
