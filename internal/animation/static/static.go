package static

import (
	"image"

	"tinygo.org/x/drivers"

	"github.com/ajanata/deskbuddy/internal/animation"
)

// Anim shows a single image and never finishes.
type Anim struct {
	img image.Image
}

func New(img image.Image) *Anim {
	return &Anim{
		img: img,
	}
}

func (a *Anim) Activate(disp drivers.Displayer) {
	animation.DrawImage(disp, 0, 0, a.img, false)
}

func (a *Anim) DrawFrame(_ drivers.Displayer, _ uint32) bool { return true }
