package cycle

import (
	"image"

	"tinygo.org/x/drivers"

	"github.com/ajanata/deskbuddy/internal/animation"
)

// Anim flips through a list of images, holding each one for a number of frames, and finishes after a fixed number of
// images have been shown.
type Anim struct {
	imgs  []image.Image
	hold  uint32
	total int

	shown int
	start uint32
	begun bool
}

// New creates a cycle over imgs. Each image is held for hold frames (minimum 1) and the animation ends after total
// images have been drawn.
func New(imgs []image.Image, hold uint32, total int) *Anim {
	if hold == 0 {
		hold = 1
	}
	return &Anim{
		imgs:  imgs,
		hold:  hold,
		total: total,
	}
}

func (a *Anim) Activate(disp drivers.Displayer) {
	a.shown = 0
	a.begun = false
	animation.Clear(disp)
}

func (a *Anim) DrawFrame(disp drivers.Displayer, tick uint32) bool {
	if len(a.imgs) == 0 || a.shown >= a.total {
		return false
	}
	if !a.begun {
		a.begun = true
		a.start = tick
	}
	if (tick-a.start)%a.hold != 0 {
		return true
	}
	animation.DrawImage(disp, 0, 0, a.imgs[a.shown%len(a.imgs)], false)
	a.shown++
	return a.shown < a.total
}

// Shown is the number of images drawn since the last Activate.
func (a *Anim) Shown() int { return a.shown }
