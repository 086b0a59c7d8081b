package cycle

import (
	"image"
	"image/color"
	"testing"
)

type countDisplay struct {
	sets int
}

func (d *countDisplay) Size() (x, y int16)                { return 2, 2 }
func (d *countDisplay) SetPixel(_, _ int16, _ color.RGBA) { d.sets++ }
func (d *countDisplay) Display() error                    { return nil }

func TestCycleShowsTotalImages(t *testing.T) {
	imgs := []image.Image{
		image.NewRGBA(image.Rect(0, 0, 2, 2)),
		image.NewRGBA(image.Rect(0, 0, 2, 2)),
		image.NewRGBA(image.Rect(0, 0, 2, 2)),
	}
	d := &countDisplay{}
	a := New(imgs, 3, 5)
	a.Activate(d)

	tick := uint32(100)
	frames := 0
	for a.DrawFrame(d, tick) {
		tick++
		frames++
		if frames > 100 {
			t.Fatal("cycle never finished")
		}
	}
	if a.Shown() != 5 {
		t.Errorf("Shown() = %d, want 5", a.Shown())
	}
	// five images held three frames each, the last frame ends the animation
	if frames != 12 {
		t.Errorf("frames = %d, want 12", frames)
	}
}

func TestCycleEmpty(t *testing.T) {
	a := New(nil, 0, 3)
	d := &countDisplay{}
	a.Activate(d)
	if a.DrawFrame(d, 0) {
		t.Error("empty cycle should finish immediately")
	}
}
