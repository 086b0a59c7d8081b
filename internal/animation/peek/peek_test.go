package peek

import (
	"image"
	"image/color"
	"testing"
)

type memDisplay struct {
	w, h int16
	px   []bool
}

func (d *memDisplay) Size() (x, y int16) { return d.w, d.h }

func (d *memDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		return
	}
	d.px[int(y)*int(d.w)+int(x)] = c.R != 0
}

func (d *memDisplay) Display() error { return nil }

func TestDropSettlesAtOrigin(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 10))
	img.Set(0, 9, color.White)
	d := &memDisplay{w: 8, h: 10, px: make([]bool, 80)}

	a := New(img)
	a.Activate(d)
	frames := 0
	for a.DrawFrame(d, uint32(frames)) {
		frames++
		if frames > 100 {
			t.Fatal("animation never finished")
		}
	}
	if a.y != 0 {
		t.Errorf("y = %d, want 0", a.y)
	}
	if !d.px[9*8] {
		t.Error("bottom-left pixel of the image should be lit once settled")
	}
	if a.DrawFrame(d, 0) {
		t.Error("finished animation should stay finished")
	}

	// reusable
	a.Activate(d)
	if a.y != -10 {
		t.Errorf("Activate should reset y, got %d", a.y)
	}
}
