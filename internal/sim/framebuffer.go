package sim

import (
	"image/color"
	"sync"
)

// Framebuffer is a monochrome display in memory. Drawing goes to a back buffer; Display publishes it so a window
// running on another goroutine only ever sees whole frames.
type Framebuffer struct {
	w, h int16

	mu     sync.Mutex
	back   []bool
	front  []bool
	frames int
	on     bool
}

func NewFramebuffer(w, h int16) *Framebuffer {
	return &Framebuffer{
		w:     w,
		h:     h,
		back:  make([]bool, int(w)*int(h)),
		front: make([]bool, int(w)*int(h)),
		on:    true,
	}
}

func (f *Framebuffer) Size() (x, y int16) { return f.w, f.h }

func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.back[int(y)*int(f.w)+int(x)] = c.R != 0 || c.G != 0 || c.B != 0
}

func (f *Framebuffer) Display() error {
	f.mu.Lock()
	copy(f.front, f.back)
	f.frames++
	f.mu.Unlock()
	return nil
}

// SetPower blanks the published frame while the panel is off.
func (f *Framebuffer) SetPower(on bool) {
	f.mu.Lock()
	f.on = on
	f.mu.Unlock()
}

// Snapshot copies the last published frame into dst, which is resized as needed. A powered off panel is all dark.
func (f *Framebuffer) Snapshot(dst []bool) []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cap(dst) < len(f.front) {
		dst = make([]bool, len(f.front))
	}
	dst = dst[:len(f.front)]
	if !f.on {
		for i := range dst {
			dst[i] = false
		}
		return dst
	}
	copy(dst, f.front)
	return dst
}

// Lit reports whether a pixel of the last published frame is on.
func (f *Framebuffer) Lit(x, y int16) bool {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.on && f.front[int(y)*int(f.w)+int(x)]
}

// Frames is the number of times Display has been called.
func (f *Framebuffer) Frames() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}

// String renders the last frame as text, two pixel rows per line, for logs and tests.
func (f *Framebuffer) String() string {
	px := f.Snapshot(nil)
	w := int(f.w)
	out := make([]byte, 0, (w+1)*int(f.h)/2)
	for y := 0; y < int(f.h); y += 2 {
		for x := 0; x < w; x++ {
			top := px[y*w+x]
			bottom := y+1 < int(f.h) && px[(y+1)*w+x]
			switch {
			case top && bottom:
				out = append(out, '#')
			case top:
				out = append(out, '\'')
			case bottom:
				out = append(out, '.')
			default:
				out = append(out, ' ')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
