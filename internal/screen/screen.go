// Package screen renders everything the device shows on its OLED: menus and status lines through a text buffer,
// large numbers and centered messages through tinyfont, and faces from the embedded bitmap set.
package screen

import (
	"errors"
	"image/color"

	"github.com/ajanata/textbuf"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/ajanata/deskbuddy/internal/animation"
	"github.com/ajanata/deskbuddy/internal/media"
)

var (
	small = &proggy.TinySZ8pt7b
	big   = &freemono.Bold12pt7b
)

const (
	// baseline of the caption line above large text
	captionBaseline = 10
	// baseline of large text
	bigBaseline = 42
	// baseline of small text under large text
	footerBaseline = 60
)

// Screen draws on a display and tracks whether anything changed since the last flush. It is itself a
// drivers.Displayer so animations can draw through it.
type Screen struct {
	disp  drivers.Displayer
	text  *textbuf.Buffer
	faces *media.Faces
	w, h  int16

	// text mode means the text buffer owns the display until the next Clear
	textMode bool
	dirty    bool
}

// New creates a screen on disp. The display must be at least 15x4 characters of 6x8 text.
func New(disp drivers.Displayer, faces *media.Faces) (*Screen, error) {
	if disp == nil {
		return nil, errors.New("must provide display")
	}
	if faces == nil {
		return nil, errors.New("must provide faces")
	}

	w, h := disp.Size()
	s := &Screen{
		disp:  disp,
		faces: faces,
		w:     w,
		h:     h,
	}
	text, err := textbuf.New(textTarget{s}, textbuf.FontSize6x8)
	if err != nil {
		return nil, errors.New("init text: " + err.Error())
	}
	cols, rows := text.Size()
	if cols < 15 || rows < 4 {
		return nil, errors.New("unusably small display")
	}
	s.text = text
	return s, nil
}

// textTarget lets the text buffer rasterise into the screen. The buffer flushes after every change, so its
// Display is a no-op and the screen decides when the panel is updated.
type textTarget struct{ s *Screen }

func (t textTarget) Size() (x, y int16)                { return t.s.Size() }
func (t textTarget) SetPixel(x, y int16, c color.RGBA) { t.s.SetPixel(x, y, c) }
func (t textTarget) Display() error                    { return nil }

func (s *Screen) Size() (x, y int16) { return s.w, s.h }

func (s *Screen) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	s.disp.SetPixel(x, y, c)
	s.dirty = true
}

// Display pushes the frame to the panel if anything was drawn since the last call.
func (s *Screen) Display() error {
	if !s.dirty {
		return nil
	}
	s.dirty = false
	return s.disp.Display()
}

// Dirty reports whether a flush is pending.
func (s *Screen) Dirty() bool { return s.dirty }

// Text switches to text mode and returns the line buffer. Callers are expected to redraw every line they need.
func (s *Screen) Text() *textbuf.Buffer {
	if !s.textMode {
		animation.Clear(s.disp)
		s.textMode = true
	}
	s.dirty = true
	return s.text
}

// TextSize is the size of the text buffer in characters.
func (s *Screen) TextSize() (cols, rows int16) {
	return s.text.Size()
}

// Clear blanks the display and leaves text mode.
func (s *Screen) Clear() {
	if s.textMode {
		s.textMode = false
		_ = s.text.Clear()
	}
	animation.Clear(s)
}

// Reset redraws an empty frame immediately, used after the panel has been powered back on.
func (s *Screen) Reset() error {
	s.Clear()
	s.dirty = true
	return s.Display()
}

// Face clears the screen and draws a face. Out of range indexes are clamped.
func (s *Screen) Face(idx int) {
	s.Clear()
	animation.DrawImage(s, 0, 0, s.faces.Get(idx), false)
}

// Faces is the loaded face set, for animations.
func (s *Screen) Faces() *media.Faces { return s.faces }

// Centered clears the screen and prints msg in the middle of it.
func (s *Screen) Centered(msg string) {
	s.Clear()
	_, ob := tinyfont.LineWidth(small, msg)
	tinyfont.WriteLine(s, small, s.centerX(ob), s.h/2+3, msg, animation.White)
}

// Big clears the screen and draws large text with an optional caption above it and footer below it.
func (s *Screen) Big(text, caption, footer string) {
	s.Clear()
	if caption != "" {
		s.Caption(caption)
	}
	if text != "" {
		_, ob := tinyfont.LineWidth(big, text)
		tinyfont.WriteLine(s, big, s.centerX(ob), bigBaseline, text, animation.White)
	}
	if footer != "" {
		_, ob := tinyfont.LineWidth(small, footer)
		tinyfont.WriteLine(s, small, s.centerX(ob), footerBaseline, footer, animation.White)
	}
}

// Caption prints small centered text on the top line without clearing.
func (s *Screen) Caption(msg string) {
	_, ob := tinyfont.LineWidth(small, msg)
	tinyfont.WriteLine(s, small, s.centerX(ob), captionBaseline, msg, animation.White)
}

// Small prints small text with its baseline at y.
func (s *Screen) Small(x, y int16, msg string) {
	tinyfont.WriteLine(s, small, x, y, msg, animation.White)
}

// Fill sets every pixel in the rectangle.
func (s *Screen) Fill(x, y, w, h int16, on bool) {
	c := animation.Black
	if on {
		c = animation.White
	}
	for xx := x; xx < x+w; xx++ {
		for yy := y; yy < y+h; yy++ {
			s.SetPixel(xx, yy, c)
		}
	}
}

// Border draws a one pixel frame around the whole screen.
func (s *Screen) Border() {
	s.Fill(0, 0, s.w, 1, true)
	s.Fill(0, s.h-1, s.w, 1, true)
	s.Fill(0, 0, 1, s.h, true)
	s.Fill(s.w-1, 0, 1, s.h, true)
}

func (s *Screen) centerX(width uint32) int16 {
	x := (s.w - int16(width)) / 2
	if x < 0 {
		return 0
	}
	return x
}
