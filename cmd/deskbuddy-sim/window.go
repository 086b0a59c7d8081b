//go:build !tinygo && cgo

package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ajanata/deskbuddy"
	"github.com/ajanata/deskbuddy/internal/sim"
)

const statusHeight = 20

// runWindow shows the panel and forwards keyboard input to the simulated hardware. It blocks until the window closes
// or the engine fails.
func runWindow(b *deskbuddy.Buddy, drv *sim.Driver, framerate uint, scale int) error {
	w, h := drv.Display.Size()
	g := &game{
		drv:   drv,
		w:     int(w),
		h:     int(h),
		scale: scale,
		lever: int(drv.LeverTarget()),
		errc:  make(chan error, 1),
	}
	go func() {
		g.errc <- loop(b, framerate)
	}()

	ebiten.SetWindowTitle("deskbuddy")
	ebiten.SetWindowSize(g.w*scale, g.h*scale+statusHeight)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type game struct {
	drv   *sim.Driver
	w, h  int
	scale int
	lever int
	errc  chan error

	img *ebiten.Image
	px  []bool
	rgb []byte
}

func (g *game) Update() error {
	select {
	case err := <-g.errc:
		return err
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.drv.Turn(true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.drv.Turn(false)
	}
	if _, dy := ebiten.Wheel(); dy > 0 {
		g.drv.Turn(true)
	} else if dy < 0 {
		g.drv.Turn(false)
	}
	g.drv.SetButton(ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyEnter))

	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		g.lever += 2
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		g.lever -= 2
	}
	if g.lever < 0 {
		g.lever = 0
	}
	if g.lever > 100 {
		g.lever = 100
	}
	g.drv.SetLever(uint8(g.lever))

	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.drv.SetVolts(g.drv.Volts() - 0.05)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.drv.SetVolts(g.drv.Volts() + 0.05)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(g.w, g.h)
		g.rgb = make([]byte, g.w*g.h*4)
	}
	g.px = g.drv.Display.Snapshot(g.px)
	for i, on := range g.px {
		var c byte
		if on {
			c = 0xFF
		}
		j := i * 4
		// the panel is white on black with a blue tint
		g.rgb[j+0] = c / 2
		g.rgb[j+1] = c
		g.rgb[j+2] = c
		g.rgb[j+3] = 0xFF
	}
	g.img.WritePixels(g.rgb)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, op)

	arm, _ := g.drv.Arm()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("arm %3d%%  lever %3d  %.2fV", arm, g.lever, g.drv.Volts()), 2, g.h*g.scale+2)
}

func (g *game) Layout(int, int) (int, int) {
	return g.w * g.scale, g.h*g.scale + statusHeight
}
