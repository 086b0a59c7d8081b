//go:build !tinygo && cgo

package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/ajanata/deskbuddy/internal/sim"
)

const (
	sampleRate = 44100
	amplitude  = 3000
)

// squareSpeaker plays each tone as a square wave through ebiten's audio context.
type squareSpeaker struct {
	ctx *audio.Context
}

func newSpeaker() sim.Speaker {
	return &squareSpeaker{ctx: audio.NewContext(sampleRate)}
}

func (s *squareSpeaker) Play(freq uint16, d time.Duration) {
	n := int(int64(sampleRate) * int64(d) / int64(time.Second))
	half := sampleRate / (2 * int(freq))
	if half < 1 {
		half = 1
	}
	// 16-bit little-endian stereo
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		v := int16(amplitude)
		if (i/half)%2 == 1 {
			v = -amplitude
		}
		j := i * 4
		buf[j+0] = byte(v)
		buf[j+1] = byte(v >> 8)
		buf[j+2] = byte(v)
		buf[j+3] = byte(v >> 8)
	}
	s.ctx.NewPlayerFromBytes(buf).Play()
}
