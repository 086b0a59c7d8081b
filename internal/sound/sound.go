// Package sound defines the beep sequences the device plays and a player that drives them through a speaker.
package sound

import "time"

// Speaker plays a single square-wave tone. Tone blocks for the whole duration.
type Speaker interface {
	Tone(freq uint16, d time.Duration)
}

// Note is one step of a cue. A zero frequency is a rest.
type Note struct {
	Freq uint16
	Dur  time.Duration
}

// Cue is a fixed sequence of notes.
type Cue []Note

// Duration is the total time the cue blocks for.
func (c Cue) Duration() time.Duration {
	var d time.Duration
	for _, n := range c {
		d += n.Dur
	}
	return d
}

const ms = time.Millisecond

var (
	// Click acknowledges every accepted button press.
	Click = Cue{{700, 100 * ms}}
	// Hello is played at boot and on wake.
	Hello = Cue{{700, 100 * ms}, {900, 100 * ms}}
	// Success confirms starting something: a game, acknowledging the alarm.
	Success = Cue{{900, 80 * ms}, {1200, 120 * ms}}
	// Bounce is the Pong paddle hit.
	Bounce = Cue{{1500, 15 * ms}}
	// Score is played whenever either side scores a point.
	Score = Cue{{400, 60 * ms}, {300, 90 * ms}}
	// Sad is played when leaving a game early and when the battery runs low.
	Sad = Cue{{500, 150 * ms}, {400, 150 * ms}, {300, 300 * ms}}
	// Alarm is repeated while the timer is expired.
	Alarm = Cue{{2000, 150 * ms}, {0, 50 * ms}, {2000, 150 * ms}}
	// Tick accompanies each frame of the decision roll.
	Tick = Cue{{1200, 20 * ms}}
	// Win is the human winning a Pong match.
	Win = Cue{{523, 120 * ms}, {659, 120 * ms}, {784, 120 * ms}, {1047, 300 * ms}}
	// Lose is the device winning a Pong match.
	Lose = Cue{{392, 200 * ms}, {330, 200 * ms}, {262, 400 * ms}}
)

// Player plays cues on a speaker. Rests are slept through with the injected sleep function.
type Player struct {
	spk   Speaker
	sleep func(time.Duration)
}

func NewPlayer(spk Speaker, sleep func(time.Duration)) *Player {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Player{
		spk:   spk,
		sleep: sleep,
	}
}

// Play blocks until every note of c has been played.
func (p *Player) Play(c Cue) {
	for _, n := range c {
		if n.Freq == 0 {
			p.sleep(n.Dur)
			continue
		}
		p.spk.Tone(n.Freq, n.Dur)
	}
}
