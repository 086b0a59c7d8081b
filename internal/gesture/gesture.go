// Package gesture scripts servo arm motions.
package gesture

import "time"

// Servo moves the arm to a position given in percent of its travel. Speed is a hint for drivers that can ramp.
type Servo interface {
	SetArm(percent, speed uint8)
}

// Step moves the arm and holds the position before the next step.
type Step struct {
	Percent uint8
	Speed   uint8
	Hold    time.Duration
}

// Gesture is a scripted sequence of arm moves.
type Gesture []Step

// RestPercent is the arm's parked position.
const RestPercent = 0

const ms = time.Millisecond

var (
	// Rest parks the arm.
	Rest = Gesture{{RestPercent, 70, 0}}
	// Wave is a friendly greeting.
	Wave = Gesture{{60, 90, 200 * ms}, {40, 90, 200 * ms}, {60, 90, 200 * ms}, {40, 90, 200 * ms}, {RestPercent, 70, 0}}
	// Celebrate throws the arm up repeatedly.
	Celebrate = Gesture{{100, 100, 250 * ms}, {50, 100, 150 * ms}, {100, 100, 250 * ms}, {50, 100, 150 * ms}, {100, 100, 400 * ms}, {RestPercent, 70, 0}}
	// Droop lifts the arm a little and lets it sink slowly.
	Droop = Gesture{{40, 30, 300 * ms}, {25, 20, 300 * ms}, {10, 10, 300 * ms}, {RestPercent, 10, 0}}
	// NudgeUp and NudgeDown alternate while an alarm is ringing.
	NudgeUp   = Gesture{{80, 100, 0}}
	NudgeDown = Gesture{{20, 100, 0}}
)

// Performer plays gestures on a servo, sleeping through each hold.
type Performer struct {
	servo Servo
	sleep func(time.Duration)
}

func NewPerformer(servo Servo, sleep func(time.Duration)) *Performer {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Performer{
		servo: servo,
		sleep: sleep,
	}
}

// Perform blocks until the whole gesture has been played.
func (p *Performer) Perform(g Gesture) {
	for _, s := range g {
		pct := s.Percent
		if pct > 100 {
			pct = 100
		}
		p.servo.SetArm(pct, s.Speed)
		if s.Hold > 0 {
			p.sleep(s.Hold)
		}
	}
}
