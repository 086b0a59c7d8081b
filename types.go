package deskbuddy

import (
	"time"
)

// SensorStatus tells whether a driver reading can be trusted.
type SensorStatus uint8

const (
	// SensorStatusUnavailable indicates that the sensor is never available (not implemented in hardware).
	SensorStatusUnavailable SensorStatus = iota
	// SensorStatusAvailable indicates that the returned value(s) is/are accurate.
	SensorStatusAvailable
	// SensorStatusBusy indicates that the sensor is temporarily unavailable e.g. due to bus contention.
	SensorStatusBusy
)

func (s SensorStatus) String() string {
	switch s {
	case SensorStatusUnavailable:
		return "unavailable"
	case SensorStatusAvailable:
		return "available"
	case SensorStatusBusy:
		return "busy"
	default:
		return "INVALID"
	}
}

// Driver is everything the engine needs from the hardware besides the display.
type Driver interface {
	// EarlyInit configures the speaker, servo and sensors. It is called after the display is up so that boot
	// messages can be shown.
	EarlyInit() error

	// PressedButton reports a press of the encoder switch. It must return true at most once per physical press and
	// handle debouncing itself.
	//
	// This function should expect to be called at most once per tick.
	PressedButton() bool

	// Rotation returns -1, 0 or 1 for an encoder step since the last call. Reading clears the pending step.
	Rotation() int

	// Lever is the potentiometer position, 0 to 100.
	Lever() uint8

	// BatteryVoltage is the battery voltage in volts. The second return value indicates the status of the sensor:
	// does not exist, valid data, or busy.
	BatteryVoltage() (float32, SensorStatus)

	// Tone plays a tone and blocks for its duration. A frequency of 0 is silence.
	Tone(freq uint16, d time.Duration)

	// SetArm moves the servo arm to percent of its travel. Speed is a hint from 0 (slowest) to 100 (fastest); drivers
	// that cannot control speed may ignore it.
	SetArm(percent, speed uint8)

	// SetDisplayPower turns the display panel on or off.
	SetDisplayPower(on bool)
}

type Blinker interface {
	Low()
	High()
}

// ModeID names a top-level operating mode.
type ModeID uint8

const (
	ModeIdle ModeID = iota
	ModeTimer
	ModePong
	ModeDecision
	ModeBattery
	ModePowerOff

	numModes
)

func (m ModeID) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeTimer:
		return "timer"
	case ModePong:
		return "pong"
	case ModeDecision:
		return "decision"
	case ModeBattery:
		return "battery"
	case ModePowerOff:
		return "poweroff"
	default:
		return "INVALID"
	}
}

// transitions lists the modes each mode may request. Staying in the current mode is always allowed.
var transitions = [numModes][]ModeID{
	ModeIdle:     {ModeTimer, ModePong, ModeDecision, ModeBattery, ModePowerOff},
	ModeTimer:    {ModeIdle},
	ModePong:     {ModeIdle},
	ModeDecision: {ModeIdle},
	ModeBattery:  {ModeIdle},
	ModePowerOff: {ModeIdle},
}

// CanTransition reports whether from may hand control to to.
func CanTransition(from, to ModeID) bool {
	if from >= numModes || to >= numModes {
		return false
	}
	if from == to {
		return true
	}
	for _, m := range transitions[from] {
		if m == to {
			return true
		}
	}
	return false
}

// Event is the input for one tick. Both fields are read from the driver exactly once per tick.
type Event struct {
	// Step is the encoder rotation: -1, 0 or 1.
	Step int
	// Pressed is a debounced button press.
	Pressed bool
}

// Mode is one top-level operating state with its own private state machine.
type Mode interface {
	ID() ModeID
	// Enter is called when the dispatcher switches to this mode, before its first Run.
	Enter(now time.Time)
	// Run handles one tick and returns the mode that should be current on the next tick.
	Run(ev Event, now time.Time) ModeID
	// Redraw repaints the current phase after something else owned the screen. It changes no mode state.
	Redraw()
}
