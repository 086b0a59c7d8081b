package deskbuddy

import (
	"time"
)

// DecisionClear selects how the decision result screen goes away.
type DecisionClear uint8

const (
	// ClearOnPress keeps the result until the button is pressed, then waits for the lever again.
	ClearOnPress DecisionClear = iota
	// ClearOnTimeout clears the result after DecisionTimeout. A press returns to idle as in every other state.
	ClearOnTimeout
)

func (d DecisionClear) String() string {
	switch d {
	case ClearOnPress:
		return "press"
	case ClearOnTimeout:
		return "timeout"
	default:
		return "INVALID"
	}
}

// Settings are the tunables of the engine. They live in memory only.
type Settings struct {
	// TickInterval is the main loop period.
	TickInterval time.Duration
	// Flip rotates the display 180 degrees.
	Flip bool
	// BootStepDelay is how long each step of the loading screen is shown.
	BootStepDelay time.Duration

	// IdleInterval is how often the idle face or message changes.
	IdleInterval time.Duration
	// MessageChance is the chance per thousand that an idle change shows a message instead of a face.
	MessageChance int

	// TimerStep is the number of seconds one encoder step adds or removes.
	TimerStep int
	// TimerMax is the longest timer in seconds.
	TimerMax int
	// TimerLow is the remaining time at and below which the clock shows a running low cue.
	TimerLow int
	// AlarmInterval is how often the expired timer blinks and beeps.
	AlarmInterval time.Duration
	// AlarmArm waves the arm while the alarm rings.
	AlarmArm bool

	PongMaxDifficulty int
	PongMaxRounds     int
	// PongDifficulty and PongRounds are the initial game settings.
	PongDifficulty int
	PongRounds     int

	// LeverThreshold is the lever position that counts as lifted.
	LeverThreshold uint8
	DecisionClear  DecisionClear
	// DecisionTimeout is used with ClearOnTimeout.
	DecisionTimeout time.Duration
	// DecisionMaxOptions is the most options a decision can have.
	DecisionMaxOptions int

	// battery thresholds in volts
	BatteryLow      float32
	BatteryCritical float32
	BatterySpike    float32
	BatteryFull     float32
	BatteryEmpty    float32
}

func DefaultSettings() *Settings {
	return &Settings{
		TickInterval:  20 * time.Millisecond,
		BootStepDelay: 800 * time.Millisecond,

		IdleInterval:  120 * time.Second,
		MessageChance: 400,

		TimerStep:     300,
		TimerMax:      5999,
		TimerLow:      300,
		AlarmInterval: time.Second,
		AlarmArm:      true,

		PongMaxDifficulty: 5,
		PongMaxRounds:     9,
		PongDifficulty:    1,
		PongRounds:        3,

		LeverThreshold:     50,
		DecisionClear:      ClearOnPress,
		DecisionTimeout:    5 * time.Second,
		DecisionMaxOptions: 99,

		BatteryLow:      3.5,
		BatteryCritical: 3.3,
		BatterySpike:    0.5,
		BatteryFull:     4.2,
		BatteryEmpty:    3.3,
	}
}
