package deskbuddy

import (
	"time"

	"github.com/ajanata/deskbuddy/internal/gesture"
	"github.com/ajanata/deskbuddy/internal/sound"
)

// powerOffMode parks the arm and turns the display off until the button is pressed.
type powerOffMode struct {
	env *env
}

func newPowerOffMode(e *env) *powerOffMode {
	return &powerOffMode{env: e}
}

func (m *powerOffMode) ID() ModeID { return ModePowerOff }

func (m *powerOffMode) Enter(time.Time) {
	m.env.log.Info("powering off")
	m.env.arm.Perform(gesture.Rest)
	m.env.screen.Clear()
	m.env.show()
	m.env.displayOn = false
	m.env.driver.SetDisplayPower(false)
}

// Redraw has nothing to do while the panel is off.
func (m *powerOffMode) Redraw() {}

func (m *powerOffMode) Run(ev Event, _ time.Time) ModeID {
	if !ev.Pressed {
		return ModePowerOff
	}
	m.env.log.Info("waking up")
	m.env.driver.SetDisplayPower(true)
	m.env.displayOn = true
	if err := m.env.screen.Reset(); err != nil && m.env.err == nil {
		m.env.err = err
	}
	m.env.sound.Play(sound.Hello)
	return ModeIdle
}
