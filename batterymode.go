package deskbuddy

import (
	"strconv"
	"time"
)

// bar geometry on the battery screen
const (
	batteryBarX = 14
	batteryBarY = 46
	batteryBarW = 100
	batteryBarH = 5
)

type batteryMode struct {
	env   *env
	drawn BatteryReading
}

func newBatteryMode(e *env) *batteryMode {
	return &batteryMode{env: e}
}

func (m *batteryMode) ID() ModeID { return ModeBattery }

func (m *batteryMode) Enter(time.Time) {
	m.draw()
}

func (m *batteryMode) Redraw() { m.draw() }

func (m *batteryMode) Run(ev Event, _ time.Time) ModeID {
	if ev.Pressed {
		return ModeIdle
	}
	if m.env.battery != m.drawn {
		m.draw()
	}
	return ModeBattery
}

func (m *batteryMode) draw() {
	r := m.env.battery
	m.drawn = r
	scr := m.env.screen
	if r.Status == SensorStatusUnavailable {
		scr.Big("--", "Battery", "no sensor")
		return
	}

	s := m.env.settings
	pct := r.Percent(s.BatteryEmpty, s.BatteryFull)
	footer := strconv.Itoa(int(pct)) + "%"
	if r.IsLow {
		footer += " LOW"
	}
	scr.Big(formatVolts(r.Voltage), "Battery", footer)

	scr.Fill(batteryBarX, batteryBarY, batteryBarW, 1, true)
	scr.Fill(batteryBarX, batteryBarY+batteryBarH-1, batteryBarW, 1, true)
	scr.Fill(batteryBarX, batteryBarY, 1, batteryBarH, true)
	scr.Fill(batteryBarX+batteryBarW-1, batteryBarY, 1, batteryBarH, true)
	scr.Fill(batteryBarX, batteryBarY, int16(pct)*batteryBarW/100, batteryBarH, true)
}

// formatVolts renders 3.92V with two decimals.
func formatVolts(v float32) string {
	if v < 0 {
		v = 0
	}
	cents := int(v*100 + 0.5)
	return strconv.Itoa(cents/100) + "." + pad2(cents%100) + "V"
}
