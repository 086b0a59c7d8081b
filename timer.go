package deskbuddy

import (
	"strconv"
	"time"

	"github.com/ajanata/deskbuddy/internal/gesture"
	"github.com/ajanata/deskbuddy/internal/sound"
)

type timerPhase uint8

const (
	timerAdjusting timerPhase = iota
	timerRunning
	timerExpired
	timerMenu
)

func (p timerPhase) String() string {
	switch p {
	case timerAdjusting:
		return "adjusting"
	case timerRunning:
		return "running"
	case timerExpired:
		return "expired"
	case timerMenu:
		return "menu"
	default:
		return "INVALID"
	}
}

// timer menu entries
const (
	timerResume = iota
	timerAdjust
	timerRestart
	timerExit
)

// formatClock renders seconds as MM:SS. Minutes are not wrapped into hours.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return pad2(seconds/60) + ":" + pad2(seconds%60)
}

func pad2(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

type timerMode struct {
	env   *env
	phase timerPhase
	menu  Menu

	remaining int
	lastTick  time.Time

	lastAlarm time.Time
	blinkOn   bool
	armUp     bool
}

func newTimerMode(e *env) *timerMode {
	return &timerMode{env: e}
}

func (m *timerMode) ID() ModeID { return ModeTimer }

// Enter always starts out adjusting. The remaining time is kept from the last visit.
func (m *timerMode) Enter(time.Time) {
	m.adjust()
}

func (m *timerMode) Run(ev Event, now time.Time) ModeID {
	s := m.env.settings
	switch m.phase {
	case timerAdjusting:
		if ev.Pressed {
			if m.remaining > 0 {
				m.run(now)
			} else {
				m.openMenu()
			}
			break
		}
		if ev.Step != 0 {
			m.remaining = clamp(m.remaining+ev.Step*s.TimerStep, 0, s.TimerMax)
			m.drawAdjust()
		}

	case timerRunning:
		if ev.Pressed {
			m.openMenu()
			break
		}
		// measured from the previous decrement, so a late tick never earns a second one
		if now.Sub(m.lastTick) >= time.Second {
			m.lastTick = now
			m.remaining--
			if m.remaining <= 0 {
				m.remaining = 0
				m.phase = timerExpired
				m.lastAlarm = time.Time{}
				m.blinkOn = false
				m.env.log.Info("timer expired")
				break
			}
			m.drawRunning()
		}

	case timerExpired:
		if ev.Pressed {
			m.env.sound.Play(sound.Success)
			m.env.arm.Perform(gesture.Rest)
			m.remaining = 0
			m.adjust()
			break
		}
		if m.lastAlarm.IsZero() || now.Sub(m.lastAlarm) >= s.AlarmInterval {
			m.lastAlarm = now
			m.ring()
		}

	case timerMenu:
		idx, ok := m.menu.Update(ev)
		if !ok {
			if ev.Step != 0 {
				m.menu.Render(m.env.screen.Text())
			}
			break
		}
		switch idx {
		case timerResume:
			if m.remaining > 0 {
				m.run(now)
			} else {
				m.adjust()
			}
		case timerAdjust:
			m.adjust()
		case timerRestart:
			m.remaining = 0
			m.adjust()
		case timerExit:
			m.adjust()
			return ModeIdle
		}
	}
	return ModeTimer
}

func (m *timerMode) Redraw() {
	switch m.phase {
	case timerAdjusting:
		m.drawAdjust()
	case timerRunning:
		m.drawRunning()
	case timerExpired:
		if m.blinkOn {
			m.drawExpired()
		} else {
			m.env.screen.Clear()
		}
	case timerMenu:
		m.menu.Render(m.env.screen.Text())
	}
}

func (m *timerMode) adjust() {
	m.phase = timerAdjusting
	m.drawAdjust()
}

func (m *timerMode) run(now time.Time) {
	m.phase = timerRunning
	m.lastTick = now
	m.drawRunning()
}

func (m *timerMode) openMenu() {
	m.phase = timerMenu
	m.menu.Init("TIMER", "Resume ("+formatClock(m.remaining)+")", "Adjust", "Restart", "Exit")
	m.menu.Render(m.env.screen.Text())
}

// ring blinks the clock and sounds the alarm. It blocks for the length of the cue.
func (m *timerMode) ring() {
	m.blinkOn = !m.blinkOn
	if m.blinkOn {
		m.drawExpired()
	} else {
		m.env.screen.Clear()
	}
	m.env.show()
	if m.env.settings.AlarmArm {
		m.armUp = !m.armUp
		if m.armUp {
			m.env.arm.Perform(gesture.NudgeUp)
		} else {
			m.env.arm.Perform(gesture.NudgeDown)
		}
	}
	m.env.sound.Play(sound.Alarm)
}

func (m *timerMode) drawAdjust() {
	m.env.screen.Big(formatClock(m.remaining), "Set timer", "turn to adjust")
}

func (m *timerMode) drawExpired() {
	m.env.screen.Big(formatClock(0), "Time's up!", "press to stop")
}

func (m *timerMode) drawRunning() {
	low := m.remaining <= m.env.settings.TimerLow
	footer := ""
	if low {
		footer = "almost there!"
	}
	m.env.screen.Big(formatClock(m.remaining), "Focus time!", footer)
	if low {
		m.env.screen.Border()
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
