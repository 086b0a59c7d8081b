package deskbuddy

import (
	"image"
	"strconv"
	"time"

	"github.com/ajanata/deskbuddy/internal/animation/cycle"
	"github.com/ajanata/deskbuddy/internal/media"
	"github.com/ajanata/deskbuddy/internal/sound"
)

type decisionPhase uint8

const (
	decisionWaitingForLift decisionPhase = iota
	decisionChoosingCount
	decisionRolling
)

func (p decisionPhase) String() string {
	switch p {
	case decisionWaitingForLift:
		return "waiting"
	case decisionChoosingCount:
		return "choosing"
	case decisionRolling:
		return "rolling"
	default:
		return "INVALID"
	}
}

const (
	decisionMinOptions = 2
	// frames each face is held while rolling, and how many faces are shown
	rollHold   = 4
	rollFrames = 12
)

type decisionMode struct {
	env   *env
	phase decisionPhase

	options int
	lifted  bool

	roll     *cycle.Anim
	rolling  bool
	shown    int
	result   int
	resultAt time.Time
}

func newDecisionMode(e *env) *decisionMode {
	faces := e.screen.Faces()
	imgs := make([]image.Image, media.NumFaces)
	for i := range imgs {
		imgs[i] = faces.Get(i)
	}
	return &decisionMode{
		env:     e,
		options: decisionMinOptions,
		roll:    cycle.New(imgs, rollHold, rollFrames),
	}
}

func (m *decisionMode) ID() ModeID { return ModeDecision }

func (m *decisionMode) Enter(time.Time) {
	// a lever that is already up has to come down and go up again
	m.lifted = m.env.driver.Lever() >= m.env.settings.LeverThreshold
	m.wait()
}

func (m *decisionMode) Run(ev Event, now time.Time) ModeID {
	s := m.env.settings
	lifted := m.env.driver.Lever() >= s.LeverThreshold
	rose := lifted && !m.lifted
	fell := !lifted && m.lifted
	m.lifted = lifted

	if ev.Pressed {
		if m.phase == decisionRolling && !m.rolling && s.DecisionClear == ClearOnPress {
			m.wait()
			return ModeDecision
		}
		m.wait()
		return ModeIdle
	}

	switch m.phase {
	case decisionWaitingForLift:
		if rose {
			m.phase = decisionChoosingCount
			m.drawCount()
		}

	case decisionChoosingCount:
		if fell {
			m.phase = decisionRolling
			m.rolling = true
			m.shown = 0
			m.env.screen.Clear()
			m.roll.Activate(m.env.screen)
			break
		}
		if ev.Step != 0 {
			m.options = clamp(m.options+ev.Step, decisionMinOptions, s.DecisionMaxOptions)
			m.drawCount()
		}

	case decisionRolling:
		if m.rolling {
			more := m.roll.DrawFrame(m.env.screen, m.env.tick)
			if n := m.roll.Shown(); n != m.shown {
				m.shown = n
				m.env.show()
				m.env.sound.Play(sound.Tick)
			}
			if !more {
				m.rolling = false
				m.result = m.env.rand.Intn(m.options) + 1
				m.resultAt = now
				m.env.log.Debugf("decision %d of %d", m.result, m.options)
				m.drawResult()
				m.env.sound.Play(sound.Success)
			}
			break
		}
		if s.DecisionClear == ClearOnTimeout && now.Sub(m.resultAt) >= s.DecisionTimeout {
			m.wait()
		}
	}
	return ModeDecision
}

func (m *decisionMode) Redraw() {
	switch m.phase {
	case decisionWaitingForLift:
		m.drawWait()
	case decisionChoosingCount:
		m.drawCount()
	case decisionRolling:
		switch {
		case !m.rolling:
			m.drawResult()
		case m.shown > 0:
			m.env.screen.Face((m.shown - 1) % media.NumFaces)
		default:
			m.env.screen.Clear()
		}
	}
}

func (m *decisionMode) wait() {
	m.phase = decisionWaitingForLift
	m.rolling = false
	m.drawWait()
}

func (m *decisionMode) drawWait() {
	m.env.screen.Big("?", "Need a decision?", "lift the lever")
}

func (m *decisionMode) drawResult() {
	m.env.screen.Big(strconv.Itoa(m.result), "The answer is...", "of "+strconv.Itoa(m.options))
}

func (m *decisionMode) drawCount() {
	m.env.screen.Big(strconv.Itoa(m.options), "How many options?", "lower lever to roll")
}
