package deskbuddy

import (
	"time"

	"github.com/ajanata/deskbuddy/internal/animation"
	"github.com/ajanata/deskbuddy/internal/animation/peek"
	"github.com/ajanata/deskbuddy/internal/animation/static"
	"github.com/ajanata/deskbuddy/internal/gesture"
	"github.com/ajanata/deskbuddy/internal/media"
)

type idlePhase uint8

const (
	idleWandering idlePhase = iota
	idleOnMenu
)

func (p idlePhase) String() string {
	switch p {
	case idleWandering:
		return "wandering"
	case idleOnMenu:
		return "menu"
	default:
		return "INVALID"
	}
}

var idleMessages = []string{
	"Hello :D",
	"Drink some water!",
	"Time to stretch",
	"You got this!",
	"Take a break?",
	"Stay focused :)",
	"I'm still here",
}

// idleEntries is the main menu. Back stays in idle.
var idleEntries = []struct {
	label string
	mode  ModeID
}{
	{"Back", ModeIdle},
	{"Timer", ModeTimer},
	{"Pong", ModePong},
	{"Decision", ModeDecision},
	{"Battery", ModeBattery},
	{"Power off", ModePowerOff},
}

// calmFaces is every face except the negative ones.
var calmFaces = func() []media.Face {
	var fs []media.Face
	for f := media.Face(0); int(f) < media.NumFaces; f++ {
		if !f.Negative() {
			fs = append(fs, f)
		}
	}
	return fs
}()

type idleMode struct {
	env   *env
	phase idlePhase
	menu  Menu

	lastChange time.Time
	face       media.Face
	// -1 until the first message
	msg int
	// the last change was a message rather than a face
	message bool
	anim    animation.Animation
}

func newIdleMode(e *env) *idleMode {
	return &idleMode{
		env:  e,
		face: media.FaceNeutral,
		msg:  -1,
	}
}

func (m *idleMode) ID() ModeID { return ModeIdle }

func (m *idleMode) Enter(now time.Time) {
	m.lastChange = now
	m.wander()
}

func (m *idleMode) Run(ev Event, now time.Time) ModeID {
	switch m.phase {
	case idleWandering:
		if ev.Pressed {
			m.phase = idleOnMenu
			labels := make([]string, len(idleEntries))
			for i, e := range idleEntries {
				labels[i] = e.label
			}
			m.menu.Init("DESKBUDDY", labels...)
			m.menu.Render(m.env.screen.Text())
			return ModeIdle
		}
		if m.anim != nil && !m.anim.DrawFrame(m.env.screen, m.env.tick) {
			m.anim = nil
		}
		if now.Sub(m.lastChange) >= m.env.settings.IdleInterval {
			m.lastChange = now
			m.change()
		}
	case idleOnMenu:
		idx, ok := m.menu.Update(ev)
		if !ok {
			if ev.Step != 0 {
				m.menu.Render(m.env.screen.Text())
			}
			return ModeIdle
		}
		m.lastChange = now
		m.phase = idleWandering
		if idleEntries[idx].mode == ModeIdle {
			m.wander()
		}
		return idleEntries[idx].mode
	}
	return ModeIdle
}

func (m *idleMode) Redraw() {
	switch {
	case m.phase == idleOnMenu:
		m.menu.Render(m.env.screen.Text())
	case m.message:
		m.env.screen.Centered(idleMessages[m.msg])
	default:
		m.showFace()
	}
}

// wander shows the current face without animating it.
func (m *idleMode) wander() {
	m.phase = idleWandering
	m.message = false
	m.showFace()
}

func (m *idleMode) showFace() {
	m.env.screen.Clear()
	m.anim = static.New(m.env.screen.Faces().Get(int(m.face)))
	m.anim.Activate(m.env.screen)
}

// change picks something new to show. Messages and faces never repeat the previous pick of the same kind.
func (m *idleMode) change() {
	r := m.env.rand
	if r.Intn(1000) < m.env.settings.MessageChance {
		idx := m.msg
		for idx == m.msg {
			idx = r.Intn(len(idleMessages))
		}
		m.msg = idx
		m.message = true
		m.anim = nil
		m.env.screen.Centered(idleMessages[idx])
		m.env.show()
		m.env.arm.Perform(gesture.Wave)
		return
	}

	f := m.face
	for f == m.face {
		f = calmFaces[r.Intn(len(calmFaces))]
	}
	m.face = f
	m.message = false
	m.env.screen.Clear()
	m.anim = peek.New(m.env.screen.Faces().Get(int(f)))
	m.anim.Activate(m.env.screen)
}
