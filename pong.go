package deskbuddy

import (
	"strconv"
	"time"

	"github.com/ajanata/deskbuddy/internal/gesture"
	"github.com/ajanata/deskbuddy/internal/media"
	"github.com/ajanata/deskbuddy/internal/sound"
)

type pongPhase uint8

const (
	pongStartMenu pongPhase = iota
	pongChoosingDifficulty
	pongChoosingRounds
	pongPlaying
	pongRoundEnd
	pongPauseMenu
)

func (p pongPhase) String() string {
	switch p {
	case pongStartMenu:
		return "start"
	case pongChoosingDifficulty:
		return "difficulty"
	case pongChoosingRounds:
		return "rounds"
	case pongPlaying:
		return "playing"
	case pongRoundEnd:
		return "roundend"
	case pongPauseMenu:
		return "pause"
	default:
		return "INVALID"
	}
}

// geometry
const (
	pongBall    = 2
	pongPaddleW = 3
	// the human plays the left paddle with the lever, the device plays the right one
	pongLeftX     = 2
	pongRightX    = 123
	pongLeftFront = pongLeftX + pongPaddleW
)

// start menu entries
const (
	pongPlay = iota
	pongDifficulty
	pongRounds
	pongExit
)

// pause menu entries
const (
	pongResume = iota
	pongRestart
	pongQuit
)

type pongBallState struct {
	x, y, vx, vy int
}

type pongMode struct {
	env   *env
	phase pongPhase
	menu  Menu
	w, h  int

	ball          pongBallState
	leftY, rightY int
	paddleH       int

	leftScore, rightScore int

	// kept between games
	difficulty int
	rounds     int
}

func newPongMode(e *env) *pongMode {
	w, h := e.screen.Size()
	s := e.settings
	return &pongMode{
		env:        e,
		w:          int(w),
		h:          int(h),
		difficulty: clamp(s.PongDifficulty, 0, s.PongMaxDifficulty),
		rounds:     clamp(s.PongRounds, 1, s.PongMaxRounds),
	}
}

func (m *pongMode) ID() ModeID { return ModePong }

func (m *pongMode) Enter(time.Time) {
	m.openStartMenu()
}

func (m *pongMode) Run(ev Event, _ time.Time) ModeID {
	s := m.env.settings
	switch m.phase {
	case pongStartMenu:
		idx, ok := m.menu.Update(ev)
		if !ok {
			if ev.Step != 0 {
				m.menu.Render(m.env.screen.Text())
			}
			break
		}
		switch idx {
		case pongPlay:
			m.newGame()
		case pongDifficulty:
			m.phase = pongChoosingDifficulty
			m.drawChoice()
		case pongRounds:
			m.phase = pongChoosingRounds
			m.drawChoice()
		case pongExit:
			return ModeIdle
		}

	case pongChoosingDifficulty, pongChoosingRounds:
		if ev.Pressed {
			m.openStartMenu()
			break
		}
		if ev.Step != 0 {
			if m.phase == pongChoosingDifficulty {
				m.difficulty = clamp(m.difficulty+ev.Step, 0, s.PongMaxDifficulty)
			} else {
				m.rounds = clamp(m.rounds+ev.Step, 1, s.PongMaxRounds)
			}
			m.drawChoice()
		}

	case pongPlaying:
		m.step(ev)

	case pongRoundEnd:
		m.finish()
		m.openStartMenu()

	case pongPauseMenu:
		idx, ok := m.menu.Update(ev)
		if !ok {
			if ev.Step != 0 {
				m.menu.Render(m.env.screen.Text())
			}
			break
		}
		switch idx {
		case pongResume:
			m.phase = pongPlaying
			m.draw()
		case pongRestart:
			m.newGame()
		case pongQuit:
			m.env.sound.Play(sound.Sad)
			m.phase = pongStartMenu
			return ModeIdle
		}
	}
	return ModePong
}

func (m *pongMode) Redraw() {
	switch m.phase {
	case pongStartMenu, pongPauseMenu:
		m.menu.Render(m.env.screen.Text())
	case pongChoosingDifficulty, pongChoosingRounds:
		m.drawChoice()
	case pongPlaying, pongRoundEnd:
		m.draw()
	}
}

func (m *pongMode) openStartMenu() {
	m.phase = pongStartMenu
	m.menu.Init("PONG", "Play", "Difficulty: "+strconv.Itoa(m.difficulty), "Rounds: "+strconv.Itoa(m.rounds), "Exit")
	m.menu.Render(m.env.screen.Text())
}

func (m *pongMode) drawChoice() {
	if m.phase == pongChoosingDifficulty {
		m.env.screen.Big(strconv.Itoa(m.difficulty), "Difficulty", "press to confirm")
	} else {
		m.env.screen.Big(strconv.Itoa(m.rounds), "Rounds to win", "press to confirm")
	}
}

// newGame centers the ball, zeroes the scores and starts playing.
func (m *pongMode) newGame() {
	speed := 1 + m.difficulty
	m.paddleH = max(20-m.difficulty, 2)
	m.leftScore, m.rightScore = 0, 0
	m.leftY = (m.h - m.paddleH) / 2
	m.rightY = m.leftY
	m.ball = pongBallState{
		x:  m.w/2 - pongBall/2,
		y:  m.h/2 - pongBall/2,
		vx: m.randomSign(speed),
		vy: m.randomSign(speed),
	}
	m.env.sound.Play(sound.Success)
	m.phase = pongPlaying
	m.draw()
}

// step advances the game by one tick.
func (m *pongMode) step(ev Event) {
	if ev.Pressed {
		m.phase = pongPauseMenu
		m.menu.Init("PAUSED", "Resume", "Restart", "Exit")
		m.menu.Render(m.env.screen.Text())
		return
	}

	span := m.h - m.paddleH
	m.leftY = clamp(int(m.env.driver.Lever())*span/100, 0, span)
	m.moveAI()

	b := &m.ball
	nx := b.x + b.vx
	switch {
	case b.vx < 0 && b.x >= pongLeftFront && nx <= pongLeftFront && m.hits(m.leftY):
		b.vx = -b.vx
		m.env.sound.Play(sound.Bounce)
	case b.vx > 0 && b.x+pongBall <= pongRightX && nx+pongBall >= pongRightX && m.hits(m.rightY):
		b.vx = -b.vx
		m.env.sound.Play(sound.Bounce)
	}

	nx = b.x + b.vx
	switch {
	case nx+pongBall > m.w:
		m.leftScore++
		m.resetBall(false)
		m.env.sound.Play(sound.Score)
	case nx < 0:
		m.rightScore++
		m.resetBall(true)
		m.env.sound.Play(sound.Score)
	default:
		ny := b.y + b.vy
		if ny < 0 || ny+pongBall > m.h {
			b.vy = -b.vy
			ny = b.y + b.vy
		}
		b.x = nx
		b.y = clamp(ny, 0, m.h-pongBall)
	}

	if m.leftScore >= m.rounds || m.rightScore >= m.rounds {
		m.phase = pongRoundEnd
	}
	m.draw()
}

// moveAI nudges the device paddle toward the ball, but only some of the time. Both the chance and the step grow with
// difficulty.
func (m *pongMode) moveAI() {
	d := m.difficulty
	if m.env.rand.Intn(1000)+1 > max(190*d, 500) {
		return
	}
	step := 2*d + 1
	center := m.rightY + m.paddleH/2
	target := m.ball.y + pongBall/2
	switch {
	case target < center:
		m.rightY -= step
	case target > center:
		m.rightY += step
	}
	m.rightY = clamp(m.rightY, 0, m.h-m.paddleH)
}

// hits reports whether the ball overlaps a paddle at y vertically.
func (m *pongMode) hits(y int) bool {
	return m.ball.y+pongBall > y && m.ball.y < y+m.paddleH
}

// resetBall serves from the side that lost the point, away from its paddle.
func (m *pongMode) resetBall(leftLost bool) {
	b := &m.ball
	if leftLost {
		b.x = pongLeftFront
		b.vx = abs(b.vx)
	} else {
		b.x = pongRightX - pongBall
		b.vx = -abs(b.vx)
	}
	b.y = m.env.rand.Intn(m.h - pongBall + 1)
	b.vy = m.randomSign(abs(b.vy))
}

// finish plays the end of match sequence. It blocks until the cue and gesture are done.
func (m *pongMode) finish() {
	scr := m.env.screen
	score := strconv.Itoa(m.leftScore) + " - " + strconv.Itoa(m.rightScore)
	if m.leftScore >= m.rounds {
		scr.Face(int(media.FaceHappy))
		scr.Caption("You win! " + score)
		m.env.show()
		m.env.sound.Play(sound.Win)
		m.env.arm.Perform(gesture.Celebrate)
	} else {
		scr.Face(int(media.FaceSad))
		scr.Caption("I win! " + score)
		m.env.show()
		m.env.sound.Play(sound.Lose)
		m.env.arm.Perform(gesture.Droop)
	}
	m.env.log.Infof("pong over %s", score)
}

func (m *pongMode) draw() {
	scr := m.env.screen
	scr.Clear()
	for y := 0; y < m.h; y += 4 {
		scr.Fill(int16(m.w/2), int16(y), 1, 2, true)
	}
	scr.Small(int16(m.w/4), 8, strconv.Itoa(m.leftScore))
	scr.Small(int16(3*m.w/4), 8, strconv.Itoa(m.rightScore))
	scr.Fill(pongLeftX, int16(m.leftY), pongPaddleW, int16(m.paddleH), true)
	scr.Fill(pongRightX, int16(m.rightY), pongPaddleW, int16(m.paddleH), true)
	scr.Fill(int16(m.ball.x), int16(m.ball.y), pongBall, pongBall, true)
}

func (m *pongMode) randomSign(v int) int {
	if m.env.rand.Intn(2) == 0 {
		return -v
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
