package deskbuddy

import (
	"errors"
	"testing"
	"time"
)

func TestNewValidates(t *testing.T) {
	drv := &fakeDriver{}
	disp := &fakeDisplay{}
	if _, err := New(0, disp, nil, drv, Options{}); err == nil {
		t.Error("expected error for zero framerate")
	}
	if _, err := New(50, nil, nil, drv, Options{}); err == nil {
		t.Error("expected error for nil display")
	}
	if _, err := New(50, disp, nil, nil, Options{}); err == nil {
		t.Error("expected error for nil driver")
	}
	b, err := New(50, disp, nil, drv, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if b.frameTime != 20*time.Millisecond {
		t.Errorf("frameTime = %v", b.frameTime)
	}
	if b.Settings().IdleInterval != 120*time.Second {
		t.Error("default settings not applied")
	}
}

func TestInitBoot(t *testing.T) {
	b, drv, disp, _ := newTestBuddy(t, nil)

	if b.Mode() != ModeIdle {
		t.Errorf("mode = %v after boot", b.Mode())
	}
	if len(drv.tones) < 2 || drv.tones[0] != 700 || drv.tones[1] != 900 {
		t.Errorf("hello cue not played: %v", drv.tones)
	}
	if len(drv.arm) == 0 || drv.arm[0] != 0 {
		t.Errorf("arm not parked at boot: %v", drv.arm)
	}
	// booting, six loading steps, hello
	if disp.flushes < 8 {
		t.Errorf("flushes = %d, want at least 8", disp.flushes)
	}
	if err := b.Init(); err == nil {
		t.Error("second Init should fail")
	}
}

func TestInitEarlyInitFails(t *testing.T) {
	drv := &fakeDriver{early: errors.New("no servo")}
	b, err := New(50, &fakeDisplay{}, nil, drv, Options{Logger: nopLogger{}, Sleep: func(time.Duration) {}})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Init(); err == nil {
		t.Error("expected early init error")
	}
	if err := b.RunTick(); err == nil {
		t.Error("RunTick before a successful Init should fail")
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to ModeID
		want     bool
	}{
		{ModeIdle, ModeTimer, true},
		{ModeIdle, ModePong, true},
		{ModeIdle, ModeDecision, true},
		{ModeIdle, ModeBattery, true},
		{ModeIdle, ModePowerOff, true},
		{ModeTimer, ModeIdle, true},
		{ModeTimer, ModePong, false},
		{ModePong, ModePowerOff, false},
		{ModeDecision, ModeIdle, true},
		{ModePowerOff, ModeIdle, true},
		{ModePowerOff, ModeTimer, false},
		{ModeBattery, ModeBattery, true},
		{ModeIdle, numModes, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTransitionOnNextTick(t *testing.T) {
	b, drv, _, clock := newTestBuddy(t, nil)

	drv.press = true
	tick(t, b, clock)
	drv.step = 1
	tick(t, b, clock)
	drv.press = true
	tick(t, b, clock)
	if b.Mode() != ModeIdle {
		t.Fatalf("mode switched within the same tick: %v", b.Mode())
	}
	tick(t, b, clock)
	if b.Mode() != ModeTimer {
		t.Errorf("mode = %v, want timer", b.Mode())
	}
}

func TestClickOnEveryPress(t *testing.T) {
	b, drv, _, clock := newTestBuddy(t, nil)
	before := drv.played(700)

	drv.press = true
	tick(t, b, clock)
	tick(t, b, clock)
	drv.press = true
	tick(t, b, clock)
	if got := drv.played(700) - before; got != 2 {
		t.Errorf("clicks = %d, want 2", got)
	}
}

type stubMode struct {
	id      ModeID
	next    ModeID
	enters  int
	runs    int
	redraws int
	lastEvt Event
}

func (m *stubMode) ID() ModeID      { return m.id }
func (m *stubMode) Enter(time.Time) { m.enters++ }
func (m *stubMode) Redraw()         { m.redraws++ }
func (m *stubMode) Run(ev Event, _ time.Time) ModeID {
	m.runs++
	m.lastEvt = ev
	return m.next
}

func TestRejectedTransition(t *testing.T) {
	b, _, _, clock := newTestBuddy(t, nil)
	stub := &stubMode{id: ModeBattery, next: ModeTimer}
	b.modes[ModeBattery] = stub
	b.current = ModeBattery

	tick(t, b, clock)
	tick(t, b, clock)
	if b.Mode() != ModeBattery {
		t.Errorf("mode = %v, want battery", b.Mode())
	}
	if stub.runs != 2 {
		t.Errorf("runs = %d", stub.runs)
	}
}

func TestEnterCalledOnce(t *testing.T) {
	b, _, _, clock := newTestBuddy(t, nil)
	idle := &stubMode{id: ModeIdle, next: ModeBattery}
	batt := &stubMode{id: ModeBattery, next: ModeBattery}
	b.modes[ModeIdle] = idle
	b.modes[ModeBattery] = batt

	tick(t, b, clock)
	if batt.enters != 0 || batt.runs != 0 {
		t.Fatal("battery mode ran before the next tick")
	}
	tick(t, b, clock)
	tick(t, b, clock)
	if batt.enters != 1 || batt.runs != 2 {
		t.Errorf("enters = %d runs = %d, want 1 and 2", batt.enters, batt.runs)
	}
}

func TestPowerOffAndWake(t *testing.T) {
	b, drv, disp, clock := newTestBuddy(t, nil)

	drv.press = true
	tick(t, b, clock)
	for i := 0; i < 10; i++ {
		drv.step = 1
		tick(t, b, clock)
	}
	drv.press = true
	tick(t, b, clock)
	tick(t, b, clock)
	if b.Mode() != ModePowerOff {
		t.Fatalf("mode = %v, want poweroff", b.Mode())
	}
	if len(drv.power) != 1 || drv.power[0] {
		t.Fatalf("display power = %v, want [false]", drv.power)
	}

	flushes := disp.flushes
	for i := 0; i < 20; i++ {
		drv.step = 1
		tick(t, b, clock)
	}
	if disp.flushes != flushes {
		t.Errorf("display flushed %d times while off", disp.flushes-flushes)
	}
	if b.Mode() != ModePowerOff {
		t.Fatalf("rotation woke the device")
	}

	drv.press = true
	tick(t, b, clock)
	if len(drv.power) != 2 || !drv.power[1] {
		t.Errorf("display power = %v, want [false true]", drv.power)
	}
	tick(t, b, clock)
	if b.Mode() != ModeIdle {
		t.Errorf("mode = %v after wake, want idle", b.Mode())
	}
}

func TestCriticalBatterySuspendsModes(t *testing.T) {
	b, drv, _, clock := newTestBuddy(t, nil)
	stub := &stubMode{id: ModeIdle, next: ModeIdle}
	b.modes[ModeIdle] = stub

	drv.volts = 3.2
	drv.press = true
	tick(t, b, clock)
	tick(t, b, clock)
	if stub.runs != 0 {
		t.Errorf("mode ran %d times while critical", stub.runs)
	}
	if !drv.press {
		t.Error("input was consumed while critical")
	}
	if !b.Battery().IsCriticallyLow {
		t.Error("reading not critical")
	}

	drv.volts = 3.6
	tick(t, b, clock)
	if stub.runs != 1 || !stub.lastEvt.Pressed {
		t.Errorf("runs = %d event = %+v after recovery", stub.runs, stub.lastEvt)
	}
	if stub.enters != 0 {
		t.Errorf("recovery re-entered the mode %d times", stub.enters)
	}
	if stub.redraws != 1 {
		t.Errorf("redraws = %d after recovery, want 1", stub.redraws)
	}
}

// batteryBlip drops the cell through the critical threshold for one tick and back.
func batteryBlip(t *testing.T, b *Buddy, drv *fakeDriver, clock *fakeClock) {
	t.Helper()
	for _, v := range []float32{3.6, 3.3, 3.6} {
		drv.volts = v
		tick(t, b, clock)
	}
	if b.Battery().IsCriticallyLow {
		t.Fatalf("still critical after recovery: %+v", b.Battery())
	}
}

func TestCriticalBatteryKeepsRunningTimer(t *testing.T) {
	b, drv, disp, clock := newTestBuddy(t, nil)
	tm := b.modes[ModeTimer].(*timerMode)
	b.current = ModeTimer
	tm.remaining = 600
	tm.run(clock.Now())
	tick(t, b, clock)
	clockFrame := disp.px

	batteryBlip(t, b, drv, clock)
	if tm.phase != timerRunning {
		t.Errorf("phase = %v after a critical tick, want running", tm.phase)
	}
	if tm.remaining < 598 || tm.remaining > 600 {
		t.Errorf("remaining = %d", tm.remaining)
	}
	if disp.px != clockFrame {
		t.Error("clock not redrawn after recovery")
	}
}

func TestCriticalBatteryKeepsPongGame(t *testing.T) {
	b, drv, _, clock := newTestBuddy(t, nil)
	pm := b.modes[ModePong].(*pongMode)
	b.current = ModePong
	pm.rounds = 3
	pm.newGame()
	pm.leftScore = 2
	tick(t, b, clock)

	batteryBlip(t, b, drv, clock)
	if pm.phase != pongPlaying {
		t.Errorf("phase = %v after a critical tick, want playing", pm.phase)
	}
	if pm.leftScore != 2 {
		t.Errorf("leftScore = %d, want 2", pm.leftScore)
	}
}

func TestLowBatteryCueOnce(t *testing.T) {
	b, drv, _, clock := newTestBuddy(t, nil)

	drv.volts = 3.9
	tick(t, b, clock)
	drv.volts = 3.45
	for i := 0; i < 5; i++ {
		tick(t, b, clock)
	}
	if n := drv.played(500); n != 1 {
		t.Errorf("sad cue played %d times, want 1", n)
	}
	if !b.Battery().IsLow || b.Battery().IsCriticallyLow {
		t.Errorf("reading = %+v", b.Battery())
	}
}

func TestNoBatterySensor(t *testing.T) {
	b, drv, _, clock := newTestBuddy(t, nil)
	drv.vst = SensorStatusUnavailable
	drv.volts = 0
	tick(t, b, clock)
	if r := b.Battery(); r.IsLow || r.IsCriticallyLow {
		t.Errorf("missing sensor reported low: %+v", r)
	}
}
