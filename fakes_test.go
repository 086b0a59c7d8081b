package deskbuddy

import (
	"image/color"
	"math/rand"
	"testing"
	"time"

	"github.com/ajanata/deskbuddy/internal/gesture"
	"github.com/ajanata/deskbuddy/internal/media"
	"github.com/ajanata/deskbuddy/internal/screen"
	"github.com/ajanata/deskbuddy/internal/sound"
)

type fakeDisplay struct {
	px      [128 * 64]bool
	flushes int
}

func (d *fakeDisplay) Size() (x, y int16) { return 128, 64 }

func (d *fakeDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= 128 || y >= 64 {
		return
	}
	d.px[int(y)*128+int(x)] = c.R != 0 || c.G != 0 || c.B != 0
}

func (d *fakeDisplay) Display() error {
	d.flushes++
	return nil
}

type fakeDriver struct {
	early error

	press bool
	step  int
	lever uint8
	volts float32
	vst   SensorStatus

	tones []uint16
	arm   []uint8
	power []bool
}

func (d *fakeDriver) EarlyInit() error { return d.early }

func (d *fakeDriver) PressedButton() bool {
	p := d.press
	d.press = false
	return p
}

func (d *fakeDriver) Rotation() int {
	s := d.step
	d.step = 0
	return s
}

func (d *fakeDriver) Lever() uint8 { return d.lever }

func (d *fakeDriver) BatteryVoltage() (float32, SensorStatus) { return d.volts, d.vst }

func (d *fakeDriver) Tone(freq uint16, _ time.Duration) { d.tones = append(d.tones, freq) }

func (d *fakeDriver) SetArm(percent, _ uint8) { d.arm = append(d.arm, percent) }

func (d *fakeDriver) SetDisplayPower(on bool) { d.power = append(d.power, on) }

func (d *fakeDriver) played(freq uint16) int {
	n := 0
	for _, f := range d.tones {
		if f == freq {
			n++
		}
	}
	return n
}

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Sleep(d time.Duration) { c.t = c.t.Add(d) }

type nopLogger struct{}

func (nopLogger) Debug(string)          {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Info(string)           {}
func (nopLogger) Infof(string, ...any)  {}

// newTestEnv builds the shared mode environment without a dispatcher.
func newTestEnv(t *testing.T) (*env, *fakeDriver, *fakeDisplay) {
	t.Helper()
	faces, err := media.LoadFaces()
	if err != nil {
		t.Fatalf("LoadFaces: %v", err)
	}
	disp := &fakeDisplay{}
	scr, err := screen.New(disp, faces)
	if err != nil {
		t.Fatalf("screen.New: %v", err)
	}
	drv := &fakeDriver{vst: SensorStatusAvailable, volts: 4.0}
	clock := newFakeClock()
	e := &env{
		screen:    scr,
		driver:    drv,
		sound:     sound.NewPlayer(drv, clock.Sleep),
		arm:       gesture.NewPerformer(drv, clock.Sleep),
		rand:      rand.New(rand.NewSource(42)),
		settings:  DefaultSettings(),
		log:       nopLogger{},
		sleep:     clock.Sleep,
		displayOn: true,
	}
	return e, drv, disp
}

// newTestBuddy returns an initialized Buddy on fakes.
func newTestBuddy(t *testing.T, s *Settings) (*Buddy, *fakeDriver, *fakeDisplay, *fakeClock) {
	t.Helper()
	if s == nil {
		s = DefaultSettings()
	}
	disp := &fakeDisplay{}
	drv := &fakeDriver{vst: SensorStatusAvailable, volts: 4.0}
	clock := newFakeClock()
	b, err := New(50, disp, nil, drv, Options{
		Settings: s,
		Logger:   nopLogger{},
		Now:      clock.Now,
		Sleep:    clock.Sleep,
		Rand:     rand.New(rand.NewSource(7)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return b, drv, disp, clock
}

// tick advances the clock by one frame and runs the loop once.
func tick(t *testing.T, b *Buddy, c *fakeClock) {
	t.Helper()
	c.Sleep(20 * time.Millisecond)
	if err := b.RunTick(); err != nil {
		t.Fatalf("RunTick: %v", err)
	}
}
