// Package sim is an in-memory stand-in for the device hardware, used by the desktop simulator and by tests.
package sim

import (
	"sync"
	"time"

	"github.com/ajanata/deskbuddy"
	"github.com/ajanata/deskbuddy/internal/input"
)

// full scale of the simulated 12-bit ADC
const adcMax = 4095

// Speaker receives tones. Implementations must not block; the driver sleeps for the tone itself.
type Speaker interface {
	Play(freq uint16, d time.Duration)
}

// Driver implements deskbuddy.Driver on top of plain fields that a window or a test sets.
type Driver struct {
	Display *Framebuffer

	rotary input.Rotary
	button *input.Debouncer
	lever  *input.Lever
	start  time.Time
	now    func() time.Time
	sleep  func(time.Duration)
	spk    Speaker

	mu       sync.Mutex
	level    bool // true is released, the switch pulls low
	clicks   int
	raw      uint16
	volts    float32
	noSensor bool
	arm      uint8
	armSpeed uint8
	tones    int
	lastTone uint16
}

// Options configure a Driver. Zero values use the real clock and no speaker.
type Options struct {
	Now     func() time.Time
	Sleep   func(time.Duration)
	Speaker Speaker
	Lever   uint8
	Volts   float32
}

var _ deskbuddy.Driver = (*Driver)(nil)

func NewDriver(fb *Framebuffer, opts Options) *Driver {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	d := &Driver{
		Display: fb,
		button:  input.NewDebouncer(input.DefaultDebounceMillis),
		lever:   input.NewLever(0, adcMax, 40),
		now:     opts.Now,
		sleep:   opts.Sleep,
		spk:     opts.Speaker,
		level:   true,
		volts:   opts.Volts,
	}
	d.start = d.now()
	d.SetLever(opts.Lever)
	return d
}

func (d *Driver) EarlyInit() error { return nil }

func (d *Driver) PressedButton() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.clicks > 0 {
		d.clicks--
		return true
	}
	ms := uint32(d.now().Sub(d.start) / time.Millisecond)
	return d.button.Pressed(ms, d.level)
}

func (d *Driver) Rotation() int {
	return d.rotary.Take()
}

func (d *Driver) Lever() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lever.Update(d.raw)
}

func (d *Driver) BatteryVoltage() (float32, deskbuddy.SensorStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.noSensor {
		return 0, deskbuddy.SensorStatusUnavailable
	}
	return d.volts, deskbuddy.SensorStatusAvailable
}

func (d *Driver) Tone(freq uint16, dur time.Duration) {
	d.mu.Lock()
	d.tones++
	d.lastTone = freq
	spk := d.spk
	d.mu.Unlock()
	if spk != nil && freq != 0 {
		spk.Play(freq, dur)
	}
	d.sleep(dur)
}

func (d *Driver) SetArm(percent, speed uint8) {
	d.mu.Lock()
	d.arm = percent
	d.armSpeed = speed
	d.mu.Unlock()
}

func (d *Driver) SetDisplayPower(on bool) {
	d.Display.SetPower(on)
}

// Turn simulates one encoder detent.
func (d *Driver) Turn(clockwise bool) {
	d.rotary.Push(clockwise)
}

// SetButton sets the raw switch state. It goes through the same debouncing as real hardware.
func (d *Driver) SetButton(down bool) {
	d.mu.Lock()
	d.level = !down
	d.mu.Unlock()
}

// Click queues one already debounced press.
func (d *Driver) Click() {
	d.mu.Lock()
	d.clicks++
	d.mu.Unlock()
}

// SetLever moves the potentiometer to pct of its travel.
func (d *Driver) SetLever(pct uint8) {
	if pct > 100 {
		pct = 100
	}
	d.mu.Lock()
	d.raw = uint16(uint32(pct) * adcMax / 100)
	d.mu.Unlock()
}

// LeverTarget is where the lever was last set, before smoothing.
func (d *Driver) LeverTarget() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return input.Scale(d.raw, 0, adcMax)
}

// SetVolts sets the battery voltage. A negative value removes the sensor.
func (d *Driver) SetVolts(v float32) {
	d.mu.Lock()
	d.noSensor = v < 0
	d.volts = v
	d.mu.Unlock()
}

func (d *Driver) Volts() float32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.volts
}

// Arm is the last commanded arm position and speed.
func (d *Driver) Arm() (percent, speed uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.arm, d.armSpeed
}

// Tones is the number of tones played and the frequency of the last one.
func (d *Driver) Tones() (count int, last uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tones, d.lastTone
}
