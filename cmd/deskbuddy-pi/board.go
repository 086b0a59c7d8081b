//go:build linux && !tinygo

package main

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"

	"github.com/ajanata/deskbuddy"
	"github.com/ajanata/deskbuddy/internal/input"
)

const (
	oledAddr = 0x3C

	// the battery sits behind a 1:2 divider on the ADC input
	batteryDivider = 2
	adcRange       = 4096 * physic.MilliVolt

	servoFreq = 50 * physic.Hertz
	// pulse widths for 0 and 180 degrees
	servoMinPulse = 1000 * time.Microsecond
	servoMaxPulse = 2000 * time.Microsecond
	servoPeriod   = 20 * time.Millisecond
)

// board is the Linux wiring: ADS1115 for the lever and the cell, GPIO for the encoder and switch, hardware PWM for the
// servo and buzzer.
type board struct {
	bus  i2c.Bus
	oled *i2c.Dev

	lever   analog.PinADC
	battery analog.PinADC
	clk     gpio.PinIO
	dt      gpio.PinIO
	sw      gpio.PinIO
	servo   gpio.PinIO
	buzzer  gpio.PinIO

	rotary input.Rotary
	button *input.Debouncer
	smooth *input.Lever
	start  time.Time

	mu      sync.Mutex
	stopped bool
}

var _ deskbuddy.Driver = (*board)(nil)

func newBoard(bus i2c.Bus) *board {
	return &board{
		bus:    bus,
		oled:   &i2c.Dev{Bus: bus, Addr: oledAddr},
		button: input.NewDebouncer(input.DefaultDebounceMillis),
		smooth: input.NewLever(0, uint16(adcRange/physic.MilliVolt), 40),
	}
}

func (b *board) EarlyInit() error {
	adc, err := ads1x15.NewADS1115(b.bus, &ads1x15.DefaultOpts)
	if err != nil {
		return fmt.Errorf("ads1115: %w", err)
	}
	b.lever, err = adc.PinForChannel(ads1x15.Channel0, adcRange, 100*physic.Hertz, ads1x15.SaveEnergy)
	if err != nil {
		return fmt.Errorf("lever channel: %w", err)
	}
	b.battery, err = adc.PinForChannel(ads1x15.Channel1, adcRange, 10*physic.Hertz, ads1x15.BestQuality)
	if err != nil {
		return fmt.Errorf("battery channel: %w", err)
	}

	pins := map[string]*gpio.PinIO{
		"GPIO17": &b.clk,
		"GPIO27": &b.dt,
		"GPIO22": &b.sw,
		"GPIO12": &b.servo,
		"GPIO13": &b.buzzer,
	}
	for name, p := range pins {
		*p = gpioreg.ByName(name)
		if *p == nil {
			return errors.New("no such pin: " + name)
		}
	}
	if err := b.clk.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return fmt.Errorf("encoder clk: %w", err)
	}
	if err := b.dt.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return fmt.Errorf("encoder dt: %w", err)
	}
	if err := b.sw.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return fmt.Errorf("switch: %w", err)
	}
	if err := b.buzzer.Out(gpio.Low); err != nil {
		return fmt.Errorf("buzzer: %w", err)
	}
	b.start = time.Now()
	go b.watchEncoder()
	return nil
}

// watchEncoder stands in for the pin-change interrupt. It is the only writer of the rotary latch.
func (b *board) watchEncoder() {
	for {
		if !b.clk.WaitForEdge(-1) {
			b.mu.Lock()
			stopped := b.stopped
			b.mu.Unlock()
			if stopped {
				return
			}
			continue
		}
		b.rotary.Edge(bool(b.clk.Read()), bool(b.dt.Read()))
	}
}

func (b *board) PressedButton() bool {
	ms := uint32(time.Since(b.start) / time.Millisecond)
	return b.button.Pressed(ms, bool(b.sw.Read()))
}

func (b *board) Rotation() int {
	return b.rotary.Take()
}

func (b *board) Lever() uint8 {
	s, err := b.lever.Read()
	if err != nil {
		return b.smooth.Value()
	}
	mv := s.V / physic.MilliVolt
	if mv < 0 {
		mv = 0
	}
	return b.smooth.Update(uint16(mv))
}

func (b *board) BatteryVoltage() (float32, deskbuddy.SensorStatus) {
	s, err := b.battery.Read()
	if err != nil {
		return 0, deskbuddy.SensorStatusBusy
	}
	v := float32(s.V) / float32(physic.Volt) * batteryDivider
	// nothing attached reads as ground
	if v < 0.1 {
		return 0, deskbuddy.SensorStatusUnavailable
	}
	return v, deskbuddy.SensorStatusAvailable
}

func (b *board) Tone(freq uint16, d time.Duration) {
	if freq != 0 {
		_ = b.buzzer.PWM(gpio.DutyHalf, physic.Frequency(freq)*physic.Hertz)
	}
	time.Sleep(d)
	_ = b.buzzer.Out(gpio.Low)
}

// SetArm jumps to the position; the PWM servo has no speed control.
func (b *board) SetArm(percent, _ uint8) {
	if percent > 100 {
		percent = 100
	}
	pulse := servoMinPulse + (servoMaxPulse-servoMinPulse)*time.Duration(percent)/100
	duty := gpio.Duty(int64(gpio.DutyMax) * int64(pulse) / int64(servoPeriod))
	_ = b.servo.PWM(duty, servoFreq)
}

func (b *board) SetDisplayPower(on bool) {
	cmd := byte(0xAE)
	if on {
		cmd = 0xAF
	}
	_ = b.oled.Tx([]byte{0x00, cmd}, nil)
}

func (b *board) halt() {
	b.mu.Lock()
	b.stopped = true
	b.mu.Unlock()
	if b.buzzer != nil {
		_ = b.buzzer.Out(gpio.Low)
	}
	if b.servo != nil {
		_ = b.servo.Halt()
	}
	if b.lever != nil {
		_ = b.lever.Halt()
	}
	if b.battery != nil {
		_ = b.battery.Halt()
	}
}
