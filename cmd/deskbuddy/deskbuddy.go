//go:build tinygo

package main

import (
	"machine"
	"math/rand"
	"time"

	"tinygo.org/x/drivers/servo"
	"tinygo.org/x/drivers/sh1106"
	"tinygo.org/x/drivers/tone"

	"github.com/ajanata/deskbuddy"
	"github.com/ajanata/deskbuddy/internal/input"
)

const (
	pinSDA     = machine.GP4
	pinSCL     = machine.GP5
	pinBuzzer  = machine.GP6
	pinEncCLK  = machine.GP7
	pinEncDT   = machine.GP8
	pinSwitch  = machine.GP9
	pinServo   = machine.GP10
	pinLever   = machine.ADC0 // GP26
	pinBattery = machine.ADC2 // GP28, behind a 1:2 divider

	adcRef   = 3.3
	adcFull  = 0xFFFF
	divider  = 2
	servoMax = 180
)

func main() {
	blink()
	machine.I2C0.Configure(machine.I2CConfig{
		SCL:       pinSCL,
		SDA:       pinSDA,
		Frequency: 400 * machine.KHz,
	})
	blink()

	dev := sh1106.NewI2C(machine.I2C0)
	dev.Configure(sh1106.Config{Width: 128, Height: 64, Address: sh1106.Address, VccState: sh1106.SWITCHCAPVCC})
	blink()
	dev.ClearBuffer()
	dev.ClearDisplay()
	blink()

	hw := &hardware{oled: &dev}
	seed := time.Now().UnixNano()
	if r, err := machine.GetRNG(); err == nil {
		seed = int64(r)
	}

	settings := deskbuddy.DefaultSettings()
	b, err := deskbuddy.New(uint(time.Second/settings.TickInterval), &dev, machine.LED, hw, deskbuddy.Options{
		Settings: settings,
		Rand:     rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		println("could not create buddy: " + err.Error())
		earlyPanic()
	}
	err = b.Init()
	if err != nil {
		println("could not init: " + err.Error())
		earlyPanic()
	}

	b.Run()
}

// hardware is the RP2040 wiring of the desk buddy.
type hardware struct {
	oled    *sh1106.Device
	arm     servo.Servo
	speaker tone.Speaker
	lever   machine.ADC
	battery machine.ADC

	rotary input.Rotary
	button *input.Debouncer
	smooth *input.Lever
	start  time.Time
	angle  int
}

var _ deskbuddy.Driver = (*hardware)(nil)

func (h *hardware) EarlyInit() error {
	var err error
	h.arm, err = servo.New(machine.PWM5, pinServo)
	if err != nil {
		return err
	}
	h.speaker, err = tone.New(machine.PWM3, pinBuzzer)
	if err != nil {
		return err
	}
	h.speaker.Stop()

	machine.InitADC()
	h.lever = machine.ADC{Pin: pinLever}
	h.lever.Configure(machine.ADCConfig{})
	h.battery = machine.ADC{Pin: pinBattery}
	h.battery.Configure(machine.ADCConfig{})
	h.smooth = input.NewLever(0, adcFull, 40)

	pinSwitch.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	h.button = input.NewDebouncer(input.DefaultDebounceMillis)
	h.start = time.Now()

	pinEncCLK.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	pinEncDT.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return pinEncCLK.SetInterrupt(machine.PinToggle, func(machine.Pin) {
		h.rotary.Edge(pinEncCLK.Get(), pinEncDT.Get())
	})
}

func (h *hardware) PressedButton() bool {
	ms := uint32(time.Since(h.start) / time.Millisecond)
	return h.button.Pressed(ms, pinSwitch.Get())
}

func (h *hardware) Rotation() int {
	return h.rotary.Take()
}

func (h *hardware) Lever() uint8 {
	return h.smooth.Update(h.lever.Get())
}

func (h *hardware) BatteryVoltage() (float32, deskbuddy.SensorStatus) {
	raw := h.battery.Get()
	// a floating input reads near zero with no cell attached
	if raw < adcFull/100 {
		return 0, deskbuddy.SensorStatusUnavailable
	}
	return float32(raw) / adcFull * adcRef * divider, deskbuddy.SensorStatusAvailable
}

func (h *hardware) Tone(freq uint16, d time.Duration) {
	if freq == 0 {
		time.Sleep(d)
		return
	}
	h.speaker.SetPeriod(uint64(1e9) / uint64(freq))
	time.Sleep(d)
	h.speaker.Stop()
}

// SetArm ramps towards the target in 5 degree steps. Speed 100 jumps straight there.
func (h *hardware) SetArm(percent, speed uint8) {
	if percent > 100 {
		percent = 100
	}
	target := int(percent) * servoMax / 100
	if speed == 0 || speed >= 100 {
		h.angle = target
		_ = h.arm.SetAngle(target)
		return
	}
	pause := time.Duration(100-speed) * 100 * time.Microsecond
	for h.angle != target {
		switch {
		case target > h.angle+5:
			h.angle += 5
		case target < h.angle-5:
			h.angle -= 5
		default:
			h.angle = target
		}
		_ = h.arm.SetAngle(h.angle)
		time.Sleep(pause)
	}
}

func (h *hardware) SetDisplayPower(on bool) {
	if on {
		h.oled.Command(sh1106.DISPLAYON)
	} else {
		h.oled.Command(sh1106.DISPLAYOFF)
	}
}

func blink() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.High()
	time.Sleep(100 * time.Millisecond)
	led.Low()
	time.Sleep(100 * time.Millisecond)
}

func earlyPanic() {
	for {
		blink()
	}
}
