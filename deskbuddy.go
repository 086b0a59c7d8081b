package deskbuddy

import (
	"errors"
	"math/rand"
	"strconv"
	"time"

	"tinygo.org/x/drivers"

	"github.com/ajanata/deskbuddy/internal/gesture"
	"github.com/ajanata/deskbuddy/internal/media"
	"github.com/ajanata/deskbuddy/internal/panel"
	"github.com/ajanata/deskbuddy/internal/screen"
	"github.com/ajanata/deskbuddy/internal/sound"
)

// Options carries the optional collaborators of a Buddy. Zero values are replaced with the real clock, a println
// logger, DefaultSettings and a time-seeded random source.
type Options struct {
	Settings *Settings
	Logger   Logger
	Now      func() time.Time
	Sleep    func(time.Duration)
	Rand     *rand.Rand
}

// env is what every mode works with. It belongs to the Buddy and is handed to each mode by reference.
type env struct {
	screen   *screen.Screen
	driver   Driver
	sound    *sound.Player
	arm      *gesture.Performer
	rand     *rand.Rand
	settings *Settings
	log      Logger
	sleep    func(time.Duration)

	tick      uint32
	battery   BatteryReading
	displayOn bool
	// first flush failure during the tick
	err error
}

// show flushes the screen right away, for modes about to block on a cue or gesture.
func (e *env) show() {
	if !e.displayOn {
		return
	}
	if err := e.screen.Display(); err != nil && e.err == nil {
		e.err = err
	}
}

type Buddy struct {
	framerate uint
	frameTime time.Duration
	display   drivers.Displayer
	status    Blinker
	driver    Driver

	settings *Settings
	log      Logger
	now      func() time.Time
	sleep    func(time.Duration)
	rand     *rand.Rand

	env       env
	modes     [numModes]Mode
	current   ModeID
	pending   ModeID
	switching bool

	battery  *batteryMonitor
	wasLow   bool
	critical bool

	init  bool
	start time.Time
}

func New(framerate uint, display drivers.Displayer, status Blinker, driver Driver, opts Options) (*Buddy, error) {
	if framerate == 0 {
		return nil, errors.New("must run at least one frame per second")
	}
	if display == nil {
		return nil, errors.New("must provide display")
	}
	if driver == nil {
		return nil, errors.New("must provide driver")
	}

	b := &Buddy{
		framerate: framerate,
		frameTime: time.Second / time.Duration(framerate),
		display:   display,
		status:    status,
		driver:    driver,
		settings:  opts.Settings,
		log:       opts.Logger,
		now:       opts.Now,
		sleep:     opts.Sleep,
		rand:      opts.Rand,
	}
	if b.settings == nil {
		b.settings = DefaultSettings()
	}
	if b.log == nil {
		b.log = NewPrintLogger(false)
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.sleep == nil {
		b.sleep = time.Sleep
	}
	if b.rand == nil {
		b.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	b.start = b.now()
	return b, nil
}

func (b *Buddy) Init() error {
	if b.init {
		return errors.New("already initialized")
	}
	b.log.Info("starting init")
	b.blink()

	faces, err := media.LoadFaces()
	if err != nil {
		return errors.New("load faces: " + err.Error())
	}
	disp := b.display
	if b.settings.Flip {
		disp = panel.NewFlip(disp)
	}
	scr, err := screen.New(disp, faces)
	if err != nil {
		return errors.New("init screen: " + err.Error())
	}
	scr.Centered("Booting")
	_ = scr.Display()

	err = b.driver.EarlyInit()
	if err != nil {
		_ = scr.Text().PrintlnInverse(err.Error())
		_ = scr.Display()
		return errors.New("early init: " + err.Error())
	}

	b.env = env{
		screen:    scr,
		driver:    b.driver,
		sound:     sound.NewPlayer(b.driver, b.sleep),
		arm:       gesture.NewPerformer(b.driver, b.sleep),
		rand:      b.rand,
		settings:  b.settings,
		log:       b.log,
		sleep:     b.sleep,
		displayOn: true,
	}
	b.battery = newBatteryMonitor(b.settings)
	b.modes = [numModes]Mode{
		ModeIdle:     newIdleMode(&b.env),
		ModeTimer:    newTimerMode(&b.env),
		ModePong:     newPongMode(&b.env),
		ModeDecision: newDecisionMode(&b.env),
		ModeBattery:  newBatteryMode(&b.env),
		ModePowerOff: newPowerOffMode(&b.env),
	}
	b.env.arm.Perform(gesture.Rest)

	for i := 0; i <= 100; i += 20 {
		scr.Big(strconv.Itoa(i)+"%", "Loading...", "")
		if err := scr.Display(); err != nil {
			return errors.New("loading screen: " + err.Error())
		}
		b.sleep(b.settings.BootStepDelay)
	}
	scr.Centered("Hello :D")
	if err := scr.Display(); err != nil {
		return errors.New("hello: " + err.Error())
	}
	b.env.sound.Play(sound.Hello)
	b.sleep(time.Second)

	b.current = ModeIdle
	b.modes[b.current].Enter(b.now())

	b.blink()
	b.init = true
	b.log.Info("init complete in " + b.now().Sub(b.start).Round(100*time.Millisecond).String())
	return nil
}

// Run does not return. It attempts to run the main loop at the framerate specified in New.
func (b *Buddy) Run() {
	for range time.Tick(b.frameTime) {
		err := b.RunTick()
		if err != nil {
			b.panic(err.Error())
		}
	}
}

// RunTick runs a single iteration of the main loop.
func (b *Buddy) RunTick() error {
	if !b.init {
		return errors.New("not initialized")
	}

	b.statusOff()
	defer b.statusOn()
	b.env.tick++
	b.env.err = nil
	now := b.now()

	b.refreshBattery()
	if b.env.battery.IsCriticallyLow {
		if !b.critical {
			b.critical = true
			b.log.Info("battery critical")
			b.env.arm.Perform(gesture.Rest)
			if b.env.displayOn {
				b.env.screen.Centered("Low battery!")
			}
		}
		return b.flush()
	}
	if b.critical {
		b.critical = false
		b.log.Info("battery recovered")
		if b.env.displayOn {
			b.modes[b.current].Redraw()
		}
	}

	if b.switching {
		b.switching = false
		b.log.Infof("mode %s -> %s", b.current, b.pending)
		b.current = b.pending
		b.modes[b.current].Enter(now)
	}

	ev := b.poll()
	next := b.modes[b.current].Run(ev, now)
	if next != b.current {
		if CanTransition(b.current, next) {
			b.pending = next
			b.switching = true
		} else {
			b.log.Infof("mode %s cannot switch to %s", b.current, next)
		}
	}

	return b.flush()
}

// Mode is the current mode.
func (b *Buddy) Mode() ModeID { return b.current }

// Battery is the reading taken on the last tick.
func (b *Buddy) Battery() BatteryReading { return b.env.battery }

// Settings is the live settings.
func (b *Buddy) Settings() *Settings { return b.settings }

// poll reads the controls once. Every accepted press clicks.
func (b *Buddy) poll() Event {
	ev := Event{
		Step:    b.driver.Rotation(),
		Pressed: b.driver.PressedButton(),
	}
	if ev.Pressed {
		b.env.sound.Play(sound.Click)
	}
	return ev
}

func (b *Buddy) refreshBattery() {
	v, st := b.driver.BatteryVoltage()
	r := b.battery.update(v, st)
	b.env.battery = r
	if r.IsLow && !b.wasLow {
		b.log.Infof("battery low: %.2fV", r.Voltage)
		b.env.sound.Play(sound.Sad)
	}
	b.wasLow = r.IsLow
}

func (b *Buddy) flush() error {
	if b.env.err != nil {
		return b.env.err
	}
	if !b.env.displayOn {
		return nil
	}
	return b.env.screen.Display()
}

// unfortunately you can't recover runtime panics in tinygo, so this is just going to be used for things we detect
// that are fatal
func (b *Buddy) panic(msg string) {
	println(msg)
	for {
		println(msg)
		b.blink()
	}
}

func (b *Buddy) blink() {
	b.statusOn()
	b.sleep(100 * time.Millisecond)
	b.statusOff()
	b.sleep(100 * time.Millisecond)
}

func (b *Buddy) statusOn() {
	if b.status != nil {
		b.status.High()
	}
}

func (b *Buddy) statusOff() {
	if b.status != nil {
		b.status.Low()
	}
}
