//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/ajanata/deskbuddy"
	"github.com/ajanata/deskbuddy/internal/config"
	"github.com/ajanata/deskbuddy/internal/sim"
)

func main() {
	var hc sim.HeadlessConfig
	var headless, dump bool
	var configPath, writeConfig string
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hc.Hz, "hz", 0, "Tick rate in headless mode (0 = from settings).")
	flag.Uint64Var(&hc.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&dump, "dump", false, "Print the last frame as text when headless mode stops.")
	flag.StringVar(&configPath, "config", "deskbuddy.yaml", "Settings file.")
	flag.StringVar(&writeConfig, "write-config", "", "Write the effective settings to this file and exit.")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if writeConfig != "" {
		if err := config.Save(writeConfig, cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	var spk sim.Speaker
	if !headless {
		spk = newSpeaker()
	}
	fb := sim.NewFramebuffer(128, 64)
	drv := sim.NewDriver(fb, sim.Options{
		Speaker: spk,
		Lever:   cfg.Sim.Lever,
		Volts:   cfg.Sim.Volts,
	})
	framerate := uint(time.Second / cfg.Settings.TickInterval)
	b, err := deskbuddy.New(framerate, fb, nil, drv, deskbuddy.Options{
		Settings: cfg.Settings,
		Logger:   deskbuddy.NewPrintLogger(cfg.Sim.Debug),
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if headless {
		if hc.Hz == 0 {
			hc.Hz = int(framerate)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := b.Init(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		err := sim.RunHeadless(ctx, b.RunTick, hc)
		if dump {
			fmt.Print(fb.String())
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := runWindow(b, drv, framerate, cfg.Sim.Scale); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loop runs the engine the way the firmware does, on its own goroutine, and reports the first error.
func loop(b *deskbuddy.Buddy, framerate uint) error {
	if err := b.Init(); err != nil {
		return err
	}
	t := time.NewTicker(time.Second / time.Duration(framerate))
	defer t.Stop()
	for range t.C {
		if err := b.RunTick(); err != nil {
			return err
		}
	}
	return nil
}
