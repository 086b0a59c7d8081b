//go:build linux && !tinygo

// Command deskbuddy-pi runs the desk buddy on a Linux single board computer through periph.io.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"github.com/ajanata/deskbuddy"
	"github.com/ajanata/deskbuddy/internal/config"
	"github.com/ajanata/deskbuddy/internal/panel"
)

func main() {
	var configPath, busName string
	var debug bool
	flag.StringVar(&configPath, "config", "/etc/deskbuddy.yaml", "Settings file.")
	flag.StringVar(&busName, "i2c", "", "I2C bus name (empty = first bus).")
	flag.BoolVar(&debug, "debug", false, "Log debug messages.")
	flag.Parse()

	if err := run(configPath, busName, debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, busName string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("host init: %w", err)
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return fmt.Errorf("open i2c: %w", err)
	}
	defer bus.Close()

	oled, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("ssd1306: %w", err)
	}
	hw := newBoard(bus)
	defer hw.halt()

	b, err := deskbuddy.New(uint(time.Second/cfg.Settings.TickInterval), panel.NewPeriph(oled), nil, hw, deskbuddy.Options{
		Settings: cfg.Settings,
		Logger:   deskbuddy.NewPrintLogger(debug || cfg.Sim.Debug),
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	})
	if err != nil {
		return err
	}
	if err := b.Init(); err != nil {
		return err
	}
	b.Run()
	return nil
}
