// Package config loads the optional YAML settings file used by the host builds.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ajanata/deskbuddy"
)

// Sim holds simulator-only options.
type Sim struct {
	// Scale is the window pixels per panel pixel.
	Scale int
	// Lever and Volts are the initial simulated inputs.
	Lever uint8
	Volts float32
	Debug bool
}

// Config is everything a settings file can change.
type Config struct {
	Settings *deskbuddy.Settings
	Sim      Sim
}

// Default is the configuration used when there is no file.
func Default() Config {
	return Config{
		Settings: deskbuddy.DefaultSettings(),
		Sim: Sim{
			Scale: 4,
			Lever: 0,
			Volts: 4.0,
		},
	}
}

type yamlFile struct {
	TickMillis      int    `yaml:"tick_ms"`
	Flip            *bool  `yaml:"flip"`
	IdleSeconds     int    `yaml:"idle_seconds"`
	MessageChance   *int   `yaml:"message_chance"`
	TimerStep       int    `yaml:"timer_step_seconds"`
	TimerMax        int    `yaml:"timer_max_seconds"`
	TimerLow        *int   `yaml:"timer_low_seconds"`
	AlarmMillis     int    `yaml:"alarm_interval_ms"`
	AlarmArm        *bool  `yaml:"alarm_arm"`
	PongDifficulty  *int   `yaml:"pong_difficulty"`
	PongRounds      int    `yaml:"pong_rounds"`
	LeverThreshold  int    `yaml:"lever_threshold"`
	DecisionClear   string `yaml:"decision_clear"`
	DecisionSeconds int    `yaml:"decision_timeout_seconds"`

	Battery yamlBattery `yaml:"battery"`
	Sim     yamlSim     `yaml:"sim"`
}

type yamlBattery struct {
	Low      float32 `yaml:"low"`
	Critical float32 `yaml:"critical"`
	Spike    float32 `yaml:"spike"`
	Full     float32 `yaml:"full"`
	Empty    float32 `yaml:"empty"`
}

type yamlSim struct {
	Scale int      `yaml:"scale"`
	Lever *int     `yaml:"lever"`
	Volts *float32 `yaml:"volts"`
	Debug bool     `yaml:"debug"`
}

// Load reads a settings file. If path is empty or the file does not exist, the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read settings file: %w", err)
	}
	return Parse(raw)
}

// Parse applies YAML on top of the defaults. Out of range values are ignored.
func Parse(raw []byte) (Config, error) {
	cfg := Default()
	var f yamlFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return cfg, fmt.Errorf("parse settings yaml: %w", err)
	}
	if err := apply(&cfg, f); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the settings that a file can express.
func Save(path string, cfg Config) error {
	s := cfg.Settings
	lever := int(cfg.Sim.Lever)
	volts := cfg.Sim.Volts
	difficulty := s.PongDifficulty
	f := yamlFile{
		TickMillis:      int(s.TickInterval / time.Millisecond),
		Flip:            &s.Flip,
		IdleSeconds:     int(s.IdleInterval / time.Second),
		MessageChance:   &s.MessageChance,
		TimerStep:       s.TimerStep,
		TimerMax:        s.TimerMax,
		TimerLow:        &s.TimerLow,
		AlarmMillis:     int(s.AlarmInterval / time.Millisecond),
		AlarmArm:        &s.AlarmArm,
		PongDifficulty:  &difficulty,
		PongRounds:      s.PongRounds,
		LeverThreshold:  int(s.LeverThreshold),
		DecisionClear:   s.DecisionClear.String(),
		DecisionSeconds: int(s.DecisionTimeout / time.Second),
		Battery: yamlBattery{
			Low:      s.BatteryLow,
			Critical: s.BatteryCritical,
			Spike:    s.BatterySpike,
			Full:     s.BatteryFull,
			Empty:    s.BatteryEmpty,
		},
		Sim: yamlSim{
			Scale: cfg.Sim.Scale,
			Lever: &lever,
			Volts: &volts,
			Debug: cfg.Sim.Debug,
		},
	}

	out, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func apply(cfg *Config, f yamlFile) error {
	s := cfg.Settings
	if f.TickMillis >= 5 && f.TickMillis <= 1000 {
		s.TickInterval = time.Duration(f.TickMillis) * time.Millisecond
	}
	if f.Flip != nil {
		s.Flip = *f.Flip
	}
	if f.IdleSeconds > 0 {
		s.IdleInterval = time.Duration(f.IdleSeconds) * time.Second
	}
	if f.MessageChance != nil && *f.MessageChance >= 0 && *f.MessageChance <= 1000 {
		s.MessageChance = *f.MessageChance
	}
	if f.TimerMax > 0 && f.TimerMax <= 5999 {
		s.TimerMax = f.TimerMax
	}
	if f.TimerStep > 0 && f.TimerStep <= s.TimerMax {
		s.TimerStep = f.TimerStep
	}
	if f.TimerLow != nil && *f.TimerLow >= 0 && *f.TimerLow <= s.TimerMax {
		s.TimerLow = *f.TimerLow
	}
	if f.AlarmMillis >= 100 {
		s.AlarmInterval = time.Duration(f.AlarmMillis) * time.Millisecond
	}
	if f.AlarmArm != nil {
		s.AlarmArm = *f.AlarmArm
	}
	if f.PongDifficulty != nil && *f.PongDifficulty >= 0 && *f.PongDifficulty <= s.PongMaxDifficulty {
		s.PongDifficulty = *f.PongDifficulty
	}
	if f.PongRounds >= 1 && f.PongRounds <= s.PongMaxRounds {
		s.PongRounds = f.PongRounds
	}
	if f.LeverThreshold > 0 && f.LeverThreshold < 100 {
		s.LeverThreshold = uint8(f.LeverThreshold)
	}
	switch f.DecisionClear {
	case "":
	case deskbuddy.ClearOnPress.String():
		s.DecisionClear = deskbuddy.ClearOnPress
	case deskbuddy.ClearOnTimeout.String():
		s.DecisionClear = deskbuddy.ClearOnTimeout
	default:
		return fmt.Errorf("decision_clear: unknown policy %q", f.DecisionClear)
	}
	if f.DecisionSeconds > 0 {
		s.DecisionTimeout = time.Duration(f.DecisionSeconds) * time.Second
	}

	b := f.Battery
	if b.Low > 0 {
		s.BatteryLow = b.Low
	}
	if b.Critical > 0 {
		s.BatteryCritical = b.Critical
	}
	if b.Spike > 0 {
		s.BatterySpike = b.Spike
	}
	if b.Full > 0 {
		s.BatteryFull = b.Full
	}
	if b.Empty > 0 {
		s.BatteryEmpty = b.Empty
	}
	if s.BatteryCritical > s.BatteryLow {
		return errors.New("battery: critical must not be above low")
	}
	if s.BatteryEmpty >= s.BatteryFull {
		return errors.New("battery: empty must be below full")
	}

	if f.Sim.Scale >= 1 && f.Sim.Scale <= 16 {
		cfg.Sim.Scale = f.Sim.Scale
	}
	if f.Sim.Lever != nil && *f.Sim.Lever >= 0 && *f.Sim.Lever <= 100 {
		cfg.Sim.Lever = uint8(*f.Sim.Lever)
	}
	if f.Sim.Volts != nil && *f.Sim.Volts >= 0 {
		cfg.Sim.Volts = *f.Sim.Volts
	}
	cfg.Sim.Debug = f.Sim.Debug
	return nil
}
