package deskbuddy

// BatteryReading is refreshed by the dispatcher once per tick. Modes only read it.
type BatteryReading struct {
	Voltage         float32
	Status          SensorStatus
	IsLow           bool
	IsCriticallyLow bool
}

// Percent maps the voltage onto [empty, full], clamped to 0..100.
func (r BatteryReading) Percent(empty, full float32) uint8 {
	if full <= empty || r.Voltage <= empty {
		return 0
	}
	if r.Voltage >= full {
		return 100
	}
	return uint8((r.Voltage - empty) / (full - empty) * 100)
}

// batteryHysteresis is how far the voltage must rise past a threshold before a low or critical flag clears.
const batteryHysteresis = 0.1

// batteryMonitor filters raw voltages. A reading further than spike volts from the last accepted one is dropped.
type batteryMonitor struct {
	low, critical, spike float32

	reading BatteryReading
	seen    bool
}

func newBatteryMonitor(s *Settings) *batteryMonitor {
	return &batteryMonitor{
		low:      s.BatteryLow,
		critical: s.BatteryCritical,
		spike:    s.BatterySpike,
	}
}

// update feeds one sample and returns the current reading.
func (m *batteryMonitor) update(v float32, st SensorStatus) BatteryReading {
	switch st {
	case SensorStatusUnavailable:
		m.reading = BatteryReading{Status: SensorStatusUnavailable}
		m.seen = false
		return m.reading
	case SensorStatusBusy:
		if m.seen {
			m.reading.Status = SensorStatusAvailable
		} else {
			m.reading.Status = SensorStatusBusy
		}
		return m.reading
	}

	if m.seen {
		d := v - m.reading.Voltage
		if d > m.spike || -d > m.spike {
			return m.reading
		}
	}
	prev := m.reading
	m.seen = true
	m.reading = BatteryReading{
		Voltage:         v,
		Status:          SensorStatusAvailable,
		IsLow:           below(v, m.low, prev.IsLow),
		IsCriticallyLow: below(v, m.critical, prev.IsCriticallyLow),
	}
	return m.reading
}

// below reports whether v is at or under threshold. A flag that is already set stays set until v clears the
// threshold by batteryHysteresis.
func below(v, threshold float32, was bool) bool {
	if was {
		return v < threshold+batteryHysteresis
	}
	return v <= threshold
}
