package input

// Lever converts raw potentiometer samples into a 0..100 reading with light exponential smoothing.
type Lever struct {
	min, max uint16
	// weight of the newest sample in percent; 100 disables smoothing
	weight uint32

	value  uint32 // percent * 100
	primed bool
}

// NewLever creates a lever for raw samples spanning [min, max]. Samples outside the range are clamped.
func NewLever(min, max uint16, weightPercent uint8) *Lever {
	if max <= min {
		max = min + 1
	}
	if weightPercent == 0 || weightPercent > 100 {
		weightPercent = 100
	}
	return &Lever{
		min:    min,
		max:    max,
		weight: uint32(weightPercent),
	}
}

// Update feeds a raw sample and returns the smoothed reading.
func (l *Lever) Update(raw uint16) uint8 {
	pct := uint32(Scale(raw, l.min, l.max)) * 100
	if !l.primed {
		l.value = pct
		l.primed = true
	} else {
		l.value = (pct*l.weight + l.value*(100-l.weight)) / 100
	}
	return l.Value()
}

// Value is the last smoothed reading, rounded to the nearest percent.
func (l *Lever) Value() uint8 {
	return uint8((l.value + 50) / 100)
}

// Scale linearly remaps raw from [min, max] to [0, 100], clamping at both ends.
func Scale(raw, min, max uint16) uint8 {
	if raw <= min {
		return 0
	}
	if raw >= max {
		return 100
	}
	return uint8(uint32(raw-min) * 100 / uint32(max-min))
}
