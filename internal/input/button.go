package input

// DefaultDebounceMillis is the minimum time between two accepted button samples.
const DefaultDebounceMillis = 50

// Debouncer turns raw active-low button levels into single press events.
//
// Time is a free-running millisecond counter that is allowed to wrap; all comparisons use unsigned subtraction so the
// wrap is harmless.
type Debouncer struct {
	window    uint32
	lastCheck uint32
	lastLevel bool
}

// NewDebouncer creates a debouncer with the given refractory window. The button is assumed released (high).
func NewDebouncer(windowMillis uint32) *Debouncer {
	return &Debouncer{
		window:    windowMillis,
		lastLevel: true,
	}
}

// Pressed samples the button. It returns true at most once per physical press: on the first high-to-low transition
// seen after the refractory window has elapsed since the previous sample.
func (d *Debouncer) Pressed(nowMillis uint32, level bool) bool {
	if nowMillis-d.lastCheck <= d.window {
		return false
	}
	d.lastCheck = nowMillis

	if !level && d.lastLevel {
		d.lastLevel = false
		return true
	}
	d.lastLevel = level
	return false
}
