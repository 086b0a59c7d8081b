// Package input holds the sampling logic shared by every hardware driver: rotary encoder edge latching, push button
// debouncing and lever (potentiometer) scaling.
package input

import "sync/atomic"

// Rotary latches a single encoder step between an edge interrupt and the main loop.
//
// It is a single-producer/single-consumer flag pair: the interrupt handler is the only writer of both flags and the
// main loop is the only reader. The handler stores the direction before raising the pending flag; the reader clears
// the pending flag before reading the direction, so a step is reported at most once. Steps that arrive before the
// previous one was consumed overwrite it.
type Rotary struct {
	pending   atomic.Bool
	clockwise atomic.Bool
}

// Edge is called from the CLK pin-change interrupt with the current levels of both encoder pins.
func (r *Rotary) Edge(clk, dt bool) {
	r.Push(clk != dt)
}

// Push latches one step in the given direction. It is safe to call from interrupt context.
func (r *Rotary) Push(clockwise bool) {
	r.clockwise.Store(clockwise)
	r.pending.Store(true)
}

// Take returns the latched step (+1 clockwise, -1 counter-clockwise) and clears it, or 0 when nothing is pending.
func (r *Rotary) Take() int {
	if !r.pending.Swap(false) {
		return 0
	}
	if r.clockwise.Load() {
		return 1
	}
	return -1
}
