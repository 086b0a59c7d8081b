package input

import "testing"

func TestRotaryReadAndClear(t *testing.T) {
	var r Rotary
	if got := r.Take(); got != 0 {
		t.Fatalf("idle Take() = %d, want 0", got)
	}

	r.Push(true)
	if got := r.Take(); got != 1 {
		t.Errorf("Take() = %d, want 1", got)
	}
	if got := r.Take(); got != 0 {
		t.Errorf("second Take() = %d, want 0", got)
	}

	r.Push(false)
	if got := r.Take(); got != -1 {
		t.Errorf("Take() = %d, want -1", got)
	}
}

func TestRotaryEdgeDirection(t *testing.T) {
	tests := []struct {
		clk, dt bool
		want    int
	}{
		{true, false, 1},
		{false, true, 1},
		{true, true, -1},
		{false, false, -1},
	}
	for _, tt := range tests {
		var r Rotary
		r.Edge(tt.clk, tt.dt)
		if got := r.Take(); got != tt.want {
			t.Errorf("Edge(%v, %v) -> %d, want %d", tt.clk, tt.dt, got, tt.want)
		}
	}
}

func TestRotaryOverwrite(t *testing.T) {
	var r Rotary
	r.Push(true)
	r.Push(false)
	if got := r.Take(); got != -1 {
		t.Errorf("Take() = %d, want latest direction -1", got)
	}
	if got := r.Take(); got != 0 {
		t.Errorf("Take() = %d, want 0", got)
	}
}

func TestDebouncerSinglePress(t *testing.T) {
	d := NewDebouncer(DefaultDebounceMillis)
	now := uint32(1000)

	if d.Pressed(now, true) {
		t.Fatal("released button reported a press")
	}
	now += 60
	if !d.Pressed(now, false) {
		t.Fatal("press not detected")
	}
	// held down: no repeat
	for i := 0; i < 10; i++ {
		now += 60
		if d.Pressed(now, false) {
			t.Fatal("held button reported another press")
		}
	}
	now += 60
	d.Pressed(now, true)
	now += 60
	if !d.Pressed(now, false) {
		t.Fatal("second press not detected")
	}
}

func TestDebouncerRefractory(t *testing.T) {
	d := NewDebouncer(50)
	d.Pressed(100, true)
	if d.Pressed(120, false) {
		t.Error("sample inside the window must be ignored")
	}
	if d.Pressed(150, false) {
		t.Error("sample exactly at the window edge must be ignored")
	}
	if !d.Pressed(151, false) {
		t.Error("sample after the window should register")
	}
}

func TestDebouncerWraps(t *testing.T) {
	d := NewDebouncer(50)
	start := ^uint32(0) - 20
	d.Pressed(start, true)
	// 40ms later, counter has wrapped
	if d.Pressed(start+40, false) {
		t.Error("wrapped sample inside the window must be ignored")
	}
	if !d.Pressed(start+80, false) {
		t.Error("wrapped sample after the window should register")
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		raw, min, max uint16
		want          uint8
	}{
		{0, 0, 4095, 0},
		{4095, 0, 4095, 100},
		{2048, 0, 4095, 50},
		{100, 200, 4095, 0},
		{65535, 0, 4095, 100},
		{32768, 0, 65535, 50},
	}
	for _, tt := range tests {
		if got := Scale(tt.raw, tt.min, tt.max); got != tt.want {
			t.Errorf("Scale(%d, %d, %d) = %d, want %d", tt.raw, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestLeverSmoothing(t *testing.T) {
	l := NewLever(0, 1000, 30)
	if got := l.Update(1000); got != 100 {
		t.Fatalf("first sample should prime the filter, got %d", got)
	}
	got := l.Update(0)
	if got != 70 {
		t.Errorf("Update(0) = %d, want 70", got)
	}
	for i := 0; i < 50; i++ {
		got = l.Update(0)
	}
	if got != 0 {
		t.Errorf("settled value = %d, want 0", got)
	}
}

func TestLeverNoSmoothing(t *testing.T) {
	l := NewLever(0, 100, 0)
	l.Update(100)
	if got := l.Update(25); got != 25 {
		t.Errorf("Update(25) = %d, want 25", got)
	}
}
