package clock

import (
	"testing"
	"time"
)

func TestAdvance(t *testing.T) {
	tests := []struct {
		name    string
		dt      float64
		speed   float64
		elapsed time.Duration
		steps   int
	}{
		{"single step", 0.01, 1, 12 * time.Millisecond, 1},
		{"multiple steps", 0.01, 1, 35 * time.Millisecond, 3},
		{"below one step", 0.01, 1, 5 * time.Millisecond, 0},
		{"speed multiplier", 0.01, 500, 1050 * time.Microsecond, 52},
		{"zero elapsed", 0.01, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.dt, tt.speed)
			if got := a.Advance(tt.elapsed); got != tt.steps {
				t.Errorf("Advance(%v) = %d steps, want %d", tt.elapsed, got, tt.steps)
			}
			if a.Remaining() >= tt.dt {
				t.Errorf("Remaining() = %f, want < dt %f", a.Remaining(), tt.dt)
			}
		})
	}
}

func TestAdvanceCarriesRemainder(t *testing.T) {
	a := New(0.01, 1)

	if got := a.Advance(7 * time.Millisecond); got != 0 {
		t.Fatalf("first Advance = %d steps, want 0", got)
	}
	if got := a.Advance(7 * time.Millisecond); got != 1 {
		t.Errorf("second Advance = %d steps, want 1", got)
	}
}

func TestDefaultSpeed(t *testing.T) {
	a := New(0.01, 0)
	if a.Speed() != DefaultSpeed {
		t.Errorf("Speed() = %f, want %f", a.Speed(), DefaultSpeed)
	}

	a.SetSpeed(-1)
	if a.Speed() != DefaultSpeed {
		t.Error("SetSpeed accepted a non-positive speed")
	}

	a.SetSpeed(250)
	if a.Speed() != 250 {
		t.Errorf("Speed() = %f after SetSpeed(250)", a.Speed())
	}
}

func TestReset(t *testing.T) {
	a := New(0.01, 1)
	a.Advance(5 * time.Millisecond)
	if a.Remaining() == 0 {
		t.Fatal("expected banked time before reset")
	}
	a.Reset()
	if a.Remaining() != 0 {
		t.Error("Reset did not clear banked time")
	}
}
