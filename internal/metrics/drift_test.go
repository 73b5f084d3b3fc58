package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/vec"
)

func TestDrift(t *testing.T) {
	d := NewDrift()

	d.Observe(-100)
	if d.Value() != 0 {
		t.Errorf("drift after first observation = %f, want 0", d.Value())
	}

	d.Observe(-99)
	if math.Abs(d.Value()-0.01) > 1e-12 {
		t.Errorf("drift = %f, want 0.01", d.Value())
	}

	// a later, smaller deviation must not lower the max
	d.Observe(-100)
	if math.Abs(d.Value()-0.01) > 1e-12 {
		t.Errorf("drift = %f after return to initial, want 0.01", d.Value())
	}
}

func TestDriftZeroInitial(t *testing.T) {
	d := NewDrift()
	d.Observe(0)
	d.Observe(5)
	if d.Value() != 0 {
		t.Errorf("drift with zero initial = %f, want 0", d.Value())
	}
}

func TestDriftReset(t *testing.T) {
	d := NewDrift()
	d.Observe(10)
	d.Observe(20)
	if d.Value() == 0 {
		t.Fatal("expected non-zero drift")
	}

	d.Reset()
	if d.Value() != 0 || d.Samples() != 0 {
		t.Error("reset did not clear tracker")
	}

	d.Observe(50)
	if d.Value() != 0 {
		t.Error("first observation after reset should anchor a new baseline")
	}
}

func TestMomentum(t *testing.T) {
	m := NewMomentum()

	m.Observe(vec.Vec2{X: 0, Y: 20})
	if m.Value() != 0 {
		t.Errorf("deviation after first observation = %f, want 0", m.Value())
	}

	m.Observe(vec.Vec2{X: 3, Y: 24})
	if math.Abs(m.Value()-5) > 1e-12 {
		t.Errorf("deviation = %f, want 5", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear tracker")
	}
}
