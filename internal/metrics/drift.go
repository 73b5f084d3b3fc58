// Package metrics tracks conservation quality over a run. Trackers observe
// one sample per step and report the worst deviation seen since the first
// observation.
package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/vec"
)

// Drift records the maximum relative deviation of a conserved scalar
// (typically total mechanical energy) from its first observed value.
type Drift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewDrift() *Drift {
	return &Drift{}
}

func (d *Drift) Observe(value float64) {
	if d.samples == 0 {
		d.initial = value
	}
	d.samples++

	if d.initial != 0 {
		drift := math.Abs(value-d.initial) / math.Abs(d.initial)
		d.maxDrift = math.Max(d.maxDrift, drift)
	}
}

func (d *Drift) Value() float64 { return d.maxDrift }

func (d *Drift) Samples() int { return d.samples }

func (d *Drift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}

// Momentum records the maximum absolute deviation of net linear momentum
// from its first observed value.
type Momentum struct {
	initial vec.Vec2
	maxDev  float64
	samples int
}

func NewMomentum() *Momentum {
	return &Momentum{}
}

func (m *Momentum) Observe(p vec.Vec2) {
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++

	dev := p.Sub(m.initial).Magnitude()
	m.maxDev = math.Max(m.maxDev, dev)
}

func (m *Momentum) Value() float64 { return m.maxDev }

func (m *Momentum) Reset() {
	m.initial = vec.Vec2{}
	m.maxDev = 0
	m.samples = 0
}
