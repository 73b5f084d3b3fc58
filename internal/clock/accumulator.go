// Package clock converts wall-clock time into whole fixed-size simulation
// steps. It belongs to the driving layer: the engine itself never sees
// elapsed real time, only Step invocations.
package clock

import "time"

const DefaultSpeed = 500.0

// Accumulator banks elapsed wall-clock time, scaled by a speed multiplier,
// and pays it out as whole dt-sized steps. Leftover time under one dt is
// carried into the next frame, so a slow frame catches up with extra steps
// and a fast frame may produce none.
type Accumulator struct {
	dt    float64
	speed float64
	acc   float64
}

func New(dt, speed float64) *Accumulator {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Accumulator{dt: dt, speed: speed}
}

// Advance banks elapsed real time and returns the number of whole steps now
// due. The remainder stays banked.
func (a *Accumulator) Advance(elapsed time.Duration) int {
	a.acc += elapsed.Seconds() * a.speed
	steps := 0
	for a.acc >= a.dt {
		a.acc -= a.dt
		steps++
	}
	return steps
}

// Remaining reports banked simulation time not yet converted into a step.
// Always less than dt after an Advance call.
func (a *Accumulator) Remaining() float64 { return a.acc }

func (a *Accumulator) Speed() float64 { return a.speed }

func (a *Accumulator) SetSpeed(speed float64) {
	if speed > 0 {
		a.speed = speed
	}
}

// Reset drops any banked time.
func (a *Accumulator) Reset() { a.acc = 0 }
