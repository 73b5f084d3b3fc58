package engine

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/vec"
)

// Params configures a Simulation. Zero values for G and Softening select the
// defaults; TrailLimit 0 keeps the full position history.
type Params struct {
	Dt         float64
	G          float64
	Softening  float64
	TrailLimit int
}

// Simulation owns the body list exclusively and advances it one fixed dt at
// a time with a velocity Verlet scheme. It knows nothing about wall-clock
// time or rendering; callers decide how often Step runs.
//
// Not safe for concurrent use.
type Simulation struct {
	bodies     []Body
	trails     [][]vec.Vec2
	dt         float64
	g          float64
	softening  float64
	trailLimit int
	t          float64
	steps      int
}

func New(bodies []Body, p Params) (*Simulation, error) {
	if p.Dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %f", p.Dt)
	}
	if len(bodies) == 0 {
		return nil, fmt.Errorf("at least one body required")
	}
	for i, b := range bodies {
		if b.Mass <= 0 {
			return nil, fmt.Errorf("body %d: mass must be positive, got %f", i, b.Mass)
		}
	}
	if p.G == 0 {
		p.G = DefaultG
	}
	if p.Softening == 0 {
		p.Softening = DefaultSoftening
	}

	s := &Simulation{
		bodies:     make([]Body, len(bodies)),
		trails:     make([][]vec.Vec2, len(bodies)),
		dt:         p.Dt,
		g:          p.G,
		softening:  p.Softening,
		trailLimit: p.TrailLimit,
	}
	copy(s.bodies, bodies)
	return s, nil
}

// Step advances every body by exactly one dt.
//
// All positions are finalized before accelerations are recomputed, so no
// body sees another's half-updated position. Each body's trail gains exactly
// one entry per step, after its position for the step is final.
func (s *Simulation) Step() {
	accOld := Accelerations(s.bodies, s.g, s.softening)
	dt := s.dt

	for i := range s.bodies {
		b := &s.bodies[i]
		b.Position = b.Position.
			Add(b.Velocity.Scale(dt)).
			Add(accOld[i].Scale(0.5 * dt * dt))
	}

	accNew := Accelerations(s.bodies, s.g, s.softening)

	halfDt := 0.5 * dt
	for i := range s.bodies {
		b := &s.bodies[i]
		b.Velocity = b.Velocity.Add(accOld[i].Add(accNew[i]).Scale(halfDt))
		s.appendTrail(i, b.Position)
	}

	s.t += dt
	s.steps++
}

func (s *Simulation) appendTrail(i int, pos vec.Vec2) {
	s.trails[i] = append(s.trails[i], pos)
	if s.trailLimit > 0 && len(s.trails[i]) > s.trailLimit {
		s.trails[i] = s.trails[i][1:]
	}
}

// Bodies returns a copy of the current body list; the engine remains the
// sole mutator of its own state.
func (s *Simulation) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

func (s *Simulation) Body(i int) Body { return s.bodies[i] }

func (s *Simulation) Len() int { return len(s.bodies) }

// Trail returns body i's recorded positions, oldest first. The slice is
// shared with the engine and only valid until the next Step.
func (s *Simulation) Trail(i int) []vec.Vec2 { return s.trails[i] }

func (s *Simulation) Dt() float64   { return s.dt }
func (s *Simulation) Time() float64 { return s.t }
func (s *Simulation) Steps() int    { return s.steps }

// Energy returns total mechanical energy. The pair potential uses the same
// softening floor as the force computation so the two stay consistent.
func (s *Simulation) Energy() float64 {
	ke := 0.0
	pe := 0.0
	for i := range s.bodies {
		bi := s.bodies[i]
		ke += 0.5 * bi.Mass * bi.Velocity.Dot(bi.Velocity)
		for j := i + 1; j < len(s.bodies); j++ {
			bj := s.bodies[j]
			r := bi.Position.Distance(bj.Position)
			if r < s.softening {
				r = s.softening
			}
			pe -= s.g * bi.Mass * bj.Mass / r
		}
	}
	return ke + pe
}

func (s *Simulation) Momentum() vec.Vec2 {
	var p vec.Vec2
	for _, b := range s.bodies {
		p = p.Add(b.Velocity.Scale(b.Mass))
	}
	return p
}

func (s *Simulation) AngularMomentum() float64 {
	L := 0.0
	for _, b := range s.bodies {
		L += b.Mass * (b.Position.X*b.Velocity.Y - b.Position.Y*b.Velocity.X)
	}
	return L
}

// Clone returns an independent deep copy, trails included.
func (s *Simulation) Clone() *Simulation {
	c := &Simulation{
		bodies:     make([]Body, len(s.bodies)),
		trails:     make([][]vec.Vec2, len(s.trails)),
		dt:         s.dt,
		g:          s.g,
		softening:  s.softening,
		trailLimit: s.trailLimit,
		t:          s.t,
		steps:      s.steps,
	}
	copy(c.bodies, s.bodies)
	for i, tr := range s.trails {
		c.trails[i] = make([]vec.Vec2, len(tr))
		copy(c.trails[i], tr)
	}
	return c
}
