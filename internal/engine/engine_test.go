package engine_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/vec"
)

// The configuration the simulator ships with: a heavy central body orbited
// by two lighter ones.
func threeBodies() []engine.Body {
	return []engine.Body{
		{Position: vec.Vec2{X: -100}, Velocity: vec.Vec2{Y: 0.5}, Mass: 70},
		{Position: vec.Vec2{}, Velocity: vec.Vec2{}, Mass: 100},
		{Position: vec.Vec2{X: 100}, Velocity: vec.Vec2{Y: -0.5}, Mass: 30},
	}
}

var _ = Describe("Accelerations", func() {
	It("obeys Newton's third law for a body pair", func() {
		bodies := []engine.Body{
			{Position: vec.Vec2{X: -3, Y: 1}, Mass: 40},
			{Position: vec.Vec2{X: 5, Y: -2}, Mass: 7},
		}
		acc := engine.Accelerations(bodies, engine.DefaultG, engine.DefaultSoftening)

		f0 := acc[0].Magnitude() * bodies[0].Mass
		f1 := acc[1].Magnitude() * bodies[1].Mass
		Expect(f0).To(BeNumerically("~", f1, 1e-12))

		// opposite directions
		Expect(acc[0].Normalize().Dot(acc[1].Normalize())).To(BeNumerically("~", -1, 1e-12))
	})

	It("has no self-interaction term", func() {
		bodies := []engine.Body{{Position: vec.Vec2{X: 12, Y: -7}, Mass: 1e6}}
		acc := engine.Accelerations(bodies, engine.DefaultG, engine.DefaultSoftening)
		Expect(acc[0]).To(Equal(vec.Vec2{}))
	})

	It("stays finite for coincident bodies", func() {
		bodies := []engine.Body{
			{Position: vec.Vec2{X: 1, Y: 1}, Mass: 100},
			{Position: vec.Vec2{X: 1, Y: 1}, Mass: 100},
		}
		acc := engine.Accelerations(bodies, engine.DefaultG, engine.DefaultSoftening)

		bound := engine.DefaultG * 100 / (engine.DefaultSoftening * engine.DefaultSoftening)
		for _, a := range acc {
			Expect(math.IsNaN(a.X) || math.IsNaN(a.Y)).To(BeFalse())
			Expect(math.IsInf(a.X, 0) || math.IsInf(a.Y, 0)).To(BeFalse())
			Expect(a.Magnitude()).To(BeNumerically("<=", bound))
		}
	})

	It("caps the force magnitude below the softening distance", func() {
		bodies := []engine.Body{
			{Position: vec.Vec2{}, Mass: 100},
			{Position: vec.Vec2{X: 1e-6}, Mass: 100},
		}
		acc := engine.Accelerations(bodies, engine.DefaultG, engine.DefaultSoftening)

		bound := engine.DefaultG * 100 / (engine.DefaultSoftening * engine.DefaultSoftening)
		Expect(acc[0].Magnitude()).To(BeNumerically("~", bound, 1e-9))
		Expect(acc[1].Magnitude()).To(BeNumerically("~", bound, 1e-9))
	})
})

var _ = Describe("Simulation", func() {
	Describe("New", func() {
		It("rejects a non-positive dt", func() {
			_, err := engine.New(threeBodies(), engine.Params{Dt: 0})
			Expect(err).To(HaveOccurred())
		})

		It("rejects an empty body list", func() {
			_, err := engine.New(nil, engine.Params{Dt: 0.01})
			Expect(err).To(HaveOccurred())
		})

		It("rejects non-positive masses", func() {
			bodies := threeBodies()
			bodies[1].Mass = -5
			_, err := engine.New(bodies, engine.Params{Dt: 0.01})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Step", func() {
		It("is deterministic across independent copies", func() {
			a, err := engine.New(threeBodies(), engine.Params{Dt: 0.01})
			Expect(err).NotTo(HaveOccurred())
			b := a.Clone()

			for i := 0; i < 100; i++ {
				a.Step()
				b.Step()
			}
			Expect(a.Bodies()).To(Equal(b.Bodies()))
			Expect(a.Time()).To(Equal(b.Time()))
		})

		It("matches the closed-form velocity for a symmetric body pair", func() {
			// Two equal masses 20 apart, at rest. Both accelerations before
			// and after the position update are ~ G*100/20², so the averaged
			// kick leaves each body moving toward the other at ~ dt*G*100/20².
			bodies := []engine.Body{
				{Position: vec.Vec2{X: -10}, Mass: 100},
				{Position: vec.Vec2{X: 10}, Mass: 100},
			}
			sim, err := engine.New(bodies, engine.Params{Dt: 0.01})
			Expect(err).NotTo(HaveOccurred())
			sim.Step()

			expected := 0.01 * engine.DefaultG * 100 / (20 * 20)
			left := sim.Body(0)
			right := sim.Body(1)

			Expect(left.Velocity.X).To(BeNumerically("~", expected, 1e-6))
			Expect(left.Velocity.Y).To(BeZero())
			Expect(right.Velocity.X).To(BeNumerically("~", -expected, 1e-6))
			Expect(right.Velocity.Y).To(BeZero())
		})

		It("appends exactly one trail point per body per step", func() {
			sim, err := engine.New(threeBodies(), engine.Params{Dt: 0.01})
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 25; i++ {
				sim.Step()
			}
			for i := 0; i < sim.Len(); i++ {
				Expect(sim.Trail(i)).To(HaveLen(25))
				last := sim.Trail(i)[24]
				Expect(last).To(Equal(sim.Body(i).Position))
			}
		})

		It("honors the trail limit", func() {
			sim, err := engine.New(threeBodies(), engine.Params{Dt: 0.01, TrailLimit: 10})
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 50; i++ {
				sim.Step()
			}
			for i := 0; i < sim.Len(); i++ {
				Expect(sim.Trail(i)).To(HaveLen(10))
			}
		})
	})

	Describe("conserved quantities", func() {
		It("keeps energy drift under 1% over 10000 steps", func() {
			sim, err := engine.New(threeBodies(), engine.Params{Dt: 0.01})
			Expect(err).NotTo(HaveOccurred())

			e0 := sim.Energy()
			Expect(e0).NotTo(BeZero())

			maxDrift := 0.0
			for i := 0; i < 10000; i++ {
				sim.Step()
				drift := math.Abs(sim.Energy()-e0) / math.Abs(e0)
				if drift > maxDrift {
					maxDrift = drift
				}
			}
			Expect(maxDrift).To(BeNumerically("<", 0.01))
		})

		It("conserves linear momentum", func() {
			sim, err := engine.New(threeBodies(), engine.Params{Dt: 0.01})
			Expect(err).NotTo(HaveOccurred())

			p0 := sim.Momentum()
			for i := 0; i < 1000; i++ {
				sim.Step()
			}
			p1 := sim.Momentum()
			Expect(p1.X).To(BeNumerically("~", p0.X, 1e-9))
			Expect(p1.Y).To(BeNumerically("~", p0.Y, 1e-9))
		})
	})

	It("hands out copies of the body list", func() {
		sim, err := engine.New(threeBodies(), engine.Params{Dt: 0.01})
		Expect(err).NotTo(HaveOccurred())

		view := sim.Bodies()
		view[0].Position = vec.Vec2{X: 9999}
		Expect(sim.Body(0).Position).To(Equal(vec.Vec2{X: -100}))
	})
})
