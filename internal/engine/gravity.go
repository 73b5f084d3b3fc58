package engine

import (
	"math"

	"github.com/san-kum/orbitsim/internal/vec"
)

const (
	DefaultG         = 1.0
	DefaultSoftening = 0.1
)

// Accelerations computes the net gravitational acceleration on every body
// from all the others. Pairwise O(N²); the result is ordered like the input
// and the input is not mutated.
//
// The separation is floored at softening before the inverse-square term, so
// each pairwise contribution is bounded by g*m/softening² even for
// coincident bodies. Two bodies at exactly the same point contribute
// nothing to each other (zero direction vector).
func Accelerations(bodies []Body, g, softening float64) []vec.Vec2 {
	acc := make([]vec.Vec2, len(bodies))
	for i := range bodies {
		for j := range bodies {
			if i == j {
				continue
			}
			diff := bodies[j].Position.Sub(bodies[i].Position)
			dist := math.Max(diff.Magnitude(), softening)
			acc[i] = acc[i].Add(diff.Normalize().Scale(g * bodies[j].Mass / (dist * dist)))
		}
	}
	return acc
}
