package engine

import "github.com/san-kum/orbitsim/internal/vec"

// Body is a point mass. Mass must be positive and never changes after the
// simulation is constructed. Anything visual (color, marker, label) belongs
// to the renderer, keyed by the body's index.
type Body struct {
	Position vec.Vec2
	Velocity vec.Vec2
	Mass     float64
}
