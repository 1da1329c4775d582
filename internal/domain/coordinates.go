package domain

import "math"

// Immutable planar position on the operations grid (kilometre units).
type Coordinates struct {
	X float64
	Y float64
}

// Euclidean distance to another position, in grid units.
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	return math.Hypot(c.X-other.X, c.Y-other.Y)
}
