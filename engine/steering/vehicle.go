package steering

import "github.com/golang/geo/r2"

// Mover is anything with a position and a velocity
type Mover interface {
	Position() r2.Point
	Velocity() r2.Point
}

// Obstacle is a circular region to keep clear of
type Obstacle interface {
	Position() r2.Point
	Radius() float64
}

// Vehicle is the read-only view of a steerable body. Implementations must return
// a consistent snapshot for the duration of one steering call; the steering code
// never writes back to them.
type Vehicle interface {
	Mover
	Obstacle

	// Direction is the facing as a unit vector
	Direction() r2.Point
	// RotationRate is the turn speed in radians per time unit
	RotationRate() float64
	MaxThrust() float64
	MaxReverseThrust() float64
	// MaxSpeed returns false when the vehicle has no speed limit
	MaxSpeed() (float64, bool)
}

// PotentialCollisionDetector finds the nearest obstacle a vehicle would hit within
// detectionPeriod milliseconds on its current trajectory, or nil when the path is
// clear.
type PotentialCollisionDetector interface {
	FindNearestPotentialCollision(v Vehicle, obstacles []Obstacle, detectionPeriod float64) Obstacle
}

// DetectorFunc adapts a plain function to PotentialCollisionDetector
type DetectorFunc func(v Vehicle, obstacles []Obstacle, detectionPeriod float64) Obstacle

func (f DetectorFunc) FindNearestPotentialCollision(v Vehicle, obstacles []Obstacle, detectionPeriod float64) Obstacle {
	return f(v, obstacles, detectionPeriod)
}

// moverAt is a Mover pinned to an explicit position, used for extrapolated states
type moverAt struct {
	pos, vel r2.Point
}

func (m moverAt) Position() r2.Point { return m.pos }
func (m moverAt) Velocity() r2.Point { return m.vel }
