package steering

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/1siamBot/steer-engine/engine/vmath"
)

const (
	// DefaultNonRotationWindow is 15° in radians
	DefaultNonRotationWindow = 15 * math.Pi / 180
	// BrakeThrust is the fixed thrust applied when arriving too fast
	BrakeThrust = -0.01
)

// Controller turns a steering force into a bounded command for one vehicle
type Controller interface {
	Command(v Vehicle, objective string, force r2.Point, elapsed float64) Command
	// Arrival is used once the vehicle is inside its stopping distance of the target
	Arrival(v Vehicle, distance, stopping float64, force r2.Point, elapsed float64) Command
}

// RotationPreference is a Controller that turns first and thrusts later: thrust
// only engages once the vehicle faces the force (or its exact opposite) to within
// Window radians per time unit.
type RotationPreference struct {
	Window float64
}

// NewRotationPreference creates a controller with the given non-rotation window in radians
func NewRotationPreference(window float64) *RotationPreference {
	return &RotationPreference{Window: window}
}

func (c *RotationPreference) Command(v Vehicle, objective string, force r2.Point, elapsed float64) Command {
	dir := v.Direction()

	rotation := vmath.SignedAngleBetween(dir, force)
	maxRotation := v.RotationRate() * elapsed
	clamped := rotation
	if math.Abs(rotation) > maxRotation {
		clamped = vmath.Clamp(rotation, -maxRotation, maxRotation)
	}

	heading := force.Normalize()

	// The window is checked on the unclamped error. The second test lets a vehicle
	// pointing almost exactly away from the force thrust too.
	thrust := 0.0
	window := c.Window * elapsed
	if math.Abs(rotation) < window || math.Abs(rotation-math.Pi) < window {
		// 1 parallel, 0 perpendicular, -1 anti-parallel
		parallel := dir.Dot(heading)
		thrust = parallel
		if parallel > 0 {
			thrust *= v.MaxThrust()
		} else {
			thrust *= v.MaxReverseThrust()
		}
		thrust *= elapsed
	}

	return Command{
		Objective: objective,
		Force:     force,
		Heading:   heading,
		Rotation:  clamped,
		Thrust:    thrust,
	}
}

// Arrival ramps the allowed approach speed down linearly with the remaining
// distance and brakes whenever the vehicle closes faster than that. Braking needs
// a max speed; a vehicle without one never brakes here.
func (c *RotationPreference) Arrival(v Vehicle, distance, stopping float64, force r2.Point, elapsed float64) Command {
	cmd := c.Command(v, ObjectiveArrive, force, elapsed)

	maxSpeed, ok := v.MaxSpeed()
	if !ok {
		return cmd
	}

	ramped := maxSpeed * distance / stopping
	if v.Velocity().Dot(force.Normalize()) > ramped {
		cmd.Thrust = BrakeThrust
	}
	return cmd
}
