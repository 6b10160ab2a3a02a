package steering

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Objective labels carried by commands for debugging
const (
	ObjectiveNone       = "No steering"
	ObjectiveSeek       = "Seek"
	ObjectiveFlee       = "Flee"
	ObjectivePursue     = "Pursue"
	ObjectiveEvade      = "Evade"
	ObjectiveIntercept  = "Intercept"
	ObjectiveAvoid      = "Avoid obstacle"
	ObjectiveArrive     = "Arrive at"
	ObjectiveArriveSeek = "Arrive at: seek"
)

// Command is one frame of steering output: how far to turn and how hard to thrust.
// Only Rotation and Thrust are meant to be applied; the rest is for introspection.
type Command struct {
	Objective string

	// Target is the point the command is steering for, when there is one
	Target    r2.Point
	HasTarget bool

	// Force is the raw steering force and Heading its normalized direction
	Force   r2.Point
	Heading r2.Point

	Rotation float64 // radians, already clamped to the vehicle's turn rate
	Thrust   float64 // negative means reverse thrust or braking
}

// NoSteering tells the caller to do nothing this frame
var NoSteering = Command{
	Objective: ObjectiveNone,
	Rotation:  math.NaN(),
	Thrust:    math.NaN(),
}

// Valid reports whether both rotation and thrust are defined. NaN inputs anywhere
// upstream surface here rather than as errors.
func (c Command) Valid() bool {
	return !math.IsNaN(c.Rotation) && !math.IsNaN(c.Thrust)
}

// IsNoSteering reports whether c is the "do nothing" sentinel
func (c Command) IsNoSteering() bool {
	return c.Objective == ObjectiveNone && math.IsNaN(c.Rotation) && math.IsNaN(c.Thrust)
}

func (c Command) String() string {
	return fmt.Sprintf("steering:[rotation:%.2f thrust:%.2f]  - %s", c.Rotation, c.Thrust, c.Objective)
}
