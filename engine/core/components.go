package core

import (
	"github.com/golang/geo/r2"

	"github.com/1siamBot/steer-engine/engine/steering"
)

// ---- Body & Drive ----

// Body is the physical state of a moving entity
type Body struct {
	Pos    r2.Point
	Vel    r2.Point // world units per second
	Dir    r2.Point // unit facing
	Radius float64
}

func (b *Body) Type() ComponentType { return CompBody }

// Speed returns the length of the velocity
func (b *Body) Speed() float64 { return b.Vel.Norm() }

// Drive describes what a vehicle's engine can do
type Drive struct {
	RotationRate     float64 // radians per second
	MaxThrust        float64 // speed gained per second at full thrust
	MaxReverseThrust float64
	MaxSpeed         float64 // 0 means unlimited
	Drag             float64 // fraction of velocity lost per second
}

func (d *Drive) Type() ComponentType { return CompDrive }

// VehicleOf returns a steering view of body and drive. The values are copied, so
// the result stays consistent while systems mutate the components.
func VehicleOf(b *Body, d *Drive) steering.Vehicle {
	return vehicle{body: *b, drive: *d}
}

type vehicle struct {
	body  Body
	drive Drive
}

func (v vehicle) Position() r2.Point        { return v.body.Pos }
func (v vehicle) Velocity() r2.Point        { return v.body.Vel }
func (v vehicle) Direction() r2.Point       { return v.body.Dir }
func (v vehicle) Radius() float64           { return v.body.Radius }
func (v vehicle) RotationRate() float64     { return v.drive.RotationRate }
func (v vehicle) MaxThrust() float64        { return v.drive.MaxThrust }
func (v vehicle) MaxReverseThrust() float64 { return v.drive.MaxReverseThrust }

func (v vehicle) MaxSpeed() (float64, bool) {
	if v.drive.MaxSpeed <= 0 {
		return 0, false
	}
	return v.drive.MaxSpeed, true
}

// MoverOf returns a position and velocity snapshot of b
func MoverOf(b *Body) steering.Mover {
	return vehicle{body: *b}
}

// ---- Obstacles ----

// Obstacle is a static circle vehicles steer around
type Obstacle struct {
	Pos r2.Point
	R   float64
}

func (o *Obstacle) Type() ComponentType { return CompObstacle }
func (o *Obstacle) Position() r2.Point  { return o.Pos }
func (o *Obstacle) Radius() float64     { return o.R }

// ---- Orders ----

// OrderKind is what a vehicle has been told to do
type OrderKind uint8

const (
	OrderIdle OrderKind = iota
	OrderSeek
	OrderFlee
	OrderArrive
	OrderPursue
	OrderEvade
	OrderIntercept
)

var orderNames = [...]string{"idle", "seek", "flee", "arrive", "pursue", "evade", "intercept"}

func (k OrderKind) String() string {
	if int(k) < len(orderNames) {
		return orderNames[k]
	}
	return "unknown"
}

// Targeted reports whether the order chases another entity rather than a point
func (k OrderKind) Targeted() bool {
	return k == OrderPursue || k == OrderEvade || k == OrderIntercept
}

// Behavior is the standing order of a vehicle
type Behavior struct {
	Order        OrderKind
	Point        r2.Point // for point orders
	TargetEntity EntityID // for pursue/evade/intercept
	Avoid        bool     // run obstacle avoidance before the order
	DetectionMs  float64  // avoidance look-ahead in milliseconds
	Arrived      bool
}

func (b *Behavior) Type() ComponentType { return CompBehavior }

// Issue replaces the current order with a point order
func (b *Behavior) Issue(kind OrderKind, p r2.Point) {
	b.Order = kind
	b.Point = p
	b.TargetEntity = 0
	b.Arrived = false
}

// IssueTarget replaces the current order with an entity order
func (b *Behavior) IssueTarget(kind OrderKind, target EntityID) {
	b.Order = kind
	b.TargetEntity = target
	b.Arrived = false
}

// Pilot holds the last steering command computed for a vehicle
type Pilot struct {
	Command  steering.Command
	Avoiding bool
}

func (p *Pilot) Type() ComponentType { return CompPilot }

// ---- Selection ----

// Selectable marks entities the player can pick
type Selectable struct {
	Selected bool
}

func (s *Selectable) Type() ComponentType { return CompSelectable }
