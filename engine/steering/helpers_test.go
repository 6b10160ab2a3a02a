package steering

import "github.com/golang/geo/r2"

type testVehicle struct {
	pos, vel, dir r2.Point
	rate          float64
	thrust        float64
	reverse       float64
	radius        float64
	maxSpeed      float64
	hasMaxSpeed   bool
}

func (v *testVehicle) Position() r2.Point        { return v.pos }
func (v *testVehicle) Velocity() r2.Point        { return v.vel }
func (v *testVehicle) Direction() r2.Point       { return v.dir }
func (v *testVehicle) Radius() float64           { return v.radius }
func (v *testVehicle) RotationRate() float64     { return v.rate }
func (v *testVehicle) MaxThrust() float64        { return v.thrust }
func (v *testVehicle) MaxReverseThrust() float64 { return v.reverse }
func (v *testVehicle) MaxSpeed() (float64, bool) { return v.maxSpeed, v.hasMaxSpeed }

// newTestVehicle is at rest at the origin facing +Y
func newTestVehicle() *testVehicle {
	return &testVehicle{
		dir:     r2.Point{Y: 1},
		rate:    3,
		thrust:  2,
		reverse: 1,
		radius:  2,
	}
}

type testObstacle struct {
	pos    r2.Point
	radius float64
}

func (o testObstacle) Position() r2.Point { return o.pos }
func (o testObstacle) Radius() float64    { return o.radius }

type testMover struct {
	pos, vel r2.Point
}

func (m testMover) Position() r2.Point { return m.pos }
func (m testMover) Velocity() r2.Point { return m.vel }

// fixedDetector always reports the same obstacle and counts calls
type fixedDetector struct {
	hit   Obstacle
	calls int
}

func (d *fixedDetector) FindNearestPotentialCollision(Vehicle, []Obstacle, float64) Obstacle {
	d.calls++
	return d.hit
}
