// Package collision provides a reference steering.PotentialCollisionDetector
// that sweeps a vehicle's centre along its velocity and tests it against
// circular obstacles.
package collision

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/1siamBot/steer-engine/engine/steering"
)

// SweepDetector reports the obstacle a vehicle would touch first if it kept its
// current velocity for the detection period. Velocities are in world units per
// second and the period is in milliseconds.
type SweepDetector struct {
	// Margin widens every obstacle's radius, on top of the vehicle radius
	Margin float64
}

// NewSweepDetector creates a detector with no extra margin
func NewSweepDetector() *SweepDetector {
	return &SweepDetector{}
}

var _ steering.PotentialCollisionDetector = (*SweepDetector)(nil)

// FindNearestPotentialCollision returns the obstacle with the earliest time of
// first contact, or nil. Obstacles the vehicle already overlaps count as contact
// at time zero. Ties keep the earlier obstacle in the slice.
func (d *SweepDetector) FindNearestPotentialCollision(v steering.Vehicle, obstacles []steering.Obstacle, detectionPeriod float64) steering.Obstacle {
	if len(obstacles) == 0 {
		return nil
	}

	start := v.Position()
	sweep := v.Velocity().Mul(math.Max(detectionPeriod, 0) / 1000)
	end := start.Add(sweep)
	bounds := r2.RectFromPoints(start, end).ExpandedByMargin(v.Radius() + d.Margin)

	var nearest steering.Obstacle
	best := math.Inf(1)
	for _, o := range obstacles {
		if o == nil {
			continue
		}
		if !bounds.Intersects(obstacleBounds(o)) {
			continue
		}
		t, ok := TimeOfContact(start, sweep, o.Position(), o.Radius()+v.Radius()+d.Margin)
		if ok && t < best {
			best = t
			nearest = o
		}
	}
	return nearest
}

func obstacleBounds(o steering.Obstacle) r2.Rect {
	return r2.RectFromCenterSize(o.Position(), r2.Point{X: 2 * o.Radius(), Y: 2 * o.Radius()})
}

// TimeOfContact returns the fraction t in [0, 1] at which a point moving from
// start along sweep first comes within radius of centre. A point already inside
// returns 0.
func TimeOfContact(start, sweep, centre r2.Point, radius float64) (float64, bool) {
	rel := start.Sub(centre)
	c := rel.Dot(rel) - radius*radius
	if c <= 0 {
		return 0, true
	}

	a := sweep.Dot(sweep)
	if a == 0 {
		return 0, false
	}
	b := rel.Dot(sweep)
	if b >= 0 {
		// moving away or tangentially
		return 0, false
	}

	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	t := (-b - math.Sqrt(disc)) / a
	if t > 1 {
		return 0, false
	}
	return t, true
}
