// Package scene builds the demo world and turns player input into vehicle orders.
package scene

import (
	"math"
	"math/rand/v2"

	"github.com/golang/geo/r2"

	"github.com/1siamBot/steer-engine/engine/config"
	"github.com/1siamBot/steer-engine/engine/core"
	"github.com/1siamBot/steer-engine/engine/vmath"
)

const (
	// VehicleRadius is the radius of every demo vehicle
	VehicleRadius = 8.0
	// Margin keeps spawns away from the world edge
	Margin = 40.0

	minObstacleRadius = 15.0
	maxObstacleRadius = 45.0
	placementAttempts = 50
)

// Populate spawns cfg.Demo.Obstacles obstacles and cfg.Demo.Vehicles vehicles in
// a world of cfg.Demo.Width × cfg.Demo.Height. Placement only depends on
// cfg.Demo.Seed. Returns the vehicle IDs in spawn order; the first is selected.
func Populate(w *core.World, bus *core.EventBus, cfg config.Config) []core.EntityID {
	rng := rand.New(rand.NewPCG(uint64(cfg.Demo.Seed), uint64(cfg.Demo.Seed)))
	bounds := r2.RectFromPoints(
		r2.Point{X: Margin, Y: Margin},
		r2.Point{X: float64(cfg.Demo.Width) - Margin, Y: float64(cfg.Demo.Height) - Margin},
	)

	var placed []core.Obstacle
	for i := 0; i < cfg.Demo.Obstacles; i++ {
		r := minObstacleRadius + rng.Float64()*(maxObstacleRadius-minObstacleRadius)
		p, ok := place(rng, bounds, placed, r)
		if !ok {
			continue
		}
		o := core.Obstacle{Pos: p, R: r}
		placed = append(placed, o)
		id := w.Spawn()
		w.Attach(id, &o)
	}

	vehicles := make([]core.EntityID, 0, cfg.Demo.Vehicles)
	for i := 0; i < cfg.Demo.Vehicles; i++ {
		p, ok := place(rng, bounds, placed, VehicleRadius)
		if !ok {
			continue
		}
		placed = append(placed, core.Obstacle{Pos: p, R: VehicleRadius})

		id := w.Spawn()
		w.Attach(id, &core.Body{
			Pos:    p,
			Dir:    vmath.FromAngle(rng.Float64() * 2 * math.Pi),
			Radius: VehicleRadius,
		})
		w.Attach(id, &core.Drive{
			RotationRate:     2.5 + rng.Float64()*1.5,
			MaxThrust:        80 + rng.Float64()*60,
			MaxReverseThrust: 40 + rng.Float64()*40,
			MaxSpeed:         120 + rng.Float64()*80,
			Drag:             0.3,
		})
		w.Attach(id, &core.Behavior{Avoid: true, DetectionMs: cfg.Tuning.DetectionPeriodMs})
		w.Attach(id, &core.Pilot{})
		w.Attach(id, &core.Selectable{Selected: len(vehicles) == 0})
		vehicles = append(vehicles, id)
		bus.Emit(core.Event{Type: core.EvtVehicleSpawned, Tick: w.TickCount, Entity: id})
	}
	return vehicles
}

// place finds a point in bounds where a circle of radius r clears everything
// already placed
func place(rng *rand.Rand, bounds r2.Rect, placed []core.Obstacle, r float64) (r2.Point, bool) {
	for attempt := 0; attempt < placementAttempts; attempt++ {
		p := r2.Point{
			X: bounds.X.Lo + rng.Float64()*bounds.X.Length(),
			Y: bounds.Y.Lo + rng.Float64()*bounds.Y.Length(),
		}
		clear := true
		for _, o := range placed {
			if p.Sub(o.Pos).Norm() < o.R+r+VehicleRadius*2 {
				clear = false
				break
			}
		}
		if clear {
			return p, true
		}
	}
	return r2.Point{}, false
}
