package systems

import (
	"github.com/golang/geo/r2"

	"github.com/1siamBot/steer-engine/engine/core"
)

func spawnVehicle(w *core.World, pos, dir r2.Point, beh core.Behavior) core.EntityID {
	id := w.Spawn()
	w.Attach(id, &core.Body{Pos: pos, Dir: dir, Radius: 2})
	w.Attach(id, &core.Drive{RotationRate: 3, MaxThrust: 20, MaxReverseThrust: 10, MaxSpeed: 100})
	w.Attach(id, &beh)
	return id
}

func spawnObstacle(w *core.World, pos r2.Point, r float64) core.EntityID {
	id := w.Spawn()
	w.Attach(id, &core.Obstacle{Pos: pos, R: r})
	return id
}

func collect(bus *core.EventBus, t core.EventType) *[]core.Event {
	var events []core.Event
	bus.On(t, func(e core.Event) { events = append(events, e) })
	return &events
}
