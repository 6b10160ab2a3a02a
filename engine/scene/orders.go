package scene

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/1siamBot/steer-engine/engine/core"
)

// Selected returns the first selected vehicle, or 0
func Selected(w *core.World) core.EntityID {
	for _, id := range w.Query(core.CompSelectable, core.CompBody) {
		if w.Get(id, core.CompSelectable).(*core.Selectable).Selected {
			return id
		}
	}
	return 0
}

// SelectNext moves the selection to the vehicle after the current one, wrapping
// around. Returns the new selection, or 0 when there is nothing to select.
func SelectNext(w *core.World) core.EntityID {
	ids := w.Query(core.CompSelectable, core.CompBody)
	if len(ids) == 0 {
		return 0
	}
	next := 0
	for i, id := range ids {
		sel := w.Get(id, core.CompSelectable).(*core.Selectable)
		if sel.Selected {
			next = (i + 1) % len(ids)
		}
		sel.Selected = false
	}
	w.Get(ids[next], core.CompSelectable).(*core.Selectable).Selected = true
	return ids[next]
}

// NearestVehicle returns the vehicle closest to p other than exclude
func NearestVehicle(w *core.World, p r2.Point, exclude core.EntityID) (core.EntityID, bool) {
	var best core.EntityID
	bestDist := math.Inf(1)
	for _, id := range w.Query(core.CompBody, core.CompDrive) {
		if id == exclude {
			continue
		}
		d := w.Get(id, core.CompBody).(*core.Body).Pos.Sub(p).Norm()
		if d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, best != 0
}

// IssueOrder gives vehicle id an order at point p. Pursue, evade and intercept
// target the vehicle nearest p. Returns false when the order could not be given.
func IssueOrder(w *core.World, bus *core.EventBus, id core.EntityID, kind core.OrderKind, p r2.Point) bool {
	beh, ok := w.Get(id, core.CompBehavior).(*core.Behavior)
	if !ok {
		return false
	}
	if kind.Targeted() {
		target, found := NearestVehicle(w, p, id)
		if !found {
			return false
		}
		beh.IssueTarget(kind, target)
	} else {
		beh.Issue(kind, p)
	}
	bus.Emit(core.Event{Type: core.EvtOrderIssued, Tick: w.TickCount, Entity: id, Payload: kind})
	return true
}

// SetAvoidance turns obstacle avoidance on or off for every vehicle
func SetAvoidance(w *core.World, on bool) {
	for _, id := range w.Query(core.CompBehavior) {
		w.Get(id, core.CompBehavior).(*core.Behavior).Avoid = on
	}
}
