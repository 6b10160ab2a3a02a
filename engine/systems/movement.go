package systems

import (
	"math"

	"github.com/1siamBot/steer-engine/engine/core"
	"github.com/1siamBot/steer-engine/engine/vmath"
)

// MovementSystem integrates vehicles from their pilot's last command
type MovementSystem struct{}

func (s *MovementSystem) Priority() int { return 10 }

func (s *MovementSystem) Update(w *core.World, dt float64) {
	ids := w.Query(core.CompBody, core.CompDrive)
	for _, id := range ids {
		body := w.Get(id, core.CompBody).(*core.Body)
		drive := w.Get(id, core.CompDrive).(*core.Drive)

		if pilot, ok := w.Get(id, core.CompPilot).(*core.Pilot); ok {
			Apply(body, pilot.Command.Rotation, pilot.Command.Thrust)
		}
		Integrate(body, drive, dt)
	}
}

// Apply turns the body by rotation and adds thrust along the new facing. NaN
// commands are ignored and the body coasts.
func Apply(body *core.Body, rotation, thrust float64) {
	if math.IsNaN(rotation) || math.IsNaN(thrust) {
		return
	}
	dir := vmath.Rotate(body.Dir, rotation)
	if n := dir.Norm(); n >= vmath.LengthEpsilon {
		// keep unit length against drift
		dir = dir.Mul(1 / n)
	}
	body.Dir = dir
	body.Vel = body.Vel.Add(dir.Mul(thrust))
}

// Integrate applies drag and the speed limit, then moves the body
func Integrate(body *core.Body, drive *core.Drive, dt float64) {
	if drive.Drag > 0 {
		body.Vel = body.Vel.Mul(math.Max(0, 1-drive.Drag*dt))
	}
	if drive.MaxSpeed > 0 {
		body.Vel = vmath.ClampLength(body.Vel, drive.MaxSpeed)
	}
	body.Pos = body.Pos.Add(body.Vel.Mul(dt))
}
