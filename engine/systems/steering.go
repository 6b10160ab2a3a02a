package systems

import (
	"github.com/golang/geo/r2"
	"github.com/rs/zerolog"

	"github.com/1siamBot/steer-engine/engine/core"
	"github.com/1siamBot/steer-engine/engine/steering"
)

const (
	// DefaultArriveTolerance is how close counts as arrived, in world units
	DefaultArriveTolerance = 4.0
	// DefaultSettleSpeed is the speed below which an arriving vehicle counts as stopped
	DefaultSettleSpeed = 2.0
	// DefaultDetectionMs is the avoidance look-ahead used when a behaviour sets none
	DefaultDetectionMs = 500.0
)

// SteeringSystem turns each vehicle's standing order into a steering command and
// stores it in the vehicle's Pilot
type SteeringSystem struct {
	EventBus *core.EventBus
	Config   steering.Config
	Detector steering.PotentialCollisionDetector
	Metrics  *Metrics
	Log      zerolog.Logger

	ArriveTolerance float64
	SettleSpeed     float64
}

// NewSteeringSystem creates a system with the default arrival thresholds
func NewSteeringSystem(cfg steering.Config, detector steering.PotentialCollisionDetector, bus *core.EventBus) *SteeringSystem {
	return &SteeringSystem{
		EventBus:        bus,
		Config:          cfg,
		Detector:        detector,
		Log:             zerolog.Nop(),
		ArriveTolerance: DefaultArriveTolerance,
		SettleSpeed:     DefaultSettleSpeed,
	}
}

func (s *SteeringSystem) Priority() int { return 5 }

func (s *SteeringSystem) Update(w *core.World, dt float64) {
	obstacleIDs := w.Query(core.CompObstacle)
	obstacles := make([]steering.Obstacle, len(obstacleIDs))
	byObstacle := make(map[steering.Obstacle]core.EntityID, len(obstacleIDs))
	for i, id := range obstacleIDs {
		o := w.Get(id, core.CompObstacle).(*core.Obstacle)
		obstacles[i] = o
		byObstacle[o] = id
	}

	ids := w.Query(core.CompBody, core.CompDrive, core.CompBehavior)
	for _, id := range ids {
		body := w.Get(id, core.CompBody).(*core.Body)
		drive := w.Get(id, core.CompDrive).(*core.Drive)
		beh := w.Get(id, core.CompBehavior).(*core.Behavior)

		log := s.Log.With().Uint64("entity", uint64(id)).Logger()
		var hit steering.Obstacle
		opts := []steering.Option{steering.WithLogger(log)}
		if s.Detector != nil {
			opts = append(opts, steering.WithDetector(steering.DetectorFunc(
				func(v steering.Vehicle, obstacles []steering.Obstacle, period float64) steering.Obstacle {
					hit = s.Detector.FindNearestPotentialCollision(v, obstacles, period)
					return hit
				})))
		}
		st := steering.New(core.VehicleOf(body, drive), s.Config, opts...)

		cmd := steering.NoSteering
		avoiding := false
		if beh.Avoid && beh.Order != core.OrderIdle && s.Detector != nil {
			period := beh.DetectionMs
			if period <= 0 {
				period = DefaultDetectionMs
			}
			cmd = st.AvoidObstacles(obstacles, period, dt)
			if cmd.Valid() {
				avoiding = true
				s.Metrics.potentialCollision()
				s.EventBus.Emit(core.Event{
					Type:    core.EvtPotentialCollision,
					Tick:    w.TickCount,
					Entity:  id,
					Payload: core.CollisionPayload{Obstacle: byObstacle[hit]},
				})
			}
		}
		if !avoiding {
			cmd = s.follow(w, st, beh, log, dt)
		}

		pilot, ok := w.Get(id, core.CompPilot).(*core.Pilot)
		if !ok {
			pilot = &core.Pilot{}
			w.Attach(id, pilot)
		}
		pilot.Command = cmd
		pilot.Avoiding = avoiding

		if cmd.IsNoSteering() {
			continue
		}
		s.Metrics.command(cmd.Objective)
		if !cmd.Valid() {
			s.Metrics.invalidCommand(cmd.Objective)
			log.Debug().Str("command", cmd.String()).Msg("invalid steering command")
			s.EventBus.Emit(core.Event{Type: core.EvtCommandInvalid, Tick: w.TickCount, Entity: id, Payload: cmd})
			continue
		}
		log.Trace().Str("command", cmd.String()).Msg("steering")

		if beh.Order == core.OrderArrive && s.settled(body, beh.Point) {
			beh.Order = core.OrderIdle
			beh.Arrived = true
			s.Metrics.arrival()
			log.Debug().Str("target", beh.Point.String()).Msg("arrived")
			s.EventBus.Emit(core.Event{Type: core.EvtArrived, Tick: w.TickCount, Entity: id, Payload: beh.Point})
		}
	}
	s.Metrics.steered(len(ids))
}

// follow computes the command for the standing order
func (s *SteeringSystem) follow(w *core.World, st *steering.Steering, beh *core.Behavior, log zerolog.Logger, dt float64) steering.Command {
	if beh.Order.Targeted() {
		target, ok := w.Get(beh.TargetEntity, core.CompBody).(*core.Body)
		if !ok {
			log.Debug().Uint64("target", uint64(beh.TargetEntity)).Msg("order target gone, idling")
			beh.Order = core.OrderIdle
			return steering.NoSteering
		}
		quarry := core.MoverOf(target)
		switch beh.Order {
		case core.OrderPursue:
			return st.Pursue(quarry, dt)
		case core.OrderEvade:
			return st.Evade(quarry, dt)
		default:
			return st.Intercept(quarry, dt)
		}
	}

	switch beh.Order {
	case core.OrderSeek:
		return st.SeekTo(beh.Point, dt)
	case core.OrderFlee:
		return st.Flee(beh.Point, dt)
	case core.OrderArrive:
		return st.ArriveAt(beh.Point, dt)
	default:
		return steering.NoSteering
	}
}

func (s *SteeringSystem) settled(body *core.Body, target r2.Point) bool {
	return body.Pos.Sub(target).Norm() < s.ArriveTolerance && body.Speed() < s.SettleSpeed
}
