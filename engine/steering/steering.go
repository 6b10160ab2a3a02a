package steering

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/rs/zerolog"

	"github.com/1siamBot/steer-engine/engine/vmath"
)

// Steering computes per-frame commands for a single vehicle. It holds no state
// between calls: every operation is a function of the vehicle snapshot and its
// arguments, so one Steering per vehicle may be used from any goroutine as long
// as the vehicle itself is safe to read.
type Steering struct {
	vehicle  Vehicle
	ctrl     Controller
	detector PotentialCollisionDetector
	cfg      Config
	log      zerolog.Logger
}

// Option configures a Steering at construction
type Option func(*Steering)

// WithController replaces the rotation-preference controller
func WithController(c Controller) Option {
	return func(s *Steering) { s.ctrl = c }
}

// WithDetector enables AvoidObstacles
func WithDetector(d PotentialCollisionDetector) Option {
	return func(s *Steering) { s.detector = d }
}

// WithLogger sets the trace logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Steering) { s.log = l }
}

// New creates steering for v. Unless overridden the controller is a
// RotationPreference using cfg.NonRotationWindow.
func New(v Vehicle, cfg Config, opts ...Option) *Steering {
	s := &Steering{
		vehicle: v,
		cfg:     cfg,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ctrl == nil {
		s.ctrl = NewRotationPreference(cfg.NonRotationWindow)
	}
	return s
}

// Vehicle returns the steered vehicle
func (s *Steering) Vehicle() Vehicle { return s.vehicle }

// Config returns the construction-time configuration
func (s *Steering) Config() Config { return s.cfg }

// SeekTo steers toward a fixed point
func (s *Steering) SeekTo(target r2.Point, elapsed float64) Command {
	est := EstimatePosition(s.vehicle, elapsed)
	cmd := s.ctrl.Command(s.vehicle, ObjectiveSeek, Seek(est, target), elapsed)
	return withTarget(cmd, target)
}

// Flee steers directly away from a fixed point
func (s *Steering) Flee(target r2.Point, elapsed float64) Command {
	est := EstimatePosition(s.vehicle, elapsed)
	cmd := s.ctrl.Command(s.vehicle, ObjectiveFlee, Flee(est, target), elapsed)
	return withTarget(cmd, target)
}

// Pursue steers toward where target will be after elapsed
func (s *Steering) Pursue(target Mover, elapsed float64) Command {
	est := EstimatePosition(s.vehicle, elapsed)
	estTarget := EstimatePosition(target, elapsed)
	cmd := s.ctrl.Command(s.vehicle, ObjectivePursue, Seek(est, estTarget), elapsed)
	return withTarget(cmd, estTarget)
}

// Evade steers away from where target will be after elapsed
func (s *Steering) Evade(target Mover, elapsed float64) Command {
	est := EstimatePosition(s.vehicle, elapsed)
	estTarget := EstimatePosition(target, elapsed)
	cmd := s.ctrl.Command(s.vehicle, ObjectiveEvade, Flee(est, estTarget), elapsed)
	return withTarget(cmd, estTarget)
}

// Intercept runs the predictive Pursue strategy from the vehicle's estimated
// position, falling back to a direct seek when closing head-on
func (s *Steering) Intercept(quarry Mover, elapsed float64) Command {
	self := moverAt{pos: EstimatePosition(s.vehicle, elapsed), vel: s.vehicle.Velocity()}
	force := Pursue(self, quarry)
	cmd := s.ctrl.Command(s.vehicle, ObjectiveIntercept, force, elapsed)
	return withTarget(cmd, self.pos.Add(force))
}

// MinEscapeMargin keeps the escape point off the contact circle when the vehicle
// radius or the avoidance factor leaves no margin of its own.
const MinEscapeMargin = 1e-3

// AvoidObstacles steers around the nearest obstacle the detector reports on the
// vehicle's path within detectionPeriod milliseconds. The escape point sits beside
// the obstacle, perpendicular to the vehicle's facing, leaving
// AvoidanceFactor × vehicle radius clear of its edge. Returns NoSteering when
// nothing is in the way or no detector is configured.
func (s *Steering) AvoidObstacles(obstacles []Obstacle, detectionPeriod, elapsed float64) Command {
	if s.detector == nil {
		return NoSteering
	}
	nearest := s.detector.FindNearestPotentialCollision(s.vehicle, obstacles, detectionPeriod)
	if nearest == nil {
		return NoSteering
	}

	offset := s.vehicle.Position().Sub(nearest.Position())
	side := escapeDirection(offset, s.vehicle.Direction())
	margin := max(s.vehicle.Radius()*(s.cfg.AvoidanceFactor-1), MinEscapeMargin)
	clearance := nearest.Radius() + s.vehicle.Radius() + margin
	escape := nearest.Position().Add(side.Mul(clearance))

	s.log.Trace().
		Str("obstacle", nearest.Position().String()).
		Str("escape", escape.String()).
		Msg("avoiding potential collision")

	est := EstimatePosition(s.vehicle, elapsed)
	cmd := s.ctrl.Command(s.vehicle, ObjectiveAvoid, Seek(est, escape), elapsed)
	return withTarget(cmd, escape)
}

// ArriveAt seeks target and brakes on the final approach. Outside the stopping
// distance, or when the vehicle has no reverse thrust, this is a plain seek; inside it the controller's arrival profile takes
// over. Nothing carries over between frames.
func (s *Steering) ArriveAt(target r2.Point, elapsed float64) Command {
	est := EstimatePosition(s.vehicle, elapsed)
	distance := target.Sub(est).Norm()
	stopping := StoppingDistance(s.vehicle)
	force := Seek(est, target)

	// no reverse thrust means no braking profile: keep seeking
	if math.IsInf(stopping, 1) || distance > stopping {
		cmd := s.ctrl.Command(s.vehicle, ObjectiveArriveSeek, force, elapsed)
		return withTarget(cmd, target)
	}

	cmd := s.ctrl.Arrival(s.vehicle, distance, stopping, force, elapsed)
	s.log.Trace().
		Float64("distance", distance).
		Float64("stopping", stopping).
		Float64("thrust", cmd.Thrust).
		Msg("arrival braking")
	return withTarget(cmd, target)
}

// escapeDirection returns the unit component of offset perpendicular to dir.
// When the vehicle is heading straight at the obstacle centre there is no
// perpendicular component, so it picks dir rotated a quarter turn.
func escapeDirection(offset, dir r2.Point) r2.Point {
	parallel := dir.Mul(offset.Dot(dir))
	perpendicular := offset.Sub(parallel)
	if perpendicular.Norm() >= vmath.LengthEpsilon {
		return perpendicular.Normalize()
	}
	if side := vmath.Rotate(dir, math.Pi/2); side.Norm() >= vmath.LengthEpsilon {
		return side.Normalize()
	}
	if offset.Norm() >= vmath.LengthEpsilon {
		return offset.Normalize()
	}
	return r2.Point{X: 1}
}

func withTarget(cmd Command, target r2.Point) Command {
	cmd.Target = target
	cmd.HasTarget = true
	return cmd
}
