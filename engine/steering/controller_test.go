package steering

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/steer-engine/engine/vmath"
)

func TestRotationPreference_AlignedThrustsForward(t *testing.T) {
	v := newTestVehicle()
	c := NewRotationPreference(DefaultNonRotationWindow)

	cmd := c.Command(v, "test", r2.Point{Y: 50}, 0.5)

	assert.Equal(t, "test", cmd.Objective)
	assert.Equal(t, 0.0, cmd.Rotation)
	assert.InDelta(t, v.thrust*0.5, cmd.Thrust, 1e-12)
	assert.Equal(t, r2.Point{Y: 50}, cmd.Force)
	assert.InDelta(t, 1.0, cmd.Heading.Y, 1e-12)
	assert.False(t, cmd.HasTarget)
}

func TestRotationPreference_RotationIsClamped(t *testing.T) {
	v := newTestVehicle()
	v.rate = 2
	c := NewRotationPreference(DefaultNonRotationWindow)

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		force := r2.Point{X: rng.NormFloat64(), Y: rng.NormFloat64()}
		elapsed := rng.Float64()*0.5 + 1e-3

		cmd := c.Command(v, "clamp", force, elapsed)
		assert.LessOrEqual(t, math.Abs(cmd.Rotation), v.rate*elapsed+1e-12, "case %d", i)

		// the sign always follows the desired turn
		want := vmath.SignedAngleBetween(v.dir, force)
		if want != 0 {
			assert.Equal(t, math.Signbit(want), math.Signbit(cmd.Rotation), "case %d", i)
		}
	}
}

func TestRotationPreference_SmallErrorIsNotClamped(t *testing.T) {
	v := newTestVehicle()
	c := NewRotationPreference(DefaultNonRotationWindow)

	force := vmath.Rotate(v.dir, vmath.Rad(5))
	cmd := c.Command(v, "small", force, 1)
	assert.InDelta(t, vmath.Rad(5), cmd.Rotation, 1e-9)
	assert.Greater(t, cmd.Thrust, 0.0)
}

func TestRotationPreference_NoThrustOutsideWindow(t *testing.T) {
	v := newTestVehicle()
	c := NewRotationPreference(DefaultNonRotationWindow)

	for _, deg := range []float64{16, 30, 90, 120, 164, -16, -90, -170} {
		force := vmath.Rotate(v.dir, vmath.Rad(deg))
		cmd := c.Command(v, "turn", force, 1)
		assert.Equal(t, 0.0, cmd.Thrust, "%v degrees", deg)
		assert.NotEqual(t, 0.0, cmd.Rotation, "%v degrees", deg)
	}
}

func TestRotationPreference_WindowScalesWithElapsed(t *testing.T) {
	v := newTestVehicle()
	c := NewRotationPreference(DefaultNonRotationWindow)
	force := vmath.Rotate(v.dir, vmath.Rad(10))

	// 10° is inside 15°×1 but outside 15°×0.5
	assert.Greater(t, c.Command(v, "w", force, 1).Thrust, 0.0)
	assert.Equal(t, 0.0, c.Command(v, "w", force, 0.5).Thrust)
}

func TestRotationPreference_WindowEdge(t *testing.T) {
	v := newTestVehicle()
	force := vmath.Rotate(v.dir, vmath.Rad(12))
	rotation := vmath.SignedAngleBetween(v.dir, force)
	require.Greater(t, rotation, 0.0)

	// a window exactly equal to the error is not enough
	edge := NewRotationPreference(rotation)
	assert.Equal(t, 0.0, edge.Command(v, "edge", force, 1).Thrust)

	inside := NewRotationPreference(math.Nextafter(rotation, math.Inf(1)))
	assert.Greater(t, inside.Command(v, "edge", force, 1).Thrust, 0.0)
}

func TestRotationPreference_NearlyReversedUsesReverseThrust(t *testing.T) {
	v := newTestVehicle()
	v.reverse = 0.5
	c := NewRotationPreference(DefaultNonRotationWindow)

	force := vmath.Rotate(v.dir, vmath.Rad(175))
	cmd := c.Command(v, "reverse", force, 1)

	// |rotation - π| is inside the window, and the anti-parallel dot selects reverse thrust
	assert.InDelta(t, math.Cos(vmath.Rad(175))*v.reverse, cmd.Thrust, 1e-9)
	assert.Less(t, cmd.Thrust, 0.0)
}

func TestRotationPreference_ExactlyReversed(t *testing.T) {
	v := newTestVehicle()
	c := NewRotationPreference(DefaultNonRotationWindow)

	cmd := c.Command(v, "reverse", r2.Point{Y: -10}, 1)
	// +π, clamped to the turn rate
	assert.InDelta(t, v.rate, cmd.Rotation, 1e-12)
	assert.InDelta(t, -v.reverse, cmd.Thrust, 1e-12)
}

func TestRotationPreference_ZeroForce(t *testing.T) {
	v := newTestVehicle()
	c := NewRotationPreference(DefaultNonRotationWindow)

	cmd := c.Command(v, "zero", r2.Point{}, 1)
	assert.True(t, cmd.Valid())
	assert.Equal(t, 0.0, cmd.Rotation)
	assert.Equal(t, 0.0, cmd.Thrust)
	assert.Equal(t, r2.Point{}, cmd.Heading)
}

func TestRotationPreference_ArrivalBrakesWhenTooFast(t *testing.T) {
	v := newTestVehicle()
	v.vel = r2.Point{Y: 10}
	v.maxSpeed, v.hasMaxSpeed = 10, true
	c := NewRotationPreference(DefaultNonRotationWindow)

	// ramped speed is 10 × 20/50 = 4, closing speed 10
	cmd := c.Arrival(v, 20, 50, r2.Point{Y: 20}, 0.1)
	assert.Equal(t, ObjectiveArrive, cmd.Objective)
	assert.Equal(t, BrakeThrust, cmd.Thrust)
}

func TestRotationPreference_ArrivalKeepsBaselineWhenSlow(t *testing.T) {
	v := newTestVehicle()
	v.vel = r2.Point{Y: 1}
	v.maxSpeed, v.hasMaxSpeed = 10, true
	c := NewRotationPreference(DefaultNonRotationWindow)

	cmd := c.Arrival(v, 20, 50, r2.Point{Y: 20}, 0.1)
	baseline := c.Command(v, ObjectiveArrive, r2.Point{Y: 20}, 0.1)
	assert.Equal(t, baseline, cmd)
	assert.Greater(t, cmd.Thrust, 0.0)
}

func TestRotationPreference_ArrivalWithoutMaxSpeedNeverBrakes(t *testing.T) {
	v := newTestVehicle()
	v.vel = r2.Point{Y: 100}
	c := NewRotationPreference(DefaultNonRotationWindow)

	cmd := c.Arrival(v, 1, 50, r2.Point{Y: 1}, 0.1)
	assert.NotEqual(t, BrakeThrust, cmd.Thrust)
	assert.Greater(t, cmd.Thrust, 0.0)
}

func TestRotationPreference_ArrivalAtRest(t *testing.T) {
	v := newTestVehicle()
	v.maxSpeed, v.hasMaxSpeed = 10, true
	c := NewRotationPreference(DefaultNonRotationWindow)

	// 0/0 ramp is NaN and must not trigger braking
	cmd := c.Arrival(v, 0, 0, r2.Point{}, 0.1)
	assert.True(t, cmd.Valid())
	assert.Equal(t, 0.0, cmd.Thrust)
}
