package vmath

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
)

func TestSignedAngleBetween_Literals(t *testing.T) {
	tests := []struct {
		name   string
		v1, v2 r2.Point
		deg    float64
	}{
		{"same vector", V(0, 1), V(0, 1), 0},
		{"right angle r1 cw", V(1, 0), V(0, -1), 90},
		{"right angle r2 cw", V(0, -1), V(-1, 0), 90},
		{"right angle r3 cw", V(-1, 0), V(0, 1), 90},
		{"right angle r4 cw", V(0, 1), V(1, 0), 90},
		{"right angle r1 ccw", V(1, 0), V(0, 1), -90},
		{"right angle r2 ccw", V(0, 1), V(-1, 0), -90},
		{"right angle r3 ccw", V(-1, 0), V(0, -1), -90},
		{"right angle r4 ccw", V(0, -1), V(1, 0), -90},
		{"180 degrees", V(0, 1), V(0, -1), 180},
		{"45 degrees", V(0, 1), V(1, 1), 45},
		{"135 degrees", V(0, 1), V(-1, -1), -135},
		{"unnormalized input", V(0, 5), V(3, 3), 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deg(SignedAngleBetween(tt.v1, tt.v2))
			assert.InDelta(t, tt.deg, got, 0.001, "%v -> %v", tt.v1, tt.v2)
		})
	}
}

func TestSignedAngleBetween_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, SignedAngleBetween(Zero, V(1, 0)))
	assert.Equal(t, 0.0, SignedAngleBetween(V(1, 0), Zero))
	// below the epsilon the sign is noise, so it must come back as exact zero
	assert.Equal(t, 0.0, SignedAngleBetween(V(1, 0), V(1, 1e-6)))
	assert.Equal(t, 0.0, SignedAngleBetween(V(1, 0), V(1, -1e-6)))
}

func TestSignedAngleBetween_NaNPropagates(t *testing.T) {
	assert.True(t, math.IsNaN(SignedAngleBetween(V(math.NaN(), 1), V(1, 0))))
}

func TestSignedAngleBetween_RangeAndAntisymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		v1 := FromAngle(rng.Float64() * 2 * math.Pi)
		v2 := FromAngle(rng.Float64() * 2 * math.Pi)

		a := SignedAngleBetween(v1, v2)
		assert.Greater(t, a, -math.Pi, "case %d", i)
		assert.LessOrEqual(t, a, math.Pi, "case %d", i)
		assert.Equal(t, 0.0, SignedAngleBetween(v1, v1), "case %d", i)

		if math.Abs(math.Abs(a)-math.Pi) > 1e-6 {
			assert.InDelta(t, -a, SignedAngleBetween(v2, v1), 1e-9, "case %d", i)
		}
	}
}

func TestRotate_MatchesSignedAngle(t *testing.T) {
	for _, deg := range []float64{-170, -90, -45, -1, 1, 30, 90, 179} {
		t.Run(fmt.Sprintf("%v", deg), func(t *testing.T) {
			v := V(0.6, 0.8)
			r := Rotate(v, Rad(deg))
			assert.InDelta(t, 1.0, r.Norm(), 1e-12)
			assert.InDelta(t, deg, Deg(SignedAngleBetween(v, r)), 1e-6)
		})
	}
}

func TestFromAngleHeading(t *testing.T) {
	up := FromAngle(math.Pi / 2)
	assert.InDelta(t, 0, up.X, 1e-12)
	assert.InDelta(t, -1, up.Y, 1e-12)

	for _, theta := range []float64{-3, -1, 0, 0.5, 2, 3} {
		assert.InDelta(t, theta, Heading(FromAngle(theta)), 1e-12)
	}
}

func TestNearlyEqual(t *testing.T) {
	assert.True(t, NearlyEqual(V(1, 1), V(1.05, 1), 0.1))
	assert.False(t, NearlyEqual(V(1, 1), V(1.1, 1), 0.05))
	// strict comparison at the margin
	assert.False(t, NearlyEqual(V(0, 0), V(3, 4), 5))
	assert.True(t, NearlyEqual(V(0, 0), V(3, 4), 5.0001))
}

func TestClampLength(t *testing.T) {
	got := ClampLength(V(3, 4), 2.5)
	assert.InDelta(t, 2.5, got.Norm(), 1e-12)
	assert.InDelta(t, 0.6, got.Normalize().X, 1e-12)
	assert.Equal(t, V(1, 1), ClampLength(V(1, 1), 10))
	assert.Equal(t, Zero, ClampLength(Zero, 0))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(V(1, -2)))
	assert.False(t, IsFinite(V(math.NaN(), 0)))
	assert.False(t, IsFinite(V(0, math.Inf(-1))))
}
