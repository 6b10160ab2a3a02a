// Package vmath holds the 2D vector and angle helpers shared by the steering core.
// Vectors are github.com/golang/geo/r2 points.
//
// Angle sign convention: a positive angle turns +X toward -Y. In a y-down screen
// space that is a visually counter-clockwise turn. SignedAngleBetween and Rotate
// agree on it, so a rotation produced by one is undone by the other.
package vmath

import (
	"math"

	"github.com/golang/geo/r2"
)

const (
	// AngleEpsilon is the smallest unsigned angle (radians) reported as a turn
	AngleEpsilon = 1e-4
	// LengthEpsilon is the length below which a vector has no usable direction
	LengthEpsilon = 1e-9
)

// Zero is the zero vector
var Zero = r2.Point{}

// V is shorthand for r2.Point{X: x, Y: y}
func V(x, y float64) r2.Point { return r2.Point{X: x, Y: y} }

// SignedAngleBetween returns the angle in (-π, π] that turns v1 into v2 along the
// shorter path. Near-parallel pairs and zero-length inputs return exactly 0.
func SignedAngleBetween(v1, v2 r2.Point) float64 {
	if v1.Norm() < LengthEpsilon || v2.Norm() < LengthEpsilon {
		return 0
	}
	u1 := v1.Normalize()
	u2 := v2.Normalize()

	angle := math.Acos(clampUnit(u1.Dot(u2)))
	if math.Abs(angle) < AngleEpsilon {
		return 0
	}

	// Sign from the cross term of the unit vectors. Exactly anti-parallel pairs
	// have no preferred side and resolve to +π.
	side := u1.Y*u2.X - u2.Y*u1.X
	if side < 0 {
		return -angle
	}
	return angle
}

// NearlyEqual reports whether v1 and v2 are strictly closer than margin
func NearlyEqual(v1, v2 r2.Point, margin float64) bool {
	return v1.Sub(v2).Norm() < margin
}

// Rotate turns v by angle radians using the package sign convention
func Rotate(v r2.Point, angle float64) r2.Point {
	s, c := math.Sincos(angle)
	return r2.Point{
		X: v.X*c + v.Y*s,
		Y: -v.X*s + v.Y*c,
	}
}

// FromAngle returns the unit vector at theta radians measured from +X in the
// package sign convention (FromAngle(π/2) is (0, -1))
func FromAngle(theta float64) r2.Point {
	return Rotate(r2.Point{X: 1}, theta)
}

// Heading returns the angle of v from +X, the inverse of FromAngle
func Heading(v r2.Point) float64 {
	return math.Atan2(-v.Y, v.X)
}

// ClampLength limits v to maxLen while preserving direction
func ClampLength(v r2.Point, maxLen float64) r2.Point {
	l := v.Norm()
	if l <= maxLen || l == 0 {
		return v
	}
	return v.Mul(maxLen / l)
}

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Rad converts degrees to radians
func Rad(deg float64) float64 { return deg * math.Pi / 180 }

// Deg converts radians to degrees
func Deg(rad float64) float64 { return rad * 180 / math.Pi }

// IsFinite reports whether both components are neither NaN nor infinite
func IsFinite(v r2.Point) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// clampUnit guards acos against dot products drifting just past ±1
func clampUnit(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	return Clamp(x, -1, 1)
}
