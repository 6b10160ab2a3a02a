package steering

import (
	"math"

	"github.com/golang/geo/r2"
)

const (
	// AheadCosine is cos(45°), the default half-cone for IsAhead
	AheadCosine = math.Sqrt2 / 2
	// BehindCosine is -cos(45°), the default half-cone for IsBehind
	BehindCosine = -math.Sqrt2 / 2
)

// StoppingDistance estimates how far the vehicle travels before coming to rest
// under full reverse thrust: from v² = u² - 2as with v = 0, s = u² / 2a.
// A vehicle without reverse thrust never stops, so the result is +Inf.
func StoppingDistance(v Vehicle) float64 {
	a := v.MaxReverseThrust()
	if a <= 0 {
		return math.Inf(1)
	}
	vel := v.Velocity()
	return vel.Dot(vel) / (2 * a)
}

// EstimatePosition extrapolates m linearly over elapsed time units
func EstimatePosition(m Mover, elapsed float64) r2.Point {
	return m.Position().Add(m.Velocity().Mul(elapsed))
}

// IsAhead reports whether target lies within 45° of the vehicle's facing
func IsAhead(v Vehicle, target r2.Point) bool {
	return IsAheadWithin(v, target, AheadCosine)
}

// IsAheadWithin reports whether the facing·bearing cosine exceeds cosineThreshold
func IsAheadWithin(v Vehicle, target r2.Point, cosineThreshold float64) bool {
	return bearingCosine(v, target) > cosineThreshold
}

// IsBehind reports whether target lies within 45° of straight behind the vehicle
func IsBehind(v Vehicle, target r2.Point) bool {
	return IsBehindWithin(v, target, BehindCosine)
}

// IsBehindWithin reports whether the facing·bearing cosine is below cosineThreshold
func IsBehindWithin(v Vehicle, target r2.Point, cosineThreshold float64) bool {
	return bearingCosine(v, target) < cosineThreshold
}

func bearingCosine(v Vehicle, target r2.Point) float64 {
	bearing := target.Sub(v.Position()).Normalize()
	return v.Direction().Dot(bearing)
}
