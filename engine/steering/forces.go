package steering

import "github.com/golang/geo/r2"

const (
	// PredictionTime is how far ahead (time units) Pursue extrapolates the quarry
	PredictionTime = 1.0
	// HeadOnCosine is the velocity cosine below which pursuit falls back to a plain seek
	HeadOnCosine = -0.5
)

// Seek returns the unnormalized displacement from position to target
func Seek(position, target r2.Point) r2.Point {
	return target.Sub(position)
}

// Flee returns the displacement pointing directly away from target
func Flee(position, target r2.Point) r2.Point {
	return Seek(position, target).Mul(-1)
}

// Pursue steers vehicle toward where quarry will be PredictionTime from now.
// When the two are closing head-on the interception point is unstable, so the
// quarry's current position is sought instead.
func Pursue(vehicle, quarry Mover) r2.Point {
	parallel := quarry.Velocity().Normalize().Dot(vehicle.Velocity().Normalize())
	if parallel < HeadOnCosine {
		return Seek(vehicle.Position(), quarry.Position())
	}

	// TODO: scale the prediction horizon with distance to the quarry
	predicted := quarry.Position().Add(quarry.Velocity().Mul(PredictionTime))
	return Seek(vehicle.Position(), predicted)
}

// Evade is the mirror of Pursue: it flees the pursuer's predicted position
func Evade(vehicle, pursuer Mover) r2.Point {
	return Pursue(vehicle, pursuer).Mul(-1)
}
