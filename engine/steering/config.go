package steering

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure
var ErrInvalidConfig = errors.New("invalid steering config")

// Config holds the construction-time tuning of a Steering facade
type Config struct {
	// AvoidanceFactor scales the vehicle radius kept clear of an obstacle's edge;
	// 1.1 leaves a 10% margin
	AvoidanceFactor float64 `mapstructure:"avoidanceFactor"`

	// Boid distances are kept for neighbour-based strategies; no current
	// strategy reads them
	MaximumBoidDistance  float64 `mapstructure:"maximumBoidDistance"`
	MinimumBoidDistance  float64 `mapstructure:"minimumBoidDistance"`
	BoidCohesionDistance float64 `mapstructure:"boidCohesionDistance"`

	// NonRotationWindow is the controller's facing tolerance in radians
	NonRotationWindow float64 `mapstructure:"nonRotationWindow"`
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		AvoidanceFactor:      1.1,
		MaximumBoidDistance:  400,
		MinimumBoidDistance:  50,
		BoidCohesionDistance: 100,
		NonRotationWindow:    DefaultNonRotationWindow,
	}
}

// Validate checks that every value is finite and in range
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"avoidanceFactor", c.AvoidanceFactor},
		{"maximumBoidDistance", c.MaximumBoidDistance},
		{"minimumBoidDistance", c.MinimumBoidDistance},
		{"boidCohesionDistance", c.BoidCohesionDistance},
		{"nonRotationWindow", c.NonRotationWindow},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s is not finite: %w", f.name, ErrInvalidConfig)
		}
		if f.value < 0 {
			return fmt.Errorf("%s must not be negative, got %v: %w", f.name, f.value, ErrInvalidConfig)
		}
	}
	if c.AvoidanceFactor < 1 {
		return fmt.Errorf("avoidanceFactor must be at least 1, got %v: %w", c.AvoidanceFactor, ErrInvalidConfig)
	}
	if c.NonRotationWindow > math.Pi {
		return fmt.Errorf("nonRotationWindow must not exceed π, got %v: %w", c.NonRotationWindow, ErrInvalidConfig)
	}
	if c.MinimumBoidDistance > c.MaximumBoidDistance {
		return fmt.Errorf("minimumBoidDistance %v exceeds maximumBoidDistance %v: %w",
			c.MinimumBoidDistance, c.MaximumBoidDistance, ErrInvalidConfig)
	}
	return nil
}
