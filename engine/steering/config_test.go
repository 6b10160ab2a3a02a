package steering

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1.1, cfg.AvoidanceFactor)
	assert.Equal(t, 400.0, cfg.MaximumBoidDistance)
	assert.Equal(t, 50.0, cfg.MinimumBoidDistance)
	assert.Equal(t, 100.0, cfg.BoidCohesionDistance)
	assert.InDelta(t, 15*math.Pi/180, cfg.NonRotationWindow, 1e-15)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"nan factor", func(c *Config) { c.AvoidanceFactor = math.NaN() }, "avoidanceFactor is not finite"},
		{"factor below one", func(c *Config) { c.AvoidanceFactor = 0.9 }, "avoidanceFactor must be at least 1"},
		{"negative window", func(c *Config) { c.NonRotationWindow = -0.1 }, "nonRotationWindow must not be negative"},
		{"window too wide", func(c *Config) { c.NonRotationWindow = 4 }, "nonRotationWindow must not exceed"},
		{"infinite boid distance", func(c *Config) { c.MaximumBoidDistance = math.Inf(1) }, "maximumBoidDistance is not finite"},
		{"inverted boid distances", func(c *Config) { c.MinimumBoidDistance = 500 }, "exceeds maximumBoidDistance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
