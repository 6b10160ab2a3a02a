// Package config loads simulation settings with viper. Values come from
// defaults, then an optional config file, then STEER_ environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/1siamBot/steer-engine/engine/steering"
	"github.com/1siamBot/steer-engine/engine/vmath"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = steering.ErrInvalidConfig

// EnvPrefix is prepended to environment overrides, e.g. STEER_STEERING_AVOIDANCEFACTOR
const EnvPrefix = "STEER"

// Config is the full application configuration
type Config struct {
	LogLevel string         `json:"logLevel" mapstructure:"logLevel"`
	TickRate float64        `json:"tickRate" mapstructure:"tickRate"`
	Tuning   SteeringConfig `json:"steering" mapstructure:"steering"`
	Demo     DemoConfig     `json:"demo" mapstructure:"demo"`
	Record   RecordConfig   `json:"record" mapstructure:"record"`
}

// SteeringConfig holds steering tuning in file-friendly units
type SteeringConfig struct {
	AvoidanceFactor      float64 `json:"avoidanceFactor" mapstructure:"avoidanceFactor"`
	MaximumBoidDistance  float64 `json:"maximumBoidDistance" mapstructure:"maximumBoidDistance"`
	MinimumBoidDistance  float64 `json:"minimumBoidDistance" mapstructure:"minimumBoidDistance"`
	BoidCohesionDistance float64 `json:"boidCohesionDistance" mapstructure:"boidCohesionDistance"`
	NonRotationWindowDeg float64 `json:"nonRotationWindowDeg" mapstructure:"nonRotationWindowDeg"`
	DetectionPeriodMs    float64 `json:"detectionPeriodMs" mapstructure:"detectionPeriodMs"`
}

// DemoConfig sizes the demo scene
type DemoConfig struct {
	Width     int   `json:"width" mapstructure:"width"`
	Height    int   `json:"height" mapstructure:"height"`
	Vehicles  int   `json:"vehicles" mapstructure:"vehicles"`
	Obstacles int   `json:"obstacles" mapstructure:"obstacles"`
	Seed      int64 `json:"seed" mapstructure:"seed"`
}

// RecordConfig controls the frame recorder
type RecordConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("tickRate", 60)

	viper.SetDefault("steering.avoidanceFactor", 1.1)
	viper.SetDefault("steering.maximumBoidDistance", 400)
	viper.SetDefault("steering.minimumBoidDistance", 50)
	viper.SetDefault("steering.boidCohesionDistance", 100)
	viper.SetDefault("steering.nonRotationWindowDeg", 15)
	viper.SetDefault("steering.detectionPeriodMs", 500)

	viper.SetDefault("demo.width", 1280)
	viper.SetDefault("demo.height", 720)
	viper.SetDefault("demo.vehicles", 6)
	viper.SetDefault("demo.obstacles", 10)
	viper.SetDefault("demo.seed", 1)

	viper.SetDefault("record.enabled", false)
	viper.SetDefault("record.path", "steer_frames.db")
}

// Load reads the config file at path (any format viper knows, by extension) over
// the defaults. An empty path uses defaults and environment only.
func Load(path string) (Config, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the loaded values
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %v: %w", c.TickRate, ErrInvalidConfig)
	}
	if c.Tuning.DetectionPeriodMs < 0 {
		return fmt.Errorf("detectionPeriodMs must not be negative: %w", ErrInvalidConfig)
	}
	if c.Demo.Width <= 0 || c.Demo.Height <= 0 {
		return fmt.Errorf("demo size %dx%d: %w", c.Demo.Width, c.Demo.Height, ErrInvalidConfig)
	}
	if err := c.Steering().Validate(); err != nil {
		return fmt.Errorf("steering: %w", err)
	}
	return nil
}

// Steering converts the steering section to the steering package's Config
func (c Config) Steering() steering.Config {
	return steering.Config{
		AvoidanceFactor:      c.Tuning.AvoidanceFactor,
		MaximumBoidDistance:  c.Tuning.MaximumBoidDistance,
		MinimumBoidDistance:  c.Tuning.MinimumBoidDistance,
		BoidCohesionDistance: c.Tuning.BoidCohesionDistance,
		NonRotationWindow:    vmath.Rad(c.Tuning.NonRotationWindowDeg),
	}
}
