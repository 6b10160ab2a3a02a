package systems

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics counts steering activity. A nil *Metrics records nothing.
type Metrics struct {
	commands   metric.Int64Counter
	invalid    metric.Int64Counter
	collisions metric.Int64Counter
	arrivals   metric.Int64Counter
	vehicles   metric.Int64ObservableGauge

	vehicleCount atomic.Int64
}

// NewMetrics creates the steering instruments.
// Uses the global OTel meter (no-op if not configured).
func NewMetrics() (*Metrics, error) {
	m := meter()
	s := &Metrics{}

	var err error
	s.commands, err = m.Int64Counter(
		"steer.commands",
		metric.WithDescription("Steering commands computed, by objective"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating commands counter: %w", err)
	}

	s.invalid, err = m.Int64Counter(
		"steer.commands.invalid",
		metric.WithDescription("Commands with an undefined rotation or thrust"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating invalid counter: %w", err)
	}

	s.collisions, err = m.Int64Counter(
		"steer.collisions.potential",
		metric.WithDescription("Potential collisions that triggered avoidance"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating collisions counter: %w", err)
	}

	s.arrivals, err = m.Int64Counter(
		"steer.arrivals",
		metric.WithDescription("Vehicles that settled at their arrive target"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating arrivals counter: %w", err)
	}

	s.vehicles, err = m.Int64ObservableGauge(
		"steer.vehicles",
		metric.WithDescription("Vehicles steered in the last tick"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating vehicles gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(s.vehicles, s.vehicleCount.Load())
			return nil
		},
		s.vehicles,
	)
	if err != nil {
		return nil, fmt.Errorf("registering vehicles callback: %w", err)
	}

	return s, nil
}

func (m *Metrics) command(objective string) {
	if m == nil {
		return
	}
	m.commands.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("objective", objective)))
}

func (m *Metrics) invalidCommand(objective string) {
	if m == nil {
		return
	}
	m.invalid.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("objective", objective)))
}

func (m *Metrics) potentialCollision() {
	if m == nil {
		return
	}
	m.collisions.Add(context.Background(), 1)
}

func (m *Metrics) arrival() {
	if m == nil {
		return
	}
	m.arrivals.Add(context.Background(), 1)
}

func (m *Metrics) steered(n int) {
	if m == nil {
		return
	}
	m.vehicleCount.Store(int64(n))
}
