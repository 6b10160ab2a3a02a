package systems

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/1siamBot/steer-engine/engine/systems"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
