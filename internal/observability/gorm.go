package observability

import (
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"
)

// InstrumentDB registers the GORM OpenTelemetry plugin on db so every
// statement becomes a child span of the request that issued it. Metrics are
// left to Prometheus.
func InstrumentDB(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}
