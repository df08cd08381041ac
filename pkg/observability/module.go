// Package observability wires OpenTelemetry into the publisher: one producer
// span per publish and counters of publish outcomes, exported over OTLP when
// the "observability" config section enables them.
//
//	observability.NewObservabilityModule()                           // as configured
//	observability.NewObservabilityModule(observability.WithoutMetrics()) // CLI
package observability

import (
	"github.com/Sokol111/schemapub/pkg/observability/config"
	"github.com/Sokol111/schemapub/pkg/observability/metrics"
	"github.com/Sokol111/schemapub/pkg/observability/tracing"
	"go.uber.org/fx"
)

// Option adjusts the observability module.
type Option func(*config.Overrides)

// WithoutTracing keeps the no-op tracer even when tracing is configured.
func WithoutTracing() Option {
	return func(o *config.Overrides) { o.DisableTracing = true }
}

// WithoutMetrics keeps the no-op meter even when metrics are configured.
func WithoutMetrics() Option {
	return func(o *config.Overrides) { o.DisableMetrics = true }
}

// NewObservabilityModule provides the observability Config, a TracerProvider
// and a MeterProvider. Disabled signals get no-op providers, so the publisher
// never needs to check.
func NewObservabilityModule(opts ...Option) fx.Option {
	var overrides config.Overrides
	for _, opt := range opts {
		opt(&overrides)
	}

	return fx.Module("observability",
		config.NewObservabilityConfigModule(overrides),
		tracing.NewTracingModule(),
		metrics.NewMetricsModule(),
	)
}
