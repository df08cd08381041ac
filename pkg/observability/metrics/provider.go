package metrics

import (
	"context"
	"fmt"

	appconfig "github.com/Sokol111/schemapub/pkg/core/config"
	otelconfig "github.com/Sokol111/schemapub/pkg/observability/config"
	otelinternal "github.com/Sokol111/schemapub/pkg/observability/internal"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// publishDurationInstrument is the histogram the producer records from
// publish call to broker acknowledgement.
const publishDurationInstrument = "messaging.publish.duration"

// publishDurationBuckets cover a local ack in milliseconds up to a delivery
// timeout in tens of seconds.
var publishDurationBuckets = []float64{
	0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// newProvider exports to the OTLP collector over gRPC.
func newProvider(ctx context.Context, cfg otelconfig.Config, appCfg appconfig.AppConfig) (*sdkmetric.MeterProvider, error) {
	if cfg.OtelCollectorEndpoint == "" {
		return nil, fmt.Errorf("metrics: otel-collector-endpoint is required")
	}

	res, err := otelinternal.NewResource(ctx, appCfg)
	if err != nil {
		return nil, err
	}

	exp, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(cfg.OtelCollectorEndpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.Metrics.Interval))),
		sdkmetric.WithResource(res),
		sdkmetric.WithView(publishDurationView()),
	), nil
}

func publishDurationView() sdkmetric.View {
	return sdkmetric.NewView(
		sdkmetric.Instrument{Name: publishDurationInstrument},
		sdkmetric.Stream{Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
			Boundaries: publishDurationBuckets,
		}},
	)
}
