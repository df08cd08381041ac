package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newYAMLViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	return v
}

const fullConfig = `
observability:
  otel-collector-endpoint: otel:4317
  tracing:
    enabled: true
    sample-ratio: 0.25
  metrics:
    enabled: true
    interval: 30s
`

func TestLoad_FromViper(t *testing.T) {
	// Arrange
	v := newYAMLViper(t, fullConfig)

	// Act
	cfg, err := Load(v, Overrides{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "otel:4317", cfg.OtelCollectorEndpoint)
	assert.True(t, cfg.Tracing.Enabled)
	assert.True(t, cfg.Metrics.Enabled)
	assert.InDelta(t, 0.25, cfg.Tracing.SampleRatio, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.Metrics.Interval)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), Overrides{})

	require.NoError(t, err)
	assert.False(t, cfg.Tracing.Enabled)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, DefaultMetricsInterval, cfg.Metrics.Interval)
	assert.InDelta(t, DefaultSampleRatio, cfg.Tracing.SampleRatio, 1e-9)
}

func TestLoad_OutOfRangeSampleRatio(t *testing.T) {
	v := newYAMLViper(t, `
observability:
  tracing:
    enabled: true
    sample-ratio: 2
`)

	cfg, err := Load(v, Overrides{})

	require.NoError(t, err)
	assert.InDelta(t, DefaultSampleRatio, cfg.Tracing.SampleRatio, 1e-9)
}

func TestLoad_Overrides(t *testing.T) {
	tests := []struct {
		name        string
		overrides   Overrides
		wantTracing bool
		wantMetrics bool
	}{
		{name: "none", overrides: Overrides{}, wantTracing: true, wantMetrics: true},
		{name: "without metrics", overrides: Overrides{DisableMetrics: true}, wantTracing: true, wantMetrics: false},
		{name: "without both", overrides: Overrides{DisableTracing: true, DisableMetrics: true}, wantTracing: false, wantMetrics: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(newYAMLViper(t, fullConfig), tt.overrides)

			require.NoError(t, err)
			assert.Equal(t, tt.wantTracing, cfg.Tracing.Enabled)
			assert.Equal(t, tt.wantMetrics, cfg.Metrics.Enabled)
		})
	}
}

func TestNewObservabilityConfigModule(t *testing.T) {
	var cfg Config
	app := fx.New(
		fx.NopLogger,
		fx.Supply(newYAMLViper(t, fullConfig)),
		fx.Provide(zap.NewNop),
		NewObservabilityConfigModule(Overrides{DisableMetrics: true}),
		fx.Populate(&cfg),
	)

	require.NoError(t, app.Err())
	assert.True(t, cfg.Tracing.Enabled)
	assert.False(t, cfg.Metrics.Enabled)
}
