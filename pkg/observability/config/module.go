package config

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Overrides switch signals off whatever the observability section says.
type Overrides struct {
	DisableTracing bool
	DisableMetrics bool
}

// NewObservabilityConfigModule provides Config read from the
// "observability" section of the application config.
func NewObservabilityConfigModule(o Overrides) fx.Option {
	return fx.Provide(func(v *viper.Viper, log *zap.Logger) (Config, error) {
		cfg, err := Load(v, o)
		if err != nil {
			return Config{}, err
		}
		log.Info("loaded observability config",
			zap.Bool("tracing", cfg.Tracing.Enabled),
			zap.Bool("metrics", cfg.Metrics.Enabled),
			zap.String("endpoint", cfg.OtelCollectorEndpoint))
		return cfg, nil
	})
}

// Load reads the observability section, fills defaults and applies o.
// A missing section yields a Config with every signal disabled.
func Load(v *viper.Viper, o Overrides) (Config, error) {
	var cfg Config
	if sub := v.Sub("observability"); sub != nil {
		if err := sub.Unmarshal(&cfg); err != nil {
			return Config{}, fmt.Errorf("failed to load observability config: %w", err)
		}
	}

	if cfg.Metrics.Interval <= 0 {
		cfg.Metrics.Interval = DefaultMetricsInterval
	}
	if cfg.Tracing.SampleRatio <= 0 || cfg.Tracing.SampleRatio > 1 {
		cfg.Tracing.SampleRatio = DefaultSampleRatio
	}
	cfg.Tracing.Enabled = cfg.Tracing.Enabled && !o.DisableTracing
	cfg.Metrics.Enabled = cfg.Metrics.Enabled && !o.DisableMetrics
	return cfg, nil
}
