package config

import (
	"fmt"

	"github.com/Sokol111/schemapub/pkg/core/config"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type moduleOptions struct {
	config *Config
}

// Option configures the kafka config module.
type Option func(*moduleOptions)

// WithKafkaConfig supplies a static Config (defaults and validation still apply).
func WithKafkaConfig(cfg Config) Option {
	return func(o *moduleOptions) {
		o.config = &cfg
	}
}

// NewKafkaConfigModule provides Config from the kafka section of viper.
func NewKafkaConfigModule(opts ...Option) fx.Option {
	o := &moduleOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return fx.Provide(func(v *viper.Viper, app config.AppConfig, log *zap.Logger) (Config, error) {
		var (
			cfg Config
			err error
		)
		if o.config != nil {
			cfg, err = Finalize(*o.config)
		} else {
			cfg, err = Load(v)
		}
		if err != nil {
			return Config{}, err
		}

		if cfg.ClientID == "" {
			cfg.ClientID = app.ServiceName
		}

		log.Info("loaded kafka config",
			zap.String("brokers", cfg.Brokers),
			zap.String("schemaRegistry", cfg.SchemaRegistry.URL),
			zap.String("subjectNameStrategy", cfg.SchemaRegistry.SubjectNameStrategy),
			zap.String("compatibility", cfg.SchemaRegistry.Compatibility),
		)
		return cfg, nil
	})
}

// Load reads the kafka section from v and finalizes it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if sub := v.Sub("kafka"); sub != nil {
		if err := sub.Unmarshal(&cfg); err != nil {
			return Config{}, fmt.Errorf("failed to load kafka config: %w", err)
		}
	}
	return Finalize(cfg)
}

// Finalize applies defaults and validates cfg.
func Finalize(cfg Config) (Config, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid kafka config: %w", err)
	}
	return cfg, nil
}
