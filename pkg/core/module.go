package core

import (
	"time"

	"github.com/Sokol111/schemapub/pkg/core/config"
	"github.com/Sokol111/schemapub/pkg/core/health"
	"github.com/Sokol111/schemapub/pkg/core/logger"
	"go.uber.org/fx"
)

type coreOptions struct {
	appConfig     *config.AppConfig
	loggerConfig  *logger.Config
	configPath    string
	disableDotEnv bool
	disableFile   bool
}

// Option configures the core module.
type Option func(*coreOptions)

// WithAppConfig provides a static AppConfig instead of reading the environment.
func WithAppConfig(cfg config.AppConfig) Option {
	return func(o *coreOptions) {
		o.appConfig = &cfg
	}
}

// WithLoggerConfig provides a static logger Config instead of the logger section.
func WithLoggerConfig(cfg logger.Config) Option {
	return func(o *coreOptions) {
		o.loggerConfig = &cfg
	}
}

// WithConfigFile reads configuration from path instead of the path derived from the environment.
func WithConfigFile(path string) Option {
	return func(o *coreOptions) {
		o.configPath = path
	}
}

// WithoutEnvFile skips loading .env.
func WithoutEnvFile() Option {
	return func(o *coreOptions) {
		o.disableDotEnv = true
	}
}

// WithoutConfigFile skips the YAML config file entirely.
func WithoutConfigFile() Option {
	return func(o *coreOptions) {
		o.disableFile = true
	}
}

// NewCoreModule provides config, logger and readiness tracking.
//
//	// Production
//	core.NewCoreModule()
//
//	// Tests
//	core.NewCoreModule(
//	    core.WithLoggerConfig(logger.DefaultConfig()),
//	    core.WithoutEnvFile(),
//	    core.WithoutConfigFile(),
//	)
func NewCoreModule(opts ...Option) fx.Option {
	o := &coreOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return fx.Options(
		fx.StartTimeout(2*time.Minute),
		fx.StopTimeout(time.Minute),

		dotEnvModule(o),
		appConfigModule(o),
		viperModule(o),
		loggerModule(o),
		health.NewReadinessModule(),
	)
}

func dotEnvModule(o *coreOptions) fx.Option {
	if o.disableDotEnv {
		return fx.Options()
	}
	return config.NewDotEnvModule()
}

func appConfigModule(o *coreOptions) fx.Option {
	if o.appConfig != nil {
		return config.NewAppConfigModule(config.WithAppConfig(*o.appConfig))
	}
	return config.NewAppConfigModule()
}

func viperModule(o *coreOptions) fx.Option {
	switch {
	case o.disableFile:
		return config.NewViperModule(config.WithoutConfigFile())
	case o.configPath != "":
		return config.NewViperModule(config.WithConfigPath(o.configPath))
	default:
		return config.NewViperModule()
	}
}

func loggerModule(o *coreOptions) fx.Option {
	if o.loggerConfig != nil {
		return logger.NewZapLoggingModule(logger.WithLoggerConfig(*o.loggerConfig))
	}
	return logger.NewZapLoggingModule()
}
