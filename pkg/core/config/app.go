package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	envAppEnv            = "APP_ENV"
	envAppServiceName    = "APP_SERVICE_NAME"
	envAppServiceVersion = "APP_SERVICE_VERSION"
	envConfigFile        = "CONFIG_FILE"
	envConfigDir         = "CONFIG_DIR"
)

const (
	defaultEnvironment    = "local"
	defaultServiceName    = "schemapub"
	defaultServiceVersion = "dev"
	defaultConfigDir      = "./configs"
)

// AppConfig identifies the running process and points at its config file.
type AppConfig struct {
	ServiceName    string
	ServiceVersion string
	// Environment is the deployment environment (e.g. "local", "staging", "pro").
	Environment string
	// ConfigFile is the resolved path of the YAML config; it may not exist.
	ConfigFile string
}

type appConfigOptions struct {
	static *AppConfig
}

// AppConfigOption configures the app config module.
type AppConfigOption func(*appConfigOptions)

// WithAppConfig supplies a static AppConfig instead of reading the environment.
func WithAppConfig(cfg AppConfig) AppConfigOption {
	return func(o *appConfigOptions) {
		o.static = &cfg
	}
}

// NewAppConfigModule provides AppConfig, by default built from environment variables:
//   - APP_ENV (default "local")
//   - APP_SERVICE_NAME (default "schemapub")
//   - APP_SERVICE_VERSION (default "dev")
//   - CONFIG_FILE, or CONFIG_DIR joined with config.{env}.yaml
func NewAppConfigModule(opts ...AppConfigOption) fx.Option {
	o := &appConfigOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return fx.Module("appconfig",
		fx.Provide(func() (AppConfig, error) {
			if o.static != nil {
				return *o.static, nil
			}
			return LoadAppConfig()
		}),
		fx.Invoke(func(log *zap.Logger, conf AppConfig) {
			log.Info("loaded application configuration",
				zap.String("service", conf.ServiceName),
				zap.String("version", conf.ServiceVersion),
				zap.String("environment", conf.Environment),
				zap.String("configFile", conf.ConfigFile),
			)
		}),
	)
}

// LoadAppConfig reads AppConfig from the process environment.
func LoadAppConfig() (AppConfig, error) {
	cfg := AppConfig{
		ServiceName:    envOrDefault(envAppServiceName, defaultServiceName),
		ServiceVersion: envOrDefault(envAppServiceVersion, defaultServiceVersion),
		Environment:    envOrDefault(envAppEnv, defaultEnvironment),
		ConfigFile:     os.Getenv(envConfigFile),
	}

	if cfg.ConfigFile == "" {
		dir := envOrDefault(envConfigDir, defaultConfigDir)
		cfg.ConfigFile = filepath.Join(dir, "config."+cfg.Environment+".yaml")
	}

	if filepath.Ext(cfg.ConfigFile) == "" {
		return AppConfig{}, fmt.Errorf("%s must point to a file with an extension, got %q", envConfigFile, cfg.ConfigFile)
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
