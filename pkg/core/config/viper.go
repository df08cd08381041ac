package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type viperOptions struct {
	path         *string
	noConfigFile bool
}

// ViperOption configures the viper module.
type ViperOption func(*viperOptions)

// WithConfigPath overrides the config file path resolved from AppConfig.
func WithConfigPath(path string) ViperOption {
	return func(o *viperOptions) {
		o.path = &path
	}
}

// WithoutConfigFile keeps viper file-less; only environment variables are visible.
func WithoutConfigFile() ViperOption {
	return func(o *viperOptions) {
		o.noConfigFile = true
	}
}

// NewViperModule provides *viper.Viper. Keys can be overridden from the
// environment, e.g. kafka.schema-registry.url as KAFKA_SCHEMA_REGISTRY_URL.
func NewViperModule(opts ...ViperOption) fx.Option {
	o := &viperOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return fx.Module("viper",
		fx.Provide(func(app AppConfig) (*viper.Viper, error) {
			return NewViper(resolvePath(o, app))
		}),
		fx.Invoke(func(log *zap.Logger, v *viper.Viper) {
			log.Info("configuration loaded",
				zap.String("configFile", v.ConfigFileUsed()),
				zap.Strings("configKeys", v.AllKeys()),
			)
		}),
	)
}

func resolvePath(o *viperOptions, app AppConfig) string {
	switch {
	case o.noConfigFile:
		return ""
	case o.path != nil:
		return *o.path
	default:
		return app.ConfigFile
	}
}

// NewViper builds a viper instance bound to the environment and, when path is
// non-empty and the file exists, to that YAML file. An explicitly configured
// file that is missing is not an error, the CLI runs fine on flags alone.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if path == "" {
		return v, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return v, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file [%s]: %w", path, err)
	}
	return v, nil
}
