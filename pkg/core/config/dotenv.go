package config

import (
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given). Variables already present in the environment win. It reports
// whether any file was loaded.
func LoadDotEnv(paths ...string) bool {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	return godotenv.Load(paths...) == nil
}

// NewDotEnvModule loads .env eagerly, before any provider reads the environment.
func NewDotEnvModule(paths ...string) fx.Option {
	loaded := LoadDotEnv(paths...)

	return fx.Module("dotenv",
		fx.Invoke(func(log *zap.Logger) {
			log.Debug("dotenv", zap.Bool("loaded", loaded), zap.Strings("paths", paths))
		}),
	)
}
