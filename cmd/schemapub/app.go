package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Sokol111/schemapub/pkg/core"
	appconfig "github.com/Sokol111/schemapub/pkg/core/config"
	"github.com/Sokol111/schemapub/pkg/modules"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/config"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/schemaregistry"
	"github.com/Sokol111/schemapub/pkg/observability"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

const defaultTimeout = 30 * time.Second

type globalOptions struct {
	configFile      string
	brokers         string
	registryURL     string
	compatibility   string
	subjectStrategy string
	timeout         time.Duration
}

func (o *globalOptions) coreModule() fx.Option {
	if o.configFile != "" {
		return core.NewCoreModule(core.WithConfigFile(o.configFile))
	}
	return core.NewCoreModule()
}

// kafkaConfig reads the kafka section and applies flag overrides on top.
func (o *globalOptions) kafkaConfig(v *viper.Viper) (config.Config, error) {
	var cfg config.Config
	if sub := v.Sub("kafka"); sub != nil {
		if err := sub.Unmarshal(&cfg); err != nil {
			return config.Config{}, fmt.Errorf("failed to load kafka config: %w", err)
		}
	}
	if o.brokers != "" {
		cfg.Brokers = o.brokers
	}
	if o.registryURL != "" {
		cfg.SchemaRegistry.URL = o.registryURL
	}
	if o.compatibility != "" {
		cfg.SchemaRegistry.Compatibility = o.compatibility
	}
	if o.subjectStrategy != "" {
		cfg.SchemaRegistry.SubjectNameStrategy = o.subjectStrategy
	}
	return config.Finalize(cfg)
}

// messagingModule provides the full publishing stack.
func (o *globalOptions) messagingModule(v *viper.Viper) (fx.Option, error) {
	cfg, err := o.kafkaConfig(v)
	if err != nil {
		return nil, err
	}
	return modules.NewMessagingModule(modules.WithKafkaConfig(cfg)), nil
}

// registryModule provides only what talks to the schema registry.
func (o *globalOptions) registryModule(v *viper.Viper) (fx.Option, error) {
	cfg, err := o.kafkaConfig(v)
	if err != nil {
		return nil, err
	}
	return fx.Options(
		config.NewKafkaConfigModule(config.WithKafkaConfig(cfg)),
		schemaregistry.NewSchemaRegistryModule(),
		avro.NewAvroModule(),
	), nil
}

// run starts an application built from modules, calls fn and stops it again.
func (o *globalOptions) run(ctx context.Context, build func(v *viper.Viper) (fx.Option, error), targets []any, fn func(ctx context.Context) error) error {
	v, err := o.loadViper()
	if err != nil {
		return err
	}
	mod, err := build(v)
	if err != nil {
		return err
	}

	app := fx.New(
		fx.NopLogger,
		o.coreModule(),
		observability.NewObservabilityModule(observability.WithoutMetrics()),
		mod,
		fx.Populate(targets...),
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return err
	}

	runErr := fn(ctx)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}
	return runErr
}

// loadViper reads the same file the core module will, so flag overrides can
// be merged into the kafka section before the application is built.
func (o *globalOptions) loadViper() (*viper.Viper, error) {
	appconfig.LoadDotEnv()
	app, err := appconfig.LoadAppConfig()
	if err != nil {
		return nil, err
	}
	return appconfig.NewViper(lo.Ternary(o.configFile != "", o.configFile, app.ConfigFile))
}
