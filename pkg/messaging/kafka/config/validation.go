package config

import (
	"fmt"
	"slices"
	"strings"
)

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Brokers) == "" {
		return fmt.Errorf("kafka brokers cannot be empty")
	}
	if err := validateSchemaRegistry(&cfg.SchemaRegistry); err != nil {
		return err
	}
	if err := validateProducerConfig(&cfg.ProducerConfig); err != nil {
		return err
	}
	return validateAdminConfig(&cfg.AdminConfig)
}

func validateSchemaRegistry(cfg *SchemaRegistryConfig) error {
	if strings.TrimSpace(cfg.URL) == "" {
		return fmt.Errorf("schema registry URL cannot be empty")
	}
	if cfg.CacheCapacity < minSchemaCacheCapacity || cfg.CacheCapacity > maxSchemaCacheCapacity {
		return fmt.Errorf("schema registry cache capacity must be between %d and %d, got: %d",
			minSchemaCacheCapacity, maxSchemaCacheCapacity, cfg.CacheCapacity)
	}
	if cfg.RequestTimeout < minRequestTimeout || cfg.RequestTimeout > maxRequestTimeout {
		return fmt.Errorf("schema registry request timeout must be between %v and %v, got: %v",
			minRequestTimeout, maxRequestTimeout, cfg.RequestTimeout)
	}
	if cfg.Compatibility != "" && !slices.Contains(compatibilityModes, cfg.Compatibility) {
		return fmt.Errorf("schema registry compatibility must be one of %v, got: %s", compatibilityModes, cfg.Compatibility)
	}
	if !slices.Contains(subjectStrategies, cfg.SubjectNameStrategy) {
		return fmt.Errorf("subject name strategy must be one of %v, got: %s", subjectStrategies, cfg.SubjectNameStrategy)
	}
	if (cfg.Username == "") != (cfg.Password == "") {
		return fmt.Errorf("schema registry username and password must be set together")
	}
	return nil
}

func validateProducerConfig(cfg *ProducerConfig) error {
	if cfg.ReadinessTimeoutSeconds < 0 || cfg.ReadinessTimeoutSeconds > maxReadinessTimeout {
		return fmt.Errorf("producer readiness timeout must be between 0 and %d seconds, got: %d",
			maxReadinessTimeout, cfg.ReadinessTimeoutSeconds)
	}
	if cfg.DeliveryTimeout < minDeliveryTimeout || cfg.DeliveryTimeout > maxDeliveryTimeout {
		return fmt.Errorf("producer delivery timeout must be between %v and %v, got: %v",
			minDeliveryTimeout, maxDeliveryTimeout, cfg.DeliveryTimeout)
	}
	if !slices.Contains(ackValues, cfg.Acks) {
		return fmt.Errorf("producer acks must be one of %v, got: %s", ackValues, cfg.Acks)
	}
	if cfg.EnableIdempotence && cfg.Acks != "all" && cfg.Acks != "-1" {
		return fmt.Errorf("producer idempotence requires acks=all, got: %s", cfg.Acks)
	}
	if cfg.Linger < 0 || cfg.Linger > maxLinger {
		return fmt.Errorf("producer linger must be between 0 and %v, got: %v", maxLinger, cfg.Linger)
	}
	if !slices.Contains(compressionCodecs, cfg.Compression) {
		return fmt.Errorf("producer compression must be one of %v, got: %s", compressionCodecs, cfg.Compression)
	}
	return nil
}

func validateAdminConfig(cfg *AdminConfig) error {
	if cfg.OperationTimeout <= 0 {
		return fmt.Errorf("admin operation timeout must be positive, got: %v", cfg.OperationTimeout)
	}
	if cfg.DefaultPartitions < 1 {
		return fmt.Errorf("admin default partitions must be at least 1, got: %d", cfg.DefaultPartitions)
	}
	if cfg.DefaultReplicationFactor < 1 {
		return fmt.Errorf("admin default replication factor must be at least 1, got: %d", cfg.DefaultReplicationFactor)
	}
	return nil
}
