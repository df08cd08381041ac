package config

import "strings"

func applyDefaults(cfg *Config) {
	sr := &cfg.SchemaRegistry
	if sr.CacheCapacity == 0 {
		sr.CacheCapacity = defaultSchemaRegistryCacheCapacity
	}
	if sr.RequestTimeout == 0 {
		sr.RequestTimeout = defaultRegistryRequestTimeout
	}
	if sr.SubjectNameStrategy == "" {
		sr.SubjectNameStrategy = defaultSubjectNameStrategy
	}
	sr.Compatibility = strings.ToUpper(strings.TrimSpace(sr.Compatibility))

	p := &cfg.ProducerConfig
	if p.ReadinessTimeoutSeconds == 0 {
		p.ReadinessTimeoutSeconds = defaultProducerReadinessTimeout
	}
	if p.DeliveryTimeout == 0 {
		p.DeliveryTimeout = defaultDeliveryTimeout
	}
	if p.Acks == "" {
		p.Acks = defaultAcks
	}
	if p.Linger == 0 {
		p.Linger = defaultLinger
	}
	if p.Compression == "" {
		p.Compression = defaultCompression
	}
	if p.FailureLogInterval == 0 {
		p.FailureLogInterval = defaultFailureLogInterval
	}

	a := &cfg.AdminConfig
	if a.OperationTimeout == 0 {
		a.OperationTimeout = defaultAdminOperationTimeout
	}
	if a.DefaultPartitions == 0 {
		a.DefaultPartitions = defaultPartitions
	}
	if a.DefaultReplicationFactor == 0 {
		a.DefaultReplicationFactor = defaultReplicationFactor
	}
}
