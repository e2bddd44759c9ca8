package hrvm

import (
	"github.com/Nick-P-Adams/hrvm/internal/app/config"
)

// Config re-exports the root configuration struct so downstream projects can
// construct or modify it programmatically.
type Config = config.Config

type (
	// SamplingConfig controls window size, store capacities, and poll cadence.
	SamplingConfig = config.SamplingConfig
	// SourceConfig selects and configures the reading source.
	SourceConfig = config.SourceConfig
	// SQLConfig configures the relational source.
	SQLConfig = config.SQLConfig
	// RedisConfig configures the Redis list source.
	RedisConfig = config.RedisConfig
	// NATSConfig configures the NATS push-bridge source.
	NATSConfig = config.NATSConfig
	// SimConfig configures the built-in simulator.
	SimConfig = config.SimConfig
	// MetricsConfig configures the metrics HTTP server.
	MetricsConfig = config.MetricsConfig
)

// LoadConfig loads YAML from disk using the internal config reader.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}
