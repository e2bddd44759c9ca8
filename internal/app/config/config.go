package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Sampling SamplingConfig `yaml:"sampling"`
	Source   SourceConfig   `yaml:"source"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// SamplingConfig controls the polling core: window fetched per poll,
// store capacities, value unit, and the interval the runtime ticker
// uses to trigger polls.
type SamplingConfig struct {
	WindowSize   int           `yaml:"window_size"`
	RawCapacity  int           `yaml:"raw_capacity"`
	HRVCapacity  int           `yaml:"hrv_capacity"`
	Unit         string        `yaml:"unit"` // "bpm" or "interval_ms"
	PollInterval time.Duration `yaml:"poll_interval"`
}

// SourceConfig selects the sample source adapter. Exactly one of the
// kind-specific sections is consulted.
type SourceConfig struct {
	Kind  string      `yaml:"kind"` // "sim", "sql", "redis", "nats"
	SQL   SQLConfig   `yaml:"sql"`
	Redis RedisConfig `yaml:"redis"`
	NATS  NATSConfig  `yaml:"nats"`
	Sim   SimConfig   `yaml:"sim"`
}

type SQLConfig struct {
	Driver      string `yaml:"driver"` // "postgres" or "sqlite"
	ConnString  string `yaml:"conn_string"`
	Table       string `yaml:"table"`
	ValueColumn string `yaml:"value_column"`
	TimeColumn  string `yaml:"time_column"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
	Keep     int    `yaml:"keep"`
}

type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
	Buffer  int    `yaml:"buffer"`
}

type SimConfig struct {
	BaseRate float64 `yaml:"base_rate"`
	Jitter   float64 `yaml:"jitter"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.Sampling.WindowSize == 0 {
		c.Sampling.WindowSize = 15
	}
	if c.Sampling.RawCapacity == 0 {
		c.Sampling.RawCapacity = 60
	}
	if c.Sampling.HRVCapacity == 0 {
		c.Sampling.HRVCapacity = 15
	}
	if c.Sampling.Unit == "" {
		c.Sampling.Unit = "bpm"
	}
	if c.Sampling.PollInterval == 0 {
		c.Sampling.PollInterval = 5 * time.Second
	}
	if c.Source.Kind == "" {
		c.Source.Kind = "sim"
	}
	if c.Source.SQL.Driver == "" {
		c.Source.SQL.Driver = "postgres"
	}
	if c.Source.SQL.Table == "" {
		c.Source.SQL.Table = "heart_rate_samples"
	}
	if c.Source.SQL.ValueColumn == "" {
		c.Source.SQL.ValueColumn = "bpm"
	}
	if c.Source.SQL.TimeColumn == "" {
		c.Source.SQL.TimeColumn = "ts"
	}
	if c.Source.Redis.Addr == "" {
		c.Source.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Source.Redis.Key == "" {
		c.Source.Redis.Key = "hrvm:samples"
	}
	if c.Source.Redis.Keep == 0 {
		c.Source.Redis.Keep = 512
	}
	if c.Source.NATS.URL == "" {
		c.Source.NATS.URL = "nats://127.0.0.1:4222"
	}
	if c.Source.NATS.Subject == "" {
		c.Source.NATS.Subject = "hrvm.samples"
	}
	if c.Source.NATS.Buffer == 0 {
		c.Source.NATS.Buffer = 256
	}
	if c.Source.Sim.BaseRate == 0 {
		c.Source.Sim.BaseRate = 72
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9100"
	}
}

func (c *Config) Validate() error {
	if c.Sampling.WindowSize < 0 || c.Sampling.RawCapacity < 0 || c.Sampling.HRVCapacity < 0 {
		return fmt.Errorf("sampling capacities must be positive")
	}
	switch c.Sampling.Unit {
	case "bpm", "interval_ms":
	default:
		return fmt.Errorf("sampling.unit must be %q or %q, got %q", "bpm", "interval_ms", c.Sampling.Unit)
	}
	switch c.Source.Kind {
	case "sim", "nats", "redis":
	case "sql":
		if c.Source.SQL.ConnString == "" {
			return fmt.Errorf("source.sql.conn_string is required")
		}
		switch c.Source.SQL.Driver {
		case "postgres", "sqlite":
		default:
			return fmt.Errorf("source.sql.driver must be %q or %q, got %q", "postgres", "sqlite", c.Source.SQL.Driver)
		}
	default:
		return fmt.Errorf("unknown source.kind %q", c.Source.Kind)
	}
	if c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required")
	}
	return nil
}
