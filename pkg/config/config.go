// Package config loads and validates the ranker's configuration from an
// optional YAML file with environment-variable overrides. Every field has a
// default, so running without a config file is the normal case.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceDir   = "dir"
	SourceRedis = "redis"
)

// Tie-break policies for results whose scores fall within the ranker's
// epsilon band.
const (
	TieBreakIdentifier = "identifier"
	TieBreakInsertion  = "insertion"
)

// Progress label styles.
const (
	LabelsLetters = "letters"
	LabelsNumbers = "numbers"
)

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Source   SourceConfig   `yaml:"source"`
	Redis    RedisConfig    `yaml:"redis"`
	Retry    RetryConfig    `yaml:"retry"`
	Ranker   RankerConfig   `yaml:"ranker"`
	Progress ProgressConfig `yaml:"progress"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server that runs for the
// lifetime of a ranking run.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// SourceConfig selects where abstract contents are read from.
type SourceConfig struct {
	Kind           string `yaml:"kind"`
	Dir            string `yaml:"dir"`
	RedisKeyPrefix string `yaml:"redisKeyPrefix"`
}

// RedisConfig holds Redis connection parameters for the redis source.
type RedisConfig struct {
	Addr        string        `yaml:"addr"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	PoolSize    int           `yaml:"poolSize"`
	DialTimeout time.Duration `yaml:"dialTimeout"`
}

// RetryConfig controls retries of remote document loads.
type RetryConfig struct {
	MaxAttempts  int           `yaml:"maxAttempts"`
	InitialDelay time.Duration `yaml:"initialDelay"`
	MaxDelay     time.Duration `yaml:"maxDelay"`
}

// RankerConfig controls how scored abstracts are ordered.
type RankerConfig struct {
	Epsilon  float64 `yaml:"epsilon"`
	TieBreak string  `yaml:"tieBreak"`
}

// ProgressConfig controls the progress lines written to the report.
type ProgressConfig struct {
	Labels string `yaml:"labels"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. The result is validated before it is returned.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
		Source: SourceConfig{
			Kind:           SourceDir,
			Dir:            "../abstracts/",
			RedisKeyPrefix: "abstract:",
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			PoolSize:    10,
			DialTimeout: 5 * time.Second,
		},
		Retry: RetryConfig{
			MaxAttempts:  3,
			InitialDelay: 100 * time.Millisecond,
			MaxDelay:     2 * time.Second,
		},
		Ranker: RankerConfig{
			Epsilon:  1e-4,
			TieBreak: TieBreakIdentifier,
		},
		Progress: ProgressConfig{
			Labels: LabelsLetters,
		},
	}
}

// Validate rejects values the rest of the program cannot act on.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceDir, SourceRedis:
	default:
		return fmt.Errorf("source.kind %q: must be %q or %q", c.Source.Kind, SourceDir, SourceRedis)
	}
	switch c.Ranker.TieBreak {
	case TieBreakIdentifier, TieBreakInsertion:
	default:
		return fmt.Errorf("ranker.tieBreak %q: must be %q or %q", c.Ranker.TieBreak, TieBreakIdentifier, TieBreakInsertion)
	}
	if c.Ranker.Epsilon <= 0 {
		return fmt.Errorf("ranker.epsilon must be positive, got %g", c.Ranker.Epsilon)
	}
	switch c.Progress.Labels {
	case LabelsLetters, LabelsNumbers:
	default:
		return fmt.Errorf("progress.labels %q: must be %q or %q", c.Progress.Labels, LabelsLetters, LabelsNumbers)
	}
	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		return fmt.Errorf("metrics.port %d out of range", c.Metrics.Port)
	}
	return nil
}

// applyEnvOverrides reads AR_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AR_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("AR_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("AR_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("AR_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
	if v := os.Getenv("AR_SOURCE_KIND"); v != "" {
		cfg.Source.Kind = strings.ToLower(v)
	}
	if v := os.Getenv("AR_SOURCE_DIR"); v != "" {
		cfg.Source.Dir = v
	}
	if v := os.Getenv("AR_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("AR_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("AR_RANKER_TIE_BREAK"); v != "" {
		cfg.Ranker.TieBreak = strings.ToLower(v)
	}
}
