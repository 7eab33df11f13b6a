package main

import (
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/floodgate-io/floodgate/pkg/common/errors"
	"github.com/floodgate-io/floodgate/pkg/common/validation"
)

// Config holds the admission daemon configuration. Values come from
// DefaultConfig, optionally overlaid by a YAML file and then by
// FLOODGATE_* environment variables.
type Config struct {
	// Listen is the HTTP listen address, e.g. ":8080"
	Listen string `yaml:"listen"`

	// TokenBucket configures the burst-friendly limiter
	TokenBucket TokenBucketConfig `yaml:"token_bucket"`

	// LeakyBucket configures the smoothing limiter
	LeakyBucket LeakyBucketConfig `yaml:"leaky_bucket"`

	// Metrics toggles the Prometheus registry and /metrics endpoint
	Metrics MetricsConfig `yaml:"metrics"`

	// Redis configures the optional stats sink. Leaving Addr empty
	// keeps stats in memory only.
	Redis RedisConfig `yaml:"redis"`

	// Log configures the logrus logger
	Log LogConfig `yaml:"log"`

	// StatsLogSchedule is a cron expression (with seconds) for the
	// periodic stats summary log line
	StatsLogSchedule string `yaml:"stats_log_schedule"`
}

// TokenBucketConfig mirrors ratelimit.TokenConfig for the daemon's limiter.
type TokenBucketConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         float64 `yaml:"burst_size"`
}

// LeakyBucketConfig mirrors ratelimit.LeakyConfig for the daemon's limiter.
type LeakyBucketConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BucketSize        float64 `yaml:"bucket_size"`
}

// MetricsConfig toggles Prometheus instrumentation.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RedisConfig points the stats recorder at a Redis instance.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`

	// StatsTTL bounds per-minute stats keys, e.g. "24h"
	StatsTTL string `yaml:"stats_ttl"`
}

// LogConfig controls log verbosity.
type LogConfig struct {
	Level string `yaml:"level"`
}

// cronParser accepts the same seconds-granularity expressions the
// scheduler packages use.
var cronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// DefaultConfig returns the daemon defaults: both limiters at 5 req/s
// with room for 10, stats summarized once a minute.
func DefaultConfig() *Config {
	return &Config{
		Listen: ":8080",
		TokenBucket: TokenBucketConfig{
			RequestsPerSecond: 5.0,
			BurstSize:         10,
		},
		LeakyBucket: LeakyBucketConfig{
			RequestsPerSecond: 5.0,
			BucketSize:        10,
		},
		Metrics: MetricsConfig{Enabled: true},
		Redis: RedisConfig{
			KeyPrefix: "floodgate",
			StatsTTL:  "24h",
		},
		Log:              LogConfig{Level: "info"},
		StatsLogSchedule: "0 * * * * *",
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path, and environment overrides, then validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.NewOperationError("config", "Load", err).
				WithContext(path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewOperationError("config", "Load", err).
				WithContext("parsing yaml")
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FLOODGATE_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("FLOODGATE_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("FLOODGATE_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("FLOODGATE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks the configuration. Limiter parameters get the same
// treatment the bucket constructors apply, so a bad file fails at boot
// instead of at wiring time.
func (c *Config) Validate() error {
	if err := validation.ValidateNotEmpty("config", "listen", c.Listen); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative("config", "token_bucket.requests_per_second",
		c.TokenBucket.RequestsPerSecond); err != nil {
		return err
	}
	if err := validation.ValidatePositiveFloat("config", "token_bucket.burst_size",
		c.TokenBucket.BurstSize); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative("config", "leaky_bucket.requests_per_second",
		c.LeakyBucket.RequestsPerSecond); err != nil {
		return err
	}
	if err := validation.ValidatePositiveFloat("config", "leaky_bucket.bucket_size",
		c.LeakyBucket.BucketSize); err != nil {
		return err
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.NewValidationError("config", "log.level", c.Log.Level,
			"must be a valid logrus level").
			WithHint("One of: panic, fatal, error, warn, info, debug, trace")
	}

	if _, err := cronParser.Parse(c.StatsLogSchedule); err != nil {
		return errors.NewValidationError("config", "stats_log_schedule",
			c.StatsLogSchedule, "must be a valid cron expression with seconds").
			WithHint("Example: \"0 * * * * *\" runs at the top of every minute")
	}

	if c.Redis.StatsTTL != "" {
		if _, err := time.ParseDuration(c.Redis.StatsTTL); err != nil {
			return errors.NewValidationError("config", "redis.stats_ttl",
				c.Redis.StatsTTL, "must be a valid duration").
				WithHint("Example: \"24h\"")
		}
	}

	return nil
}

// Enabled reports whether a Redis stats sink is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// TTL returns the parsed stats TTL, falling back to 24h when unset.
// Validate has already rejected unparseable values.
func (r RedisConfig) TTL() time.Duration {
	if r.StatsTTL == "" {
		return 24 * time.Hour
	}
	d, err := time.ParseDuration(r.StatsTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
