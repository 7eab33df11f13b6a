package leakybucket

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/floodgate-io/floodgate/pkg/metrics"
	"github.com/floodgate-io/floodgate/pkg/ratelimit/tokenbucket"
)

const limiterType = "leaky_bucket"

// MetricsLimiter wraps a Limiter with Prometheus metrics collection.
type MetricsLimiter struct {
	limiter  Limiter
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a leaky bucket limiter with metrics enabled.
func NewWithMetrics(leakRate tokenbucket.Rate, capacity float64, name string) (Limiter, error) {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(Config{
		LeakRate:     leakRate,
		Capacity:     capacity,
		Clock:        tokenbucket.SystemClock{},
		InitialLevel: -1,
	}, name, config)
}

// NewWithConfigAndMetrics creates a leaky bucket limiter with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) (Limiter, error) {
	baseLimiter, err := NewWithConfig(config)
	if err != nil {
		return nil, err
	}

	if !metricsConfig.Enabled {
		return baseLimiter, nil
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	return &MetricsLimiter{
		limiter:  baseLimiter,
		name:     name,
		registry: registry,
		enabled:  true,
	}, nil
}

// Allow reports whether one request may enter the bucket now.
func (ml *MetricsLimiter) Allow() bool {
	return ml.AllowN(1)
}

// AllowN reports whether n requests may enter the bucket now.
// Denials also observe the advisory wait time into the wait histogram.
func (ml *MetricsLimiter) AllowN(n int) bool {
	if ml.enabled {
		ml.registry.RateLimitRequests.WithLabelValues(limiterType, ml.name).Add(float64(n))
	}

	allowed := ml.limiter.AllowN(n)

	if ml.enabled {
		if allowed {
			ml.registry.RateLimitAllowed.WithLabelValues(limiterType, ml.name).Add(float64(n))
		} else {
			ml.registry.RateLimitDenied.WithLabelValues(limiterType, ml.name).Add(float64(n))
			ml.registry.RateLimitWaitTime.WithLabelValues(limiterType, ml.name).Observe(ml.limiter.WaitTime().Seconds())
		}

		ml.registry.RateLimitLevel.WithLabelValues(limiterType, ml.name).Set(ml.limiter.Level())
	}

	return allowed
}

// WaitTime reports the advisory time until space for one more request frees up.
func (ml *MetricsLimiter) WaitTime() time.Duration {
	return ml.limiter.WaitTime()
}

// Level returns the current fill level of the bucket.
func (ml *MetricsLimiter) Level() float64 {
	level := ml.limiter.Level()

	if ml.enabled {
		ml.registry.RateLimitLevel.WithLabelValues(limiterType, ml.name).Set(level)
	}

	return level
}

// Available returns the available space in the bucket.
func (ml *MetricsLimiter) Available() float64 {
	return ml.limiter.Available()
}

// Status returns a refreshed snapshot of the bucket.
func (ml *MetricsLimiter) Status() Status {
	status := ml.limiter.Status()

	if ml.enabled {
		ml.registry.RateLimitLevel.WithLabelValues(limiterType, ml.name).Set(status.Level)
	}

	return status
}

// Capacity returns the bucket capacity.
func (ml *MetricsLimiter) Capacity() float64 {
	return ml.limiter.Capacity()
}

// Rate returns the leak rate.
func (ml *MetricsLimiter) Rate() tokenbucket.Rate {
	return ml.limiter.Rate()
}

// Reset empties the bucket.
func (ml *MetricsLimiter) Reset() {
	ml.limiter.Reset()

	if ml.enabled {
		ml.registry.RateLimitLevel.WithLabelValues(limiterType, ml.name).Set(ml.limiter.Level())
	}
}

// EnableMetrics enables metrics collection.
func (ml *MetricsLimiter) EnableMetrics(config metrics.Config) error {
	ml.enabled = config.Enabled

	if config.Registry != nil {
		ml.registry = metrics.NewRegistry(config.Registry)
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (ml *MetricsLimiter) DisableMetrics() {
	ml.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (ml *MetricsLimiter) MetricsEnabled() bool {
	return ml.enabled
}
