// Package metrics provides Prometheus instrumentation for floodgate components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for floodgate components.
type Registry struct {
	RateLimitRequests *prometheus.CounterVec
	RateLimitAllowed  *prometheus.CounterVec
	RateLimitDenied   *prometheus.CounterVec
	RateLimitWaitTime *prometheus.HistogramVec
	RateLimitLevel    *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by floodgate components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		RateLimitRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "floodgate",
				Subsystem: "ratelimit",
				Name:      "requests_total",
				Help:      "Total number of admission requests",
			},
			[]string{"limiter_type", "limiter_name"},
		),

		RateLimitAllowed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "floodgate",
				Subsystem: "ratelimit",
				Name:      "allowed_total",
				Help:      "Total number of allowed requests",
			},
			[]string{"limiter_type", "limiter_name"},
		),

		RateLimitDenied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "floodgate",
				Subsystem: "ratelimit",
				Name:      "denied_total",
				Help:      "Total number of denied requests",
			},
			[]string{"limiter_type", "limiter_name"},
		),

		RateLimitWaitTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "floodgate",
				Subsystem: "ratelimit",
				Name:      "wait_duration_seconds",
				Help:      "Advisory wait time reported on denied requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"limiter_type", "limiter_name"},
		),

		RateLimitLevel: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "floodgate",
				Subsystem: "ratelimit",
				Name:      "level",
				Help:      "Current bucket fill level",
			},
			[]string{"limiter_type", "limiter_name"},
		),
	}
}
