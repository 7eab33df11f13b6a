// Package metrics provides Prometheus instrumentation for floodgate's
// rate limiters.
//
// # Overview
//
// The metrics package instruments admission decisions: requests seen,
// requests allowed, requests denied, advisory wait times, and the current
// bucket fill level.
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	limiter, err := tokenbucket.NewWithMetrics(10, 20, "api_requests")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
//	limiter, err := tokenbucket.NewWithConfigAndMetrics(
//		tokenbucket.Config{Rate: 5, Capacity: 10},
//		"custom_limiter",
//		config,
//	)
//
// # Available Metrics
//
//   - floodgate_ratelimit_requests_total: Total number of admission requests
//   - floodgate_ratelimit_allowed_total: Total number of allowed requests
//   - floodgate_ratelimit_denied_total: Total number of denied requests
//   - floodgate_ratelimit_wait_duration_seconds: Advisory wait time reported on denials
//   - floodgate_ratelimit_level: Current bucket fill level
//
// # Labels
//
// Every metric carries two labels:
//
//   - limiter_type: "token_bucket" or "leaky_bucket"
//   - limiter_name: User-provided name for the limiter instance
//
// # Runtime Control
//
// The metrics-enabled limiters implement the Instrumentable interface:
//
//	limiter.DisableMetrics()            // Stop collecting metrics
//	limiter.EnableMetrics(config)       // Re-enable with new config
//	enabled := limiter.MetricsEnabled() // Check current state
//
// # Performance
//
// Metrics are updated only when admission decisions happen; there are no
// background goroutines or timers. Disabled metrics cost a single nil check
// per operation.
package metrics
