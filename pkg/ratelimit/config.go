package ratelimit

import (
	"github.com/floodgate-io/floodgate/pkg/metrics"
	"github.com/floodgate-io/floodgate/pkg/ratelimit/tokenbucket"
)

// TokenConfig configures a TokenLimiter.
type TokenConfig struct {
	// RequestsPerSecond is the sustained rate at which tokens replenish.
	RequestsPerSecond float64

	// BurstSize is the largest burst of requests the limiter can admit
	// at once. It maps to the capacity of the underlying bucket.
	BurstSize float64

	// InitialLevel is the initial token count. If negative, the limiter
	// starts with a full burst available.
	InitialLevel float64

	// Clock provides the current time. If nil, the system clock is used.
	Clock tokenbucket.Clock

	// Name labels this limiter in metrics.
	Name string

	// Metrics controls Prometheus instrumentation of the limiter.
	Metrics metrics.Config
}

// LeakyConfig configures a LeakyLimiter.
type LeakyConfig struct {
	// RequestsPerSecond is the sustained rate at which admitted requests
	// drain out of the bucket.
	RequestsPerSecond float64

	// BucketSize is the maximum number of admitted requests the bucket
	// can hold. It maps to the capacity of the underlying bucket.
	BucketSize float64

	// InitialLevel is the initial occupancy. If negative, the limiter
	// starts empty.
	InitialLevel float64

	// Clock provides the current time. If nil, the system clock is used.
	Clock tokenbucket.Clock

	// Name labels this limiter in metrics.
	Name string

	// Metrics controls Prometheus instrumentation of the limiter.
	Metrics metrics.Config
}
