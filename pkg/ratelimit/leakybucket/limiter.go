package leakybucket

import (
	"sync"
	"time"

	"github.com/floodgate-io/floodgate/pkg/common/errors"
	"github.com/floodgate-io/floodgate/pkg/ratelimit/tokenbucket"
)

// Limiter admits or denies requests using a leaky bucket algorithm.
// Unlike a token bucket, it smooths bursts: admitted requests raise the
// bucket's occupancy and the occupancy drains at a constant rate.
type Limiter interface {
	// Allow reports whether one request may enter the bucket now.
	// It does not block.
	Allow() bool

	// AllowN reports whether n requests may enter the bucket now.
	// Admission is all or nothing. It does not block.
	AllowN(n int) bool

	// WaitTime reports the advisory time until space for one more
	// request frees up. It is not a reservation: a concurrent caller
	// may take the freed slot first.
	WaitTime() time.Duration

	// Level returns the current fill level of the bucket,
	// after applying any drain owed for elapsed time.
	Level() float64

	// Available returns the available space in the bucket.
	Available() float64

	// Status returns a snapshot of the bucket after applying any
	// drain owed for elapsed time.
	Status() Status

	// Capacity returns the bucket capacity.
	Capacity() float64

	// Rate returns the leak rate.
	Rate() tokenbucket.Rate

	// Reset empties the bucket.
	Reset()
}

// Status is a point-in-time snapshot of a bucket's state.
type Status struct {
	Level    float64
	Capacity float64
	Rate     tokenbucket.Rate
}

// Config holds configuration options for creating a new Limiter.
type Config struct {
	// LeakRate is the rate at which occupancy drains from the bucket
	// (units per second).
	LeakRate tokenbucket.Rate

	// Capacity is the maximum occupancy the bucket can hold.
	Capacity float64

	// Clock provides the current time. If nil, SystemClock is used.
	Clock tokenbucket.Clock

	// InitialLevel is the initial fill level of the bucket.
	// If negative, starts empty.
	InitialLevel float64
}

// leakyBucket implements the Limiter interface using a leaky bucket algorithm.
type leakyBucket struct {
	mu       sync.Mutex
	leakRate tokenbucket.Rate
	capacity float64
	level    float64
	lastLeak time.Time
	clock    tokenbucket.Clock
}

// New creates a leaky bucket limiter that starts empty.
func New(leakRate tokenbucket.Rate, capacity float64) (Limiter, error) {
	return NewWithConfig(Config{
		LeakRate:     leakRate,
		Capacity:     capacity,
		Clock:        tokenbucket.SystemClock{},
		InitialLevel: -1, // Start empty
	})
}

// NewWithConfig creates a leaky bucket limiter with the given configuration.
func NewWithConfig(config Config) (Limiter, error) {
	if config.Capacity <= 0 {
		return nil, errors.NewValidationError("leakybucket", "capacity", config.Capacity, "capacity must be positive").
			WithHint("capacity bounds how many requests the bucket can hold")
	}
	if config.LeakRate < 0 {
		return nil, errors.NewValidationError("leakybucket", "rate", config.LeakRate, "leak rate cannot be negative").
			WithHint("use 0 to freeze draining or a positive units-per-second rate")
	}
	if config.Clock == nil {
		config.Clock = tokenbucket.SystemClock{}
	}

	initialLevel := config.InitialLevel
	if initialLevel < 0 {
		initialLevel = 0 // Start empty
	}
	// Ensure initial level doesn't exceed capacity
	if initialLevel > config.Capacity {
		initialLevel = config.Capacity
	}

	return &leakyBucket{
		leakRate: config.LeakRate,
		capacity: config.Capacity,
		level:    initialLevel,
		lastLeak: config.Clock.Now(),
		clock:    config.Clock,
	}, nil
}
