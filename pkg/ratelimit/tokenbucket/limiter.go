package tokenbucket

import (
	"sync"
	"time"

	"github.com/floodgate-io/floodgate/pkg/common/errors"
)

// Rate is the number of tokens replenished per second. A zero Rate
// freezes the bucket at its current level.
type Rate float64

// Limiter admits or denies requests using a token bucket algorithm.
// It tolerates bursts up to the bucket capacity by maintaining a
// reservoir of tokens that is lazily refilled as time passes.
type Limiter interface {
	// Allow reports whether one request may happen now. It does not block.
	Allow() bool

	// AllowN reports whether a request costing n tokens may happen now.
	// Admission is all or nothing: n tokens are consumed on success and
	// none on denial. It does not block.
	AllowN(n int) bool

	// Tokens returns the number of tokens currently available,
	// after applying any refill owed for elapsed time.
	Tokens() float64

	// Status returns a snapshot of the bucket after applying any
	// refill owed for elapsed time.
	Status() Status

	// Capacity returns the bucket capacity.
	Capacity() float64

	// Rate returns the refill rate.
	Rate() Rate

	// Reset refills the bucket to capacity.
	Reset()
}

// Status is a point-in-time snapshot of a bucket's state.
type Status struct {
	Level    float64
	Capacity float64
	Rate     Rate
}

// Clock provides the current time. It can be mocked for testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Config holds configuration options for creating a new Limiter.
type Config struct {
	// Rate is the number of tokens added per second.
	Rate Rate

	// Capacity is the maximum number of tokens the bucket can hold.
	Capacity float64

	// Clock provides the current time. If nil, SystemClock is used.
	Clock Clock

	// InitialTokens is the number of tokens to start with.
	// If negative, starts with full capacity.
	InitialTokens float64
}

// tokenBucket implements the Limiter interface using a token bucket algorithm.
type tokenBucket struct {
	mu         sync.Mutex
	rate       Rate
	capacity   float64
	tokens     float64
	lastUpdate time.Time
	clock      Clock
}

// New creates a token bucket limiter that starts at full capacity.
func New(rate Rate, capacity float64) (Limiter, error) {
	return NewWithConfig(Config{
		Rate:          rate,
		Capacity:      capacity,
		Clock:         SystemClock{},
		InitialTokens: -1, // Start with full capacity
	})
}

// NewWithConfig creates a token bucket limiter with the given configuration.
func NewWithConfig(config Config) (Limiter, error) {
	if config.Capacity <= 0 {
		return nil, errors.NewValidationError("tokenbucket", "capacity", config.Capacity, "capacity must be positive").
			WithHint("capacity bounds the largest burst the bucket can admit")
	}
	if config.Rate < 0 {
		return nil, errors.NewValidationError("tokenbucket", "rate", config.Rate, "rate cannot be negative").
			WithHint("use 0 to freeze replenishment or a positive tokens-per-second rate")
	}
	if config.Clock == nil {
		config.Clock = SystemClock{}
	}

	initialTokens := config.InitialTokens
	if initialTokens < 0 {
		initialTokens = config.Capacity
	}
	if initialTokens > config.Capacity {
		initialTokens = config.Capacity
	}

	return &tokenBucket{
		rate:       config.Rate,
		capacity:   config.Capacity,
		tokens:     initialTokens,
		lastUpdate: config.Clock.Now(),
		clock:      config.Clock,
	}, nil
}
