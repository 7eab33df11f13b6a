package ratelimit

import (
	"time"

	"github.com/floodgate-io/floodgate/pkg/ratelimit/leakybucket"
	"github.com/floodgate-io/floodgate/pkg/ratelimit/tokenbucket"
)

// TokenLimiter admits requests against a replenishing token budget.
// It is a request-oriented wrapper around a token bucket: each admitted
// request spends one token, tokens replenish at a sustained rate, and
// bursts up to the configured size are absorbed without delay.
type TokenLimiter struct {
	bucket tokenbucket.Limiter
}

// NewTokenLimiter creates a token bucket limiter that sustains
// requestsPerSecond and admits bursts of up to burstSize requests.
// The limiter starts with a full burst available.
func NewTokenLimiter(requestsPerSecond, burstSize float64) (*TokenLimiter, error) {
	return NewTokenLimiterWithConfig(TokenConfig{
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         burstSize,
		InitialLevel:      -1, // Start full
	})
}

// NewTokenLimiterWithConfig creates a token bucket limiter with the given
// configuration. Rate and size validation is delegated to the underlying
// bucket constructor.
func NewTokenLimiterWithConfig(cfg TokenConfig) (*TokenLimiter, error) {
	clock := cfg.Clock
	if clock == nil {
		clock = tokenbucket.SystemClock{}
	}

	bucket, err := tokenbucket.NewWithConfigAndMetrics(tokenbucket.Config{
		Rate:          tokenbucket.Rate(cfg.RequestsPerSecond),
		Capacity:      cfg.BurstSize,
		Clock:         clock,
		InitialTokens: cfg.InitialLevel,
	}, cfg.Name, cfg.Metrics)
	if err != nil {
		return nil, err
	}

	return &TokenLimiter{bucket: bucket}, nil
}

// Allow reports whether one request may happen now. A denied request is
// not queued: the caller decides whether to retry, shed, or degrade.
func (l *TokenLimiter) Allow() bool {
	return l.bucket.Allow()
}

// AllowN reports whether a request costing n tokens may happen now.
func (l *TokenLimiter) AllowN(n int) bool {
	return l.bucket.AllowN(n)
}

// Tokens returns the number of tokens currently available.
func (l *TokenLimiter) Tokens() float64 {
	return l.bucket.Tokens()
}

// Status returns a refreshed snapshot of the underlying bucket.
func (l *TokenLimiter) Status() tokenbucket.Status {
	return l.bucket.Status()
}

// Reset restores the full burst and restarts replenishment accounting.
func (l *TokenLimiter) Reset() {
	l.bucket.Reset()
}

// LeakyLimiter admits requests into a draining queue. It is a
// request-oriented wrapper around a leaky bucket: admitted requests raise
// the bucket's occupancy, occupancy drains at a sustained rate, and a full
// bucket denies admission until enough has drained.
type LeakyLimiter struct {
	bucket leakybucket.Limiter
}

// NewLeakyLimiter creates a leaky bucket limiter that drains
// requestsPerSecond and holds up to bucketSize admitted requests.
// The limiter starts empty.
func NewLeakyLimiter(requestsPerSecond, bucketSize float64) (*LeakyLimiter, error) {
	return NewLeakyLimiterWithConfig(LeakyConfig{
		RequestsPerSecond: requestsPerSecond,
		BucketSize:        bucketSize,
		InitialLevel:      -1, // Start empty
	})
}

// NewLeakyLimiterWithConfig creates a leaky bucket limiter with the given
// configuration. Rate and size validation is delegated to the underlying
// bucket constructor.
func NewLeakyLimiterWithConfig(cfg LeakyConfig) (*LeakyLimiter, error) {
	clock := cfg.Clock
	if clock == nil {
		clock = tokenbucket.SystemClock{}
	}

	bucket, err := leakybucket.NewWithConfigAndMetrics(leakybucket.Config{
		LeakRate:     tokenbucket.Rate(cfg.RequestsPerSecond),
		Capacity:     cfg.BucketSize,
		Clock:        clock,
		InitialLevel: cfg.InitialLevel,
	}, cfg.Name, cfg.Metrics)
	if err != nil {
		return nil, err
	}

	return &LeakyLimiter{bucket: bucket}, nil
}

// Allow reports whether one request may enter the queue now. A denied
// request is not queued: the caller decides whether to retry after
// WaitTime, shed, or degrade.
func (l *LeakyLimiter) Allow() bool {
	return l.bucket.Allow()
}

// AllowN reports whether n requests may enter the queue now.
func (l *LeakyLimiter) AllowN(n int) bool {
	return l.bucket.AllowN(n)
}

// WaitTime reports the advisory time until space for one more request
// frees up. It is not a reservation.
func (l *LeakyLimiter) WaitTime() time.Duration {
	return l.bucket.WaitTime()
}

// Level returns the current queue occupancy.
func (l *LeakyLimiter) Level() float64 {
	return l.bucket.Level()
}

// Status returns a refreshed snapshot of the underlying bucket.
func (l *LeakyLimiter) Status() leakybucket.Status {
	return l.bucket.Status()
}

// Reset empties the queue and restarts drain accounting.
func (l *LeakyLimiter) Reset() {
	l.bucket.Reset()
}
