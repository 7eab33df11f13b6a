package tokenbucket

import (
	"math"
	"time"
)

// Allow reports whether one request may happen now.
func (tb *tokenBucket) Allow() bool {
	return tb.AllowN(1)
}

// AllowN reports whether a request costing n tokens may happen now.
// A cost larger than the bucket capacity is always denied.
func (tb *tokenBucket) AllowN(n int) bool {
	if n <= 0 {
		return true
	}

	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.updateTokens(tb.clock.Now())

	if tb.tokens >= float64(n) {
		tb.tokens -= float64(n)
		return true
	}
	return false
}

// Tokens returns the number of tokens currently available.
func (tb *tokenBucket) Tokens() float64 {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.updateTokens(tb.clock.Now())
	return tb.tokens
}

// Status returns a refreshed snapshot of the bucket.
func (tb *tokenBucket) Status() Status {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.updateTokens(tb.clock.Now())
	return Status{
		Level:    tb.tokens,
		Capacity: tb.capacity,
		Rate:     tb.rate,
	}
}

// Capacity returns the bucket capacity. Capacity is fixed at construction.
func (tb *tokenBucket) Capacity() float64 {
	return tb.capacity
}

// Rate returns the refill rate. The rate is fixed at construction.
func (tb *tokenBucket) Rate() Rate {
	return tb.rate
}

// Reset refills the bucket to capacity and restarts refill accounting.
func (tb *tokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.tokens = tb.capacity
	tb.lastUpdate = tb.clock.Now()
}

// updateTokens adds tokens based on the time elapsed since the last update.
// A non-positive elapsed duration (backward or frozen clock) leaves both the
// token count and the refill anchor untouched, so a clock regression can
// neither drain the bucket nor manufacture tokens once time recovers.
func (tb *tokenBucket) updateTokens(now time.Time) {
	elapsed := now.Sub(tb.lastUpdate)
	if elapsed <= 0 {
		return
	}

	tb.tokens = math.Min(tb.tokens+elapsed.Seconds()*float64(tb.rate), tb.capacity)
	tb.lastUpdate = now
}
