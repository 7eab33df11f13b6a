package leakybucket

import (
	"math"
	"time"

	"github.com/floodgate-io/floodgate/pkg/ratelimit/tokenbucket"
)

// Allow reports whether one request may enter the bucket now.
func (lb *leakyBucket) Allow() bool {
	return lb.AllowN(1)
}

// AllowN reports whether n requests may enter the bucket now.
// A request for more units than the capacity is always denied.
func (lb *leakyBucket) AllowN(n int) bool {
	if n <= 0 {
		return true
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.leak(lb.clock.Now())

	// Admit only when the whole request fits, so occupancy never
	// exceeds capacity even with fractional drained levels.
	if float64(n) <= lb.capacity-lb.level {
		lb.level += float64(n)
		return true
	}
	return false
}

// WaitTime reports the advisory time until space for one more request
// frees up. It is zero while occupancy is at or below capacity-1. With
// a zero leak rate a full bucket never frees space, so the maximum
// representable duration is reported.
func (lb *leakyBucket) WaitTime() time.Duration {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.leak(lb.clock.Now())

	need := lb.level - lb.capacity + 1
	if need <= 0 {
		return 0
	}
	if lb.leakRate == 0 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(float64(time.Second) * need / float64(lb.leakRate))
}

// Level returns the current fill level of the bucket.
func (lb *leakyBucket) Level() float64 {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.leak(lb.clock.Now())
	return lb.level
}

// Available returns the available space in the bucket.
func (lb *leakyBucket) Available() float64 {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.leak(lb.clock.Now())
	return lb.capacity - lb.level
}

// Status returns a refreshed snapshot of the bucket.
func (lb *leakyBucket) Status() Status {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.leak(lb.clock.Now())
	return Status{
		Level:    lb.level,
		Capacity: lb.capacity,
		Rate:     lb.leakRate,
	}
}

// Capacity returns the bucket capacity. Capacity is fixed at construction.
func (lb *leakyBucket) Capacity() float64 {
	return lb.capacity
}

// Rate returns the leak rate. The rate is fixed at construction.
func (lb *leakyBucket) Rate() tokenbucket.Rate {
	return lb.leakRate
}

// Reset empties the bucket and restarts drain accounting.
func (lb *leakyBucket) Reset() {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.level = 0
	lb.lastLeak = lb.clock.Now()
}

// leak drains occupancy for the time elapsed since the last drain.
// A non-positive elapsed duration (backward or frozen clock) leaves both
// the level and the drain anchor untouched, so a clock regression can
// neither raise the level nor drain it spuriously once time recovers.
func (lb *leakyBucket) leak(now time.Time) {
	elapsed := now.Sub(lb.lastLeak)
	if elapsed <= 0 {
		return
	}

	leakAmount := elapsed.Seconds() * float64(lb.leakRate)
	lb.level = math.Max(0, lb.level-leakAmount)
	lb.lastLeak = now
}
