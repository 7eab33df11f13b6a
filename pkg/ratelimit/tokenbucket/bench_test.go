package tokenbucket

import (
	"testing"
	"time"
)

// mustNew creates a new limiter or panics on error (for benchmarks only)
func mustNew(rate Rate, capacity float64) Limiter {
	limiter, err := New(rate, capacity)
	if err != nil {
		panic(err)
	}
	return limiter
}

// BenchmarkAllow measures the performance of Allow calls
func BenchmarkAllow(b *testing.B) {
	limiter := mustNew(1000000, 1000) // High rate so the bucket never empties

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			limiter.Allow()
		}
	})
}

// BenchmarkAllowN measures the performance of AllowN calls
func BenchmarkAllowN(b *testing.B) {
	limiter := mustNew(1000000, 1000)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			limiter.AllowN(1)
		}
	})
}

// BenchmarkTokens measures the performance of Tokens calls
func BenchmarkTokens(b *testing.B) {
	limiter := mustNew(1000000, 1000)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			limiter.Tokens()
		}
	})
}

// BenchmarkStatus measures the performance of Status snapshots
func BenchmarkStatus(b *testing.B) {
	limiter := mustNew(1000000, 1000)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			limiter.Status()
		}
	})
}

// BenchmarkHighContention simulates high contention scenarios
func BenchmarkHighContention(b *testing.B) {
	// Lower rate/capacity to create more contention
	limiter := mustNew(100, 10)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			limiter.Allow()
		}
	})
}

// BenchmarkZeroRate benchmarks a limiter with zero refill rate
func BenchmarkZeroRate(b *testing.B) {
	limiter := mustNew(0, 1000) // No refill, just initial burst

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		limiter.Allow()
	}
}

// BenchmarkTimeUpdate measures the cost of time-based token updates
func BenchmarkTimeUpdate(b *testing.B) {
	clock := &MockClock{now: time.Now()}
	limiter, err := NewWithConfig(Config{
		Rate:          100,
		Capacity:      100,
		Clock:         clock,
		InitialTokens: 0,
	})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Advance time to trigger token updates
		clock.Advance(10 * time.Millisecond)
		limiter.Allow()
	}
}

// BenchmarkMemoryAllocation measures memory allocation patterns
func BenchmarkMemoryAllocation(b *testing.B) {
	b.ReportAllocs()

	limiter := mustNew(1000, 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if limiter.Allow() {
			// Token consumed
		}
	}
}
