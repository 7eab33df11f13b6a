package leakybucket

import (
	"testing"
	"time"

	"github.com/floodgate-io/floodgate/internal/testutil"
	"github.com/floodgate-io/floodgate/pkg/ratelimit/tokenbucket"
)

// mustNew creates a new limiter or panics on error (for benchmarks only)
func mustNew(leakRate tokenbucket.Rate, capacity float64) Limiter {
	limiter, err := New(leakRate, capacity)
	if err != nil {
		panic(err)
	}
	return limiter
}

// BenchmarkAllow measures the performance of Allow calls
func BenchmarkAllow(b *testing.B) {
	limiter := mustNew(1000000, 1000) // High leak rate so the bucket never fills

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

// BenchmarkWaitTime measures the performance of WaitTime calls
func BenchmarkWaitTime(b *testing.B) {
	limiter := mustNew(1000000, 1000)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			limiter.WaitTime()
		}
	})
}

// BenchmarkLevel measures the performance of Level calls
func BenchmarkLevel(b *testing.B) {
	limiter := mustNew(1000000, 1000)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			limiter.Level()
		}
	})
}

// BenchmarkAvailable measures the performance of Available calls
func BenchmarkAvailable(b *testing.B) {
	limiter := mustNew(1000000, 1000)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			limiter.Available()
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

// BenchmarkZeroRate benchmarks a limiter with zero leak rate
func BenchmarkZeroRate(b *testing.B) {
	limiter := mustNew(0, 1000) // No leaking, just initial capacity

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		limiter.Allow()
	}
}

// BenchmarkLeakProcessing measures the cost of leak processing over time
func BenchmarkLeakProcessing(b *testing.B) {
	clock := testutil.NewMockClock(time.Now())
	limiter, err := NewWithConfig(Config{
		LeakRate:     100,
		Capacity:     100,
		Clock:        clock,
		InitialLevel: 50,
	})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Advance time to trigger leak processing
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
			// Request processed
		}
	}
}

// BenchmarkComparison_TokenVsLeaky compares token bucket vs leaky bucket performance
func BenchmarkComparison_TokenVsLeaky(b *testing.B) {
	tokenLimiter, err := tokenbucket.New(1000000, 1000)
	if err != nil {
		b.Fatalf("unexpected error: %v", err)
	}

	leakyLimiter, err := New(1000000, 1000)
	if err != nil {
		b.Fatalf("unexpected error: %v", err)
	}

	b.Run("TokenBucket", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				tokenLimiter.Allow()
			}
		})
	})

	b.Run("LeakyBucket", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				leakyLimiter.Allow()
			}
		})
	})
}
