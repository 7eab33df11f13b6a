/*
Package leakybucket provides leaky bucket admission control for Go applications.

A leaky bucket enforces a constant smooth output rate by draining occupancy
at a fixed interval, unlike token bucket which allows controlled bursts.
This makes it ideal for traffic shaping and ensuring predictable resource
consumption.

Basic usage:

	limiter, err := leakybucket.New(5, 10) // 5 units/sec leak rate, capacity 10
	if err != nil {
		// invalid configuration
	}
	if limiter.Allow() {
		// Process request
	}

Key Characteristics:

The leaky bucket algorithm provides smooth traffic flow by:
  - Accepting requests up to capacity when space is available
  - Draining occupancy at a constant rate regardless of input patterns
  - Buffering burst traffic and processing it at a steady rate
  - Preventing downstream systems from being overwhelmed

Comparison with Token Bucket:

	// Token Bucket: Allows bursts, starts with full tokens
	tokenLimiter, _ := tokenbucket.New(5, 10) // Allows immediate burst of 10

	// Leaky Bucket: Smooth flow, starts empty
	leakyLimiter, _ := leakybucket.New(5, 10) // Fills toward capacity under load

Use Cases:

Leaky bucket is ideal for:
  - Video streaming and media processing
  - Network traffic shaping
  - Database write operations
  - Any scenario requiring predictable resource usage

Token bucket is better for:
  - Interactive web applications
  - API rate limiting with burst tolerance
  - Variable load handling

Configuration Options:

	config := leakybucket.Config{
		LeakRate:     10,    // Units per second
		Capacity:     20,    // Maximum occupancy to buffer
		InitialLevel: 5,     // Start with some occupancy in the bucket
		Clock:        clock, // Custom time source (for testing)
	}
	limiter, err := leakybucket.NewWithConfig(config)

Wait-time estimates:

When the bucket is full, WaitTime reports how long until one slot frees:

	if !limiter.Allow() {
		retryIn := limiter.WaitTime()
		// Tell the caller to come back after retryIn
	}

The estimate is advisory only; another caller may take the freed slot first.

State inspection:

	level := limiter.Level()         // Current fill level
	available := limiter.Available() // Available space
	status := limiter.Status()       // Level, capacity and rate in one snapshot

Thread Safety:

All operations are safe for concurrent use. The limiter uses mutex-based
synchronization to protect internal state while maintaining good performance
for high-throughput scenarios.
*/
package leakybucket
