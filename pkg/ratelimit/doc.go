/*
Package ratelimit provides rate limiting primitives for admission control.

Two classic algorithms are available, each as its own subpackage and
through request-oriented wrappers in this package:

  - tokenbucket: token bucket rate limiter allowing burst traffic
  - leakybucket: leaky bucket rate limiter for smooth traffic flow

Token Bucket vs Leaky Bucket:

Token bucket allows controlled bursts and is ideal for interactive
applications:

	limiter, err := ratelimit.NewTokenLimiter(10, 5) // 10 requests/sec, burst of 5
	if err != nil {
		// invalid configuration
	}
	if limiter.Allow() {
		// Process request (allows immediate burst)
	}

Leaky bucket enforces smooth flow and is ideal for traffic shaping:

	limiter, err := ratelimit.NewLeakyLimiter(10, 5) // 10 requests/sec, capacity 5
	if err != nil {
		// invalid configuration
	}
	if limiter.Allow() {
		// Process request (smooth flow, no bursts)
	} else {
		retryIn := limiter.WaitTime() // advisory, not a reservation
		_ = retryIn
	}

Both wrappers are non-blocking: a denied request is reported as false,
never queued and never an error. Both support state inspection through
Status and an administrative Reset, and both can be instrumented with
Prometheus metrics via their config structs.

All limiters are safe for concurrent use. Time is read lazily on each
operation, so idle limiters cost nothing.
*/
package ratelimit
