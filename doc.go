/*
Package floodgate provides rate limiting for Go services, built around two
admission algorithms with opposite burst behavior.

Rate Limiting (pkg/ratelimit):
  - tokenbucket: Token bucket rate limiter with burst capacity
  - leakybucket: Smooth rate limiting without bursts
  - ratelimit: High-level wrappers pairing both algorithms

Service Surface:
  - admission: HTTP handlers exposing admission decisions
  - stats: In-memory and Redis recorders for decision tallies
  - traffic: Traffic profile generator for comparing the algorithms
  - metrics: Prometheus instrumentation

Example usage:

	import "github.com/floodgate-io/floodgate/pkg/ratelimit"

	api, _ := ratelimit.NewTokenLimiter(10, 20)    // 10 RPS, burst 20
	smooth, _ := ratelimit.NewLeakyLimiter(10, 20) // 10 RPS, queue 20

	if api.Allow() {
		serve(request)
	}

The admissiond command serves both limiters over HTTP with Prometheus
metrics and periodic stats summaries; see cmd/admissiond.
*/
package floodgate
