// Package stats records admission decisions for observability.
//
// Recorders are aggregation sinks only: admission decisions never read
// them back, so a slow or unavailable sink can never influence whether a
// request is allowed.
package stats

import (
	"context"
	"time"
)

// Algorithm labels used by the shipped limiters.
const (
	AlgorithmTokenBucket = "token_bucket"
	AlgorithmLeakyBucket = "leaky_bucket"
)

// Event describes one admission decision.
type Event struct {
	// Algorithm names the limiter that made the decision.
	Algorithm string

	// Allowed reports the decision outcome.
	Allowed bool

	// At is when the decision was made. If zero, recorders use the
	// current time.
	At time.Time
}

// Recorder is the persistence strategy for admission statistics.
//
// Implementations may store in memory, Redis, etc. Callers should treat
// Record as best-effort: a failed write must not fail the request.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}
