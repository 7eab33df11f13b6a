package stats

import (
	"context"
	"sync"
)

// Counters holds allowed/denied tallies.
type Counters struct {
	Allowed int64
	Denied  int64
}

// Snapshot is a copy of a recorder's state at one point in time.
type Snapshot struct {
	Total       Counters
	ByAlgorithm map[string]Counters
}

// MemoryRecorder is a simple in-memory Recorder.
// It never expires data, so it suits tests, development, and
// periodic summaries rather than long-lived accumulation.
type MemoryRecorder struct {
	mu          sync.Mutex
	total       Counters
	byAlgorithm map[string]Counters
}

// NewMemoryRecorder creates an empty in-memory recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{
		byAlgorithm: make(map[string]Counters),
	}
}

// Record tallies one admission decision. It never fails.
func (s *MemoryRecorder) Record(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.byAlgorithm[ev.Algorithm]
	if ev.Allowed {
		s.total.Allowed++
		c.Allowed++
	} else {
		s.total.Denied++
		c.Denied++
	}
	s.byAlgorithm[ev.Algorithm] = c
	return nil
}

// Total returns the overall tallies.
func (s *MemoryRecorder) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// ByAlgorithm returns a copy of the per-algorithm tallies.
func (s *MemoryRecorder) ByAlgorithm() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Counters, len(s.byAlgorithm))
	for k, v := range s.byAlgorithm {
		out[k] = v
	}
	return out
}

// Snapshot returns a copy of the complete recorder state.
func (s *MemoryRecorder) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Counters, len(s.byAlgorithm))
	for k, v := range s.byAlgorithm {
		out[k] = v
	}
	return Snapshot{Total: s.total, ByAlgorithm: out}
}
