package stats

import "context"

type multiRecorder struct {
	recorders []Recorder
}

// Multi returns a Recorder that forwards every event to each of the given
// recorders. Nil recorders are skipped. Delivery continues past failures
// so an unreachable sink cannot starve the others; the first error is
// returned.
func Multi(recorders ...Recorder) Recorder {
	all := make([]Recorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			all = append(all, r)
		}
	}
	return &multiRecorder{recorders: all}
}

func (m *multiRecorder) Record(ctx context.Context, ev Event) error {
	var firstErr error
	for _, r := range m.recorders {
		if err := r.Record(ctx, ev); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
