package admission

import (
	"github.com/sirupsen/logrus"

	"github.com/floodgate-io/floodgate/pkg/stats"
)

// Option customizes a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for decision and error logging.
func WithLogger(logger *logrus.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// WithRecorder sets the stats recorder. Recording is best-effort: a
// recorder failure is logged, never surfaced to the client.
func WithRecorder(recorder stats.Recorder) Option {
	return func(h *Handler) { h.recorder = recorder }
}
