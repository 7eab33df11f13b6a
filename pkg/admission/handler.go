package admission

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/floodgate-io/floodgate/pkg/ratelimit"
	"github.com/floodgate-io/floodgate/pkg/stats"
)

// Handler serves the admission API around one token bucket limiter and
// one leaky bucket limiter.
type Handler struct {
	token    *ratelimit.TokenLimiter
	leaky    *ratelimit.LeakyLimiter
	recorder stats.Recorder
	logger   *logrus.Logger
}

// NewHandler creates an admission handler around the two shared limiters.
func NewHandler(token *ratelimit.TokenLimiter, leaky *ratelimit.LeakyLimiter, opts ...Option) *Handler {
	h := &Handler{
		token: token,
		leaky: leaky,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = logrus.New()
	}
	return h
}

// TokenBucketResponse is the body of GET /api/token-bucket.
type TokenBucketResponse struct {
	Allowed         bool    `json:"allowed"`
	TokensRemaining float64 `json:"tokens_remaining"`
}

// LeakyBucketResponse is the body of GET /api/leaky-bucket.
// WaitTime is the advisory retry delay in seconds, present only on denial.
type LeakyBucketResponse struct {
	Allowed        bool    `json:"allowed"`
	QueueOccupancy float64 `json:"queue_occupancy"`
	WaitTime       float64 `json:"wait_time,omitempty"`
}

// AlgorithmStatus is one limiter's state in GET /api/stats.
type AlgorithmStatus struct {
	Level    float64 `json:"level"`
	Capacity float64 `json:"capacity"`
	Rate     float64 `json:"rate"`
}

// StatsResponse is the body of GET /api/stats.
type StatsResponse struct {
	TokenBucket AlgorithmStatus `json:"token_bucket"`
	LeakyBucket AlgorithmStatus `json:"leaky_bucket"`
}

// ResetResponse is the body of POST /api/reset.
type ResetResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the structured body of API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RegisterRoutes attaches the API endpoints to mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/token-bucket", h.TokenBucket)
	mux.HandleFunc("/api/leaky-bucket", h.LeakyBucket)
	mux.HandleFunc("/api/stats", h.Stats)
	mux.HandleFunc("/api/reset", h.Reset)
	mux.HandleFunc("/api/health", h.Health)
	mux.HandleFunc("/api/", h.apiNotFound)
	mux.HandleFunc("/", h.Home)
}

// TokenBucket handles GET /api/token-bucket. A denial is a normal
// admission outcome, not an HTTP error: the response is always 200.
func (h *Handler) TokenBucket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Only GET requests are allowed")
		return
	}

	allowed := h.token.Allow()
	h.record(r.Context(), stats.AlgorithmTokenBucket, allowed)

	h.logger.WithFields(logrus.Fields{
		"algorithm": stats.AlgorithmTokenBucket,
		"allowed":   allowed,
	}).Debug("admission decision")

	h.sendJSON(w, http.StatusOK, TokenBucketResponse{
		Allowed:         allowed,
		TokensRemaining: h.token.Tokens(),
	})
}

// LeakyBucket handles GET /api/leaky-bucket. A denial is a normal
// admission outcome, not an HTTP error: the response is always 200,
// with an advisory wait_time attached on denial.
func (h *Handler) LeakyBucket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Only GET requests are allowed")
		return
	}

	allowed := h.leaky.Allow()
	h.record(r.Context(), stats.AlgorithmLeakyBucket, allowed)

	h.logger.WithFields(logrus.Fields{
		"algorithm": stats.AlgorithmLeakyBucket,
		"allowed":   allowed,
	}).Debug("admission decision")

	resp := LeakyBucketResponse{
		Allowed:        allowed,
		QueueOccupancy: h.leaky.Level(),
	}
	if !allowed {
		resp.WaitTime = h.leaky.WaitTime().Seconds()
	}
	h.sendJSON(w, http.StatusOK, resp)
}

// Stats handles GET /api/stats. It reports both limiters' current state
// without consuming anything.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Only GET requests are allowed")
		return
	}

	tokenStatus := h.token.Status()
	leakyStatus := h.leaky.Status()

	h.sendJSON(w, http.StatusOK, StatsResponse{
		TokenBucket: AlgorithmStatus{
			Level:    tokenStatus.Level,
			Capacity: tokenStatus.Capacity,
			Rate:     float64(tokenStatus.Rate),
		},
		LeakyBucket: AlgorithmStatus{
			Level:    leakyStatus.Level,
			Capacity: leakyStatus.Capacity,
			Rate:     float64(leakyStatus.Rate),
		},
	})
}

// Reset handles POST /api/reset. It restores both limiters to their
// initial state: the token bucket refills, the leaky bucket empties.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.sendError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Only POST requests are allowed")
		return
	}

	h.token.Reset()
	h.leaky.Reset()
	h.logger.Info("rate limiters reset")

	h.sendJSON(w, http.StatusOK, ResetResponse{Status: "reset"})
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Only GET requests are allowed")
		return
	}

	h.sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Home handles GET /, serving a small index of the API.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.sendError(w, http.StatusNotFound, "not_found", "Unknown endpoint")
		return
	}
	if r.Method != http.MethodGet {
		h.sendError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Only GET requests are allowed")
		return
	}

	h.sendJSON(w, http.StatusOK, map[string]interface{}{
		"service": "floodgate admission service",
		"endpoints": map[string]string{
			"GET /api/token-bucket": "Admit one request through the token bucket",
			"GET /api/leaky-bucket": "Admit one request through the leaky bucket",
			"GET /api/stats":        "Current status of both limiters",
			"POST /api/reset":       "Reset both limiters",
			"GET /api/health":       "Health check",
		},
	})
}

func (h *Handler) apiNotFound(w http.ResponseWriter, _ *http.Request) {
	h.sendError(w, http.StatusNotFound, "not_found", "Unknown API endpoint")
}

// record persists one decision to the stats recorder, if any.
func (h *Handler) record(ctx context.Context, algorithm string, allowed bool) {
	if h.recorder == nil {
		return
	}
	err := h.recorder.Record(ctx, stats.Event{
		Algorithm: algorithm,
		Allowed:   allowed,
		At:        time.Now(),
	})
	if err != nil {
		h.logger.WithError(err).Warn("stats recording failed")
	}
}

func (h *Handler) sendJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WithError(err).Warn("response encoding failed")
	}
}

func (h *Handler) sendError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	h.sendJSON(w, statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}
