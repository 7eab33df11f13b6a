package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/floodgate-io/floodgate/pkg/common/errors"
)

// RedisRecorder persists admission statistics to Redis.
//
// Each decision increments a cumulative per-algorithm hash and a TTL'd
// per-minute hash, both with allowed/denied fields. Totals never expire;
// minute buckets do, so time-series keys cannot grow without bound.
type RedisRecorder struct {
	rdb *redis.Client

	prefix string
	ttl    time.Duration
}

// RedisOption customizes a RedisRecorder.
type RedisOption func(*RedisRecorder)

// WithPrefix sets the key prefix for all stats keys.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisRecorder) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

// WithTTL sets the expiry applied to per-minute bucket keys.
func WithTTL(d time.Duration) RedisOption {
	return func(s *RedisRecorder) { s.ttl = d }
}

// NewRedisRecorder creates a recorder writing through the given client.
func NewRedisRecorder(rdb *redis.Client, opts ...RedisOption) *RedisRecorder {
	s := &RedisRecorder{
		rdb:    rdb,
		prefix: "floodgate",
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record increments the counters for one admission decision.
func (s *RedisRecorder) Record(ctx context.Context, ev Event) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	field := "denied"
	if ev.Allowed {
		field = "allowed"
	}

	totalKey := fmt.Sprintf("%s:stats:total:%s", s.prefix, ev.Algorithm)
	bucketKey := fmt.Sprintf("%s:stats:minute:%s:%s", s.prefix, at.UTC().Format("200601021504"), ev.Algorithm)

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, totalKey, field, 1)
	pipe.HIncrBy(ctx, bucketKey, field, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, bucketKey, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return errors.NewOperationError("stats", "Record", err).
			WithContext("redis pipeline exec")
	}
	return nil
}
