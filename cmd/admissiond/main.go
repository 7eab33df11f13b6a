// Command admissiond serves the floodgate admission API: token bucket and
// leaky bucket rate limiting decisions over HTTP, with Prometheus metrics
// and periodic stats summaries.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/floodgate-io/floodgate/pkg/admission"
	"github.com/floodgate-io/floodgate/pkg/metrics"
	"github.com/floodgate-io/floodgate/pkg/ratelimit"
	"github.com/floodgate-io/floodgate/pkg/stats"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	logger := logrus.New()

	cfg, err := Load(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("loading configuration")
	}

	// Load validated the level already.
	level, _ := logrus.ParseLevel(cfg.Log.Level)
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var registry *prometheus.Registry
	metricsCfg := metrics.Config{}
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		metricsCfg = metrics.Config{Enabled: true, Registry: registry}
	}

	token, err := ratelimit.NewTokenLimiterWithConfig(ratelimit.TokenConfig{
		RequestsPerSecond: cfg.TokenBucket.RequestsPerSecond,
		BurstSize:         cfg.TokenBucket.BurstSize,
		InitialLevel:      -1,
		Name:              "api_token",
		Metrics:           metricsCfg,
	})
	if err != nil {
		logger.WithError(err).Fatal("creating token bucket limiter")
	}

	leaky, err := ratelimit.NewLeakyLimiterWithConfig(ratelimit.LeakyConfig{
		RequestsPerSecond: cfg.LeakyBucket.RequestsPerSecond,
		BucketSize:        cfg.LeakyBucket.BucketSize,
		InitialLevel:      -1,
		Name:              "api_leaky",
		Metrics:           metricsCfg,
	})
	if err != nil {
		logger.WithError(err).Fatal("creating leaky bucket limiter")
	}

	// The in-memory recorder always runs; it feeds the periodic summary.
	// Redis, when configured, receives the same events as a second sink.
	memory := stats.NewMemoryRecorder()
	recorder := stats.Recorder(memory)
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.WithError(err).WithField("addr", cfg.Redis.Addr).
				Fatal("connecting to redis")
		}
		logger.WithField("addr", cfg.Redis.Addr).Info("redis stats sink connected")

		recorder = stats.Multi(memory, stats.NewRedisRecorder(rdb,
			stats.WithPrefix(cfg.Redis.KeyPrefix),
			stats.WithTTL(cfg.Redis.TTL()),
		))
	}

	handler := admission.NewHandler(token, leaky,
		admission.WithLogger(logger),
		admission.WithRecorder(recorder),
	)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	if registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	statsCron := cron.New(cron.WithSeconds())
	_, err = statsCron.AddFunc(cfg.StatsLogSchedule, func() {
		snapshot := memory.Snapshot()
		tokenStatus := token.Status()
		leakyStatus := leaky.Status()
		logger.WithFields(logrus.Fields{
			"allowed":     snapshot.Total.Allowed,
			"denied":      snapshot.Total.Denied,
			"token_level": tokenStatus.Level,
			"leaky_level": leakyStatus.Level,
		}).Info("admission stats summary")
	})
	if err != nil {
		logger.WithError(err).Fatal("scheduling stats summary")
	}
	statsCron.Start()
	defer statsCron.Stop()

	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("server shutdown")
		}
	}()

	logger.WithFields(logrus.Fields{
		"listen":  cfg.Listen,
		"metrics": cfg.Metrics.Enabled,
		"redis":   cfg.Redis.Enabled(),
	}).Info("admission service listening")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("server error")
	}
}
