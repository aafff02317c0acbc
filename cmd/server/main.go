package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "cardcheck/internal/http"
	livenesshandler "cardcheck/internal/liveness/handler"
	livenessmetrics "cardcheck/internal/liveness/metrics"
	"cardcheck/internal/liveness/service"
	"cardcheck/internal/liveness/store"
	"cardcheck/internal/motion"
	"cardcheck/internal/platform/config"
	"cardcheck/internal/platform/httpserver"
	"cardcheck/internal/platform/logger"
	"cardcheck/internal/platform/metrics"
	"cardcheck/internal/platform/postgres"
	"cardcheck/internal/platform/redis"
	"cardcheck/pkg/platform/audit/kafka"
	"cardcheck/pkg/platform/audit/publisher"
	auditmemory "cardcheck/pkg/platform/audit/store/memory"
)

const (
	shutdownTimeout  = 10 * time.Second
	startupTimeout   = 15 * time.Second
	auditBufferSize  = 1024
	auditPartitions  = 3
	auditReplication = 1

	cacheSweepInterval = time.Minute
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checks := map[string]httpapi.HealthCheck{}

	// Sequence cache: Redis when configured, otherwise process memory.
	var cache service.SequenceCache
	rc, err := redis.New(startCtx, cfg.Redis)
	if err != nil {
		return err
	}
	if rc == nil {
		memCache := store.NewInMemorySequenceCache()
		go func() {
			if err := memCache.StartCleanup(ctx, cacheSweepInterval); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("sequence cache cleanup stopped", "error", err)
			}
		}()
		cache = memCache
	} else {
		defer rc.Close()
		if err := rc.RegisterPoolMetrics(reg); err != nil {
			return err
		}
		cache = store.NewRedisSequenceCache(rc.Client)
		checks["redis"] = rc.Health
		log.Info("using redis sequence cache")
	}

	// Result store: Postgres when configured, otherwise process memory.
	var results service.ResultStore = store.NewInMemoryResultStore()
	pool, err := postgres.New(startCtx, cfg.Database)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
		pg := store.NewPostgresResultStore(pool)
		if err := pg.EnsureSchema(startCtx); err != nil {
			return err
		}
		results = pg
		checks["postgres"] = pool.Ping
		log.Info("using postgres result store")
	}

	// Audit: a bounded in-memory trail served at /liveness/audit, mirrored to
	// Kafka when brokers are configured.
	pubOpts := []publisher.Option{
		publisher.WithAsyncBuffer(auditBufferSize),
		publisher.WithLogger(log),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := kafka.NewSink(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic, kafka.WithLogger(log))
		if err != nil {
			return err
		}
		defer sink.Close()
		if err := sink.EnsureTopic(startCtx, auditPartitions, auditReplication); err != nil {
			log.Warn("audit topic bootstrap failed", "topic", cfg.Kafka.AuditTopic, "error", err)
		}
		pubOpts = append(pubOpts, publisher.WithSinks(sink))
		checks["kafka"] = sink.Ping
		log.Info("mirroring audit events to kafka", "topic", cfg.Kafka.AuditTopic)
	}
	trail := auditmemory.NewInMemoryStore(auditmemory.WithCapacity(cfg.AuditRetention))
	auditor := publisher.NewPublisher(trail, pubOpts...)
	defer auditor.Close()

	svcOpts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(livenessmetrics.New(reg)),
		service.WithAuditPublisher(auditor),
		service.WithSequenceTTL(cfg.SequenceTTL),
		service.WithBatchConcurrency(cfg.BatchConcurrency),
	}
	if cfg.RandomSeed != nil {
		svcOpts = append(svcOpts, service.WithRandomSource(motion.NewSeededSource(*cfg.RandomSeed)))
		log.Info("deterministic generation enabled", "seed", *cfg.RandomSeed)
	}
	svc, err := service.New(cache, results, svcOpts...)
	if err != nil {
		return err
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:       log,
		Liveness:     livenesshandler.New(svc, log),
		Metrics:      metrics.New(reg),
		Gatherer:     reg,
		HealthChecks: checks,
	})
	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting cardcheck", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
