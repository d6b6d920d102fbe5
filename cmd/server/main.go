package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dirhandler "supportdir/internal/directory/handler"
	"supportdir/internal/directory/service"
	"supportdir/internal/directory/store/organisation"
	"supportdir/internal/events"
	"supportdir/internal/geo"
	httpapi "supportdir/internal/http"
	"supportdir/internal/notify"
	"supportdir/internal/platform/config"
	"supportdir/internal/platform/httpserver"
	"supportdir/internal/platform/logger"
	"supportdir/internal/platform/postgres"
	platformredis "supportdir/internal/platform/redis"
	"supportdir/internal/verification"
	opshandler "supportdir/internal/verification/handler"
	"supportdir/internal/verification/metrics"
)

// main wires dependencies and owns the process lifecycle. Business rules live
// in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var checks []httpapi.HealthCheck

	// Organisation store: postgres when configured, in-memory otherwise.
	var store organisation.Store
	if cfg.Postgres.URL != "" {
		pool, err := postgres.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		pg := organisation.NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Error("schema migration failed", "error", err)
			os.Exit(1)
		}
		store = pg
		checks = append(checks, httpapi.HealthCheck{Name: "postgres", Probe: pool.Ping})
		log.Info("using postgres organisation store")
	} else {
		store = organisation.NewInMemory()
		log.Warn("DATABASE_URL not set, using in-memory organisation store")
	}

	// Geocode resolver, optionally fronted by a Redis cache.
	var resolver geo.Resolver = geo.NewClient(cfg.Geocode)
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		resolver = geo.NewCachedResolver(resolver, redisClient, cfg.Geocode.CacheTTL,
			geo.WithCacheLogger(log))
		checks = append(checks, httpapi.HealthCheck{Name: "redis", Probe: redisClient.Health})
		log.Info("geocode cache enabled")
	}
	coordinator := geo.NewCoordinator(resolver, geo.WithLogger(log))

	dirService, err := service.New(store, coordinator, service.WithLogger(log))
	if err != nil {
		log.Error("directory service init failed", "error", err)
		os.Exit(1)
	}

	dispatcher, err := notify.NewSMTPDispatcher(cfg.SMTP, notify.WithLogger(log))
	if err != nil {
		log.Error("smtp dispatcher init failed", "error", err)
		os.Exit(1)
	}

	scanOpts := []verification.Option{
		verification.WithLogger(log),
		verification.WithMetrics(metrics.New()),
	}
	publisher, err := events.NewKafkaPublisher(cfg.Kafka)
	if err != nil {
		log.Error("kafka publisher init failed", "error", err)
		os.Exit(1)
	}
	if publisher != nil {
		defer publisher.Close()
		scanOpts = append(scanOpts, verification.WithPublisher(publisher))
		log.Info("lifecycle events enabled", "topic", cfg.Kafka.Topic)
	}

	scanner, err := verification.New(store, dispatcher, cfg.Verification, scanOpts...)
	if err != nil {
		log.Error("verification scanner init failed", "error", err)
		os.Exit(1)
	}

	scheduler := verification.NewScheduler(scanner,
		cfg.Verification.RunAtHour, cfg.Verification.RunAtMinute,
		verification.WithSchedulerLogger(log))
	scheduler.Start()
	defer scheduler.Stop()

	router := httpapi.NewRouter([]httpapi.Registrar{
		dirhandler.New(dirService, log),
		opshandler.New(scheduler, log),
	}, checks)

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
