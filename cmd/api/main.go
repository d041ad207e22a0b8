// Package main is the entry point for the Trip Concierge API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voyagecraft/concierge/backend/internal/config"
	"github.com/voyagecraft/concierge/backend/internal/handler"
	"github.com/voyagecraft/concierge/backend/internal/kv"
	"github.com/voyagecraft/concierge/backend/internal/middleware"
	"github.com/voyagecraft/concierge/backend/internal/partner"
	"github.com/voyagecraft/concierge/backend/internal/proposal"
	"github.com/voyagecraft/concierge/backend/internal/store"
	"github.com/voyagecraft/concierge/backend/internal/syncbridge"
	"github.com/voyagecraft/concierge/backend/migrations"
	"github.com/voyagecraft/concierge/backend/pkg/metrics"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Partition store --------------------------------------------------
	// With DATABASE_URL set, partitions live in Postgres and migrations run
	// at bootstrap. Without it, partitions are in-memory: the core's
	// best-effort durability means everything still works, state just does
	// not survive a restart.
	var backing kv.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		if err := migrate(cfg.DatabaseURL); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("database connection established")

		backing = kv.NewPostgres(pool)
	} else {
		slog.Warn("DATABASE_URL not set; using in-memory partition store")
		backing = kv.NewMemory()
	}

	// --- Core -------------------------------------------------------------
	m := metrics.New(prometheus.DefaultRegisterer, "concierge")

	var syncer store.Syncer
	var puller handler.RemotePuller
	if cfg.SyncURL != "" {
		bridge := syncbridge.New(
			syncbridge.NewHTTPClient(cfg.SyncURL, 0, logger),
			syncbridge.DebounceWindow, logger, m,
		)
		defer bridge.Flush()
		syncer = bridge
		puller = bridge
	}

	trips := store.New(context.Background(), backing, cfg.StoragePrefix, syncer, logger, m)

	var activities proposal.ActivitiesSearcher
	if cfg.ActivitiesURL != "" {
		activities = partner.NewActivitiesClient(cfg.ActivitiesURL, cfg.PartnerTimeout, logger)
	}
	var transfers proposal.TransfersSearcher
	if cfg.TransfersURL != "" {
		transfers = partner.NewTransfersClient(cfg.TransfersURL, cfg.PartnerTimeout, logger)
	}
	generator := proposal.NewGenerator(trips, activities, transfers, logger, m)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(1 << 20)) // 1 MiB

	r.Mount("/", handler.NewServer(trips, generator, puller, logger).Routes())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies all pending migrations using the embedded SQL files.
// goose needs database/sql, not a pgx pool, so it gets its own connection.
func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}
