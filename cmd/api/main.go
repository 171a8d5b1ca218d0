// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Inkpost HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and .env when present).
//  3. Connect to PostgreSQL (pgxpool) and Redis.
//  4. Run database migrations (idempotent).
//  5. Build the token codec, password hasher, request guards and tracer provider.
//  6. Wire repositories, services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/taibuivan/inkpost/internal/api"
	"github.com/taibuivan/inkpost/internal/blog"
	"github.com/taibuivan/inkpost/internal/comment"
	"github.com/taibuivan/inkpost/internal/platform/config"
	"github.com/taibuivan/inkpost/internal/platform/constants"
	"github.com/taibuivan/inkpost/internal/platform/middleware"
	"github.com/taibuivan/inkpost/internal/platform/migration"
	pgstore "github.com/taibuivan/inkpost/internal/platform/postgres"
	redisstore "github.com/taibuivan/inkpost/internal/platform/redis"
	"github.com/taibuivan/inkpost/internal/platform/sec"
	"github.com/taibuivan/inkpost/internal/platform/tracing"
	"github.com/taibuivan/inkpost/internal/reaction"
	"github.com/taibuivan/inkpost/internal/users"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Duration("access_token_ttl", cfg.AccessTokenTTL),
	)

	// Root context lives for the whole process; background workers stop on cancel.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Security ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL)
	must(log, err, "initialize token service")

	hasher := sec.NewPasswordHasher(cfg.BcryptCost)
	revocations := users.NewRevocationStore(rdb)

	guard := middleware.Authenticate(tokens, revocations)
	identify := middleware.Identify(tokens, revocations)

	proxies, err := middleware.NewProxyPolicy(cfg.TrustedProxies)
	must(log, err, "parse trusted proxies")

	// ── 6. Tracing ────────────────────────────────────────────────────────
	tracerProvider, shutdownTracing, err := tracing.Setup(tracing.Options{
		ServiceName:    cfg.TracingServiceName,
		ServiceVersion: constants.AppVersion,
		Exporter:       cfg.TracingExporter,
		Output:         os.Stdout,
	})
	must(log, err, "initialize tracing")
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if terr := shutdownTracing(flushCtx); terr != nil {
			log.Error("tracing shutdown error", slog.Any("error", terr))
		}
	}()
	log.Info("tracing_configured", slog.String("exporter", cfg.TracingExporter))

	// ── 7. Health handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userService := users.NewService(users.NewPostgresRepository(pool), revocations, tokens, hasher, log)
	blogService := blog.NewService(blog.NewPostgresRepository(pool), log)
	reactionService := reaction.NewService(reaction.NewPostgresRepository(pool), blogService, log)
	commentService := comment.NewService(comment.NewPostgresRepository(pool), blogService, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Users:     users.NewHandler(userService, guard),
		Blogs:     blog.NewHandler(blogService, reactionService, guard, identify),
		Comments:  comment.NewHandler(commentService, guard),
	}

	server := api.NewServer(rootCtx, cfg, log, proxies, tracerProvider.Tracer(cfg.TracingServiceName), handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		rootCancel()
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
