// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Netinv HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Run database migrations (idempotent).
//  4. Connect to PostgreSQL (pgxpool) and Redis.
//  5. Build the content type registry and the cached resolver.
//  6. Wire services and HTTP handlers.
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

	"github.com/taibuivan/netinv/internal/api"
	"github.com/taibuivan/netinv/internal/contenttype"
	"github.com/taibuivan/netinv/internal/dcim"
	"github.com/taibuivan/netinv/internal/extras"
	"github.com/taibuivan/netinv/internal/platform/config"
	"github.com/taibuivan/netinv/internal/platform/constants"
	"github.com/taibuivan/netinv/internal/platform/ctxutil"
	"github.com/taibuivan/netinv/internal/platform/metrics"
	"github.com/taibuivan/netinv/internal/platform/migration"
	pgstore "github.com/taibuivan/netinv/internal/platform/postgres"
	redisstore "github.com/taibuivan/netinv/internal/platform/redis"
	"github.com/taibuivan/netinv/internal/platform/sec"
	"github.com/taibuivan/netinv/internal/serializer"
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
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 4. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, redisstore.ClientConfig{URL: cfg.RedisURL, PoolSize: cfg.RedisPoolSize}, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	verifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize token verifier")

	// ── 5. Content types & resolver ───────────────────────────────────────
	instruments := metrics.New()
	registry := contenttype.NewRegistry(instruments)
	resolver := contenttype.NewCachedResolver(registry, rdb, cfg.ObjectCacheTTL, log, instruments)
	opts := []serializer.Option{serializer.WithObserver(instruments), serializer.WithResolver(resolver)}

	// ── 6. Domain wiring ──────────────────────────────────────────────────
	extrasRepository := extras.NewPostgresRepository(pool)
	tagService := extras.NewTagService(extrasRepository, opts, log)
	journalService := extras.NewJournalService(extrasRepository, tagService, resolver, opts, log)

	dcimService := dcim.NewService(dcim.NewPostgresRepository(pool), tagService, journalService, resolver, opts, log)

	registrations := []struct {
		contentType contenttype.ContentType
		meta        *serializer.Meta
		find        contenttype.Finder
	}{
		{contenttype.ContentType{AppLabel: "dcim", Model: "site", Name: "Site"}, dcim.SiteMeta,
			contenttype.FromGetter(dcim.ContentTypeSite, dcimService.GetSite)},
		{contenttype.ContentType{AppLabel: "dcim", Model: "device", Name: "Device"}, dcim.DeviceMeta,
			contenttype.FromGetter(dcim.ContentTypeDevice, dcimService.GetDevice)},
		{contenttype.ContentType{AppLabel: "extras", Model: "tag", Name: "Tag"}, extras.TagMeta,
			contenttype.FromGetter(extras.ContentTypeTag, tagService.Get)},
		{contenttype.ContentType{AppLabel: "extras", Model: "journalentry", Name: "Journal Entry"}, extras.JournalEntryMeta,
			contenttype.FromGetter(extras.ContentTypeJournalEntry, journalService.Get)},
	}
	for _, registration := range registrations {
		must(log, registry.Register(registration.contentType, registration.meta, registration.find), "register "+registration.contentType.Key())
	}

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, verifier, api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Metrics:      instruments.Handler(),
		ContentTypes: contenttype.NewHandler(registry),
		DCIM:         dcim.NewHandler(dcimService),
		Extras:       extras.NewHandler(tagService, journalService),
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := ctxutil.NewContextHandler(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is
// non-nil. It is limited to startup wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
