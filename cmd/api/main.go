// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

// Command api is the entry point for the PeopleDesk HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis (optional, enables the login throttle).
//  5. Run database migrations (idempotent).
//  6. Seed the role catalogue and the bootstrap admin account.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/peopledesk/peopledesk/internal/api"
	"github.com/peopledesk/peopledesk/internal/hr/bankreq"
	"github.com/peopledesk/peopledesk/internal/hr/dbscheck"
	"github.com/peopledesk/peopledesk/internal/hr/employee"
	"github.com/peopledesk/peopledesk/internal/hr/homeoffice"
	"github.com/peopledesk/peopledesk/internal/iam"
	"github.com/peopledesk/peopledesk/internal/platform/config"
	"github.com/peopledesk/peopledesk/internal/platform/constants"
	"github.com/peopledesk/peopledesk/internal/platform/migration"
	pgstore "github.com/peopledesk/peopledesk/internal/platform/postgres"
	redisstore "github.com/peopledesk/peopledesk/internal/platform/redis"
	"github.com/peopledesk/peopledesk/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[PeopleDesk] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application-lifetime context for background routines (rate limiter cleanup).
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	// Without Redis the login throttle is disabled but everything else works.
	var throttle iam.LoginThrottle
	var checkCache func() error

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		throttle = iam.NewLoginThrottle(rdb)
		checkCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	} else {
		log.Warn("redis_not_configured_login_throttle_disabled")
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security Primitives ────────────────────────────────────────────
	tokenService := sec.NewTokenService([]byte(cfg.JWTSecret), constants.AuthIssuer)
	hasher := sec.NewHasher(cfg.BcryptCost)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: checkCache,
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := iam.NewUserRepository(pool)
	roleRepository := iam.NewRoleRepository(pool)

	employeeRepository := employee.NewPostgresRepository(pool)
	employeeService := employee.NewService(employeeRepository, log)
	employeeHandler := employee.NewHandler(employeeService)

	iamService := iam.NewService(userRepository, roleRepository, throttle, hasher, tokenService, employeeService)
	iamHandler := iam.NewHandler(iamService)

	bankRequestService := bankreq.NewService(bankreq.NewPostgresRepository(pool), log)
	bankRequestHandler := bankreq.NewHandler(bankRequestService)

	homeOfficeService := homeoffice.NewService(homeoffice.NewPostgresRepository(pool), log)
	homeOfficeHandler := homeoffice.NewHandler(homeOfficeService)

	dbsCheckService := dbscheck.NewService(dbscheck.NewPostgresRepository(pool), log)
	dbsCheckHandler := dbscheck.NewHandler(dbsCheckService)

	// ── 9. Seeding ────────────────────────────────────────────────────────
	must(log, iamService.SeedRoles(startupCtx, log), "seed roles")
	must(log, iamService.SeedAdminUser(startupCtx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword, log), "seed admin user")

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		IAM:         iamHandler,
		Employee:    employeeHandler,
		BankRequest: bankRequestHandler,
		HomeOffice:  homeOfficeHandler,
		DBSCheck:    dbsCheckHandler,
	}

	server := api.NewServer(appCtx, cfg, log, tokenService, userRepository, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
