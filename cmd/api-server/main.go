package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bookwell/appointment-backend/internal/api"
	"github.com/bookwell/appointment-backend/internal/auth"
	"github.com/bookwell/appointment-backend/internal/availability"
	"github.com/bookwell/appointment-backend/internal/booking"
	"github.com/bookwell/appointment-backend/internal/catalog"
	"github.com/bookwell/appointment-backend/internal/config"
	"github.com/bookwell/appointment-backend/internal/db"
	"github.com/bookwell/appointment-backend/internal/logging"
	redisclient "github.com/bookwell/appointment-backend/internal/redis"
	"github.com/bookwell/appointment-backend/internal/user"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("api-server starting up",
		zap.String("env", cfg.Env),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("version", version),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		logger.Fatal("postgres connection error", zap.Error(err))
	}
	defer pgPool.Close()
	logger.Info("connected to Postgres")

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		logger.Fatal("redis connection error", zap.Error(err))
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("error closing redis", zap.Error(err))
		}
	}()
	logger.Info("connected to Redis")

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	locker := redisclient.NewRedisProviderLocker(rdb, cfg.LockTTL, cfg.LockRetryInterval)

	users := user.NewService(user.NewPgRepository(pgPool), hasher, tokens, logger)
	cat := catalog.New(catalog.NewPgRepository(pgPool), logger)
	availabilities := availability.NewService(availability.NewPgRepository(pgPool), logger)
	bookings := booking.NewService(booking.NewPgRepository(pgPool), cat, availabilities, locker, logger)

	router := api.NewRouter(api.RouterConfig{
		Users:          users,
		Catalog:        cat,
		Availabilities: availabilities,
		Bookings:       bookings,
		PgPool:         pgPool,
		Redis:          rdb,
		Logger:         logger,
		Env:            cfg.Env,
		Version:        version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Fatal("http server error", zap.Error(err))
	case <-rootCtx.Done():
	}

	logger.Info("shutting down api-server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
