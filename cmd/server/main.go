package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/court-reservation-backend/internal/app"
	"github.com/nekogravitycat/court-reservation-backend/internal/config"
	"github.com/nekogravitycat/court-reservation-backend/internal/db"
	"github.com/nekogravitycat/court-reservation-backend/internal/event"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/lock"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/logger"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/storage"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.IsProduction)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
	zl.Info("server exited gracefully")
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	containerCfg := app.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		JWTSecret:         cfg.JWTSecret,
		JWTTTL:            cfg.JWTAccessTokenTTL,
		BcryptCost:        cfg.BcryptCost,
		BookingWindowDays: cfg.BookingWindowDays,
		Location:          cfg.Location,
		Log:               zl,
	}

	// Connect DB
	if cfg.StoreBackend == config.StorePostgres {
		if err := db.Migrate(cfg.DBDSN, zl); err != nil {
			return err
		}

		pool, err := db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer pool.Close()
		containerCfg.DBPool = pool
	}
	zl.Info("storage backend selected", zap.String("backend", cfg.StoreBackend))

	// Schedule lock: Redis across instances, in-process otherwise
	if cfg.RedisAddr != "" {
		rl, err := lock.NewRedisLock(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer rl.Close()
		containerCfg.Locker = rl
		zl.Info("using redis schedule lock", zap.String("addr", cfg.RedisAddr))
	}

	// Reservation events: RabbitMQ when configured, the log otherwise
	if cfg.AMQPURL != "" {
		pub, err := event.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		defer pub.Close()
		containerCfg.Publisher = pub
		zl.Info("publishing events to rabbitmq", zap.String("exchange", cfg.AMQPExchange))
	}

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return err
	}
	containerCfg.Storage = store

	container, err := app.NewContainer(ctx, containerCfg)
	if err != nil {
		return err
	}

	if cfg.AdminEmail != "" {
		if _, err := container.UserService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
	}

	// Completion sweeper
	go container.ReservationService.RunSweeper(ctx, cfg.SweepInterval)

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		zl.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for Ctrl+C or a listener failure
	select {
	case <-ctx.Done():
		zl.Info("shutdown signal received")
	case err := <-serveErr:
		return err
	}

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Warn("server forced to shutdown", zap.Error(err))
	}
	return nil
}
