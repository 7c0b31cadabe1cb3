package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"boxoffice/internal/auth"
	"boxoffice/internal/config"
	"boxoffice/internal/ledger"
	"boxoffice/internal/postgres"
	"boxoffice/internal/pricing"
	redisx "boxoffice/internal/redis"
	"boxoffice/internal/repository"
	filerepo "boxoffice/internal/repository/file"
	postgresrepo "boxoffice/internal/repository/postgres"
	redisrepo "boxoffice/internal/repository/redis"
	"boxoffice/internal/schedule"
	"boxoffice/internal/service"
	httpgin "boxoffice/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	services   *service.Services
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize persistence
	var (
		reservations repository.ReservationStore
		users        repository.UserStore
	)
	switch cfg.Store.Backend {
	case "postgres":
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s?sslmode=%s",
			cfg.Store.Postgres.User,
			cfg.Store.Postgres.Password,
			cfg.Store.Postgres.Host,
			cfg.Store.Postgres.Port,
			cfg.Store.Postgres.Name,
			cfg.Store.Postgres.SSLMode,
		)

		pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: dsn})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}

		store := postgresrepo.NewStore(pgxPool)
		if err := store.Migrate(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to migrate postgres: %w", err)
		}
		reservations = store.Reservations()
		users = store.Users()
	default:
		if err := os.MkdirAll(cfg.Store.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
		reservations = filerepo.NewReservationStore(cfg.Store.DataDir)
		users = filerepo.NewUserStore(cfg.Store.DataDir)
	}

	// Redis is optional. Without it the availability cache, idempotency
	// store, rate limiter, and pubsub stay disabled.
	var (
		cache            *redisrepo.Cache
		pubsub           *redisx.ShowsPubSub
		limiter          *redisrepo.SlidingWindowLimiter
		idempotencyStore *redisrepo.IdempotencyStore
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redisx.New(context.Background(), redisx.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		cache = redisrepo.New(rdb)
		pubsub = redisx.NewShowsPubSub(rdb)
		limiter = redisrepo.NewSlidingWindowLimiter(rdb, "rl", 10, 1*time.Minute)
		idempotencyStore = redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)
	}

	// Initialize the core
	catalog := schedule.New(schedule.Config{})
	calc := pricing.New(pricing.Config{})
	ldg := ledger.New(catalog, logger)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	services := service.NewServices(
		ldg,
		catalog,
		calc,
		reservations,
		users,
		tokens,
		cache,
		pubsub,
		limiter,
		logger,
		service.Config{},
	)

	// Replay persisted reservations into the season's seat inventories
	services.Booking.Bootstrap(context.Background())

	// Initialize Gin router
	router := httpgin.NewRouter(services, tokens, idempotencyStore, logger)

	return &App{
		cfg:      cfg,
		logger:   logger,
		services: services,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Graceful shutdown: stop accepting requests, then save the ledger
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.httpServer.Shutdown(ctx); err != nil {
			return err
		}
		if err := a.services.Booking.Persist(ctx); err != nil {
			a.logger.Error("saving reservations on shutdown failed", "error", err)
		}
		return nil
	})

	return g.Wait()
}
