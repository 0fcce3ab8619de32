package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chrisdamba/schedulo/internal/api"
	"github.com/chrisdamba/schedulo/internal/logging"
	"github.com/chrisdamba/schedulo/internal/ports"
	"github.com/chrisdamba/schedulo/internal/repository"
	"github.com/chrisdamba/schedulo/internal/service"
	"github.com/chrisdamba/schedulo/pkg/config"
	"github.com/chrisdamba/schedulo/pkg/health"
	"github.com/jackc/pgx/v5/pgxpool"
)

const version = "1.0.0"

type App struct {
	config *config.Config
	log    *slog.Logger
	server *http.Server
	db     *pgxpool.Pool
}

func NewApp(cfg *config.Config, log *slog.Logger) *App {
	return &App{
		config: cfg,
		log:    log,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.setupDatabase(ctx); err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}

	if err := a.setupServer(ctx); err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	return nil
}

func (a *App) setupDatabase(ctx context.Context) error {
	if a.config.Database.Driver == "memory" {
		a.log.Warn("using in-memory booking storage; data is lost on exit")
		return nil
	}

	config, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	return nil
}

func (a *App) setupServer(ctx context.Context) error {
	services, err := a.setupServices(ctx)
	if err != nil {
		return err
	}

	a.server = &http.Server{
		Addr:         a.config.Server.Address,
		Handler:      a.setupRouter(services),
		WriteTimeout: a.config.Server.WriteTimeout,
		ReadTimeout:  a.config.Server.ReadTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	return nil
}

type Services struct {
	BookingService ports.BookingService
}

func (a *App) setupServices(ctx context.Context) (Services, error) {
	var repo ports.BookingRepository
	if a.db == nil {
		repo = repository.NewMemoryRepository()
	} else {
		pg := repository.NewBookingRepository(a.db)
		if err := pg.Migrate(ctx); err != nil {
			return Services{}, err
		}
		repo = pg
	}

	return Services{
		BookingService: service.NewBookingService(repo),
	}, nil
}

func (a *App) setupRouter(services Services) http.Handler {
	router := http.NewServeMux()
	var db health.Pinger
	if a.db != nil {
		db = a.db
	}
	router.HandleFunc("/health", health.HealthGet(version, db))
	api.Register(router, services.BookingService, a.log)
	return router
}

func (a *App) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		a.log.Info("starting booking store", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-shutdown:
		a.log.Info("starting graceful shutdown")
		return a.Shutdown()
	case <-ctx.Done():
		return a.Shutdown()
	}
}

func (a *App) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.db != nil {
		a.db.Close()
	}

	return nil
}

func main() {
	ctx := context.Background()

	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", "err", err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	log := logging.New(os.Stderr, cfg.Log.Level)

	app := NewApp(cfg, log)
	if err := app.Initialize(ctx); err != nil {
		log.Error("failed to initialize application", "err", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("application error", "err", err)
		os.Exit(1)
	}
}
