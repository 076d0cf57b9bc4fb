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

	"finance-tracker/internal/config"
	"finance-tracker/internal/database"
	"finance-tracker/internal/handlers"
	"finance-tracker/internal/kvstore"
	"finance-tracker/internal/middleware"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const rateLimiterCleanupInterval = time.Minute

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg := config.Load()

	level, _ := config.ParseLogLevel(cfg.Server.LogLevel)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// storage bundles the KV backend with its health check and cleanup
type storage struct {
	kv     kvstore.Store
	health kvstore.HealthChecker
	close  func() error
}

func openStorage(cfg *config.StorageConfig) (*storage, error) {
	if cfg.Driver == config.DriverMemory {
		mem := kvstore.NewMemoryStore()
		return &storage{kv: mem, health: mem, close: func() error { return nil }}, nil
	}

	db, err := database.Initialize(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store := kvstore.NewBreakerStore(kvstore.NewGormStore(db.DB), kvstore.DefaultBreakerConfig())
	return &storage{kv: store, health: store, close: db.Close}, nil
}

func newServer(cfg *config.Config, st *storage, reg prometheus.Registerer, metricsHandler http.Handler, limiter *middleware.RateLimiter) (*echo.Echo, error) {
	var opts []repositories.StoreOption
	if cfg.Storage.KeyPrefix != "" {
		opts = append(opts, repositories.WithKeyPrefix(cfg.Storage.KeyPrefix))
	}

	store := repositories.NewStore(st.kv, opts...)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load stored data: %w", err)
	}

	metrics := services.NewPrometheusMetrics(reg)
	transactionService := services.NewTransactionService(store, metrics)
	budgetService := services.NewBudgetService(store, metrics)
	dashboardService := services.NewDashboardService(store, metrics)
	categoryService := services.NewCategoryService()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, middleware.TraceIDHeader},
	}))
	e.Use(limiter.Middleware())

	handlers.RegisterRoutes(e, handlers.Handlers{
		Health:       handlers.NewHealthCheckHandler(st.health, cfg.Storage.Driver),
		Transactions: handlers.NewTransactionHandler(transactionService, cfg.RecentTransactionsLimit),
		Budgets:      handlers.NewBudgetHandler(budgetService),
		Dashboard:    handlers.NewDashboardHandler(dashboardService, cfg.RecentTransactionsLimit),
		Categories:   handlers.NewCategoryHandler(categoryService),
	}, metricsHandler)

	return e, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	st, err := openStorage(&cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			slog.Warn("failed to close storage", "error", err)
		}
	}()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)

	// the api error counter lives on the default registry, so domain metrics join it there
	e, err := newServer(cfg, st, prometheus.DefaultRegisterer, promhttp.Handler(), limiter)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:           cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:        e,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting finance tracker", "addr", srv.Addr, "storage", cfg.Storage.Driver, "env", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return limiter.Run(gctx, rateLimiterCleanupInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
