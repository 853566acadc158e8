package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/threadline/storefront/api/controllers"
	"github.com/threadline/storefront/api/routes"
	"github.com/threadline/storefront/internal/cart"
	"github.com/threadline/storefront/internal/catalog"
	"github.com/threadline/storefront/internal/orders"
	"github.com/threadline/storefront/internal/state"
	"github.com/threadline/storefront/internal/wishlist"
	"github.com/threadline/storefront/pkg/config"
	"github.com/threadline/storefront/pkg/db"
	"github.com/threadline/storefront/pkg/events"
	"github.com/threadline/storefront/pkg/logger"
	"github.com/threadline/storefront/pkg/metrics"
	"github.com/threadline/storefront/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var (
		repo    state.Repository
		checks  []controllers.Dependency
		closers []func() error
	)

	if cfg.State.UsesRedis() {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		repo = state.NewRedisRepository(redisClient)
		checks = append(checks, controllers.Dependency{Name: "redis", Pinger: redisClient})
		closers = append(closers, redisClient.Close)
	} else {
		dbClient, err := db.New(context.Background(), cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap database", err)
			os.Exit(1)
		}
		if err := dbClient.AutoMigrate(&state.CollectionRecord{}); err != nil {
			logg.Error(context.Background(), "failed to migrate schema", err)
			os.Exit(1)
		}
		repo = state.NewGormRepository(dbClient.DB())
		checks = append(checks, controllers.Dependency{Name: "database", Pinger: dbClient})
		closers = append(closers, dbClient.Close)
	}

	registry := prometheus.NewRegistry()
	broker := events.NewBroker()

	store, err := state.NewStore(repo, broker, metrics.NewCollectionMetrics(registry), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create collection store", err)
		os.Exit(1)
	}

	catalogSvc := catalog.NewService()

	cartSvc, err := cart.NewService(store, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	wishlistSvc, err := wishlist.NewService(store, cartSvc, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":           cfg.App.Env,
		"addr":          addr,
		"state_backend": cfg.State.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			Broker:       broker,
			Registry:     registry,
			Catalog:      catalogSvc,
			Cart:         cartSvc,
			Wishlist:     wishlistSvc,
			Orders:       orders.NewService(),
			HealthChecks: checks,
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")

		drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "error draining api server", err)
		}
	}

	var closeErr error
	for _, closeFn := range closers {
		closeErr = multierr.Append(closeErr, closeFn())
	}
	if closeErr != nil {
		logg.Error(ctx, "error closing backends", closeErr)
		os.Exit(1)
	}
}
