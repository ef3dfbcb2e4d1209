package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/NotJorge/tienda-informatica/internal/adapter/httpserver"
	"github.com/NotJorge/tienda-informatica/internal/adapter/metrics"
	"github.com/NotJorge/tienda-informatica/internal/adapter/postgres"
	"github.com/NotJorge/tienda-informatica/internal/adapter/redis"
	"github.com/NotJorge/tienda-informatica/internal/app"
	"github.com/NotJorge/tienda-informatica/internal/auth"
	"github.com/NotJorge/tienda-informatica/internal/config"
	"github.com/NotJorge/tienda-informatica/internal/domain"
	"github.com/NotJorge/tienda-informatica/internal/logging"
	"github.com/NotJorge/tienda-informatica/internal/notify"
	"github.com/NotJorge/tienda-informatica/internal/storage"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *httpserver.Server, registry *notify.Registry) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		registry.Stop()
		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(context.Background(), cfg)
	defer func() { _ = redisClient.Close() }()

	images, err := storage.NewFileStore(cfg.UploadsDir)
	if err != nil {
		slog.Error("Failed to create upload storage", "error", err)
		os.Exit(1)
	}

	metricsRegistry := metrics.NewRegistry()
	wsMetrics := metrics.NewWebSocketMetrics(metricsRegistry)
	cacheMetrics := metrics.NewCacheMetrics(metricsRegistry)

	notifyRegistry := notify.NewRegistry(clock, cfg.MaxClientsPerChannel, wsMetrics,
		domain.ChannelProduct, domain.ChannelCategory, domain.ChannelSupplier,
		domain.ChannelClient, domain.ChannelEmployee)

	productCache := redis.NewEntityCache[domain.Product](redisClient, domain.ChannelProduct, cfg.CacheTTL, cacheMetrics)
	categoryCache := redis.NewEntityCache[domain.Category](redisClient, domain.ChannelCategory, cfg.CacheTTL, cacheMetrics)
	supplierCache := redis.NewEntityCache[domain.Supplier](redisClient, domain.ChannelSupplier, cfg.CacheTTL, cacheMetrics)
	clientCache := redis.NewEntityCache[domain.Client](redisClient, domain.ChannelClient, cfg.CacheTTL, cacheMetrics)
	employeeCache := redis.NewEntityCache[domain.Employee](redisClient, domain.ChannelEmployee, cfg.CacheTTL, cacheMetrics)

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTExpiry, clock)

	authService := app.NewAuthService(postgres.NewUserRepo(pool), tokens)
	if cfg.AdminPassword != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := authService.EnsureAdminUser(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			cancel()
			slog.Error("Failed to bootstrap admin user", "error", err)
			os.Exit(1)
		}
		cancel()
	} else {
		slog.Warn("ADMIN_PASSWORD not set, skipping bootstrap admin user")
	}

	services := httpserver.Services{
		Products:   app.NewProductService(postgres.NewProductRepo(pool), productCache, notifyRegistry, images),
		Categories: app.NewCategoryService(postgres.NewCategoryRepo(pool), categoryCache, notifyRegistry),
		Suppliers:  app.NewSupplierService(postgres.NewSupplierRepo(pool), supplierCache, notifyRegistry),
		Clients:    app.NewClientService(postgres.NewClientRepo(pool), clientCache, notifyRegistry, images),
		Employees:  app.NewEmployeeService(postgres.NewEmployeeRepo(pool), employeeCache, notifyRegistry),
		Auth:       authService,
	}

	healthChecks := []httpserver.HealthCheck{
		{Name: "postgres", Check: pool.Ping},
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
	}

	srv := httpserver.NewServer(cfg, services, tokens, notifyRegistry, metricsRegistry, healthChecks)

	done := runGracefulShutdown(srv, notifyRegistry)

	if err := srv.Start(); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
