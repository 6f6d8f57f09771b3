package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/document_reception_app/internal/adapters/cache"
	"github.com/SscSPs/document_reception_app/internal/adapters/events"
	"github.com/SscSPs/document_reception_app/internal/core/ports"
	"github.com/SscSPs/document_reception_app/internal/core/services"
	"github.com/SscSPs/document_reception_app/internal/handlers"
	"github.com/SscSPs/document_reception_app/internal/middleware"
	"github.com/SscSPs/document_reception_app/internal/platform/config"
	"github.com/SscSPs/document_reception_app/internal/platform/metrics"
	"github.com/SscSPs/document_reception_app/internal/repositories/database/pgsql"
	redisclient "github.com/SscSPs/document_reception_app/pkg/cache"
	"github.com/SscSPs/document_reception_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Document Reception API
// @version 1.0
// @description Notification reception and approval tracking backend.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

// run wires the application and serves until ctx is cancelled. Resources opened
// here are released by deferred calls before it returns.
func run(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	loginLimiter, err := middleware.NewMemoryRateLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("invalid login rate limit %q: %w", cfg.LoginRateLimit, err)
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	masterCache, closeCache := newMasterDataCache(ctx, logger, cfg)
	defer closeCache()
	publisher := newEventPublisher(logger, cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Error closing event publisher", slog.String("error", err.Error()))
		}
	}()

	registry := prometheus.NewRegistry()
	metrics.MustRegister(registry)

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, masterCache, publisher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.GinMetricsMiddleware(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, registry, loginLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func runMigrations(logger *slog.Logger, cfg *config.Config) error {
	logger.Info("Running database migrations...")
	// A separate database/sql handle is required by the migrate postgres driver.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// newMasterDataCache connects to Redis when configured and falls back to no caching.
// The returned func releases the connection.
func newMasterDataCache(ctx context.Context, logger *slog.Logger, cfg *config.Config) (ports.MasterDataCache, func()) {
	noop := func() {}
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, master data cache disabled")
		return cache.NoopMasterDataCache{}, noop
	}
	client, err := redisclient.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("Redis unavailable, master data cache disabled", slog.String("error", err.Error()))
		return cache.NoopMasterDataCache{}, noop
	}
	logger.Info("Master data cache enabled", slog.Duration("ttl", cfg.MasterCacheTTL))
	return cache.NewRedisMasterDataCache(client), func() {
		if err := client.Close(); err != nil {
			logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}
}

// newEventPublisher returns a Kafka publisher when brokers are configured.
func newEventPublisher(logger *slog.Logger, cfg *config.Config) ports.NotificationEventPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("KAFKA_BROKERS not set, notification events disabled")
		return events.NoopPublisher{}
	}
	logger.Info("Publishing notification events", slog.Any("brokers", cfg.KafkaBrokers), slog.String("topic", cfg.KafkaEventsTopic))
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
}
