// Package app wires the service together: storage, repositories, services,
// handlers and the HTTP server lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/chronora/retailops/internal/advisor"
	"github.com/chronora/retailops/internal/config"
	"github.com/chronora/retailops/internal/event"
	handler "github.com/chronora/retailops/internal/handler/http"
	"github.com/chronora/retailops/internal/repository/postgres"
	"github.com/chronora/retailops/internal/service"
	"github.com/chronora/retailops/internal/storage/disk"
	"github.com/chronora/retailops/migrations"
	"github.com/chronora/retailops/pkg/database"
	"github.com/chronora/retailops/pkg/health"
	"github.com/chronora/retailops/pkg/kafka"
	"github.com/chronora/retailops/pkg/middleware"
)

// App holds the wired service and its closeable resources.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	redis    *redis.Client
	producer *kafka.Producer
	server   *http.Server
}

// New builds the application: connects to Postgres, runs migrations, wires
// optional Kafka and Redis, and assembles the HTTP routing tree.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	a := &App{cfg: cfg, logger: logger, pool: pool}

	var events event.Publisher = event.NoopPublisher{}
	if cfg.KafkaEnabled {
		a.producer = kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		events = event.NewKafkaPublisher(a.producer, logger)
	}

	var sessions advisor.SessionStore = advisor.NewMemorySessionStore(cfg.SessionTTL)
	if cfg.RedisEnabled {
		client, err := database.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			// Redis is an optimization for session sharing, not a hard
			// dependency. Fall back to in-process sessions.
			logger.Warn("redis unavailable, using in-memory sessions",
				slog.String("error", err.Error()),
			)
		} else {
			a.redis = client
			sessions = advisor.NewRedisSessionStore(client, cfg.SessionTTL)
		}
	}

	store, err := disk.New(cfg.UploadDir)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init upload dir: %w", err)
	}

	products := postgres.NewProductRepository(pool)
	attrs := postgres.NewAttributeRepository(pool)
	media := postgres.NewMediaRepository(pool)

	catalog := service.NewCatalogService(products, attrs, media, store, events, logger)
	importer := service.NewImportService(products, events, logger)

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if a.redis != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return a.redis.Ping(ctx).Err()
		})
	}

	advisorHandler := advisor.NewHandler(advisor.NewStore(), sessions, cfg.AdvisorPIN, logger)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins

	router := handler.NewRouter(handler.RouterConfig{
		ServiceName: cfg.ServiceName,
		Logger:      logger,
		Health:      healthHandler,
		Products:    handler.NewProductHandler(catalog, logger),
		Media:       handler.NewMediaHandler(catalog, logger),
		Import:      handler.NewImportHandler(importer, logger),
		Advisor:     advisorHandler.Routes(),
		UploadDir:   store.Root(),
		CORS:        corsCfg,
	})

	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

// Run starts the HTTP server and blocks until the context is cancelled, then
// shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	a.Close()
	return nil
}

// Close releases all held resources.
func (a *App) Close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("failed to close kafka producer", slog.String("error", err.Error()))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
