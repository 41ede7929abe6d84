package di

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"elevate-backend/internal/api"
	"elevate-backend/internal/config"
	"elevate-backend/internal/content"
	"elevate-backend/internal/media"
	"elevate-backend/internal/observability"
	"elevate-backend/internal/repository"
	"elevate-backend/internal/repository/sqlstore"
	"elevate-backend/internal/repository/supabase"
)

// ============================================================================
// INFRASTRUCTURE
// ============================================================================

// provideMetrics returns nil when metrics are disabled.
func provideMetrics(cfg *config.Config) *observability.Collector {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return observability.NewCollector(cfg.Metrics.Namespace)
}

// provideRemoteStore opens the configured driver and decorates it with the
// circuit breaker and instrumentation. The "none" driver yields a nil store,
// which the content store treats as unavailable.
func provideRemoteStore(ctx context.Context, cfg *config.Config, logger *zap.Logger, metrics *observability.Collector) (repository.RemoteStore, func(), error) {
	var (
		store   repository.RemoteStore
		cleanup = func() {}
	)

	driver := cfg.RemoteDriver()
	switch driver {
	case config.DriverSupabase:
		s, err := supabase.New(cfg.Supabase.URL, cfg.Supabase.AnonKey, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create supabase store: %w", err)
		}
		store = s
	case config.DriverPostgres, config.DriverSQLite:
		dialect := sqlstore.Postgres
		if driver == config.DriverSQLite {
			dialect = sqlstore.SQLite
		}
		s, err := sqlstore.Open(ctx, dialect, cfg.Remote.DatabaseURL, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s store: %w", driver, err)
		}
		store = s
		cleanup = func() {
			if err := s.Close(); err != nil {
				logger.Warn("Failed to close remote store", zap.Error(err))
			}
		}
	default:
		logger.Info("No remote store configured, serving seed content")
		return nil, cleanup, nil
	}

	if cb := cfg.Remote.CircuitBreaker; cb.Enabled {
		store = repository.NewCircuitBreakerStore(store, repository.CircuitBreakerConfig{
			Name:             "remote-" + driver,
			MaxRequests:      cb.MaxRequests,
			Interval:         cb.Interval,
			Timeout:          cb.Timeout,
			FailureThreshold: cb.FailureThreshold,
			MinRequests:      cb.MinRequests,
		}, logger)
	}

	opts := []repository.InstrumentOption{repository.WithCallTimeout(cfg.Remote.Timeout)}
	if metrics != nil {
		opts = append(opts, repository.WithRecorder(metrics))
	}
	store = repository.NewInstrumentedStore(store, opts...)

	logger.Info("Remote store configured", zap.String("driver", driver))
	return store, cleanup, nil
}

// provideMediaStorage returns nil when uploads are disabled.
func provideMediaStorage(ctx context.Context, cfg *config.Config) (media.Storage, error) {
	switch cfg.MediaDriver() {
	case config.DriverSupabase:
		return media.NewSupabaseStorage(cfg.Supabase.URL, cfg.Supabase.AnonKey, cfg.Supabase.Bucket), nil
	case config.DriverS3:
		s3cfg := cfg.Media.S3
		s, err := media.NewS3Storage(ctx, media.S3Config{
			Bucket:          s3cfg.Bucket,
			Region:          s3cfg.Region,
			Endpoint:        s3cfg.Endpoint,
			AccessKeyID:     s3cfg.AccessKeyID,
			SecretAccessKey: s3cfg.SecretAccessKey,
			PublicBaseURL:   s3cfg.PublicBaseURL,
			UsePathStyle:    s3cfg.UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 storage: %w", err)
		}
		return s, nil
	case config.DriverMemory:
		return media.NewMemoryStorage(""), nil
	}
	return nil, nil
}

// ============================================================================
// CONTENT & MEDIA
// ============================================================================

func provideContentStore(remote repository.RemoteStore, cfg *config.Config, logger *zap.Logger, metrics *observability.Collector) *content.Store {
	opts := []content.Option{content.WithLogger(logger)}
	if metrics != nil {
		opts = append(opts, content.WithRecorder(metrics))
	}
	if cfg.Content.EmptyMeansEmpty {
		opts = append(opts, content.WithEmptyMeansEmpty())
	}
	return content.New(remote, opts...)
}

func provideMediaService(storage media.Storage, cfg *config.Config, logger *zap.Logger, metrics *observability.Collector) *media.Service {
	opts := []media.Option{
		media.WithLogger(logger),
		media.WithLimits(cfg.Media.MaxImageBytes, cfg.Media.MaxVideoBytes),
		media.WithCacheControl(cfg.Media.CacheControl),
	}
	if metrics != nil {
		opts = append(opts, media.WithRecorder(metrics))
	}
	return media.NewService(storage, opts...)
}

// ============================================================================
// INTERFACES
// ============================================================================

func provideAdminSecret(cfg *config.Config, logger *zap.Logger) *api.AdminSecret {
	if !cfg.AdminEnabled() {
		logger.Warn("Admin password not set, admin routes are disabled")
	}
	return api.NewAdminSecret(cfg.Admin.Password)
}

func provideRouter(
	cfg *config.Config,
	store *content.Store,
	uploads *media.Service,
	secret *api.AdminSecret,
	metrics *observability.Collector,
	logger *zap.Logger,
) *chi.Mux {
	router := api.NewRouter(store, uploads, secret, metrics, logger, api.Options{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		CORSMaxAge:      cfg.CORS.MaxAge,
		MutationTimeout: cfg.Server.MutationTimeout,
		MaxUploadBytes:  cfg.Media.MaxVideoBytes,
	})
	return router.Setup()
}

func provideContainer(
	cfg *config.Config,
	logger *zap.Logger,
	metrics *observability.Collector,
	remote repository.RemoteStore,
	store *content.Store,
	uploads *media.Service,
	secret *api.AdminSecret,
	router *chi.Mux,
) *Container {
	return &Container{
		Config:      cfg,
		Logger:      logger,
		Metrics:     metrics,
		Remote:      remote,
		Store:       store,
		Media:       uploads,
		AdminSecret: secret,
		Router:      router,
	}
}

// New builds the container. Shutdown releases everything New acquired.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	container, cleanup, err := InitializeContainer(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	container.cleanup = cleanup
	return container, nil
}
