// Package di assembles the client: configuration, logging, storage, caches,
// the API adapter, and the composed state store, wired with google/wire.
package di

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"grocidish-client/application/state"
	"grocidish-client/infrastructure/api"
	"grocidish-client/infrastructure/cache"
	"grocidish-client/infrastructure/config"
	"grocidish-client/infrastructure/storage"
	"grocidish-client/pkg/observability"
)

// App is the assembled client.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Collector
	Tracing *observability.TracerProvider
	Client  *api.Client
	Store   *state.Store
	Slices  *state.Slices
}

// NewApp bundles the assembled collaborators.
func NewApp(
	cfg *config.Config,
	logger *zap.Logger,
	metrics *observability.Collector,
	tracing *observability.TracerProvider,
	client *api.Client,
	store *state.Store,
	slices *state.Slices,
) *App {
	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
		Tracing: tracing,
		Client:  client,
		Store:   store,
		Slices:  slices,
	}
}

// Shutdown flushes telemetry.
func (a *App) Shutdown(ctx context.Context) error {
	if a.Tracing != nil {
		if err := a.Tracing.Shutdown(ctx); err != nil {
			return err
		}
	}
	_ = a.Logger.Sync()
	return nil
}

// ProvideLogger builds the zap logger for the configured environment.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	return observability.NewLogger(cfg.Environment)
}

// ProvideMetrics builds the metrics collector, or nil when metrics are off.
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector("grocidish")
}

// ProvideTracing initializes the tracer provider, or nil when tracing is
// off. With no provider the API adapter uses the global no-op tracer.
func ProvideTracing(cfg *config.Config) (*observability.TracerProvider, error) {
	if !cfg.EnableTracing {
		return nil, nil
	}
	return observability.InitTracing(cfg.ServiceName, cfg.Environment, cfg.TracingEndpoint)
}

// ProvideKeyValueStore opens the file-backed store at the configured path.
func ProvideKeyValueStore(cfg *config.Config, logger *zap.Logger) (storage.KeyValueStore, error) {
	return storage.NewFileStore(cfg.StoragePath, logger)
}

// ProvideAPIClient builds the HTTP adapter.
func ProvideAPIClient(cfg *config.Config, kv storage.KeyValueStore, metrics *observability.Collector, logger *zap.Logger) *api.Client {
	return api.New(api.Config{
		BaseURL:       cfg.BaseURL,
		Timeout:       cfg.RequestTimeout,
		EnableBreaker: cfg.EnableBreaker,
		Metrics:       metrics,
	}, kv, logger)
}

// ProvideRecommendationCache builds the recommendation snapshot cache.
func ProvideRecommendationCache(cfg *config.Config, kv storage.KeyValueStore, logger *zap.Logger) *cache.TTLCache {
	return cache.NewTTLCache(kv,
		storage.KeyRecommendedRecipes, storage.KeyRecommendationTimestamp,
		cfg.RecommendationTTL, logger)
}

// ProvideSelectionWindow builds the meal-selection lock window.
func ProvideSelectionWindow(cfg *config.Config, kv storage.KeyValueStore, logger *zap.Logger) *cache.Window {
	return cache.NewWindow(kv, storage.KeyLastMealSelection, cfg.SelectionLockTTL, logger)
}

// ProvideStore builds the composed state store.
func ProvideStore() *state.Store {
	return state.NewStore()
}

// ProvideSlices wires the nine slice services.
func ProvideSlices(
	store *state.Store,
	client *api.Client,
	kv storage.KeyValueStore,
	recommendationCache *cache.TTLCache,
	selectionWindow *cache.Window,
	cfg *config.Config,
	logger *zap.Logger,
	metrics *observability.Collector,
) *state.Slices {
	return state.NewSlices(store, client, kv, recommendationCache, selectionWindow, state.Config{
		RecipePageSize: cfg.RecipePageSize,
		GroceryTimeout: cfg.GroceryTimeout,
	}, logger, metrics)
}

// ApplicationSet is the wire provider set for the full client.
var ApplicationSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideTracing,
	ProvideKeyValueStore,
	ProvideAPIClient,
	ProvideRecommendationCache,
	ProvideSelectionWindow,
	ProvideStore,
	ProvideSlices,
	NewApp,
)
