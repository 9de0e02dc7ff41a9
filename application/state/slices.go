package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"grocidish-client/infrastructure/api"
	"grocidish-client/infrastructure/cache"
	"grocidish-client/infrastructure/storage"
	apperrors "grocidish-client/pkg/errors"
	"grocidish-client/pkg/observability"
)

// Config carries the slice-level tunables.
type Config struct {
	// RecipePageSize is the page size for the recipe list.
	RecipePageSize int
	// GroceryTimeout overrides the API timeout for grocery generation.
	GroceryTimeout time.Duration
}

// deps are the collaborators shared by every slice service.
type deps struct {
	store   *Store
	client  *api.Client
	tokens  storage.KeyValueStore
	logger  *zap.Logger
	metrics *observability.Collector
}

// requireAuth rejects an authenticated operation locally when no token
// exists, without a network round trip. The in-memory session wins; the
// persisted token covers restored sessions.
func (d deps) requireAuth(ctx context.Context) error {
	if d.store.Snapshot().Auth.Token != "" {
		return nil
	}
	token, found, err := d.tokens.Get(ctx, storage.KeyAuthToken)
	if err != nil {
		return apperrors.NewStorageError("read auth token", err)
	}
	if !found || token == "" {
		return apperrors.NewUnauthorizedError("")
	}
	return nil
}

// record counts one operation outcome when metrics are wired.
func (d deps) record(domain, operation string, err error) {
	if d.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	d.metrics.RecordOperation(domain, operation, outcome)
}

// Slices bundles the nine slice services over one store.
type Slices struct {
	Auth           *AuthSlice
	Family         *FamilySlice
	FamilyDetails  *FamilyDetailsSlice
	Roles          *RolesSlice
	HealthProfile  *HealthProfileSlice
	Calorie        *CalorieSlice
	Recipes        *RecipesSlice
	Recommendation *RecommendationSlice
	Grocery        *GrocerySlice
}

// NewSlices wires every slice service to the shared store, API client, and
// persistence primitives.
func NewSlices(
	store *Store,
	client *api.Client,
	tokens storage.KeyValueStore,
	recommendationCache *cache.TTLCache,
	selectionWindow *cache.Window,
	cfg Config,
	logger *zap.Logger,
	metrics *observability.Collector,
) *Slices {
	if cfg.RecipePageSize <= 0 {
		cfg.RecipePageSize = 10
	}
	if cfg.GroceryTimeout <= 0 {
		cfg.GroceryTimeout = 6 * time.Minute
	}

	d := deps{store: store, client: client, tokens: tokens, logger: logger, metrics: metrics}

	return &Slices{
		Auth:           &AuthSlice{deps: d},
		Family:         &FamilySlice{deps: d},
		FamilyDetails:  &FamilyDetailsSlice{deps: d},
		Roles:          &RolesSlice{deps: d},
		HealthProfile:  &HealthProfileSlice{deps: d},
		Calorie:        &CalorieSlice{deps: d},
		Recipes:        &RecipesSlice{deps: d, pageSize: cfg.RecipePageSize},
		Recommendation: &RecommendationSlice{deps: d, cache: recommendationCache, window: selectionWindow},
		Grocery:        &GrocerySlice{deps: d, timeout: cfg.GroceryTimeout},
	}
}
