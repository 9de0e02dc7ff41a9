package state

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"grocidish-client/domain"
	"grocidish-client/infrastructure/cache"
	apperrors "grocidish-client/pkg/errors"
)

// RecommendationState is the meal recommendation carousel: per-meal-type
// recipe lists, a cursor per type, and the selection lock flag.
type RecommendationState struct {
	Sets            domain.RecommendationSet
	Cursors         map[domain.MealType]int
	ButtonsDisabled bool
	IsLoading       bool
	Error           string
}

// RecommendationSlice runs the recommendation operations and owns the
// client-side cache policy. Two independent 24-hour guarantees live here:
// the cached snapshot's freshness and the post-selection lock.
type RecommendationSlice struct {
	deps
	cache  *cache.TTLCache
	window *cache.Window
	seq    sequence
}

func (s *RecommendationSlice) pending() {
	s.store.Dispatch(func(r *RootState) {
		r.Recommendation.IsLoading = true
		r.Recommendation.Error = ""
	})
}

func (s *RecommendationSlice) reject(err error) {
	message := apperrors.UserMessage(err)
	s.store.Dispatch(func(r *RootState) {
		r.Recommendation.IsLoading = false
		r.Recommendation.Error = message
	})
}

// adopt replaces the recommendation sets and resets every cursor.
func (s *RecommendationSlice) adopt(set domain.RecommendationSet) {
	s.store.Dispatch(func(r *RootState) {
		r.Recommendation.IsLoading = false
		r.Recommendation.Sets = set
		r.Recommendation.Cursors = map[domain.MealType]int{}
	})
}

// normalize fills in any meal type the server omitted so the carousel always
// sees every category.
func normalize(set domain.RecommendationSet) domain.RecommendationSet {
	out := domain.EmptyRecommendationSet()
	for mt, recipes := range set {
		if recipes != nil {
			out[mt] = recipes
		}
	}
	return out
}

// Load applies the cache policy. First the selection window sets the lock
// flag, independent of cache freshness. Then a fresh cached snapshot is
// adopted with zero network calls; anything else triggers a fetch that
// overwrites the cache.
func (s *RecommendationSlice) Load(ctx context.Context) error {
	if err := s.requireAuth(ctx); err != nil {
		return err
	}

	locked := s.window.Active(ctx)
	s.store.Dispatch(func(r *RootState) {
		r.Recommendation.ButtonsDisabled = locked
	})

	if payload, ok := s.cache.Load(ctx); ok {
		var set domain.RecommendationSet
		if err := json.Unmarshal([]byte(payload), &set); err == nil {
			if s.metrics != nil {
				s.metrics.CacheHits.Inc()
			}
			s.record("recommendation", "load", nil)
			s.adopt(normalize(set))
			return nil
		}
		s.logger.Warn("Cached recommendations are malformed, refetching")
	}

	if s.metrics != nil {
		s.metrics.CacheMisses.Inc()
	}
	return s.fetch(ctx, "load")
}

// Regenerate fetches a fresh set unconditionally. It is gated only by the
// selection lock, never by cache freshness.
func (s *RecommendationSlice) Regenerate(ctx context.Context) error {
	if s.store.Snapshot().Recommendation.ButtonsDisabled {
		return apperrors.NewConflictError("Meals already selected for today")
	}
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	return s.fetch(ctx, "regenerate")
}

func (s *RecommendationSlice) fetch(ctx context.Context, operation string) error {
	token := s.seq.begin()
	s.pending()

	var out struct {
		Data struct {
			Data domain.RecommendationSet `json:"data"`
		} `json:"data"`
	}
	err := s.client.Post(ctx, "/recipes/recipeRecommendation", nil, &out)
	s.record("recommendation", operation, err)
	if !s.seq.commit(token) {
		return err
	}
	if err != nil {
		s.reject(err)
		return err
	}

	set := normalize(out.Data.Data)
	if encoded, marshalErr := json.Marshal(set); marshalErr == nil {
		if storeErr := s.cache.Store(ctx, string(encoded)); storeErr != nil {
			s.logger.Warn("Failed to cache recommendations", zap.Error(storeErr))
		}
	}

	s.adopt(set)
	return nil
}

// selectionPayload is the meal selection submission body.
type selectionPayload struct {
	Meals []domain.MealSelection `json:"meals"`
}

// SelectMeals submits every currently recommended meal, stamps the selection
// window, and locks the buttons for its duration.
func (s *RecommendationSlice) SelectMeals(ctx context.Context) error {
	snapshot := s.store.Snapshot().Recommendation
	if snapshot.ButtonsDisabled {
		return apperrors.NewConflictError("Meals already selected for today")
	}
	selections := snapshot.Sets.Selections()
	if len(selections) == 0 {
		return apperrors.NewValidationError("No meals to select")
	}
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	s.pending()

	err := s.client.Post(ctx, "/recipes/storeSelectedMeal", selectionPayload{Meals: selections}, nil)
	s.record("recommendation", "select_meals", err)
	if err != nil {
		s.reject(err)
		return err
	}

	if touchErr := s.window.Touch(ctx); touchErr != nil {
		s.logger.Warn("Failed to stamp meal selection window", zap.Error(touchErr))
	}

	s.store.Dispatch(func(r *RootState) {
		r.Recommendation.IsLoading = false
		r.Recommendation.ButtonsDisabled = true
	})
	return nil
}

// NextRecipe steps the category's cursor forward, wrapping past the end.
// No-op on an empty category.
func (s *RecommendationSlice) NextRecipe(mealType domain.MealType) {
	s.step(mealType, 1)
}

// PreviousRecipe steps the category's cursor backward, wrapping past the
// start. No-op on an empty category.
func (s *RecommendationSlice) PreviousRecipe(mealType domain.MealType) {
	s.step(mealType, -1)
}

func (s *RecommendationSlice) step(mealType domain.MealType, delta int) {
	s.store.Dispatch(func(r *RootState) {
		k := len(r.Recommendation.Sets[mealType])
		if k == 0 {
			return
		}
		cursors := make(map[domain.MealType]int, len(r.Recommendation.Cursors)+1)
		for mt, c := range r.Recommendation.Cursors {
			cursors[mt] = c
		}
		cursors[mealType] = ((cursors[mealType]+delta)%k + k) % k
		r.Recommendation.Cursors = cursors
	})
}

// CurrentRecipe returns the recipe under the category's cursor, if any.
func (s *RecommendationSlice) CurrentRecipe(mealType domain.MealType) (domain.Recipe, bool) {
	snapshot := s.store.Snapshot().Recommendation
	recipes := snapshot.Sets[mealType]
	if len(recipes) == 0 {
		return domain.Recipe{}, false
	}
	return recipes[snapshot.Cursors[mealType]], true
}
