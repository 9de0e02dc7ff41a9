package state

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"grocidish-client/domain"
	apperrors "grocidish-client/pkg/errors"
)

// RecipesState is the paginated recipe browser. The slice owns the page
// cursor and the active filters together: a filter change starts a new
// sequence at page 1, LoadMore appends the next page of the same sequence.
type RecipesState struct {
	Recipes   []domain.Recipe
	Page      int
	Filters   domain.RecipeFilters
	HasMore   bool
	IsLoading bool
	Error     string
}

// RecipesSlice runs the recipe list and preference operations.
type RecipesSlice struct {
	deps
	pageSize int
	seq      sequence

	prefMu   sync.Mutex
	inFlight map[int]struct{}
}

func (s *RecipesSlice) pending() {
	s.store.Dispatch(func(r *RootState) {
		r.Recipes.IsLoading = true
		r.Recipes.Error = ""
	})
}

func (s *RecipesSlice) reject(err error) {
	message := apperrors.UserMessage(err)
	s.store.Dispatch(func(r *RootState) {
		r.Recipes.IsLoading = false
		r.Recipes.Error = message
	})
}

// fetchPage loads one page from the server.
func (s *RecipesSlice) fetchPage(ctx context.Context, page int, filters domain.RecipeFilters) ([]domain.Recipe, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(s.pageSize))
	if filters.Category != "" {
		query.Set("category", filters.Category)
	}
	if filters.IngredientType != "" {
		query.Set("ingredientType", filters.IngredientType)
	}
	if filters.Disease != "" {
		query.Set("disease", filters.Disease)
	}

	var out struct {
		Data []domain.Recipe `json:"data"`
	}
	if err := s.client.Get(ctx, "/recipes/getRecipe", query, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// LoadRecipes starts a new sequence at page 1 with the given filters,
// replacing whatever was loaded before.
func (s *RecipesSlice) LoadRecipes(ctx context.Context, filters domain.RecipeFilters) error {
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	token := s.seq.begin()
	s.pending()

	recipes, err := s.fetchPage(ctx, 1, filters)
	s.record("recipes", "load", err)
	if !s.seq.commit(token) {
		return err
	}
	if err != nil {
		s.reject(err)
		return err
	}

	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	hasMore := len(recipes) == s.pageSize
	s.store.Dispatch(func(r *RootState) {
		r.Recipes.IsLoading = false
		r.Recipes.Recipes = recipes
		r.Recipes.Page = 1
		r.Recipes.Filters = filters
		r.Recipes.HasMore = hasMore
	})
	return nil
}

// LoadMore appends the next page of the current sequence in server order.
// A load already in flight, or an exhausted sequence, is a no-op.
func (s *RecipesSlice) LoadMore(ctx context.Context) error {
	current := s.store.Snapshot().Recipes
	if current.IsLoading || !current.HasMore {
		return nil
	}
	if err := s.requireAuth(ctx); err != nil {
		return err
	}

	nextPage := current.Page + 1
	token := s.seq.begin()
	s.pending()

	recipes, err := s.fetchPage(ctx, nextPage, current.Filters)
	s.record("recipes", "load_more", err)
	if !s.seq.commit(token) {
		return err
	}
	if err != nil {
		s.reject(err)
		return err
	}

	hasMore := len(recipes) == s.pageSize
	s.store.Dispatch(func(r *RootState) {
		combined := make([]domain.Recipe, 0, len(r.Recipes.Recipes)+len(recipes))
		combined = append(combined, r.Recipes.Recipes...)
		combined = append(combined, recipes...)
		r.Recipes.IsLoading = false
		r.Recipes.Recipes = combined
		r.Recipes.Page = nextPage
		r.Recipes.HasMore = hasMore
	})
	return nil
}

// preferencePayload is the preference submission body.
type preferencePayload struct {
	RecipeID   int               `json:"recipeId"`
	Preference domain.Preference `json:"preference"`
}

// UpdatePreference records a like or dislike with toggle-of-intent:
// requesting the preference a recipe already has sends REMOVE and clears it
// locally. A submission already in flight for the same recipe is rejected.
func (s *RecipesSlice) UpdatePreference(ctx context.Context, recipeID int, desired domain.Preference) error {
	if desired != domain.PreferenceLike && desired != domain.PreferenceDislike {
		return apperrors.NewValidationError("Invalid selection")
	}
	if err := s.requireAuth(ctx); err != nil {
		return err
	}

	var target *domain.Recipe
	for _, recipe := range s.store.Snapshot().Recipes.Recipes {
		if recipe.ID == recipeID {
			r := recipe
			target = &r
			break
		}
	}
	if target == nil {
		return apperrors.NewValidationError("Recipe not found")
	}

	s.prefMu.Lock()
	if s.inFlight == nil {
		s.inFlight = make(map[int]struct{})
	}
	if _, busy := s.inFlight[recipeID]; busy {
		s.prefMu.Unlock()
		return apperrors.NewConflictError("Preference update already in progress")
	}
	s.inFlight[recipeID] = struct{}{}
	s.prefMu.Unlock()

	defer func() {
		s.prefMu.Lock()
		delete(s.inFlight, recipeID)
		s.prefMu.Unlock()
	}()

	outgoing := desired
	if target.Preference != nil && *target.Preference == desired {
		outgoing = domain.PreferenceRemove
	}

	err := s.client.Post(ctx, "/recipes/updatePreference", preferencePayload{
		RecipeID:   recipeID,
		Preference: outgoing,
	}, nil)
	s.record("recipes", "update_preference", err)
	if err != nil {
		return err
	}

	s.store.Dispatch(func(r *RootState) {
		updated := make([]domain.Recipe, len(r.Recipes.Recipes))
		copy(updated, r.Recipes.Recipes)
		for i := range updated {
			if updated[i].ID != recipeID {
				continue
			}
			if outgoing == domain.PreferenceRemove {
				updated[i].Preference = nil
			} else {
				p := outgoing
				updated[i].Preference = &p
			}
		}
		r.Recipes.Recipes = updated
	})
	return nil
}
