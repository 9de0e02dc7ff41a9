package state

import (
	"context"
	"time"

	"grocidish-client/domain"
	"grocidish-client/infrastructure/api"
	apperrors "grocidish-client/pkg/errors"
)

// GroceryState holds the generated grocery list, replaced wholesale on every
// generate or fetch.
type GroceryState struct {
	List      *domain.GroceryList
	IsLoading bool
	Error     string
}

// GrocerySlice runs the grocery list operations. Generation can take the
// server minutes, so it overrides the API timeout.
type GrocerySlice struct {
	deps
	timeout time.Duration
	seq     sequence
}

func (s *GrocerySlice) pending() {
	s.store.Dispatch(func(r *RootState) {
		r.Grocery.IsLoading = true
		r.Grocery.Error = ""
	})
}

func (s *GrocerySlice) reject(err error) {
	message := apperrors.UserMessage(err)
	s.store.Dispatch(func(r *RootState) {
		r.Grocery.IsLoading = false
		r.Grocery.Error = message
	})
}

func (s *GrocerySlice) adopt(list domain.GroceryList) {
	s.store.Dispatch(func(r *RootState) {
		r.Grocery.IsLoading = false
		r.Grocery.List = &list
	})
}

// GenerateGroceryList asks the server to build a list within the budget.
func (s *GrocerySlice) GenerateGroceryList(ctx context.Context, budget float64) error {
	request := domain.BudgetRequest{Budget: budget}
	if err := domain.Validate(request); err != nil {
		return err
	}
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	token := s.seq.begin()
	s.pending()

	var out struct {
		Data domain.GroceryList `json:"data"`
	}
	err := s.client.Post(ctx, "/grocery/createGroceryList", request, &out, api.WithTimeout(s.timeout))
	s.record("grocery", "generate", err)
	if !s.seq.commit(token) {
		return err
	}
	if err != nil {
		s.reject(err)
		return err
	}

	s.adopt(out.Data)
	return nil
}

// FetchGroceryList loads the family's current list.
func (s *GrocerySlice) FetchGroceryList(ctx context.Context) error {
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	token := s.seq.begin()
	s.pending()

	var out struct {
		Data domain.GroceryList `json:"data"`
	}
	err := s.client.Post(ctx, "/grocery/getGroceryList", nil, &out)
	s.record("grocery", "fetch", err)
	if !s.seq.commit(token) {
		return err
	}
	if err != nil {
		s.reject(err)
		return err
	}

	s.adopt(out.Data)
	return nil
}
