package state

import (
	"context"

	"grocidish-client/domain"
	apperrors "grocidish-client/pkg/errors"
)

// CalorieState holds the read-only nutrition snapshot.
type CalorieState struct {
	Stats     *domain.CalorieStats
	IsLoading bool
	Error     string
}

// CalorieSlice loads the nutrition snapshot.
type CalorieSlice struct {
	deps
	seq sequence
}

// FetchCalorieStats replaces the snapshot with the server's current view.
func (s *CalorieSlice) FetchCalorieStats(ctx context.Context) error {
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	token := s.seq.begin()
	s.store.Dispatch(func(r *RootState) {
		r.Calorie.IsLoading = true
		r.Calorie.Error = ""
	})

	var out struct {
		CaloricData domain.CalorieStats `json:"caloricData"`
	}
	err := s.client.Post(ctx, "/caloric/getCaloricInfo", nil, &out)
	s.record("calorie", "fetch", err)
	if !s.seq.commit(token) {
		return err
	}
	if err != nil {
		message := apperrors.UserMessage(err)
		s.store.Dispatch(func(r *RootState) {
			r.Calorie.IsLoading = false
			r.Calorie.Error = message
		})
		return err
	}

	stats := out.CaloricData
	s.store.Dispatch(func(r *RootState) {
		r.Calorie.IsLoading = false
		r.Calorie.Stats = &stats
	})
	return nil
}
