package state

import (
	"context"

	"grocidish-client/domain"
	apperrors "grocidish-client/pkg/errors"
)

// FamilyDetailsState holds the read-only family snapshot, replaced wholesale
// on every fetch.
type FamilyDetailsState struct {
	Details   *domain.FamilyDetails
	IsLoading bool
	Error     string
}

// FamilyDetailsSlice loads the family snapshot.
type FamilyDetailsSlice struct {
	deps
	seq sequence
}

// FetchFamilyDetails replaces the snapshot with the server's current view.
func (s *FamilyDetailsSlice) FetchFamilyDetails(ctx context.Context) error {
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	token := s.seq.begin()
	s.store.Dispatch(func(r *RootState) {
		r.FamilyDetails.IsLoading = true
		r.FamilyDetails.Error = ""
	})

	var details domain.FamilyDetails
	err := s.client.Get(ctx, "/family/getFamilyDetails", nil, &details)
	s.record("family_details", "fetch", err)
	if !s.seq.commit(token) {
		return err
	}
	if err != nil {
		message := apperrors.UserMessage(err)
		s.store.Dispatch(func(r *RootState) {
			r.FamilyDetails.IsLoading = false
			r.FamilyDetails.Error = message
		})
		return err
	}

	s.store.Dispatch(func(r *RootState) {
		r.FamilyDetails.IsLoading = false
		r.FamilyDetails.Details = &details
	})
	return nil
}
