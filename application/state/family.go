package state

import (
	"context"

	"grocidish-client/domain"
	apperrors "grocidish-client/pkg/errors"
)

// FamilyState tracks family membership: the invite code and whether the
// user has joined or created a family this session.
type FamilyState struct {
	Code      string
	Joined    bool
	IsLoading bool
	Error     string
}

// FamilySlice runs the family membership operations.
type FamilySlice struct {
	deps
}

func (s *FamilySlice) pending() {
	s.store.Dispatch(func(r *RootState) {
		r.Family.IsLoading = true
		r.Family.Error = ""
	})
}

func (s *FamilySlice) reject(err error) {
	message := apperrors.UserMessage(err)
	s.store.Dispatch(func(r *RootState) {
		r.Family.IsLoading = false
		r.Family.Error = message
	})
}

// JoinFamily joins an existing family by invite code.
func (s *FamilySlice) JoinFamily(ctx context.Context, code string) error {
	if err := domain.Validate(domain.JoinCode{Code: code}); err != nil {
		return err
	}
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	s.pending()

	err := s.client.Post(ctx, "/family/joinFamily", domain.JoinCode{Code: code}, nil)
	s.record("family", "join", err)
	if err != nil {
		s.reject(err)
		return err
	}

	s.store.Dispatch(func(r *RootState) {
		r.Family.IsLoading = false
		r.Family.Joined = true
		r.Family.Code = code
	})
	return nil
}

// CreateFamily creates a new family and stores its invite code.
func (s *FamilySlice) CreateFamily(ctx context.Context) error {
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	s.pending()

	var out struct {
		Code string `json:"code"`
	}
	err := s.client.Post(ctx, "/family/createFamily", nil, &out)
	s.record("family", "create", err)
	if err != nil {
		s.reject(err)
		return err
	}

	s.store.Dispatch(func(r *RootState) {
		r.Family.IsLoading = false
		r.Family.Joined = true
		r.Family.Code = out.Code
	})
	return nil
}

// FetchFamilyCode loads the invite code of the user's family.
func (s *FamilySlice) FetchFamilyCode(ctx context.Context) error {
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	s.pending()

	var out struct {
		Code string `json:"code"`
	}
	err := s.client.Post(ctx, "/family/getFamilyCode", nil, &out)
	s.record("family", "fetch_code", err)
	if err != nil {
		s.reject(err)
		return err
	}

	s.store.Dispatch(func(r *RootState) {
		r.Family.IsLoading = false
		r.Family.Code = out.Code
	})
	return nil
}

// Reset clears the family slice. Dispatched on logout.
func (s *FamilySlice) Reset() {
	s.store.Dispatch(func(r *RootState) {
		r.Family = FamilyState{}
	})
}
