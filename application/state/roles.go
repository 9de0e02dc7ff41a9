package state

import (
	"context"

	"grocidish-client/domain"
	apperrors "grocidish-client/pkg/errors"
)

// RolesState holds the member names available for role assignment.
type RolesState struct {
	Members   []string
	IsLoading bool
	Error     string
}

// RolesSlice runs the role management operations.
type RolesSlice struct {
	deps
	seq sequence
}

func (s *RolesSlice) pending() {
	s.store.Dispatch(func(r *RootState) {
		r.Roles.IsLoading = true
		r.Roles.Error = ""
	})
}

func (s *RolesSlice) reject(err error) {
	message := apperrors.UserMessage(err)
	s.store.Dispatch(func(r *RootState) {
		r.Roles.IsLoading = false
		r.Roles.Error = message
	})
}

// FetchFamilyMembers loads the names of the family's members.
func (s *RolesSlice) FetchFamilyMembers(ctx context.Context) error {
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	token := s.seq.begin()
	s.pending()

	var out struct {
		Members []string `json:"members"`
	}
	err := s.client.Get(ctx, "/family/getFamilyNames", nil, &out)
	s.record("roles", "fetch_members", err)
	if !s.seq.commit(token) {
		return err
	}
	if err != nil {
		s.reject(err)
		return err
	}

	members := out.Members
	if members == nil {
		members = []string{}
	}
	s.store.Dispatch(func(r *RootState) {
		r.Roles.IsLoading = false
		r.Roles.Members = members
	})
	return nil
}

// AssignRole assigns one of the two assignable roles to a member by name.
func (s *RolesSlice) AssignRole(ctx context.Context, assignment domain.RoleAssignment) error {
	if err := domain.Validate(assignment); err != nil {
		return err
	}
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	s.pending()

	err := s.client.Post(ctx, "/roles/assign", assignment, nil)
	s.record("roles", "assign", err)
	if err != nil {
		s.reject(err)
		return err
	}

	s.store.Dispatch(func(r *RootState) {
		r.Roles.IsLoading = false
	})
	return nil
}
