package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"grocidish-client/domain"
	"grocidish-client/infrastructure/storage"
	"grocidish-client/pkg/auth"
	apperrors "grocidish-client/pkg/errors"
)

// AuthState is the session slice. HasFamily and HasHealthProfile are nil
// until the corresponding check has completed at least once.
type AuthState struct {
	Token            string
	User             *domain.User
	IsLoggedIn       bool
	HasFamily        *bool
	HasHealthProfile *bool
	Role             *domain.Role
	IsLoading        bool
	Error            string
}

// AuthSlice runs the session operations.
type AuthSlice struct {
	deps

	familySeq  sequence
	profileSeq sequence
	roleSeq    sequence
}

func (s *AuthSlice) pending() {
	s.store.Dispatch(func(r *RootState) {
		r.Auth.IsLoading = true
		r.Auth.Error = ""
	})
}

func (s *AuthSlice) reject(err error) {
	message := apperrors.UserMessage(err)
	s.store.Dispatch(func(r *RootState) {
		r.Auth.IsLoading = false
		r.Auth.Error = message
	})
}

// Login authenticates, persists the bearer token, and establishes the
// in-memory session.
func (s *AuthSlice) Login(ctx context.Context, creds domain.Credentials) error {
	if err := domain.Validate(creds); err != nil {
		return err
	}
	s.pending()

	// Token and user arrive at the top level of the response body.
	var out struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	err := s.client.Post(ctx, "/users/authenticate", creds, &out)
	if err == nil && out.Token == "" {
		err = apperrors.NewServerError("malformed server response")
	}
	if err == nil {
		if storeErr := s.tokens.Set(ctx, storage.KeyAuthToken, out.Token); storeErr != nil {
			err = apperrors.NewStorageError("persist auth token", storeErr)
		}
	}
	s.record("auth", "login", err)
	if err != nil {
		s.reject(err)
		return err
	}

	user := out.User
	s.store.Dispatch(func(r *RootState) {
		r.Auth.IsLoading = false
		r.Auth.Token = out.Token
		r.Auth.User = &user
		r.Auth.IsLoggedIn = true
	})
	return nil
}

// Register submits a new account for email verification.
func (s *AuthSlice) Register(ctx context.Context, reg domain.Registration) error {
	if err := domain.Validate(reg); err != nil {
		return err
	}
	s.pending()

	err := s.client.Post(ctx, "/users/register", reg, nil)
	s.record("auth", "register", err)
	if err != nil {
		s.reject(err)
		return err
	}

	s.store.Dispatch(func(r *RootState) {
		r.Auth.IsLoading = false
	})
	return nil
}

// VerifyCode confirms the emailed signup code.
func (s *AuthSlice) VerifyCode(ctx context.Context, verification domain.Verification) error {
	if err := domain.Validate(verification); err != nil {
		return err
	}
	s.pending()

	err := s.client.Post(ctx, "/users/verifyUser", verification, nil)
	s.record("auth", "verify", err)
	if err != nil {
		s.reject(err)
		return err
	}

	s.store.Dispatch(func(r *RootState) {
		r.Auth.IsLoading = false
	})
	return nil
}

// HasFamily asks the server whether the user already belongs to a family.
func (s *AuthSlice) HasFamily(ctx context.Context) (bool, error) {
	if err := s.requireAuth(ctx); err != nil {
		return false, err
	}
	token := s.familySeq.begin()
	s.pending()

	var out struct {
		Response struct {
			HasFamily bool `json:"hasFamily"`
		} `json:"response"`
	}
	err := s.client.Get(ctx, "/users/hasFamily", nil, &out)
	s.record("auth", "has_family", err)
	if !s.familySeq.commit(token) {
		return out.Response.HasFamily, err
	}
	if err != nil {
		s.reject(err)
		return false, err
	}

	value := out.Response.HasFamily
	s.store.Dispatch(func(r *RootState) {
		r.Auth.IsLoading = false
		r.Auth.HasFamily = &value
	})
	return value, nil
}

// HasHealthProfile asks the server whether a health profile exists.
func (s *AuthSlice) HasHealthProfile(ctx context.Context) (bool, error) {
	if err := s.requireAuth(ctx); err != nil {
		return false, err
	}
	token := s.profileSeq.begin()
	s.pending()

	var out struct {
		Response struct {
			HasHealthProfile bool `json:"hasHealthProfile"`
		} `json:"response"`
	}
	err := s.client.Get(ctx, "/users/hasHealthProfile", nil, &out)
	s.record("auth", "has_health_profile", err)
	if !s.profileSeq.commit(token) {
		return out.Response.HasHealthProfile, err
	}
	if err != nil {
		s.reject(err)
		return false, err
	}

	value := out.Response.HasHealthProfile
	s.store.Dispatch(func(r *RootState) {
		r.Auth.IsLoading = false
		r.Auth.HasHealthProfile = &value
	})
	return value, nil
}

// FetchRole loads the user's role flags.
func (s *AuthSlice) FetchRole(ctx context.Context) error {
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	token := s.roleSeq.begin()
	s.pending()

	var out struct {
		Role domain.Role `json:"role"`
	}
	err := s.client.Get(ctx, "/roles/getRole", nil, &out)
	s.record("auth", "fetch_role", err)
	if !s.roleSeq.commit(token) {
		return err
	}
	if err != nil {
		s.reject(err)
		return err
	}

	role := out.Role
	s.store.Dispatch(func(r *RootState) {
		r.Auth.IsLoading = false
		r.Auth.Role = &role
	})
	return nil
}

// UpdatePassword changes the logged-in user's password.
func (s *AuthSlice) UpdatePassword(ctx context.Context, update domain.PasswordUpdate) error {
	if err := domain.Validate(update); err != nil {
		return err
	}
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	s.pending()

	err := s.client.Put(ctx, "/users/update-password", update, nil)
	s.record("auth", "update_password", err)
	if err != nil {
		s.reject(err)
		return err
	}

	s.store.Dispatch(func(r *RootState) {
		r.Auth.IsLoading = false
	})
	return nil
}

// Logout removes the persisted token and resets the session and every
// family-scoped slice. The in-memory state is cleared even when the token
// removal fails.
func (s *AuthSlice) Logout(ctx context.Context) error {
	removeErr := s.tokens.Remove(ctx, storage.KeyAuthToken)

	s.store.Dispatch(func(r *RootState) {
		r.Auth = AuthState{}
		r.Family = FamilyState{}
		r.FamilyDetails = FamilyDetailsState{}
		r.Roles = RolesState{}
	})

	s.record("auth", "logout", removeErr)
	if removeErr != nil {
		return apperrors.NewStorageError("remove auth token", removeErr)
	}
	return nil
}

// RestoreSession re-reads the persisted token on process start. A token with
// an expired JWT exp claim is discarded, leaving the session logged out.
func (s *AuthSlice) RestoreSession(ctx context.Context) (bool, error) {
	token, found, err := s.tokens.Get(ctx, storage.KeyAuthToken)
	if err != nil {
		return false, apperrors.NewStorageError("read auth token", err)
	}
	if !found || token == "" {
		return false, nil
	}

	if auth.TokenExpired(token, time.Now()) {
		if err := s.tokens.Remove(ctx, storage.KeyAuthToken); err != nil {
			s.logger.Warn("Failed to remove expired token", zap.Error(err))
		}
		return false, nil
	}

	s.store.Dispatch(func(r *RootState) {
		r.Auth.Token = token
		r.Auth.IsLoggedIn = true
	})
	return true, nil
}
