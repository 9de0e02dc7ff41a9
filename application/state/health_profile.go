package state

import (
	"context"

	"grocidish-client/domain"
	apperrors "grocidish-client/pkg/errors"
)

// HealthProfileState carries the profile draft built up by the collection
// flow. The draft doubles as the loaded profile after a fetch.
type HealthProfileState struct {
	Profile   domain.HealthProfile
	IsLoading bool
	Error     string
}

// HealthProfileSlice runs the health profile operations.
type HealthProfileSlice struct {
	deps
	seq sequence
}

func (s *HealthProfileSlice) pending() {
	s.store.Dispatch(func(r *RootState) {
		r.HealthProfile.IsLoading = true
		r.HealthProfile.Error = ""
	})
}

func (s *HealthProfileSlice) reject(err error) {
	message := apperrors.UserMessage(err)
	s.store.Dispatch(func(r *RootState) {
		r.HealthProfile.IsLoading = false
		r.HealthProfile.Error = message
	})
}

// SetGender records the gender answer.
func (s *HealthProfileSlice) SetGender(gender string) {
	s.store.Dispatch(func(r *RootState) {
		r.HealthProfile.Profile.Gender = gender
	})
}

// SetAge records the age answer.
func (s *HealthProfileSlice) SetAge(age int) {
	s.store.Dispatch(func(r *RootState) {
		r.HealthProfile.Profile.Age = age
	})
}

// SetWeight records the weight answer in kilograms.
func (s *HealthProfileSlice) SetWeight(weight float64) {
	s.store.Dispatch(func(r *RootState) {
		r.HealthProfile.Profile.Weight = weight
	})
}

// SetHeight records the height answer in centimeters.
func (s *HealthProfileSlice) SetHeight(height float64) {
	s.store.Dispatch(func(r *RootState) {
		r.HealthProfile.Profile.Height = height
	})
}

// SetActivityLevel records the activity level answer.
func (s *HealthProfileSlice) SetActivityLevel(level string) {
	s.store.Dispatch(func(r *RootState) {
		r.HealthProfile.Profile.ActivityLevel = level
	})
}

// ToggleDisease adds the disease to the draft, or removes it when already
// selected. The list never holds duplicates.
func (s *HealthProfileSlice) ToggleDisease(name string) {
	s.store.Dispatch(func(r *RootState) {
		r.HealthProfile.Profile.Diseases = domain.ToggleDisease(r.HealthProfile.Profile.Diseases, name)
	})
}

// validateDraft checks the submission the way the collection screens do.
func validateDraft(p domain.HealthProfile) error {
	if p.Gender == "" || p.Age <= 0 || p.Weight <= 0 || p.Height <= 0 || p.ActivityLevel == "" {
		return apperrors.NewValidationError("All fields are required!")
	}
	return nil
}

// FetchHealthProfile loads the saved profile into the draft.
func (s *HealthProfileSlice) FetchHealthProfile(ctx context.Context) error {
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	token := s.seq.begin()
	s.pending()

	var out struct {
		HealthProfile domain.HealthProfile `json:"healthProfile"`
	}
	err := s.client.Post(ctx, "/healthProfile/getHealthProfile", nil, &out)
	s.record("health_profile", "fetch", err)
	if !s.seq.commit(token) {
		return err
	}
	if err != nil {
		s.reject(err)
		return err
	}

	profile := out.HealthProfile
	s.store.Dispatch(func(r *RootState) {
		r.HealthProfile.IsLoading = false
		r.HealthProfile.Profile = profile
	})
	return nil
}

// CreateHealthProfile submits the completed draft as a new profile.
func (s *HealthProfileSlice) CreateHealthProfile(ctx context.Context) error {
	return s.submit(ctx, "/healthProfile/createHealthProfile", "create")
}

// UpdateHealthProfile submits the draft as an update to the saved profile.
func (s *HealthProfileSlice) UpdateHealthProfile(ctx context.Context) error {
	return s.submit(ctx, "/healthProfile/updateHealthProfile", "update")
}

func (s *HealthProfileSlice) submit(ctx context.Context, path, operation string) error {
	draft := s.store.Snapshot().HealthProfile.Profile
	if err := validateDraft(draft); err != nil {
		return err
	}
	if err := s.requireAuth(ctx); err != nil {
		return err
	}
	s.pending()

	err := s.client.Post(ctx, path, draft, nil)
	s.record("health_profile", operation, err)
	if err != nil {
		s.reject(err)
		return err
	}

	s.store.Dispatch(func(r *RootState) {
		r.HealthProfile.IsLoading = false
	})
	return nil
}
