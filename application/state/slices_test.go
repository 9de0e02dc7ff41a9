package state

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocidish-client/domain"
	apperrors "grocidish-client/pkg/errors"
)

func TestFamilySlice_CreateAndFetchCode(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/family/createFamily", func(w http.ResponseWriter, req *http.Request) {
		jsonResponse(w, http.StatusOK, `{"code":"FAM123"}`)
	})
	r.Post("/family/getFamilyCode", func(w http.ResponseWriter, req *http.Request) {
		jsonResponse(w, http.StatusOK, `{"code":"FAM123"}`)
	})
	f := newFixture(t, r)
	f.authenticate(t)

	require.NoError(t, f.slices.Family.CreateFamily(context.Background()))

	state := f.store.Snapshot().Family
	assert.Equal(t, "FAM123", state.Code)
	assert.True(t, state.Joined)

	require.NoError(t, f.slices.Family.FetchFamilyCode(context.Background()))
	assert.Equal(t, "FAM123", f.store.Snapshot().Family.Code)
}

func TestFamilySlice_JoinRequiresCode(t *testing.T) {
	f := newFixture(t, chi.NewRouter())
	f.authenticate(t)

	err := f.slices.Family.JoinFamily(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestFamilySlice_JoinFamilyServerError(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/family/joinFamily", func(w http.ResponseWriter, req *http.Request) {
		jsonResponse(w, http.StatusBadRequest, `{"message":"Invalid family code"}`)
	})
	f := newFixture(t, r)
	f.authenticate(t)

	err := f.slices.Family.JoinFamily(context.Background(), "NOPE")
	require.Error(t, err)

	state := f.store.Snapshot().Family
	assert.False(t, state.Joined)
	assert.Equal(t, "Invalid family code", state.Error)
}

func TestFamilyDetailsSlice_Fetch(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/family/getFamilyDetails", func(w http.ResponseWriter, req *http.Request) {
		jsonResponse(w, http.StatusOK, `{
			"member_count":2,
			"is_complete":true,
			"members":[
				{"id":1,"name":"ali","is_owner":true,"is_grocery_generator":true,"is_recipe_selector":false},
				{"id":2,"name":"sara","is_owner":false,"is_grocery_generator":false,"is_recipe_selector":true}
			]}`)
	})
	f := newFixture(t, r)
	f.authenticate(t)

	require.NoError(t, f.slices.FamilyDetails.FetchFamilyDetails(context.Background()))

	details := f.store.Snapshot().FamilyDetails.Details
	require.NotNil(t, details)
	assert.Equal(t, 2, details.MemberCount)
	assert.True(t, details.IsComplete)
	require.Len(t, details.Members, 2)
	assert.True(t, details.Members[0].IsOwner)
	assert.True(t, details.Members[1].IsRecipeSelector)
}

func TestRolesSlice_FetchMembersAndAssign(t *testing.T) {
	var assigned domain.RoleAssignment
	r := chi.NewRouter()
	r.Get("/family/getFamilyNames", func(w http.ResponseWriter, req *http.Request) {
		jsonResponse(w, http.StatusOK, `{"members":["ali","sara"]}`)
	})
	r.Post("/roles/assign", func(w http.ResponseWriter, req *http.Request) {
		if err := json.NewDecoder(req.Body).Decode(&assigned); err != nil {
			jsonResponse(w, http.StatusBadRequest, `{"message":"bad payload"}`)
			return
		}
		jsonResponse(w, http.StatusOK, `{}`)
	})
	f := newFixture(t, r)
	f.authenticate(t)

	require.NoError(t, f.slices.Roles.FetchFamilyMembers(context.Background()))
	assert.Equal(t, []string{"ali", "sara"}, f.store.Snapshot().Roles.Members)

	require.NoError(t, f.slices.Roles.AssignRole(context.Background(),
		domain.RoleAssignment{Name: "sara", Role: "recipe_selector"}))
	assert.Equal(t, "sara", assigned.Name)
	assert.Equal(t, "recipe_selector", assigned.Role)
}

func TestRolesSlice_AssignRejectsUnknownRole(t *testing.T) {
	f := newFixture(t, chi.NewRouter())
	f.authenticate(t)

	err := f.slices.Roles.AssignRole(context.Background(),
		domain.RoleAssignment{Name: "sara", Role: "owner"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestHealthProfileSlice_DraftAndSubmit(t *testing.T) {
	var submitted domain.HealthProfile
	r := chi.NewRouter()
	r.Post("/healthProfile/createHealthProfile", func(w http.ResponseWriter, req *http.Request) {
		if err := json.NewDecoder(req.Body).Decode(&submitted); err != nil {
			jsonResponse(w, http.StatusBadRequest, `{"message":"bad payload"}`)
			return
		}
		jsonResponse(w, http.StatusOK, `{}`)
	})
	f := newFixture(t, r)
	f.authenticate(t)

	hp := f.slices.HealthProfile
	hp.SetGender("FEMALE")
	hp.SetAge(28)
	hp.SetWeight(60)
	hp.SetHeight(165)
	hp.SetActivityLevel(domain.ActivityModerate)
	hp.ToggleDisease("DIABETES")
	hp.ToggleDisease("HYPERTENSION")
	hp.ToggleDisease("DIABETES")

	require.NoError(t, hp.CreateHealthProfile(context.Background()))

	assert.Equal(t, "FEMALE", submitted.Gender)
	assert.Equal(t, 28, submitted.Age)
	assert.Equal(t, domain.ActivityModerate, submitted.ActivityLevel)
	assert.Equal(t, []string{"HYPERTENSION"}, submitted.Diseases)
}

func TestHealthProfileSlice_IncompleteDraftRejectedLocally(t *testing.T) {
	var called bool
	r := chi.NewRouter()
	r.Post("/healthProfile/createHealthProfile", func(w http.ResponseWriter, req *http.Request) {
		called = true
	})
	f := newFixture(t, r)
	f.authenticate(t)

	f.slices.HealthProfile.SetGender("MALE")

	err := f.slices.HealthProfile.CreateHealthProfile(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.False(t, called)
}

func TestHealthProfileSlice_FetchLoadsDraft(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/healthProfile/getHealthProfile", func(w http.ResponseWriter, req *http.Request) {
		jsonResponse(w, http.StatusOK, `{"healthProfile":{
			"gender":"MALE","age":35,"weight":80,"height":175,
			"activity_level":"ACTIVE","diseases":["DIABETES"]}}`)
	})
	f := newFixture(t, r)
	f.authenticate(t)

	require.NoError(t, f.slices.HealthProfile.FetchHealthProfile(context.Background()))

	profile := f.store.Snapshot().HealthProfile.Profile
	assert.Equal(t, "MALE", profile.Gender)
	assert.Equal(t, 35, profile.Age)
	assert.Equal(t, []string{"DIABETES"}, profile.Diseases)
}

func TestCalorieSlice_Fetch(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/caloric/getCaloricInfo", func(w http.ResponseWriter, req *http.Request) {
		jsonResponse(w, http.StatusOK, `{"caloricData":{
			"calories_consumed_per_day":1200,"required_calories":2000,
			"consumed_fats":40,"required_fats":70,
			"consumed_carbs":150,"required_carbs":250,
			"consumed_proteins":50,"required_proteins":90,
			"bmi":23.4}}`)
	})
	f := newFixture(t, r)
	f.authenticate(t)

	require.NoError(t, f.slices.Calorie.FetchCalorieStats(context.Background()))

	stats := f.store.Snapshot().Calorie.Stats
	require.NotNil(t, stats)
	assert.Equal(t, 0.6, stats.CalorieProgress())
	assert.Equal(t, "NORMAL", domain.BMIBand(stats.BMI))
}
