package state

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "grocidish-client/pkg/errors"
)

const groceryBody = `{"data":{"budget":30000,"grocery_list":{
	"Dairy":{"Milk":{"Brand":"Olpers","Quantity":"2 L","Estimated Price (PKR)":600}},
	"Grains":{"Rice":{"Brand":"Falak","Quantity":"5 kg","Estimated Price (PKR)":2200}}
}}}`

func TestGrocerySlice_Generate(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/grocery/createGroceryList", func(w http.ResponseWriter, req *http.Request) {
		jsonResponse(w, http.StatusOK, groceryBody)
	})
	f := newFixture(t, r)
	f.authenticate(t)

	require.NoError(t, f.slices.Grocery.GenerateGroceryList(context.Background(), 30000))

	state := f.store.Snapshot().Grocery
	require.NotNil(t, state.List)
	assert.Equal(t, 30000.0, state.List.Budget)
	assert.Equal(t, "Olpers", state.List.GroceryList["Dairy"]["Milk"].Brand)
	assert.Equal(t, 2200.0, state.List.GroceryList["Grains"]["Rice"].EstimatedPrice)
}

func TestGrocerySlice_BudgetValidatedLocally(t *testing.T) {
	var called bool
	r := chi.NewRouter()
	r.Post("/grocery/createGroceryList", func(w http.ResponseWriter, req *http.Request) {
		called = true
	})
	f := newFixture(t, r)
	f.authenticate(t)

	for _, budget := range []float64{0, 19999, 100001} {
		err := f.slices.Grocery.GenerateGroceryList(context.Background(), budget)
		require.Error(t, err, "budget %v", budget)
		assert.True(t, apperrors.IsValidation(err))
	}
	assert.False(t, called)
}

func TestGrocerySlice_FetchReplacesWholesale(t *testing.T) {
	var fail bool
	r := chi.NewRouter()
	r.Post("/grocery/getGroceryList", func(w http.ResponseWriter, req *http.Request) {
		if fail {
			jsonResponse(w, http.StatusNotFound, `{"message":"No grocery list found"}`)
			return
		}
		jsonResponse(w, http.StatusOK, groceryBody)
	})
	f := newFixture(t, r)
	f.authenticate(t)

	require.NoError(t, f.slices.Grocery.FetchGroceryList(context.Background()))
	require.NotNil(t, f.store.Snapshot().Grocery.List)

	// A later failure keeps the loaded list and records the message.
	fail = true
	require.Error(t, f.slices.Grocery.FetchGroceryList(context.Background()))

	state := f.store.Snapshot().Grocery
	assert.NotNil(t, state.List)
	assert.Equal(t, "No grocery list found", state.Error)
}
