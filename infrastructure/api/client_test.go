package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"grocidish-client/infrastructure/storage"
	apperrors "grocidish-client/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler, tokens storage.KeyValueStore) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(Config{BaseURL: server.URL, Timeout: 2 * time.Second}, tokens, zap.NewNop())
	return client, server
}

func TestClient_AttachesBearerToken(t *testing.T) {
	tokens := storage.NewMemoryStore()
	require.NoError(t, tokens.Set(context.Background(), storage.KeyAuthToken, "token-123"))

	var gotAuth string
	r := chi.NewRouter()
	r.Get("/users/hasFamily", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		w.Write([]byte(`{"response":{"hasFamily":true}}`))
	})

	client, _ := newTestClient(t, r, tokens)

	var out struct {
		Response struct {
			HasFamily bool `json:"hasFamily"`
		} `json:"response"`
	}
	err := client.Get(context.Background(), "/users/hasFamily", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.True(t, out.Response.HasFamily)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	r := chi.NewRouter()
	r.Post("/users/authenticate", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		w.Write([]byte(`{"token":"t"}`))
	})

	client, _ := newTestClient(t, r, storage.NewMemoryStore())

	err := client.Post(context.Background(), "/users/authenticate", map[string]string{"email": "a@b.c"}, nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_ServerErrorMessage(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/family/joinFamily", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid family code"}`))
	})

	client, _ := newTestClient(t, r, storage.NewMemoryStore())

	err := client.Post(context.Background(), "/family/joinFamily", map[string]string{"code": "x"}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeServer))
	assert.Equal(t, "Invalid family code", apperrors.UserMessage(err))
}

func TestClient_ErrorWithoutBodyFallsBackToGenericMessage(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/roles/getRole", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client, _ := newTestClient(t, r, storage.NewMemoryStore())

	err := client.Get(context.Background(), "/roles/getRole", nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.NetworkErrorMessage, apperrors.UserMessage(err))
}

func TestClient_UnauthorizedStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/users/hasFamily", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token expired"}`))
	})

	client, _ := newTestClient(t, r, storage.NewMemoryStore())

	err := client.Get(context.Background(), "/users/hasFamily", nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Token expired", apperrors.UserMessage(err))
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := New(Config{BaseURL: server.URL, Timeout: time.Second}, storage.NewMemoryStore(), zap.NewNop())

	err := client.Get(context.Background(), "/users/hasFamily", nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNetwork))
	assert.Equal(t, apperrors.NetworkErrorMessage, apperrors.UserMessage(err))
}

func TestClient_PerCallTimeoutOverride(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/grocery/createGroceryList", func(w http.ResponseWriter, req *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-req.Context().Done():
			return
		}
		w.Write([]byte(`{"data":{}}`))
	})

	client, _ := newTestClient(t, r, storage.NewMemoryStore())

	// The short override trips before the handler responds.
	err := client.Post(context.Background(), "/grocery/createGroceryList",
		map[string]float64{"budget": 30000}, nil, WithTimeout(50*time.Millisecond))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNetwork))

	// The default timeout is long enough.
	err = client.Post(context.Background(), "/grocery/createGroceryList",
		map[string]float64{"budget": 30000}, nil)
	assert.NoError(t, err)
}

type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("disk unavailable")
}
func (brokenStore) Set(ctx context.Context, key, value string) error { return errors.New("disk unavailable") }
func (brokenStore) Remove(ctx context.Context, key string) error     { return errors.New("disk unavailable") }

func TestClient_StorageFailureRejectsRequest(t *testing.T) {
	var called bool
	r := chi.NewRouter()
	r.Get("/users/hasFamily", func(w http.ResponseWriter, req *http.Request) {
		called = true
	})

	client, _ := newTestClient(t, r, brokenStore{})

	err := client.Get(context.Background(), "/users/hasFamily", nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStorage))
	assert.False(t, called)
}

func TestClient_QueryParameters(t *testing.T) {
	var gotQuery url.Values
	r := chi.NewRouter()
	r.Get("/recipes/getRecipe", func(w http.ResponseWriter, req *http.Request) {
		gotQuery = req.URL.Query()
		w.Write([]byte(`{"data":[]}`))
	})

	client, _ := newTestClient(t, r, storage.NewMemoryStore())

	query := url.Values{}
	query.Set("page", "2")
	query.Set("limit", "10")
	query.Set("category", "DESI")

	err := client.Get(context.Background(), "/recipes/getRecipe", query, nil)
	require.NoError(t, err)
	assert.Equal(t, "2", gotQuery.Get("page"))
	assert.Equal(t, "10", gotQuery.Get("limit"))
	assert.Equal(t, "DESI", gotQuery.Get("category"))
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/roles/getRole", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"role":`))
	})

	client, _ := newTestClient(t, r, storage.NewMemoryStore())

	var out struct {
		Role any `json:"role"`
	}
	err := client.Get(context.Background(), "/roles/getRole", nil, &out)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeServer))
}
