package state

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"grocidish-client/infrastructure/api"
	"grocidish-client/infrastructure/cache"
	"grocidish-client/infrastructure/storage"
)

// fixture wires the slices over a fake server and an in-memory store.
type fixture struct {
	store  *Store
	slices *Slices
	kv     *storage.MemoryStore
}

const fixturePageSize = 2

func newFixture(t *testing.T, router chi.Router) *fixture {
	t.Helper()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	kv := storage.NewMemoryStore()
	client := api.New(api.Config{BaseURL: server.URL, Timeout: 2 * time.Second}, kv, zap.NewNop())

	store := NewStore()
	recCache := cache.NewTTLCache(kv,
		storage.KeyRecommendedRecipes, storage.KeyRecommendationTimestamp,
		cache.DefaultTTL, zap.NewNop())
	window := cache.NewWindow(kv, storage.KeyLastMealSelection, cache.DefaultTTL, zap.NewNop())

	slices := NewSlices(store, client, kv, recCache, window, Config{
		RecipePageSize: fixturePageSize,
		GroceryTimeout: 2 * time.Second,
	}, zap.NewNop(), nil)

	return &fixture{store: store, slices: slices, kv: kv}
}

// authenticate persists a token so authed operations pass the local check.
func (f *fixture) authenticate(t *testing.T) {
	t.Helper()
	require.NoError(t, f.kv.Set(context.Background(), storage.KeyAuthToken, "test-token"))
}

// millisAgo returns a storage timestamp the given duration in the past.
func millisAgo(d time.Duration) string {
	return strconv.FormatInt(time.Now().Add(-d).UnixMilli(), 10)
}

// unsignedJWT builds a parseable but unsigned JWT with the given claims.
func unsignedJWT(t *testing.T, claims map[string]any) string {
	t.Helper()

	encode := func(v any) string {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(raw)
	}
	header := encode(map[string]string{"alg": "none", "typ": "JWT"})
	payload := encode(claims)
	return header + "." + payload + "."
}

// jsonResponse writes a JSON body.
func jsonResponse(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
