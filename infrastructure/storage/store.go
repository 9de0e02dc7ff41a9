// Package storage provides the persistent string key-value store backing the
// client across process restarts: the auth token, the serialized
// recommendation snapshot and its timestamp, and the last meal-selection
// timestamp. All writers use disjoint keys by convention.
package storage

import "context"

// Well-known keys. These names are part of the on-disk contract and must not
// change without a migration.
const (
	KeyAuthToken               = "authToken"
	KeyRecommendedRecipes      = "recommendedRecipes"
	KeyRecommendationTimestamp = "recommendationTimestamp"
	KeyLastMealSelection       = "lastMealSelection"
)

// KeyValueStore is the opaque get/set/remove contract consumed by the rest
// of the client. Get returns found=false for absent keys rather than an
// error; errors are reserved for I/O failures.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
