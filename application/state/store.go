// Package state holds the client's composed application state: nine domain
// slices under fixed keys in one root, mutated only through the store's
// serialized dispatch. Each slice pairs a state struct with a service that
// runs the async operations against the API and dispatches the resulting
// transitions. Snapshots are values; reducers replace slices and maps rather
// than mutating them in place.
package state

import (
	"sync"

	"grocidish-client/domain"
)

// RootState is the composed application state.
type RootState struct {
	Auth           AuthState
	Family         FamilyState
	FamilyDetails  FamilyDetailsState
	Roles          RolesState
	HealthProfile  HealthProfileState
	Calorie        CalorieState
	Recipes        RecipesState
	Recommendation RecommendationState
	Grocery        GroceryState
}

func newRootState() RootState {
	return RootState{
		Recipes: RecipesState{
			Recipes: []domain.Recipe{},
			Page:    1,
		},
		Recommendation: RecommendationState{
			Sets:    domain.EmptyRecommendationSet(),
			Cursors: map[domain.MealType]int{},
		},
	}
}

// Action is a state transition applied under the store's dispatch lock.
type Action func(*RootState)

// Store owns the root state. Dispatch is serialized; Snapshot returns a
// value copy; Subscribe delivers a snapshot after every dispatch.
type Store struct {
	mu      sync.Mutex
	state   RootState
	subs    map[int]func(RootState)
	nextSub int
}

// NewStore creates a store with the initial state of every slice.
func NewStore() *Store {
	return &Store{
		state: newRootState(),
		subs:  make(map[int]func(RootState)),
	}
}

// Dispatch applies an action and notifies subscribers with the resulting
// snapshot. Actions run one at a time.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	action(&s.state)
	snapshot := s.state
	listeners := make([]func(RootState), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

// Snapshot returns the current state as a value.
func (s *Store) Snapshot() RootState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener called after every dispatch. The returned
// function unsubscribes it.
func (s *Store) Subscribe(fn func(RootState)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// sequence is a per-slice monotonic request counter. Fetches take a token at
// start and commit at completion; a completion whose token is older than the
// newest committed one is discarded, so a slow early response can never
// overwrite the result of a later request.
type sequence struct {
	mu        sync.Mutex
	next      uint64
	committed uint64
}

// begin reserves the next request token.
func (s *sequence) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

// commit marks token's request as applied. Returns false when a newer
// request already committed, in which case the caller must drop its result.
func (s *sequence) commit(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token <= s.committed {
		return false
	}
	s.committed = token
	return true
}
