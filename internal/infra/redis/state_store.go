package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/olwandejj/Quizzify/internal/app"
)

// StateStore is a Redis-aware implementation of app.StateRepository.
// Notes:
//   - It still keeps a local in-memory map of states to reuse the existing
//     in-process broadcast logic.
//   - Redis is used to mark client liveness (and could be extended to share
//     snapshots or route cross-instance pub/sub).
//   - For true distribution you'd pair this with a pub/sub projector that fans out updates.
type StateStore struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	states map[string]*app.ClientState
}

func NewStateStore(client *redis.Client, ttl time.Duration) *StateStore {
	return &StateStore{
		client: client,
		ttl:    ttl,
		states: make(map[string]*app.ClientState),
	}
}

func (s *StateStore) GetOrCreate(clientID string) *app.ClientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[clientID]; ok {
		return state
	}
	state := app.NewClientState(clientID)
	s.states[clientID] = state
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(clientID), "1", s.ttl).Err()
	return state
}

func (s *StateStore) Get(clientID string) (*app.ClientState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[clientID]
	return state, ok
}

func (s *StateStore) DeleteIfInactive(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[clientID]
	if !ok {
		return
	}
	if state.IsInactive() {
		delete(s.states, clientID)
		_ = s.client.Del(context.Background(), s.key(clientID)).Err()
	}
}

func (s *StateStore) key(clientID string) string {
	return "client:state:" + clientID
}
