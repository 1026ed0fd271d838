package memory

import (
	"sync"

	"github.com/olwandejj/Quizzify/internal/app"
)

// StateStore is an in-memory implementation of app.StateRepository.
type StateStore struct {
	mu     sync.RWMutex
	states map[string]*app.ClientState
}

func NewStateStore() *StateStore {
	return &StateStore{
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
	}
}
