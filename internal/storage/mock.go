package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/world-engine/pkg/state"
)

// MockStorage is an in-memory Storage implementation for testing.
type MockStorage struct {
	mu     sync.RWMutex
	states map[uuid.UUID]*state.GameState

	// Optional error injection
	PingErr   error
	SaveErr   error
	LoadErr   error
	DeleteErr error
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		states: make(map[uuid.UUID]*state.GameState),
	}
}

func (m *MockStorage) Ping(ctx context.Context) error {
	return m.PingErr
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[id] = gs.Clone()
	return nil
}

func (m *MockStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	gs, ok := m.states[id]
	if !ok {
		return nil, nil
	}
	return gs.Clone(), nil
}

func (m *MockStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, id)
	return nil
}
