package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/world-engine/pkg/chat"
)

// MockLLMAPI is a mock implementation of LLMService for testing.
type MockLLMAPI struct {
	InitModelFunc       func(ctx context.Context, modelName string) error
	GetChatResponseFunc func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)

	// Track calls for testing
	InitModelCalls       []string
	GetChatResponseCalls [][]chat.ChatMessage

	mu sync.Mutex // protects all fields above
}

// NewMockLLMAPI creates a new mock LLM service.
func NewMockLLMAPI() *MockLLMAPI {
	return &MockLLMAPI{
		InitModelCalls:       make([]string, 0),
		GetChatResponseCalls: make([][]chat.ChatMessage, 0),
	}
}

// InitModel mocks model initialization.
func (m *MockLLMAPI) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InitModelCalls = append(m.InitModelCalls, modelName)
	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

// GetChatResponse mocks response generation. The default response is
// an empty update command.
func (m *MockLLMAPI) GetChatResponse(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetChatResponseCalls = append(m.GetChatResponseCalls, messages)
	if m.GetChatResponseFunc != nil {
		return m.GetChatResponseFunc(ctx, messages)
	}

	return &chat.ChatResponse{
		Message: `{"player_actions":[],"inventory_changes":{"added":[],"removed":[],"equipped":[],"unequipped":[]},"entity_interactions":[],"location_changes":{"new_location_id":null,"direction_moved":null,"room_state_updates":[]},"player_stats_changes":{"health_change":0,"mana_change":0,"gold_change":0,"xp_gained":0},"quest_updates":[],"game_events":[],"narrative_hint":null}`,
	}, nil
}

// SetResponse sets up the mock to return a fixed message.
func (m *MockLLMAPI) SetResponse(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetChatResponseFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		return &chat.ChatResponse{Message: message}, nil
	}
}

// SetError sets up the mock to return an error on GetChatResponse.
func (m *MockLLMAPI) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetChatResponseFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		return nil, err
	}
}

// Reset clears all call tracking.
func (m *MockLLMAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitModelCalls = make([]string, 0)
	m.GetChatResponseCalls = make([][]chat.ChatMessage, 0)
	m.InitModelFunc = nil
	m.GetChatResponseFunc = nil
}
