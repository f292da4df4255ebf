package services

import (
	"context"

	"github.com/jwebster45206/world-engine/pkg/chat"
)

// LLMService defines the interface for interacting with an LLM API.
type LLMService interface {
	// InitModel initializes the LLM model on startup.
	InitModel(ctx context.Context, modelName string) error

	// GetChatResponse generates a chat response for the given messages.
	GetChatResponse(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
}
