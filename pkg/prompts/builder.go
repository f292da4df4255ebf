package prompts

import (
	"encoding/json"
	"fmt"

	"github.com/jwebster45206/world-engine/pkg/chat"
	"github.com/jwebster45206/world-engine/pkg/state"
)

// Builder constructs the message array for one parser call using a
// fluent interface. It keeps prompt assembly out of the engine and the
// handlers.
type Builder struct {
	gs          *state.GameState
	playerInput string
	messages    []chat.ChatMessage
}

// New creates a new prompt builder.
func New() *Builder {
	return &Builder{
		messages: make([]chat.ChatMessage, 0),
	}
}

// WithGameState sets the game state included as context.
func (b *Builder) WithGameState(gs *state.GameState) *Builder {
	b.gs = gs
	return b
}

// WithPlayerInput sets the player's free-form action text.
func (b *Builder) WithPlayerInput(input string) *Builder {
	b.playerInput = input
	return b
}

// Build returns the final message array for LLM consumption: the
// parser instructions and current world state as the system prompt,
// then the player's action as the user message.
func (b *Builder) Build() ([]chat.ChatMessage, error) {
	if b.gs == nil {
		return nil, fmt.Errorf("gamestate is required")
	}
	if b.playerInput == "" {
		return nil, fmt.Errorf("player input is required")
	}

	stateJSON, err := json.MarshalIndent(b.gs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error marshaling game state: %w", err)
	}

	systemPrompt := ParserInstructions +
		"\n\nCurrent game state (for context, do not restate it):\n```json\n" +
		string(stateJSON) + "\n```"

	b.messages = []chat.ChatMessage{
		{
			Role:    chat.ChatRoleSystem,
			Content: systemPrompt,
		},
		{
			Role:    chat.ChatRoleUser,
			Content: b.playerInput,
		},
	}
	return b.messages, nil
}
