package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/world-engine/pkg/prompts"
	"github.com/jwebster45206/world-engine/pkg/state"
)

// ParseError means the parser collaborator could not produce a usable
// UpdateCommand. The caller reports the message to the user and leaves
// the game state unchanged.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser turns free-form player text into a normalized UpdateCommand
// using an LLM. It is the engine's only collaborator that understands
// natural language; everything downstream operates on structured data.
type Parser struct {
	llm    LLMService
	logger *slog.Logger
}

func NewParser(llm LLMService, logger *slog.Logger) *Parser {
	return &Parser{
		llm:    llm,
		logger: logger,
	}
}

// ParseAction sends the player's input and the current world state to
// the LLM and decodes the response into a fully-defaulted command.
// Errors are always *ParseError; the game state is never touched here.
func (p *Parser) ParseAction(ctx context.Context, input string, gs *state.GameState) (*state.UpdateCommand, error) {
	messages, err := prompts.New().
		WithGameState(gs).
		WithPlayerInput(input).
		Build()
	if err != nil {
		return nil, &ParseError{Message: "failed to build parser prompt", Err: err}
	}

	resp, err := p.llm.GetChatResponse(ctx, messages)
	if err != nil {
		return nil, &ParseError{Message: "LLM request failed", Err: err}
	}
	if resp == nil || resp.Message == "" {
		return nil, &ParseError{Message: "empty response from LLM"}
	}

	cmd, err := state.ParseUpdateCommand(resp.Message)
	if err != nil {
		p.logger.Warn("Unparseable model response",
			"error", err,
			"response", truncate(resp.Message, 200))
		return nil, &ParseError{Message: "invalid JSON from LLM", Err: err}
	}

	return cmd, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
