package engine

import (
	"context"
	"log/slog"

	"github.com/jwebster45206/world-engine/internal/services"
	"github.com/jwebster45206/world-engine/pkg/state"
)

// TurnResult is the outcome of one applied turn.
type TurnResult struct {
	// Handled is true when the input was a shortcut command answered
	// from local state; no parse or mutation happened.
	Handled bool
	Message string

	// Command and State are set for turns that went through the
	// parser. State is a new value; the input state is untouched.
	Command *state.UpdateCommand
	State   *state.GameState
}

// Engine runs game turns: shortcut evaluation, parsing player text
// into an UpdateCommand, and applying it to the world. Persistence is
// the caller's concern, performed after a successful turn so a save
// failure can never roll back in-memory state.
type Engine struct {
	parser *services.Parser
	logger *slog.Logger
}

func New(parser *services.Parser, logger *slog.Logger) *Engine {
	return &Engine{
		parser: parser,
		logger: logger,
	}
}

// RunTurn processes one player input against the given state.
//
// Failure modes follow a strict contract: a *services.ParseError means
// the input could not be interpreted and the state is unchanged; any
// other error likewise leaves the committed state untouched, because
// mutation happens on a working copy that is only returned on success.
func (e *Engine) RunTurn(ctx context.Context, gs *state.GameState, input string) (*TurnResult, error) {
	if result := gs.TryHandleCommand(input); result.Handled {
		return &TurnResult{
			Handled: true,
			Message: result.Message,
			State:   gs,
		}, nil
	}

	cmd, err := e.parser.ParseAction(ctx, input, gs)
	if err != nil {
		return nil, err
	}

	next, err := state.NewMutator(gs, cmd, e.logger).Apply()
	if err != nil {
		return nil, err
	}

	return &TurnResult{
		Command: cmd,
		State:   next,
	}, nil
}
