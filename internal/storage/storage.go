package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jwebster45206/world-engine/pkg/state"
)

// ErrNotFound is returned by load operations when neither a live save
// nor an initial-state template exists.
var ErrNotFound = errors.New("game state not found")

// Storage defines keyed gamestate persistence for the API server.
type Storage interface {
	// Ping tests the storage connection.
	Ping(ctx context.Context) error

	// Close closes the storage connection.
	Close() error

	// SaveGameState saves a gamestate under its UUID.
	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error

	// LoadGameState retrieves a gamestate by UUID.
	// Returns nil if the gamestate doesn't exist.
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)

	// DeleteGameState removes a gamestate by UUID.
	DeleteGameState(ctx context.Context, id uuid.UUID) error
}
