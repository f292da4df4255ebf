package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jwebster45206/world-engine/internal/engine"
	"github.com/jwebster45206/world-engine/internal/services"
	"github.com/jwebster45206/world-engine/internal/storage"
	"github.com/jwebster45206/world-engine/pkg/state"
)

// TurnRequest is one player action against an existing session.
type TurnRequest struct {
	GameStateID uuid.UUID `json:"gamestate_id"`
	Input       string    `json:"input"`
}

// TurnResponse reports the effects of the turn. Command is omitted for
// shortcut turns that never reached the parser.
type TurnResponse struct {
	GameStateID uuid.UUID            `json:"gamestate_id"`
	Message     string               `json:"message,omitempty"`
	Command     *state.UpdateCommand `json:"command,omitempty"`
	GameState   *state.GameState     `json:"gamestate,omitempty"`
}

type TurnHandler struct {
	engine  *engine.Engine
	storage storage.Storage
	logger  *slog.Logger
}

func NewTurnHandler(engine *engine.Engine, storage storage.Storage, logger *slog.Logger) *TurnHandler {
	return &TurnHandler{
		engine:  engine,
		storage: storage,
		logger:  logger,
	}
}

func (h *TurnHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for turn endpoint", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body. Expected JSON with 'gamestate_id' and 'input' fields.")
		return
	}
	if req.Input == "" {
		h.writeError(w, http.StatusBadRequest, "Input cannot be empty.")
		return
	}
	if req.GameStateID == uuid.Nil {
		h.writeError(w, http.StatusBadRequest, "Game state ID is required.")
		return
	}

	gs, err := h.storage.LoadGameState(r.Context(), req.GameStateID)
	if err != nil {
		h.logger.Error("Failed to load game state", "error", err, "id", req.GameStateID.String())
		h.writeError(w, http.StatusInternalServerError, "Failed to load game state")
		return
	}
	if gs == nil {
		h.writeError(w, http.StatusNotFound, "Game state not found")
		return
	}

	result, err := h.engine.RunTurn(r.Context(), gs, req.Input)
	if err != nil {
		var parseErr *services.ParseError
		if errors.As(err, &parseErr) {
			// Parser failures are user-visible and leave state untouched.
			h.logger.Warn("Parse failure", "error", err, "id", req.GameStateID.String())
			h.writeError(w, http.StatusUnprocessableEntity, "Could not interpret that action. Try rephrasing it.")
			return
		}
		h.logger.Error("Turn failed", "error", err, "id", req.GameStateID.String())
		h.writeError(w, http.StatusInternalServerError, "Failed to apply turn")
		return
	}

	response := TurnResponse{
		GameStateID: req.GameStateID,
		GameState:   result.State,
	}

	if result.Handled {
		response.Message = result.Message
	} else {
		response.Command = result.Command
		response.Message = result.Command.NarrativeHint

		// Save failures are reported but never roll back the turn;
		// the next successful save will catch the state up.
		if err := h.storage.SaveGameState(r.Context(), req.GameStateID, result.State); err != nil {
			h.logger.Error("Failed to save game state after turn", "error", err, "id", req.GameStateID.String())
		}
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode turn response", "error", err)
	}
}

func (h *TurnHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}
