package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/world-engine/internal/engine"
	"github.com/jwebster45206/world-engine/internal/services"
	"github.com/jwebster45206/world-engine/internal/storage"
	"github.com/jwebster45206/world-engine/pkg/state"
)

func newTurnFixture(t *testing.T) (*TurnHandler, *services.MockLLMAPI, *storage.MockStorage, *state.GameState) {
	t.Helper()
	mock := services.NewMockLLMAPI()
	store := storage.NewMockStorage()
	eng := engine.New(services.NewParser(mock, testLogger()), testLogger())
	handler := NewTurnHandler(eng, store, testLogger())

	gs := state.NewGameState()
	gs.Player = &state.Player{LocationID: "crypt", Health: 100, Gold: 5, Inventory: []string{}}
	gs.Locations = map[string]state.Location{
		"crypt": {Description: "Cold stone and older bones.", ItemsPresent: []string{"silver_key"}},
	}
	err := store.SaveGameState(context.Background(), gs.ID, gs)
	assert.NoError(t, err)

	return handler, mock, store, gs
}

func postTurn(t *testing.T, handler *TurnHandler, req TurnRequest) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(req)
	assert.NoError(t, err)

	httpReq := httptest.NewRequest(http.MethodPost, "/v1/turn", bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httpReq)
	return w
}

func TestTurnHandlerAppliesAndSaves(t *testing.T) {
	handler, mock, store, gs := newTurnFixture(t)
	mock.SetResponse(`{
		"inventory_changes": {"added": ["silver_key"], "removed": [], "equipped": [], "unequipped": []},
		"location_changes": {"new_location_id": null, "direction_moved": null,
			"room_state_updates": [{"object_id": "silver_key", "state": "missing"}]},
		"player_stats_changes": {"health_change": 0, "mana_change": 0, "gold_change": 0, "xp_gained": 2},
		"narrative_hint": "The key slides free of the bones."
	}`)

	w := postTurn(t, handler, TurnRequest{GameStateID: gs.ID, Input: "take the silver key"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp TurnResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, gs.ID, resp.GameStateID)
	assert.Equal(t, "The key slides free of the bones.", resp.Message)
	assert.NotNil(t, resp.Command)
	assert.Equal(t, []string{"silver_key"}, resp.GameState.Player.Inventory)
	assert.Empty(t, resp.GameState.Locations["crypt"].ItemsPresent)

	// The post-turn state was persisted.
	saved, err := store.LoadGameState(context.Background(), gs.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"silver_key"}, saved.Player.Inventory)
	assert.Equal(t, 2, saved.Player.XP)
}

func TestTurnHandlerShortcut(t *testing.T) {
	handler, mock, _, gs := newTurnFixture(t)

	w := postTurn(t, handler, TurnRequest{GameStateID: gs.ID, Input: "look"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp TurnResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Contains(t, resp.Message, "Cold stone")
	assert.Nil(t, resp.Command)
	assert.Empty(t, mock.GetChatResponseCalls)
}

func TestTurnHandlerParseFailure(t *testing.T) {
	handler, mock, store, gs := newTurnFixture(t)
	mock.SetResponse("that makes no sense to me")

	w := postTurn(t, handler, TurnRequest{GameStateID: gs.ID, Input: "flombuzzle the wainscoting"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Stored state is untouched by the failed turn.
	saved, err := store.LoadGameState(context.Background(), gs.ID)
	assert.NoError(t, err)
	assert.Equal(t, 100, saved.Player.Health)
	assert.Empty(t, saved.Player.Inventory)
}

func TestTurnHandlerLLMFailure(t *testing.T) {
	handler, mock, _, gs := newTurnFixture(t)
	mock.SetError(errors.New("upstream timeout"))

	w := postTurn(t, handler, TurnRequest{GameStateID: gs.ID, Input: "open the sarcophagus"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTurnHandlerValidation(t *testing.T) {
	handler, _, _, gs := newTurnFixture(t)

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/turn", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/turn", bytes.NewReader([]byte("nope")))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty input", func(t *testing.T) {
		w := postTurn(t, handler, TurnRequest{GameStateID: gs.ID})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing id", func(t *testing.T) {
		w := postTurn(t, handler, TurnRequest{Input: "look around"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := postTurn(t, handler, TurnRequest{GameStateID: uuid.New(), Input: "look around"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
