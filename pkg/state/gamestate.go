package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default values for a freshly created player. The engine creates the
// player lazily, the first time an update is applied to a state that
// has none.
const (
	DefaultLocationID   = "start"
	DefaultPlayerHealth = 100
)

// EventHistoryLimit caps the world event log. Oldest entries are
// evicted first.
const EventHistoryLimit = 100

// Player is the player-controlled character. Inventory and Equipped
// are sets with insertion order preserved for display.
type Player struct {
	LocationID string   `json:"location_id"`
	Inventory  []string `json:"inventory"`
	Equipped   []string `json:"equipped,omitempty"`
	Health     int      `json:"health"`
	Mana       int      `json:"mana,omitempty"`
	Gold       int      `json:"gold"`
	XP         int      `json:"xp"`
}

// NewPlayer returns a player with starting defaults.
func NewPlayer() *Player {
	return &Player{
		LocationID: DefaultLocationID,
		Inventory:  make([]string, 0),
		Health:     DefaultPlayerHealth,
	}
}

// Location is a room or area in the game world. ObjectStates maps
// object ids to opaque state labels ("opened", "broken", ...) that are
// interpreted by the presentation layer, not the engine.
type Location struct {
	Description  string            `json:"description,omitempty"`
	ItemsPresent []string          `json:"items_present,omitempty"`
	NPCsPresent  []string          `json:"npcs_present,omitempty"`
	Exits        map[string]string `json:"exits,omitempty"`
	ObjectStates map[string]string `json:"object_states,omitempty"`
}

// NPC is a non-player character. Health is optional; NPCs without a
// health field ignore damage.
type NPC struct {
	Health  *int `json:"health,omitempty"`
	Hostile bool `json:"hostile,omitempty"`
	Talked  bool `json:"talked,omitempty"`
	Alive   bool `json:"alive"`
}

// QuestStatus is the lifecycle state of a quest.
type QuestStatus string

const (
	QuestNotStarted QuestStatus = "not_started"
	QuestInProgress QuestStatus = "in_progress"
	QuestCompleted  QuestStatus = "completed"
	QuestFailed     QuestStatus = "failed"
)

// Quest tracks progress of a single quest. CompletedObjectives is a
// set with insertion order preserved.
type Quest struct {
	Status              QuestStatus `json:"status"`
	CompletedObjectives []string    `json:"completed_objectives,omitempty"`
}

// GameState is the complete persistent world state for one game
// session. It is mutated turn-by-turn by the Mutator; each turn either
// produces a new fully-valid state or leaves the old one untouched.
type GameState struct {
	ID           uuid.UUID           `json:"id"`
	Player       *Player             `json:"player,omitempty"`
	Locations    map[string]Location `json:"locations,omitempty"`
	NPCs         map[string]NPC      `json:"npcs,omitempty"`
	Quests       map[string]Quest    `json:"quests,omitempty"`
	EventHistory []string            `json:"event_history,omitempty"`
	CreatedAt    time.Time           `json:"created_at,omitempty"`
	UpdatedAt    time.Time           `json:"updated_at,omitempty"`
}

func NewGameState() *GameState {
	return &GameState{
		ID:        uuid.New(),
		Locations: make(map[string]Location),
		NPCs:      make(map[string]NPC),
		Quests:    make(map[string]Quest),
		CreatedAt: time.Now(),
	}
}

// EnsurePlayer creates the default player if none exists yet.
func (gs *GameState) EnsurePlayer() *Player {
	if gs.Player == nil {
		gs.Player = NewPlayer()
	}
	return gs.Player
}

// CurrentLocation returns the location record the player is in, or
// false if the player's location id is unknown to the world.
func (gs *GameState) CurrentLocation() (Location, bool) {
	if gs.Player == nil {
		return Location{}, false
	}
	loc, ok := gs.Locations[gs.Player.LocationID]
	return loc, ok
}

// Clone returns a deep copy of the game state. The mutator applies
// updates to a clone and commits it only on success, so a failed turn
// can never leave the canonical state half-written.
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}

	out := &GameState{
		ID:        gs.ID,
		CreatedAt: gs.CreatedAt,
		UpdatedAt: gs.UpdatedAt,
	}

	if gs.Player != nil {
		p := *gs.Player
		p.Inventory = cloneStrings(gs.Player.Inventory)
		p.Equipped = cloneStrings(gs.Player.Equipped)
		out.Player = &p
	}

	if gs.Locations != nil {
		out.Locations = make(map[string]Location, len(gs.Locations))
		for id, loc := range gs.Locations {
			loc.ItemsPresent = cloneStrings(loc.ItemsPresent)
			loc.NPCsPresent = cloneStrings(loc.NPCsPresent)
			loc.Exits = cloneStringMap(loc.Exits)
			loc.ObjectStates = cloneStringMap(loc.ObjectStates)
			out.Locations[id] = loc
		}
	}

	if gs.NPCs != nil {
		out.NPCs = make(map[string]NPC, len(gs.NPCs))
		for id, npc := range gs.NPCs {
			if npc.Health != nil {
				h := *npc.Health
				npc.Health = &h
			}
			out.NPCs[id] = npc
		}
	}

	if gs.Quests != nil {
		out.Quests = make(map[string]Quest, len(gs.Quests))
		for id, q := range gs.Quests {
			q.CompletedObjectives = cloneStrings(q.CompletedObjectives)
			out.Quests[id] = q
		}
	}

	out.EventHistory = cloneStrings(gs.EventHistory)
	return out
}

// DescribeLocation renders the player's current surroundings as plain
// text. Used by shortcut commands and the console UI.
func (gs *GameState) DescribeLocation() string {
	loc, ok := gs.CurrentLocation()
	if !ok {
		return "You are in an unknown location."
	}

	var sb strings.Builder
	if loc.Description != "" {
		sb.WriteString(loc.Description)
	} else {
		sb.WriteString("A mysterious place.")
	}
	if len(loc.ItemsPresent) > 0 {
		sb.WriteString("\n\nItems here: " + strings.Join(loc.ItemsPresent, ", "))
	}
	if len(loc.NPCsPresent) > 0 {
		sb.WriteString("\nYou see: " + strings.Join(loc.NPCsPresent, ", "))
	}
	if len(loc.Exits) > 0 {
		exits := make([]string, 0, len(loc.Exits))
		for dir, dest := range loc.Exits {
			exits = append(exits, fmt.Sprintf("%s to %s", dir, dest))
		}
		sb.WriteString("\nExits: " + strings.Join(exits, ", "))
	}
	return sb.String()
}

func (gs *GameState) DescribeInventory() string {
	if gs.Player == nil || len(gs.Player.Inventory) == 0 {
		return "Your inventory is empty."
	}
	return "You have:\n- " + strings.Join(gs.Player.Inventory, "\n- ")
}

func (gs *GameState) DescribeStats() string {
	p := gs.Player
	if p == nil {
		return "No player yet. Take an action to begin."
	}
	return fmt.Sprintf("Health: %d | Mana: %d | Gold: %d | XP: %d", p.Health, p.Mana, p.Gold, p.XP)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
