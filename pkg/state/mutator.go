package state

import (
	"log/slog"
	"slices"
)

// AttackDamage is the fixed amount of damage an NPC takes when the
// player attacks it.
const AttackDamage = 10

// EntityTypeNPC is the only entity type with engine-side lifecycle
// rules. Other types ("door", "lever", ...) pass through untouched and
// are handled as room-state updates instead.
const EntityTypeNPC = "NPC"

// Interaction actions and outcomes recognized by the entity mutator.
const (
	ActionAttacked = "attacked"
	ActionTalkedTo = "talked_to"
)

// fatalOutcomes mark an NPC dead and remove it from the player's
// current room.
var fatalOutcomes = []string{"killed", "defeated", "destroyed"}

// Mutator applies one UpdateCommand to one GameState. Sub-mutators run
// in a fixed order against the same evolving working copy: inventory,
// location, stats, room state, entity interactions, quests, events.
// Room-state updates therefore see the post-movement location, and
// inventory removal happens before anything reads items_present.
type Mutator struct {
	gs     *GameState
	cmd    *UpdateCommand
	logger *slog.Logger
}

// NewMutator creates a mutator for applying a command to a game state.
// The command must be normalized (see UpdateCommand.Normalize).
func NewMutator(gs *GameState, cmd *UpdateCommand, logger *slog.Logger) *Mutator {
	return &Mutator{
		gs:     gs,
		cmd:    cmd,
		logger: logger,
	}
}

// Apply runs all sub-mutators and returns the resulting state. The
// input state is never modified: changes accumulate in a deep copy
// that is returned only when every step has completed, so a failure
// leaves the committed state untouched and the caller can simply keep
// using the old value.
//
// Unknown ids referenced by the command (locations, NPCs, objects) are
// skipped silently; they are a normal consequence of trusting the
// parser and never abort the turn.
func (m *Mutator) Apply() (*GameState, error) {
	if m.cmd == nil || m.cmd.IsEmpty() {
		return m.gs, nil
	}

	next := m.gs.Clone()
	player := next.EnsurePlayer()

	m.applyInventory(player)
	m.applyLocation(next, player)
	m.applyStats(player)
	m.applyRoomStates(next, player)
	m.applyInteractions(next, player)
	m.applyQuests(next)
	m.recordEvents(next)

	return next, nil
}

// applyInventory adds and removes inventory items with set semantics:
// adding an item the player already holds is a no-op, and removing an
// item the player never held is not an error. Equipped follows the
// same rules.
func (m *Mutator) applyInventory(player *Player) {
	for _, item := range m.cmd.InventoryChanges.Added {
		player.Inventory = addUnique(player.Inventory, item)
	}
	for _, item := range m.cmd.InventoryChanges.Removed {
		player.Inventory = removeString(player.Inventory, item)
	}
	for _, item := range m.cmd.InventoryChanges.Equipped {
		player.Equipped = addUnique(player.Equipped, item)
	}
	for _, item := range m.cmd.InventoryChanges.Unequipped {
		player.Equipped = removeString(player.Equipped, item)
	}
}

// applyLocation moves the player. The new location id is applied
// unconditionally: the parser is trusted to have validated
// reachability, and the engine is a state-application layer, not a
// rules engine.
func (m *Mutator) applyLocation(gs *GameState, player *Player) {
	newLocation := m.cmd.LocationChanges.NewLocationID
	if newLocation == "" {
		return
	}
	if player.LocationID != newLocation && m.logger != nil {
		m.logger.Debug("Player moved",
			"from", player.LocationID,
			"to", newLocation,
			"direction", m.cmd.LocationChanges.DirectionMoved)
	}
	player.LocationID = newLocation
}

// applyStats applies clamped deltas to player resources. Health, mana
// and gold never go below zero; xp only ever increases through this
// path. Zero deltas are skipped so an empty command touches nothing.
func (m *Mutator) applyStats(player *Player) {
	changes := m.cmd.StatsChanges
	if changes.HealthChange != 0 {
		player.Health = clampZero(player.Health + changes.HealthChange)
	}
	if changes.ManaChange != 0 {
		player.Mana = clampZero(player.Mana + changes.ManaChange)
	}
	if changes.GoldChange != 0 {
		player.Gold = clampZero(player.Gold + changes.GoldChange)
	}
	if changes.XPGained > 0 {
		player.XP += changes.XPGained
	}
}

// applyRoomStates records object state labels on the player's current
// (post-movement) room. A "missing" state additionally strips the
// object from the room's visible items. If the player is somewhere the
// world doesn't know about, the whole step is a silent no-op.
func (m *Mutator) applyRoomStates(gs *GameState, player *Player) {
	if len(m.cmd.LocationChanges.RoomStateUpdates) == 0 {
		return
	}

	room, ok := gs.Locations[player.LocationID]
	if !ok {
		if m.logger != nil {
			m.logger.Debug("Skipping room state updates for unknown location", "location_id", player.LocationID)
		}
		return
	}

	for _, update := range m.cmd.LocationChanges.RoomStateUpdates {
		if room.ObjectStates == nil {
			room.ObjectStates = make(map[string]string)
		}
		room.ObjectStates[update.ObjectID] = update.State

		if update.State == "missing" {
			room.ItemsPresent = removeString(room.ItemsPresent, update.ObjectID)
		}
	}
	gs.Locations[player.LocationID] = room
}

// applyInteractions runs the NPC lifecycle state machine for each
// interaction, in input order. Only interactions with a known NPC are
// applied; anything else is skipped. A fatal outcome marks the NPC
// dead and removes it from the player's current room, regardless of
// the action that produced it. Re-killing an already-dead NPC is an
// idempotent no-op.
func (m *Mutator) applyInteractions(gs *GameState, player *Player) {
	for _, interaction := range m.cmd.EntityInteractions {
		if interaction.Type != EntityTypeNPC {
			continue
		}
		npc, ok := gs.NPCs[interaction.ID]
		if !ok {
			if m.logger != nil {
				m.logger.Debug("Skipping interaction with unknown NPC", "npc_id", interaction.ID)
			}
			continue
		}

		switch interaction.Action {
		case ActionAttacked:
			if npc.Health != nil {
				h := clampZero(*npc.Health - AttackDamage)
				npc.Health = &h
			}
			npc.Hostile = true
		case ActionTalkedTo:
			npc.Talked = true
		}

		if slices.Contains(fatalOutcomes, interaction.Outcome) {
			npc.Alive = false
			if room, ok := gs.Locations[player.LocationID]; ok {
				room.NPCsPresent = removeString(room.NPCsPresent, interaction.ID)
				gs.Locations[player.LocationID] = room
			}
		}

		gs.NPCs[interaction.ID] = npc
	}
}

// applyQuests applies quest status transitions and objective
// completions. Quests are created on first reference. Statuses are
// applied literally: "started" sets in_progress, and "completed" or
// "failed" overwrite whatever was there before, including each other.
// Objectives accumulate as a set regardless of quest status.
func (m *Mutator) applyQuests(gs *GameState) {
	if len(m.cmd.QuestUpdates) == 0 {
		return
	}
	if gs.Quests == nil {
		gs.Quests = make(map[string]Quest)
	}

	for _, update := range m.cmd.QuestUpdates {
		if update.QuestID == "" {
			continue
		}

		quest, ok := gs.Quests[update.QuestID]
		if !ok {
			quest = Quest{
				Status:              QuestNotStarted,
				CompletedObjectives: make([]string, 0),
			}
		}

		switch update.Status {
		case "started":
			quest.Status = QuestInProgress
		case string(QuestCompleted), string(QuestFailed):
			quest.Status = QuestStatus(update.Status)
		}

		if update.ObjectiveID != "" {
			quest.CompletedObjectives = addUnique(quest.CompletedObjectives, update.ObjectiveID)
		}

		gs.Quests[update.QuestID] = quest
	}
}

// recordEvents appends game events to the bounded history, dropping
// the oldest entries past EventHistoryLimit.
func (m *Mutator) recordEvents(gs *GameState) {
	if len(m.cmd.GameEvents) == 0 {
		return
	}
	gs.EventHistory = append(gs.EventHistory, m.cmd.GameEvents...)
	if len(gs.EventHistory) > EventHistoryLimit {
		gs.EventHistory = gs.EventHistory[len(gs.EventHistory)-EventHistoryLimit:]
	}
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func addUnique(items []string, item string) []string {
	if slices.Contains(items, item) {
		return items
	}
	return append(items, item)
}

func removeString(items []string, item string) []string {
	for i, existing := range items {
		if existing == item {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}
