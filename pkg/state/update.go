package state

import (
	"encoding/json"
	"strings"
)

// StringList unmarshals from either a JSON array of strings or a bare
// string. Language models frequently emit a single string where the
// schema asks for an array.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var asArray []string
	if err := json.Unmarshal(data, &asArray); err == nil {
		*l = asArray
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if asString == "" {
			*l = StringList{}
		} else {
			*l = StringList{asString}
		}
		return nil
	}
	// Mistyped value: drop it rather than failing the whole command.
	*l = StringList{}
	return nil
}

// InventoryChanges describes items entering and leaving the player's
// possession in one turn.
type InventoryChanges struct {
	Added      StringList `json:"added"`
	Removed    StringList `json:"removed"`
	Equipped   StringList `json:"equipped"`
	Unequipped StringList `json:"unequipped"`
}

// EntityInteraction is one interaction with an NPC or other dynamic
// entity, as reported by the parser.
type EntityInteraction struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Action  string `json:"action"`
	Outcome string `json:"outcome,omitempty"`
}

// RoomStateUpdate sets an object in the player's current room to a new
// state label.
type RoomStateUpdate struct {
	ObjectID string `json:"object_id"`
	State    string `json:"state"`
}

// LocationChanges describes player movement and in-room object changes.
type LocationChanges struct {
	NewLocationID    string            `json:"new_location_id"`
	DirectionMoved   string            `json:"direction_moved"`
	RoomStateUpdates []RoomStateUpdate `json:"room_state_updates"`
}

// StatsChanges carries signed deltas for player resources. Health,
// mana and gold clamp at zero; xp_gained is applied only if positive.
type StatsChanges struct {
	HealthChange int `json:"health_change"`
	ManaChange   int `json:"mana_change"`
	GoldChange   int `json:"gold_change"`
	XPGained     int `json:"xp_gained"`
}

// QuestUpdate is one quest status transition and/or objective
// completion.
type QuestUpdate struct {
	QuestID     string `json:"quest_id"`
	Status      string `json:"status"`
	ObjectiveID string `json:"objective_id,omitempty"`
}

// UpdateCommand is the normalized, fully-defaulted description of one
// turn's effects, produced by the parser collaborator. The mutator may
// assume every field is populated; Normalize is the sole sanitization
// boundary between the LLM and the engine.
type UpdateCommand struct {
	PlayerActions      StringList          `json:"player_actions"`
	InventoryChanges   InventoryChanges    `json:"inventory_changes"`
	EntityInteractions []EntityInteraction `json:"entity_interactions"`
	LocationChanges    LocationChanges     `json:"location_changes"`
	StatsChanges       StatsChanges        `json:"player_stats_changes"`
	QuestUpdates       []QuestUpdate       `json:"quest_updates"`
	GameEvents         StringList          `json:"game_events"`
	NarrativeHint      string              `json:"narrative_hint,omitempty"`
}

// Normalize fills every nil collection with its empty default so the
// mutator never has to guard against missing fields. Normalizing an
// already-normalized command is a no-op.
func (uc *UpdateCommand) Normalize() {
	if uc.PlayerActions == nil {
		uc.PlayerActions = make(StringList, 0)
	}
	if uc.InventoryChanges.Added == nil {
		uc.InventoryChanges.Added = make(StringList, 0)
	}
	if uc.InventoryChanges.Removed == nil {
		uc.InventoryChanges.Removed = make(StringList, 0)
	}
	if uc.InventoryChanges.Equipped == nil {
		uc.InventoryChanges.Equipped = make(StringList, 0)
	}
	if uc.InventoryChanges.Unequipped == nil {
		uc.InventoryChanges.Unequipped = make(StringList, 0)
	}
	if uc.EntityInteractions == nil {
		uc.EntityInteractions = make([]EntityInteraction, 0)
	}
	if uc.LocationChanges.RoomStateUpdates == nil {
		uc.LocationChanges.RoomStateUpdates = make([]RoomStateUpdate, 0)
	}
	if uc.QuestUpdates == nil {
		uc.QuestUpdates = make([]QuestUpdate, 0)
	}
	if uc.GameEvents == nil {
		uc.GameEvents = make(StringList, 0)
	}
}

// IsEmpty reports whether the command changes nothing.
func (uc *UpdateCommand) IsEmpty() bool {
	return uc == nil || (len(uc.InventoryChanges.Added) == 0 &&
		len(uc.InventoryChanges.Removed) == 0 &&
		len(uc.InventoryChanges.Equipped) == 0 &&
		len(uc.InventoryChanges.Unequipped) == 0 &&
		len(uc.EntityInteractions) == 0 &&
		uc.LocationChanges.NewLocationID == "" &&
		len(uc.LocationChanges.RoomStateUpdates) == 0 &&
		uc.StatsChanges == StatsChanges{} &&
		len(uc.QuestUpdates) == 0 &&
		len(uc.GameEvents) == 0)
}

// ParseUpdateCommand decodes raw LLM output into a normalized command.
// The model is prompted to return a single JSON object with no
// surrounding prose, but this is the safety net for any deviation:
// fenced code blocks and leading/trailing chatter are stripped, and
// mistyped optional fields are dropped rather than rejected. Only a
// response with no JSON object at all is an error.
func ParseUpdateCommand(raw string) (*UpdateCommand, error) {
	jsonStart := strings.Index(raw, "{")
	jsonEnd := strings.LastIndex(raw, "}")
	if jsonStart < 0 || jsonEnd < jsonStart {
		return nil, &MalformedResponseError{Raw: raw}
	}

	var uc UpdateCommand
	if err := json.Unmarshal([]byte(raw[jsonStart:jsonEnd+1]), &uc); err != nil {
		// An UnmarshalTypeError still populates every well-typed
		// field; keep whatever decoded. Syntax errors mean the
		// response is not a JSON object at all.
		if _, ok := err.(*json.UnmarshalTypeError); !ok {
			return nil, &MalformedResponseError{Raw: raw, Err: err}
		}
	}

	uc.Normalize()
	return &uc, nil
}

// MalformedResponseError means the parser collaborator produced output
// with no usable JSON object. The caller reports it to the user and
// leaves the game state unchanged.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return "no valid update in model response: " + e.Err.Error()
	}
	return "no valid update in model response"
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
