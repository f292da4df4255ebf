package state

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{name: "array", data: `["a","b"]`, want: []string{"a", "b"}},
		{name: "bare string", data: `"sword"`, want: []string{"sword"}},
		{name: "empty string", data: `""`, want: []string{}},
		{name: "empty array", data: `[]`, want: []string{}},
		{name: "mistyped number dropped", data: `42`, want: []string{}},
		{name: "mistyped object dropped", data: `{"x":1}`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			if err := json.Unmarshal([]byte(tt.data), &l); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.data, err)
			}
			if len(l) != len(tt.want) {
				t.Fatalf("got %v, want %v", l, tt.want)
			}
			for i := range tt.want {
				if l[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", l, tt.want)
				}
			}
		})
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	uc := &UpdateCommand{}
	uc.Normalize()

	if uc.PlayerActions == nil || uc.GameEvents == nil {
		t.Error("string lists were not defaulted")
	}
	if uc.InventoryChanges.Added == nil || uc.InventoryChanges.Removed == nil ||
		uc.InventoryChanges.Equipped == nil || uc.InventoryChanges.Unequipped == nil {
		t.Error("inventory changes were not defaulted")
	}
	if uc.EntityInteractions == nil || uc.LocationChanges.RoomStateUpdates == nil || uc.QuestUpdates == nil {
		t.Error("slices were not defaulted")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	uc := &UpdateCommand{
		PlayerActions:    StringList{"attack"},
		InventoryChanges: InventoryChanges{Added: StringList{"sword"}},
		GameEvents:       StringList{"battle"},
	}
	uc.Normalize()
	before, err := json.Marshal(uc)
	if err != nil {
		t.Fatal(err)
	}

	uc.Normalize()
	after, err := json.Marshal(uc)
	if err != nil {
		t.Fatal(err)
	}

	if string(before) != string(after) {
		t.Errorf("second Normalize changed the command:\nbefore: %s\nafter:  %s", before, after)
	}
}

func TestIsEmpty(t *testing.T) {
	empty := &UpdateCommand{}
	empty.Normalize()
	if !empty.IsEmpty() {
		t.Error("normalized zero command should be empty")
	}

	// Player actions and narrative text alone do not make a command
	// non-empty; only world-changing fields count.
	narrativeOnly := &UpdateCommand{
		PlayerActions: StringList{"look around"},
		NarrativeHint: "The cave is quiet.",
	}
	narrativeOnly.Normalize()
	if !narrativeOnly.IsEmpty() {
		t.Error("narrative-only command should be empty")
	}

	withChange := &UpdateCommand{
		InventoryChanges: InventoryChanges{Added: StringList{"key"}},
	}
	withChange.Normalize()
	if withChange.IsEmpty() {
		t.Error("command with inventory change should not be empty")
	}

	withStats := &UpdateCommand{StatsChanges: StatsChanges{HealthChange: -5}}
	withStats.Normalize()
	if withStats.IsEmpty() {
		t.Error("command with stat change should not be empty")
	}
}

func TestParseUpdateCommand(t *testing.T) {
	clean := `{
		"player_actions": ["take the dagger"],
		"inventory_changes": {"added": ["rusty_dagger"], "removed": [], "equipped": [], "unequipped": []},
		"entity_interactions": [],
		"location_changes": {"new_location_id": "", "direction_moved": "", "room_state_updates": []},
		"player_stats_changes": {"health_change": 0, "mana_change": 0, "gold_change": 0, "xp_gained": 5},
		"quest_updates": [],
		"game_events": ["found_rusty_dagger"],
		"narrative_hint": "You pick up the dagger."
	}`

	t.Run("clean json", func(t *testing.T) {
		cmd, err := ParseUpdateCommand(clean)
		if err != nil {
			t.Fatalf("ParseUpdateCommand() error = %v", err)
		}
		if len(cmd.InventoryChanges.Added) != 1 || cmd.InventoryChanges.Added[0] != "rusty_dagger" {
			t.Errorf("added = %v", cmd.InventoryChanges.Added)
		}
		if cmd.StatsChanges.XPGained != 5 {
			t.Errorf("xp = %d, want 5", cmd.StatsChanges.XPGained)
		}
		if cmd.NarrativeHint != "You pick up the dagger." {
			t.Errorf("hint = %q", cmd.NarrativeHint)
		}
	})

	t.Run("fenced code block", func(t *testing.T) {
		raw := "Here is the update:\n```json\n" + clean + "\n```\nLet me know if you need anything else."
		cmd, err := ParseUpdateCommand(raw)
		if err != nil {
			t.Fatalf("ParseUpdateCommand() error = %v", err)
		}
		if len(cmd.GameEvents) != 1 || cmd.GameEvents[0] != "found_rusty_dagger" {
			t.Errorf("events = %v", cmd.GameEvents)
		}
	})

	t.Run("null and missing fields defaulted", func(t *testing.T) {
		cmd, err := ParseUpdateCommand(`{"narrative_hint": null}`)
		if err != nil {
			t.Fatalf("ParseUpdateCommand() error = %v", err)
		}
		if cmd.PlayerActions == nil || cmd.QuestUpdates == nil || cmd.InventoryChanges.Added == nil {
			t.Error("missing fields were not defaulted")
		}
		if !cmd.IsEmpty() {
			t.Error("command should be empty")
		}
	})

	t.Run("bare string where array expected", func(t *testing.T) {
		cmd, err := ParseUpdateCommand(`{"game_events": "dragon_awakened"}`)
		if err != nil {
			t.Fatalf("ParseUpdateCommand() error = %v", err)
		}
		if len(cmd.GameEvents) != 1 || cmd.GameEvents[0] != "dragon_awakened" {
			t.Errorf("events = %v, want [dragon_awakened]", cmd.GameEvents)
		}
	})

	t.Run("mistyped field kept partial", func(t *testing.T) {
		raw := `{"player_stats_changes": "a lot", "game_events": ["quake"]}`
		cmd, err := ParseUpdateCommand(raw)
		if err != nil {
			t.Fatalf("ParseUpdateCommand() error = %v", err)
		}
		if len(cmd.GameEvents) != 1 || cmd.GameEvents[0] != "quake" {
			t.Errorf("events = %v, want [quake]", cmd.GameEvents)
		}
		if cmd.StatsChanges != (StatsChanges{}) {
			t.Errorf("stats = %+v, want zero", cmd.StatsChanges)
		}
	})

	t.Run("no json object", func(t *testing.T) {
		_, err := ParseUpdateCommand("I don't understand that action.")
		var malformed *MalformedResponseError
		if !errors.As(err, &malformed) {
			t.Fatalf("error = %v, want *MalformedResponseError", err)
		}
	})

	t.Run("broken json", func(t *testing.T) {
		_, err := ParseUpdateCommand(`{"game_events": ["unterminated"}`)
		var malformed *MalformedResponseError
		if !errors.As(err, &malformed) {
			t.Fatalf("error = %v, want *MalformedResponseError", err)
		}
	})
}
