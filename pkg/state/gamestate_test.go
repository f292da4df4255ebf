package state

import (
	"strings"
	"testing"
)

func TestNewGameState(t *testing.T) {
	gs := NewGameState()
	if gs.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("new game state should get a random id")
	}
	if gs.Player != nil {
		t.Error("player should be created lazily")
	}
	if gs.Locations == nil || gs.NPCs == nil || gs.Quests == nil {
		t.Error("world maps should be initialized")
	}
	if gs.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}
}

func TestEnsurePlayer(t *testing.T) {
	gs := NewGameState()
	p := gs.EnsurePlayer()
	if p.LocationID != DefaultLocationID || p.Health != DefaultPlayerHealth {
		t.Errorf("default player = %+v", p)
	}
	if gs.EnsurePlayer() != p {
		t.Error("second call should return the same player")
	}
}

func TestCloneIndependence(t *testing.T) {
	gs := testWorld()
	gs.Player.Equipped = []string{"torch"}
	gs.EventHistory = []string{"entered_cave"}

	clone := gs.Clone()

	clone.Player.Inventory[0] = "changed"
	clone.Player.Equipped[0] = "changed"
	clone.Player.Health = 1
	*clone.NPCs["goblin_01"].Health = 1
	loc := clone.Locations["cave_entrance"]
	loc.ItemsPresent[0] = "changed"
	loc.NPCsPresent[0] = "changed"
	loc.Exits["north"] = "changed"
	quest := clone.Quests["clear_the_cave"]
	quest.CompletedObjectives[0] = "changed"
	clone.EventHistory[0] = "changed"

	if gs.Player.Inventory[0] != "torch" {
		t.Error("inventory is shared with the clone")
	}
	if gs.Player.Equipped[0] != "torch" {
		t.Error("equipped is shared with the clone")
	}
	if gs.Player.Health != 100 {
		t.Error("player struct is shared with the clone")
	}
	if *gs.NPCs["goblin_01"].Health != 30 {
		t.Error("npc health pointer is shared with the clone")
	}
	if gs.Locations["cave_entrance"].ItemsPresent[0] != "rusty_dagger" {
		t.Error("location items are shared with the clone")
	}
	if gs.Locations["cave_entrance"].NPCsPresent[0] != "goblin_01" {
		t.Error("location roster is shared with the clone")
	}
	if gs.Locations["cave_entrance"].Exits["north"] != "cave_depths" {
		t.Error("location exits are shared with the clone")
	}
	if gs.Quests["clear_the_cave"].CompletedObjectives[0] != "enter_cave" {
		t.Error("quest objectives are shared with the clone")
	}
	if gs.EventHistory[0] != "entered_cave" {
		t.Error("event history is shared with the clone")
	}
}

func TestCloneNil(t *testing.T) {
	var gs *GameState
	if gs.Clone() != nil {
		t.Error("cloning nil should return nil")
	}
}

func TestDescribeLocation(t *testing.T) {
	gs := testWorld()
	desc := gs.DescribeLocation()
	for _, want := range []string{"dark opening", "rusty_dagger", "goblin_01", "north"} {
		if !strings.Contains(desc, want) {
			t.Errorf("description %q missing %q", desc, want)
		}
	}

	gs.Player.LocationID = "nowhere"
	if got := gs.DescribeLocation(); !strings.Contains(got, "unknown location") {
		t.Errorf("description for unknown location = %q", got)
	}
}

func TestDescribeInventory(t *testing.T) {
	gs := NewGameState()
	if got := gs.DescribeInventory(); !strings.Contains(got, "empty") {
		t.Errorf("empty inventory description = %q", got)
	}

	gs = testWorld()
	desc := gs.DescribeInventory()
	if !strings.Contains(desc, "torch") || !strings.Contains(desc, "rope") {
		t.Errorf("inventory description = %q", desc)
	}
}

func TestDescribeStats(t *testing.T) {
	gs := NewGameState()
	if got := gs.DescribeStats(); !strings.Contains(got, "No player") {
		t.Errorf("stats description without player = %q", got)
	}

	gs = testWorld()
	desc := gs.DescribeStats()
	for _, want := range []string{"Health: 100", "Mana: 20", "Gold: 50", "XP: 0"} {
		if !strings.Contains(desc, want) {
			t.Errorf("stats description %q missing %q", desc, want)
		}
	}
}
