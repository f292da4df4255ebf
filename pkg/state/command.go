package state

import "strings"

type CommandType string

const (
	CmdLook      CommandType = "look"
	CmdInventory CommandType = "inventory"
	CmdStats     CommandType = "stats"
	CmdHelp      CommandType = "help"
	CmdNone      CommandType = "" // No command, used for fallback
)

const helpText = `Describe your actions naturally (e.g. "go north", "take the dagger").
Talk to NPCs, examine items, fight enemies.

Shortcuts:
  look / l       describe your surroundings
  inventory / i  list what you are carrying
  stats          show health, gold and experience
  help / ?       show this message`

// parseCommand parses the input string and returns the command type if
// recognized. If not recognized, returns CmdNone.
func parseCommand(input string) CommandType {
	known := map[string]CommandType{
		"look":      CmdLook,
		"l":         CmdLook,
		"inventory": CmdInventory,
		"i":         CmdInventory,
		"stats":     CmdStats,
		"help":      CmdHelp,
		"?":         CmdHelp,
	}
	trimmed := strings.TrimSpace(strings.ToLower(input))
	if trimmed == "" {
		return CmdNone
	}
	cmd, ok := known[trimmed]
	if !ok {
		return CmdNone
	}
	return cmd
}

// CommandResult is an early evaluation of player input.
type CommandResult struct {
	Handled bool   // True if the input was fully resolved and no LLM call is needed
	Message string // Message to show the player, or the passthrough input
}

// TryHandleCommand looks for shortcut commands and answers them from
// local state, skipping the LLM round trip.
func (gs *GameState) TryHandleCommand(input string) *CommandResult {
	switch parseCommand(input) {
	case CmdLook:
		return &CommandResult{Handled: true, Message: gs.DescribeLocation()}
	case CmdInventory:
		return &CommandResult{Handled: true, Message: gs.DescribeInventory()}
	case CmdStats:
		return &CommandResult{Handled: true, Message: gs.DescribeStats()}
	case CmdHelp:
		return &CommandResult{Handled: true, Message: helpText}
	default:
		return &CommandResult{Handled: false, Message: input}
	}
}
