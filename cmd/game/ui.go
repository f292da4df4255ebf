package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/world-engine/internal/engine"
	"github.com/jwebster45206/world-engine/internal/services"
	"github.com/jwebster45206/world-engine/internal/storage"
	"github.com/jwebster45206/world-engine/pkg/state"
)

const PlaceHolderText = "What do you do?"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	locationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // green
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	feedbackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")) // purple

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

var titleCaser = cases.Title(language.English)

// GameUI is the BubbleTea model that runs the local game loop.
type GameUI struct {
	engine   *engine.Engine
	saveFile *storage.SaveFile
	gs       *state.GameState
	logger   *slog.Logger

	viewport viewport.Model
	textarea textarea.Model
	lines    []string
	ready    bool
	width    int
	height   int
	loading  bool
}

type turnResultMsg struct {
	result *engine.TurnResult
	err    error
}

func NewGameUI(eng *engine.Engine, saveFile *storage.SaveFile, gs *state.GameState, logger *slog.Logger) GameUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(2)
	ta.ShowLineNumbers = false

	vp := viewport.New(50, 20)
	vp.MouseWheelEnabled = true

	ui := GameUI{
		engine:   eng,
		saveFile: saveFile,
		gs:       gs,
		logger:   logger,
		textarea: ta,
		viewport: vp,
	}
	ui.pushWelcome()
	return ui
}

func (ui *GameUI) pushWelcome() {
	ui.lines = append(ui.lines,
		titleStyle.Render("WORLD ENGINE"),
		"",
		"Describe your actions naturally. Type \"help\" for shortcuts, \"quit\" to save and exit.",
		"",
		ui.renderLocation(),
		"",
		ui.renderStats(),
	)
}

func (ui GameUI) Init() tea.Cmd {
	return textarea.Blink
}

func (ui GameUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)
	ui.textarea, taCmd = ui.textarea.Update(msg)
	ui.viewport, vpCmd = ui.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width = msg.Width
		ui.height = msg.Height
		ui.viewport.Width = msg.Width - 4
		ui.viewport.Height = msg.Height - 6
		ui.textarea.SetWidth(msg.Width - 4)
		ui.ready = true
		ui.refreshViewport()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			ui.saveQuietly()
			return ui, tea.Quit

		case tea.KeyCtrlG:
			// Copy the session id for bug reports.
			if err := clipboard.WriteAll(ui.gs.ID.String()); err == nil {
				ui.pushLine(promptStyle.Render("Game ID copied to clipboard."))
				ui.refreshViewport()
			}

		case tea.KeyEnter:
			if ui.loading {
				return ui, nil
			}
			input := strings.TrimSpace(ui.textarea.Value())
			ui.textarea.Reset()
			if input == "" {
				return ui, nil
			}

			switch strings.ToLower(input) {
			case "quit", "exit", "q":
				ui.saveQuietly()
				return ui, tea.Quit
			}

			ui.pushLine("")
			ui.pushLine(userStyle.Render("> " + input))
			ui.pushLine(loadingStyle.Render("Interpreting your action..."))
			ui.loading = true
			return ui, tea.Batch(taCmd, vpCmd, ui.runTurn(input))
		}

	case turnResultMsg:
		ui.loading = false
		ui.dropLoadingLine()
		if msg.err != nil {
			ui.handleTurnError(msg.err)
			return ui, tea.Batch(taCmd, vpCmd)
		}
		ui.handleTurnResult(msg.result)
		return ui, tea.Batch(taCmd, vpCmd)
	}

	return ui, tea.Batch(taCmd, vpCmd)
}

func (ui GameUI) View() string {
	if !ui.ready {
		return "Loading..."
	}
	separator := separatorStyle.Render(strings.Repeat("─", max(ui.width-4, 10)))
	return lipgloss.NewStyle().Padding(1, 2).Render(
		ui.viewport.View() + "\n" + separator + "\n" + ui.textarea.View())
}

// runTurn executes one engine turn off the UI goroutine.
func (ui GameUI) runTurn(input string) tea.Cmd {
	eng, gs := ui.engine, ui.gs
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		result, err := eng.RunTurn(ctx, gs, input)
		return turnResultMsg{result: result, err: err}
	}
}

func (ui *GameUI) handleTurnResult(result *engine.TurnResult) {
	if result.Handled {
		ui.pushBlock(narratorStyle.Render(ui.wrap(result.Message)))
		ui.refreshViewport()
		return
	}

	moved := result.Command.LocationChanges.NewLocationID != "" &&
		(ui.gs.Player == nil || result.Command.LocationChanges.NewLocationID != ui.gs.Player.LocationID)
	ui.gs = result.State

	for _, line := range ui.renderFeedback(result.Command) {
		ui.pushLine(feedbackStyle.Render(line))
	}
	if hint := result.Command.NarrativeHint; hint != "" {
		ui.pushLine("")
		ui.pushBlock(narratorStyle.Render(ui.wrap(hint)))
	}
	if moved {
		ui.pushLine("")
		ui.pushBlock(ui.renderLocation())
	}
	ui.pushLine("")
	ui.pushLine(ui.renderStats())

	// Auto-save after each turn. A failed save never rolls back the
	// turn; the next save attempt catches up.
	if err := ui.saveFile.Save(ui.gs); err != nil {
		ui.logger.Error("Failed to save game", "error", err)
		ui.pushLine(errorStyle.Render("Warning: could not save the game."))
	}

	ui.refreshViewport()
}

func (ui *GameUI) handleTurnError(err error) {
	ui.logger.Warn("Turn failed", "error", err)
	var parseErr *services.ParseError
	if errors.As(err, &parseErr) {
		ui.pushLine(errorStyle.Render("The game master didn't understand that. Try rephrasing your action."))
	} else {
		ui.pushLine(errorStyle.Render("Something went wrong. The world is unchanged."))
	}
	ui.refreshViewport()
}

// renderFeedback summarizes a turn's effects, one line per change.
func (ui *GameUI) renderFeedback(cmd *state.UpdateCommand) []string {
	var lines []string

	if added := cmd.InventoryChanges.Added; len(added) > 0 {
		lines = append(lines, "Gained: "+strings.Join(added, ", "))
	}
	if removed := cmd.InventoryChanges.Removed; len(removed) > 0 {
		lines = append(lines, "Lost: "+strings.Join(removed, ", "))
	}
	if equipped := cmd.InventoryChanges.Equipped; len(equipped) > 0 {
		lines = append(lines, "Equipped: "+strings.Join(equipped, ", "))
	}

	for _, interaction := range cmd.EntityInteractions {
		line := fmt.Sprintf("%s %s", titleCaser.String(strings.ReplaceAll(interaction.Action, "_", " ")), interaction.ID)
		if interaction.Outcome != "" {
			line += " - " + interaction.Outcome
		}
		lines = append(lines, line)
	}

	stats := cmd.StatsChanges
	if stats.HealthChange != 0 {
		lines = append(lines, fmt.Sprintf("Health %+d", stats.HealthChange))
	}
	if stats.ManaChange != 0 {
		lines = append(lines, fmt.Sprintf("Mana %+d", stats.ManaChange))
	}
	if stats.GoldChange != 0 {
		lines = append(lines, fmt.Sprintf("Gold %+d", stats.GoldChange))
	}
	if stats.XPGained > 0 {
		lines = append(lines, fmt.Sprintf("XP +%d", stats.XPGained))
	}

	for _, quest := range cmd.QuestUpdates {
		lines = append(lines, fmt.Sprintf("Quest %q: %s", quest.QuestID, quest.Status))
	}
	for _, event := range cmd.GameEvents {
		lines = append(lines, titleCaser.String(strings.ReplaceAll(event, "_", " "))+"!")
	}

	return lines
}

func (ui *GameUI) renderLocation() string {
	locationID := state.DefaultLocationID
	if ui.gs.Player != nil {
		locationID = ui.gs.Player.LocationID
	}
	name := titleCaser.String(strings.ReplaceAll(locationID, "_", " "))
	return locationStyle.Render(name) + "\n" + narratorStyle.Render(ui.wrap(ui.gs.DescribeLocation()))
}

func (ui *GameUI) renderStats() string {
	return statsStyle.Render(ui.gs.DescribeStats())
}

func (ui *GameUI) wrap(s string) string {
	width := ui.viewport.Width
	if width <= 0 {
		width = 76
	}
	return wordwrap.String(s, width)
}

func (ui *GameUI) pushLine(line string) {
	ui.lines = append(ui.lines, line)
}

func (ui *GameUI) pushBlock(block string) {
	ui.lines = append(ui.lines, strings.Split(block, "\n")...)
}

func (ui *GameUI) dropLoadingLine() {
	if n := len(ui.lines); n > 0 && strings.Contains(ui.lines[n-1], "Interpreting") {
		ui.lines = ui.lines[:n-1]
	}
}

func (ui *GameUI) refreshViewport() {
	ui.viewport.SetContent(strings.Join(ui.lines, "\n"))
	ui.viewport.GotoBottom()
}

func (ui *GameUI) saveQuietly() {
	if err := ui.saveFile.Save(ui.gs); err != nil {
		ui.logger.Error("Failed to save game on exit", "error", err)
	}
}
