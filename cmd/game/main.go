package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/world-engine/internal/config"
	"github.com/jwebster45206/world-engine/internal/engine"
	"github.com/jwebster45206/world-engine/internal/services"
	"github.com/jwebster45206/world-engine/internal/storage"
	"github.com/jwebster45206/world-engine/pkg/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Stdout belongs to the UI; logs go to a file in the data dir.
	log := fileLogger(cfg)

	var llmService services.LLMService
	switch strings.ToLower(cfg.LLMProvider) {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			fmt.Fprintln(os.Stderr, "ANTHROPIC_API_KEY is required when LLM_PROVIDER=anthropic")
			os.Exit(1)
		}
		llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
	default:
		llmService = services.NewOllamaService(cfg.OllamaURL, cfg.ModelName, log)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	if err := llmService.InitModel(ctx, cfg.ModelName); err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "Could not initialize model %q: %v\n", cfg.ModelName, err)
		os.Exit(1)
	}
	cancel()

	saveFile := storage.NewSaveFile(cfg.DataDir, log)
	gs, err := saveFile.Load()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Could not load game: %v\n", err)
			os.Exit(1)
		}
		// No save and no template: start an empty world. The player
		// is default-constructed on the first turn.
		gs = state.NewGameState()
	}

	eng := engine.New(services.NewParser(llmService, log), log)

	p := tea.NewProgram(NewGameUI(eng, saveFile, gs, log),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func fileLogger(cfg *config.Config) *slog.Logger {
	var w io.Writer = io.Discard
	if err := os.MkdirAll(cfg.DataDir, 0o755); err == nil {
		if f, err := os.OpenFile(filepath.Join(cfg.DataDir, "game.log"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			w = f
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel}))
}
