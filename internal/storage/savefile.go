package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jwebster45206/world-engine/pkg/state"
)

const (
	currentStateFile = "current_state.json"
	initialStateFile = "initial_state.json"
)

// SaveFile persists a single game session to disk, the local-play
// counterpart to RedisStorage. The live save is current_state.json;
// initial_state.json is the authored world template a fresh or
// corrupted game falls back to.
type SaveFile struct {
	dir    string
	logger *slog.Logger
}

// NewSaveFile creates a save file rooted at dir.
func NewSaveFile(dir string, logger *slog.Logger) *SaveFile {
	if dir == "" {
		dir = "game_data"
	}
	return &SaveFile{
		dir:    dir,
		logger: logger,
	}
}

func (s *SaveFile) currentPath() string {
	return filepath.Join(s.dir, currentStateFile)
}

func (s *SaveFile) initialPath() string {
	return filepath.Join(s.dir, initialStateFile)
}

// Load returns the live save if it parses. A missing or corrupted live
// save falls back to the initial-state template, which is immediately
// persisted as the new live save. If neither file exists, Load returns
// ErrNotFound.
func (s *SaveFile) Load() (*state.GameState, error) {
	gs, err := s.readState(s.currentPath())
	if err == nil {
		s.logger.Info("Loaded save", "path", s.currentPath())
		return gs, nil
	}
	if !os.IsNotExist(err) {
		s.logger.Warn("Corrupted save file, loading initial state instead",
			"path", s.currentPath(), "error", err)
	}

	gs, err = s.readState(s.initialPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load initial state: %w", err)
	}

	s.logger.Info("Loaded initial state", "path", s.initialPath())
	if err := s.Save(gs); err != nil {
		return nil, fmt.Errorf("failed to persist initial state as save: %w", err)
	}
	return gs, nil
}

// Save writes the state as human-readable JSON. The write goes to a
// temp file first and is renamed into place, so a crash mid-write
// cannot corrupt the previous save.
func (s *SaveFile) Save(gs *state.GameState) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}

	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, currentStateFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp save file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close save file: %w", err)
	}

	if err := os.Rename(tmpName, s.currentPath()); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace save file: %w", err)
	}

	return nil
}

func (s *SaveFile) readState(path string) (*state.GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var gs state.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &gs, nil
}
