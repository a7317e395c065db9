package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jwebster45206/adventure-quest/pkg/actor"
)

// SaveFilePattern matches save snapshots on disk. The cleanup tool
// globs with this to find stale saves.
const SaveFilePattern = "save_*.json"

// saveFile is the on-disk snapshot format. Snapshots are write-only
// records of a run; there is no load path.
type saveFile struct {
	Player    *actor.Character `json:"player"`
	GameState saveState        `json:"game_state"`
	SavedAt   time.Time        `json:"saved_at"`
}

type saveState struct {
	CurrentLocation string   `json:"current_location"`
	Inventory       []string `json:"inventory"`
	GameScore       int      `json:"game_score"`
	DecisionCount   int      `json:"decision_count"`
}

// save writes a JSON snapshot named after the player and the current
// time, e.g. save_gandalf_20260831_153000.json.
func (e *Engine) save(sb *strings.Builder) error {
	names := make([]string, len(e.inventory))
	for i, item := range e.inventory {
		names[i] = item.Name
	}
	doc := saveFile{
		Player: e.player,
		GameState: saveState{
			CurrentLocation: e.location,
			Inventory:       names,
			GameScore:       e.score,
			DecisionCount:   e.decisions,
		},
		SavedAt: time.Now(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}

	name := fmt.Sprintf("save_%s_%s.json", sanitizeFilename(e.player.Name), time.Now().Format("20060102_150405"))
	path := filepath.Join(e.saveDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}

	fmt.Fprintf(sb, "Game saved to %s\n", name)
	e.logger.Info("game saved", "path", path)
	return nil
}

// sanitizeFilename keeps player names from breaking the save filename.
func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
