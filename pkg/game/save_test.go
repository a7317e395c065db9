package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesSnapshot(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedRand{})
	submit(t, e, "take rusty")
	submit(t, e, "go north")

	out := submit(t, e, "save")
	assert.Contains(t, out, "Game saved to save_Tester_")

	matches, err := filepath.Glob(filepath.Join(e.saveDir, SaveFilePattern))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)

	var doc saveFile
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Tester", doc.Player.Name)
	assert.Equal(t, "north_trail", doc.GameState.CurrentLocation)
	assert.Equal(t, []string{"Rusty Sword"}, doc.GameState.Inventory)
	assert.Equal(t, 25, doc.GameState.GameScore)
	assert.Equal(t, 1, doc.GameState.DecisionCount)
	assert.False(t, doc.SavedAt.IsZero())
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Gandalf", "Gandalf"},
		{"Sir Galahad", "Sir_Galahad"},
		{"../../etc/passwd", "______etc_passwd"},
		{"elf-ranger_2", "elf-ranger_2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in))
	}
}
