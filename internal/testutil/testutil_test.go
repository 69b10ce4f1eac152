package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "driver: sqlite")
	assert.Contains(t, string(content), filepath.Join(tmpDir, "progress"))

	for _, d := range []string{"data", "progress", "export"} {
		info, err := os.Stat(filepath.Join(tmpDir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestFixtures(t *testing.T) {
	db := NewDB(t)

	exerciseID := CreateExercise(t, db, "Squat", "legs", "core")
	sessionID := CreateSession(t, db, exerciseID, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		WithWeight(100), WithRepsAndSets(5, 3), WithDifficulty(4), WithNotes("felt strong"))
	CreateSet(t, db, sessionID, 1, 5, 100)
	menuID := CreateMenu(t, db, "Leg day", exerciseID)

	var parts []string
	require.NoError(t, db.Select(&parts, "SELECT body_part FROM exercise_body_parts WHERE exercise_id = ? ORDER BY id", exerciseID))
	assert.Equal(t, []string{"legs", "core"}, parts)

	var setCount int
	require.NoError(t, db.Get(&setCount, "SELECT set_count FROM workout_sessions WHERE id = ?", sessionID))
	assert.Equal(t, 3, setCount)

	var items int
	require.NoError(t, db.Get(&items, "SELECT COUNT(*) FROM training_menu_items WHERE menu_id = ?", menuID))
	assert.Equal(t, 1, items)
}
