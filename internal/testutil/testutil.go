// Package testutil provides shared test helpers for creating config files and database fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/liftlog/internal/database"
)

// SetupTestConfig creates a minimal config file and all required directories for testing.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"data", "progress", "export"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`app:
  timezone: Asia/Taipei
database:
  driver: sqlite
  path: %s
progress:
  backend: file
  directory: %s
outputs:
  export_directory: %s
`,
		filepath.Join(tmpDir, "data", "workout.db"),
		filepath.Join(tmpDir, "progress"),
		filepath.Join(tmpDir, "export"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// NewDB opens an in-memory SQLite database with every migration applied.
// The database is closed when the test finishes.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = database.Migrate(context.Background(), db)
	require.NoError(t, err)
	return db
}

// CreateExercise inserts an active exercise tagged with bodyParts and returns its ID.
func CreateExercise(t *testing.T, db *sqlx.DB, name string, bodyParts ...string) int64 {
	t.Helper()

	result, err := db.Exec("INSERT INTO exercises (name, is_active) VALUES (?, 1)", name)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	for _, part := range bodyParts {
		_, err := db.Exec("INSERT INTO exercise_body_parts (exercise_id, body_part) VALUES (?, ?)", id, part)
		require.NoError(t, err)
	}
	return id
}

// SessionOption configures optional fields when creating a workout session fixture.
type SessionOption func(*sessionFixture)

type sessionFixture struct {
	weight       *float64
	reps         *int
	setCount     *int
	duration     *int
	difficulty   *int
	isBodyweight bool
	notes        *string
}

// WithWeight sets the session weight in kilograms.
func WithWeight(weight float64) SessionOption {
	return func(f *sessionFixture) { f.weight = &weight }
}

// WithRepsAndSets sets reps per set and the number of sets.
func WithRepsAndSets(reps, sets int) SessionOption {
	return func(f *sessionFixture) {
		f.reps = &reps
		f.setCount = &sets
	}
}

// WithDuration makes the session time based.
func WithDuration(seconds, sets int) SessionOption {
	return func(f *sessionFixture) {
		f.duration = &seconds
		f.setCount = &sets
	}
}

// WithDifficulty sets the 1-5 difficulty rating.
func WithDifficulty(difficulty int) SessionOption {
	return func(f *sessionFixture) { f.difficulty = &difficulty }
}

// WithBodyweight marks the session as a bodyweight session.
func WithBodyweight() SessionOption {
	return func(f *sessionFixture) { f.isBodyweight = true }
}

// WithNotes sets the session notes.
func WithNotes(notes string) SessionOption {
	return func(f *sessionFixture) { f.notes = &notes }
}

// CreateSession inserts a workout session and returns its ID.
func CreateSession(t *testing.T, db *sqlx.DB, exerciseID int64, date time.Time, opts ...SessionOption) int64 {
	t.Helper()

	var f sessionFixture
	for _, opt := range opts {
		opt(&f)
	}

	result, err := db.Exec(`INSERT INTO workout_sessions
		(exercise_id, date, weight, reps, set_count, duration, difficulty, is_bodyweight, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		exerciseID, database.Timestamp(date), f.weight, f.reps, f.setCount, f.duration, f.difficulty, f.isBodyweight, f.notes)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}

// CreateSet inserts a per-set row for a session.
func CreateSet(t *testing.T, db *sqlx.DB, sessionID int64, setNumber, reps int, weight float64) {
	t.Helper()

	_, err := db.Exec("INSERT INTO workout_sets (session_id, set_number, reps, weight) VALUES (?, ?, ?, ?)",
		sessionID, setNumber, reps, weight)
	require.NoError(t, err)
}

// CreateMenu inserts a training menu with the given exercises in order and returns its ID.
func CreateMenu(t *testing.T, db *sqlx.DB, name string, exerciseIDs ...int64) int64 {
	t.Helper()

	result, err := db.Exec("INSERT INTO training_menus (name) VALUES (?)", name)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	for i, exerciseID := range exerciseIDs {
		_, err := db.Exec("INSERT INTO training_menu_items (menu_id, exercise_id, sort_order) VALUES (?, ?, ?)", id, exerciseID, i)
		require.NoError(t, err)
	}
	return id
}
