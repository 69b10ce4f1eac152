package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/liftlog/internal/exercise"
	"github.com/at-ishikawa/liftlog/internal/menu"
)

func TestCLI_WorkoutAndMenuFlow(t *testing.T) {
	c := newCLI(t)

	assert.Contains(t, c.mustRun("migrate"), "Applied")
	assert.Contains(t, c.mustRun("exercise", "list"), "Squat")
	assert.Contains(t, c.mustRun("seed"), "Inserted 0 exercises", "seeding only fills an empty catalogue")

	out := c.mustRun("exercise", "add", "Farmer Walk", "--body-part", "arms,core")
	assert.Contains(t, out, "Farmer Walk")
	assert.Contains(t, c.mustRun("exercise", "list", "--body-part", "core"), "Farmer Walk")

	out = c.mustRun("workout", "log", "Squat", "--date", "2025-03-03", "--weight", "60", "--reps", "5", "--sets", "3")
	assert.Contains(t, out, "Logged workout 1: Squat 60kg × 5 reps × 3 sets")
	assert.Contains(t, c.mustRun("workout", "show", "1"), "Squat")

	assert.Contains(t, c.mustRun("menu", "create", "Leg day", "Squat", "Leg Press"), "Created menu 1: Leg day")

	_, err := c.run("menu", "record", "Leg day", "Squat", "--session", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "menu start")

	assert.Contains(t, c.mustRun("menu", "start", "Leg day"), "Leg day (0/2 done)")
	assert.Contains(t, c.mustRun("menu", "record", "Leg day", "Squat", "--session", "1"), "Leg day (1/2 done)")

	_, err = c.run("menu", "record", "Leg day", "Leg Press", "--session", "1")
	assert.Error(t, err, "workout 1 is a squat session")

	out = c.mustRun("menu", "record", "Leg day", "Leg Press", "--weight", "120", "--reps", "10", "--sets", "2")
	assert.Contains(t, out, "Logged workout 2: Leg Press")
	assert.Contains(t, out, "Leg day (2/2 done)")

	assert.Contains(t, c.mustRun("menu", "status", "1"), "Completed 2/2 exercises")
	assert.Contains(t, c.mustRun("menu", "list"), "(in progress)")

	out = c.mustRun("menu", "finish", "Leg day")
	assert.Contains(t, out, "Finished Leg day")
	assert.Contains(t, out, "Total: 5 sets, 35 reps")

	out = c.mustRun("menu", "list")
	assert.NotContains(t, out, "(in progress)")
	assert.Contains(t, out, "last done")

	_, err = c.run("menu", "finish", "Leg day")
	assert.Error(t, err, "no session in progress")

	out = c.mustRun("export", "text", "--from", "2025-03-01", "--to", "2025-03-05")
	assert.Contains(t, out, "2025/03/01 ~ 2025/03/05")
	assert.Contains(t, out, "• Squat | 3 sets × 5 reps | 60kg")

	_, err = c.run("workout", "show", "999")
	assert.Error(t, err)
	_, err = c.run("export", "text", "--preset", "yesterday")
	assert.Error(t, err)
}

func TestCLI_DataExportImport(t *testing.T) {
	c := newCLI(t)
	c.mustRun("migrate")
	c.mustRun("workout", "log", "Plank", "--date", "2025-03-03 07:30", "--duration", "60", "--sets", "3")

	exportDir := filepath.Join(c.dir, "snapshot")
	assert.Contains(t, c.mustRun("data", "export", "--output", exportDir), "1 sessions")
	for _, name := range []string{"exercises.yml", "sessions.yml", "menus.yml"} {
		_, err := os.Stat(filepath.Join(exportDir, name))
		assert.NoError(t, err, name)
	}

	out := c.mustRun("data", "import", "--input", exportDir, "--dry-run")
	assert.Contains(t, out, "dry-run mode")
	assert.Contains(t, out, "Sessions:  0 new, 1 skipped")
}

func TestCLI_Settings(t *testing.T) {
	c := newCLI(t)
	c.mustRun("migrate")

	assert.Contains(t, c.mustRun("settings", "show"), "Rest timer: on (1:30)")
	assert.Contains(t, c.mustRun("settings", "toggle"), "Rest timer: off")
	assert.Contains(t, c.mustRun("settings", "set", "2", "15"), "Rest timer: off (2:15)")

	_, err := c.run("settings", "set", "two", "15")
	assert.Error(t, err)
}

func TestCLI_BackupNotConfigured(t *testing.T) {
	c := newCLI(t)
	c.mustRun("migrate")

	_, err := c.run("backup", "push")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backup url is not configured")
}

func TestCLI_UnknownNames(t *testing.T) {
	c := newCLI(t)
	c.mustRun("migrate")
	c.mustRun("menu", "create", "Push day", "Bench Press")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "exercise update", args: []string{"exercise", "update", "No Such Exercise", "--name", "Other"}, wantErr: exercise.ErrNotFound},
		{name: "exercise delete", args: []string{"exercise", "delete", "No Such Exercise"}, wantErr: exercise.ErrNotFound},
		{name: "workout log", args: []string{"workout", "log", "No Such Exercise", "--reps", "5"}, wantErr: exercise.ErrNotFound},
		{name: "menu add-item unknown exercise", args: []string{"menu", "add-item", "Push day", "No Such Exercise"}, wantErr: exercise.ErrNotFound},
		{name: "menu rename", args: []string{"menu", "rename", "No Such Menu", "Other"}, wantErr: menu.ErrNotFound},
		{name: "menu delete", args: []string{"menu", "delete", "No Such Menu"}, wantErr: menu.ErrNotFound},
		{name: "menu items", args: []string{"menu", "items", "No Such Menu"}, wantErr: menu.ErrNotFound},
		{name: "menu add-item unknown menu", args: []string{"menu", "add-item", "No Such Menu", "Squat"}, wantErr: menu.ErrNotFound},
		{name: "menu start", args: []string{"menu", "start", "No Such Menu"}, wantErr: menu.ErrNotFound},
		{name: "menu record", args: []string{"menu", "record", "No Such Menu", "Squat", "--reps", "5"}, wantErr: menu.ErrNotFound},
		{name: "menu finish", args: []string{"menu", "finish", "No Such Menu"}, wantErr: menu.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.run(tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Contains(t, c.mustRun("menu", "items", "Push day"), "Bench Press", "existing menu is untouched")
}

func TestCLI_ExportDefaultPreset(t *testing.T) {
	c := newCLI(t)
	c.mustRun("migrate")

	out := c.mustRun("export", "text")
	assert.Contains(t, out, "0 training days")

	_, err := c.run("stats", "trend", "Squat")
	assert.NoError(t, err, "trend defaults to the last 30 days")
}
