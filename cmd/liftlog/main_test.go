package main

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/liftlog/internal/testutil"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "liftlog", root.Use)
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))

	tests := []struct {
		path []string
	}{
		{path: []string{"migrate"}},
		{path: []string{"seed"}},
		{path: []string{"exercise", "add"}},
		{path: []string{"workout", "log"}},
		{path: []string{"menu", "start"}},
		{path: []string{"menu", "record"}},
		{path: []string{"menu", "finish"}},
		{path: []string{"stats", "trend"}},
		{path: []string{"export", "pdf"}},
		{path: []string{"data", "import"}},
		{path: []string{"backup", "pull"}},
		{path: []string{"settings", "set"}},
	}
	for _, tt := range tests {
		cmd, _, err := root.Find(tt.path)
		assert.NoError(t, err, tt.path)
		assert.Equal(t, tt.path[len(tt.path)-1], cmd.Name())
		assert.NotNil(t, cmd.RunE, tt.path)
	}
}

func TestNewDataExportCommand(t *testing.T) {
	cmd := newDataExportCommand()

	assert.Equal(t, "export", cmd.Use)
	assert.Equal(t, "Export database data to YAML files", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	flag := cmd.Flags().Lookup("output")
	assert.NotNil(t, flag)
	assert.Equal(t, "./export", flag.DefValue)
}

func TestNewDataImportCommand(t *testing.T) {
	cmd := newDataImportCommand()

	dryRunFlag := cmd.Flags().Lookup("dry-run")
	assert.NotNil(t, dryRunFlag)
	assert.Equal(t, "false", dryRunFlag.DefValue)

	updateFlag := cmd.Flags().Lookup("update-existing")
	assert.NotNil(t, updateFlag)
	assert.Equal(t, "false", updateFlag.DefValue)
}

func TestCommands_configError(t *testing.T) {
	cfgPath := setupBrokenConfigFile(t)
	setConfigFile(t, cfgPath)

	for _, cmd := range []interface {
		SetArgs([]string)
		Execute() error
	}{
		newDataExportCommand(),
		newDataImportCommand(),
		newSeedCommand(),
	} {
		cmd.SetArgs([]string{})
		err := cmd.Execute()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "load config")
	}
}

type ctxKey struct{}

func TestWithApp_LifecycleContext(t *testing.T) {
	setConfigFile(t, testutil.SetupTestConfig(t, t.TempDir()))

	parent, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "liftlog"))
	defer cancel()
	cmd := &cobra.Command{}
	cmd.SetContext(parent)

	type observed struct {
		value     interface{}
		cancelled bool
	}
	got := make(chan observed, 1)
	_ = withApp(cmd, func(ctx context.Context, a *app) error {
		assert.NotNil(t, a.db)
		o := observed{value: ctx.Value(ctxKey{})}
		cancel()
		select {
		case <-ctx.Done():
			o.cancelled = true
		case <-time.After(time.Second):
		}
		got <- o
		return nil
	})

	select {
	case o := <-got:
		assert.Equal(t, "liftlog", o.value)
		assert.True(t, o.cancelled, "commands see the cancellation of the lifecycle context")
	case <-time.After(2 * time.Second):
		t.Fatal("command body did not run")
	}
}
