package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{Timezone: "Asia/Taipei"},
		Database: DatabaseConfig{
			Driver:   DriverSQLite,
			Path:     filepath.Join("data", "workout.db"),
			Host:     "localhost",
			Port:     3306,
			Database: "liftlog",
			Username: "user",
			Seed:     true,
		},
		Progress: ProgressConfig{
			Backend:   ProgressBackendFile,
			Directory: filepath.Join("data", "progress"),
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				KeyPrefix: "liftlog:",
			},
		},
		Outputs: OutputsConfig{ExportDirectory: filepath.Join("outputs", "export")},
		Server: ServerConfig{
			Port: 8080,
			CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		},
		Backup: BackupConfig{
			RetryAttempts:  3,
			TimeoutSeconds: 30,
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:          "no config file uses defaults",
			configContent: "",
			want:          defaultConfig,
		},
		{
			name: "valid config file with custom values",
			configContent: `app:
  timezone: Europe/Berlin
database:
  driver: mysql
  host: db.example.com
  port: 3307
  database: gym
  username: admin
  seed: false
progress:
  backend: redis
  redis:
    addr: cache:6379
    db: 2
server:
  port: 9090
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.App.Timezone = "Europe/Berlin"
				cfg.Database.Driver = DriverMySQL
				cfg.Database.Host = "db.example.com"
				cfg.Database.Port = 3307
				cfg.Database.Database = "gym"
				cfg.Database.Username = "admin"
				cfg.Database.Seed = false
				cfg.Progress.Backend = ProgressBackendRedis
				cfg.Progress.Redis.Addr = "cache:6379"
				cfg.Progress.Redis.DB = 2
				cfg.Server.Port = 9090
				return cfg
			},
		},
		{
			name: "explicit config file path",
			configContent: `database:
  path: /tmp/explicit.db
outputs:
  export_directory: explicit/export
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Database.Path = "/tmp/explicit.db"
				cfg.Outputs.ExportDirectory = "explicit/export"
				return cfg
			},
		},
		{
			name: "secrets come from environment variables",
			configContent: `backup:
  url: https://backup.example.com/upload
`,
			env: map[string]string{
				"LIFTLOG_DATABASE_PASSWORD": "db-secret",
				"LIFTLOG_BACKUP_TOKEN":      "token-123",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Database.Password = "db-secret"
				cfg.Backup.URL = "https://backup.example.com/upload"
				cfg.Backup.Token = "token-123"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `database:
  driver: sqlite
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown time zone",
			configContent: `app:
  timezone: Mars/Olympus_Mons
`,
			wantErr:           true,
			wantErrorContains: []string{"app.timezone must be a valid IANA time zone name"},
		},
		{
			name: "progress directory is a file",
			configContent: `progress:
  directory: config.yaml
`,
			wantErr:           true,
			wantErrorContains: []string{"progress.directory must be a directory or a path that does not exist yet"},
		},
		{
			name: "export directory is a file",
			configContent: `outputs:
  export_directory: config.yaml
`,
			wantErr:           true,
			wantErrorContains: []string{"outputs.export_directory must be a directory or a path that does not exist yet"},
		},
		{
			name: "unknown database driver",
			configContent: `database:
  driver: oracle
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "driver"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			tempDir := t.TempDir()

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "config.yml")
				err := os.WriteFile(configPath, []byte(tt.configContent), 0644)
				require.NoError(t, err)
			} else {
				if tt.configContent != "" {
					err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644)
					require.NoError(t, err)
				}
				wd, err := os.Getwd()
				require.NoError(t, err)
				require.NoError(t, os.Chdir(tempDir))
				t.Cleanup(func() { _ = os.Chdir(wd) })
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestAppConfig_Location(t *testing.T) {
	loc := AppConfig{Timezone: "Asia/Taipei"}.Location()
	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 8*60*60, offset)

	assert.Equal(t, time.UTC, AppConfig{Timezone: "nowhere"}.Location())
}
