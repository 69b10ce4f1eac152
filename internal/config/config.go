package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	ProgressBackendFile  = "file"
	ProgressBackendRedis = "redis"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Progress ProgressConfig `mapstructure:"progress"`
	Outputs  OutputsConfig  `mapstructure:"outputs"`
	Server   ServerConfig   `mapstructure:"server"`
	Backup   BackupConfig   `mapstructure:"backup"`
}

type AppConfig struct {
	Timezone string `mapstructure:"timezone" validate:"required,timezone"`
}

// Location returns the time zone used to bucket sessions into days.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=sqlite mysql"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds" validate:"gte=0"`
	Seed            bool              `mapstructure:"seed"`
}

type ProgressConfig struct {
	Backend   string      `mapstructure:"backend" validate:"oneof=file redis"`
	Directory string      `mapstructure:"directory" validate:"required_if=Backend file,usable_dir"`
	Redis     RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db" validate:"gte=0"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type OutputsConfig struct {
	ExportDirectory string `mapstructure:"export_directory" validate:"usable_dir"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"gte=1,lte=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type BackupConfig struct {
	URL            string `mapstructure:"url" validate:"omitempty,url"`
	Token          string `mapstructure:"token"`
	RetryAttempts  uint   `mapstructure:"retry_attempts"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/liftlog")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("app.timezone", "Asia/Taipei")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", filepath.Join("data", "workout.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "liftlog")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.seed", true)
	v.SetDefault("progress.backend", ProgressBackendFile)
	v.SetDefault("progress.directory", filepath.Join("data", "progress"))
	v.SetDefault("progress.redis.addr", "localhost:6379")
	v.SetDefault("progress.redis.key_prefix", "liftlog:")
	v.SetDefault("outputs.export_directory", filepath.Join("outputs", "export"))
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("backup.retry_attempts", 3)
	v.SetDefault("backup.timeout_seconds", 30)

	// Secrets are bound to environment variables only (not from config file)
	if err := v.BindEnv("database.password", "LIFTLOG_DATABASE_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind LIFTLOG_DATABASE_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("progress.redis.password", "LIFTLOG_REDIS_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind LIFTLOG_REDIS_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("backup.token", "LIFTLOG_BACKUP_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind LIFTLOG_BACKUP_TOKEN environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
		messages := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			messages = append(messages, fieldErr.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
	}

	return &cfg, nil
}
