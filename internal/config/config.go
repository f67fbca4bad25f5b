package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/bridge/internal/common"
	"github.com/dmitrijs2005/bridge/internal/logging"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Storage backends for the settings area.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendFile     = "file"
	BackendS3       = "s3"
	BackendMemory   = "memory"
)

// Config holds runtime settings for the Bridge CLI.
//
// DataDir is the home of the local SQLite database (reminders, mindful
// sessions and, with the sqlite backend, settings) and of the file backend.
// SQLiteDSN and FileDir override the paths derived from it.
type Config struct {
	StorageBackend string
	DataDir        string
	SQLiteDSN      string
	PostgresDSN    string
	FileDir        string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	S3Prefix       string

	LogLevel  string
	LogFormat string

	ReminderCheckInterval time.Duration
	WatchExternalChanges  bool
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "bridge")
	}
	return ".bridge"
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageBackend = BackendSQLite
	c.DataDir = defaultDataDir()
	c.S3Region = "us-east-1"
	c.LogLevel = "info"
	c.LogFormat = logging.FormatText
	c.ReminderCheckInterval = 30 * time.Second
	c.WatchExternalChanges = true
}

// SQLitePath returns the DSN of the local database.
func (c *Config) SQLitePath() string {
	if c.SQLiteDSN != "" {
		return c.SQLiteDSN
	}
	return filepath.Join(c.DataDir, "bridge.db")
}

// SettingsDir returns the directory used by the file backend.
func (c *Config) SettingsDir() string {
	if c.FileDir != "" {
		return c.FileDir
	}
	return filepath.Join(c.DataDir, "settings")
}

func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.StorageBackend, validation.Required,
			validation.In(BackendSQLite, BackendPostgres, BackendFile, BackendS3, BackendMemory)),
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.PostgresDSN, validation.When(c.StorageBackend == BackendPostgres, validation.Required)),
		validation.Field(&c.S3Bucket, validation.When(c.StorageBackend == BackendS3, validation.Required)),
		validation.Field(&c.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.Required, validation.In(logging.FormatJSON, logging.FormatText)),
		validation.Field(&c.ReminderCheckInterval, validation.Required, validation.Min(time.Second)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}
	return nil
}

// LoadConfig builds a Config from defaults, then the JSON file, then
// BRIDGE_* environment variables, then flags, and validates the result.
// Malformed sources panic, as in the rest of the loader.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
