package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/bridge/internal/flagx"
	"github.com/dmitrijs2005/bridge/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from zero values.
type JsonConfig struct {
	StorageBackend        *string         `json:"storage_backend"`
	DataDir               *string         `json:"data_dir"`
	SQLiteDSN             *string         `json:"sqlite_dsn"`
	PostgresDSN           *string         `json:"postgres_dsn"`
	FileDir               *string         `json:"file_dir"`
	S3Bucket              *string         `json:"s3_bucket"`
	S3Region              *string         `json:"s3_region"`
	S3BaseEndpoint        *string         `json:"s3_base_endpoint"`
	S3AccessKey           *string         `json:"s3_access_key"`
	S3SecretKey           *string         `json:"s3_secret_key"`
	S3Prefix              *string         `json:"s3_prefix"`
	LogLevel              *string         `json:"log_level"`
	LogFormat             *string         `json:"log_format"`
	ReminderCheckInterval *timex.Duration `json:"reminder_check_interval"`
	WatchExternalChanges  *bool           `json:"watch_external_changes"`
}

// parseJson overlays cfg with the JSON file named by -c or -config.
// $VAR and ${VAR} references in the file are expanded from the
// environment first. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal([]byte(os.ExpandEnv(string(data))), &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.StorageBackend, jc.StorageBackend)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.SQLiteDSN, jc.SQLiteDSN)
	setString(&cfg.PostgresDSN, jc.PostgresDSN)
	setString(&cfg.FileDir, jc.FileDir)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Prefix, jc.S3Prefix)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.ReminderCheckInterval != nil {
		cfg.ReminderCheckInterval = time.Duration(jc.ReminderCheckInterval.Duration)
	}
	if jc.WatchExternalChanges != nil {
		cfg.WatchExternalChanges = *jc.WatchExternalChanges
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
