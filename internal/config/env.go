package config

import (
	"os"
	"strconv"
	"time"
)

// EnvPrefix prefixes every environment variable read by parseEnv.
const EnvPrefix = "BRIDGE_"

// parseEnv overlays cfg with BRIDGE_* variables. A .env file in the working
// directory is loaded into the environment by the binary before this runs.
// Panics on malformed durations or booleans.
func parseEnv(cfg *Config) {
	envString(&cfg.StorageBackend, "STORAGE")
	envString(&cfg.DataDir, "DATA_DIR")
	envString(&cfg.SQLiteDSN, "SQLITE_DSN")
	envString(&cfg.PostgresDSN, "POSTGRES_DSN")
	envString(&cfg.FileDir, "FILE_DIR")
	envString(&cfg.S3Bucket, "S3_BUCKET")
	envString(&cfg.S3Region, "S3_REGION")
	envString(&cfg.S3BaseEndpoint, "S3_ENDPOINT")
	envString(&cfg.S3AccessKey, "S3_ACCESS_KEY")
	envString(&cfg.S3SecretKey, "S3_SECRET_KEY")
	envString(&cfg.S3Prefix, "S3_PREFIX")
	envString(&cfg.LogLevel, "LOG_LEVEL")
	envString(&cfg.LogFormat, "LOG_FORMAT")

	if v, ok := os.LookupEnv(EnvPrefix + "REMINDER_CHECK_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.ReminderCheckInterval = d
	}
	if v, ok := os.LookupEnv(EnvPrefix + "WATCH"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.WatchExternalChanges = b
	}
}

func envString(dst *string, name string) {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok {
		*dst = v
	}
}
