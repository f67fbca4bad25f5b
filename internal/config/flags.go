package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bridge/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-b string   settings backend: sqlite, postgres, file, s3 or memory
//	-d string   data directory
//	-p string   Postgres DSN
//	-l string   log level
//	-i int      reminder check interval (in seconds)
//	-w bool     reload stores when their files change on disk
//
// Only these flags are parsed; the rest of os.Args is left to other
// components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-d", "-p", "-l", "-i", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageBackend, "b", cfg.StorageBackend, "settings storage backend")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.PostgresDSN, "p", cfg.PostgresDSN, "postgres DSN")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	checkInterval := fs.Int("i", int(cfg.ReminderCheckInterval.Seconds()), "reminder check interval (in seconds)")
	fs.BoolVar(&cfg.WatchExternalChanges, "w", cfg.WatchExternalChanges, "watch settings files for external changes")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ReminderCheckInterval = time.Duration(*checkInterval) * time.Second
}
