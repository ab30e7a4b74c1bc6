package config

import (
	"os"
	"strings"
)

// Config is assembled from CWVIEW_* environment variables. Every field has a
// usable default; a .env file in the working directory is honored when
// present (loaded by main before Load runs).
type Config struct {
	ArchiveDir     string // directory scanned for *_messages.json export files
	Watch          bool   // keep watching ArchiveDir for new files
	DatetimeLayout string // preferred layout for parsing message datetimes
	LogFile        string // zap output; empty disables logging
	ExportDir      string // where search result workbooks are written
}

const (
	defaultArchiveDir     = "."
	defaultDatetimeLayout = "2006-01-02 15:04:05"
)

func Load() Config {
	cfg := Config{}

	cfg.ArchiveDir = strings.TrimSpace(os.Getenv("CWVIEW_ARCHIVE_DIR"))
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = defaultArchiveDir
	}

	cfg.Watch = readBool("CWVIEW_WATCH", true)

	cfg.DatetimeLayout = strings.TrimSpace(os.Getenv("CWVIEW_DATETIME_LAYOUT"))
	if cfg.DatetimeLayout == "" {
		cfg.DatetimeLayout = defaultDatetimeLayout
	}

	cfg.LogFile = strings.TrimSpace(os.Getenv("CWVIEW_LOG_FILE"))

	cfg.ExportDir = strings.TrimSpace(os.Getenv("CWVIEW_EXPORT_DIR"))
	if cfg.ExportDir == "" {
		cfg.ExportDir = cfg.ArchiveDir
	}

	return cfg
}

func readBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
