package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CWVIEW_ARCHIVE_DIR", "")
	t.Setenv("CWVIEW_WATCH", "")
	t.Setenv("CWVIEW_DATETIME_LAYOUT", "")
	t.Setenv("CWVIEW_LOG_FILE", "")
	t.Setenv("CWVIEW_EXPORT_DIR", "")

	cfg := Load()
	assert.Equal(t, ".", cfg.ArchiveDir)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "2006-01-02 15:04:05", cfg.DatetimeLayout)
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, ".", cfg.ExportDir, "export dir follows the archive dir")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CWVIEW_ARCHIVE_DIR", "/data/exports")
	t.Setenv("CWVIEW_WATCH", "off")
	t.Setenv("CWVIEW_DATETIME_LAYOUT", "2006/01/02 15:04")
	t.Setenv("CWVIEW_LOG_FILE", "/tmp/cwview.log")
	t.Setenv("CWVIEW_EXPORT_DIR", "/data/out")

	cfg := Load()
	assert.Equal(t, "/data/exports", cfg.ArchiveDir)
	assert.False(t, cfg.Watch)
	assert.Equal(t, "2006/01/02 15:04", cfg.DatetimeLayout)
	assert.Equal(t, "/tmp/cwview.log", cfg.LogFile)
	assert.Equal(t, "/data/out", cfg.ExportDir)
}

func TestReadBool(t *testing.T) {
	for raw, want := range map[string]bool{
		"1": true, "true": true, "YES": true, "on": true,
		"0": false, "false": false, "No": false, "off": false,
	} {
		t.Setenv("CWVIEW_WATCH", raw)
		assert.Equal(t, want, Load().Watch, raw)
	}

	// garbage keeps the default
	t.Setenv("CWVIEW_WATCH", "maybe")
	assert.True(t, Load().Watch)
}
