package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Run.Strict)
	assert.False(t, cfg.Run.Summary)
	assert.Equal(t, "spool", cfg.Watch.SpoolDir)

	d, err := cfg.DebounceDuration()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, d)
}

func TestLoad(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().Logging, cfg.Logging)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "posy.yaml")
		body := "logging:\n  level: debug\nrun:\n  strict: false\n  summary: true\nwatch:\n  spool_dir: /tmp/in\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.False(t, cfg.Run.Strict)
		assert.True(t, cfg.Run.Summary)
		assert.Equal(t, "/tmp/in", cfg.Watch.SpoolDir)
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "posy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("logging: ["), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("invalid log level is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "posy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("invalid debounce is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "posy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("watch:\n  debounce: soon\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("POSY_LOG_LEVEL wins over the file", func(t *testing.T) {
		t.Setenv("POSY_LOG_LEVEL", "error")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "error", cfg.Logging.Level)
	})

	t.Run("POSY_STRICT parses as a bool", func(t *testing.T) {
		t.Setenv("POSY_STRICT", "false")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.False(t, cfg.Run.Strict)
	})

	t.Run("unparsable POSY_STRICT is ignored", func(t *testing.T) {
		t.Setenv("POSY_STRICT", "maybe")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Run.Strict)
	})

	t.Run("spool and archive dirs", func(t *testing.T) {
		t.Setenv("POSY_SPOOL_DIR", "/in")
		t.Setenv("POSY_ARCHIVE_DIR", "/done")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "/in", cfg.Watch.SpoolDir)
		assert.Equal(t, "/done", cfg.Watch.ArchiveDir)
	})
}
