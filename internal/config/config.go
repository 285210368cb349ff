// Package config loads posy's YAML configuration and applies environment
// overrides on top of it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all posy configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Run     RunConfig     `yaml:"run"`
	Watch   WatchConfig   `yaml:"watch"`
}

// LoggingConfig configures the zap logger built in cmd.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// RunConfig configures a single session run.
type RunConfig struct {
	// Strict aborts the run on the first malformed input line. When false,
	// malformed lines are logged and skipped.
	Strict bool `yaml:"strict"`

	// Summary prints run statistics to stderr after the bundles.
	Summary bool `yaml:"summary"`
}

// WatchConfig configures spool-directory watch mode.
type WatchConfig struct {
	SpoolDir   string `yaml:"spool_dir"`
	ArchiveDir string `yaml:"archive_dir"`
	Debounce   string `yaml:"debounce"` // e.g. "500ms"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Run: RunConfig{
			Strict:  true,
			Summary: false,
		},
		Watch: WatchConfig{
			SpoolDir:   "spool",
			ArchiveDir: "spool/done",
			Debounce:   "500ms",
		},
	}
}

// Load reads the config file at path and layers environment overrides on
// top. A missing file is not an error; defaults are used.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets the environment win over the file for the settings
// that change per invocation.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("POSY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("POSY_STRICT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Run.Strict = b
		}
	}
	if v := os.Getenv("POSY_SPOOL_DIR"); v != "" {
		c.Watch.SpoolDir = v
	}
	if v := os.Getenv("POSY_ARCHIVE_DIR"); v != "" {
		c.Watch.ArchiveDir = v
	}
}

func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	return nil
}

// DebounceDuration parses the watch debounce setting.
func (c *Config) DebounceDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid watch debounce %q: %w", c.Watch.Debounce, err)
	}
	return d, nil
}
