// Package config loads tabdeck settings from ~/.tabdeck/config.yaml and
// TABDECK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "TABDECK_CONFIG"

// Config represents the tabdeck configuration.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Selection SelectionConfig `mapstructure:"selection"`
	Log       LogConfig       `mapstructure:"log"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Workspace WorkspaceConfig `mapstructure:"workspace"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// SelectionConfig holds the view-state store location.
type SelectionConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig holds event logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
	Audit  bool   `mapstructure:"audit"`  // also persist events to the database
}

// EngineConfig holds gesture timing.
type EngineConfig struct {
	RecentlyMovedMs   int `mapstructure:"recently_moved_ms"`
	ReorderDebounceMs int `mapstructure:"reorder_debounce_ms"`
}

// WorkspaceConfig holds workspace display settings.
type WorkspaceConfig struct {
	GeneralName string `mapstructure:"general_name"`
}

// RecentlyMoved returns the highlight duration.
func (c *Config) RecentlyMoved() time.Duration {
	return time.Duration(c.Engine.RecentlyMovedMs) * time.Millisecond
}

// ReorderDebounce returns the workspace reorder delay.
func (c *Config) ReorderDebounce() time.Duration {
	return time.Duration(c.Engine.ReorderDebounceMs) * time.Millisecond
}

// Dir returns the tabdeck home directory (~/.tabdeck).
func Dir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".tabdeck"), nil
}

// Path returns the config file path, honouring TABDECK_CONFIG.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return homedir.Expand(p)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func newViper() (*viper.Viper, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("database.path", filepath.Join(dir, "tabdeck.db"))
	v.SetDefault("selection.dir", filepath.Join(dir, "state"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.audit", true)
	v.SetDefault("engine.recently_moved_ms", 520)
	v.SetDefault("engine.reorder_debounce_ms", 250)
	v.SetDefault("workspace.general_name", "General")

	v.SetConfigType("yaml")
	v.SetEnvPrefix("TABDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v, nil
}

// Load reads the config file when present, then applies environment overrides.
// A missing config file is not an error.
func Load() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	path, err := Path()
	if err != nil {
		return nil, err
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.expand(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q (want text or json)", c.Log.Format)
	}
	if c.Engine.RecentlyMovedMs < 0 || c.Engine.ReorderDebounceMs < 0 {
		return fmt.Errorf("engine durations must not be negative")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must be set")
	}
	return nil
}

func (c *Config) expand() error {
	var err error
	if c.Database.Path, err = homedir.Expand(c.Database.Path); err != nil {
		return fmt.Errorf("failed to expand database.path: %w", err)
	}
	if c.Selection.Dir, err = homedir.Expand(c.Selection.Dir); err != nil {
		return fmt.Errorf("failed to expand selection.dir: %w", err)
	}
	return nil
}

// Save writes cfg to the config file, creating its directory if needed.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("selection.dir", cfg.Selection.Dir)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("log.audit", cfg.Log.Audit)
	v.Set("engine.recently_moved_ms", cfg.Engine.RecentlyMovedMs)
	v.Set("engine.reorder_debounce_ms", cfg.Engine.ReorderDebounceMs)
	v.Set("workspace.general_name", cfg.Workspace.GeneralName)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
