package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// AppName is the directory name used under the XDG config and data roots.
const AppName = "focus"

// ConfigFile is the config filename inside the config directory.
const ConfigFile = "config.json"

// Config represents the full focus configuration
type Config struct {
	Tasks   TasksConfig   `json:"tasks"`
	Storage StorageConfig `json:"storage"`
	Log     LogConfig     `json:"log"`
	UI      UIConfig      `json:"ui"`
}

// TasksConfig contains task lifecycle behaviour
type TasksConfig struct {
	AutoStartNextTask    bool `json:"autoStartNextTask"`
	AutoMarkParentAsDone bool `json:"autoMarkParentAsDone"`
	AddToBottom          bool `json:"addToBottom"`
}

// StorageConfig contains snapshot file settings
type StorageConfig struct {
	Path string `json:"path"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

// UIConfig contains terminal UI settings
type UIConfig struct {
	ToastSeconds int  `json:"toastSeconds"`
	ShowDone     bool `json:"showDone"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	dataDir := DefaultDataDir()

	return &Config{
		Tasks: TasksConfig{
			AutoStartNextTask:    true,
			AutoMarkParentAsDone: true,
			AddToBottom:          true,
		},
		Storage: StorageConfig{
			Path: filepath.Join(dataDir, "focus.yaml"),
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dataDir, "focus.log"),
		},
		UI: UIConfig{
			ToastSeconds: 3,
			ShowDone:     true,
		},
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultDataDir returns the default directory for the snapshot and log.
// Uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// LoadConfig loads configuration from dir (DefaultConfigDir when empty).
// A missing file yields the defaults.
func LoadConfig(dir string) (*Config, error) {
	if dir == "" {
		dir = DefaultConfigDir()
	}

	path := filepath.Join(dir, ConfigFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := ParseVersionedConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return MergeWithDefaults(cfg), nil
}

// SaveConfig saves configuration to the specified path with version information
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults.
// Booleans are not merged: ParseVersionedConfig starts from the defaults,
// so an absent key already keeps its default.
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaults.Storage.Path
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}

	if cfg.UI.ToastSeconds <= 0 {
		cfg.UI.ToastSeconds = defaults.UI.ToastSeconds
	}

	return cfg
}

// SlogLevel maps the configured level name to a slog level. Unknown names
// map to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
