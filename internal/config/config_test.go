package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	cfg := DefaultConfig()

	// Task behaviour defaults
	assert.True(t, cfg.Tasks.AutoStartNextTask)
	assert.True(t, cfg.Tasks.AutoMarkParentAsDone)
	assert.True(t, cfg.Tasks.AddToBottom)

	// Paths live under the data dir
	assert.Equal(t, filepath.Join("/data", "focus", "focus.yaml"), cfg.Storage.Path)
	assert.Equal(t, filepath.Join("/data", "focus", "focus.log"), cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)

	assert.Equal(t, 3, cfg.UI.ToastSeconds)
	assert.True(t, cfg.UI.ShowDone)
}

func TestDefaultConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "focus"), DefaultConfigDir())

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	assert.Equal(t, filepath.Join("/home/someone", ".config", "focus"), DefaultConfigDir())
}

func TestDefaultDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/someone")
	assert.Equal(t, filepath.Join("/home/someone", ".local", "share", "focus"), DefaultDataDir())
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"version": 1,
		"tasks": {"autoStartNextTask": false},
		"log": {"level": "debug"}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.False(t, cfg.Tasks.AutoStartNextTask)
	assert.True(t, cfg.Tasks.AutoMarkParentAsDone, "absent key keeps default")
	assert.True(t, cfg.Tasks.AddToBottom)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultConfig().Storage.Path, cfg.Storage.Path)
	assert.Equal(t, 3, cfg.UI.ToastSeconds)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("{not json"), 0644))

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ConfigFile)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFile)

	cfg := DefaultConfig()
	cfg.Tasks.AddToBottom = false
	cfg.Storage.Path = "/tmp/focus-test.yaml"
	cfg.UI.ToastSeconds = 7

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := MergeWithDefaults(&Config{UI: UIConfig{ToastSeconds: -1}})
	defaults := DefaultConfig()

	assert.Equal(t, defaults.Storage.Path, cfg.Storage.Path)
	assert.Equal(t, defaults.Log.Level, cfg.Log.Level)
	assert.Equal(t, defaults.Log.File, cfg.Log.File)
	assert.Equal(t, defaults.UI.ToastSeconds, cfg.UI.ToastSeconds)

	custom := MergeWithDefaults(&Config{Storage: StorageConfig{Path: "/x.yaml"}, Log: LogConfig{Level: "warn"}})
	assert.Equal(t, "/x.yaml", custom.Storage.Path)
	assert.Equal(t, "warn", custom.Log.Level)
}

func TestLogConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, LogConfig{Level: tt.level}.SlogLevel())
		})
	}
}
