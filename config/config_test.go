package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[player]
ceiling_seconds = 12
debounce_ms = 250
volume_step = 0.05

[ui]
show_cover_art = false

[log]
level = "debug"

[[tracks]]
id = 7
title = "Song A"
artist = "Artist A"
cover = "https://example.com/a.jpg"
audio = "a.mp3"
duration = "2:10"
lyrics = "la la"

[[tracks]]
id = 8
title = "Song B"
artist = "Artist B"
duration = "4:01"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trackdeck.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	loader := NewLoader(writeConfig(t, sampleConfig))

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Player.CeilingSeconds)
	assert.Equal(t, 250*time.Millisecond, cfg.Player.Debounce())
	assert.Equal(t, time.Second, cfg.Player.TickInterval(), "default kept")
	assert.Equal(t, 0.7, cfg.Player.InitialVolume)
	assert.Equal(t, 0.05, cfg.Player.VolumeStep)
	assert.False(t, cfg.UI.ShowCoverArt)
	assert.Equal(t, 30, cfg.UI.ProgressBarWidth)
	assert.Equal(t, "debug", cfg.Log.Level)

	require.Len(t, cfg.Tracks, 2)
	assert.Equal(t, TrackConfig{
		ID: 7, Title: "Song A", Artist: "Artist A", Cover: "https://example.com/a.jpg",
		Audio: "a.mp3", Duration: "2:10", Lyrics: "la la",
	}, cfg.Tracks[0])
	assert.Equal(t, 8, cfg.Tracks[1].ID)
	assert.NotEmpty(t, loader.ConfigFileUsed())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "absent.toml")).Load()
	require.Error(t, err)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	loader := NewLoader("")
	cfg, err := loader.Load()
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, defaults.Player, cfg.Player)
	assert.Equal(t, defaults.UI, cfg.UI)
	assert.Empty(t, cfg.Tracks)
	assert.Empty(t, loader.ConfigFileUsed())
}

func TestOverrideWins(t *testing.T) {
	loader := NewLoader(writeConfig(t, sampleConfig))
	loader.Override("log.level", "warn")

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	loader := NewLoader(writeConfig(t, `
[player]
ceiling_seconds = 0
initial_volume = 1.5
`))

	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player.ceiling_seconds")
	assert.Contains(t, err.Error(), "player.initial_volume")
}

func TestValidateDefaults(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Player.VolumeStep = 0
	cfg.Player.DebounceMs = -1
	cfg.Player.TickIntervalMs = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player.volume_step")
	assert.Contains(t, err.Error(), "player.debounce_ms")
	assert.Contains(t, err.Error(), "player.tick_interval_ms")
}

func TestWatchReportsChanges(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	loader := NewLoader(path)
	_, err := loader.Load()
	require.NoError(t, err)

	changed := make(chan *Config, 16)
	loader.Watch(func(cfg *Config) {
		select {
		case changed <- cfg:
		default:
		}
	}, nil)

	require.NoError(t, os.WriteFile(path, []byte("[player]\ndebounce_ms = 900\n"), 0644))

	// a truncating write can surface an intermediate empty file first
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changed:
			if cfg.Player.DebounceMs == 900 {
				return
			}
		case <-deadline:
			t.Fatal("no change notification with the new value")
		}
	}
}
