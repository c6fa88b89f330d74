package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Player PlayerConfig  `mapstructure:"player"`
	UI     UIConfig      `mapstructure:"ui"`
	Log    LogConfig     `mapstructure:"log"`
	Tracks []TrackConfig `mapstructure:"tracks"`
}

// PlayerConfig contains playback simulation settings
type PlayerConfig struct {
	CeilingSeconds int     `mapstructure:"ceiling_seconds"`
	TickIntervalMs int     `mapstructure:"tick_interval_ms"`
	DebounceMs     int     `mapstructure:"debounce_ms"`
	InitialVolume  float64 `mapstructure:"initial_volume"`
	VolumeStep     float64 `mapstructure:"volume_step"`
}

// UIConfig contains user interface settings
type UIConfig struct {
	ProgressBarWidth int  `mapstructure:"progress_bar_width"`
	CoverWidth       int  `mapstructure:"cover_width"`
	CoverHeight      int  `mapstructure:"cover_height"`
	ShowCoverArt     bool `mapstructure:"show_cover_art"`
}

// LogConfig contains log file settings
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// TrackConfig is one catalog entry from the [[tracks]] tables
type TrackConfig struct {
	ID       int    `mapstructure:"id"`
	Title    string `mapstructure:"title"`
	Artist   string `mapstructure:"artist"`
	Cover    string `mapstructure:"cover"`
	Audio    string `mapstructure:"audio"`
	Duration string `mapstructure:"duration"`
	Lyrics   string `mapstructure:"lyrics"`
}

// TickInterval returns the simulated-second period as a time.Duration
func (p *PlayerConfig) TickInterval() time.Duration {
	return time.Duration(p.TickIntervalMs) * time.Millisecond
}

// Debounce returns the delay between loading a track and auto-play
func (p *PlayerConfig) Debounce() time.Duration {
	return time.Duration(p.DebounceMs) * time.Millisecond
}

// Validate checks that all values are usable
func (c *Config) Validate() error {
	var errs []error
	if c.Player.CeilingSeconds <= 0 {
		errs = append(errs, fmt.Errorf("player.ceiling_seconds must be positive, got %d", c.Player.CeilingSeconds))
	}
	if c.Player.TickIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("player.tick_interval_ms must be positive, got %d", c.Player.TickIntervalMs))
	}
	if c.Player.DebounceMs < 0 {
		errs = append(errs, fmt.Errorf("player.debounce_ms must not be negative, got %d", c.Player.DebounceMs))
	}
	if c.Player.InitialVolume < 0 || c.Player.InitialVolume > 1 {
		errs = append(errs, fmt.Errorf("player.initial_volume must be within [0, 1], got %g", c.Player.InitialVolume))
	}
	if c.Player.VolumeStep <= 0 || c.Player.VolumeStep > 1 {
		errs = append(errs, fmt.Errorf("player.volume_step must be within (0, 1], got %g", c.Player.VolumeStep))
	}
	return errors.Join(errs...)
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Player: PlayerConfig{
			CeilingSeconds: 30,
			TickIntervalMs: 1000,
			DebounceMs:     500,
			InitialVolume:  0.7,
			VolumeStep:     0.1,
		},
		UI: UIConfig{
			ProgressBarWidth: 30,
			CoverWidth:       25,
			CoverHeight:      12,
			ShowCoverArt:     true,
		},
		Log: LogConfig{
			Level:      "info",
			File:       defaultLogFile(),
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

func defaultLogFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "trackdeck.log")
	}
	return filepath.Join(dir, "trackdeck", "trackdeck.log")
}
