package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Loader reads trackdeck.toml through viper and can watch it for changes
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader. An empty path searches $HOME/.config/ and the
// working directory for trackdeck.toml.
func NewLoader(path string) *Loader {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("trackdeck")
		v.SetConfigType("toml")
		v.AddConfigPath("$HOME/.config/")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TRACKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("player.ceiling_seconds", defaults.Player.CeilingSeconds)
	v.SetDefault("player.tick_interval_ms", defaults.Player.TickIntervalMs)
	v.SetDefault("player.debounce_ms", defaults.Player.DebounceMs)
	v.SetDefault("player.initial_volume", defaults.Player.InitialVolume)
	v.SetDefault("player.volume_step", defaults.Player.VolumeStep)
	v.SetDefault("ui.progress_bar_width", defaults.UI.ProgressBarWidth)
	v.SetDefault("ui.cover_width", defaults.UI.CoverWidth)
	v.SetDefault("ui.cover_height", defaults.UI.CoverHeight)
	v.SetDefault("ui.show_cover_art", defaults.UI.ShowCoverArt)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.max_size_mb", defaults.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", defaults.Log.MaxBackups)
	v.SetDefault("log.max_age_days", defaults.Log.MaxAgeDays)
	v.SetDefault("log.compress", defaults.Log.Compress)

	return &Loader{v: v}
}

// Override sets a value that takes precedence over the file, e.g. from a flag
func (l *Loader) Override(key string, value any) {
	l.v.Set(key, value)
}

// Load reads the configuration file, falling back to defaults when no file
// is found on the search path. An explicit path that cannot be read is an error.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return l.decode()
}

// ConfigFileUsed returns the file that was read, or "" when running on defaults
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Watch calls onChange with the re-read configuration whenever the config
// file changes. Invalid edits are reported to onError and otherwise ignored.
// Watch does nothing when no file was read.
func (l *Loader) Watch(onChange func(*Config), onError func(error)) {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.decode()
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		onChange(cfg)
	})
	l.v.WatchConfig()
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
