package controller

import (
	"time"

	"github.com/yhkl-dev/trackdeck/config"
	"github.com/yhkl-dev/trackdeck/domain"
	"github.com/yhkl-dev/trackdeck/player"
	"github.com/yhkl-dev/trackdeck/schedule"
)

// Settings are the tunables that can change while the controller runs
type Settings struct {
	// Ceiling is the simulated track length in seconds, independent of a
	// track's duration label
	Ceiling int
	// Debounce is the delay between loading a track by navigation and auto-play
	Debounce time.Duration
	// VolumeStep is the amount VolumeUp and VolumeDown move the volume
	VolumeStep float64
}

// Options configure a new Controller
type Options struct {
	Settings
	TickInterval  time.Duration
	InitialVolume float64
	Scheduler     schedule.Scheduler

	// OnTrackEnd observes every completed track, before the controller
	// reacts to it. It runs with the controller lock held.
	OnTrackEnd func(track domain.Track)
}

// DefaultOptions returns the demo settings: a 30 second ceiling, one tick per
// second, a 500ms debounce and 70% volume on the wall clock
func DefaultOptions() Options {
	return Options{
		Settings: Settings{
			Ceiling:    player.DefaultCeiling,
			Debounce:   500 * time.Millisecond,
			VolumeStep: 0.1,
		},
		TickInterval:  time.Second,
		InitialVolume: 0.7,
		Scheduler:     schedule.Realtime(),
	}
}

// OptionsFromConfig builds Options from the player section of cfg
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	opts.Settings = SettingsFromConfig(cfg)
	opts.TickInterval = cfg.Player.TickInterval()
	opts.InitialVolume = cfg.Player.InitialVolume
	return opts
}

// SettingsFromConfig extracts the live-tunable settings from cfg
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Ceiling:    cfg.Player.CeilingSeconds,
		Debounce:   cfg.Player.Debounce(),
		VolumeStep: cfg.Player.VolumeStep,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Ceiling <= 0 {
		o.Ceiling = d.Ceiling
	}
	if o.Debounce < 0 {
		o.Debounce = d.Debounce
	}
	if o.VolumeStep <= 0 {
		o.VolumeStep = d.VolumeStep
	}
	if o.TickInterval <= 0 {
		o.TickInterval = d.TickInterval
	}
	if o.Scheduler == nil {
		o.Scheduler = d.Scheduler
	}
	return o
}
