package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yhkl-dev/trackdeck/config"
	"github.com/yhkl-dev/trackdeck/controller"
	"github.com/yhkl-dev/trackdeck/coverart"
	"github.com/yhkl-dev/trackdeck/library"
	"github.com/yhkl-dev/trackdeck/logger"
	"github.com/yhkl-dev/trackdeck/playlist"
	"github.com/yhkl-dev/trackdeck/ui"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:          "trackdeck",
	Short:        "trackdeck is a terminal music player with simulated playback.",
	SilenceUsage: true,
	RunE:         runPlayer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default searches $HOME/.config/ and . for trackdeck.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPlayer(cmd *cobra.Command, args []string) error {
	loader, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := ui.NewApp(cfg, coverart.NewConverter(cfg.UI.CoverWidth, cfg.UI.CoverHeight))
	return runTUI(ctx, loader, cfg, app)
}

// runTUI wires the playlist and controller to app and runs it until ctx is
// done or the user quits. A nil loader disables live config reload.
func runTUI(ctx context.Context, loader *config.Loader, cfg *config.Config, app *ui.App) error {
	pl, err := newPlaylist(cfg, nil)
	if err != nil {
		return err
	}

	ctrl := controller.New(pl, app, controller.OptionsFromConfig(cfg))
	app.Bind(ctrl)
	ctrl.Start()
	defer ctrl.Close()

	if loader != nil {
		loader.Watch(func(c *config.Config) {
			ctrl.ApplySettings(controller.SettingsFromConfig(c))
			logger.Info("config reloaded", zap.String("file", loader.ConfigFileUsed()))
		}, func(err error) {
			logger.Warn("config reload rejected", zap.Error(err))
		})
	}

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("ui stopped: %w", err)
	}
	return nil
}

// loadConfig reads the configuration, applies flag overrides and starts logging
func loadConfig() (*config.Loader, *config.Config, error) {
	loader := config.NewLoader(configPath)
	if logLevel != "" {
		loader.Override("log.level", logLevel)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.InitLogger(logger.Config{
		Level:      cfg.Log.Level,
		OutputPath: cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("configuration loaded",
		zap.String("file", loader.ConfigFileUsed()),
		zap.Int("tracks", len(cfg.Tracks)))
	return loader, cfg, nil
}

// newPlaylist fills a playlist from the configured catalog, or the demo
// catalog when none is configured
func newPlaylist(cfg *config.Config, rng *rand.Rand) (*playlist.Playlist, error) {
	tracks, err := library.NewCatalog(cfg.Tracks).Tracks()
	if err != nil {
		return nil, fmt.Errorf("failed to load tracks: %w", err)
	}

	pl := playlist.New(rng)
	for _, track := range tracks {
		pl.AddTrack(track)
	}
	return pl, nil
}
