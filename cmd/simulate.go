package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yhkl-dev/trackdeck/controller"
	"github.com/yhkl-dev/trackdeck/domain"
	"github.com/yhkl-dev/trackdeck/logger"
	"github.com/yhkl-dev/trackdeck/ui"
	"go.uber.org/zap"
)

var (
	simCount    int
	simTick     time.Duration
	simDebounce time.Duration
	simShuffle  bool
	simRepeat   bool
	simStart    int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run playback headless and print every change",
	Long: `Play the catalog without the terminal UI. Each simulated second, track
change and indicator update is printed as a line. Stops after --count
completed tracks, or on interrupt when --count is 0.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVarP(&simCount, "count", "n", 1, "stop after this many completed tracks, 0 runs until interrupted")
	simulateCmd.Flags().DurationVar(&simTick, "tick", 0, "length of one simulated second (default from config)")
	simulateCmd.Flags().DurationVar(&simDebounce, "debounce", -1, "auto-play delay after a track change (default from config)")
	simulateCmd.Flags().BoolVar(&simShuffle, "shuffle", false, "shuffle before playing")
	simulateCmd.Flags().BoolVar(&simRepeat, "repeat", false, "repeat the current track")
	simulateCmd.Flags().IntVar(&simStart, "start", 0, "index of the first track to play")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if simCount < 0 {
		return fmt.Errorf("--count must not be negative, got %d", simCount)
	}

	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	pl, err := newPlaylist(cfg, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	done := make(chan struct{})
	completed := 0

	opts := controller.OptionsFromConfig(cfg)
	if simTick > 0 {
		opts.TickInterval = simTick
	}
	if simDebounce >= 0 {
		opts.Debounce = simDebounce
	}
	opts.OnTrackEnd = func(track domain.Track) {
		completed++
		fmt.Fprintf(out, "completed: %s\n", track.DisplayInfo())
		logger.Info("track completed",
			zap.Int("trackID", track.ID()),
			zap.Int("completed", completed))
		if completed == simCount {
			close(done)
		}
	}

	ctrl := controller.New(pl, ui.NewConsole(out, cfg.UI.ProgressBarWidth), opts)
	ctrl.Start()
	defer ctrl.Close()

	if simShuffle {
		if err := ctrl.ToggleShuffle(); err != nil {
			return err
		}
	}
	if simRepeat {
		ctrl.ToggleRepeat()
	}
	if !ctrl.LoadTrack(simStart) {
		return fmt.Errorf("no track at index %d, the playlist has %d", simStart, len(ctrl.Tracks()))
	}
	ctrl.Play()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-done:
	case <-ctx.Done():
	}
	ctrl.Close()

	fmt.Fprintf(out, "stopped after %d completed track(s)\n", completed)
	return nil
}
