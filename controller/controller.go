package controller

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/yhkl-dev/trackdeck/domain"
	"github.com/yhkl-dev/trackdeck/logger"
	"github.com/yhkl-dev/trackdeck/player"
	"github.com/yhkl-dev/trackdeck/playlist"
	"github.com/yhkl-dev/trackdeck/schedule"
	"go.uber.org/zap"
)

// ErrDownloadUnavailable is reported by Download; there is no audio to save
var ErrDownloadUnavailable = errors.New("download is unavailable in demo mode")

// progressPlayer is the simulated player surface the controller drives
type progressPlayer interface {
	player.Player
	StartProgress(onTick player.TickFunc, ceiling int)
	StopProgress()
	SetProgress(percent float64, ceiling int) float64
	OnTrackEnd(f func())
	State() player.State
	Ceiling() int
}

// Controller owns the playlist, the simulated player and the session state,
// and tells the Presenter what to show. All operations and timer callbacks
// are serialized on one lock.
type Controller struct {
	mu sync.Mutex

	playlist *playlist.Playlist
	player   progressPlayer
	view     Presenter
	sched    schedule.Scheduler
	state    *domain.PlayerState
	settings Settings

	onTrackEnd    func(domain.Track)
	pendingPlay   schedule.Task
	lyricsVisible bool

	log *zap.Logger
}

// New creates a controller over a populated playlist
func New(pl *playlist.Playlist, view Presenter, opts Options) *Controller {
	opts = opts.withDefaults()

	c := &Controller{
		playlist:   pl,
		view:       view,
		settings:   opts.Settings,
		onTrackEnd: opts.OnTrackEnd,
		log:        logger.L().Named("controller").With(zap.String("session", uuid.NewString())),
	}
	c.sched = schedule.Serialize(opts.Scheduler, &c.mu)

	sim := player.NewSimulated(c.sched, opts.TickInterval, opts.InitialVolume)
	sim.OnTrackEnd(c.handleTrackEnd)
	c.player = sim
	c.state = domain.NewPlayerState(sim.Volume())

	return c
}

// Start draws the initial track list and indicators
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.state.Snapshot()
	c.view.RenderTrackList(c.playlist.Tracks(), snap.CurrentIndex, c.onTrackClick)
	c.view.SetVolumeIndicator(snap.Volume)
	c.view.SetShuffleIndicator(snap.Shuffled)
	c.view.SetRepeatIndicator(snap.Repeating)
	c.view.SetPlayingIndicator(false)
	c.log.Info("controller started", zap.Int("tracks", c.playlist.Len()))
}

// Close cancels the pending auto-play and stops the player
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelPendingPlay()
	c.player.Stop()
	c.state.SetPlaying(false)
	c.log.Info("controller closed")
}

// Snapshot returns the session state without taking the controller lock
func (c *Controller) Snapshot() domain.Session {
	return c.state.Snapshot()
}

// CurrentTrack returns the loaded track, false when the playlist is empty
func (c *Controller) CurrentTrack() (domain.Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	track, err := c.playlist.Get(c.state.CurrentIndex())
	return track, err == nil
}

// Tracks returns the playlist in its current order
func (c *Controller) Tracks() []domain.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playlist.Tracks()
}

// ProgressState returns the simulated player's timer state
func (c *Controller) ProgressState() player.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.player.State()
}

// ApplySettings replaces the live settings. Invalid values keep the current ones.
// A new ceiling applies from the next Play.
func (c *Controller) ApplySettings(s Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s.Ceiling > 0 {
		c.settings.Ceiling = s.Ceiling
	}
	if s.Debounce >= 0 {
		c.settings.Debounce = s.Debounce
	}
	if s.VolumeStep > 0 && s.VolumeStep <= 1 {
		c.settings.VolumeStep = s.VolumeStep
	}
	c.log.Info("settings applied",
		zap.Int("ceiling", c.settings.Ceiling),
		zap.Duration("debounce", c.settings.Debounce),
		zap.Float64("volumeStep", c.settings.VolumeStep))
}

// LoadTrack makes the track at index current without starting playback. It
// reports false, changing nothing, when index is out of range.
func (c *Controller) LoadTrack(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadTrack(index)
}

// Play starts the progress simulation for the current track
func (c *Controller) Play() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.play()
}

// Pause stops playback. Progress is discarded, so the next Play starts from 0.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pause()
}

// Stop stops playback and resets the progress display
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelPendingPlay()
	c.player.Stop()
	c.state.SetPlaying(false)
	c.state.SetProgress(0)
	c.view.SetPlayingIndicator(false)
	c.view.UpdateProgress(0, 0, float64(c.settings.Ceiling))
}

// TogglePlay pauses when playing and plays otherwise
func (c *Controller) TogglePlay() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.player.IsPlaying() {
		c.pause()
		return
	}
	c.play()
}

// Next loads the following track, wrapping to the first, and plays it after the debounce
func (c *Controller) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next()
}

// Previous loads the preceding track, wrapping to the last, and plays it after the debounce
func (c *Controller) Previous() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.playlist.Len()
	if n == 0 {
		return false
	}
	index := (c.state.CurrentIndex() - 1 + n) % n
	c.loadTrack(index)
	c.schedulePlay()
	return true
}

// ToggleShuffle switches between a shuffled and the original order. The
// current track stays current; only its index changes.
func (c *Controller) ToggleShuffle() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	shuffled := !c.state.Snapshot().Shuffled
	index := c.state.CurrentIndex()

	if c.playlist.Len() > 0 {
		current, err := c.playlist.Get(index)
		if err != nil {
			return fmt.Errorf("toggle shuffle: %w", err)
		}

		if shuffled {
			c.playlist.Shuffle()
		} else {
			c.playlist.RestoreOriginalOrder()
		}

		index = c.playlist.FindIndexByID(current.ID())
		if index < 0 {
			c.log.Error("current track lost after reorder",
				zap.Int("trackID", current.ID()),
				zap.Bool("shuffled", shuffled))
			return fmt.Errorf("toggle shuffle: track %d: %w", current.ID(), playlist.ErrNotFound)
		}
	}

	c.state.SetShuffled(shuffled)
	c.state.SetCurrentIndex(index)
	c.view.SetShuffleIndicator(shuffled)
	c.view.RenderTrackList(c.playlist.Tracks(), index, c.onTrackClick)
	c.log.Debug("shuffle toggled", zap.Bool("shuffled", shuffled), zap.Int("index", index))
	return nil
}

// ToggleRepeat switches repeating the current track on completion
func (c *Controller) ToggleRepeat() {
	c.mu.Lock()
	defer c.mu.Unlock()

	repeating := !c.state.Snapshot().Repeating
	c.state.SetRepeating(repeating)
	c.view.SetRepeatIndicator(repeating)
}

// SetVolume sets the volume, clamped to [0, 1]
func (c *Controller) SetVolume(volume float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setVolume(volume)
}

// VolumeUp raises the volume by the configured step
func (c *Controller) VolumeUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setVolume(c.player.Volume() + c.settings.VolumeStep)
}

// VolumeDown lowers the volume by the configured step
func (c *Controller) VolumeDown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setVolume(c.player.Volume() - c.settings.VolumeStep)
}

// Seek shows the position at percent of the ceiling and returns it in seconds.
// The running progress counter is not moved: later ticks continue from it.
// While the counter runs, the ceiling it was started with is used.
func (c *Controller) Seek(percent float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if math.IsNaN(percent) {
		percent = 0
	}
	percent = lo.Clamp(percent, 0, 100)
	ceiling := c.settings.Ceiling
	if c.player.State() == player.Running {
		ceiling = c.player.Ceiling()
	}
	seconds := c.player.SetProgress(percent, ceiling)
	c.state.SetProgress(seconds)
	c.view.UpdateProgress(percent, seconds, float64(ceiling))
	return seconds
}

// ToggleLyrics shows the current track's lyrics, or hides them when shown
func (c *Controller) ToggleLyrics() {
	c.mu.Lock()
	defer c.mu.Unlock()

	track, err := c.playlist.Get(c.state.CurrentIndex())
	if err != nil {
		return
	}
	if c.lyricsVisible {
		c.lyricsVisible = false
		c.view.HideLyrics()
		return
	}
	c.lyricsVisible = true
	c.view.ShowLyrics(track.Lyrics())
}

// Back returns to the track list
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lyricsVisible = false
	c.view.HideLyrics()
	c.view.ShowTrackList()
}

// Download reports that the current track cannot be saved in demo mode
func (c *Controller) Download() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := ErrDownloadUnavailable
	if track, getErr := c.playlist.Get(c.state.CurrentIndex()); getErr == nil {
		err = fmt.Errorf("%w: %s", ErrDownloadUnavailable, track.DisplayInfo())
	}
	c.view.ShowNotice(err.Error())
	return err
}

func (c *Controller) onTrackClick(index int) {
	c.LoadTrack(index)
}

func (c *Controller) loadTrack(index int) bool {
	track, err := c.playlist.Get(index)
	if err != nil {
		c.log.Debug("load ignored", zap.Int("index", index), zap.Error(err))
		return false
	}

	c.cancelPendingPlay()
	c.player.Stop()
	c.lyricsVisible = false
	c.state.SetCurrentIndex(index)
	c.state.SetPlaying(false)
	c.state.SetProgress(0)

	c.view.ShowTrackDetail(track)
	c.view.UpdateProgress(0, 0, float64(c.settings.Ceiling))
	c.view.HideLyrics()
	c.view.SetPlayingIndicator(false)
	c.view.HighlightTrack(index)

	c.log.Info("track loaded",
		zap.Int("index", index),
		zap.Int("trackID", track.ID()),
		zap.String("title", track.Title()))
	return true
}

func (c *Controller) play() bool {
	if c.playlist.Len() == 0 {
		return false
	}

	c.cancelPendingPlay()
	c.player.Play()
	c.state.SetPlaying(true)
	c.state.SetProgress(0)
	c.view.SetPlayingIndicator(true)
	c.player.StartProgress(c.handleTick, c.settings.Ceiling)
	return true
}

func (c *Controller) pause() {
	c.cancelPendingPlay()
	c.player.Pause()
	c.state.SetPlaying(false)
	c.view.SetPlayingIndicator(false)
}

func (c *Controller) next() bool {
	n := c.playlist.Len()
	if n == 0 {
		return false
	}
	index := (c.state.CurrentIndex() + 1) % n
	c.loadTrack(index)
	c.schedulePlay()
	return true
}

func (c *Controller) setVolume(volume float64) {
	volume = lo.Clamp(math.Round(volume*100)/100, 0, 1)
	c.player.SetVolume(volume)
	c.state.SetVolume(volume)
	c.view.SetVolumeIndicator(volume)
}

// schedulePlay replaces any pending auto-play with a new one after the debounce
func (c *Controller) schedulePlay() {
	c.cancelPendingPlay()
	c.pendingPlay = c.sched.AfterFunc(c.settings.Debounce, func() {
		c.pendingPlay = nil
		c.play()
	})
}

func (c *Controller) cancelPendingPlay() {
	if c.pendingPlay != nil {
		c.pendingPlay.Stop()
		c.pendingPlay = nil
	}
}

// handleTick runs under the lock via the serialized scheduler
func (c *Controller) handleTick(percent, elapsed, ceiling float64) {
	c.state.SetProgress(elapsed)
	c.view.UpdateProgress(percent, elapsed, ceiling)
}

// handleTrackEnd runs under the lock via the serialized scheduler
func (c *Controller) handleTrackEnd() {
	index := c.state.CurrentIndex()
	track, err := c.playlist.Get(index)
	if err != nil {
		return
	}
	if c.onTrackEnd != nil {
		c.onTrackEnd(track)
	}

	if c.state.Snapshot().Repeating {
		c.log.Debug("repeating track", zap.Int("index", index))
		c.loadTrack(index)
		c.schedulePlay()
		return
	}
	c.next()
}
