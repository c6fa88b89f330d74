package ui

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/yhkl-dev/trackdeck/config"
	"github.com/yhkl-dev/trackdeck/controller"
	"github.com/yhkl-dev/trackdeck/coverart"
	"github.com/yhkl-dev/trackdeck/domain"
	"github.com/yhkl-dev/trackdeck/logger"
	"go.uber.org/zap"
)

const (
	pageList   = "list"
	pagePlayer = "player"
	pageHelp   = "help"

	noticeTimeout = 3 * time.Second
	commandQueue  = 64
)

var _ controller.Presenter = (*App)(nil)

// App represents the TUI application. It renders what the controller
// presents and forwards keyboard and mouse input back to it.
type App struct {
	tviewApp *tview.Application
	cfg      *config.Config
	ctrl     Controls
	keys     *KeyBindingManager
	cover    *coverart.Converter
	log      *zap.Logger
	commands chan func()
	stopped  atomic.Bool

	// presenter updates waiting for the tview goroutine, in call order
	renderMu   sync.Mutex
	renders    []func()
	renderWake chan struct{}

	rootFlex    *tview.Flex
	pages       *tview.Pages
	trackTable  *tview.Table
	playerFlex  *tview.Flex
	coverView   *tview.TextView
	detailView  *tview.TextView
	lyricsView  *tview.TextView
	progressBar *tview.TextView
	statusBar   *tview.TextView
	helpView    *HelpView

	// display state, only touched on the tview goroutine
	tracks       []domain.Track
	onTrackClick func(int)
	currentIndex int
	current      domain.Track
	hasCurrent   bool
	playing      bool
	shuffled     bool
	repeating    bool
	volume       float64
	notice       string
	noticeSeq    int
}

// NewApp creates the TUI and lays out its views. Presenter methods never wait
// for the event loop: calls made before Run are kept in order and drawn once
// it starts.
func NewApp(cfg *config.Config, cover *coverart.Converter) *App {
	a := &App{
		tviewApp:   tview.NewApplication(),
		cfg:        cfg,
		keys:       NewKeyBindingManager(),
		cover:      cover,
		log:        logger.L().Named("ui"),
		commands:   make(chan func(), commandQueue),
		renderWake: make(chan struct{}, 1),
	}
	a.createLayout()
	return a
}

// Bind connects keyboard and mouse input to ctrl
func (a *App) Bind(ctrl Controls) {
	a.ctrl = ctrl
	registerControlBindings(a.keys, ctrl, a.dispatch)
	a.setupInputHandlers()
}

// SetScreen replaces the terminal screen, e.g. with a tcell simulation screen.
// It must be called before Run.
func (a *App) SetScreen(screen tcell.Screen) {
	a.tviewApp.SetScreen(screen)
}

// Run starts the application and blocks until it is stopped or ctx is done
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.shutdown()

	go a.runCommands(ctx)
	go a.runRenders(ctx)
	go func() {
		<-ctx.Done()
		a.tviewApp.Stop()
	}()

	a.log.Info("starting trackdeck ui")
	return a.tviewApp.Run()
}

// Stop stops the application
func (a *App) Stop() {
	if a.tviewApp != nil {
		a.tviewApp.Stop()
	}
}

// dispatch hands f to the command goroutine so input handlers never block
// on the controller
func (a *App) dispatch(f func()) {
	select {
	case a.commands <- f:
	default:
		a.log.Warn("input dropped, command queue full")
	}
}

func (a *App) runCommands(ctx context.Context) {
	for {
		select {
		case f := <-a.commands:
			f()
		case <-ctx.Done():
			return
		}
	}
}

// queue schedules f to run on the tview goroutine, followed by a redraw.
// It never blocks; after shutdown f is discarded.
func (a *App) queue(f func()) {
	a.renderMu.Lock()
	if a.stopped.Load() {
		a.renderMu.Unlock()
		return
	}
	a.renders = append(a.renders, f)
	a.renderMu.Unlock()

	select {
	case a.renderWake <- struct{}{}:
	default:
	}
}

// takeRenders removes and returns every pending update
func (a *App) takeRenders() []func() {
	a.renderMu.Lock()
	defer a.renderMu.Unlock()
	batch := a.renders
	a.renders = nil
	return batch
}

// runRenders forwards pending updates to tview, one batch per draw, until
// ctx is done
func (a *App) runRenders(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.renderWake:
		}

		batch := a.takeRenders()
		if len(batch) == 0 || a.stopped.Load() {
			continue
		}
		a.tviewApp.QueueUpdateDraw(func() {
			for _, f := range batch {
				f()
			}
		})
	}
}

// shutdown stops accepting updates and drops the ones still pending
func (a *App) shutdown() {
	a.renderMu.Lock()
	defer a.renderMu.Unlock()
	a.stopped.Store(true)
	a.renders = nil
}

// RenderTrackList draws the track table in current order
func (a *App) RenderTrackList(tracks []domain.Track, currentIndex int, onTrackClick func(index int)) {
	a.queue(func() {
		a.tracks = tracks
		a.onTrackClick = onTrackClick
		a.currentIndex = currentIndex
		a.renderTrackTable()
		if !a.hasCurrent {
			a.progressBar.SetText(CreateWelcomeMessage(len(tracks)))
		}
	})
}

// HighlightTrack marks and selects the loaded track
func (a *App) HighlightTrack(index int) {
	a.queue(func() {
		a.currentIndex = index
		a.hasCurrent = true
		a.renderMarkers()
		if index >= 0 && index < len(a.tracks) {
			a.trackTable.Select(index+1, 0)
		}
	})
}

// ShowTrackDetail switches to the player page for track
func (a *App) ShowTrackDetail(track domain.Track) {
	a.queue(func() {
		a.current = track
		a.hasCurrent = true
		a.detailView.SetText(FormatTrackDetail(track))
		a.coverView.SetText(a.cover.Placeholder())
		a.pages.SwitchToPage(pagePlayer)
		a.tviewApp.SetFocus(a.detailView)
	})
	if a.cfg.UI.ShowCoverArt {
		go a.loadCoverArt(track)
	}
}

// ShowTrackList switches back to the list page
func (a *App) ShowTrackList() {
	a.queue(func() {
		a.pages.SwitchToPage(pageList)
		a.tviewApp.SetFocus(a.trackTable)
	})
}

// UpdateProgress redraws the progress bar
func (a *App) UpdateProgress(percent, elapsed, ceiling float64) {
	a.queue(func() {
		a.progressBar.SetText(CreateProgressText(percent, elapsed, ceiling, a.cfg.UI.ProgressBarWidth))
	})
}

func (a *App) SetPlayingIndicator(playing bool) {
	a.queue(func() {
		a.playing = playing
		a.renderStatus()
	})
}

func (a *App) SetShuffleIndicator(shuffled bool) {
	a.queue(func() {
		a.shuffled = shuffled
		a.renderStatus()
	})
}

func (a *App) SetRepeatIndicator(repeating bool) {
	a.queue(func() {
		a.repeating = repeating
		a.renderStatus()
	})
}

func (a *App) SetVolumeIndicator(volume float64) {
	a.queue(func() {
		a.volume = volume
		a.renderStatus()
	})
}

// ShowLyrics opens the lyrics pane under the track detail
func (a *App) ShowLyrics(text string) {
	a.queue(func() {
		a.lyricsView.SetText(text)
		a.lyricsView.ScrollToBeginning()
		a.playerFlex.ResizeItem(a.lyricsView, 0, 1)
	})
}

// HideLyrics collapses the lyrics pane
func (a *App) HideLyrics() {
	a.queue(func() {
		a.lyricsView.Clear()
		a.playerFlex.ResizeItem(a.lyricsView, 0, 0)
	})
}

// ShowNotice shows text in the status bar for a few seconds
func (a *App) ShowNotice(text string) {
	a.queue(func() {
		a.noticeSeq++
		seq := a.noticeSeq
		a.notice = text
		a.renderStatus()

		time.AfterFunc(noticeTimeout, func() {
			a.queue(func() {
				if a.noticeSeq == seq {
					a.notice = ""
					a.renderStatus()
				}
			})
		})
	})
}

// loadCoverArt converts the track's cover and shows it if the track is
// still displayed
func (a *App) loadCoverArt(track domain.Track) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	ascii, err := a.cover.ConvertFromURL(ctx, track.CoverURI())
	if err != nil {
		a.log.Warn("failed to load cover art",
			zap.String("track", track.DisplayInfo()),
			zap.Error(err))
	}

	a.queue(func() {
		if a.hasCurrent && a.current.ID() == track.ID() {
			a.coverView.SetText(ascii)
		}
	})
}

// handleEscape leaves the player page, or exits from the list
func (a *App) handleEscape() {
	if name, _ := a.pages.GetFrontPage(); name == pagePlayer && a.ctrl != nil {
		a.dispatch(a.ctrl.Back)
		return
	}
	a.Stop()
}
