package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yhkl-dev/trackdeck/controller"
	"github.com/yhkl-dev/trackdeck/domain"
	"github.com/yhkl-dev/trackdeck/playlist"
	"github.com/yhkl-dev/trackdeck/schedule"
)

func screenText(s tcell.SimulationScreen) string {
	cells, width, _ := s.GetContents()
	var b strings.Builder
	for i, c := range cells {
		if i > 0 && i%width == 0 {
			b.WriteByte('\n')
		}
		if len(c.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(string(c.Runes))
	}
	return b.String()
}

func newTestPlaylist(n int) *playlist.Playlist {
	pl := playlist.New(nil)
	for i := 1; i <= n; i++ {
		pl.AddTrack(domain.NewTrack(i, fmt.Sprintf("Song Number %d", i), "Band", "", "", "3:00", ""))
	}
	return pl
}

func runApp(t *testing.T, app *App) (cancel func(), done <-chan error) {
	t.Helper()
	ctx, cancelFn := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- app.Run(ctx) }()
	return cancelFn, errs
}

func waitStopped(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestAppControllerStartBeforeRun(t *testing.T) {
	app := newTestApp(t)
	screen := tcell.NewSimulationScreen("UTF-8")
	app.SetScreen(screen)

	opts := controller.DefaultOptions()
	opts.Scheduler = schedule.NewManual()
	ctrl := controller.New(newTestPlaylist(3), app, opts)
	app.Bind(ctrl)

	started := make(chan struct{})
	go func() {
		ctrl.Start()
		close(started)
	}()
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("controller start blocked before the ui was running")
	}

	cancel, done := runApp(t, app)
	require.Eventually(t, func() bool {
		return strings.Contains(screenText(screen), "Song Number 3")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, screenText(screen), "Song Number 1")

	cancel()
	waitStopped(t, done)
	ctrl.Close()
}

func TestAppShutdownWhileTicking(t *testing.T) {
	app := newTestApp(t)
	screen := tcell.NewSimulationScreen("UTF-8")
	app.SetScreen(screen)

	opts := controller.DefaultOptions()
	opts.TickInterval = time.Millisecond
	opts.Debounce = 0
	ctrl := controller.New(newTestPlaylist(3), app, opts)
	app.Bind(ctrl)
	ctrl.Start()

	cancel, done := runApp(t, app)
	defer cancel()
	require.True(t, ctrl.LoadTrack(0))
	require.True(t, ctrl.Play())

	require.Eventually(t, func() bool {
		return strings.Contains(screenText(screen), "Song Number 1") &&
			ctrl.Snapshot().ProgressSeconds > 0
	}, 2*time.Second, 5*time.Millisecond)

	flood := make(chan struct{})
	go func() {
		defer close(flood)
		for i := 0; i < 2000; i++ {
			app.UpdateProgress(50, 15, 30)
		}
	}()
	app.Stop()
	waitStopped(t, done)

	closed := make(chan struct{})
	go func() {
		ctrl.Close()
		<-flood
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("controller close blocked after the ui stopped")
	}
}

func TestAppQueueKeepsOrderBeforeRun(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 500; i++ {
		app.UpdateProgress(float64(i), 0, 30)
	}
	app.SetShuffleIndicator(true)

	batch := app.takeRenders()
	require.Len(t, batch, 501)
	for _, f := range batch {
		f()
	}
	assert.True(t, app.shuffled)
	assert.Contains(t, app.progressBar.GetText(true), "0:00 / 0:30")
}
