package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yhkl-dev/trackdeck/config"
	"github.com/yhkl-dev/trackdeck/coverart"
	"github.com/yhkl-dev/trackdeck/domain"
	"github.com/yhkl-dev/trackdeck/ui"
)

var testConfig string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "trackdeck-cmd")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	testConfig = filepath.Join(dir, "trackdeck.toml")
	content := fmt.Sprintf("[log]\nlevel = \"debug\"\nfile = %q\n", filepath.Join(dir, "trackdeck.log"))
	if err := os.WriteFile(testConfig, []byte(content), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(resetFlags)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append(args, "--config", testConfig))
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	configPath, logLevel = "", ""
	listShuffle, listSeed = false, 0
	simCount, simTick, simDebounce = 1, 0, -1
	simShuffle, simRepeat, simStart = false, false, 0
	rootCmd.SetArgs(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
}

func TestWriteTrackTable(t *testing.T) {
	var buf bytes.Buffer
	writeTrackTable(&buf, []domain.Track{
		domain.NewTrack(1, "Bohemian Rhapsody", "Queen", "", "demo1.mp3", "5:55", ""),
		domain.NewTrack(2, "Shape of You", "Ed Sheeran", "", "demo2.mp3", "3:53", ""),
	})

	out := buf.String()
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Bohemian Rhapsody")
	assert.Contains(t, out, "Ed Sheeran")
	assert.Contains(t, out, "3:53")
	assert.Contains(t, out, "TRACKS")
}

func TestListPrintsDemoCatalog(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)

	for _, title := range []string{"Bohemian Rhapsody", "Shape of You", "Blinding Lights", "Dance Monkey", "Bad Guy"} {
		assert.Contains(t, out, title)
	}
	assert.Less(t, strings.Index(out, "Bohemian Rhapsody"), strings.Index(out, "Bad Guy"))
}

func TestListSeededShuffleIsReproducible(t *testing.T) {
	first, err := execute(t, "list", "--shuffle", "--seed", "7")
	require.NoError(t, err)
	second, err := execute(t, "list", "--shuffle", "--seed", "7")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "Dance Monkey")
}

func TestSimulateCompletesTracks(t *testing.T) {
	out, err := execute(t, "simulate", "--count", "2", "--tick", "1ms", "--debounce", "0s")
	require.NoError(t, err)

	assert.Contains(t, out, "loaded: Bohemian Rhapsody - Queen [5:55]")
	assert.Contains(t, out, "completed: Bohemian Rhapsody - Queen")
	assert.Contains(t, out, "completed: Shape of You - Ed Sheeran")
	assert.Contains(t, out, "0:30 / 0:30")
	assert.Contains(t, out, "stopped after 2 completed track(s)")
}

func TestSimulateRepeatReplaysTrack(t *testing.T) {
	out, err := execute(t, "simulate", "--count", "2", "--tick", "1ms", "--debounce", "0s", "--repeat", "--start", "4")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "completed: Bad Guy - Billie Eilish"))
	assert.NotContains(t, out, "completed: Bohemian Rhapsody")
	assert.Contains(t, out, "repeat: on")
}

func TestSimulateRejectsBadStart(t *testing.T) {
	_, err := execute(t, "simulate", "--start", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no track at index 9")
}

func TestSimulateRejectsNegativeCount(t *testing.T) {
	_, err := execute(t, "simulate", "--count=-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--count must not be negative")
}

func simulatedScreenText(s tcell.SimulationScreen) string {
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

func TestRunTUIDrawsCatalogAndStops(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.UI.ShowCoverArt = false

	app := ui.NewApp(cfg, coverart.NewConverter(cfg.UI.CoverWidth, cfg.UI.CoverHeight))
	screen := tcell.NewSimulationScreen("UTF-8")
	app.SetScreen(screen)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- runTUI(ctx, nil, cfg, app) }()

	require.Eventually(t, func() bool {
		text := simulatedScreenText(screen)
		return strings.Contains(text, "Bohemian Rhapsody") && strings.Contains(text, "Bad Guy")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("trackdeck did not shut down")
	}
}
