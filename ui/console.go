package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/yhkl-dev/trackdeck/controller"
	"github.com/yhkl-dev/trackdeck/domain"
)

var _ controller.Presenter = (*Console)(nil)

// Console is a Presenter that writes one line per change, for headless runs
type Console struct {
	mu       sync.Mutex
	w        io.Writer
	barWidth int
}

// NewConsole creates a console presenter writing to w
func NewConsole(w io.Writer, barWidth int) *Console {
	if barWidth <= 0 {
		barWidth = 30
	}
	return &Console{w: w, barWidth: barWidth}
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format+"\n", args...)
}

func (c *Console) RenderTrackList(tracks []domain.Track, currentIndex int, _ func(int)) {
	lines := make([]string, 0, len(tracks)+1)
	lines = append(lines, fmt.Sprintf("playlist (%d tracks)", len(tracks)))
	for i, t := range tracks {
		marker := " "
		if i == currentIndex {
			marker = ">"
		}
		lines = append(lines, fmt.Sprintf("%s %2d. %s [%s]", marker, i+1, t.DisplayInfo(), t.DurationLabel()))
	}
	c.printf("%s", strings.Join(lines, "\n"))
}

func (c *Console) HighlightTrack(index int) {}

func (c *Console) ShowTrackDetail(track domain.Track) {
	c.printf("loaded: %s [%s]", track.DisplayInfo(), track.DurationLabel())
}

func (c *Console) ShowTrackList() {
	c.printf("back to playlist")
}

func (c *Console) UpdateProgress(percent, elapsed, ceiling float64) {
	c.printf("  %s / %s %s", FormatTime(elapsed), FormatTime(ceiling),
		CreatePlainProgressBar(percent/100, c.barWidth))
}

func (c *Console) SetPlayingIndicator(playing bool) {
	if playing {
		c.printf("playing")
		return
	}
	c.printf("paused")
}

func (c *Console) SetShuffleIndicator(shuffled bool) {
	c.printf("shuffle: %s", onOff(shuffled))
}

func (c *Console) SetRepeatIndicator(repeating bool) {
	c.printf("repeat: %s", onOff(repeating))
}

func (c *Console) SetVolumeIndicator(volume float64) {
	c.printf("volume: %.0f%%", volume*100)
}

func (c *Console) ShowLyrics(text string) {
	c.printf("lyrics:\n  %s", strings.ReplaceAll(text, "\n", "\n  "))
}

func (c *Console) HideLyrics() {}

func (c *Console) ShowNotice(text string) {
	c.printf("! %s", text)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
