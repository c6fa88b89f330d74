package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/rivo/tview"
	"github.com/samber/lo"
	"github.com/yhkl-dev/trackdeck/domain"
)

// FormatTime converts seconds to m:ss. NaN and negative values render as 0:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		return "0:00"
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// CreateProgressBar creates a visual progress bar with tview color tags
func CreateProgressBar(progress float64, width int) string {
	progress = lo.Clamp(progress, 0, 1)
	filledWidth := int(progress * float64(width))

	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i < filledWidth {
			bar.WriteString("[lightgreen]▓")
		} else {
			bar.WriteString("[darkgray]░")
		}
	}
	return bar.String() + fmt.Sprintf("[white] %.1f%%", progress*100)
}

// CreatePlainProgressBar is CreateProgressBar without color tags
func CreatePlainProgressBar(progress float64, width int) string {
	progress = lo.Clamp(progress, 0, 1)
	filledWidth := int(progress * float64(width))
	return strings.Repeat("#", filledWidth) + strings.Repeat("-", width-filledWidth) +
		fmt.Sprintf(" %.1f%%", progress*100)
}

// CreateProgressText creates the progress line: bar, then elapsed/ceiling
func CreateProgressText(percent, elapsed, ceiling float64, width int) string {
	return fmt.Sprintf("%s [darkgray]%s / %s",
		CreateProgressBar(percent/100, width), FormatTime(elapsed), FormatTime(ceiling))
}

// ClickPercent maps a click offset inside a bar of the given width to a percentage
func ClickPercent(offset, width int) float64 {
	if width <= 0 {
		return 0
	}
	return lo.Clamp(float64(offset)/float64(width)*100, 0, 100)
}

// VolumeIcon returns the muted, low or high volume indicator
func VolumeIcon(volume float64) string {
	switch {
	case volume == 0:
		return "🔇"
	case volume < 0.5:
		return "🔈"
	default:
		return "🔊"
	}
}

// FormatStatus creates the indicator line shown under the progress bar
func FormatStatus(playing, shuffled, repeating bool, volume float64) string {
	state := "[yellow]⏸ paused"
	if playing {
		state = "[lightgreen]▶ playing"
	}
	return fmt.Sprintf("%s  %s  %s  [white]%s %.0f%%",
		state,
		toggleLabel("shuffle", shuffled),
		toggleLabel("repeat", repeating),
		VolumeIcon(volume), volume*100)
}

func toggleLabel(name string, on bool) string {
	if on {
		return "[lightgreen][" + name + "[][white]"
	}
	return "[darkgray][" + name + "[][white]"
}

// FormatTrackDetail creates the now-playing panel text for a track
func FormatTrackDetail(track domain.Track) string {
	return fmt.Sprintf(`
[white::b]%s[-:-:-]
[gray]%s

[darkgray][duration[] [white]%s
[darkgray][file[]     [white]%s

[darkgray] SPACE (play/pause)
[darkgray] CTRL+←/→ (prev/next)
[darkgray] CTRL+↑/↓ (volume)
[darkgray] s/r (shuffle/repeat)
[darkgray] l (lyrics)  ESC (back)`,
		tview.Escape(track.Title()),
		tview.Escape(track.Artist()),
		tview.Escape(track.DurationLabel()),
		tview.Escape(track.AudioURI()))
}

// CreateWelcomeMessage creates the status text shown before anything plays
func CreateWelcomeMessage(totalTracks int) string {
	return fmt.Sprintf("[lightgreen]trackdeck[darkgray]  %d tracks loaded  |  ENTER to open a track, ? for help", totalTracks)
}
