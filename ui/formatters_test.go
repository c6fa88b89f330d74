package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yhkl-dev/trackdeck/domain"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{13.7, "0:13"},
		{30, "0:30"},
		{200, "3:20"},
		{-1, "0:00"},
		{math.NaN(), "0:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.seconds), "seconds=%v", tt.seconds)
	}
}

func TestCreatePlainProgressBar(t *testing.T) {
	assert.Equal(t, "##-- 50.0%", CreatePlainProgressBar(0.5, 4))
	assert.Equal(t, "---- 0.0%", CreatePlainProgressBar(-1, 4))
	assert.Equal(t, "#### 100.0%", CreatePlainProgressBar(2, 4))
}

func TestCreateProgressBar(t *testing.T) {
	bar := CreateProgressBar(0.25, 8)
	assert.Equal(t, 2, strings.Count(bar, "▓"))
	assert.Equal(t, 6, strings.Count(bar, "░"))
	assert.True(t, strings.HasSuffix(bar, "25.0%"))
}

func TestCreateProgressText(t *testing.T) {
	text := CreateProgressText(50, 15, 30, 10)
	assert.Contains(t, text, "0:15 / 0:30")
	assert.Contains(t, text, "50.0%")
}

func TestClickPercent(t *testing.T) {
	assert.InDelta(t, 0.0, ClickPercent(0, 30), 1e-9)
	assert.InDelta(t, 50.0, ClickPercent(15, 30), 1e-9)
	assert.InDelta(t, 100.0, ClickPercent(45, 30), 1e-9)
	assert.InDelta(t, 0.0, ClickPercent(-3, 30), 1e-9)
	assert.InDelta(t, 0.0, ClickPercent(5, 0), 1e-9)
}

func TestVolumeIcon(t *testing.T) {
	assert.Equal(t, "🔇", VolumeIcon(0))
	assert.Equal(t, "🔈", VolumeIcon(0.3))
	assert.Equal(t, "🔊", VolumeIcon(0.5))
	assert.Equal(t, "🔊", VolumeIcon(1))
}

func TestFormatStatus(t *testing.T) {
	status := FormatStatus(true, false, true, 0.7)
	assert.Contains(t, status, "playing")
	assert.Contains(t, status, "[lightgreen][repeat[]")
	assert.Contains(t, status, "[darkgray][shuffle[]")
	assert.Contains(t, status, "70%")

	assert.Contains(t, FormatStatus(false, false, false, 0), "paused")
}

func TestFormatTrackDetailEscapesTags(t *testing.T) {
	track := domain.NewTrack(1, "Song [Live]", "Band", "", "demo1.mp3", "3:20", "")
	detail := FormatTrackDetail(track)
	assert.Contains(t, detail, "Song [Live[]")
	assert.Contains(t, detail, "3:20")
	assert.Contains(t, detail, "demo1.mp3")
}

func TestFormatTrackDetailLabelsAreLiteral(t *testing.T) {
	detail := FormatTrackDetail(domain.NewTrack(1, "Song", "Band", "", "demo1.mp3", "3:20", ""))
	assert.Contains(t, detail, "[duration[]")
	assert.Contains(t, detail, "[file[]")
	assert.NotContains(t, detail, "[duration]")
	assert.NotContains(t, detail, "[file]")
}
