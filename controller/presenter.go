package controller

import "github.com/yhkl-dev/trackdeck/domain"

// Presenter renders controller state. The controller calls it while holding
// its lock, so implementations must not block and must not call back into the
// Controller synchronously; queue the work instead.
type Presenter interface {
	// RenderTrackList draws the whole list in current order. onTrackClick loads
	// the track at the given index and may be called from any goroutine.
	RenderTrackList(tracks []domain.Track, currentIndex int, onTrackClick func(index int))

	// HighlightTrack marks the loaded track in the list
	HighlightTrack(index int)

	// ShowTrackDetail switches to the player view for track
	ShowTrackDetail(track domain.Track)

	// ShowTrackList switches back to the list view
	ShowTrackList()

	UpdateProgress(percent, elapsed, ceiling float64)
	SetPlayingIndicator(playing bool)
	SetShuffleIndicator(shuffled bool)
	SetRepeatIndicator(repeating bool)
	SetVolumeIndicator(volume float64)
	ShowLyrics(text string)
	HideLyrics()

	// ShowNotice displays a transient message
	ShowNotice(text string)
}
