package domain

import (
	"sync"
)

// Track represents a music track with metadata. A Track is immutable once
// constructed; copies share nothing mutable.
type Track struct {
	id            int
	title         string
	artist        string
	coverURI      string
	audioURI      string
	durationLabel string
	lyrics        string
}

// NewTrack creates a Track from its metadata
func NewTrack(id int, title, artist, coverURI, audioURI, durationLabel, lyrics string) Track {
	return Track{
		id:            id,
		title:         title,
		artist:        artist,
		coverURI:      coverURI,
		audioURI:      audioURI,
		durationLabel: durationLabel,
		lyrics:        lyrics,
	}
}

func (t Track) ID() int               { return t.id }
func (t Track) Title() string         { return t.title }
func (t Track) Artist() string        { return t.artist }
func (t Track) CoverURI() string      { return t.coverURI }
func (t Track) AudioURI() string      { return t.audioURI }
func (t Track) DurationLabel() string { return t.durationLabel }
func (t Track) Lyrics() string        { return t.lyrics }

// DisplayInfo returns the "Title - Artist" label used in lists and notices
func (t Track) DisplayInfo() string {
	return t.title + " - " + t.artist
}

// Session is a point-in-time copy of the player session state
type Session struct {
	CurrentIndex    int
	Shuffled        bool
	Repeating       bool
	Playing         bool
	Volume          float64
	ProgressSeconds float64
}

// PlayerState manages the current session state in a thread-safe manner
type PlayerState struct {
	currentIndex    int
	isShuffled      bool
	isRepeating     bool
	isPlaying       bool
	volume          float64
	progressSeconds float64
	mux             sync.RWMutex
}

// NewPlayerState creates a new PlayerState with the given starting volume
func NewPlayerState(volume float64) *PlayerState {
	return &PlayerState{
		currentIndex: 0,
		volume:       volume,
	}
}

// Snapshot returns the current session state (thread-safe)
func (s *PlayerState) Snapshot() Session {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return Session{
		CurrentIndex:    s.currentIndex,
		Shuffled:        s.isShuffled,
		Repeating:       s.isRepeating,
		Playing:         s.isPlaying,
		Volume:          s.volume,
		ProgressSeconds: s.progressSeconds,
	}
}

// CurrentIndex returns the index of the loaded track (thread-safe)
func (s *PlayerState) CurrentIndex() int {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.currentIndex
}

// SetCurrentIndex updates the loaded track index (thread-safe)
func (s *PlayerState) SetCurrentIndex(index int) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.currentIndex = index
}

// SetPlaying updates the playing state (thread-safe)
func (s *PlayerState) SetPlaying(playing bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.isPlaying = playing
}

// SetShuffled updates the shuffle flag (thread-safe)
func (s *PlayerState) SetShuffled(shuffled bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.isShuffled = shuffled
}

// SetRepeating updates the repeat flag (thread-safe)
func (s *PlayerState) SetRepeating(repeating bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.isRepeating = repeating
}

// SetVolume updates the volume (thread-safe). Callers clamp.
func (s *PlayerState) SetVolume(volume float64) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.volume = volume
}

// SetProgress updates the elapsed seconds shown for the loaded track (thread-safe)
func (s *PlayerState) SetProgress(seconds float64) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.progressSeconds = seconds
}
