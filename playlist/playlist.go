package playlist

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"
	"github.com/yhkl-dev/trackdeck/domain"
)

var (
	// ErrOutOfRange is returned when an index falls outside [0, Len())
	ErrOutOfRange = errors.New("playlist index out of range")
	// ErrNotFound is returned when a track id is not present in the current order
	ErrNotFound = errors.New("track not found in playlist")
)

// Playlist holds the current (possibly shuffled) order of tracks alongside the
// insertion order. Both always contain the same tracks.
type Playlist struct {
	order    []domain.Track
	original []domain.Track
	rng      *rand.Rand
}

// New creates an empty playlist. A nil rng uses the package-level source.
func New(rng *rand.Rand) *Playlist {
	return &Playlist{
		order:    make([]domain.Track, 0),
		original: make([]domain.Track, 0),
		rng:      rng,
	}
}

// AddTrack appends a track to both orders. Duplicate ids are not rejected here.
func (p *Playlist) AddTrack(track domain.Track) {
	p.order = append(p.order, track)
	p.original = append(p.original, track)
}

// Clear removes all tracks
func (p *Playlist) Clear() {
	p.order = p.order[:0]
	p.original = p.original[:0]
}

// Shuffle randomizes the current order with Fisher-Yates. The original order is untouched.
func (p *Playlist) Shuffle() {
	if len(p.order) <= 1 {
		return
	}

	shuffled := make([]domain.Track, len(p.order))
	copy(shuffled, p.order)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := p.intN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	p.order = shuffled
}

// RestoreOriginalOrder resets the current order to a copy of the insertion order
func (p *Playlist) RestoreOriginalOrder() {
	p.order = make([]domain.Track, len(p.original))
	copy(p.order, p.original)
}

// FindIndexByID returns the position of the track with the given id in the
// current order, or -1 if absent.
func (p *Playlist) FindIndexByID(id int) int {
	_, index, ok := lo.FindIndexOf(p.order, func(t domain.Track) bool {
		return t.ID() == id
	})
	if !ok {
		return -1
	}
	return index
}

// Get returns the track at index in the current order
func (p *Playlist) Get(index int) (domain.Track, error) {
	if index < 0 || index >= len(p.order) {
		return domain.Track{}, fmt.Errorf("%w: %d (length %d)", ErrOutOfRange, index, len(p.order))
	}
	return p.order[index], nil
}

// Len returns the number of tracks
func (p *Playlist) Len() int {
	return len(p.order)
}

// Tracks returns a copy of the current order
func (p *Playlist) Tracks() []domain.Track {
	result := make([]domain.Track, len(p.order))
	copy(result, p.order)
	return result
}

// OriginalOrder returns a copy of the insertion order
func (p *Playlist) OriginalOrder() []domain.Track {
	result := make([]domain.Track, len(p.original))
	copy(result, p.original)
	return result
}

func (p *Playlist) intN(n int) int {
	if p.rng == nil {
		return rand.IntN(n)
	}
	return p.rng.IntN(n)
}
