package library

import "github.com/yhkl-dev/trackdeck/domain"

// Library supplies the tracks a playlist is populated from at startup
type Library interface {
	Tracks() ([]domain.Track, error)
}
