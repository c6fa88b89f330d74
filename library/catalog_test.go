package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yhkl-dev/trackdeck/config"
)

func TestDemoCatalog(t *testing.T) {
	tracks, err := NewCatalog(nil).Tracks()
	require.NoError(t, err)
	require.Len(t, tracks, 5)

	assert.Equal(t, 1, tracks[0].ID())
	assert.Equal(t, "Bohemian Rhapsody - Queen", tracks[0].DisplayInfo())
	assert.Equal(t, "5:55", tracks[0].DurationLabel())
	assert.Equal(t, "demo5.mp3", tracks[4].AudioURI())
	for _, track := range tracks {
		assert.NotEmpty(t, track.Lyrics(), "track %d", track.ID())
		assert.NotEmpty(t, track.CoverURI(), "track %d", track.ID())
	}
}

func TestConfiguredCatalog(t *testing.T) {
	var lib Library = NewCatalog([]config.TrackConfig{
		{ID: 10, Title: "One", Artist: "A", Duration: "1:00"},
		{ID: 11, Title: "Two", Artist: "B", Duration: "2:00", Lyrics: "words"},
	})

	tracks, err := lib.Tracks()
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, 11, tracks[1].ID())
	assert.Equal(t, "words", tracks[1].Lyrics())
}

func TestCatalogRejectsDuplicateIDs(t *testing.T) {
	_, err := NewCatalog([]config.TrackConfig{
		{ID: 1, Title: "One"},
		{ID: 1, Title: "Again"},
	}).Tracks()

	require.ErrorIs(t, err, ErrDuplicateID)
	assert.Contains(t, err.Error(), "Again")
}
