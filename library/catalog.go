package library

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/yhkl-dev/trackdeck/config"
	"github.com/yhkl-dev/trackdeck/domain"
)

// ErrDuplicateID is returned when two catalog entries share an id
var ErrDuplicateID = errors.New("duplicate track id")

// Catalog is a fixed, in-memory Library
type Catalog struct {
	entries []config.TrackConfig
}

// NewCatalog creates a Library over configured entries, or over the built-in
// demo tracks when entries is empty
func NewCatalog(entries []config.TrackConfig) *Catalog {
	if len(entries) == 0 {
		entries = demoTracks
	}
	return &Catalog{entries: entries}
}

// Tracks converts the entries to domain tracks, rejecting duplicate ids
func (c *Catalog) Tracks() ([]domain.Track, error) {
	seen := make(map[int]struct{}, len(c.entries))
	for _, e := range c.entries {
		if _, ok := seen[e.ID]; ok {
			return nil, fmt.Errorf("%w: %d (%s)", ErrDuplicateID, e.ID, e.Title)
		}
		seen[e.ID] = struct{}{}
	}
	return lo.Map(c.entries, func(e config.TrackConfig, _ int) domain.Track {
		return convertToDomainTrack(e)
	}), nil
}

func convertToDomainTrack(e config.TrackConfig) domain.Track {
	return domain.NewTrack(e.ID, e.Title, e.Artist, e.Cover, e.Audio, e.Duration, e.Lyrics)
}

var demoTracks = []config.TrackConfig{
	{
		ID:       1,
		Title:    "Bohemian Rhapsody",
		Artist:   "Queen",
		Cover:    "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=400",
		Audio:    "demo1.mp3",
		Duration: "5:55",
		Lyrics: "Is this the real life? Is this just fantasy?\nCaught in a landslide, no escape from reality\n\n" +
			"Open your eyes, look up to the skies and see...\nI'm just a poor boy, I need no sympathy\n" +
			"Because I'm easy come, easy go\nLittle high, little low\n\n" +
			"Anyway the wind blows, doesn't really matter to me, to me...",
	},
	{
		ID:       2,
		Title:    "Shape of You",
		Artist:   "Ed Sheeran",
		Cover:    "https://images.unsplash.com/photo-1470225620780-dba8ba36b745?w=400",
		Audio:    "demo2.mp3",
		Duration: "3:53",
		Lyrics: "The club isn't the best place to find a lover\nSo the bar is where I go\n" +
			"Me and my friends at the table doing shots\nDrinking fast and then we talk slow\n\n" +
			"And you come over and start up a conversation with just me\nAnd trust me I'll give it a chance now\n" +
			"Take my hand, stop, put Van the Man on the jukebox\nAnd then we start to dance, and now I'm singing like...",
	},
	{
		ID:       3,
		Title:    "Blinding Lights",
		Artist:   "The Weeknd",
		Cover:    "https://images.unsplash.com/photo-1571330735066-03aaa9429d89?w=400",
		Audio:    "demo3.mp3",
		Duration: "3:20",
		Lyrics: "I been tryna call\nI been on my own for long enough\nMaybe you can show me how to love, maybe\n\n" +
			"I'm going through withdrawals\nYou don't even have to do too much\nYou can turn me on with just a touch, baby\n\n" +
			"I look around and Sin City's cold and empty\nNo one's around to judge me\nI can't see clearly when you're gone...",
	},
	{
		ID:       4,
		Title:    "Dance Monkey",
		Artist:   "Tones and I",
		Cover:    "https://images.unsplash.com/photo-1508700929628-666bc8bd84ea?w=400",
		Audio:    "demo4.mp3",
		Duration: "3:29",
		Lyrics: "They say, oh my god I see the way you shine\nTake your hand, my dear, and place them both in mine\n" +
			"You know you stopped me dead while I was passing by\nAnd now I beg to see you dance just one more time\n\n" +
			"Ooh I see you, see you, see you every time\nAnd oh my I, I, I like your style\n" +
			"You, you make me, make me, make me wanna cry\nAnd now I beg to see you dance just one more time...",
	},
	{
		ID:       5,
		Title:    "Bad Guy",
		Artist:   "Billie Eilish",
		Cover:    "https://images.unsplash.com/photo-1516280440614-37939bbacd81?w=400",
		Audio:    "demo5.mp3",
		Duration: "3:14",
		Lyrics: "White shirt now red, my bloody nose\nSleeping, you're on your tippy toes\n" +
			"Creeping around like no one knows\nThink you're so criminal\n\n" +
			"Bruises on both my knees for you\nDon't say thank you or please\n" +
			"I do what I want when I'm wanting to\nMy soul? So cynical\n\n" +
			"So you're a tough guy\nLike it really rough guy\nJust can't get enough guy\nChest always so puffed guy\n" +
			"I'm that bad type\nMake your mama sad type\nMake your girlfriend mad tight\nMight seduce your dad type...",
	},
}
