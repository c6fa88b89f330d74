package player

// Player defines the capability set every media player provides.
// Implementations are checked at compile time:
//
//	var _ Player = (*Simulated)(nil)
type Player interface {
	// Play marks playback as running
	Play()

	// Pause halts playback
	Pause()

	// Stop halts playback and rewinds
	Stop()

	// SetVolume sets the output level, clamped to [0, 1]
	SetVolume(volume float64)

	// Volume returns the current output level
	Volume() float64

	// IsPlaying returns whether playback is running
	IsPlaying() bool
}

// State is the progress timer state of a Simulated player
type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// TickFunc receives progress updates: percent of the ceiling, elapsed
// simulated seconds and the ceiling itself.
type TickFunc func(percent, elapsed, ceiling float64)
