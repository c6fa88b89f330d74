package player

import (
	"time"

	"github.com/samber/lo"
	"github.com/yhkl-dev/trackdeck/schedule"
)

var _ Player = (*Simulated)(nil)

// DefaultCeiling is the simulated track length in seconds
const DefaultCeiling = 30

// Simulated is a player with no audio output. Progress is a counter advanced
// by one simulated second on every tick of a repeating task.
//
// Simulated is not safe for concurrent use. Callers serialize access,
// typically by handing it a scheduler built with schedule.Serialize.
type Simulated struct {
	sched  schedule.Scheduler
	period time.Duration

	playing bool
	volume  float64

	state      State
	elapsed    int
	ceiling    int
	onTick     TickFunc
	onTrackEnd func()
	task       schedule.Task
}

// NewSimulated creates a simulated player whose progress advances once per period
func NewSimulated(sched schedule.Scheduler, period time.Duration, volume float64) *Simulated {
	return &Simulated{
		sched:   sched,
		period:  period,
		volume:  lo.Clamp(volume, 0, 1),
		state:   Idle,
		ceiling: DefaultCeiling,
	}
}

func (s *Simulated) Play() {
	s.playing = true
}

// Pause halts playback and discards progress; a later StartProgress begins at 0
func (s *Simulated) Pause() {
	s.playing = false
	s.StopProgress()
}

func (s *Simulated) Stop() {
	s.playing = false
	s.StopProgress()
}

func (s *Simulated) SetVolume(volume float64) {
	s.volume = lo.Clamp(volume, 0, 1)
}

func (s *Simulated) Volume() float64 {
	return s.volume
}

func (s *Simulated) IsPlaying() bool {
	return s.playing
}

// OnTrackEnd registers the callback invoked once when progress reaches the ceiling
func (s *Simulated) OnTrackEnd(f func()) {
	s.onTrackEnd = f
}

// StartProgress cancels any running progress task and starts a new one from 0
func (s *Simulated) StartProgress(onTick TickFunc, ceiling int) {
	s.StopProgress()
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	s.ceiling = ceiling
	s.onTick = onTick
	s.state = Running
	s.task = s.sched.Every(s.period, s.tick)
}

// StopProgress cancels the progress task from any state and discards the counter
func (s *Simulated) StopProgress() {
	s.cancelTask()
	s.state = Idle
	s.elapsed = 0
}

// SetProgress converts a percentage of the ceiling to elapsed seconds. The
// running counter is not repositioned.
func (s *Simulated) SetProgress(percent float64, ceiling int) float64 {
	return percent / 100 * float64(ceiling)
}

// State returns the progress timer state
func (s *Simulated) State() State {
	return s.state
}

// Ceiling returns the length in seconds the progress timer counts to
func (s *Simulated) Ceiling() int {
	return s.ceiling
}

// Elapsed returns the simulated seconds counted since StartProgress
func (s *Simulated) Elapsed() int {
	return s.elapsed
}

func (s *Simulated) tick() {
	if s.state != Running {
		return
	}
	if !s.playing {
		s.StopProgress()
		return
	}

	s.elapsed++
	percent := float64(s.elapsed) / float64(s.ceiling) * 100
	if s.onTick != nil {
		s.onTick(percent, float64(s.elapsed), float64(s.ceiling))
	}

	// onTick may have stopped or restarted progress
	if s.state == Running && s.elapsed >= s.ceiling {
		s.cancelTask()
		s.state = Stopped
		if s.onTrackEnd != nil {
			s.onTrackEnd()
		}
	}
}

func (s *Simulated) cancelTask() {
	if s.task != nil {
		s.task.Stop()
		s.task = nil
	}
}
