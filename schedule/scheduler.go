// Package schedule provides the timer abstraction the player runs on: one-shot
// and repeating tasks that can be cancelled, a wall-clock implementation, and a
// manual clock for deterministic tests.
package schedule

import (
	"sync"
	"time"
)

// Task is a scheduled callback that can be cancelled
type Task interface {
	// Stop cancels the task. It reports whether the task was still pending
	// (one-shot) or active (repeating).
	Stop() bool
}

// Scheduler runs callbacks after a delay or on a fixed period
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
	Every(period time.Duration, f func()) Task
}

// Realtime returns a Scheduler backed by the runtime timers. Callbacks run on
// their own goroutines.
func Realtime() Scheduler {
	return realtime{}
}

type realtime struct{}

func (realtime) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

func (realtime) Every(period time.Duration, f func()) Task {
	t := &tickerTask{
		ticker: time.NewTicker(period),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-t.ticker.C:
				f()
			case <-t.done:
				return
			}
		}
	}()
	return t
}

type tickerTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTask) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
		stopped = true
	})
	return stopped
}
