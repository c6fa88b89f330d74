package schedule

import (
	"sync"
	"time"
)

// Serialize wraps s so that every callback runs while holding mu. A callback
// whose task was stopped while it waited for mu is dropped.
//
// Tasks returned by the wrapper must be stopped with mu held.
func Serialize(s Scheduler, mu sync.Locker) Scheduler {
	return &serialized{inner: s, mu: mu}
}

type serialized struct {
	inner Scheduler
	mu    sync.Locker
}

type guardedTask struct {
	inner   Task
	stopped bool
	oneShot bool
	fired   bool
}

func (s *serialized) AfterFunc(d time.Duration, f func()) Task {
	t := &guardedTask{oneShot: true}
	t.inner = s.inner.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if t.stopped || t.fired {
			return
		}
		t.fired = true
		f()
	})
	return t
}

func (s *serialized) Every(period time.Duration, f func()) Task {
	t := &guardedTask{}
	t.inner = s.inner.Every(period, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if t.stopped {
			return
		}
		f()
	})
	return t
}

func (t *guardedTask) Stop() bool {
	if t.stopped || (t.oneShot && t.fired) {
		return false
	}
	t.stopped = true
	t.inner.Stop()
	return true
}
