package schedule

import (
	"sync"
	"time"
)

// Manual is a Scheduler driven by Advance instead of wall time. Due callbacks
// fire synchronously on the caller's goroutine, in due order, ties broken by
// scheduling order. Callbacks may schedule or stop tasks.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	m      *Manual
	due    time.Time
	period time.Duration
	seq    uint64
	f      func()
	active bool
}

// NewManual creates a manual clock starting at the zero time
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the manual clock's current time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of active tasks
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Task {
	return m.add(d, 0, f)
}

func (m *Manual) Every(period time.Duration, f func()) Task {
	if period <= 0 {
		panic("schedule: non-positive period")
	}
	return m.add(period, period, f)
}

func (m *Manual) add(d, period time.Duration, f func()) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{
		m:      m,
		due:    m.now.Add(d),
		period: period,
		seq:    m.seq,
		f:      f,
		active: true,
	}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d, firing every callback that falls due
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.due
		if next.period > 0 {
			next.due = next.due.Add(next.period)
		} else {
			m.removeLocked(next)
		}
		f := next.f
		m.mu.Unlock()

		f()
	}
}

func (m *Manual) nextDueLocked(target time.Time) *manualTask {
	var next *manualTask
	for _, t := range m.tasks {
		if t.due.After(target) {
			continue
		}
		if next == nil || t.due.Before(next.due) || (t.due.Equal(next.due) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (m *Manual) removeLocked(task *manualTask) {
	task.active = false
	for i, t := range m.tasks {
		if t == task {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}

func (t *manualTask) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if !t.active {
		return false
	}
	t.m.removeLocked(t)
	return true
}
