package engine

import "time"

// Scheduler abstracts the wall-clock timer driving automatic ticks so tests
// can advance time by hand.
type Scheduler interface {
	// Schedule runs fn once after d and returns a cancel function.
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules on real wall-clock timers.
type TimerScheduler struct{}

// Schedule implements Scheduler with time.AfterFunc.
func (TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// ManualScheduler collects scheduled callbacks and fires them only when
// told to. Intended for tests.
type ManualScheduler struct {
	pending []*manualEntry
}

type manualEntry struct {
	fn        func()
	cancelled bool
}

// Schedule implements Scheduler by queueing the callback. The cancel
// closure marks its own entry, so it stays valid after Fire swaps the
// pending list out from under it.
func (m *ManualScheduler) Schedule(d time.Duration, fn func()) func() {
	entry := &manualEntry{fn: fn}
	m.pending = append(m.pending, entry)
	return func() { entry.cancelled = true }
}

// Fire runs and clears every pending callback. Callbacks scheduled during
// Fire (a tick rescheduling itself) land in the next batch.
func (m *ManualScheduler) Fire() {
	pending := m.pending
	m.pending = nil
	for _, entry := range pending {
		if !entry.cancelled {
			entry.fn()
		}
	}
}

// Pending reports how many live callbacks are queued.
func (m *ManualScheduler) Pending() int {
	n := 0
	for _, entry := range m.pending {
		if !entry.cancelled {
			n++
		}
	}
	return n
}
