package sched

import "time"

type Timer struct {
	s      *Scheduler
	name   string
	period time.Duration
	fn     func()
	next   time.Duration
	seq    int
	active bool
	fired  uint64
}

// Start schedules the first tick one period from now. It reports whether the
// timer was stopped before the call; starting a running timer changes nothing.
func (t *Timer) Start() bool {
	if t.active {
		return false
	}
	t.active = true
	t.next = t.s.now + t.period
	return true
}

// Stop cancels future ticks and reports whether the timer was running.
func (t *Timer) Stop() bool {
	if !t.active {
		return false
	}
	t.active = false
	return true
}

func (t *Timer) Active() bool          { return t.active }
func (t *Timer) Name() string          { return t.name }
func (t *Timer) Period() time.Duration { return t.period }

// Fired returns how many times the callback has run over the timer's life.
func (t *Timer) Fired() uint64 { return t.fired }
