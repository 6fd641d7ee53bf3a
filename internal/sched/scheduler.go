package sched

import "time"

const minPeriod = time.Millisecond

type Scheduler struct {
	now     time.Duration
	timers  []*Timer
	seq     int
	running bool
}

func New() *Scheduler {
	return &Scheduler{timers: make([]*Timer, 0, 4)}
}

// Now returns the virtual time reached by the last Advance.
func (s *Scheduler) Now() time.Duration { return s.now }

// Every registers a stopped timer that calls fn once per period while running.
func (s *Scheduler) Every(name string, period time.Duration, fn func()) *Timer {
	if period < minPeriod {
		period = minPeriod
	}
	t := &Timer{
		s:      s,
		name:   name,
		period: period,
		fn:     fn,
		seq:    s.seq,
	}
	s.seq++
	s.timers = append(s.timers, t)
	return t
}

// Advance moves virtual time forward by d and fires every timer that falls due.
// It returns the number of callbacks run.
func (s *Scheduler) Advance(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return s.AdvanceTo(s.now + d)
}

// AdvanceTo moves virtual time to t. Times in the past are ignored.
func (s *Scheduler) AdvanceTo(t time.Duration) int {
	if s.running || t < s.now {
		return 0
	}
	s.running = true
	defer func() { s.running = false }()

	fired := 0
	for {
		tm := s.nextDue(t)
		if tm == nil {
			break
		}
		s.now = tm.next
		tm.next += tm.period
		tm.fired++
		fired++
		tm.fn()
	}
	s.now = t
	return fired
}

func (s *Scheduler) nextDue(limit time.Duration) *Timer {
	var best *Timer
	for _, t := range s.timers {
		if !t.active || t.next > limit {
			continue
		}
		if best == nil || t.next < best.next || (t.next == best.next && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// Active returns the number of running timers.
func (s *Scheduler) Active() int {
	n := 0
	for _, t := range s.timers {
		if t.active {
			n++
		}
	}
	return n
}

// Close stops every timer. It is safe to call more than once.
func (s *Scheduler) Close() {
	for _, t := range s.timers {
		t.Stop()
	}
}
