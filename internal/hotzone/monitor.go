// Package hotzone tracks whether the pointer is over a host-supplied region.
//
// The region is never cached. Its bounds are queried on every poll, so a zone
// that moves, resizes or unmounts is picked up on the next poll without any
// notification from the host.
package hotzone

import (
	"time"

	"github.com/san-kum/trailfx/internal/fx"
	"github.com/san-kum/trailfx/internal/sched"
)

// Source supplies the current bounds of a hot zone. ok is false while the
// zone is not mounted.
type Source interface {
	Bounds() (r fx.Rect, ok bool)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func() (fx.Rect, bool)

func (f SourceFunc) Bounds() (fx.Rect, bool) { return f() }

// Static returns a Source that always reports r.
func Static(r fx.Rect) Source {
	return SourceFunc(func() (fx.Rect, bool) { return r, true })
}

type Config struct {
	Poll   time.Duration
	Margin float64
}

type Monitor struct {
	cfg      Config
	src      Source
	pos      func() fx.Vec2
	timer    *sched.Timer
	engaged  bool
	onChange func(bool)
	closed   bool
}

// New returns a monitor with no zone attached. pos is read on every poll.
func New(s *sched.Scheduler, cfg Config, pos func() fx.Vec2) *Monitor {
	m := &Monitor{cfg: cfg, pos: pos}
	m.timer = s.Every("hotzone", cfg.Poll, m.poll)
	return m
}

// OnChange registers fn to run whenever a poll flips the engaged flag.
func (m *Monitor) OnChange(fn func(engaged bool)) { m.onChange = fn }

// Attach mounts src and starts polling. Engagement is not evaluated until the
// first poll fires.
func (m *Monitor) Attach(src Source) {
	if m.closed {
		return
	}
	m.src = src
	if src == nil {
		m.Detach()
		return
	}
	m.timer.Start()
}

// Detach unmounts the zone, stops polling and clears the flag.
func (m *Monitor) Detach() {
	m.src = nil
	m.timer.Stop()
	m.set(false)
}

// Poll evaluates the zone against the current pointer position right away.
func (m *Monitor) Poll() bool {
	m.set(m.hit())
	return m.engaged
}

func (m *Monitor) poll() { m.Poll() }

func (m *Monitor) hit() bool {
	if m.src == nil || m.pos == nil {
		return false
	}
	r, ok := m.src.Bounds()
	if !ok {
		return false
	}
	if m.cfg.Margin != 0 {
		r = r.Inflate(m.cfg.Margin)
	}
	return r.Contains(m.pos())
}

func (m *Monitor) set(v bool) {
	if v == m.engaged {
		return
	}
	m.engaged = v
	if m.onChange != nil {
		m.onChange(v)
	}
}

// Engaged returns the result of the last poll.
func (m *Monitor) Engaged() bool { return m.engaged }

// Attached reports whether a zone is mounted.
func (m *Monitor) Attached() bool { return m.src != nil }

func (m *Monitor) Active() bool { return m.timer.Active() }

// Close detaches the zone and refuses later attaches.
func (m *Monitor) Close() {
	if m.closed {
		return
	}
	m.Detach()
	m.closed = true
}
