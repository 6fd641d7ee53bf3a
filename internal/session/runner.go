package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/san-kum/trailfx/internal/fx"
	"github.com/san-kum/trailfx/internal/hotzone"
)

type EventKind int

const (
	EventMove EventKind = iota
	EventClick
	EventAttach
	EventDetach
)

type Event struct {
	Kind EventKind
	Pos  fx.Vec2
	Zone hotzone.Source
}

// Runner owns a Session on its own goroutine. Input arrives on a buffered
// channel and the latest frame is published for lock-free reads.
type Runner struct {
	s       *Session
	events  chan Event
	period  time.Duration
	snap    atomic.Pointer[fx.Snapshot]
	dropped atomic.Uint64
	started atomic.Bool
	done    chan struct{}
}

func NewRunner(s *Session, buffer int) *Runner {
	if buffer < 1 {
		buffer = 1
	}
	r := &Runner{
		s:      s,
		events: make(chan Event, buffer),
		period: s.Config().FramePeriod(),
		done:   make(chan struct{}),
	}
	r.publish()
	return r
}

// Move queues a pointer move. Moves are dropped rather than blocking when the
// buffer is full; it reports whether the event was queued.
func (r *Runner) Move(x, y float64) bool {
	if r.stopped() {
		return false
	}
	select {
	case r.events <- Event{Kind: EventMove, Pos: fx.V(x, y)}:
		return true
	case <-r.done:
		return false
	default:
		r.dropped.Add(1)
		return false
	}
}

// Click queues a click, waiting for buffer space until the runner stops.
func (r *Runner) Click(x, y float64) bool {
	return r.send(Event{Kind: EventClick, Pos: fx.V(x, y)})
}

func (r *Runner) Attach(src hotzone.Source) bool {
	return r.send(Event{Kind: EventAttach, Zone: src})
}

func (r *Runner) Detach() bool {
	return r.send(Event{Kind: EventDetach})
}

func (r *Runner) send(ev Event) bool {
	if r.stopped() {
		return false
	}
	select {
	case r.events <- ev:
		return true
	case <-r.done:
		return false
	}
}

// stopped reports whether Run has returned. Senders check it first so a
// stopped runner never takes an event into spare buffer space.
func (r *Runner) stopped() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Snapshot returns the most recently published frame.
func (r *Runner) Snapshot() fx.Snapshot { return *r.snap.Load() }

// Dropped returns how many moves were discarded on a full buffer.
func (r *Runner) Dropped() uint64 { return r.dropped.Load() }

// Done is closed once Run has returned.
func (r *Runner) Done() <-chan struct{} { return r.done }

// Run drives the session until ctx is cancelled, then closes it. A runner
// runs once; later calls return fx.ErrClosed.
func (r *Runner) Run(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return fx.ErrClosed
	}
	defer close(r.done)
	defer func() {
		r.s.Close()
		r.publish()
	}()

	ticker := time.NewTicker(r.period)
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-r.events:
			r.apply(ev)
		case <-ticker.C:
			r.s.Frame(time.Since(start))
			r.publish()
		}
	}
}

func (r *Runner) apply(ev Event) {
	switch ev.Kind {
	case EventMove:
		r.s.Move(ev.Pos.X, ev.Pos.Y)
	case EventClick:
		r.s.Click(ev.Pos.X, ev.Pos.Y)
	case EventAttach:
		r.s.Attach(ev.Zone)
	case EventDetach:
		r.s.Detach()
	}
}

func (r *Runner) publish() {
	snap := r.s.Snapshot()
	r.snap.Store(&snap)
}
