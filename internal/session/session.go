// Package session wires the pointer, emission policy, fields and hot-zone
// monitor into one per-viewport effect instance.
//
// A Session is single-threaded: every event handler and tick runs to
// completion before the next one starts, and none of its methods may be
// called concurrently. Hosts that need a goroutine boundary use Runner.
package session

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/trailfx/internal/config"
	"github.com/san-kum/trailfx/internal/emit"
	"github.com/san-kum/trailfx/internal/field"
	"github.com/san-kum/trailfx/internal/fx"
	"github.com/san-kum/trailfx/internal/hotzone"
	"github.com/san-kum/trailfx/internal/pointer"
	"github.com/san-kum/trailfx/internal/sched"
)

// Observer sees every frame after the scheduler and spring have advanced.
type Observer interface {
	OnFrame(snap fx.Snapshot)
}

type Option func(*Session)

func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRand replaces the emission rng, which is otherwise seeded from
// Config.Seed.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithZone attaches a hot zone as soon as the session is built.
func WithZone(src hotzone.Source) Option {
	return func(s *Session) { s.initial = src }
}

type Session struct {
	id      fx.ID
	cfg     *config.Config
	log     *log.Logger
	rng     *rand.Rand
	initial hotzone.Source

	sched     *sched.Scheduler
	ptr       *pointer.Pointer
	policy    *emit.Policy
	particles *field.Particles
	ripples   *field.Ripples
	zone      *hotzone.Monitor
	observers []Observer

	last   time.Duration
	frames uint64
	clicks uint64
	closed bool
}

// New builds a session from a validated config. A nil config means the
// reference defaults.
func New(cfg *config.Config, opts ...Option) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Session{
		id:    fx.NewID(),
		cfg:   cfg.Clone(),
		log:   log.New(io.Discard),
		sched: sched.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(cfg.Seed))
	}

	s.ptr = pointer.New(pointer.Config{
		Stiffness:       cfg.Pointer.Stiffness,
		Damping:         cfg.Pointer.Damping,
		Mass:            cfg.Pointer.Mass,
		SnapOnFirstMove: cfg.Pointer.SnapOnFirstMove,
	})
	s.policy = emit.New(emit.Config{
		Probability: cfg.Emission.Probability,
		Speed:       cfg.Emission.Speed,
	}, s.rng)
	s.particles = field.NewParticles(s.sched, field.ParticleConfig{
		Max:    cfg.Particles.Max,
		Decay:  cfg.Particles.Decay,
		Period: cfg.Particles.Period,
	})
	s.ripples = field.NewRipples(s.sched, field.RippleConfig{
		Decay:  cfg.Ripples.Decay,
		Period: cfg.Ripples.Period,
	})
	s.zone = hotzone.New(s.sched, hotzone.Config{
		Poll:   cfg.HotZone.Poll,
		Margin: cfg.HotZone.Margin,
	}, s.ptr.Raw)
	s.zone.OnChange(func(engaged bool) {
		s.log.Debug("engaged changed", "engaged", engaged, "pos", s.ptr.Raw())
	})

	s.log.Debug("session open", "id", s.id, "seed", cfg.Seed)
	if s.initial != nil {
		s.Attach(s.initial)
	}
	return s
}

func (s *Session) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Move records a pointer-move event at viewport coordinates (x, y) and may
// spawn a trail particle there.
func (s *Session) Move(x, y float64) {
	if s.closed {
		return
	}
	at := fx.V(x, y)
	s.ptr.Move(at)
	if p, ok := s.policy.Spawn(at); ok {
		s.particles.Insert(p)
	}
}

// Click starts a ripple at (x, y).
func (s *Session) Click(x, y float64) {
	if s.closed {
		return
	}
	s.clicks++
	s.ripples.Insert(fx.NewRipple(fx.V(x, y)))
}

// Attach mounts a hot zone. Engagement is first evaluated on the next poll.
func (s *Session) Attach(src hotzone.Source) {
	if s.closed {
		return
	}
	s.zone.Attach(src)
	s.log.Debug("zone attached", "mounted", src != nil)
}

func (s *Session) Detach() {
	if s.closed {
		return
	}
	s.zone.Detach()
	s.log.Debug("zone detached")
}

// Frame advances the session to virtual time now: due timers fire in order,
// then the cursor spring integrates over the time since the previous frame.
// A now at or before the previous frame is ignored.
func (s *Session) Frame(now time.Duration) {
	if s.closed || now <= s.last {
		return
	}
	s.sched.AdvanceTo(now)
	s.ptr.Advance(now - s.last)
	s.last = now
	s.frames++

	if len(s.observers) > 0 {
		snap := s.Snapshot()
		for _, o := range s.observers {
			o.OnFrame(snap)
		}
	}
}

// Advance is Frame relative to the last frame.
func (s *Session) Advance(d time.Duration) { s.Frame(s.last + d) }

// Snapshot returns an independent copy of the render-relevant state.
func (s *Session) Snapshot() fx.Snapshot {
	return fx.Snapshot{
		Cursor:    s.ptr.Smoothed(),
		Raw:       s.ptr.Raw(),
		Engaged:   s.zone.Engaged(),
		Particles: s.particles.Items(),
		Ripples:   s.ripples.Items(),
		Elapsed:   s.last,
	}
}

func (s *Session) Engaged() bool { return s.zone.Engaged() }

func (s *Session) Elapsed() time.Duration { return s.last }

func (s *Session) ID() fx.ID { return s.id }

func (s *Session) Config() *config.Config { return s.cfg }

// Scheduler exposes the session clock for hosts that drive it directly.
func (s *Session) Scheduler() *sched.Scheduler { return s.sched }

// Stats is a summary of what the session has processed so far.
type Stats struct {
	Frames  uint64
	Moves   uint64
	Spawned uint64
	Clicks  uint64
}

func (s *Session) Stats() Stats {
	seen, spawned := s.policy.Stats()
	return Stats{Frames: s.frames, Moves: seen, Spawned: spawned, Clicks: s.clicks}
}

// Close stops every periodic timer. Later events are ignored. It is safe to
// call more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.particles.Close()
	s.ripples.Close()
	s.zone.Close()
	s.sched.Close()
	s.closed = true
	s.log.Debug("session closed", "id", s.id, "frames", s.frames)
}

func (s *Session) Closed() bool { return s.closed }
