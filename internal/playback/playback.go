// Package playback runs a session headlessly over a recorded or synthesized
// input trace on a virtual clock.
package playback

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/trailfx/internal/config"
	"github.com/san-kum/trailfx/internal/fx"
	"github.com/san-kum/trailfx/internal/hotzone"
	"github.com/san-kum/trailfx/internal/metrics"
	"github.com/san-kum/trailfx/internal/session"
	"github.com/san-kum/trailfx/internal/trace"
)

// DefaultTail is long enough for a fresh particle and ripple to fade out at
// the reference decay rates.
const DefaultTail = time.Second

type Config struct {
	Session *config.Config
	// Frame is the virtual frame step. Zero means the session's frame period.
	Frame time.Duration
	// Tail keeps the run going after the last event so effects can drain.
	// Zero means DefaultTail and a negative value means none.
	Tail time.Duration
}

type Result struct {
	Frames    int
	Duration  time.Duration
	Particles []float64
	Ripples   []float64
	Path      []fx.Vec2
	Metrics   map[string]float64
	Stats     session.Stats
	Final     fx.Snapshot
}

type Playback struct {
	cfg       Config
	metrics   []metrics.Metric
	observers []session.Observer
	log       *log.Logger
}

func New(cfg Config) *Playback {
	if cfg.Session == nil {
		cfg.Session = config.DefaultConfig()
	}
	if cfg.Frame <= 0 {
		cfg.Frame = cfg.Session.FramePeriod()
	}
	switch {
	case cfg.Tail == 0:
		cfg.Tail = DefaultTail
	case cfg.Tail < 0:
		cfg.Tail = 0
	}
	return &Playback{cfg: cfg, log: log.New(io.Discard)}
}

func (p *Playback) AddMetric(m metrics.Metric)     { p.metrics = append(p.metrics, m) }
func (p *Playback) AddObserver(o session.Observer) { p.observers = append(p.observers, o) }
func (p *Playback) SetLogger(l *log.Logger)        { p.log = l }
func (p *Playback) Config() Config                 { return p.cfg }

// recorder collects the per-frame series and feeds the metrics.
type recorder struct {
	res     *Result
	metrics []metrics.Metric
}

func (r *recorder) OnFrame(snap fx.Snapshot) {
	r.res.Frames++
	r.res.Particles = append(r.res.Particles, float64(len(snap.Particles)))
	r.res.Ripples = append(r.res.Ripples, float64(len(snap.Ripples)))
	r.res.Path = append(r.res.Path, snap.Cursor)
	for _, m := range r.metrics {
		m.Observe(snap)
	}
}

// Run replays events frame by frame. Events due at or before a frame are
// applied before that frame advances, the way a live host delivers input
// between frames.
func (p *Playback) Run(ctx context.Context, events []trace.Event) (*Result, error) {
	if len(events) == 0 {
		return nil, fx.ErrEmptyTrace
	}

	last := trace.Duration(events)
	if last < 0 || last > trace.MaxTime || p.cfg.Tail > trace.MaxTime {
		return nil, fmt.Errorf("%w: trace spans %v plus %v tail, limit %v", fx.ErrMalformedTrace, last, p.cfg.Tail, trace.MaxTime)
	}
	end := last + p.cfg.Tail
	steps := int(end/p.cfg.Frame) + 1
	res := &Result{
		Particles: make([]float64, 0, steps),
		Ripples:   make([]float64, 0, steps),
		Path:      make([]fx.Vec2, 0, steps),
		Metrics:   make(map[string]float64),
	}

	for _, m := range p.metrics {
		m.Reset()
	}

	s := session.New(p.cfg.Session, session.WithLogger(p.log))
	defer s.Close()
	s.AddObserver(&recorder{res: res, metrics: p.metrics})
	for _, o := range p.observers {
		s.AddObserver(o)
	}

	next := 0
	for t := p.cfg.Frame; ; t += p.cfg.Frame {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		for next < len(events) && events[next].T <= t {
			apply(s, events[next])
			next++
		}
		s.Frame(t)
		if t >= end {
			break
		}
	}

	res.Duration = s.Elapsed()
	res.Stats = s.Stats()
	res.Final = s.Snapshot()
	for _, m := range p.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	p.log.Debug("playback done", "frames", res.Frames, "events", len(events), "duration", res.Duration)
	return res, nil
}

func apply(s *session.Session, ev trace.Event) {
	switch ev.Kind {
	case trace.Move:
		s.Move(ev.X, ev.Y)
	case trace.Click:
		s.Click(ev.X, ev.Y)
	case trace.Zone:
		s.Attach(hotzone.Static(ev.Rect()))
	case trace.Unzone:
		s.Detach()
	}
}
