package field

import (
	"time"

	"github.com/san-kum/trailfx/internal/fx"
	"github.com/san-kum/trailfx/internal/sched"
)

type ParticleConfig struct {
	Max    int
	Decay  float64
	Period time.Duration
}

type Particles struct {
	pacer
	cfg   ParticleConfig
	items []fx.Particle
}

func NewParticles(s *sched.Scheduler, cfg ParticleConfig) *Particles {
	if cfg.Max < 1 {
		cfg.Max = 1
	}
	f := &Particles{cfg: cfg, items: make([]fx.Particle, 0, cfg.Max)}
	f.timer = s.Every("particles", cfg.Period, f.tick)
	return f
}

// Insert appends p and drops the oldest entries beyond the cap.
func (f *Particles) Insert(p fx.Particle) {
	if !fx.Alive(p.Life) {
		return
	}
	f.items = append(f.items, p)
	if over := len(f.items) - f.cfg.Max; over > 0 {
		n := copy(f.items, f.items[over:])
		f.items = f.items[:n]
	}
	f.wake()
}

// Tick advances every particle by its velocity, applies decay, and removes
// the dead ones.
func (f *Particles) Tick(decay float64) {
	next := make([]fx.Particle, 0, len(f.items))
	for _, p := range f.items {
		p = p.Step(decay)
		if fx.Alive(p.Life) {
			next = append(next, p)
		}
	}
	f.items = next
}

func (f *Particles) tick() {
	f.Tick(f.cfg.Decay)
	f.settle(len(f.items))
}

func (f *Particles) Len() int { return len(f.items) }

// Items returns a copy of the live particles, oldest first.
func (f *Particles) Items() []fx.Particle {
	return append([]fx.Particle(nil), f.items...)
}
