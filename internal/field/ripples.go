package field

import (
	"time"

	"github.com/san-kum/trailfx/internal/fx"
	"github.com/san-kum/trailfx/internal/sched"
)

type RippleConfig struct {
	Decay  float64
	Period time.Duration
}

type Ripples struct {
	pacer
	cfg   RippleConfig
	items []fx.Ripple
}

func NewRipples(s *sched.Scheduler, cfg RippleConfig) *Ripples {
	f := &Ripples{cfg: cfg}
	f.timer = s.Every("ripples", cfg.Period, f.tick)
	return f
}

func (f *Ripples) Insert(r fx.Ripple) {
	if !fx.Alive(r.Life) {
		return
	}
	f.items = append(f.items, r)
	f.wake()
}

// Tick decays every ripple and removes the dead ones. Positions never change.
func (f *Ripples) Tick(decay float64) {
	next := make([]fx.Ripple, 0, len(f.items))
	for _, r := range f.items {
		r = r.Step(decay)
		if fx.Alive(r.Life) {
			next = append(next, r)
		}
	}
	f.items = next
}

func (f *Ripples) tick() {
	f.Tick(f.cfg.Decay)
	f.settle(len(f.items))
}

func (f *Ripples) Len() int { return len(f.items) }

func (f *Ripples) Items() []fx.Ripple {
	return append([]fx.Ripple(nil), f.items...)
}
