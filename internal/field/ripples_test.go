package field

import (
	"testing"

	"github.com/san-kum/trailfx/internal/fx"
	"github.com/san-kum/trailfx/internal/sched"
)

func newRipples(decay float64) (*sched.Scheduler, *Ripples) {
	s := sched.New()
	return s, NewRipples(s, RippleConfig{Decay: decay, Period: frame})
}

func TestRipples_NoCap(t *testing.T) {
	_, f := newRipples(0.04)
	for i := 0; i < 200; i++ {
		f.Insert(fx.NewRipple(fx.V(float64(i), 0)))
	}
	if f.Len() != 200 {
		t.Errorf("Len() = %d, want 200", f.Len())
	}
}

func TestRipples_LifetimeInTicks(t *testing.T) {
	s, f := newRipples(0.04)
	f.Insert(fx.NewRipple(fx.V(100, 100)))

	s.Advance(24 * frame)
	items := f.Items()
	if len(items) != 1 {
		t.Fatalf("ripple gone early after 24 ticks")
	}
	if items[0].Pos != fx.V(100, 100) {
		t.Errorf("ripple moved to %v", items[0].Pos)
	}

	s.Advance(frame)
	if f.Len() != 0 {
		t.Errorf("ripple alive after 25 ticks: %+v", f.Items())
	}
	if f.Active() {
		t.Error("timer still running after drain")
	}
}

func TestRipples_ReapAtExactDecay(t *testing.T) {
	_, f := newRipples(0.04)
	r := fx.NewRipple(fx.V(0, 0))
	r.Life = 0.04
	f.Insert(r)
	f.Tick(0.04)
	if f.Len() != 0 {
		t.Error("ripple with life == decay survived a tick")
	}
}

func TestRipples_IndependentOfParticles(t *testing.T) {
	s := sched.New()
	parts := NewParticles(s, ParticleConfig{Max: 16, Decay: 0.025, Period: frame})
	rips := NewRipples(s, RippleConfig{Decay: 0.04, Period: frame})

	rips.Insert(fx.NewRipple(fx.V(0, 0)))
	if parts.Active() {
		t.Error("ripple insert started the particle timer")
	}
	if s.Active() != 1 {
		t.Errorf("Active() = %d, want 1", s.Active())
	}

	parts.Insert(fx.NewParticle(fx.V(0, 0), fx.Vec2{}))
	s.Advance(25 * frame)
	if rips.Active() || rips.Len() != 0 {
		t.Error("ripples should have drained at 25 ticks")
	}
	if !parts.Active() || parts.Len() != 1 {
		t.Error("particles should still be alive at 25 ticks")
	}
}

func TestRipples_Close(t *testing.T) {
	s, f := newRipples(0.04)
	f.Insert(fx.NewRipple(fx.V(0, 0)))
	f.Close()
	f.Close()
	if s.Active() != 0 {
		t.Errorf("Active() = %d after Close", s.Active())
	}
}
