package pointer

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/trailfx/internal/fx"
)

var reference = Config{Stiffness: 700, Damping: 25, Mass: 1}

const frame = 16 * time.Millisecond

func TestCoefficients(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantOmega float64
		wantZeta  float64
	}{
		{"reference is floored to critical", reference, math.Sqrt(700), 1},
		{"overdamped kept", Config{Stiffness: 100, Damping: 40, Mass: 1}, 10, 2},
		{"zero mass treated as one", Config{Stiffness: 400, Damping: 80}, 20, 2},
		{"zero stiffness", Config{Stiffness: 0, Damping: 10, Mass: 1}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			omega, zeta := tt.cfg.Coefficients()
			if math.Abs(omega-tt.wantOmega) > 1e-9 {
				t.Errorf("omega = %v, want %v", omega, tt.wantOmega)
			}
			if math.Abs(zeta-tt.wantZeta) > 1e-9 {
				t.Errorf("zeta = %v, want %v", zeta, tt.wantZeta)
			}
		})
	}
}

func TestDampingBelowCriticalIsClamped(t *testing.T) {
	ref := Config{Stiffness: 700, Damping: 25, Mass: 1}
	crit := ref.CriticalDamping()
	if math.Abs(crit-2*math.Sqrt(700)) > 1e-9 {
		t.Fatalf("CriticalDamping() = %v", crit)
	}
	if ref.Damping >= crit {
		t.Fatalf("reference damping %v not below critical %v", ref.Damping, crit)
	}

	_, want := ref.Coefficients()
	for _, d := range []float64{0, 10, 25, crit} {
		c := ref
		c.Damping = d
		if _, zeta := c.Coefficients(); zeta != want {
			t.Errorf("damping %v: zeta = %v, want %v", d, zeta, want)
		}
	}

	over := ref
	over.Damping = 2 * crit
	if _, zeta := over.Coefficients(); math.Abs(zeta-2) > 1e-9 {
		t.Errorf("damping 2x critical: zeta = %v, want 2", zeta)
	}
}

func TestPointer_DefaultsToOrigin(t *testing.T) {
	p := New(reference)
	if p.Smoothed() != (fx.Vec2{}) || p.Raw() != (fx.Vec2{}) {
		t.Errorf("expected origin, got raw=%v smoothed=%v", p.Raw(), p.Smoothed())
	}
	if p.Moved() {
		t.Error("Moved() true before input")
	}

	p.Advance(frame)
	if p.Smoothed() != (fx.Vec2{}) {
		t.Errorf("cursor drifted without input: %v", p.Smoothed())
	}
}

func TestPointer_ConvergesWithoutOvershoot(t *testing.T) {
	p := New(reference)
	p.Move(fx.V(300, -120))

	prev := p.Smoothed()
	for i := 0; i < 60; i++ {
		p.Advance(frame)
		cur := p.Smoothed()
		if cur.X > 300+1e-9 || cur.Y < -120-1e-9 {
			t.Fatalf("overshoot at frame %d: %v", i, cur)
		}
		if cur.X < prev.X-1e-9 || cur.Y > prev.Y+1e-9 {
			t.Fatalf("moved away from target at frame %d: %v -> %v", i, prev, cur)
		}
		prev = cur
	}

	if !p.Settled(0.5) {
		t.Errorf("not settled after ~1s: pos=%v vel=%v", p.Smoothed(), p.Velocity())
	}
}

func TestPointer_IsPulledNotTeleported(t *testing.T) {
	p := New(reference)
	p.Move(fx.V(100, 0))
	p.Advance(frame)

	x := p.Smoothed().X
	if x <= 0 || x >= 100 {
		t.Errorf("after one frame expected 0 < x < 100, got %v", x)
	}
}

func TestPointer_VariableFrameTimes(t *testing.T) {
	a := New(reference)
	b := New(reference)
	a.Move(fx.V(50, 50))
	b.Move(fx.V(50, 50))

	for i := 0; i < 30; i++ {
		a.Advance(frame)
	}
	for i := 0; i < 15; i++ {
		b.Advance(10 * time.Millisecond)
		b.Advance(22 * time.Millisecond)
	}

	if d := a.Smoothed().Sub(b.Smoothed()).Len(); d > 0.5 {
		t.Errorf("frame pacing changed the trajectory too much: %v vs %v", a.Smoothed(), b.Smoothed())
	}
}

func TestPointer_NonPositiveDtIsNoop(t *testing.T) {
	p := New(reference)
	p.Move(fx.V(10, 10))
	p.Advance(0)
	p.Advance(-frame)
	if p.Smoothed() != (fx.Vec2{}) {
		t.Errorf("cursor moved on non-positive dt: %v", p.Smoothed())
	}
}

func TestPointer_SnapOnFirstMove(t *testing.T) {
	cfg := reference
	cfg.SnapOnFirstMove = true
	p := New(cfg)

	p.Move(fx.V(40, 80))
	if p.Smoothed() != fx.V(40, 80) {
		t.Errorf("first move should snap, got %v", p.Smoothed())
	}

	p.Move(fx.V(100, 80))
	if p.Smoothed() != fx.V(40, 80) {
		t.Errorf("later moves should not snap, got %v", p.Smoothed())
	}
}

func TestPointer_LeavingViewportFreezesRaw(t *testing.T) {
	p := New(reference)
	p.Move(fx.V(-30, 5000))
	for i := 0; i < 120; i++ {
		p.Advance(frame)
	}
	if !p.Settled(0.5) {
		t.Errorf("off-screen target should still be tracked: %v", p.Smoothed())
	}
}
