// Package pointer tracks the raw pointer position and a spring-smoothed
// cursor that follows it.
package pointer

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/trailfx/internal/fx"
)

// Config describes the cursor spring in mass-spring-damper terms.
type Config struct {
	Stiffness       float64
	Damping         float64
	Mass            float64
	SnapOnFirstMove bool
}

func (c Config) mass() float64 {
	if c.Mass <= 0 {
		return 1
	}
	return c.Mass
}

// CriticalDamping is 2*sqrt(k*m). Damping at or below it behaves identically.
func (c Config) CriticalDamping() float64 {
	return 2 * math.Sqrt(math.Max(c.Stiffness, 0)*c.mass())
}

// Coefficients converts the spring into angular frequency and damping ratio.
// The ratio is floored at 1 so the cursor never overshoots its target.
func (c Config) Coefficients() (omega, zeta float64) {
	omega = math.Sqrt(math.Max(c.Stiffness, 0) / c.mass())
	if crit := c.CriticalDamping(); crit > 0 {
		zeta = c.Damping / crit
	}
	return omega, math.Max(zeta, 1)
}

type Pointer struct {
	cfg         Config
	omega, zeta float64
	raw         fx.Vec2
	pos, vel    fx.Vec2
	moved       bool
	spring      harmonica.Spring
	springDt    time.Duration
}

// New returns a pointer resting at the origin.
func New(cfg Config) *Pointer {
	omega, zeta := cfg.Coefficients()
	return &Pointer{cfg: cfg, omega: omega, zeta: zeta}
}

// Move records a raw pointer position.
func (p *Pointer) Move(to fx.Vec2) {
	if !p.moved && p.cfg.SnapOnFirstMove {
		p.Snap(to)
	}
	p.moved = true
	p.raw = to
}

// Snap places both the raw and smoothed positions at the given point.
func (p *Pointer) Snap(to fx.Vec2) {
	p.raw = to
	p.pos = to
	p.vel = fx.Vec2{}
}

// Advance integrates the spring over dt toward the raw position.
func (p *Pointer) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if dt != p.springDt {
		p.spring = harmonica.NewSpring(dt.Seconds(), p.omega, p.zeta)
		p.springDt = dt
	}
	p.pos.X, p.vel.X = p.spring.Update(p.pos.X, p.vel.X, p.raw.X)
	p.pos.Y, p.vel.Y = p.spring.Update(p.pos.Y, p.vel.Y, p.raw.Y)
}

func (p *Pointer) Raw() fx.Vec2      { return p.raw }
func (p *Pointer) Smoothed() fx.Vec2 { return p.pos }
func (p *Pointer) Velocity() fx.Vec2 { return p.vel }

// Moved reports whether any pointer input has been seen.
func (p *Pointer) Moved() bool { return p.moved }

// Settled reports whether the cursor is within eps of the raw position.
func (p *Pointer) Settled(eps float64) bool {
	return p.raw.Sub(p.pos).Len() <= eps && p.vel.Len() <= eps
}
