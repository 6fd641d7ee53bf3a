package fx

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Rect is an axis-aligned box. Min is the top-left corner in viewport space.
type Rect struct {
	Min, Max Vec2
}

// R builds a rect from its left, top, right and bottom edges.
func R(left, top, right, bottom float64) Rect {
	return Rect{Min: Vec2{left, top}, Max: Vec2{right, bottom}}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Empty() bool { return r.Max.X < r.Min.X || r.Max.Y < r.Min.Y }

// Inflate grows the rect by m on all four sides. Negative m shrinks it.
func (r Rect) Inflate(m float64) Rect {
	return Rect{
		Min: Vec2{r.Min.X - m, r.Min.Y - m},
		Max: Vec2{r.Max.X + m, r.Max.Y + m},
	}
}

// Contains reports whether p lies inside r. All four edges are inclusive.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

type ID = uuid.UUID

// NewID returns a time-ordered id. uuid v7 carries a millisecond timestamp
// followed by random bits, so ids created in the same millisecond still differ.
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// Alive is the reap predicate shared by every field.
func Alive(life float64) bool { return life > 0 }

type Particle struct {
	ID   ID
	Pos  Vec2
	Vel  Vec2
	Life float64
}

func NewParticle(pos, vel Vec2) Particle {
	return Particle{ID: NewID(), Pos: pos, Vel: vel, Life: 1}
}

// Step returns the particle one tick later.
func (p Particle) Step(decay float64) Particle {
	p.Pos = p.Pos.Add(p.Vel)
	p.Life -= decay
	return p
}

type Ripple struct {
	ID   ID
	Pos  Vec2
	Life float64
}

func NewRipple(pos Vec2) Ripple {
	return Ripple{ID: NewID(), Pos: pos, Life: 1}
}

func (r Ripple) Step(decay float64) Ripple {
	r.Life -= decay
	return r
}

// Snapshot is what a render adapter samples each frame.
type Snapshot struct {
	Cursor    Vec2
	Raw       Vec2
	Engaged   bool
	Particles []Particle
	Ripples   []Ripple
	Elapsed   time.Duration
}

func (s Snapshot) Clone() Snapshot {
	c := s
	c.Particles = append([]Particle(nil), s.Particles...)
	c.Ripples = append([]Ripple(nil), s.Ripples...)
	return c
}
