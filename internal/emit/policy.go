// Package emit decides which pointer-move events spawn a trail particle.
//
// Pointer-move events can arrive far faster than a useful particle rate.
// Rather than sampling on a fixed interval, each event passes a random gate
// with a fixed probability, which keeps trail density free of visible
// periodicity when the pointer moves at constant speed.
package emit

import (
	"math/rand"

	"github.com/san-kum/trailfx/internal/fx"
)

type Config struct {
	// Probability is the chance that a single move event spawns a particle.
	Probability float64
	// Speed bounds each velocity component to [-Speed, +Speed).
	Speed float64
}

type Policy struct {
	cfg     Config
	rng     *rand.Rand
	seen    uint64
	spawned uint64
}

func New(cfg Config, rng *rand.Rand) *Policy {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Policy{cfg: cfg, rng: rng}
}

// Spawn runs the gate for one move event at the given position.
func (p *Policy) Spawn(at fx.Vec2) (fx.Particle, bool) {
	p.seen++
	if p.rng.Float64() <= 1-p.cfg.Probability {
		return fx.Particle{}, false
	}
	vel := fx.Vec2{
		X: (p.rng.Float64() - 0.5) * 2 * p.cfg.Speed,
		Y: (p.rng.Float64() - 0.5) * 2 * p.cfg.Speed,
	}
	p.spawned++
	return fx.NewParticle(at, vel), true
}

// Stats returns the number of events seen and particles spawned.
func (p *Policy) Stats() (seen, spawned uint64) { return p.seen, p.spawned }

func (p *Policy) Config() Config { return p.cfg }
