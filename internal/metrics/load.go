package metrics

import "github.com/san-kum/trailfx/internal/fx"

// ParticleLoad is the mean number of live particles per frame.
type ParticleLoad struct {
	name    string
	sum     float64
	samples int
}

func NewParticleLoad() *ParticleLoad {
	return &ParticleLoad{name: "particle_load"}
}

func (p *ParticleLoad) Name() string { return p.name }

func (p *ParticleLoad) Observe(snap fx.Snapshot) {
	p.sum += float64(len(snap.Particles))
	p.samples++
}

func (p *ParticleLoad) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.sum / float64(p.samples)
}

func (p *ParticleLoad) Reset() {
	p.sum = 0
	p.samples = 0
}

type PeakParticles struct {
	name string
	peak int
}

func NewPeakParticles() *PeakParticles {
	return &PeakParticles{name: "peak_particles"}
}

func (p *PeakParticles) Name() string { return p.name }

func (p *PeakParticles) Observe(snap fx.Snapshot) {
	if n := len(snap.Particles); n > p.peak {
		p.peak = n
	}
}

func (p *PeakParticles) Value() float64 { return float64(p.peak) }

func (p *PeakParticles) Reset() { p.peak = 0 }

// RippleLoad is the mean number of live ripples per frame.
type RippleLoad struct {
	name    string
	sum     float64
	samples int
}

func NewRippleLoad() *RippleLoad {
	return &RippleLoad{name: "ripple_load"}
}

func (r *RippleLoad) Name() string { return r.name }

func (r *RippleLoad) Observe(snap fx.Snapshot) {
	r.sum += float64(len(snap.Ripples))
	r.samples++
}

func (r *RippleLoad) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.sum / float64(r.samples)
}

func (r *RippleLoad) Reset() {
	r.sum = 0
	r.samples = 0
}
