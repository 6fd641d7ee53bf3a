package metrics

import "github.com/san-kum/trailfx/internal/fx"

// EngagedRatio is the fraction of frames with the pointer over the hot zone.
type EngagedRatio struct {
	name    string
	engaged int
	samples int
}

func NewEngagedRatio() *EngagedRatio {
	return &EngagedRatio{name: "engaged_ratio"}
}

func (e *EngagedRatio) Name() string {
	return e.name
}

func (e *EngagedRatio) Observe(snap fx.Snapshot) {
	e.samples++
	if snap.Engaged {
		e.engaged++
	}
}

func (e *EngagedRatio) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.engaged) / float64(e.samples)
}

func (e *EngagedRatio) Reset() {
	e.engaged = 0
	e.samples = 0
}
