// Package metrics summarizes a run of frames into named scalar values.
package metrics

import "github.com/san-kum/trailfx/internal/fx"

type Metric interface {
	Name() string
	Observe(snap fx.Snapshot)
	Value() float64
	Reset()
}

// Defaults returns a fresh instance of every built-in metric.
func Defaults() []Metric {
	return []Metric{
		NewParticleLoad(),
		NewPeakParticles(),
		NewRippleLoad(),
		NewEngagedRatio(),
		NewCursorLag(),
	}
}
