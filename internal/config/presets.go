package config

import (
	"sort"
	"time"
)

// Presets are named configurations. Only "sticky" damps above critical;
// the others inherit the reference damping, which the pointer clamps.
var Presets = map[string]func() *Config{
	"reference": DefaultConfig,
	"subtle": func() *Config {
		cfg := DefaultConfig()
		cfg.Emission.Probability = 0.1
		cfg.Emission.Speed = 0.5
		cfg.Particles.Max = 10
		cfg.Particles.Decay = 0.04
		cfg.Render.RippleRadius = 8
		return cfg
	},
	"storm": func() *Config {
		cfg := DefaultConfig()
		cfg.Emission.Probability = 0.6
		cfg.Emission.Speed = 2.0
		cfg.Particles.Max = 40
		cfg.Particles.Decay = 0.02
		cfg.Ripples.Decay = 0.025
		cfg.Render.RippleRadius = 18
		return cfg
	},
	"sticky": func() *Config {
		cfg := DefaultConfig()
		cfg.Pointer.Stiffness = 150
		cfg.Pointer.Damping = 30
		cfg.HotZone.Margin = 4
		cfg.HotZone.Poll = 100 * time.Millisecond
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
