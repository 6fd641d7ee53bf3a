package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/trailfx/internal/fx"
	"gopkg.in/yaml.v3"
)

// Reference tuning of the effect.
const (
	DefaultStiffness     = 700.0
	DefaultDamping       = 25.0
	DefaultMass          = 1.0
	DefaultProbability   = 0.2
	DefaultSpeed         = 1.0
	DefaultMaxParticles  = 16
	DefaultParticleDecay = 0.025
	DefaultRippleDecay   = 0.04
	DefaultDecayPeriod   = 16 * time.Millisecond
	DefaultPollPeriod    = 50 * time.Millisecond
	DefaultFPS           = 60
	DefaultTheme         = "neon"
	DefaultEngagedScale  = 2.0
	DefaultRippleRadius  = 12.0
)

type Config struct {
	Seed      int64          `yaml:"seed"`
	Pointer   PointerConfig  `yaml:"pointer"`
	Emission  EmissionConfig `yaml:"emission"`
	Particles ParticleConfig `yaml:"particles"`
	Ripples   RippleConfig   `yaml:"ripples"`
	HotZone   HotZoneConfig  `yaml:"hotzone"`
	Render    RenderConfig   `yaml:"render"`
}

type PointerConfig struct {
	Stiffness float64 `yaml:"stiffness"`
	// Damping below 2*sqrt(stiffness*mass) is clamped to critical damping,
	// so with the reference stiffness and mass every value under ~52.9 acts alike.
	Damping         float64 `yaml:"damping"`
	Mass            float64 `yaml:"mass"`
	SnapOnFirstMove bool    `yaml:"snap_on_first_move"`
}

type EmissionConfig struct {
	Probability float64 `yaml:"probability"`
	Speed       float64 `yaml:"speed"`
}

type ParticleConfig struct {
	Max    int           `yaml:"max"`
	Decay  float64       `yaml:"decay"`
	Period time.Duration `yaml:"period"`
}

type RippleConfig struct {
	Decay  float64       `yaml:"decay"`
	Period time.Duration `yaml:"period"`
}

type HotZoneConfig struct {
	Poll   time.Duration `yaml:"poll"`
	Margin float64       `yaml:"margin"`
}

type RenderConfig struct {
	FPS          int     `yaml:"fps"`
	Theme        string  `yaml:"theme"`
	EngagedScale float64 `yaml:"engaged_scale"`
	RippleRadius float64 `yaml:"ripple_radius"`
}

func DefaultConfig() *Config {
	return &Config{
		Pointer: PointerConfig{
			Stiffness: DefaultStiffness,
			Damping:   DefaultDamping,
			Mass:      DefaultMass,
		},
		Emission: EmissionConfig{
			Probability: DefaultProbability,
			Speed:       DefaultSpeed,
		},
		Particles: ParticleConfig{
			Max:    DefaultMaxParticles,
			Decay:  DefaultParticleDecay,
			Period: DefaultDecayPeriod,
		},
		Ripples: RippleConfig{
			Decay:  DefaultRippleDecay,
			Period: DefaultDecayPeriod,
		},
		HotZone: HotZoneConfig{
			Poll: DefaultPollPeriod,
		},
		Render: RenderConfig{
			FPS:          DefaultFPS,
			Theme:        DefaultTheme,
			EngagedScale: DefaultEngagedScale,
			RippleRadius: DefaultRippleRadius,
		},
	}
}

// Load reads a YAML file on top of the defaults, so a file only needs the
// settings it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func invalid(field, format string, args ...any) error {
	return &fx.FieldError{Field: field, Message: fmt.Sprintf(format, args...), Wrapped: fx.ErrInvalidConfig}
}

// Validate reports the first setting outside its valid range.
func (c *Config) Validate() error {
	switch {
	case c.Pointer.Stiffness <= 0:
		return invalid("pointer.stiffness", "must be positive, got %g", c.Pointer.Stiffness)
	case c.Pointer.Damping < 0:
		return invalid("pointer.damping", "must not be negative, got %g", c.Pointer.Damping)
	case c.Pointer.Mass <= 0:
		return invalid("pointer.mass", "must be positive, got %g", c.Pointer.Mass)
	case c.Emission.Probability < 0 || c.Emission.Probability > 1:
		return invalid("emission.probability", "must be within [0,1], got %g", c.Emission.Probability)
	case c.Emission.Speed < 0:
		return invalid("emission.speed", "must not be negative, got %g", c.Emission.Speed)
	case c.Particles.Max < 1:
		return invalid("particles.max", "must be at least 1, got %d", c.Particles.Max)
	case c.Particles.Decay <= 0:
		return invalid("particles.decay", "must be positive, got %g", c.Particles.Decay)
	case c.Particles.Period <= 0:
		return invalid("particles.period", "must be positive, got %v", c.Particles.Period)
	case c.Ripples.Decay <= 0:
		return invalid("ripples.decay", "must be positive, got %g", c.Ripples.Decay)
	case c.Ripples.Period <= 0:
		return invalid("ripples.period", "must be positive, got %v", c.Ripples.Period)
	case c.HotZone.Poll <= 0:
		return invalid("hotzone.poll", "must be positive, got %v", c.HotZone.Poll)
	case c.Render.FPS <= 0:
		return invalid("render.fps", "must be positive, got %d", c.Render.FPS)
	case c.Render.EngagedScale <= 0:
		return invalid("render.engaged_scale", "must be positive, got %g", c.Render.EngagedScale)
	}
	return nil
}

// FramePeriod is the display frame interval implied by Render.FPS.
func (c *Config) FramePeriod() time.Duration {
	if c.Render.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.Render.FPS)
}
