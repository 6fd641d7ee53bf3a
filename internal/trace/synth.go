package trace

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/san-kum/trailfx/internal/fx"
)

type Pattern string

const (
	Circle Pattern = "circle"
	Zigzag Pattern = "zigzag"
	Jitter Pattern = "jitter"
)

var patterns = map[Pattern]func(t, w, h float64, rng *rand.Rand) fx.Vec2{
	// one lap every two seconds around the middle of the area
	Circle: func(t, w, h float64, _ *rand.Rand) fx.Vec2 {
		a := math.Pi * t
		r := math.Min(w, h) * 0.35
		return fx.V(w/2+r*math.Cos(a), h/2+r*math.Sin(a))
	},
	Zigzag: func(t, w, h float64, _ *rand.Rand) fx.Vec2 {
		phase := math.Mod(t, 2)
		if phase > 1 {
			phase = 2 - phase
		}
		return fx.V(w*phase, h/2+h*0.3*math.Sin(6*math.Pi*t))
	},
	Jitter: func(t, w, h float64, rng *rand.Rand) fx.Vec2 {
		return fx.V(w/2+(rng.Float64()-0.5)*w*0.2, h/2+(rng.Float64()-0.5)*h*0.2)
	},
}

func ParsePattern(s string) (Pattern, error) {
	p := Pattern(s)
	if _, ok := patterns[p]; !ok {
		return "", fmt.Errorf("unknown pattern %q (want one of %v)", s, Patterns())
	}
	return p, nil
}

func Patterns() []string {
	names := make([]string, 0, len(patterns))
	for p := range patterns {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}

type SynthConfig struct {
	Pattern  Pattern
	Duration time.Duration
	// Rate is pointer moves per second.
	Rate   float64
	Clicks int
	Width  float64
	Height float64
	// Zone adds a hot zone over the middle third of the area at t=0.
	Zone bool
}

// Synthesize generates a trace that drives the pointer along a pattern with
// clicks spread evenly across the run.
func Synthesize(cfg SynthConfig, rng *rand.Rand) ([]Event, error) {
	path, ok := patterns[cfg.Pattern]
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q", cfg.Pattern)
	}
	if cfg.Duration <= 0 || cfg.Duration > MaxTime {
		return nil, fmt.Errorf("duration must be in (0, %v], got %v", MaxTime, cfg.Duration)
	}
	if !(cfg.Rate > 0) || math.IsInf(cfg.Rate, 0) {
		return nil, fmt.Errorf("rate must be positive, got %g", cfg.Rate)
	}
	if !(cfg.Width > 0 && cfg.Height > 0) || !fx.V(cfg.Width, cfg.Height).IsValid() {
		return nil, fmt.Errorf("area must be positive, got %gx%g", cfg.Width, cfg.Height)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	step := time.Duration(float64(time.Second) / cfg.Rate)
	if step <= 0 {
		step = time.Microsecond
	}
	n := int(cfg.Duration / step)
	events := make([]Event, 0, n+cfg.Clicks+1)

	if cfg.Zone {
		w, h := cfg.Width/3, cfg.Height/3
		events = append(events, ZoneEvent(0, fx.R(w, h, 2*w, 2*h)))
	}

	var clickEvery int
	if cfg.Clicks > 0 {
		clickEvery = n / cfg.Clicks
		if clickEvery < 1 {
			clickEvery = 1
		}
	}

	clicks := 0
	for i := 1; i <= n; i++ {
		t := time.Duration(i) * step
		p := path(t.Seconds(), cfg.Width, cfg.Height, rng)
		events = append(events, Event{T: t, Kind: Move, X: p.X, Y: p.Y})
		if clickEvery > 0 && clicks < cfg.Clicks && i%clickEvery == 0 {
			events = append(events, Event{T: t, Kind: Click, X: p.X, Y: p.Y})
			clicks++
		}
	}
	return events, nil
}
