package playback

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/san-kum/trailfx/internal/config"
	"github.com/san-kum/trailfx/internal/fx"
	"github.com/san-kum/trailfx/internal/metrics"
	"github.com/san-kum/trailfx/internal/trace"
)

func synth(t *testing.T, p trace.Pattern) []trace.Event {
	t.Helper()
	events, err := trace.Synthesize(trace.SynthConfig{
		Pattern:  p,
		Duration: time.Second,
		Rate:     120,
		Clicks:   3,
		Width:    160,
		Height:   96,
		Zone:     true,
	}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	return events
}

func TestRun_EmptyTrace(t *testing.T) {
	_, err := New(Config{}).Run(context.Background(), nil)
	if !errors.Is(err, fx.ErrEmptyTrace) {
		t.Errorf("err = %v, want ErrEmptyTrace", err)
	}
}

func TestRun_RejectsOverlongTrace(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		events []trace.Event
	}{
		{"event past max", Config{}, []trace.Event{{T: trace.MaxTime + time.Millisecond, Kind: trace.Move}}},
		{"overflowing event", Config{}, []trace.Event{{T: time.Duration(math.MaxInt64), Kind: trace.Move}}},
		{"negative time", Config{}, []trace.Event{{T: -time.Second, Kind: trace.Move}}},
		{"tail past max", Config{Tail: trace.MaxTime + time.Second}, []trace.Event{{Kind: trace.Move}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New(tt.cfg).Run(context.Background(), tt.events)
			if !errors.Is(err, fx.ErrMalformedTrace) {
				t.Fatalf("err = %v, want ErrMalformedTrace", err)
			}
			if res != nil {
				t.Error("expected no result")
			}
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	events := synth(t, trace.Circle)
	cfg := config.DefaultConfig()
	cfg.Seed = 99

	run := func() *Result {
		res, err := New(Config{Session: cfg}).Run(context.Background(), events)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}
	a, b := run(), run()

	if a.Frames != b.Frames || len(a.Particles) != len(b.Particles) {
		t.Fatalf("frame counts differ: %d vs %d", a.Frames, b.Frames)
	}
	for i := range a.Particles {
		if a.Particles[i] != b.Particles[i] {
			t.Fatalf("frame %d: %v vs %v particles", i, a.Particles[i], b.Particles[i])
		}
	}
	if a.Stats.Spawned != b.Stats.Spawned {
		t.Errorf("spawned %d vs %d", a.Stats.Spawned, b.Stats.Spawned)
	}
}

func TestRun_RippleLifetime(t *testing.T) {
	events := []trace.Event{{T: 0, Kind: trace.Click, X: 100, Y: 100}}
	res, err := New(Config{Frame: 16 * time.Millisecond}).Run(context.Background(), events)
	if err != nil {
		t.Fatal(err)
	}

	if res.Ripples[23] != 1 {
		t.Errorf("ripple gone after 24 frames")
	}
	if res.Ripples[24] != 0 {
		t.Errorf("ripple still alive after 25 frames")
	}
	if len(res.Final.Ripples) != 0 {
		t.Error("ripple survived the tail")
	}
	if res.Duration < DefaultTail {
		t.Errorf("Duration = %v, want at least the tail", res.Duration)
	}
}

func TestRun_Metrics(t *testing.T) {
	events := synth(t, trace.Jitter)
	p := New(Config{})
	for _, m := range metrics.Defaults() {
		p.AddMetric(m)
	}

	res, err := p.Run(context.Background(), events)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Metrics) != 5 {
		t.Fatalf("got %d metrics", len(res.Metrics))
	}
	if peak := res.Metrics["peak_particles"]; peak < 1 || peak > config.DefaultMaxParticles {
		t.Errorf("peak_particles = %v, want within [1,%d]", peak, config.DefaultMaxParticles)
	}
	// jitter stays inside the middle tenth, well within the zone
	if r := res.Metrics["engaged_ratio"]; r < 0.7 {
		t.Errorf("engaged_ratio = %v, want most frames engaged", r)
	}
	if res.Stats.Clicks != 3 {
		t.Errorf("clicks = %d, want 3", res.Stats.Clicks)
	}
	if len(res.Path) != res.Frames {
		t.Errorf("path has %d points for %d frames", len(res.Path), res.Frames)
	}
}

func TestRun_Unzone(t *testing.T) {
	events := []trace.Event{
		trace.ZoneEvent(0, fx.R(0, 0, 100, 100)),
		{T: time.Millisecond, Kind: trace.Move, X: 50, Y: 50},
		{T: 200 * time.Millisecond, Kind: trace.Unzone},
	}
	ratio := metrics.NewEngagedRatio()
	p := New(Config{Tail: 200 * time.Millisecond})
	p.AddMetric(ratio)

	res, err := p.Run(context.Background(), events)
	if err != nil {
		t.Fatal(err)
	}
	if res.Final.Engaged {
		t.Error("still engaged after the zone was removed")
	}
	if v := ratio.Value(); v <= 0.2 || v >= 0.8 {
		t.Errorf("engaged_ratio = %v, want roughly half", v)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Config{}).Run(ctx, synth(t, trace.Zigzag))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestEnsemble_SeedsDiffer(t *testing.T) {
	events := synth(t, trace.Jitter)
	ens := NewEnsemble(Config{}, 4, 10, nil)
	results, err := ens.Run(context.Background(), events)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}

	again, err := NewEnsemble(Config{}, 1, 10, nil).Run(context.Background(), events)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Stats != again[0].Stats {
		t.Errorf("same seed gave %+v and %+v", results[0].Stats, again[0].Stats)
	}

	spreads := Summarize(results)
	if len(spreads) != len(metrics.Defaults()) {
		t.Fatalf("got %d spreads, want %d", len(spreads), len(metrics.Defaults()))
	}
	for i, s := range spreads {
		if i > 0 && spreads[i-1].Name >= s.Name {
			t.Errorf("spreads not sorted: %s before %s", spreads[i-1].Name, s.Name)
		}
		if s.Min > s.Mean || s.Mean > s.Max {
			t.Errorf("%s: mean %v outside [%v, %v]", s.Name, s.Mean, s.Min, s.Max)
		}
	}
}

func TestEnsemble_LeavesConfigAlone(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 99
	if _, err := NewEnsemble(Config{Session: cfg}, 2, 1, nil).Run(context.Background(), synth(t, trace.Circle)); err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 99 {
		t.Errorf("seed mutated to %d", cfg.Seed)
	}
}

func TestEnsemble_EmptyTrace(t *testing.T) {
	_, err := NewEnsemble(Config{}, 3, 0, nil).Run(context.Background(), nil)
	if !errors.Is(err, fx.ErrEmptyTrace) {
		t.Errorf("err = %v, want ErrEmptyTrace", err)
	}
}
