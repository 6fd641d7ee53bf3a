package trace

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/trailfx/internal/fx"
)

func TestRecorder_RoundTrip(t *testing.T) {
	events := []Event{
		ZoneEvent(0, fx.R(10, 20, 110, 70)),
		{T: 16 * time.Millisecond, Kind: Move, X: 12.5, Y: 30},
		{T: 32500 * time.Microsecond, Kind: Click, X: 12.5, Y: 30},
		{T: time.Second, Kind: Unzone},
	}

	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	for _, ev := range events {
		if err := rec.Record(ev); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if rec.Count() != len(events) {
		t.Errorf("Count() = %d, want %d", rec.Count(), len(events))
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("got %d events, want %d", len(got), len(events))
	}
	for i := range events {
		if got[i] != events[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], events[i])
		}
	}
	if r := got[0].Rect(); r != fx.R(10, 20, 110, 70) {
		t.Errorf("zone rect = %+v", r)
	}
}

func TestCreateAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	rec, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	rec.Record(Event{T: time.Millisecond, Kind: Move, X: 1, Y: 2})
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	events, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(events) != 1 || events[0].X != 1 || events[0].Y != 2 {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestRead_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
		row  int
	}{
		{"no header", "1,move,0,0,0,0\n", 1},
		{"bad time", "t_ms,kind,x,y,w,h\nabc,move,0,0,0,0\n", 2},
		{"negative time", "t_ms,kind,x,y,w,h\n-1,move,0,0,0,0\n", 2},
		{"unknown kind", "t_ms,kind,x,y,w,h\n1,hover,0,0,0,0\n", 2},
		{"bad x", "t_ms,kind,x,y,w,h\n1,move,0,0,0,0\n2,move,x,0,0,0\n", 3},
		{"short row", "t_ms,kind,x,y,w,h\n1,move,0\n", 2},
		{"time goes back", "t_ms,kind,x,y,w,h\n5,move,0,0,0,0\n4,move,0,0,0,0\n", 3},
		{"negative zone", "t_ms,kind,x,y,w,h\n0,zone,0,0,-1,5\n", 2},
		{"nan time", "t_ms,kind,x,y,w,h\nNaN,move,0,0,0,0\n", 2},
		{"inf time", "t_ms,kind,x,y,w,h\n+Inf,move,0,0,0,0\n", 2},
		{"time past max", "t_ms,kind,x,y,w,h\n9223372036000,move,1,1,,\n", 2},
		{"nan x", "t_ms,kind,x,y,w,h\n1,move,NaN,0,0,0\n", 2},
		{"inf y", "t_ms,kind,x,y,w,h\n1,click,0,-Inf,0,0\n", 2},
		{"nan zone width", "t_ms,kind,x,y,w,h\n0,zone,0,0,NaN,5\n", 2},
		{"inf zone height", "t_ms,kind,x,y,w,h\n0,zone,0,0,5,Inf\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.data))
			if !errors.Is(err, fx.ErrMalformedTrace) {
				t.Fatalf("err = %v, want ErrMalformedTrace", err)
			}
			var re *RowError
			if !errors.As(err, &re) || re.Row != tt.row {
				t.Errorf("err = %v, want row %d", err, tt.row)
			}
		})
	}
}

func TestRead_AcceptsMaxTime(t *testing.T) {
	data := fmt.Sprintf("t_ms,kind,x,y,w,h\n%d,move,1,1,,\n", MaxTime.Milliseconds())
	events, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if events[0].T != MaxTime {
		t.Errorf("T = %v, want %v", events[0].T, MaxTime)
	}
}

func TestRead_EmptyColumnsDefaultToZero(t *testing.T) {
	events, err := Read(strings.NewReader("t_ms,kind,x,y,w,h\n3,unzone,,,,\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(events) != 1 || events[0].Kind != Unzone || events[0].T != 3*time.Millisecond {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestSynthesize(t *testing.T) {
	for _, name := range Patterns() {
		t.Run(name, func(t *testing.T) {
			p, err := ParsePattern(name)
			if err != nil {
				t.Fatal(err)
			}
			cfg := SynthConfig{
				Pattern:  p,
				Duration: 2 * time.Second,
				Rate:     100,
				Clicks:   4,
				Width:    160,
				Height:   96,
				Zone:     true,
			}
			events, err := Synthesize(cfg, rand.New(rand.NewSource(7)))
			if err != nil {
				t.Fatalf("Synthesize: %v", err)
			}

			counts := map[Kind]int{}
			var last time.Duration
			for _, ev := range events {
				counts[ev.Kind]++
				if ev.T < last {
					t.Fatalf("events out of order at %v", ev.T)
				}
				last = ev.T
				if ev.Kind == Move && (ev.X < 0 || ev.X > cfg.Width || ev.Y < 0 || ev.Y > cfg.Height) {
					t.Errorf("move outside area: %+v", ev)
				}
			}
			if counts[Move] != 200 {
				t.Errorf("moves = %d, want 200", counts[Move])
			}
			if counts[Click] != 4 {
				t.Errorf("clicks = %d, want 4", counts[Click])
			}
			if counts[Zone] != 1 || events[0].Kind != Zone {
				t.Errorf("expected one leading zone event")
			}
			if Duration(events) != 2*time.Second {
				t.Errorf("Duration() = %v", Duration(events))
			}
		})
	}
}

func TestSynthesize_Invalid(t *testing.T) {
	base := SynthConfig{Pattern: Circle, Duration: time.Second, Rate: 10, Width: 10, Height: 10}
	tests := []struct {
		name   string
		mutate func(*SynthConfig)
	}{
		{"pattern", func(c *SynthConfig) { c.Pattern = "spiral" }},
		{"duration", func(c *SynthConfig) { c.Duration = 0 }},
		{"rate", func(c *SynthConfig) { c.Rate = -1 }},
		{"area", func(c *SynthConfig) { c.Width = 0 }},
		{"duration past max", func(c *SynthConfig) { c.Duration = MaxTime + time.Millisecond }},
		{"nan rate", func(c *SynthConfig) { c.Rate = math.NaN() }},
		{"inf height", func(c *SynthConfig) { c.Height = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if _, err := Synthesize(cfg, nil); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := ParsePattern("spiral"); err == nil {
		t.Error("ParsePattern accepted an unknown pattern")
	}
}
