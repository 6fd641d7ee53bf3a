// Package trace records and loads timestamped pointer input so a session can
// be replayed without a terminal.
//
// Traces are CSV with a header row:
//
//	t_ms,kind,x,y,w,h
//
// w and h are only meaningful for zone events, where (x, y) is the top-left
// corner of the hot zone.
package trace

import (
	"time"

	"github.com/san-kum/trailfx/internal/fx"
)

type Kind string

const (
	Move   Kind = "move"
	Click  Kind = "click"
	Zone   Kind = "zone"
	Unzone Kind = "unzone"
)

func (k Kind) Valid() bool {
	switch k {
	case Move, Click, Zone, Unzone:
		return true
	}
	return false
}

type Event struct {
	T    time.Duration
	Kind Kind
	X, Y float64
	W, H float64
}

// Rect is the hot zone described by a zone event.
func (e Event) Rect() fx.Rect {
	return fx.R(e.X, e.Y, e.X+e.W, e.Y+e.H)
}

// ZoneEvent builds a zone event from a rect.
func ZoneEvent(t time.Duration, r fx.Rect) Event {
	return Event{T: t, Kind: Zone, X: r.Min.X, Y: r.Min.Y, W: r.Width(), H: r.Height()}
}

// Duration returns the timestamp of the last event.
func Duration(events []Event) time.Duration {
	if len(events) == 0 {
		return 0
	}
	return events[len(events)-1].T
}

var header = []string{"t_ms", "kind", "x", "y", "w", "h"}
