package trace

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/san-kum/trailfx/internal/fx"
)

// MaxTime bounds event timestamps and playback length.
const MaxTime = 24 * time.Hour

// RowError reports the first unusable row of a trace.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() []error {
	return []error{fx.ErrMalformedTrace, e.Err}
}

func Load(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	events, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

// Read parses a CSV trace. Timestamps must not decrease.
func Read(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	cr.ReuseRecord = true

	events := make([]Event, 0, 256)
	row := 0
	var last time.Duration
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}
		if row == 1 {
			if rec[0] != header[0] {
				return nil, &RowError{Row: row, Err: fmt.Errorf("missing header, got %q", rec[0])}
			}
			continue
		}

		ev, err := parseRow(rec)
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}
		if ev.T < last {
			return nil, &RowError{Row: row, Err: fmt.Errorf("time %v before %v", ev.T, last)}
		}
		last = ev.T
		events = append(events, ev)
	}
	return events, nil
}

func parseRow(rec []string) (Event, error) {
	ms, err := strconv.ParseFloat(rec[0], 64)
	if err != nil {
		return Event{}, fmt.Errorf("t_ms: %w", err)
	}
	switch {
	case math.IsNaN(ms) || math.IsInf(ms, 0):
		return Event{}, fmt.Errorf("t_ms: not finite: %g", ms)
	case ms < 0:
		return Event{}, fmt.Errorf("t_ms: negative time %g", ms)
	case ms > float64(MaxTime/time.Millisecond):
		return Event{}, fmt.Errorf("t_ms: %g exceeds %v", ms, MaxTime)
	}
	ev := Event{
		T:    time.Duration(ms * float64(time.Millisecond)),
		Kind: Kind(rec[1]),
	}
	if !ev.Kind.Valid() {
		return Event{}, fmt.Errorf("kind: unknown %q", rec[1])
	}

	vals := [4]*float64{&ev.X, &ev.Y, &ev.W, &ev.H}
	for i, dst := range vals {
		s := rec[2+i]
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Event{}, fmt.Errorf("%s: %w", header[2+i], err)
		}
		*dst = v
	}
	if !fx.V(ev.X, ev.Y).IsValid() {
		return Event{}, fmt.Errorf("position not finite: %g,%g", ev.X, ev.Y)
	}
	if ev.Kind == Zone {
		if !fx.V(ev.W, ev.H).IsValid() {
			return Event{}, fmt.Errorf("zone: size not finite: %gx%g", ev.W, ev.H)
		}
		if ev.W < 0 || ev.H < 0 {
			return Event{}, fmt.Errorf("zone: negative size %gx%g", ev.W, ev.H)
		}
	}
	return ev, nil
}
