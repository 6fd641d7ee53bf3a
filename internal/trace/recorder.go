package trace

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// Recorder appends events to a CSV trace.
type Recorder struct {
	w      *csv.Writer
	closer io.Closer
	n      int
}

// NewRecorder writes the header to w and returns a recorder for it.
func NewRecorder(w io.Writer) (*Recorder, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return nil, err
	}
	return &Recorder{w: cw}, nil
}

// Create opens path for writing, truncating any existing trace.
func Create(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	r, err := NewRecorder(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

func (r *Recorder) Record(ev Event) error {
	row := []string{
		strconv.FormatFloat(float64(ev.T.Microseconds())/1000, 'f', 3, 64),
		string(ev.Kind),
		formatFloat(ev.X),
		formatFloat(ev.Y),
		formatFloat(ev.W),
		formatFloat(ev.H),
	}
	if err := r.w.Write(row); err != nil {
		return err
	}
	r.n++
	return nil
}

// Count returns the number of events recorded.
func (r *Recorder) Count() int { return r.n }

func (r *Recorder) Flush() error {
	r.w.Flush()
	return r.w.Error()
}

// Close flushes buffered rows and closes the underlying file, if any.
func (r *Recorder) Close() error {
	err := r.Flush()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
		r.closer = nil
	}
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
